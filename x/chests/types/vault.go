package types

import (
	errorsmod "cosmossdk.io/errors"
	"github.com/gagliardetto/solana-go"
)

// ExpectedVaultAmount is the balance a vault token account must hold for a
// unique collectible.
const ExpectedVaultAmount uint64 = 1

// ValidateVaultAccount checks that account is owned by vault, holds mint and
// holds exactly one unit. The checks run in that order and the first failing
// one is returned.
func ValidateVaultAccount(account TokenAccount, vault, mint solana.PublicKey) error {
	if !account.Owner.Equals(vault) {
		return errorsmod.Wrapf(ErrWrongVaultOwner, "token account %s is owned by %s, expected %s", account.Address, account.Owner, vault)
	}
	if !account.Mint.Equals(mint) {
		return errorsmod.Wrapf(ErrWrongMint, "token account %s holds %s, expected %s", account.Address, account.Mint, mint)
	}
	if account.Amount != ExpectedVaultAmount {
		return errorsmod.Wrapf(ErrWrongAmount, "token account %s holds %d, expected %d", account.Address, account.Amount, ExpectedVaultAmount)
	}
	return nil
}
