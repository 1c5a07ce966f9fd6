package testfactory

import (
	"context"
	"sync"

	errorsmod "cosmossdk.io/errors"
	"github.com/gagliardetto/solana-go"

	"github.com/citychests/citychests-app/x/chests/types"
)

var _ types.TokenKeeper = (*TokenKeeper)(nil)

// TokenKeeper is an in-memory types.TokenKeeper.
type TokenKeeper struct {
	mu       sync.RWMutex
	accounts map[solana.PublicKey]types.TokenAccount
}

func NewTokenKeeper() *TokenKeeper {
	return &TokenKeeper{
		accounts: make(map[solana.PublicKey]types.TokenAccount),
	}
}

// SetTokenAccount stores account under its own address.
func (k *TokenKeeper) SetTokenAccount(account types.TokenAccount) {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.accounts[account.Address] = account
}

// SetVaultHolding stores a token account at the vault's associated token
// address for mint and returns that address.
func (k *TokenKeeper) SetVaultHolding(vault, mint solana.PublicKey, amount uint64) solana.PublicKey {
	address, _, err := solana.FindAssociatedTokenAddress(vault, mint)
	if err != nil {
		panic(err)
	}

	k.SetTokenAccount(types.TokenAccount{
		Address: address,
		Owner:   vault,
		Mint:    mint,
		Amount:  amount,
	})
	return address
}

func (k *TokenKeeper) GetTokenAccount(_ context.Context, address solana.PublicKey) (types.TokenAccount, error) {
	k.mu.RLock()
	defer k.mu.RUnlock()

	account, ok := k.accounts[address]
	if !ok {
		return types.TokenAccount{}, errorsmod.Wrapf(types.ErrTokenAccountNotFound, "no token account at %s", address)
	}
	return account, nil
}
