package types_test

import (
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/require"

	"github.com/citychests/citychests-app/test/util/testfactory"
	"github.com/citychests/citychests-app/x/chests/types"
)

func TestValidateVaultAccount(t *testing.T) {
	id := testfactory.RandomIdentity()
	other := testfactory.RandomPublicKey()

	account := func(owner, mint solana.PublicKey, amount uint64) types.TokenAccount {
		return types.TokenAccount{
			Address: testfactory.RandomPublicKey(),
			Owner:   owner,
			Mint:    mint,
			Amount:  amount,
		}
	}

	testCases := []struct {
		name     string
		account  types.TokenAccount
		expError error
	}{
		{
			name:    "vault holds exactly one unit",
			account: account(id.Vault, id.Mint, 1),
		},
		{
			name:     "wrong owner",
			account:  account(other, id.Mint, 1),
			expError: types.ErrWrongVaultOwner,
		},
		{
			name:     "wrong mint",
			account:  account(id.Vault, other, 1),
			expError: types.ErrWrongMint,
		},
		{
			name:     "empty",
			account:  account(id.Vault, id.Mint, 0),
			expError: types.ErrWrongAmount,
		},
		{
			name:     "more than one unit",
			account:  account(id.Vault, id.Mint, 2),
			expError: types.ErrWrongAmount,
		},
		{
			name:     "owner is checked before mint and amount",
			account:  account(other, other, 0),
			expError: types.ErrWrongVaultOwner,
		},
		{
			name:     "mint is checked before amount",
			account:  account(id.Vault, other, 5),
			expError: types.ErrWrongMint,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := types.ValidateVaultAccount(tc.account, id.Vault, id.Mint)
			if tc.expError != nil {
				require.ErrorIs(t, err, tc.expError)
			} else {
				require.NoError(t, err)
			}
		})
	}
}
