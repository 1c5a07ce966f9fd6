package types

import (
	"context"

	"github.com/gagliardetto/solana-go"
)

// TokenKeeper defines the expected interface of the token ledger the
// confirm step reads vault balances from.
type TokenKeeper interface {
	// GetTokenAccount returns ErrTokenAccountNotFound if no token account
	// exists at address.
	GetTokenAccount(ctx context.Context, address solana.PublicKey) (TokenAccount, error)
}

// TokenAccount is the subset of a token-holding account the vault
// post-conditions are checked against.
type TokenAccount struct {
	Address solana.PublicKey `json:"address"`
	Owner   solana.PublicKey `json:"owner"`
	Mint    solana.PublicKey `json:"mint"`
	Amount  uint64           `json:"amount"`
}
