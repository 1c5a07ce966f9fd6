package keeper

import (
	"context"

	"github.com/gagliardetto/solana-go"

	"github.com/citychests/citychests-app/x/chests/types"
)

// Authorize exposes the access check to tests.
var Authorize = authorize

// SetMintRecord is a test func used for setting a record in the store collection.
func (k *Keeper) SetMintRecord(ctx context.Context, record types.MintRecord) (solana.PublicKey, error) {
	address, _, err := k.MintRecordAddress(record.Recipient, record.ClientNonce)
	if err != nil {
		return solana.PublicKey{}, err
	}
	return address, k.records.Set(ctx, address.Bytes(), record)
}

// SetConfig is a test func used for overwriting the Config record.
func (k *Keeper) SetConfig(ctx context.Context, config types.Config) error {
	return k.configs.Set(ctx, k.configAddress.Bytes(), config)
}
