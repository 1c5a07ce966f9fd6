package keeper

import (
	"context"
	"errors"

	"github.com/gagliardetto/solana-go"

	"github.com/citychests/citychests-app/x/chests/types"
)

// InitGenesis initialises the module genesis state.
func (k *Keeper) InitGenesis(ctx context.Context, gs *types.GenesisState) error {
	if err := gs.Validate(k.programID); err != nil {
		return err
	}
	if gs.Config == nil {
		return nil
	}

	if err := k.configs.Set(ctx, k.configAddress.Bytes(), *gs.Config); err != nil {
		return err
	}

	for _, record := range gs.Records {
		address, _, err := k.MintRecordAddress(record.Recipient, record.ClientNonce)
		if err != nil {
			return err
		}
		if err := k.records.Set(ctx, address.Bytes(), record); err != nil {
			return err
		}
	}

	return nil
}

// ExportGenesis outputs the modules state for genesis exports.
func (k *Keeper) ExportGenesis(ctx context.Context) (*types.GenesisState, error) {
	gs := types.DefaultGenesis()

	config, err := k.GetConfig(ctx)
	switch {
	case errors.Is(err, types.ErrConfigNotFound):
		return gs, nil
	case err != nil:
		return nil, err
	}
	gs.Config = &config

	if err := k.IterateMintRecords(ctx, func(_ solana.PublicKey, record types.MintRecord) bool {
		gs.Records = append(gs.Records, record)
		return false
	}); err != nil {
		return nil, err
	}

	return gs, nil
}
