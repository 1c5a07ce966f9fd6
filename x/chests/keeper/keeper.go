// Package keeper implements the chests module keeper, which stores the
// Config and MintRecord records at their derived addresses.
package keeper

import (
	"context"
	"errors"

	"cosmossdk.io/collections"
	corestore "cosmossdk.io/core/store"
	errorsmod "cosmossdk.io/errors"
	"cosmossdk.io/log"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/gagliardetto/solana-go"

	"github.com/citychests/citychests-app/x/chests/types"
)

// Keeper owns the chests store. Records are keyed by their derived address;
// there is no secondary index.
type Keeper struct {
	configs collections.Map[[]byte, types.Config]
	records collections.Map[[]byte, types.MintRecord]
	schema  collections.Schema

	tokenKeeper types.TokenKeeper

	programID     solana.PublicKey
	configAddress solana.PublicKey
	configBump    uint8
}

// NewKeeper creates and returns a new chests module Keeper. programID is the
// address space the records are derived under.
func NewKeeper(storeService corestore.KVStoreService, tokenKeeper types.TokenKeeper, programID solana.PublicKey) *Keeper {
	if tokenKeeper == nil {
		panic("tokenKeeper cannot be nil")
	}

	sb := collections.NewSchemaBuilder(storeService)

	configs := collections.NewMap(sb, types.ConfigKeyPrefix, "configs", collections.BytesKey, types.ConfigValue)
	records := collections.NewMap(sb, types.MintRecordKeyPrefix, "records", collections.BytesKey, types.MintRecordValue)

	schema, err := sb.Build()
	if err != nil {
		panic(err)
	}

	configAddress, configBump, err := types.ConfigAddress(programID)
	if err != nil {
		panic(err)
	}

	return &Keeper{
		configs:       configs,
		records:       records,
		schema:        schema,
		tokenKeeper:   tokenKeeper,
		programID:     programID,
		configAddress: configAddress,
		configBump:    configBump,
	}
}

// Logger returns the module logger extracted using the sdk context.
func (k *Keeper) Logger(ctx context.Context) log.Logger {
	return sdk.UnwrapSDKContext(ctx).Logger().With("module", "x/"+types.ModuleName)
}

// ProgramID returns the address space records are derived under.
func (k *Keeper) ProgramID() solana.PublicKey {
	return k.programID
}

// ConfigAddress returns the derived address of the Config record and its bump.
func (k *Keeper) ConfigAddress() (solana.PublicKey, uint8) {
	return k.configAddress, k.configBump
}

// HasConfig reports whether the Config record has been initialized.
func (k *Keeper) HasConfig(ctx context.Context) (bool, error) {
	return k.configs.Has(ctx, k.configAddress.Bytes())
}

// GetConfig returns the Config record.
func (k *Keeper) GetConfig(ctx context.Context) (types.Config, error) {
	config, err := k.configs.Get(ctx, k.configAddress.Bytes())
	if errors.Is(err, collections.ErrNotFound) {
		return types.Config{}, errorsmod.Wrapf(types.ErrConfigNotFound, "no config at %s", k.configAddress)
	}
	return config, err
}

// MintRecordAddress derives the address of the record for (recipient, clientNonce).
func (k *Keeper) MintRecordAddress(recipient solana.PublicKey, clientNonce uint64) (solana.PublicKey, uint8, error) {
	return types.MintRecordAddress(k.programID, recipient, clientNonce)
}

// GetMintRecord returns the record for (recipient, clientNonce) and the
// address it is stored at.
func (k *Keeper) GetMintRecord(ctx context.Context, recipient solana.PublicKey, clientNonce uint64) (types.MintRecord, solana.PublicKey, error) {
	address, _, err := k.MintRecordAddress(recipient, clientNonce)
	if err != nil {
		return types.MintRecord{}, solana.PublicKey{}, err
	}

	record, err := k.records.Get(ctx, address.Bytes())
	if errors.Is(err, collections.ErrNotFound) {
		return types.MintRecord{}, address, errorsmod.Wrapf(types.ErrRecordNotFound, "no record at %s for %s/%d", address, recipient, clientNonce)
	}
	if err != nil {
		return types.MintRecord{}, address, err
	}
	return record, address, nil
}

// IterateMintRecords calls cb for every stored record in address order until
// cb returns true.
func (k *Keeper) IterateMintRecords(ctx context.Context, cb func(address solana.PublicKey, record types.MintRecord) (stop bool)) error {
	return k.records.Walk(ctx, nil, func(key []byte, record types.MintRecord) (bool, error) {
		return cb(solana.PublicKeyFromBytes(key), record), nil
	})
}
