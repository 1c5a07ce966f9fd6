package keeper

import (
	"context"
	"errors"

	errorsmod "cosmossdk.io/errors"
	"github.com/cosmos/cosmos-sdk/telemetry"
	sdk "github.com/cosmos/cosmos-sdk/types"
	metrics "github.com/hashicorp/go-metrics"

	"github.com/citychests/citychests-app/x/chests/types"
)

var _ types.MsgServer = msgServer{}

type msgServer struct {
	*Keeper
}

// NewMsgServerImpl creates and returns a new module MsgServer instance.
func NewMsgServerImpl(keeper *Keeper) types.MsgServer {
	return &msgServer{keeper}
}

// InitializeConfig implements types.MsgServer. The payer becomes the admin.
func (m msgServer) InitializeConfig(ctx context.Context, msg *types.MsgInitializeConfig) (*types.MsgInitializeConfigResponse, error) {
	exists, err := m.HasConfig(ctx)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, errorsmod.Wrapf(types.ErrConfigExists, "config at %s", m.configAddress)
	}

	config := types.Config{
		Admin: msg.Payer,
		Vault: msg.Vault,
		Bump:  m.configBump,
	}
	if err := m.configs.Set(ctx, m.configAddress.Bytes(), config); err != nil {
		return nil, err
	}

	m.Logger(ctx).Info("initialized config", "address", m.configAddress.String(), "admin", config.Admin.String(), "vault", config.Vault.String())

	return &types.MsgInitializeConfigResponse{
		Address: m.configAddress,
	}, nil
}

// CreateMintRecord implements types.MsgServer.
func (m msgServer) CreateMintRecord(ctx context.Context, msg *types.MsgCreateMintRecord) (*types.MsgCreateMintRecordResponse, error) {
	config, err := m.GetConfig(ctx)
	if err != nil {
		return nil, err
	}
	if err := authorize(msg.Admin, config); err != nil {
		return nil, err
	}

	address, _, err := m.MintRecordAddress(msg.Recipient, msg.ClientNonce)
	if err != nil {
		return nil, err
	}
	exists, err := m.records.Has(ctx, address.Bytes())
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, errorsmod.Wrapf(types.ErrRecordExists, "record at %s for %s/%d", address, msg.Recipient, msg.ClientNonce)
	}

	sdkCtx := sdk.UnwrapSDKContext(ctx)
	record := types.NewMintRecord(msg.Recipient, msg.Rarity, msg.ClientNonce, sdkCtx.BlockTime().Unix())
	if err := m.records.Set(ctx, address.Bytes(), record); err != nil {
		return nil, err
	}

	EmitMintRecordCreatedEvent(sdkCtx, record)
	telemetry.IncrCounter(1, types.ModuleName, "mint_record_created")
	m.Logger(ctx).Info("created mint record", "address", address.String(), "recipient", msg.Recipient.String(), "client_nonce", msg.ClientNonce)

	return &types.MsgCreateMintRecordResponse{
		Address: address,
	}, nil
}

// ConfirmMint implements types.MsgServer. The vault post-conditions are
// checked before the record is touched.
func (m msgServer) ConfirmMint(ctx context.Context, msg *types.MsgConfirmMint) (*types.MsgConfirmMintResponse, error) {
	config, err := m.GetConfig(ctx)
	if err != nil {
		return nil, err
	}
	if err := authorize(msg.Admin, config); err != nil {
		return nil, err
	}

	account, err := m.tokenKeeper.GetTokenAccount(ctx, msg.VaultTokenAccount)
	if err != nil {
		return nil, err
	}
	if err := types.ValidateVaultAccount(account, config.Vault, msg.Mint); err != nil {
		incrConfirmRejected(err)
		return nil, err
	}

	record, address, err := m.GetMintRecord(ctx, msg.Recipient, msg.ClientNonce)
	if err != nil {
		return nil, err
	}
	if record.Minted {
		incrConfirmRejected(types.ErrAlreadyConfirmed)
		return nil, errorsmod.Wrapf(types.ErrAlreadyConfirmed, "record at %s already holds mint %s", address, record.Mint)
	}

	record.Mint = msg.Mint
	record.Minted = true
	if err := m.records.Set(ctx, address.Bytes(), record); err != nil {
		return nil, err
	}

	EmitMintConfirmedEvent(sdk.UnwrapSDKContext(ctx), record)
	telemetry.IncrCounter(1, types.ModuleName, "mint_confirmed")
	m.Logger(ctx).Info("confirmed mint", "address", address.String(), "mint", msg.Mint.String())

	return &types.MsgConfirmMintResponse{}, nil
}

func incrConfirmRejected(err error) {
	reason := "other"
	switch {
	case errors.Is(err, types.ErrWrongVaultOwner):
		reason = "wrong_vault_owner"
	case errors.Is(err, types.ErrWrongMint):
		reason = "wrong_mint"
	case errors.Is(err, types.ErrWrongAmount):
		reason = "wrong_amount"
	case errors.Is(err, types.ErrAlreadyConfirmed):
		reason = "already_confirmed"
	}
	telemetry.IncrCounterWithLabels(
		[]string{types.ModuleName, "mint_confirm_rejected"},
		1,
		[]metrics.Label{telemetry.NewLabel("reason", reason)},
	)
}
