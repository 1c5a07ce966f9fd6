package chests

import (
	"encoding/json"
	"fmt"

	"cosmossdk.io/core/appmodule"
	"github.com/cosmos/cosmos-sdk/client"
	"github.com/cosmos/cosmos-sdk/codec"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/cosmos/cosmos-sdk/types/module"

	"github.com/citychests/citychests-app/x/chests/keeper"
	"github.com/citychests/citychests-app/x/chests/types"
)

var (
	_ appmodule.AppModule        = AppModule{}
	_ module.HasName             = AppModule{}
	_ module.HasConsensusVersion = AppModule{}
	_ module.HasGenesis          = AppModule{}
)

// ConsensusVersion defines the current module consensus version.
const ConsensusVersion = 1

// AppModule defines the chests module.
type AppModule struct {
	keeper *keeper.Keeper
}

// NewAppModule creates a new chests AppModule.
func NewAppModule(keeper *keeper.Keeper) AppModule {
	return AppModule{
		keeper: keeper,
	}
}

// IsAppModule implements the appmodule.AppModule interface.
func (am AppModule) IsAppModule() {}

// IsOnePerModuleType implements the depinject.OnePerModuleType interface.
func (am AppModule) IsOnePerModuleType() {}

// Name returns the chests module's name.
func (AppModule) Name() string { return types.ModuleName }

// ConsensusVersion implements AppModule/ConsensusVersion.
func (AppModule) ConsensusVersion() uint64 { return ConsensusVersion }

// MsgServer returns the module message server.
func (am AppModule) MsgServer() types.MsgServer {
	return keeper.NewMsgServerImpl(am.keeper)
}

// QueryServer returns the module query server.
func (am AppModule) QueryServer() types.QueryServer {
	return keeper.NewQueryServerImpl(am.keeper)
}

// Handler returns the atomic message handler for the module.
func (am AppModule) Handler() Handler {
	return NewHandler(am.keeper)
}

// DefaultGenesis returns default genesis state as raw bytes for the module.
// The genesis types carry base58 addresses and are encoded as plain JSON.
func (AppModule) DefaultGenesis(_ codec.JSONCodec) json.RawMessage {
	bz, err := json.Marshal(types.DefaultGenesis())
	if err != nil {
		panic(err)
	}
	return bz
}

// ValidateGenesis performs genesis state validation for the chests module.
func (am AppModule) ValidateGenesis(_ codec.JSONCodec, _ client.TxEncodingConfig, data json.RawMessage) error {
	var genesisState types.GenesisState
	if err := json.Unmarshal(data, &genesisState); err != nil {
		return fmt.Errorf("failed to unmarshal %s genesis state: %w", types.ModuleName, err)
	}

	return genesisState.Validate(am.keeper.ProgramID())
}

// InitGenesis performs genesis initialization for the chests module.
func (am AppModule) InitGenesis(ctx sdk.Context, _ codec.JSONCodec, data json.RawMessage) {
	var genesisState types.GenesisState
	if err := json.Unmarshal(data, &genesisState); err != nil {
		panic(fmt.Sprintf("failed to unmarshal %s genesis state: %v", types.ModuleName, err))
	}

	if err := am.keeper.InitGenesis(ctx, &genesisState); err != nil {
		panic(fmt.Sprintf("failed to initialize %s genesis state: %v", types.ModuleName, err))
	}
}

// ExportGenesis returns the exported genesis.
func (am AppModule) ExportGenesis(ctx sdk.Context, _ codec.JSONCodec) json.RawMessage {
	genesisState, err := am.keeper.ExportGenesis(ctx)
	if err != nil {
		panic(fmt.Sprintf("failed to export %s genesis state: %v", types.ModuleName, err))
	}

	bz, err := json.Marshal(genesisState)
	if err != nil {
		panic(fmt.Sprintf("failed to marshal %s genesis state: %v", types.ModuleName, err))
	}
	return bz
}
