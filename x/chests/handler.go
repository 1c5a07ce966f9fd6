package chests

import (
	"fmt"

	errorsmod "cosmossdk.io/errors"
	sdk "github.com/cosmos/cosmos-sdk/types"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"

	"github.com/citychests/citychests-app/x/chests/keeper"
	"github.com/citychests/citychests-app/x/chests/types"
)

// Handler executes a single chests message against the store.
type Handler func(ctx sdk.Context, msg types.Msg) (*sdk.Result, error)

// NewHandler uses the provided chests keeper to create a Handler. Each message
// runs in a cached context which is only written back when the message
// succeeds, so a failed message leaves no state or events behind.
func NewHandler(k *keeper.Keeper) Handler {
	msgServer := keeper.NewMsgServerImpl(k)

	return func(ctx sdk.Context, msg types.Msg) (*sdk.Result, error) {
		if err := msg.ValidateBasic(); err != nil {
			return nil, err
		}

		cacheCtx, write := ctx.CacheContext()

		var err error
		switch msg := msg.(type) {
		case *types.MsgInitializeConfig:
			_, err = msgServer.InitializeConfig(cacheCtx, msg)
		case *types.MsgCreateMintRecord:
			_, err = msgServer.CreateMintRecord(cacheCtx, msg)
		case *types.MsgConfirmMint:
			_, err = msgServer.ConfirmMint(cacheCtx, msg)
		default:
			return nil, errorsmod.Wrapf(sdkerrors.ErrUnknownRequest, "unrecognized %s message type: %T", types.ModuleName, msg)
		}
		if err != nil {
			return nil, err
		}

		write()

		k.Logger(ctx).Debug("handled message", "type", fmt.Sprintf("%T", msg))

		return &sdk.Result{Events: cacheCtx.EventManager().ABCIEvents()}, nil
	}
}
