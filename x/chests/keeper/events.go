package keeper

import (
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/citychests/citychests-app/x/chests/types"
)

// EmitMintRecordCreatedEvent signals creation of a pending record.
func EmitMintRecordCreatedEvent(ctx sdk.Context, record types.MintRecord) {
	ctx.EventManager().EmitEvent(types.NewMintRecordCreatedEvent(record.Recipient, record.Rarity, record.ClientNonce))
}

// EmitMintConfirmedEvent signals confirmation of a record.
func EmitMintConfirmedEvent(ctx sdk.Context, record types.MintRecord) {
	ctx.EventManager().EmitEvent(types.NewMintConfirmedEvent(record.Recipient, record.Mint, record.ClientNonce))
}
