package types

import (
	"strconv"

	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/gagliardetto/solana-go"
)

const (
	EventTypeMintRecordCreated = "chests.mint_record_created"
	EventTypeMintConfirmed     = "chests.mint_confirmed"

	AttributeKeyRecipient   = "recipient"
	AttributeKeyRarity      = "rarity"
	AttributeKeyClientNonce = "client_nonce"
	AttributeKeyMint        = "mint"
)

// NewMintRecordCreatedEvent constructs the event emitted when a record is created.
func NewMintRecordCreatedEvent(recipient solana.PublicKey, rarity uint8, clientNonce uint64) sdk.Event {
	return sdk.NewEvent(
		EventTypeMintRecordCreated,
		sdk.NewAttribute(AttributeKeyRecipient, recipient.String()),
		sdk.NewAttribute(AttributeKeyRarity, strconv.FormatUint(uint64(rarity), 10)),
		sdk.NewAttribute(AttributeKeyClientNonce, strconv.FormatUint(clientNonce, 10)),
	)
}

// NewMintConfirmedEvent constructs the event emitted when a record is confirmed.
func NewMintConfirmedEvent(recipient, mint solana.PublicKey, clientNonce uint64) sdk.Event {
	return sdk.NewEvent(
		EventTypeMintConfirmed,
		sdk.NewAttribute(AttributeKeyRecipient, recipient.String()),
		sdk.NewAttribute(AttributeKeyMint, mint.String()),
		sdk.NewAttribute(AttributeKeyClientNonce, strconv.FormatUint(clientNonce, 10)),
	)
}
