package types

import (
	"context"

	errorsmod "cosmossdk.io/errors"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"
	"github.com/gagliardetto/solana-go"
)

// Msg is implemented by every message the chests module handles.
type Msg interface {
	ValidateBasic() error
	// GetSigner returns the identity whose signature authorizes the message.
	GetSigner() solana.PublicKey
}

var (
	_ Msg = &MsgInitializeConfig{}
	_ Msg = &MsgCreateMintRecord{}
	_ Msg = &MsgConfirmMint{}
)

// MsgServer is the server API for the chests module's messages.
type MsgServer interface {
	InitializeConfig(context.Context, *MsgInitializeConfig) (*MsgInitializeConfigResponse, error)
	CreateMintRecord(context.Context, *MsgCreateMintRecord) (*MsgCreateMintRecordResponse, error)
	ConfirmMint(context.Context, *MsgConfirmMint) (*MsgConfirmMintResponse, error)
}

// MsgInitializeConfig creates the Config record. The payer becomes the admin.
type MsgInitializeConfig struct {
	Payer solana.PublicKey `json:"payer"`
	Vault solana.PublicKey `json:"vault"`
}

// MsgInitializeConfigResponse returns the address the Config was written to.
type MsgInitializeConfigResponse struct {
	Address solana.PublicKey `json:"address"`
}

// NewMsgInitializeConfig returns a new MsgInitializeConfig.
func NewMsgInitializeConfig(payer, vault solana.PublicKey) *MsgInitializeConfig {
	return &MsgInitializeConfig{Payer: payer, Vault: vault}
}

func (msg *MsgInitializeConfig) GetSigner() solana.PublicKey { return msg.Payer }

// ValidateBasic performs stateless validation.
func (msg *MsgInitializeConfig) ValidateBasic() error {
	if msg.Payer.IsZero() {
		return errorsmod.Wrap(sdkerrors.ErrInvalidAddress, "payer must be non-zero")
	}
	if msg.Vault.IsZero() {
		return errorsmod.Wrap(sdkerrors.ErrInvalidAddress, "vault must be non-zero")
	}
	return nil
}

// MsgCreateMintRecord creates a pending MintRecord for (Recipient, ClientNonce).
type MsgCreateMintRecord struct {
	Admin       solana.PublicKey `json:"admin"`
	Recipient   solana.PublicKey `json:"recipient"`
	Rarity      uint8            `json:"rarity"`
	ClientNonce uint64           `json:"client_nonce"`
}

// MsgCreateMintRecordResponse returns the address the record was written to.
type MsgCreateMintRecordResponse struct {
	Address solana.PublicKey `json:"address"`
}

// NewMsgCreateMintRecord returns a new MsgCreateMintRecord.
func NewMsgCreateMintRecord(admin, recipient solana.PublicKey, rarity uint8, clientNonce uint64) *MsgCreateMintRecord {
	return &MsgCreateMintRecord{
		Admin:       admin,
		Recipient:   recipient,
		Rarity:      rarity,
		ClientNonce: clientNonce,
	}
}

func (msg *MsgCreateMintRecord) GetSigner() solana.PublicKey { return msg.Admin }

// ValidateBasic performs stateless validation. Rarity is opaque and not
// range checked.
func (msg *MsgCreateMintRecord) ValidateBasic() error {
	if msg.Admin.IsZero() {
		return errorsmod.Wrap(sdkerrors.ErrInvalidAddress, "admin must be non-zero")
	}
	if msg.Recipient.IsZero() {
		return errorsmod.Wrap(sdkerrors.ErrInvalidAddress, "recipient must be non-zero")
	}
	return nil
}

// MsgConfirmMint records that Mint was minted into the vault for the
// (Recipient, ClientNonce) record.
type MsgConfirmMint struct {
	Admin             solana.PublicKey `json:"admin"`
	Recipient         solana.PublicKey `json:"recipient"`
	ClientNonce       uint64           `json:"client_nonce"`
	Mint              solana.PublicKey `json:"mint"`
	VaultTokenAccount solana.PublicKey `json:"vault_token_account"`
}

// MsgConfirmMintResponse is empty.
type MsgConfirmMintResponse struct{}

// NewMsgConfirmMint returns a new MsgConfirmMint.
func NewMsgConfirmMint(admin, recipient solana.PublicKey, clientNonce uint64, mint, vaultTokenAccount solana.PublicKey) *MsgConfirmMint {
	return &MsgConfirmMint{
		Admin:             admin,
		Recipient:         recipient,
		ClientNonce:       clientNonce,
		Mint:              mint,
		VaultTokenAccount: vaultTokenAccount,
	}
}

func (msg *MsgConfirmMint) GetSigner() solana.PublicKey { return msg.Admin }

// ValidateBasic performs stateless validation.
func (msg *MsgConfirmMint) ValidateBasic() error {
	if msg.Admin.IsZero() {
		return errorsmod.Wrap(sdkerrors.ErrInvalidAddress, "admin must be non-zero")
	}
	if msg.Recipient.IsZero() {
		return errorsmod.Wrap(sdkerrors.ErrInvalidAddress, "recipient must be non-zero")
	}
	if msg.Mint.IsZero() {
		return errorsmod.Wrap(sdkerrors.ErrInvalidAddress, "mint must be non-zero")
	}
	if msg.VaultTokenAccount.IsZero() {
		return errorsmod.Wrap(sdkerrors.ErrInvalidAddress, "vault token account must be non-zero")
	}
	return nil
}
