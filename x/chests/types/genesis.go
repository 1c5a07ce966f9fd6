package types

import (
	errorsmod "cosmossdk.io/errors"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"
	"github.com/gagliardetto/solana-go"
)

// GenesisState is the chests module genesis. Records are only allowed when a
// Config is present.
type GenesisState struct {
	Config  *Config      `json:"config,omitempty"`
	Records []MintRecord `json:"records"`
}

// DefaultGenesis returns the default module genesis.
func DefaultGenesis() *GenesisState {
	return &GenesisState{
		Records: []MintRecord{},
	}
}

// NewGenesisState creates a new GenesisState instance.
func NewGenesisState(config *Config, records []MintRecord) *GenesisState {
	return &GenesisState{
		Config:  config,
		Records: records,
	}
}

// Validate performs basic genesis state validation against the addresses
// derived for programID.
func (gs GenesisState) Validate(programID solana.PublicKey) error {
	if gs.Config == nil {
		if len(gs.Records) > 0 {
			return errorsmod.Wrapf(ErrConfigNotFound, "%d mint records without a config", len(gs.Records))
		}
		return nil
	}

	if gs.Config.Admin.IsZero() {
		return errorsmod.Wrap(sdkerrors.ErrInvalidAddress, "config admin must be non-zero")
	}
	if gs.Config.Vault.IsZero() {
		return errorsmod.Wrap(sdkerrors.ErrInvalidAddress, "config vault must be non-zero")
	}
	_, bump, err := ConfigAddress(programID)
	if err != nil {
		return err
	}
	if gs.Config.Bump != bump {
		return errorsmod.Wrapf(ErrAddressMismatch, "config bump %d, derived bump %d", gs.Config.Bump, bump)
	}

	seen := make(map[solana.PublicKey]struct{}, len(gs.Records))
	for _, record := range gs.Records {
		if record.Recipient.IsZero() {
			return errorsmod.Wrapf(sdkerrors.ErrInvalidAddress, "record with nonce %d has a zero recipient", record.ClientNonce)
		}
		if record.Minted == record.Mint.IsZero() {
			return errorsmod.Wrapf(sdkerrors.ErrInvalidRequest, "record %s/%d: minted=%t with mint %s", record.Recipient, record.ClientNonce, record.Minted, record.Mint)
		}

		address, _, err := MintRecordAddress(programID, record.Recipient, record.ClientNonce)
		if err != nil {
			return err
		}
		if _, exists := seen[address]; exists {
			return errorsmod.Wrapf(ErrRecordExists, "duplicate record %s/%d", record.Recipient, record.ClientNonce)
		}
		seen[address] = struct{}{}
	}

	return nil
}
