package types

import (
	"bytes"
	"crypto/sha256"

	errorsmod "cosmossdk.io/errors"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"
	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
)

var (
	InitializeConfigDiscriminator = instructionDiscriminator("initialize_config")
	CreateMintRecordDiscriminator = instructionDiscriminator("create_mint_record")
	ConfirmMintDiscriminator      = instructionDiscriminator("confirm_mint")
)

// instructionDiscriminator returns sha256("global:<name>")[:8].
func instructionDiscriminator(name string) [DiscriminatorLength]byte {
	sum := sha256.Sum256([]byte("global:" + name))
	var d [DiscriminatorLength]byte
	copy(d[:], sum[:DiscriminatorLength])
	return d
}

// Account order of each instruction:
//
//	initialize_config:  [config, admin, system_program]
//	create_mint_record: [config, record, admin, system_program]
//	confirm_mint:       [config, record, admin, vault_token_account]
const (
	initializeConfigAccounts = 3
	createMintRecordAccounts = 4
	confirmMintAccounts      = 4
)

// InstructionData encodes msg as instruction data.
func (msg *MsgInitializeConfig) InstructionData() ([]byte, error) {
	return encodeInstruction(InitializeConfigDiscriminator, func(enc *bin.Encoder) error {
		return enc.WriteBytes(msg.Vault[:], false)
	})
}

// InstructionAccounts returns the accounts the instruction references.
func (msg *MsgInitializeConfig) InstructionAccounts(programID solana.PublicKey) ([]solana.PublicKey, error) {
	config, _, err := ConfigAddress(programID)
	if err != nil {
		return nil, err
	}
	return []solana.PublicKey{config, msg.Payer, solana.SystemProgramID}, nil
}

// InstructionData encodes msg as instruction data.
func (msg *MsgCreateMintRecord) InstructionData() ([]byte, error) {
	return encodeInstruction(CreateMintRecordDiscriminator, func(enc *bin.Encoder) error {
		if err := enc.WriteBytes(msg.Recipient[:], false); err != nil {
			return err
		}
		if err := enc.WriteUint8(msg.Rarity); err != nil {
			return err
		}
		return enc.WriteUint64(msg.ClientNonce, bin.LE)
	})
}

// InstructionAccounts returns the accounts the instruction references.
func (msg *MsgCreateMintRecord) InstructionAccounts(programID solana.PublicKey) ([]solana.PublicKey, error) {
	config, _, err := ConfigAddress(programID)
	if err != nil {
		return nil, err
	}
	record, _, err := MintRecordAddress(programID, msg.Recipient, msg.ClientNonce)
	if err != nil {
		return nil, err
	}
	return []solana.PublicKey{config, record, msg.Admin, solana.SystemProgramID}, nil
}

// InstructionData encodes msg as instruction data.
func (msg *MsgConfirmMint) InstructionData() ([]byte, error) {
	return encodeInstruction(ConfirmMintDiscriminator, func(enc *bin.Encoder) error {
		if err := enc.WriteBytes(msg.Recipient[:], false); err != nil {
			return err
		}
		if err := enc.WriteUint64(msg.ClientNonce, bin.LE); err != nil {
			return err
		}
		return enc.WriteBytes(msg.Mint[:], false)
	})
}

// InstructionAccounts returns the accounts the instruction references.
func (msg *MsgConfirmMint) InstructionAccounts(programID solana.PublicKey) ([]solana.PublicKey, error) {
	config, _, err := ConfigAddress(programID)
	if err != nil {
		return nil, err
	}
	record, _, err := MintRecordAddress(programID, msg.Recipient, msg.ClientNonce)
	if err != nil {
		return nil, err
	}
	return []solana.PublicKey{config, record, msg.Admin, msg.VaultTokenAccount}, nil
}

// DecodeInstruction decodes instruction data and its account list into the
// corresponding message. Derived accounts are checked against programID.
func DecodeInstruction(programID solana.PublicKey, data []byte, accounts []solana.PublicKey) (Msg, error) {
	if len(data) < DiscriminatorLength {
		return nil, errorsmod.Wrapf(sdkerrors.ErrInvalidRequest, "instruction data too short: %d bytes", len(data))
	}

	var discriminator [DiscriminatorLength]byte
	copy(discriminator[:], data)
	dec := bin.NewBorshDecoder(data[DiscriminatorLength:])

	var (
		msg Msg
		err error
	)
	switch discriminator {
	case InitializeConfigDiscriminator:
		msg, err = decodeInitializeConfig(dec, accounts)
	case CreateMintRecordDiscriminator:
		msg, err = decodeCreateMintRecord(dec, accounts)
	case ConfirmMintDiscriminator:
		msg, err = decodeConfirmMint(dec, accounts)
	default:
		return nil, errorsmod.Wrapf(ErrUnknownInstruction, "discriminator %x", discriminator)
	}
	if err != nil {
		return nil, err
	}
	if dec.Remaining() != 0 {
		return nil, errorsmod.Wrapf(sdkerrors.ErrInvalidRequest, "%d trailing bytes in instruction data", dec.Remaining())
	}

	expected, err := instructionAccounts(programID, msg)
	if err != nil {
		return nil, err
	}
	for i, account := range expected {
		if !account.Equals(accounts[i]) {
			return nil, errorsmod.Wrapf(ErrAddressMismatch, "account %d: expected %s, got %s", i, account, accounts[i])
		}
	}
	return msg, nil
}

func instructionAccounts(programID solana.PublicKey, msg Msg) ([]solana.PublicKey, error) {
	switch msg := msg.(type) {
	case *MsgInitializeConfig:
		return msg.InstructionAccounts(programID)
	case *MsgCreateMintRecord:
		return msg.InstructionAccounts(programID)
	case *MsgConfirmMint:
		return msg.InstructionAccounts(programID)
	default:
		return nil, errorsmod.Wrapf(ErrUnknownInstruction, "%T", msg)
	}
}

func decodeInitializeConfig(dec *bin.Decoder, accounts []solana.PublicKey) (*MsgInitializeConfig, error) {
	if err := requireAccounts(accounts, initializeConfigAccounts); err != nil {
		return nil, err
	}
	vault, err := readPublicKey(dec)
	if err != nil {
		return nil, errorsmod.Wrap(sdkerrors.ErrInvalidRequest, err.Error())
	}
	return NewMsgInitializeConfig(accounts[1], vault), nil
}

func decodeCreateMintRecord(dec *bin.Decoder, accounts []solana.PublicKey) (*MsgCreateMintRecord, error) {
	if err := requireAccounts(accounts, createMintRecordAccounts); err != nil {
		return nil, err
	}
	recipient, err := readPublicKey(dec)
	if err != nil {
		return nil, errorsmod.Wrap(sdkerrors.ErrInvalidRequest, err.Error())
	}
	rarity, err := dec.ReadUint8()
	if err != nil {
		return nil, errorsmod.Wrap(sdkerrors.ErrInvalidRequest, err.Error())
	}
	nonce, err := dec.ReadUint64(bin.LE)
	if err != nil {
		return nil, errorsmod.Wrap(sdkerrors.ErrInvalidRequest, err.Error())
	}
	return NewMsgCreateMintRecord(accounts[2], recipient, rarity, nonce), nil
}

func decodeConfirmMint(dec *bin.Decoder, accounts []solana.PublicKey) (*MsgConfirmMint, error) {
	if err := requireAccounts(accounts, confirmMintAccounts); err != nil {
		return nil, err
	}
	recipient, err := readPublicKey(dec)
	if err != nil {
		return nil, errorsmod.Wrap(sdkerrors.ErrInvalidRequest, err.Error())
	}
	nonce, err := dec.ReadUint64(bin.LE)
	if err != nil {
		return nil, errorsmod.Wrap(sdkerrors.ErrInvalidRequest, err.Error())
	}
	mint, err := readPublicKey(dec)
	if err != nil {
		return nil, errorsmod.Wrap(sdkerrors.ErrInvalidRequest, err.Error())
	}
	return NewMsgConfirmMint(accounts[2], recipient, nonce, mint, accounts[3]), nil
}

func requireAccounts(accounts []solana.PublicKey, n int) error {
	if len(accounts) < n {
		return errorsmod.Wrapf(sdkerrors.ErrInvalidRequest, "expected %d accounts, got %d", n, len(accounts))
	}
	return nil
}

func encodeInstruction(discriminator [DiscriminatorLength]byte, args func(enc *bin.Encoder) error) ([]byte, error) {
	buf := new(bytes.Buffer)
	buf.Write(discriminator[:])
	if err := args(bin.NewBorshEncoder(buf)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
