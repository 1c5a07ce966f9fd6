package types

import (
	"bytes"
	"crypto/sha256"
	"fmt"

	errorsmod "cosmossdk.io/errors"
	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
)

const (
	// DiscriminatorLength is the length of the record type prefix.
	DiscriminatorLength = 8

	// ConfigLen is the size of an encoded Config without its discriminator.
	ConfigLen = 32 + 32 + 1

	// MintRecordLen is the size of an encoded MintRecord without its discriminator.
	MintRecordLen = 32 + 1 + 32 + 1 + 8 + 8
)

var (
	ConfigDiscriminator     = accountDiscriminator("Config")
	MintRecordDiscriminator = accountDiscriminator("MintRecord")
)

// accountDiscriminator returns sha256("account:<name>")[:8], the prefix the
// host runtime uses to identify a record type.
func accountDiscriminator(name string) [DiscriminatorLength]byte {
	sum := sha256.Sum256([]byte("account:" + name))
	var d [DiscriminatorLength]byte
	copy(d[:], sum[:DiscriminatorLength])
	return d
}

// Config is the singleton record holding the administrator and vault
// identities.
type Config struct {
	Admin solana.PublicKey `json:"admin"`
	Vault solana.PublicKey `json:"vault"`
	Bump  uint8            `json:"bump"`
}

// MarshalWithEncoder writes the fixed-width layout of c.
func (c Config) MarshalWithEncoder(enc *bin.Encoder) error {
	if err := enc.WriteBytes(c.Admin[:], false); err != nil {
		return err
	}
	if err := enc.WriteBytes(c.Vault[:], false); err != nil {
		return err
	}
	return enc.WriteUint8(c.Bump)
}

// UnmarshalWithDecoder reads the fixed-width layout of c.
func (c *Config) UnmarshalWithDecoder(dec *bin.Decoder) (err error) {
	if c.Admin, err = readPublicKey(dec); err != nil {
		return err
	}
	if c.Vault, err = readPublicKey(dec); err != nil {
		return err
	}
	c.Bump, err = dec.ReadUint8()
	return err
}

// MarshalAccount returns the discriminator-prefixed account data of c.
func (c Config) MarshalAccount() ([]byte, error) {
	return marshalAccount(ConfigDiscriminator, c)
}

// UnmarshalConfig decodes discriminator-prefixed account data into a Config.
func UnmarshalConfig(data []byte) (Config, error) {
	var c Config
	if err := unmarshalAccount(data, ConfigDiscriminator, ConfigLen, &c); err != nil {
		return Config{}, errorsmod.Wrap(err, "config")
	}
	return c, nil
}

// MintRecord tracks one mint request through pending and confirmed.
type MintRecord struct {
	Recipient   solana.PublicKey `json:"recipient"`
	Rarity      uint8            `json:"rarity"`
	Mint        solana.PublicKey `json:"mint"`
	Minted      bool             `json:"minted"`
	ClientNonce uint64           `json:"client_nonce"`
	CreatedAt   int64            `json:"created_at"`
}

// NewMintRecord returns a pending record.
func NewMintRecord(recipient solana.PublicKey, rarity uint8, clientNonce uint64, createdAt int64) MintRecord {
	return MintRecord{
		Recipient:   recipient,
		Rarity:      rarity,
		Mint:        solana.PublicKey{},
		Minted:      false,
		ClientNonce: clientNonce,
		CreatedAt:   createdAt,
	}
}

// Status returns the lifecycle state of the record.
func (r MintRecord) Status() RecordStatus {
	if r.Minted {
		return StatusConfirmed
	}
	return StatusPending
}

// MarshalWithEncoder writes the fixed-width layout of r.
func (r MintRecord) MarshalWithEncoder(enc *bin.Encoder) error {
	if err := enc.WriteBytes(r.Recipient[:], false); err != nil {
		return err
	}
	if err := enc.WriteUint8(r.Rarity); err != nil {
		return err
	}
	if err := enc.WriteBytes(r.Mint[:], false); err != nil {
		return err
	}
	if err := enc.WriteBool(r.Minted); err != nil {
		return err
	}
	if err := enc.WriteUint64(r.ClientNonce, bin.LE); err != nil {
		return err
	}
	return enc.WriteInt64(r.CreatedAt, bin.LE)
}

// UnmarshalWithDecoder reads the fixed-width layout of r.
func (r *MintRecord) UnmarshalWithDecoder(dec *bin.Decoder) (err error) {
	if r.Recipient, err = readPublicKey(dec); err != nil {
		return err
	}
	if r.Rarity, err = dec.ReadUint8(); err != nil {
		return err
	}
	if r.Mint, err = readPublicKey(dec); err != nil {
		return err
	}
	if r.Minted, err = dec.ReadBool(); err != nil {
		return err
	}
	if r.ClientNonce, err = dec.ReadUint64(bin.LE); err != nil {
		return err
	}
	r.CreatedAt, err = dec.ReadInt64(bin.LE)
	return err
}

// MarshalAccount returns the discriminator-prefixed account data of r.
func (r MintRecord) MarshalAccount() ([]byte, error) {
	return marshalAccount(MintRecordDiscriminator, r)
}

// UnmarshalMintRecord decodes discriminator-prefixed account data into a MintRecord.
func UnmarshalMintRecord(data []byte) (MintRecord, error) {
	var r MintRecord
	if err := unmarshalAccount(data, MintRecordDiscriminator, MintRecordLen, &r); err != nil {
		return MintRecord{}, errorsmod.Wrap(err, "mint record")
	}
	return r, nil
}

func readPublicKey(dec *bin.Decoder) (solana.PublicKey, error) {
	bz, err := dec.ReadNBytes(solana.PublicKeyLength)
	if err != nil {
		return solana.PublicKey{}, err
	}
	var key solana.PublicKey
	copy(key[:], bz)
	return key, nil
}

func marshalAccount(discriminator [DiscriminatorLength]byte, v bin.BinaryMarshaler) ([]byte, error) {
	buf := new(bytes.Buffer)
	buf.Write(discriminator[:])
	if err := v.MarshalWithEncoder(bin.NewBorshEncoder(buf)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func unmarshalAccount(data []byte, discriminator [DiscriminatorLength]byte, size int, v bin.BinaryUnmarshaler) error {
	if len(data) != DiscriminatorLength+size {
		return errorsmod.Wrapf(ErrInvalidAccountData, "expected %d bytes, got %d", DiscriminatorLength+size, len(data))
	}
	if !bytes.Equal(data[:DiscriminatorLength], discriminator[:]) {
		return errorsmod.Wrapf(ErrInvalidAccountData, "unexpected discriminator %x", data[:DiscriminatorLength])
	}
	if err := v.UnmarshalWithDecoder(bin.NewBorshDecoder(data[DiscriminatorLength:])); err != nil {
		return errorsmod.Wrap(ErrInvalidAccountData, err.Error())
	}
	return nil
}

// RecordStatus filters records by lifecycle state.
type RecordStatus uint8

const (
	StatusAll RecordStatus = iota
	StatusPending
	StatusConfirmed
)

func (s RecordStatus) String() string {
	switch s {
	case StatusAll:
		return "all"
	case StatusPending:
		return "pending"
	case StatusConfirmed:
		return "confirmed"
	default:
		return fmt.Sprintf("RecordStatus(%d)", uint8(s))
	}
}

// ParseRecordStatus parses the string form of a RecordStatus.
func ParseRecordStatus(s string) (RecordStatus, error) {
	switch s {
	case "", "all":
		return StatusAll, nil
	case "pending":
		return StatusPending, nil
	case "confirmed":
		return StatusConfirmed, nil
	default:
		return 0, fmt.Errorf("unknown record status %q", s)
	}
}

// Matches reports whether r is selected by s.
func (s RecordStatus) Matches(r MintRecord) bool {
	return s == StatusAll || r.Status() == s
}
