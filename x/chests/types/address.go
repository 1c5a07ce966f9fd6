package types

import (
	"encoding/binary"

	errorsmod "cosmossdk.io/errors"
	"github.com/gagliardetto/solana-go"
)

var (
	// ConfigSeed is the derivation tag of the singleton Config record.
	ConfigSeed = []byte("config")

	// RecordSeed is the derivation tag of every MintRecord.
	RecordSeed = []byte("record")
)

// NonceBytes encodes a client nonce the way it is used as a derivation seed:
// 8 little-endian bytes.
func NonceBytes(clientNonce uint64) []byte {
	return binary.LittleEndian.AppendUint64(nil, clientNonce)
}

// ConfigSeeds returns the seeds of the Config record address.
func ConfigSeeds() [][]byte {
	return [][]byte{ConfigSeed}
}

// MintRecordSeeds returns the seeds of the MintRecord address for a
// (recipient, clientNonce) pair.
func MintRecordSeeds(recipient solana.PublicKey, clientNonce uint64) [][]byte {
	return [][]byte{RecordSeed, recipient.Bytes(), NonceBytes(clientNonce)}
}

// ConfigAddress derives the address of the Config record and the bump that
// pushes it off the ed25519 curve.
func ConfigAddress(programID solana.PublicKey) (solana.PublicKey, uint8, error) {
	return solana.FindProgramAddress(ConfigSeeds(), programID)
}

// MintRecordAddress derives the address of the MintRecord for a
// (recipient, clientNonce) pair.
//
// Algorithm (program derived address):
// 1. for bump in 255..0: h = sha256("record" || recipient || le64(nonce) || bump || programID || "ProgramDerivedAddress")
// 2. the first h that is not a valid ed25519 point is the address
func MintRecordAddress(programID, recipient solana.PublicKey, clientNonce uint64) (solana.PublicKey, uint8, error) {
	return solana.FindProgramAddress(MintRecordSeeds(recipient, clientNonce), programID)
}

// VerifyAddress recomputes the address for seeds and bump and checks it
// against want.
func VerifyAddress(programID solana.PublicKey, seeds [][]byte, bump uint8, want solana.PublicKey) error {
	withBump := make([][]byte, 0, len(seeds)+1)
	withBump = append(withBump, seeds...)
	withBump = append(withBump, []byte{bump})

	got, err := solana.CreateProgramAddress(withBump, programID)
	if err != nil {
		return errorsmod.Wrapf(ErrAddressMismatch, "bump %d: %s", bump, err)
	}
	if !got.Equals(want) {
		return errorsmod.Wrapf(ErrAddressMismatch, "expected %s, got %s", got, want)
	}
	return nil
}
