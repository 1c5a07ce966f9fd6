package testfactory

import (
	"bytes"
	"sort"

	"github.com/gagliardetto/solana-go"
)

// ProgramID is the program id the test fixtures derive addresses under. Any
// valid key works; a well known one keeps derived addresses stable.
var ProgramID = solana.MustPublicKeyFromBase58("MemoSq4gqABAXKb96qnH8TysNcWxMyWCqXgDLGmfcHr")

func Repeat[T any](s T, count int) []T {
	ss := make([]T, count)
	for i := range count {
		ss[i] = s
	}
	return ss
}

// RandomPublicKey returns the public key of a freshly generated ed25519 key pair.
func RandomPublicKey() solana.PublicKey {
	priv, err := solana.NewRandomPrivateKey()
	if err != nil {
		panic(err)
	}
	return priv.PublicKey()
}

// RandomPublicKeys returns count random public keys sorted in byte order.
func RandomPublicKeys(count int) []solana.PublicKey {
	keys := make([]solana.PublicKey, 0, count)
	for range count {
		keys = append(keys, RandomPublicKey())
	}

	SortPublicKeys(keys)
	return keys
}

func SortPublicKeys(src []solana.PublicKey) {
	sort.Slice(src, func(i, j int) bool { return bytes.Compare(src[i][:], src[j][:]) < 0 })
}

// Identity bundles the keys a chests test scenario needs.
type Identity struct {
	Admin     solana.PublicKey
	Vault     solana.PublicKey
	Recipient solana.PublicKey
	Mint      solana.PublicKey
}

// RandomIdentity returns an Identity with independent random keys.
func RandomIdentity() Identity {
	return Identity{
		Admin:     RandomPublicKey(),
		Vault:     RandomPublicKey(),
		Recipient: RandomPublicKey(),
		Mint:      RandomPublicKey(),
	}
}
