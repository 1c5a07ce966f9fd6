package types

import (
	"cosmossdk.io/collections"
	"github.com/gagliardetto/solana-go"
)

const (
	// ModuleName defines the module name
	ModuleName = "chests"

	// StoreKey defines the primary module store key
	StoreKey = ModuleName

	// MaxPaginationLimit is the maximum number of records returned in a paginated query.
	MaxPaginationLimit = 100
)

var (
	ConfigKeyPrefix     = collections.NewPrefix(0)
	MintRecordKeyPrefix = collections.NewPrefix(1)
)

// DefaultProgramID is the program id declared by the reference deployment.
// Real deployments override it when constructing the keeper.
var DefaultProgramID = solana.MustPublicKeyFromBase58("11111111111111111111111111111111")
