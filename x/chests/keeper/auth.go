package keeper

import (
	errorsmod "cosmossdk.io/errors"
	"github.com/gagliardetto/solana-go"

	"github.com/citychests/citychests-app/x/chests/types"
)

// authorize is the single access check of the module: the caller must be the
// admin recorded in config. It never touches state.
func authorize(caller solana.PublicKey, config types.Config) error {
	if !caller.Equals(config.Admin) {
		return errorsmod.Wrapf(types.ErrUnauthorized, "expected admin %s, got %s", config.Admin, caller)
	}
	return nil
}
