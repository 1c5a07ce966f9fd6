package types

import (
	errorsmod "cosmossdk.io/errors"
)

// Module error codes scoped by ModuleName.
// NOTE: Error code 1 is reserved by cosmos-sdk as internal error / unknown failure

var (
	ErrUnauthorized         = errorsmod.Register(ModuleName, 2, "unauthorized")
	ErrWrongVaultOwner      = errorsmod.Register(ModuleName, 3, "wrong vault owner")
	ErrWrongMint            = errorsmod.Register(ModuleName, 4, "wrong mint")
	ErrWrongAmount          = errorsmod.Register(ModuleName, 5, "wrong amount")
	ErrConfigExists         = errorsmod.Register(ModuleName, 6, "config already initialized")
	ErrConfigNotFound       = errorsmod.Register(ModuleName, 7, "config not initialized")
	ErrRecordExists         = errorsmod.Register(ModuleName, 8, "mint record already exists")
	ErrRecordNotFound       = errorsmod.Register(ModuleName, 9, "mint record not found")
	ErrAlreadyConfirmed     = errorsmod.Register(ModuleName, 10, "mint record already confirmed")
	ErrInvalidAccountData   = errorsmod.Register(ModuleName, 11, "invalid account data")
	ErrTokenAccountNotFound = errorsmod.Register(ModuleName, 12, "token account not found")
	ErrAddressMismatch      = errorsmod.Register(ModuleName, 13, "derived address does not match provided account")
	ErrUnknownInstruction   = errorsmod.Register(ModuleName, 14, "unknown instruction")
)
