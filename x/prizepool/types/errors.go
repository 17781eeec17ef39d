package types

import (
	errorsmod "cosmossdk.io/errors"
)

var (
	ErrInvalidAssetReference   = errorsmod.Register(ModuleName, 2, "invalid asset reference")
	ErrNotOwner                = errorsmod.Register(ModuleName, 3, "caller is not the owner")
	ErrNotAuthorized           = errorsmod.Register(ModuleName, 4, "not authorized: caller is not trusted caller or owner")
	ErrInvalidAddress          = errorsmod.Register(ModuleName, 5, "invalid address")
	ErrInvalidWinner           = errorsmod.Register(ModuleName, 6, "invalid winner address")
	ErrInvalidAmount           = errorsmod.Register(ModuleName, 7, "amount must be greater than 0")
	ErrInsufficientPoolBalance = errorsmod.Register(ModuleName, 8, "insufficient pool balance")
	ErrNoFundsToWithdraw       = errorsmod.Register(ModuleName, 9, "no funds to withdraw")
	ErrInvalidTokenAddress     = errorsmod.Register(ModuleName, 10, "invalid token address")
	ErrNoTokenBalance          = errorsmod.Register(ModuleName, 11, "no token balance")
	ErrInvalidTrustedCaller    = errorsmod.Register(ModuleName, 12, "invalid trusted caller")
	ErrReentrantCall           = errorsmod.Register(ModuleName, 13, "reentrant call")
	ErrInvalidGenesis          = errorsmod.Register(ModuleName, 14, "invalid genesis state")
)
