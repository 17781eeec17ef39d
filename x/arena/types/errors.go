package types

import (
	errorsmod "cosmossdk.io/errors"
)

var (
	ErrInvalidAssetReference  = errorsmod.Register(ModuleName, 2, "invalid asset reference")
	ErrNotOwner               = errorsmod.Register(ModuleName, 3, "caller is not the owner")
	ErrInvalidAddress         = errorsmod.Register(ModuleName, 4, "invalid address")
	ErrArenaNotFound          = errorsmod.Register(ModuleName, 5, "arena does not exist")
	ErrArenaInactiveOrMissing = errorsmod.Register(ModuleName, 6, "arena not active")
	ErrInvalidEntryFee        = errorsmod.Register(ModuleName, 7, "entry fee must be positive")
	ErrGameNotFound           = errorsmod.Register(ModuleName, 8, "game does not exist")
	ErrAlreadyJoined          = errorsmod.Register(ModuleName, 9, "already joined")
	ErrGameFull               = errorsmod.Register(ModuleName, 10, "game full")
	ErrWinnerNotParticipant   = errorsmod.Register(ModuleName, 11, "winner not in game")
	ErrGameAlreadyCompleted   = errorsmod.Register(ModuleName, 12, "game already completed")
	ErrGameNotFull            = errorsmod.Register(ModuleName, 13, "game not full")
	ErrNoFeesToWithdraw       = errorsmod.Register(ModuleName, 14, "no fees to withdraw")
	ErrReentrantCall          = errorsmod.Register(ModuleName, 15, "reentrant call")
	ErrInvalidGenesis         = errorsmod.Register(ModuleName, 16, "invalid genesis state")
)
