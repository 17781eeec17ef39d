package keeper

import (
	"context"
	"errors"

	"cosmossdk.io/collections"
	errorsmod "cosmossdk.io/errors"
	math "cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"botarena/x/arena/types"
)

// CreateArena appends a new active tier. Only the owner may add tiers.
func (k Keeper) CreateArena(ctx context.Context, caller sdk.AccAddress, entryFee math.Int) (uint64, error) {
	if !k.isOwner(caller) {
		return 0, types.ErrNotOwner
	}
	if entryFee.IsNil() || !entryFee.IsPositive() {
		return 0, errorsmod.Wrapf(types.ErrInvalidEntryFee, "got %s", entryFee)
	}

	var id uint64
	err := k.guard.Exclusive(ctx, "arenas", func(ctx context.Context) error {
		count, err := k.getCount(ctx, k.ArenaCount)
		if err != nil {
			return err
		}
		id = count + 1
		if err := k.Arenas.Set(ctx, id, types.Arena{ID: id, EntryFee: entryFee, IsActive: true}); err != nil {
			return err
		}
		return k.ArenaCount.Set(ctx, id)
	})
	if err != nil {
		return 0, err
	}

	k.Logger(ctx).Info("arena created", "arena_id", id, "entry_fee", entryFee.String())
	return id, nil
}

// ToggleArena flips whether new games may be opened on an arena. Existing games are unaffected.
func (k Keeper) ToggleArena(ctx context.Context, caller sdk.AccAddress, arenaID uint64, active bool) error {
	if !k.isOwner(caller) {
		return types.ErrNotOwner
	}
	return k.guard.Exclusive(ctx, "arenas", func(ctx context.Context) error {
		arena, err := k.GetArena(ctx, arenaID)
		if err != nil {
			return err
		}
		arena.IsActive = active
		return k.Arenas.Set(ctx, arenaID, arena)
	})
}

// GetArena returns ErrArenaNotFound for unknown ids.
func (k Keeper) GetArena(ctx context.Context, arenaID uint64) (types.Arena, error) {
	arena, err := k.Arenas.Get(ctx, arenaID)
	if err != nil {
		if errors.Is(err, collections.ErrNotFound) {
			return types.Arena{}, errorsmod.Wrapf(types.ErrArenaNotFound, "arena %d", arenaID)
		}
		return types.Arena{}, err
	}
	return arena, nil
}

// ListArenas returns all arenas ordered by id.
func (k Keeper) ListArenas(ctx context.Context) ([]types.Arena, error) {
	var arenas []types.Arena
	err := k.Arenas.Walk(ctx, nil, func(_ uint64, a types.Arena) (bool, error) {
		arenas = append(arenas, a)
		return false, nil
	})
	return arenas, err
}

func (k Keeper) GetArenaCount(ctx context.Context) (uint64, error) {
	return k.getCount(ctx, k.ArenaCount)
}
