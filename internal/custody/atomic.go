package custody

import (
	"context"

	"cosmossdk.io/collections"
	errorsmod "cosmossdk.io/errors"
	sdk "github.com/cosmos/cosmos-sdk/types"
)

// Atomic runs fn on a branch of the multistore and writes the branch back only
// when fn succeeds. Events emitted inside fn reach the parent context on write.
func Atomic(ctx context.Context, fn func(ctx context.Context) error) error {
	sdkCtx := sdk.UnwrapSDKContext(ctx)
	cacheCtx, write := sdkCtx.CacheContext()
	if err := fn(cacheCtx); err != nil {
		return err
	}
	write()
	return nil
}

// Guard is a set of per-entity locks kept in the module store. A lock only
// lives for the duration of one operation, so the set is empty at rest.
type Guard struct {
	locks collections.KeySet[string]
	// errLocked is returned to a caller that re-enters a held lock.
	errLocked error
}

// NewGuard registers the lock set under prefix.
func NewGuard(sb *collections.SchemaBuilder, prefix collections.Prefix, errLocked error) Guard {
	return Guard{
		locks:     collections.NewKeySet(sb, prefix, "locks", collections.StringKey),
		errLocked: errLocked,
	}
}

// Exclusive runs fn atomically while holding the lock for key.
func (g Guard) Exclusive(ctx context.Context, key string, fn func(ctx context.Context) error) error {
	return Atomic(ctx, func(ctx context.Context) error {
		held, err := g.locks.Has(ctx, key)
		if err != nil {
			return err
		}
		if held {
			return errorsmod.Wrapf(g.errLocked, "lock %s is held", key)
		}
		if err := g.locks.Set(ctx, key); err != nil {
			return err
		}
		if err := fn(ctx); err != nil {
			return err
		}
		return g.locks.Remove(ctx, key)
	})
}

// Held lists the locks currently set. It is empty outside of an operation.
func (g Guard) Held(ctx context.Context) ([]string, error) {
	var keys []string
	err := g.locks.Walk(ctx, nil, func(key string) (bool, error) {
		keys = append(keys, key)
		return false, nil
	})
	return keys, err
}
