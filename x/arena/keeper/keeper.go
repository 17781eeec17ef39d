package keeper

import (
	"context"
	"errors"
	"fmt"

	"cosmossdk.io/collections"
	"cosmossdk.io/core/address"
	corestore "cosmossdk.io/core/store"
	"cosmossdk.io/log"
	math "cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	authtypes "github.com/cosmos/cosmos-sdk/x/auth/types"

	"botarena/internal/custody"
	"botarena/x/arena/types"
)

// Keeper defines the arena module keeper. It owns the arena catalogue, every
// game lobby and the operator fee accumulator; the escrowed funds sit in the
// module account.
type Keeper struct {
	storeService corestore.KVStoreService
	addressCodec address.Codec
	// Address allowed to administer arenas, complete games and withdraw fees.
	authority []byte

	bankKeeper types.BankKeeper

	Schema          collections.Schema
	Params          collections.Item[types.Params]
	ArenaCount      collections.Item[uint64]
	GameCount       collections.Item[uint64]
	AccumulatedFees collections.Item[math.Int]
	Arenas          collections.Map[uint64, types.Arena]
	Games           collections.Map[uint64, types.Game]

	guard custody.Guard
}

// NewKeeper creates a new arena module Keeper instance
func NewKeeper(
	storeService corestore.KVStoreService,
	addressCodec address.Codec,
	authority []byte,
	bankKeeper types.BankKeeper,
) Keeper {
	if _, err := addressCodec.BytesToString(authority); err != nil {
		panic(fmt.Sprintf("invalid authority address %x: %s", authority, err))
	}

	sb := collections.NewSchemaBuilder(storeService)

	k := Keeper{
		storeService: storeService,
		addressCodec: addressCodec,
		authority:    authority,
		bankKeeper:   bankKeeper,

		Params:          collections.NewItem(sb, types.ParamsKey, "params", custody.JSONValue[types.Params]{Name: "arena/Params"}),
		ArenaCount:      collections.NewItem(sb, types.ArenaCountKey, "arena_count", collections.Uint64Value),
		GameCount:       collections.NewItem(sb, types.GameCountKey, "game_count", collections.Uint64Value),
		AccumulatedFees: collections.NewItem(sb, types.AccumulatedFeesKey, "accumulated_fees", custody.IntValue{}),
		Arenas:          collections.NewMap(sb, types.ArenaKeyPrefix, "arenas", collections.Uint64Key, custody.JSONValue[types.Arena]{Name: "arena/Arena"}),
		Games:           collections.NewMap(sb, types.GameKeyPrefix, "games", collections.Uint64Key, custody.JSONValue[types.Game]{Name: "arena/Game"}),
		guard:           custody.NewGuard(sb, types.LockKeyPrefix, types.ErrReentrantCall),
	}

	schema, err := sb.Build()
	if err != nil {
		panic(err)
	}
	k.Schema = schema

	return k
}

// GetAuthority returns the module's authority.
func (k Keeper) GetAuthority() []byte {
	return k.authority
}

// Logger returns a module-scoped logger.
func (k Keeper) Logger(ctx context.Context) log.Logger {
	return sdk.UnwrapSDKContext(ctx).Logger().With("module", "x/"+types.ModuleName)
}

// ModuleAddress is the account holding all escrowed entry fees and unwithdrawn operator fees.
func (k Keeper) ModuleAddress() sdk.AccAddress {
	return authtypes.NewModuleAddress(types.ModuleName)
}

// GetParams returns current params or defaults when unset.
func (k Keeper) GetParams(ctx context.Context) (types.Params, error) {
	p, err := k.Params.Get(ctx)
	if err != nil {
		if errors.Is(err, collections.ErrNotFound) {
			return types.DefaultParams(), nil
		}
		return types.Params{}, err
	}
	return p, nil
}

// SetParams stores module params.
func (k Keeper) SetParams(ctx context.Context, p types.Params) error {
	if err := p.Validate(); err != nil {
		return err
	}
	return k.Params.Set(ctx, p)
}

func (k Keeper) isOwner(caller sdk.AccAddress) bool {
	return custody.Authorized(caller, custody.RoleOwner, k.authority, nil)
}

func (k Keeper) coins(ctx context.Context, amount math.Int) (sdk.Coins, error) {
	p, err := k.GetParams(ctx)
	if err != nil {
		return nil, err
	}
	return sdk.NewCoins(sdk.NewCoin(p.Denom, amount)), nil
}

func (k Keeper) getCount(ctx context.Context, item collections.Item[uint64]) (uint64, error) {
	v, err := item.Get(ctx)
	if err != nil {
		if errors.Is(err, collections.ErrNotFound) {
			return 0, nil
		}
		return 0, err
	}
	return v, nil
}

func (k Keeper) getIntOrZero(ctx context.Context, item collections.Item[math.Int]) (math.Int, error) {
	v, err := item.Get(ctx)
	if err != nil {
		if errors.Is(err, collections.ErrNotFound) {
			return math.ZeroInt(), nil
		}
		return math.Int{}, err
	}
	return v, nil
}

// EscrowBalance is what the module account actually holds in the ledger denom.
func (k Keeper) EscrowBalance(ctx context.Context) (math.Int, error) {
	p, err := k.GetParams(ctx)
	if err != nil {
		return math.Int{}, err
	}
	return k.bankKeeper.GetBalance(ctx, k.ModuleAddress(), p.Denom).Amount, nil
}

// HeldLocks lists per-entity locks. Outside of an operation it is always empty.
func (k Keeper) HeldLocks(ctx context.Context) ([]string, error) {
	return k.guard.Held(ctx)
}

func gameLock(id uint64) string { return fmt.Sprintf("game/%d", id) }

const feesLock = "fees"
