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
	"botarena/x/prizepool/types"
)

// poolLock serialises every operation that moves pool funds.
const poolLock = "pool"

// Keeper defines the prizepool module keeper. Deposits sit in the module
// account; the keeper tracks running totals and per-winner payouts.
type Keeper struct {
	storeService corestore.KVStoreService
	addressCodec address.Codec
	authority    []byte

	bankKeeper types.BankKeeper

	Schema           collections.Schema
	Params           collections.Item[types.Params]
	TotalDeposited   collections.Item[math.Int]
	TotalDistributed collections.Item[math.Int]
	TrustedCaller    collections.Item[[]byte]
	Winnings         collections.Map[sdk.AccAddress, math.Int]

	guard custody.Guard
}

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

		Params:           collections.NewItem(sb, types.ParamsKey, "params", custody.JSONValue[types.Params]{Name: "prizepool/Params"}),
		TotalDeposited:   collections.NewItem(sb, types.TotalDepositedKey, "total_deposited", custody.IntValue{}),
		TotalDistributed: collections.NewItem(sb, types.TotalDistributedKey, "total_distributed", custody.IntValue{}),
		TrustedCaller:    collections.NewItem(sb, types.TrustedCallerKey, "trusted_caller", collections.BytesValue),
		Winnings:         collections.NewMap(sb, types.WinningsKeyPrefix, "winnings", sdk.AccAddressKey, custody.IntValue{}),
		guard:            custody.NewGuard(sb, types.LockKeyPrefix, types.ErrReentrantCall),
	}

	schema, err := sb.Build()
	if err != nil {
		panic(err)
	}
	k.Schema = schema
	return k
}

func (k Keeper) GetAuthority() []byte {
	return k.authority
}

func (k Keeper) Logger(ctx context.Context) log.Logger {
	return sdk.UnwrapSDKContext(ctx).Logger().With("module", "x/"+types.ModuleName)
}

// ModuleAddress is the account custodying the pool.
func (k Keeper) ModuleAddress() sdk.AccAddress {
	return authtypes.NewModuleAddress(types.ModuleName)
}

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

func (k Keeper) SetParams(ctx context.Context, p types.Params) error {
	if err := p.Validate(); err != nil {
		return err
	}
	return k.Params.Set(ctx, p)
}

// GetTrustedCaller returns nil when none has been set.
func (k Keeper) GetTrustedCaller(ctx context.Context) (sdk.AccAddress, error) {
	bz, err := k.TrustedCaller.Get(ctx)
	if err != nil {
		if errors.Is(err, collections.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return bz, nil
}

// PoolBalance is the actual custodied balance of the primary denom, which may
// differ from TotalDeposited minus TotalDistributed after direct transfers.
func (k Keeper) PoolBalance(ctx context.Context) (math.Int, error) {
	p, err := k.GetParams(ctx)
	if err != nil {
		return math.Int{}, err
	}
	return k.bankKeeper.GetBalance(ctx, k.ModuleAddress(), p.Denom).Amount, nil
}

func (k Keeper) GetTotalDeposited(ctx context.Context) (math.Int, error) {
	return k.getIntOrZero(ctx, k.TotalDeposited)
}

func (k Keeper) GetTotalDistributed(ctx context.Context) (math.Int, error) {
	return k.getIntOrZero(ctx, k.TotalDistributed)
}

// GetWinnings returns addr's cumulative payouts, zero if never paid.
func (k Keeper) GetWinnings(ctx context.Context, addr sdk.AccAddress) (math.Int, error) {
	v, err := k.Winnings.Get(ctx, addr)
	if err != nil {
		if errors.Is(err, collections.ErrNotFound) {
			return math.ZeroInt(), nil
		}
		return math.Int{}, err
	}
	return v, nil
}

func (k Keeper) HeldLocks(ctx context.Context) ([]string, error) {
	return k.guard.Held(ctx)
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

func (k Keeper) isOwner(caller sdk.AccAddress) bool {
	return custody.Authorized(caller, custody.RoleOwner, k.authority, nil)
}
