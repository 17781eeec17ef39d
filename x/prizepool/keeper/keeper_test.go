package keeper_test

import (
	"fmt"
	"testing"

	"cosmossdk.io/core/address"
	math "cosmossdk.io/math"
	storetypes "cosmossdk.io/store/types"
	addresscodec "github.com/cosmos/cosmos-sdk/codec/address"
	"github.com/cosmos/cosmos-sdk/runtime"
	"github.com/cosmos/cosmos-sdk/testutil"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/stretchr/testify/require"

	"botarena/testutil/custodytest"
	"botarena/x/prizepool/keeper"
	"botarena/x/prizepool/types"
)

type fixture struct {
	ctx          sdk.Context
	keeper       keeper.Keeper
	addressCodec address.Codec
	bankKeeper   *custodytest.BankKeeper
	owner        sdk.AccAddress
	trusted      sdk.AccAddress
}

func initFixture(t *testing.T) *fixture {
	t.Helper()

	addressCodec := addresscodec.NewBech32Codec(sdk.GetConfig().GetBech32AccountAddrPrefix())
	storeKey := storetypes.NewKVStoreKey(types.StoreKey)
	storeService := runtime.NewKVStoreService(storeKey)
	ctx := testutil.DefaultContextWithDB(t, storeKey, storetypes.NewTransientStoreKey("transient_test")).Ctx

	owner := sdk.AccAddress([]byte("pool_owner__________"))
	bankKeeper := custodytest.NewBankKeeper()
	bankKeeper.Fund(owner, sdk.NewCoin(types.DefaultDenom, math.NewInt(1_000_000_000)))

	k := keeper.NewKeeper(storeService, addressCodec, owner, bankKeeper)
	require.NoError(t, k.InitGenesis(ctx, *types.DefaultGenesis()))

	return &fixture{
		ctx:          ctx,
		keeper:       k,
		addressCodec: addressCodec,
		bankKeeper:   bankKeeper,
		owner:        owner,
		trusted:      sdk.AccAddress([]byte("trusted_arena_ledger")),
	}
}

func (f *fixture) addr(i int) sdk.AccAddress {
	return sdk.AccAddress([]byte(fmt.Sprintf("winner_%013d", i)))
}

func (f *fixture) balance(addr sdk.AccAddress) math.Int {
	return f.bankKeeper.GetBalance(f.ctx, addr, types.DefaultDenom).Amount
}

func (f *fixture) pool(t *testing.T) math.Int {
	t.Helper()
	b, err := f.keeper.PoolBalance(f.ctx)
	require.NoError(t, err)
	return b
}

func (f *fixture) totals(t *testing.T) (deposited, distributed math.Int) {
	t.Helper()
	deposited, err := f.keeper.GetTotalDeposited(f.ctx)
	require.NoError(t, err)
	distributed, err = f.keeper.GetTotalDistributed(f.ctx)
	require.NoError(t, err)
	return deposited, distributed
}

func TestInitGenesis_Defaults(t *testing.T) {
	f := initFixture(t)

	deposited, distributed := f.totals(t)
	require.True(t, deposited.IsZero())
	require.True(t, distributed.IsZero())
	require.True(t, f.pool(t).IsZero())

	trusted, err := f.keeper.GetTrustedCaller(f.ctx)
	require.NoError(t, err)
	require.Nil(t, trusted)

	p, err := f.keeper.GetParams(f.ctx)
	require.NoError(t, err)
	require.Equal(t, types.DefaultDenom, p.Denom)
}

func TestInitGenesis_InvalidAssetReference(t *testing.T) {
	for _, denom := range []string{"", " ", "$$"} {
		t.Run(fmt.Sprintf("denom %q", denom), func(t *testing.T) {
			storeKey := storetypes.NewKVStoreKey(types.StoreKey)
			ctx := testutil.DefaultContextWithDB(t, storeKey, storetypes.NewTransientStoreKey("transient_test")).Ctx
			k := keeper.NewKeeper(
				runtime.NewKVStoreService(storeKey),
				addresscodec.NewBech32Codec("cosmos"),
				sdk.AccAddress([]byte("pool_owner__________")),
				custodytest.NewBankKeeper(),
			)
			gs := types.DefaultGenesis()
			gs.Params.Denom = denom
			require.ErrorIs(t, k.InitGenesis(ctx, *gs), types.ErrInvalidAssetReference)
		})
	}
}

func TestNewKeeper_InvalidAuthority(t *testing.T) {
	storeKey := storetypes.NewKVStoreKey(types.StoreKey)
	require.Panics(t, func() {
		keeper.NewKeeper(runtime.NewKVStoreService(storeKey), addresscodec.NewBech32Codec("cosmos"), nil, custodytest.NewBankKeeper())
	})
}
