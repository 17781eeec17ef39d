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
	"botarena/x/arena/keeper"
	"botarena/x/arena/types"
)

type fixture struct {
	ctx          sdk.Context
	keeper       keeper.Keeper
	addressCodec address.Codec
	bankKeeper   *custodytest.BankKeeper
	owner        sdk.AccAddress
}

func initFixture(t *testing.T) *fixture {
	t.Helper()

	addressCodec := addresscodec.NewBech32Codec(sdk.GetConfig().GetBech32AccountAddrPrefix())
	storeKey := storetypes.NewKVStoreKey(types.StoreKey)

	storeService := runtime.NewKVStoreService(storeKey)
	ctx := testutil.DefaultContextWithDB(t, storeKey, storetypes.NewTransientStoreKey("transient_test")).Ctx

	owner := sdk.AccAddress([]byte("arena_owner_________"))
	bankKeeper := custodytest.NewBankKeeper()

	k := keeper.NewKeeper(storeService, addressCodec, owner, bankKeeper)
	require.NoError(t, k.InitGenesis(ctx, *types.DefaultGenesis()))

	return &fixture{
		ctx:          ctx,
		keeper:       k,
		addressCodec: addressCodec,
		bankKeeper:   bankKeeper,
		owner:        owner,
	}
}

// player returns a deterministic 20 byte address funded with 100.00 units.
func (f *fixture) player(i int) sdk.AccAddress {
	addr := sdk.AccAddress([]byte(fmt.Sprintf("player_%013d", i)))
	if f.bankKeeper.GetBalance(f.ctx, addr, types.DefaultDenom).IsZero() {
		f.bankKeeper.Fund(addr, sdk.NewCoin(types.DefaultDenom, math.NewInt(100_000_000)))
	}
	return addr
}

func (f *fixture) balance(addr sdk.AccAddress) math.Int {
	return f.bankKeeper.GetBalance(f.ctx, addr, types.DefaultDenom).Amount
}

func (f *fixture) escrow() math.Int {
	return f.bankKeeper.ModuleBalance(types.ModuleName, types.DefaultDenom).Amount
}

// fillGame opens a game on arenaID and seats MaxParticipants players.
func (f *fixture) fillGame(t *testing.T, arenaID uint64) (uint64, []sdk.AccAddress) {
	t.Helper()
	id, err := f.keeper.CreateGame(f.ctx, f.player(0), arenaID)
	require.NoError(t, err)

	players := make([]sdk.AccAddress, types.MaxParticipants)
	for i := range players {
		players[i] = f.player(int(id)*100 + i)
		_, err := f.keeper.JoinGame(f.ctx, players[i], id)
		require.NoError(t, err)
	}
	return id, players
}

func TestNewKeeper_InvalidAuthority(t *testing.T) {
	storeKey := storetypes.NewKVStoreKey(types.StoreKey)
	addressCodec := addresscodec.NewBech32Codec("cosmos")
	require.Panics(t, func() {
		keeper.NewKeeper(runtime.NewKVStoreService(storeKey), addressCodec, []byte{}, custodytest.NewBankKeeper())
	})
}

func TestDefaultArenas(t *testing.T) {
	f := initFixture(t)

	arenas, err := f.keeper.ListArenas(f.ctx)
	require.NoError(t, err)
	require.Len(t, arenas, 5)

	for i, fee := range types.DefaultEntryFees {
		a, err := f.keeper.GetArena(f.ctx, uint64(i+1))
		require.NoError(t, err)
		require.True(t, a.IsActive)
		require.Equal(t, math.NewInt(fee), a.EntryFee)
	}

	count, err := f.keeper.GetArenaCount(f.ctx)
	require.NoError(t, err)
	require.Equal(t, uint64(5), count)

	games, err := f.keeper.GetGameCount(f.ctx)
	require.NoError(t, err)
	require.Zero(t, games)

	fees, err := f.keeper.GetAccumulatedFees(f.ctx)
	require.NoError(t, err)
	require.True(t, fees.IsZero())
}

func TestFullGameLifecycle(t *testing.T) {
	f := initFixture(t)

	gameID, err := f.keeper.CreateGame(f.ctx, f.player(0), 3)
	require.NoError(t, err)
	require.Equal(t, uint64(1), gameID)

	players := make([]sdk.AccAddress, types.MaxParticipants)
	for i := range players {
		players[i] = f.player(i + 1)
		count, err := f.keeper.JoinGame(f.ctx, players[i], gameID)
		require.NoError(t, err)
		require.Equal(t, i+1, count)
		require.Equal(t, math.NewInt(99_000_000), f.balance(players[i]))
	}

	game, err := f.keeper.GetGame(f.ctx, gameID)
	require.NoError(t, err)
	require.Equal(t, math.NewInt(10_000_000), game.PrizePool)
	require.Equal(t, math.NewInt(10_000_000), f.escrow())

	participants, err := f.keeper.GetParticipants(f.ctx, gameID)
	require.NoError(t, err)
	require.Len(t, participants, types.MaxParticipants)
	require.Equal(t, players[0].String(), participants[0])

	winnerShare, operatorShare, err := f.keeper.CompleteGame(f.ctx, f.owner, gameID, players[4])
	require.NoError(t, err)
	require.Equal(t, math.NewInt(9_000_000), winnerShare)
	require.Equal(t, math.NewInt(1_000_000), operatorShare)
	require.Equal(t, math.NewInt(108_000_000), f.balance(players[4]))

	game, err = f.keeper.GetGame(f.ctx, gameID)
	require.NoError(t, err)
	require.True(t, game.IsCompleted)
	require.True(t, game.IsPaid)
	require.Equal(t, players[4].String(), game.Winner)

	fees, err := f.keeper.GetAccumulatedFees(f.ctx)
	require.NoError(t, err)
	require.Equal(t, math.NewInt(1_000_000), fees)
	require.Equal(t, math.NewInt(1_000_000), f.escrow())

	amount, err := f.keeper.WithdrawOperatorFees(f.ctx, f.owner)
	require.NoError(t, err)
	require.Equal(t, math.NewInt(1_000_000), amount)
	require.Equal(t, math.NewInt(1_000_000), f.balance(f.owner))
	require.True(t, f.escrow().IsZero())

	fees, err = f.keeper.GetAccumulatedFees(f.ctx)
	require.NoError(t, err)
	require.True(t, fees.IsZero())

	locks, err := f.keeper.HeldLocks(f.ctx)
	require.NoError(t, err)
	require.Empty(t, locks)
}

func TestSplitPoolRounding(t *testing.T) {
	testCases := []struct {
		pool, winner, operator int64
	}{
		{pool: 10_000_000, winner: 9_000_000, operator: 1_000_000},
		{pool: 1_000_000, winner: 900_000, operator: 100_000},
		{pool: 11, winner: 9, operator: 2},
		{pool: 1, winner: 0, operator: 1},
		{pool: 0, winner: 0, operator: 0},
	}
	for _, tc := range testCases {
		t.Run(fmt.Sprintf("pool %d", tc.pool), func(t *testing.T) {
			w, o := types.SplitPool(math.NewInt(tc.pool))
			require.Equal(t, math.NewInt(tc.winner), w)
			require.Equal(t, math.NewInt(tc.operator), o)
			require.Equal(t, math.NewInt(tc.pool), w.Add(o))
		})
	}
}

func TestParams(t *testing.T) {
	f := initFixture(t)

	p, err := f.keeper.GetParams(f.ctx)
	require.NoError(t, err)
	require.Equal(t, types.DefaultParams(), p)

	err = f.keeper.SetParams(f.ctx, types.Params{Denom: ""})
	require.ErrorIs(t, err, types.ErrInvalidAssetReference)

	require.NoError(t, f.keeper.SetParams(f.ctx, types.Params{Denom: "ustake"}))
	p, err = f.keeper.GetParams(f.ctx)
	require.NoError(t, err)
	require.Equal(t, "ustake", p.Denom)
}

