package keeper_test

import (
	"testing"

	math "cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/stretchr/testify/require"

	"botarena/x/arena/keeper"
	"botarena/x/arena/types"
)

type invariantRegistry map[string]sdk.Invariant

func (r invariantRegistry) RegisterRoute(moduleName, route string, invar sdk.Invariant) {
	r[moduleName+"/"+route] = invar
}

func TestInvariants(t *testing.T) {
	f := initFixture(t)

	reg := invariantRegistry{}
	keeper.RegisterInvariants(reg, f.keeper)
	require.Len(t, reg, 2)

	assertHolds := func() {
		t.Helper()
		for route, inv := range reg {
			msg, broken := inv(f.ctx)
			require.False(t, broken, "%s: %s", route, msg)
		}
		_, broken := keeper.AllInvariants(f.keeper)(f.ctx)
		require.False(t, broken)
	}

	assertHolds()

	gameID, players := f.fillGame(t, 2)
	assertHolds()

	openID, err := f.keeper.CreateGame(f.ctx, f.player(1), 3)
	require.NoError(t, err)
	_, err = f.keeper.JoinGame(f.ctx, f.player(1), openID)
	require.NoError(t, err)
	assertHolds()

	_, _, err = f.keeper.CompleteGame(f.ctx, f.owner, gameID, players[0])
	require.NoError(t, err)
	assertHolds()

	_, err = f.keeper.WithdrawOperatorFees(f.ctx, f.owner)
	require.NoError(t, err)
	assertHolds()

	// Stray funds sent to custody never break solvency.
	f.bankKeeper.FundModule(types.ModuleName, sdk.NewCoin(types.DefaultDenom, math.NewInt(42)))
	assertHolds()
}

func TestEscrowSolvencyInvariant_Broken(t *testing.T) {
	f := initFixture(t)

	gameID, err := f.keeper.CreateGame(f.ctx, f.player(1), 1)
	require.NoError(t, err)
	_, err = f.keeper.JoinGame(f.ctx, f.player(1), gameID)
	require.NoError(t, err)

	require.NoError(t, f.bankKeeper.SendCoinsFromModuleToAccount(f.ctx, types.ModuleName, f.player(1), sdk.NewCoins(sdk.NewCoin(types.DefaultDenom, math.NewInt(1)))))

	msg, broken := keeper.EscrowSolvencyInvariant(f.keeper)(f.ctx)
	require.True(t, broken)
	require.Contains(t, msg, "escrow-solvency")
}

func TestPrizePoolInvariant_Broken(t *testing.T) {
	f := initFixture(t)

	gameID, err := f.keeper.CreateGame(f.ctx, f.player(1), 1)
	require.NoError(t, err)
	game, err := f.keeper.GetGame(f.ctx, gameID)
	require.NoError(t, err)
	game.PrizePool = math.NewInt(7)
	require.NoError(t, f.keeper.Games.Set(f.ctx, gameID, game))

	msg, broken := keeper.PrizePoolInvariant(f.keeper)(f.ctx)
	require.True(t, broken)
	require.Contains(t, msg, "game 1 pool 7")
}
