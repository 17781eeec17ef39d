package app_test

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"cosmossdk.io/log"
	math "cosmossdk.io/math"
	dbm "github.com/cosmos/cosmos-db"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/require"

	"botarena/app"
	arenatypes "botarena/x/arena/types"
	prizepooltypes "botarena/x/prizepool/types"
)

func eventTypes(events sdk.Events) []string {
	out := make([]string, 0, len(events))
	for _, e := range events {
		out = append(out, e.Type)
	}
	return out
}

var owner = sdk.AccAddress([]byte("arena_app_owner_____"))

func uusdc(amt int64) sdk.Coins {
	return sdk.NewCoins(sdk.NewInt64Coin(arenatypes.DefaultDenom, amt))
}

func setup(t *testing.T) *app.App {
	t.Helper()
	a, err := app.New(log.NewNopLogger(), dbm.NewMemDB(), owner)
	require.NoError(t, err)
	require.NoError(t, a.InitGenesis(a.DefaultGenesis()))
	return a
}

// playLobby fills a lobby in arenaID with ten players funded with exactly the
// entry fee and returns the game id and the players.
func playLobby(t *testing.T, a *app.App, arenaID uint64) (uint64, []sdk.AccAddress) {
	t.Helper()
	ctx := a.Context()

	arena, err := a.ArenaKeeper.GetArena(ctx, arenaID)
	require.NoError(t, err)

	players := make([]sdk.AccAddress, arenatypes.MaxParticipants)
	for i := range players {
		players[i] = sdk.AccAddress([]byte(fmt.Sprintf("app_player_%09d", i)))
		require.NoError(t, a.Fund(players[i], sdk.NewCoins(sdk.NewCoin(arenatypes.DefaultDenom, arena.EntryFee))))
	}

	gameID, err := a.ArenaKeeper.CreateGame(ctx, players[0], arenaID)
	require.NoError(t, err)
	for _, p := range players {
		_, err := a.ArenaKeeper.JoinGame(ctx, p, gameID)
		require.NoError(t, err)
	}
	return gameID, players
}

func TestNew_RequiresOwner(t *testing.T) {
	_, err := app.New(log.NewNopLogger(), dbm.NewMemDB(), nil)
	require.Error(t, err)
}

func TestApp_LobbyOnRealBank(t *testing.T) {
	a := setup(t)
	ctx := a.Context()
	escrow := a.ModuleAddress(arenatypes.ModuleName)

	gameID, players := playLobby(t, a, 3)
	require.Equal(t, math.NewInt(10_000_000), a.Balance(escrow, arenatypes.DefaultDenom))
	for _, p := range players {
		require.True(t, a.Balance(p, arenatypes.DefaultDenom).IsZero())
	}

	winnerShare, operatorShare, err := a.ArenaKeeper.CompleteGame(ctx, owner, gameID, players[4])
	require.NoError(t, err)
	require.Equal(t, math.NewInt(9_000_000), winnerShare)
	require.Equal(t, math.NewInt(1_000_000), operatorShare)
	require.Equal(t, math.NewInt(9_000_000), a.Balance(players[4], arenatypes.DefaultDenom))
	require.Equal(t, math.NewInt(1_000_000), a.Balance(escrow, arenatypes.DefaultDenom))

	withdrawn, err := a.ArenaKeeper.WithdrawOperatorFees(ctx, owner)
	require.NoError(t, err)
	require.Equal(t, math.NewInt(1_000_000), withdrawn)
	require.Equal(t, math.NewInt(1_000_000), a.Balance(owner, arenatypes.DefaultDenom))
	require.True(t, a.Balance(escrow, arenatypes.DefaultDenom).IsZero())

	require.NoError(t, a.CheckInvariants())
}

func TestApp_PrizePoolOnRealBank(t *testing.T) {
	a := setup(t)
	ctx := a.Context()
	pool := a.ModuleAddress(prizepooltypes.ModuleName)
	winner := sdk.AccAddress([]byte("app_prize_winner____"))

	require.NoError(t, a.PrizePoolKeeper.SetTrustedCaller(ctx, owner, a.ArenaKeeper.ModuleAddress()))
	require.NoError(t, a.Fund(owner, uusdc(5_000_000)))
	require.NoError(t, a.PrizePoolKeeper.Deposit(ctx, owner, math.NewInt(5_000_000)))
	require.Equal(t, math.NewInt(5_000_000), a.Balance(pool, arenatypes.DefaultDenom))

	// The arena module account is the trusted caller.
	require.NoError(t, a.PrizePoolKeeper.DistributePrize(ctx, a.ArenaKeeper.ModuleAddress(), winner, math.NewInt(2_000_000), "arena-1"))
	require.Equal(t, math.NewInt(2_000_000), a.Balance(winner, arenatypes.DefaultDenom))

	err := a.PrizePoolKeeper.DistributePrize(ctx, winner, winner, math.NewInt(1), "arena-1")
	require.ErrorIs(t, err, prizepooltypes.ErrNotAuthorized)

	err = a.PrizePoolKeeper.DistributePrize(ctx, owner, winner, math.NewInt(3_000_001), "arena-2")
	require.ErrorIs(t, err, prizepooltypes.ErrInsufficientPoolBalance)

	swept, err := a.PrizePoolKeeper.EmergencyWithdraw(ctx, owner)
	require.NoError(t, err)
	require.Equal(t, math.NewInt(3_000_000), swept)
	require.True(t, a.Balance(pool, arenatypes.DefaultDenom).IsZero())

	require.NoError(t, a.CheckInvariants())
}

func TestApp_InitGenesisRejectsInvalidState(t *testing.T) {
	a, err := app.New(log.NewNopLogger(), dbm.NewMemDB(), owner)
	require.NoError(t, err)

	genesis := a.DefaultGenesis()
	genesis[arenatypes.ModuleName] = json.RawMessage(`{"params":{"denom":""}}`)
	require.Error(t, a.InitGenesis(genesis))
}

func TestApp_ExportGenesis(t *testing.T) {
	a := setup(t)
	gameID, players := playLobby(t, a, 1)
	_, _, err := a.ArenaKeeper.CompleteGame(a.Context(), owner, gameID, players[0])
	require.NoError(t, err)
	a.Commit()

	exported, err := a.ExportGenesis()
	require.NoError(t, err)
	require.Contains(t, exported, arenatypes.ModuleName)
	require.Contains(t, exported, prizepooltypes.ModuleName)

	var gs arenatypes.GenesisState
	require.NoError(t, json.Unmarshal(exported[arenatypes.ModuleName], &gs))
	require.Len(t, gs.Games, 1)
	require.True(t, gs.Games[0].IsPaid)
	require.Equal(t, players[0].String(), gs.Games[0].Winner)
	require.Equal(t, math.NewInt(100_000), gs.AccumulatedFees)

	// Replaying the export on a fresh app yields the same ledger.
	b, err := app.New(log.NewNopLogger(), dbm.NewMemDB(), owner)
	require.NoError(t, err)
	require.NoError(t, b.InitGenesis(exported))
	reexported, err := b.ExportGenesis()
	require.NoError(t, err)
	require.JSONEq(t, string(exported[arenatypes.ModuleName]), string(reexported[arenatypes.ModuleName]))
}

func TestApp_APIRoutes(t *testing.T) {
	a := setup(t)
	playLobby(t, a, 2)

	rtr := mux.NewRouter()
	a.RegisterAPIRoutes(rtr)
	srv := httptest.NewServer(rtr)
	defer srv.Close()

	get := func(path string) (int, []byte) {
		resp, err := http.Get(srv.URL + path)
		require.NoError(t, err)
		defer resp.Body.Close()
		body, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		return resp.StatusCode, body
	}

	testCases := []struct {
		path      string
		expStatus int
		contains  string
	}{
		{path: "/arena/arenas", expStatus: http.StatusOK, contains: `"entry_fee":"500000"`},
		{path: "/api/arena/arenas", expStatus: http.StatusOK, contains: `"entry_fee":"500000"`},
		{path: "/api/arena/games/1", expStatus: http.StatusOK, contains: `"prize_pool":"5000000"`},
		{path: "/arena/games/2", expStatus: http.StatusNotFound},
		{path: "/api/arena/games/x", expStatus: http.StatusBadRequest},
		{path: "/prizepool/totals", expStatus: http.StatusOK, contains: `"total_deposited":"0"`},
		{path: "/api/prizepool/trusted-caller", expStatus: http.StatusNotFound},
		{path: "/static/openapi.json", expStatus: http.StatusOK, contains: "/arena/games/{id}"},
		{path: "/api/static/openapi.json", expStatus: http.StatusOK, contains: "/prizepool/totals"},
		{path: "/api", expStatus: http.StatusOK, contains: "openapi.json"},
		{path: "/", expStatus: http.StatusOK, contains: app.Name},
	}

	for _, tc := range testCases {
		t.Run(tc.path, func(t *testing.T) {
			status, body := get(tc.path)
			require.Equal(t, tc.expStatus, status, string(body))
			if tc.contains != "" {
				require.Contains(t, string(body), tc.contains)
			}
		})
	}
}

func TestApp_InitGenesisOnce(t *testing.T) {
	a := setup(t)
	require.True(t, a.Initialized())
	require.ErrorIs(t, a.InitGenesis(a.DefaultGenesis()), app.ErrAlreadyInitialized)

	b, err := app.New(log.NewNopLogger(), dbm.NewMemDB(), owner)
	require.NoError(t, err)
	require.False(t, b.Initialized())

	// A rejected genesis leaves the store uninitialized.
	genesis := b.DefaultGenesis()
	genesis[prizepooltypes.ModuleName] = json.RawMessage(`{"params":{"denom":"uusdc"},"trusted_caller":"nobody"}`)
	require.Error(t, b.InitGenesis(genesis))
	require.False(t, b.Initialized())
}

func TestApp_Deliver(t *testing.T) {
	a := setup(t)
	player := sdk.AccAddress([]byte("app_deliver_player__"))
	require.NoError(t, a.Fund(player, uusdc(100_000)))
	version := a.LastCommitID().Version

	ms := a.ArenaMsgServer()

	t.Run("failure rolls back", func(t *testing.T) {
		errBoom := errors.New("boom")
		_, err := a.Deliver(func(ctx sdk.Context) error {
			if _, err := ms.CreateGame(ctx, &arenatypes.MsgCreateGame{Creator: player.String(), ArenaID: 1}); err != nil {
				return err
			}
			return errBoom
		})
		require.ErrorIs(t, err, errBoom)

		count, err := a.ArenaKeeper.GetGameCount(a.Context())
		require.NoError(t, err)
		require.Zero(t, count)
	})

	t.Run("success commits and returns events", func(t *testing.T) {
		var gameID uint64
		events, err := a.Deliver(func(ctx sdk.Context) error {
			res, err := ms.CreateGame(ctx, &arenatypes.MsgCreateGame{Creator: player.String(), ArenaID: 1})
			if err != nil {
				return err
			}
			gameID = res.GameID
			_, err = ms.JoinGame(ctx, &arenatypes.MsgJoinGame{Player: player.String(), GameID: gameID})
			return err
		})
		require.NoError(t, err)
		require.Equal(t, uint64(1), gameID)
		require.Contains(t, eventTypes(events), arenatypes.EventJoined)
		require.True(t, a.Balance(player, arenatypes.DefaultDenom).IsZero())

		after := a.LastCommitID().Version
		require.Equal(t, version+1, after)
	})
}

func TestApp_PersistsAcrossReopen(t *testing.T) {
	dir := t.TempDir()
	player := sdk.AccAddress([]byte("app_reopen_player___"))

	db, err := dbm.NewDB("application", dbm.GoLevelDBBackend, dir)
	require.NoError(t, err)
	a, err := app.New(log.NewNopLogger(), db, owner)
	require.NoError(t, err)
	require.NoError(t, a.InitGenesis(a.DefaultGenesis()))
	require.NoError(t, a.Fund(player, uusdc(500_000)))
	_, err = a.Deliver(func(ctx sdk.Context) error {
		_, err := a.ArenaMsgServer().CreateGame(ctx, &arenatypes.MsgCreateGame{Creator: player.String(), ArenaID: 2})
		return err
	})
	require.NoError(t, err)
	require.NoError(t, a.Close())

	db, err = dbm.NewDB("application", dbm.GoLevelDBBackend, dir)
	require.NoError(t, err)
	b, err := app.New(log.NewNopLogger(), db, owner)
	require.NoError(t, err)
	defer b.Close()

	require.True(t, b.Initialized())
	require.Equal(t, math.NewInt(500_000), b.Balance(player, arenatypes.DefaultDenom))
	game, err := b.ArenaKeeper.GetGame(b.Context(), 1)
	require.NoError(t, err)
	require.Equal(t, uint64(2), game.ArenaID)
}
