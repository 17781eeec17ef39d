package keeper_test

import (
	"testing"

	math "cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/stretchr/testify/require"

	"botarena/x/arena/keeper"
	"botarena/x/arena/types"
)

func TestMsgServer_GameFlow(t *testing.T) {
	f := initFixture(t)
	ms := keeper.NewMsgServerImpl(f.keeper)

	ownerStr, err := f.addressCodec.BytesToString(f.owner)
	require.NoError(t, err)

	created, err := ms.CreateGame(f.ctx, &types.MsgCreateGame{Creator: f.player(1).String(), ArenaID: 3})
	require.NoError(t, err)
	require.Equal(t, uint64(1), created.GameID)

	for i := 1; i <= types.MaxParticipants; i++ {
		res, err := ms.JoinGame(f.ctx, &types.MsgJoinGame{Player: f.player(i).String(), GameID: created.GameID})
		require.NoError(t, err)
		require.Equal(t, uint32(i), res.ParticipantCount)
	}

	done, err := ms.CompleteGame(f.ctx, &types.MsgCompleteGame{
		Authority: ownerStr,
		GameID:    created.GameID,
		Winner:    f.player(7).String(),
	})
	require.NoError(t, err)
	require.Equal(t, math.NewInt(9_000_000), done.WinnerShare)
	require.Equal(t, math.NewInt(1_000_000), done.OperatorShare)

	withdrawn, err := ms.WithdrawOperatorFees(f.ctx, &types.MsgWithdrawOperatorFees{Authority: ownerStr})
	require.NoError(t, err)
	require.Equal(t, math.NewInt(1_000_000), withdrawn.Amount)
}

func TestMsgServer_InvalidAddresses(t *testing.T) {
	f := initFixture(t)
	ms := keeper.NewMsgServerImpl(f.keeper)

	testCases := []struct {
		name      string
		run       func() error
		expErrMsg string
	}{
		{
			name: "create arena",
			run: func() error {
				_, err := ms.CreateArena(f.ctx, &types.MsgCreateArena{Authority: "invalid", EntryFee: math.NewInt(1)})
				return err
			},
			expErrMsg: "invalid authority address",
		},
		{
			name: "toggle arena",
			run: func() error {
				_, err := ms.ToggleArena(f.ctx, &types.MsgToggleArena{Authority: "", ArenaID: 1})
				return err
			},
			expErrMsg: "invalid authority address",
		},
		{
			name: "create game",
			run: func() error {
				_, err := ms.CreateGame(f.ctx, &types.MsgCreateGame{Creator: "invalid", ArenaID: 1})
				return err
			},
			expErrMsg: "invalid creator address",
		},
		{
			name: "join game",
			run: func() error {
				_, err := ms.JoinGame(f.ctx, &types.MsgJoinGame{Player: "invalid", GameID: 1})
				return err
			},
			expErrMsg: "invalid player address",
		},
		{
			name: "complete game authority",
			run: func() error {
				_, err := ms.CompleteGame(f.ctx, &types.MsgCompleteGame{Authority: "invalid", GameID: 1, Winner: f.player(1).String()})
				return err
			},
			expErrMsg: "invalid authority address",
		},
		{
			name: "withdraw fees",
			run: func() error {
				_, err := ms.WithdrawOperatorFees(f.ctx, &types.MsgWithdrawOperatorFees{Authority: "invalid"})
				return err
			},
			expErrMsg: "invalid authority address",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.run()
			require.ErrorIs(t, err, types.ErrInvalidAddress)
			require.Contains(t, err.Error(), tc.expErrMsg)
		})
	}
}

func TestMsgServer_AdminRequiresOwner(t *testing.T) {
	f := initFixture(t)
	ms := keeper.NewMsgServerImpl(f.keeper)
	stranger := f.player(3).String()

	_, err := ms.CreateArena(f.ctx, &types.MsgCreateArena{Authority: stranger, EntryFee: math.NewInt(1)})
	require.ErrorIs(t, err, types.ErrNotOwner)

	_, err = ms.ToggleArena(f.ctx, &types.MsgToggleArena{Authority: stranger, ArenaID: 1})
	require.ErrorIs(t, err, types.ErrNotOwner)

	_, err = ms.WithdrawOperatorFees(f.ctx, &types.MsgWithdrawOperatorFees{Authority: stranger})
	require.ErrorIs(t, err, types.ErrNotOwner)

	res, err := ms.CreateArena(f.ctx, &types.MsgCreateArena{Authority: f.owner.String(), EntryFee: math.NewInt(2_000_000)})
	require.NoError(t, err)
	require.Equal(t, uint64(6), res.ArenaID)

	_, err = ms.ToggleArena(f.ctx, &types.MsgToggleArena{Authority: f.owner.String(), ArenaID: 6, Active: false})
	require.NoError(t, err)
	arena, err := f.keeper.GetArena(f.ctx, 6)
	require.NoError(t, err)
	require.False(t, arena.IsActive)
}

func TestMsgServer_UndecodableWinner(t *testing.T) {
	tests := []struct {
		name   string
		winner func(f *fixture) string
	}{
		{name: "garbage", winner: func(*fixture) string { return "invalid" }},
		{name: "empty", winner: func(*fixture) string { return "" }},
		{name: "foreign prefix", winner: func(f *fixture) string {
			return sdk.MustBech32ifyAddressBytes("osmo", f.player(1))
		}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			f := initFixture(t)
			ms := keeper.NewMsgServerImpl(f.keeper)
			gameID, _ := f.fillGame(t, 1)
			escrow := f.escrow()

			_, err := ms.CompleteGame(f.ctx, &types.MsgCompleteGame{Authority: f.owner.String(), GameID: gameID, Winner: tc.winner(f)})
			require.ErrorIs(t, err, types.ErrWinnerNotParticipant)

			game, err := f.keeper.GetGame(f.ctx, gameID)
			require.NoError(t, err)
			require.False(t, game.IsCompleted)
			require.True(t, escrow.Equal(f.escrow()))
		})
	}
}
