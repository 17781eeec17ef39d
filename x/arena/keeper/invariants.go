package keeper

import (
	"fmt"

	math "cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"botarena/x/arena/types"
)

// RegisterInvariants registers all arena invariants.
func RegisterInvariants(ir sdk.InvariantRegistry, k Keeper) {
	ir.RegisterRoute(types.ModuleName, "escrow-solvency", EscrowSolvencyInvariant(k))
	ir.RegisterRoute(types.ModuleName, "prize-pools", PrizePoolInvariant(k))
}

// AllInvariants runs every arena invariant.
func AllInvariants(k Keeper) sdk.Invariant {
	return func(ctx sdk.Context) (string, bool) {
		if msg, broken := EscrowSolvencyInvariant(k)(ctx); broken {
			return msg, broken
		}
		return PrizePoolInvariant(k)(ctx)
	}
}

// EscrowSolvencyInvariant checks the module account covers every open prize
// pool plus the unwithdrawn operator fees.
func EscrowSolvencyInvariant(k Keeper) sdk.Invariant {
	return func(ctx sdk.Context) (string, bool) {
		owed := math.ZeroInt()
		games, err := k.ListGames(ctx)
		if err != nil {
			return sdk.FormatInvariant(types.ModuleName, "escrow-solvency", err.Error()), true
		}
		for _, g := range games {
			if !g.IsCompleted {
				owed = owed.Add(g.PrizePool)
			}
		}
		fees, err := k.GetAccumulatedFees(ctx)
		if err != nil {
			return sdk.FormatInvariant(types.ModuleName, "escrow-solvency", err.Error()), true
		}
		owed = owed.Add(fees)

		held, err := k.EscrowBalance(ctx)
		if err != nil {
			return sdk.FormatInvariant(types.ModuleName, "escrow-solvency", err.Error()), true
		}
		broken := held.LT(owed)
		return sdk.FormatInvariant(types.ModuleName, "escrow-solvency",
			fmt.Sprintf("\tescrow balance: %s\n\topen pools and fees: %s\n", held, owed)), broken
	}
}

// PrizePoolInvariant checks every open game's pool equals entry fee times
// participant count, and that no game exceeds the participant cap.
func PrizePoolInvariant(k Keeper) sdk.Invariant {
	return func(ctx sdk.Context) (string, bool) {
		var (
			msg    string
			broken bool
		)
		games, err := k.ListGames(ctx)
		if err != nil {
			return sdk.FormatInvariant(types.ModuleName, "prize-pools", err.Error()), true
		}
		for _, g := range games {
			if len(g.Participants) > types.MaxParticipants {
				broken = true
				msg += fmt.Sprintf("\tgame %d has %d participants\n", g.ID, len(g.Participants))
				continue
			}
			if g.IsCompleted {
				continue
			}
			arena, err := k.GetArena(ctx, g.ArenaID)
			if err != nil {
				broken = true
				msg += fmt.Sprintf("\tgame %d: %s\n", g.ID, err)
				continue
			}
			want := arena.EntryFee.MulRaw(int64(len(g.Participants)))
			if !g.PrizePool.Equal(want) {
				broken = true
				msg += fmt.Sprintf("\tgame %d pool %s, expected %s\n", g.ID, g.PrizePool, want)
			}
		}
		return sdk.FormatInvariant(types.ModuleName, "prize-pools", msg), broken
	}
}
