package types

import (
	errorsmod "cosmossdk.io/errors"
	math "cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
)

// DefaultEntryFees are the five tiers every ledger starts with, in micro-units:
// 0.10, 0.50, 1.00, 5.00 and 10.00.
var DefaultEntryFees = []int64{100_000, 500_000, 1_000_000, 5_000_000, 10_000_000}

// GenesisState is the arena module's genesis state.
type GenesisState struct {
	Params          Params   `json:"params"`
	Arenas          []Arena  `json:"arenas"`
	Games           []Game   `json:"games"`
	AccumulatedFees math.Int `json:"accumulated_fees"`
}

// DefaultGenesis returns the five default arenas, all active, with no games.
func DefaultGenesis() *GenesisState {
	arenas := make([]Arena, 0, len(DefaultEntryFees))
	for i, fee := range DefaultEntryFees {
		arenas = append(arenas, Arena{
			ID:       uint64(i + 1),
			EntryFee: math.NewInt(fee),
			IsActive: true,
		})
	}
	return &GenesisState{
		Params:          DefaultParams(),
		Arenas:          arenas,
		Games:           []Game{},
		AccumulatedFees: math.ZeroInt(),
	}
}

// Validate checks ids are sequential from 1, that every participant is a
// bech32 account address and that every open game holds exactly entry fee
// times participant count. A completed game's winner must be one of its
// participants.
func (gs GenesisState) Validate() error {
	if err := gs.Params.Validate(); err != nil {
		return err
	}
	if !gs.AccumulatedFees.IsNil() && gs.AccumulatedFees.IsNegative() {
		return errorsmod.Wrap(ErrInvalidGenesis, "accumulated fees cannot be negative")
	}

	fees := make(map[uint64]math.Int, len(gs.Arenas))
	for i, a := range gs.Arenas {
		if a.ID != uint64(i+1) {
			return errorsmod.Wrapf(ErrInvalidGenesis, "arena %d out of sequence, expected id %d", a.ID, i+1)
		}
		if a.EntryFee.IsNil() || !a.EntryFee.IsPositive() {
			return errorsmod.Wrapf(ErrInvalidEntryFee, "arena %d", a.ID)
		}
		fees[a.ID] = a.EntryFee
	}

	for i, g := range gs.Games {
		if g.ID != uint64(i+1) {
			return errorsmod.Wrapf(ErrInvalidGenesis, "game %d out of sequence, expected id %d", g.ID, i+1)
		}
		fee, ok := fees[g.ArenaID]
		if !ok {
			return errorsmod.Wrapf(ErrInvalidGenesis, "game %d references unknown arena %d", g.ID, g.ArenaID)
		}
		if len(g.Participants) > MaxParticipants {
			return errorsmod.Wrapf(ErrInvalidGenesis, "game %d has %d participants", g.ID, len(g.Participants))
		}
		seen := make(map[string]struct{}, len(g.Participants))
		for _, p := range g.Participants {
			if _, err := sdk.AccAddressFromBech32(p); err != nil {
				return errorsmod.Wrapf(ErrInvalidGenesis, "game %d participant %q: %s", g.ID, p, err)
			}
			if _, dup := seen[p]; dup {
				return errorsmod.Wrapf(ErrInvalidGenesis, "game %d lists %s twice", g.ID, p)
			}
			seen[p] = struct{}{}
		}
		if g.IsCompleted {
			if !g.HasParticipant(g.Winner) || len(g.Participants) != MaxParticipants {
				return errorsmod.Wrapf(ErrInvalidGenesis, "completed game %d has no valid winner", g.ID)
			}
			continue
		}
		if g.Winner != "" || g.IsPaid {
			return errorsmod.Wrapf(ErrInvalidGenesis, "open game %d carries a result", g.ID)
		}
		want := fee.MulRaw(int64(len(g.Participants)))
		if g.PrizePool.IsNil() || !g.PrizePool.Equal(want) {
			return errorsmod.Wrapf(ErrInvalidGenesis, "game %d prize pool %s, expected %s", g.ID, g.PrizePool, want)
		}
	}
	return nil
}
