package keeper

import (
	"context"

	math "cosmossdk.io/math"

	"botarena/x/arena/types"
)

// InitGenesis constructs the ledger. An invalid denom fails with
// ErrInvalidAssetReference before anything is written.
func (k Keeper) InitGenesis(ctx context.Context, genState types.GenesisState) error {
	if err := genState.Validate(); err != nil {
		return err
	}
	if err := k.Params.Set(ctx, genState.Params); err != nil {
		return err
	}

	for _, a := range genState.Arenas {
		if err := k.Arenas.Set(ctx, a.ID, a); err != nil {
			return err
		}
	}
	if err := k.ArenaCount.Set(ctx, uint64(len(genState.Arenas))); err != nil {
		return err
	}

	for _, g := range genState.Games {
		if g.Participants == nil {
			g.Participants = []string{}
		}
		if err := k.Games.Set(ctx, g.ID, g); err != nil {
			return err
		}
	}
	if err := k.GameCount.Set(ctx, uint64(len(genState.Games))); err != nil {
		return err
	}

	fees := genState.AccumulatedFees
	if fees.IsNil() {
		fees = math.ZeroInt()
	}
	return k.AccumulatedFees.Set(ctx, fees)
}

// ExportGenesis dumps the full ledger.
func (k Keeper) ExportGenesis(ctx context.Context) (*types.GenesisState, error) {
	params, err := k.GetParams(ctx)
	if err != nil {
		return nil, err
	}
	arenas, err := k.ListArenas(ctx)
	if err != nil {
		return nil, err
	}
	games, err := k.ListGames(ctx)
	if err != nil {
		return nil, err
	}
	fees, err := k.GetAccumulatedFees(ctx)
	if err != nil {
		return nil, err
	}

	if arenas == nil {
		arenas = []types.Arena{}
	}
	if games == nil {
		games = []types.Game{}
	}
	return &types.GenesisState{
		Params:          params,
		Arenas:          arenas,
		Games:           games,
		AccumulatedFees: fees,
	}, nil
}
