package types

import (
	"errors"

	errorsmod "cosmossdk.io/errors"
	math "cosmossdk.io/math"

	"botarena/internal/storeview"
)

// StoreView reads arena state from raw store keys. It backs the CLI and REST
// queries, which have no keeper to call.
type StoreView struct {
	r storeview.Reader
}

func NewStoreView(r storeview.Reader) StoreView { return StoreView{r: r} }

// Params falls back to defaults when unset.
func (v StoreView) Params() (Params, error) {
	p, err := storeview.JSON[Params](v.r, ParamsKey.Bytes())
	if errors.Is(err, storeview.ErrNotFound) {
		return DefaultParams(), nil
	}
	return p, err
}

func (v StoreView) ArenaCount() (uint64, error) {
	return storeview.Uint64(v.r, ArenaCountKey.Bytes())
}

func (v StoreView) GameCount() (uint64, error) {
	return storeview.Uint64(v.r, GameCountKey.Bytes())
}

func (v StoreView) AccumulatedFees() (math.Int, error) {
	return storeview.Int(v.r, AccumulatedFeesKey.Bytes())
}

func (v StoreView) Arena(id uint64) (Arena, error) {
	a, err := storeview.JSON[Arena](v.r, ArenaStoreKey(id))
	if errors.Is(err, storeview.ErrNotFound) {
		return Arena{}, errorsmod.Wrapf(ErrArenaNotFound, "arena %d", id)
	}
	return a, err
}

func (v StoreView) Arenas() ([]Arena, error) {
	n, err := v.ArenaCount()
	if err != nil {
		return nil, err
	}
	return storeview.Sequence[Arena](v.r, n, ArenaStoreKey)
}

func (v StoreView) Game(id uint64) (Game, error) {
	g, err := storeview.JSON[Game](v.r, GameStoreKey(id))
	if errors.Is(err, storeview.ErrNotFound) {
		return Game{}, errorsmod.Wrapf(ErrGameNotFound, "game %d", id)
	}
	return g, err
}

func (v StoreView) Games() ([]Game, error) {
	n, err := v.GameCount()
	if err != nil {
		return nil, err
	}
	return storeview.Sequence[Game](v.r, n, GameStoreKey)
}

func (v StoreView) Participants(gameID uint64) ([]string, error) {
	g, err := v.Game(gameID)
	if err != nil {
		return nil, err
	}
	return g.Participants, nil
}
