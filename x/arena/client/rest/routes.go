// Package rest serves the arena store views as JSON over HTTP.
package rest

import (
	"github.com/grpc-ecosystem/grpc-gateway/runtime"

	"botarena/internal/storeview"
	"botarena/x/arena/types"
)

// Routes returns the arena query routes, all under /arena.
func Routes(r storeview.Reader) []storeview.Route {
	v := types.NewStoreView(r)
	prefix := "/" + types.ModuleName

	byID := func(read func(id uint64) (any, error)) storeview.ReadFunc {
		return func(vars map[string]string) (any, error) {
			id, err := storeview.PathUint64(vars, "id")
			if err != nil {
				return nil, err
			}
			return read(id)
		}
	}

	return []storeview.Route{
		{Path: prefix + "/params", Read: func(map[string]string) (any, error) { return v.Params() }},
		{Path: prefix + "/arenas", Read: func(map[string]string) (any, error) { return v.Arenas() }},
		{Path: prefix + "/arenas/{id}", Read: byID(func(id uint64) (any, error) { return v.Arena(id) })},
		{Path: prefix + "/games", Read: func(map[string]string) (any, error) { return v.Games() }},
		{Path: prefix + "/games/{id}", Read: byID(func(id uint64) (any, error) { return v.Game(id) })},
		{Path: prefix + "/games/{id}/participants", Read: byID(func(id uint64) (any, error) { return v.Participants(id) })},
		{Path: prefix + "/fees", Read: func(map[string]string) (any, error) {
			fees, err := v.AccumulatedFees()
			if err != nil {
				return nil, err
			}
			return map[string]string{"accumulated_fees": fees.String()}, nil
		}},
	}
}

// RegisterGatewayRoutes mounts the arena query routes on gw.
func RegisterGatewayRoutes(gw *runtime.ServeMux, r storeview.Reader) error {
	return storeview.Register(gw, Routes(r), types.ErrArenaNotFound, types.ErrGameNotFound)
}
