// Package rest serves the prizepool store views as JSON over HTTP.
package rest

import (
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/grpc-ecosystem/grpc-gateway/runtime"

	"botarena/internal/storeview"
	"botarena/x/prizepool/types"
)

// Routes returns the prizepool query routes, all under /prizepool.
func Routes(r storeview.Reader) []storeview.Route {
	v := types.NewStoreView(r)
	prefix := "/" + types.ModuleName

	return []storeview.Route{
		{Path: prefix + "/params", Read: func(map[string]string) (any, error) {
			return v.Params()
		}},
		{Path: prefix + "/totals", Read: func(map[string]string) (any, error) {
			deposited, err := v.TotalDeposited()
			if err != nil {
				return nil, err
			}
			distributed, err := v.TotalDistributed()
			if err != nil {
				return nil, err
			}
			return map[string]string{
				"total_deposited":   deposited.String(),
				"total_distributed": distributed.String(),
			}, nil
		}},
		{Path: prefix + "/trusted-caller", Read: func(map[string]string) (any, error) {
			addr, err := v.TrustedCaller()
			if err != nil {
				return nil, err
			}
			if addr.Empty() {
				return nil, storeview.ErrNotFound
			}
			return map[string]string{"trusted_caller": addr.String()}, nil
		}},
		{Path: prefix + "/winnings/{address}", Read: func(vars map[string]string) (any, error) {
			raw := vars["address"]
			addr, err := sdk.AccAddressFromBech32(raw)
			if err != nil {
				return nil, storeview.BadRequest(err)
			}
			won, err := v.Winnings(addr)
			if err != nil {
				return nil, err
			}
			return map[string]string{"address": raw, "winnings": won.String()}, nil
		}},
	}
}

// RegisterGatewayRoutes mounts the prizepool query routes on gw.
func RegisterGatewayRoutes(gw *runtime.ServeMux, r storeview.Reader) error {
	return storeview.Register(gw, Routes(r))
}
