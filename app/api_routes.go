package app

import (
	"context"
	"net/http"

	"github.com/cosmos/cosmos-sdk/client"
	"github.com/gorilla/mux"
	"github.com/grpc-ecosystem/grpc-gateway/runtime"

	"botarena/docs"
	"botarena/internal/storeview"
	arenatypes "botarena/x/arena/types"
	prizepooltypes "botarena/x/prizepool/types"
)

// RegisterAPIRoutes mounts the OpenAPI console and both ledgers' query routes.
// The module routes are registered on a gateway mux by the modules themselves,
// reading from readers. Every route is served at the root and again behind
// /api, so deployments that proxy-strip the /api prefix keep working.
func RegisterAPIRoutes(appName string, rtr *mux.Router, readers storeview.ReaderFunc) {
	clientCtx := client.Context{}.WithCmdContext(storeview.WithReaders(context.Background(), readers))
	gw := runtime.NewServeMux()
	ModuleBasics.RegisterGRPCGatewayRoutes(clientCtx, gw)

	// Subrouter under /api to keep routing isolated and avoid recursive strip-prefix
	apiRouter := rtr.PathPrefix("/api").Subrouter()
	for _, name := range []string{arenatypes.ModuleName, prizepooltypes.ModuleName} {
		apiRouter.PathPrefix("/" + name + "/").Handler(http.StripPrefix("/api", gw))
		rtr.PathPrefix("/" + name + "/").Handler(gw)
	}

	docs.RegisterOpenAPIService(appName, rtr)

	rtr.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "route not found", http.StatusNotFound)
	})
}

// RegisterAPIRoutes serves the stores of app. The routes stay valid until
// app is closed.
func (app *App) RegisterAPIRoutes(rtr *mux.Router) {
	RegisterAPIRoutes(Name, rtr, app.StoreReader)
}
