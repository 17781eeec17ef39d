package module_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	storetypes "cosmossdk.io/store/types"
	"github.com/cosmos/cosmos-sdk/client"
	addresscodec "github.com/cosmos/cosmos-sdk/codec/address"
	"github.com/cosmos/cosmos-sdk/runtime"
	"github.com/cosmos/cosmos-sdk/testutil"
	sdk "github.com/cosmos/cosmos-sdk/types"
	gwruntime "github.com/grpc-ecosystem/grpc-gateway/runtime"
	"github.com/stretchr/testify/require"

	"botarena/internal/storeview"
	"botarena/testutil/custodytest"
	"botarena/x/prizepool/keeper"
	poolmodule "botarena/x/prizepool/module"
	"botarena/x/prizepool/types"
)

func TestAppModule_Genesis(t *testing.T) {
	storeKey := storetypes.NewKVStoreKey(types.StoreKey)
	ctx := testutil.DefaultContextWithDB(t, storeKey, storetypes.NewTransientStoreKey("transient_test")).Ctx
	k := keeper.NewKeeper(
		runtime.NewKVStoreService(storeKey),
		addresscodec.NewBech32Codec("cosmos"),
		sdk.AccAddress([]byte("pool_owner__________")),
		custodytest.NewBankKeeper(),
	)
	am := poolmodule.NewAppModule(k)

	// An empty genesis falls back to defaults.
	require.Nil(t, am.InitGenesis(ctx, nil, nil))

	var exported types.GenesisState
	require.NoError(t, json.Unmarshal(am.ExportGenesis(ctx, nil), &exported))
	require.Equal(t, types.DefaultDenom, exported.Params.Denom)
	require.True(t, exported.TotalDistributed.IsZero())

	require.NoError(t, am.ValidateGenesis(nil, nil, am.DefaultGenesis(nil)))
	require.Error(t, am.ValidateGenesis(nil, nil, json.RawMessage(`{"params":`)))

	require.Panics(t, func() {
		am.InitGenesis(ctx, nil, json.RawMessage(`{"params":{"denom":""}}`))
	})
}

func TestAppModuleBasic_GatewayRoutes(t *testing.T) {
	storeKey := storetypes.NewKVStoreKey(types.StoreKey)
	ctx := testutil.DefaultContextWithDB(t, storeKey, storetypes.NewTransientStoreKey("transient_test")).Ctx
	storeService := runtime.NewKVStoreService(storeKey)
	k := keeper.NewKeeper(
		storeService,
		addresscodec.NewBech32Codec("cosmos"),
		sdk.AccAddress([]byte("pool_owner__________")),
		custodytest.NewBankKeeper(),
	)
	am := poolmodule.NewAppModule(k)
	require.Nil(t, am.InitGenesis(ctx, nil, am.DefaultGenesis(nil)))

	readers := storeview.WithReaders(context.Background(), func(key string) storeview.Reader {
		if key != types.StoreKey {
			return nil
		}
		return storeService.OpenKVStore(ctx)
	})
	gw := gwruntime.NewServeMux()
	poolmodule.AppModuleBasic{}.RegisterGRPCGatewayRoutes(client.Context{}.WithCmdContext(readers), gw)

	rec := httptest.NewRecorder()
	gw.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/prizepool/totals", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	require.Panics(t, func() {
		poolmodule.AppModuleBasic{}.RegisterGRPCGatewayRoutes(client.Context{}.WithCmdContext(context.Background()), gwruntime.NewServeMux())
	})
}
