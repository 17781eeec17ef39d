package app

import (
	"encoding/json"
	"errors"
	"fmt"

	"cosmossdk.io/log"
	math "cosmossdk.io/math"
	"cosmossdk.io/store/metrics"
	"cosmossdk.io/store/rootmulti"
	storetypes "cosmossdk.io/store/types"
	cmtproto "github.com/cometbft/cometbft/proto/tendermint/types"
	dbm "github.com/cosmos/cosmos-db"
	"github.com/cosmos/cosmos-sdk/codec"
	addresscodec "github.com/cosmos/cosmos-sdk/codec/address"
	codectypes "github.com/cosmos/cosmos-sdk/codec/types"
	"github.com/cosmos/cosmos-sdk/runtime"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/cosmos/cosmos-sdk/types/module"
	authkeeper "github.com/cosmos/cosmos-sdk/x/auth/keeper"
	authtypes "github.com/cosmos/cosmos-sdk/x/auth/types"
	bankkeeper "github.com/cosmos/cosmos-sdk/x/bank/keeper"
	banktypes "github.com/cosmos/cosmos-sdk/x/bank/types"

	"botarena/internal/storeview"
	arenakeeper "botarena/x/arena/keeper"
	arenamodule "botarena/x/arena/module"
	arenatypes "botarena/x/arena/types"
	prizepoolkeeper "botarena/x/prizepool/keeper"
	prizepoolmodule "botarena/x/prizepool/module"
	prizepooltypes "botarena/x/prizepool/types"
)

const (
	// Name is the name of the application.
	Name = "arenad"
	// AccountAddressPrefix is the prefix for accounts addresses.
	AccountAddressPrefix = "cosmos"

	// FaucetName is a minter-only module account used to fund accounts in
	// local runs. It holds nothing between calls.
	FaucetName = "faucet"
)

// ErrAlreadyInitialized is returned by InitGenesis on a store that already
// holds a committed ledger.
var ErrAlreadyInitialized = errors.New("genesis already committed")

// ModuleBasics holds the non-dependant parts of both ledger modules.
var ModuleBasics = module.NewBasicManager(
	arenamodule.AppModuleBasic{},
	prizepoolmodule.AppModuleBasic{},
)

// maccPerms are the module accounts the app knows about. The ledgers only
// ever receive and send, so neither needs a permission.
var maccPerms = map[string][]string{
	FaucetName:               {authtypes.Minter},
	arenatypes.ModuleName:     nil,
	prizepooltypes.ModuleName: nil,
}

// App holds both ledger modules on top of x/auth and x/bank, over a single
// multistore. It is not an ABCI application: state changes go through Deliver,
// which commits every successful call.
type App struct {
	logger log.Logger
	db     dbm.DB
	cms    storetypes.CommitMultiStore
	keys   map[string]*storetypes.KVStoreKey
	cdc    codec.Codec

	AuthKeeper      authkeeper.AccountKeeper
	BankKeeper      bankkeeper.BaseKeeper
	ArenaKeeper     arenakeeper.Keeper
	PrizePoolKeeper prizepoolkeeper.Keeper

	ModuleManager *module.Manager

	ctx sdk.Context
}

// New mounts the stores on db and builds every keeper. owner administers both
// ledgers.
func New(logger log.Logger, db dbm.DB, owner sdk.AccAddress) (*App, error) {
	if owner.Empty() {
		return nil, fmt.Errorf("owner address is required")
	}

	registry := codectypes.NewInterfaceRegistry()
	authtypes.RegisterInterfaces(registry)
	banktypes.RegisterInterfaces(registry)
	cdc := codec.NewProtoCodec(registry)

	keys := storetypes.NewKVStoreKeys(
		authtypes.StoreKey,
		banktypes.StoreKey,
		arenatypes.StoreKey,
		prizepooltypes.StoreKey,
	)
	cms := rootmulti.NewStore(db, logger, metrics.NewNoOpMetrics())
	for _, key := range keys {
		cms.MountStoreWithDB(key, storetypes.StoreTypeIAVL, nil)
	}
	if err := cms.LoadLatestVersion(); err != nil {
		return nil, fmt.Errorf("load stores: %w", err)
	}

	addrCodec := addresscodec.NewBech32Codec(AccountAddressPrefix)
	authority := authtypes.NewModuleAddress("gov").String()

	app := &App{
		logger: logger,
		db:     db,
		cms:    cms,
		keys:   keys,
		cdc:    cdc,
	}
	app.AuthKeeper = authkeeper.NewAccountKeeper(
		cdc,
		runtime.NewKVStoreService(keys[authtypes.StoreKey]),
		authtypes.ProtoBaseAccount,
		maccPerms,
		addrCodec,
		AccountAddressPrefix,
		authority,
	)
	app.BankKeeper = bankkeeper.NewBaseKeeper(
		cdc,
		runtime.NewKVStoreService(keys[banktypes.StoreKey]),
		app.AuthKeeper,
		map[string]bool{},
		authority,
		logger,
	)
	app.ArenaKeeper = arenakeeper.NewKeeper(
		runtime.NewKVStoreService(keys[arenatypes.StoreKey]),
		addrCodec,
		owner,
		app.BankKeeper,
	)
	app.PrizePoolKeeper = prizepoolkeeper.NewKeeper(
		runtime.NewKVStoreService(keys[prizepooltypes.StoreKey]),
		addrCodec,
		owner,
		app.BankKeeper,
	)

	app.ModuleManager = module.NewManager(
		arenamodule.NewAppModule(app.ArenaKeeper),
		prizepoolmodule.NewAppModule(app.PrizePoolKeeper),
	)
	app.ModuleManager.SetOrderInitGenesis(arenatypes.ModuleName, prizepooltypes.ModuleName)
	app.ModuleManager.SetOrderExportGenesis(arenatypes.ModuleName, prizepooltypes.ModuleName)

	app.ctx = sdk.NewContext(cms, cmtproto.Header{ChainID: Name}, false, logger)
	return app, nil
}

// Context returns the context every operation runs against. Writes made
// through it directly are only persisted by Commit.
func (app *App) Context() sdk.Context { return app.ctx }

func (app *App) Logger() log.Logger { return app.logger }

// LastCommitID returns the version and hash of the last commit.
func (app *App) LastCommitID() storetypes.CommitID {
	return app.cms.LastCommitID()
}

// Initialized reports whether genesis has been committed to the store.
func (app *App) Initialized() bool {
	return app.LastCommitID().Version > 0
}

// Close releases the underlying database.
func (app *App) Close() error {
	return app.db.Close()
}

// Deliver runs fn against a branch of the working state. The branch is written
// and committed only when fn succeeds; the events fn emitted are returned.
func (app *App) Deliver(fn func(ctx sdk.Context) error) (sdk.Events, error) {
	cacheCtx, write := app.ctx.CacheContext()
	em := sdk.NewEventManager()
	if err := fn(cacheCtx.WithEventManager(em)); err != nil {
		return nil, err
	}
	write()
	app.Commit()
	return em.Events(), nil
}

// ArenaMsgServer returns the arena message handler.
func (app *App) ArenaMsgServer() arenakeeper.MsgServer {
	return arenakeeper.NewMsgServerImpl(app.ArenaKeeper)
}

// PrizePoolMsgServer returns the prizepool message handler.
func (app *App) PrizePoolMsgServer() prizepoolkeeper.MsgServer {
	return prizepoolkeeper.NewMsgServerImpl(app.PrizePoolKeeper)
}

// DefaultGenesis returns default genesis for every ledger module.
func (app *App) DefaultGenesis() map[string]json.RawMessage {
	return ModuleBasics.DefaultGenesis(app.cdc)
}

// InitGenesis enables bank transfers and constructs both ledgers from genesis,
// then commits. Modules run in init order. The manager's own InitGenesis is
// not used since it requires a validator set.
func (app *App) InitGenesis(genesis map[string]json.RawMessage) error {
	if app.Initialized() {
		return ErrAlreadyInitialized
	}
	if err := ModuleBasics.ValidateGenesis(app.cdc, nil, genesis); err != nil {
		return err
	}
	_, err := app.Deliver(func(ctx sdk.Context) error {
		if err := app.BankKeeper.SetParams(ctx, banktypes.DefaultParams()); err != nil {
			return err
		}
		for _, name := range app.ModuleManager.OrderInitGenesis {
			mod, ok := app.ModuleManager.Modules[name].(module.HasABCIGenesis)
			if !ok {
				continue
			}
			if err := initModuleGenesis(ctx, app.cdc, mod, genesis[name]); err != nil {
				return fmt.Errorf("failed to init %s genesis: %w", name, err)
			}
		}
		return nil
	})
	return err
}

// initModuleGenesis turns a module's InitGenesis panic back into an error.
func initModuleGenesis(ctx sdk.Context, cdc codec.JSONCodec, mod module.HasABCIGenesis, data json.RawMessage) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%v", r)
		}
	}()
	mod.InitGenesis(ctx, cdc, data)
	return nil
}

// ExportGenesis dumps both ledgers.
func (app *App) ExportGenesis() (map[string]json.RawMessage, error) {
	return app.ModuleManager.ExportGenesis(app.ctx, app.cdc)
}

// Fund mints coins through the faucet account into addr and commits.
func (app *App) Fund(addr sdk.AccAddress, coins sdk.Coins) error {
	_, err := app.Deliver(func(ctx sdk.Context) error {
		if err := app.BankKeeper.MintCoins(ctx, FaucetName, coins); err != nil {
			return err
		}
		return app.BankKeeper.SendCoinsFromModuleToAccount(ctx, FaucetName, addr, coins)
	})
	return err
}

// Balance returns addr's balance of denom.
func (app *App) Balance(addr sdk.AccAddress, denom string) math.Int {
	return app.BankKeeper.GetBalance(app.ctx, addr, denom).Amount
}

// ModuleAddress returns the custody account of a ledger module.
func (app *App) ModuleAddress(moduleName string) sdk.AccAddress {
	return authtypes.NewModuleAddress(moduleName)
}

// StoreReader returns a raw reader over a module store. It reads the working
// state and stays valid until Close.
func (app *App) StoreReader(storeKey string) storeview.Reader {
	key, ok := app.keys[storeKey]
	if !ok {
		return nil
	}
	return runtime.NewKVStoreService(key).OpenKVStore(app.ctx)
}

// Commit persists the working state and returns the new version.
func (app *App) Commit() storetypes.CommitID {
	return app.cms.Commit()
}

// CheckInvariants runs every ledger invariant and reports the first broken one.
func (app *App) CheckInvariants() error {
	reg := invariantRegistry{}
	for _, name := range app.ModuleManager.OrderInitGenesis {
		if mod, ok := app.ModuleManager.Modules[name].(hasInvariants); ok {
			mod.RegisterInvariants(&reg)
		}
	}
	for _, r := range reg {
		if msg, broken := r.invariant(app.ctx); broken {
			return fmt.Errorf("invariant %s broken: %s", r.route, msg)
		}
	}
	return nil
}

type hasInvariants interface {
	RegisterInvariants(sdk.InvariantRegistry)
}

type registeredInvariant struct {
	route     string
	invariant sdk.Invariant
}

type invariantRegistry []registeredInvariant

func (r *invariantRegistry) RegisterRoute(moduleName, route string, invar sdk.Invariant) {
	*r = append(*r, registeredInvariant{route: moduleName + "/" + route, invariant: invar})
}
