package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	dbm "github.com/cosmos/cosmos-db"
	"github.com/cosmos/cosmos-sdk/client/flags"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"botarena/app"
	"botarena/internal/storeview"
)

const (
	dataDir = "data"
	dbName  = "application"
)

var errNotInitialized = errors.New("ledger not initialized, run init first")

func dataPath(v *viper.Viper) string {
	return filepath.Join(v.GetString(flags.FlagHome), dataDir)
}

func configPath(v *viper.Viper) string {
	return filepath.Join(v.GetString(flags.FlagHome), "config", "app.toml")
}

// openHome opens the ledger persisted under --home. initialized states
// whether the command expects a committed genesis. The caller must close the
// returned app.
func openHome(cmd *cobra.Command, v *viper.Viper, initialized bool) (*app.App, AppConfig, error) {
	cfg, err := loadAppConfig(v)
	if err != nil {
		return nil, cfg, err
	}
	owner, err := cfg.ownerAddress()
	if err != nil {
		return nil, cfg, err
	}
	logger, err := newLogger(cmd.ErrOrStderr(), v.GetString(flags.FlagLogLevel))
	if err != nil {
		return nil, cfg, err
	}

	dir := dataPath(v)
	if initialized {
		if _, err := os.Stat(filepath.Join(dir, dbName+".db")); err != nil {
			return nil, cfg, fmt.Errorf("%w: %s", errNotInitialized, dir)
		}
	}
	db, err := dbm.NewDB(dbName, dbm.GoLevelDBBackend, dir)
	if err != nil {
		return nil, cfg, fmt.Errorf("failed to open %s: %w", dir, err)
	}
	a, err := app.New(logger, db, owner)
	if err != nil {
		db.Close()
		return nil, cfg, err
	}

	switch {
	case initialized && !a.Initialized():
		a.Close()
		return nil, cfg, fmt.Errorf("%w: %s", errNotInitialized, dir)
	case !initialized && a.Initialized():
		a.Close()
		return nil, cfg, fmt.Errorf("%w: %s", app.ErrAlreadyInitialized, dir)
	}
	return a, cfg, nil
}

// homeOpener opens one module store of the persisted ledger for the query
// commands. Closing the returned closer closes the ledger.
func homeOpener(cmd *cobra.Command, v *viper.Viper) storeview.OpenFunc {
	return func(storeKey string) (storeview.Reader, io.Closer, error) {
		a, _, err := openHome(cmd, v, true)
		if err != nil {
			return nil, nil, err
		}
		r := a.StoreReader(storeKey)
		if r == nil {
			a.Close()
			return nil, nil, fmt.Errorf("%w: %s", storeview.ErrNoStore, storeKey)
		}
		return r, a, nil
	}
}
