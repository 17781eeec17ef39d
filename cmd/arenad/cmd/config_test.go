package cmd

import (
	"context"
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"cosmossdk.io/log"
	"github.com/cosmos/cosmos-sdk/client/flags"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"
)

func TestInitConfig_Layers(t *testing.T) {
	owner := sdk.AccAddress([]byte("config_file_owner___"))
	home := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(home, "config"), 0o755))
	appToml := "[api]\naddress = \"tcp://127.0.0.1:1400\"\n\n[arena]\nowner = \"" + owner.String() + "\"\n"
	require.NoError(t, os.WriteFile(filepath.Join(home, "config", "app.toml"), []byte(appToml), 0o600))

	load := func(t *testing.T) AppConfig {
		t.Helper()
		v := viper.New()
		cmd := simulateCmd(v)
		cmd.Flags().String(flags.FlagHome, "", "")
		require.NoError(t, cmd.Flags().Set(flags.FlagHome, home))
		require.NoError(t, initConfig(v, cmd.Flags()))
		cfg, err := loadAppConfig(v)
		require.NoError(t, err)
		return cfg
	}

	t.Run("file", func(t *testing.T) {
		cfg := load(t)
		require.Equal(t, "127.0.0.1:1400", cfg.listenAddress())
		got, err := cfg.ownerAddress()
		require.NoError(t, err)
		require.Equal(t, owner, got)
		require.True(t, cfg.API.Enable)
	})

	t.Run("env overrides file", func(t *testing.T) {
		t.Setenv("ARENAD_API_ADDRESS", "tcp://127.0.0.1:1500")
		cfg := load(t)
		require.Equal(t, "127.0.0.1:1500", cfg.listenAddress())
	})
}

func TestInitConfig_NoFile(t *testing.T) {
	v := viper.New()
	cmd := simulateCmd(v)
	cmd.Flags().String(flags.FlagHome, t.TempDir(), "")
	require.NoError(t, initConfig(v, cmd.Flags()))

	cfg, err := loadAppConfig(v)
	require.NoError(t, err)
	require.Equal(t, "localhost:1317", cfg.listenAddress())

	got, err := cfg.ownerAddress()
	require.NoError(t, err)
	require.Equal(t, defaultOwner, got)
}

func TestNewLogger(t *testing.T) {
	_, err := newLogger(os.Stderr, "debug")
	require.NoError(t, err)
	_, err = newLogger(os.Stderr, "chatty")
	require.Error(t, err)
}

func TestServe_StopsOnCancel(t *testing.T) {
	cfg := initAppConfig()
	cfg.API.Address = "tcp://127.0.0.1:0"

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- serve(ctx, log.NewNopLogger(), cfg, http.NotFoundHandler())
	}()
	cancel()
	require.NoError(t, <-done)
}

func TestQueryCommand(t *testing.T) {
	cmd := queryCommand()

	var names []string
	for _, c := range cmd.Commands() {
		names = append(names, c.Name())
	}
	require.ElementsMatch(t, []string{"arena", "prizepool"}, names)
}
