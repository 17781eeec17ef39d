package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"cosmossdk.io/log"
	"github.com/cosmos/cosmos-sdk/client/flags"
	serverconfig "github.com/cosmos/cosmos-sdk/server/config"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/rs/zerolog"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	// EnvPrefix prefixes every environment override, e.g. ARENAD_API_ADDRESS.
	EnvPrefix = "ARENAD"

	flagAPIAddress = "api.address"
	flagOwner      = "arena.owner"
)

// ArenaConfig holds the ledger settings of a local deployment.
type ArenaConfig struct {
	// Owner administers both ledgers. Empty means a fixed local operator.
	Owner string `mapstructure:"owner"`
}

// AppConfig is app.toml: the SDK server config plus an [arena] section.
type AppConfig struct {
	serverconfig.Config `mapstructure:",squash"`

	Arena ArenaConfig `mapstructure:"arena"`
}

// initAppConfig helps to override default appConfig values.
func initAppConfig() AppConfig {
	srvCfg := serverconfig.DefaultConfig()
	// The ledger routes are the only API this binary serves.
	srvCfg.API.Enable = true
	srvCfg.API.Swagger = true

	return AppConfig{Config: *srvCfg}
}

// initConfig layers flags over ARENAD_* env over <home>/config/app.toml.
func initConfig(v *viper.Viper, fs *pflag.FlagSet) error {
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if err := v.BindPFlags(fs); err != nil {
		return err
	}

	cfgFile := filepath.Join(v.GetString(flags.FlagHome), "config", "app.toml")
	if _, err := os.Stat(cfgFile); err != nil {
		return nil
	}
	v.SetConfigFile(cfgFile)
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("failed to read %s: %w", cfgFile, err)
	}
	return nil
}

func loadAppConfig(v *viper.Viper) (AppConfig, error) {
	cfg := initAppConfig()
	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse app config: %w", err)
	}
	return cfg, nil
}

// ownerAddress resolves the configured ledger owner.
func (c AppConfig) ownerAddress() (sdk.AccAddress, error) {
	if c.Arena.Owner == "" {
		return defaultOwner, nil
	}
	addr, err := sdk.AccAddressFromBech32(c.Arena.Owner)
	if err != nil {
		return nil, fmt.Errorf("invalid %s %q: %w", flagOwner, c.Arena.Owner, err)
	}
	return addr, nil
}

// listenAddress strips the tcp:// scheme the SDK config uses.
func (c AppConfig) listenAddress() string {
	return strings.TrimPrefix(c.API.Address, "tcp://")
}

func newLogger(w io.Writer, level string) (log.Logger, error) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid %s %q: %w", flags.FlagLogLevel, level, err)
	}
	return log.NewLogger(w, log.LevelOption(lvl)), nil
}
