package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/cosmos/cosmos-sdk/client/flags"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"botarena/app"
	prizepooltypes "botarena/x/prizepool/types"
)

const flagGenesis = "genesis"

func initCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create both ledgers under --home from defaults or an exported genesis",
		Long: `Create both ledgers under --home and commit their genesis. Without --genesis
the five default arenas are created and the prize pool trusts the arena module
account. The resolved owner is written to config/app.toml when no config file
exists yet, so later commands act for the same owner.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, cfg, err := openHome(cmd, v, false)
			if err != nil {
				return err
			}
			defer a.Close()

			owner, err := cfg.ownerAddress()
			if err != nil {
				return err
			}

			genesis := a.DefaultGenesis()
			if path := v.GetString(flagGenesis); path != "" {
				if err := readGenesis(path, genesis); err != nil {
					return err
				}
			}
			if err := a.InitGenesis(genesis); err != nil {
				return err
			}

			trusted, err := a.PrizePoolKeeper.GetTrustedCaller(a.Context())
			if err != nil {
				return err
			}
			if trusted.Empty() {
				if err := linkLedgers(a, owner); err != nil {
					return err
				}
			}
			if err := writeOwnerConfig(v, owner); err != nil {
				return err
			}

			return printJSON(cmd, map[string]any{
				"chain_id": app.Name,
				"home":     v.GetString(flags.FlagHome),
				"owner":    owner.String(),
				"version":  a.LastCommitID().Version,
			})
		},
	}

	cmd.Flags().String(flagGenesis, "", "genesis file as written by export; missing modules fall back to defaults")
	cmd.Flags().String(flagOwner, "", "bech32 address that owns both ledgers")
	return cmd
}

// readGenesis overlays the modules found in the file at path onto genesis.
func readGenesis(path string, genesis map[string]json.RawMessage) error {
	bz, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	var file map[string]json.RawMessage
	if err := json.Unmarshal(bz, &file); err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}
	for name, state := range file {
		if _, ok := genesis[name]; !ok {
			return fmt.Errorf("unknown module %q in %s", name, path)
		}
		genesis[name] = state
	}
	return nil
}

// linkLedgers makes the arena module account a trusted prize pool caller.
func linkLedgers(a *app.App, owner sdk.AccAddress) error {
	_, err := a.Deliver(func(ctx sdk.Context) error {
		_, err := a.PrizePoolMsgServer().SetTrustedCaller(ctx, &prizepooltypes.MsgSetTrustedCaller{
			Authority:     owner.String(),
			TrustedCaller: a.ArenaKeeper.ModuleAddress().String(),
		})
		return err
	})
	return err
}

// writeOwnerConfig records owner in app.toml unless a config file exists.
func writeOwnerConfig(v *viper.Viper, owner sdk.AccAddress) error {
	path := configPath(v)
	if _, err := os.Stat(path); err == nil {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	fv := viper.New()
	fv.Set(flagOwner, owner.String())
	return fv.WriteConfigAs(path)
}

func exportCmd(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "export",
		Short: "Print both ledgers as a genesis file init accepts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, _, err := openHome(cmd, v, true)
			if err != nil {
				return err
			}
			defer a.Close()

			genesis, err := a.ExportGenesis()
			if err != nil {
				return err
			}
			return printJSON(cmd, genesis)
		},
	}
}

func faucetCmd(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:     "faucet [address] [coins]",
		Short:   "Mint coins into an account of the local ledger",
		Example: fmt.Sprintf("%s faucet cosmos1... 5000000%s", app.Name, sdk.DefaultBondDenom),
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			addr, err := sdk.AccAddressFromBech32(args[0])
			if err != nil {
				return fmt.Errorf("invalid address %q: %w", args[0], err)
			}
			coins, err := sdk.ParseCoinsNormalized(args[1])
			if err != nil {
				return fmt.Errorf("invalid coins %q: %w", args[1], err)
			}
			if coins.Empty() {
				return fmt.Errorf("invalid coins %q: nothing to mint", args[1])
			}

			a, _, err := openHome(cmd, v, true)
			if err != nil {
				return err
			}
			defer a.Close()

			if err := a.Fund(addr, coins); err != nil {
				return err
			}
			balances := make(map[string]string, len(coins))
			for _, c := range coins {
				balances[c.Denom] = a.Balance(addr, c.Denom).String()
			}
			return printJSON(cmd, map[string]any{"address": addr.String(), "balances": balances})
		},
	}
}

func printJSON(cmd *cobra.Command, out any) error {
	bz, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), string(bz))
	return err
}
