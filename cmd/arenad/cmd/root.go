package cmd

import (
	"github.com/cosmos/cosmos-sdk/client"
	"github.com/cosmos/cosmos-sdk/client/flags"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"botarena/app"
	"botarena/internal/storeview"
	arenacli "botarena/x/arena/client/cli"
	prizepoolcli "botarena/x/prizepool/client/cli"
)

// NewRootCmd creates a new root command for arenad.
func NewRootCmd() *cobra.Command {
	v := viper.New()

	rootCmd := &cobra.Command{
		Use:          app.Name,
		Short:        "Arena escrow and prize pool ledger",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			// set the default command outputs
			cmd.SetOut(cmd.OutOrStdout())
			cmd.SetErr(cmd.ErrOrStderr())

			if err := initConfig(v, cmd.Flags()); err != nil {
				return err
			}
			cmd.SetContext(storeview.WithOpener(cmd.Context(), homeOpener(cmd, v)))
			return nil
		},
	}

	rootCmd.PersistentFlags().String(flags.FlagHome, app.DefaultNodeHome, "The application home directory")
	rootCmd.PersistentFlags().String(flags.FlagLogLevel, "info", "The logging level (trace|debug|info|warn|error|fatal|panic)")

	rootCmd.AddCommand(
		initCmd(v),
		faucetCmd(v),
		exportCmd(v),
		queryCommand(),
		txCommand(v),
		restServerCmd(v),
		simulateCmd(v),
	)
	return rootCmd
}

func queryCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:                        "query",
		Aliases:                    []string{"q"},
		Short:                      "Querying subcommands",
		DisableFlagParsing:         false,
		SuggestionsMinimumDistance: 2,
		RunE:                       client.ValidateCmd,
	}

	cmd.AddCommand(
		arenacli.GetQueryCmd(),
		prizepoolcli.GetQueryCmd(),
	)
	return cmd
}
