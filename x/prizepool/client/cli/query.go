package cli

import (
	"encoding/json"
	"fmt"

	"github.com/cosmos/cosmos-sdk/client"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/spf13/cobra"

	"botarena/internal/storeview"
	"botarena/x/prizepool/types"
)

// GetQueryCmd returns the query commands for the prizepool module.
func GetQueryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:                        types.ModuleName,
		Short:                      "Querying commands for the prizepool module",
		DisableFlagParsing:         true,
		SuggestionsMinimumDistance: 2,
		RunE:                       client.ValidateCmd,
	}

	cmd.AddCommand(
		getParamsCmd(),
		getTotalsCmd(),
		getTrustedCallerCmd(),
		getWinningsCmd(),
	)
	return cmd
}

// withView opens the prizepool store for the duration of fn and prints what
// fn returns as one line of JSON.
func withView(cmd *cobra.Command, fn func(v types.StoreView) (any, error)) error {
	r, closer, err := storeview.Open(cmd.Context(), types.StoreKey)
	if err != nil {
		return err
	}
	defer closer.Close()

	out, err := fn(types.NewStoreView(r))
	if err != nil {
		return err
	}
	bz, err := json.Marshal(out)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), string(bz))
	return err
}

func getParamsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "params",
		Short: "Shows the parameters of the module",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withView(cmd, func(v types.StoreView) (any, error) {
				return v.Params()
			})
		},
	}
}

func getTotalsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "totals",
		Short: "Shows the running deposit and distribution totals",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withView(cmd, func(v types.StoreView) (any, error) {
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
			})
		},
	}
}

func getTrustedCallerCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "trusted-caller",
		Short: "Shows the address allowed to distribute prizes besides the owner",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withView(cmd, func(v types.StoreView) (any, error) {
				addr, err := v.TrustedCaller()
				if err != nil {
					return nil, err
				}
				out := ""
				if !addr.Empty() {
					out = addr.String()
				}
				return map[string]string{"trusted_caller": out}, nil
			})
		},
	}
}

func getWinningsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "winnings [address]",
		Short: "Shows the cumulative prizes paid to an address",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			addr, err := sdk.AccAddressFromBech32(args[0])
			if err != nil {
				return err
			}
			return withView(cmd, func(v types.StoreView) (any, error) {
				won, err := v.Winnings(addr)
				if err != nil {
					return nil, err
				}
				return map[string]string{"address": args[0], "winnings": won.String()}, nil
			})
		},
	}
}
