package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/cosmos/cosmos-sdk/client"
	"github.com/spf13/cast"
	"github.com/spf13/cobra"

	"botarena/internal/storeview"
	"botarena/x/arena/types"
)

// GetQueryCmd returns the query commands for the arena module.
func GetQueryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:                        types.ModuleName,
		Short:                      "Querying commands for the arena module",
		DisableFlagParsing:         true,
		SuggestionsMinimumDistance: 2,
		RunE:                       client.ValidateCmd,
	}

	cmd.AddCommand(
		viewCmd("params", "Shows the parameters of the module", func(v types.StoreView, _ uint64) (any, error) {
			return v.Params()
		}),
		viewCmd("arenas", "Lists every arena tier", func(v types.StoreView, _ uint64) (any, error) {
			return v.Arenas()
		}),
		viewCmd("arena [arena-id]", "Shows one arena tier", func(v types.StoreView, id uint64) (any, error) {
			return v.Arena(id)
		}),
		viewCmd("games", "Lists every game", func(v types.StoreView, _ uint64) (any, error) {
			return v.Games()
		}),
		viewCmd("game [game-id]", "Shows one game", func(v types.StoreView, id uint64) (any, error) {
			return v.Game(id)
		}),
		viewCmd("participants [game-id]", "Lists a game's participants in join order", func(v types.StoreView, id uint64) (any, error) {
			return v.Participants(id)
		}),
		viewCmd("fees", "Shows operator fees not yet withdrawn", func(v types.StoreView, _ uint64) (any, error) {
			fees, err := v.AccumulatedFees()
			if err != nil {
				return nil, err
			}
			return map[string]string{"accumulated_fees": fees.String()}, nil
		}),
	)
	return cmd
}

// viewCmd builds a query command. A use string with an argument placeholder
// takes exactly one numeric id.
func viewCmd(use, short string, read func(v types.StoreView, id uint64) (any, error)) *cobra.Command {
	args := cobra.NoArgs
	_, _, withID := strings.Cut(use, " ")
	if withID {
		args = cobra.ExactArgs(1)
	}

	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  args,
		RunE: func(cmd *cobra.Command, argv []string) error {
			var id uint64
			if withID {
				var err error
				if id, err = cast.ToUint64E(argv[0]); err != nil {
					return fmt.Errorf("invalid id %q: %w", argv[0], err)
				}
			}

			r, closer, err := storeview.Open(cmd.Context(), types.StoreKey)
			if err != nil {
				return err
			}
			defer closer.Close()

			out, err := read(types.NewStoreView(r), id)
			if err != nil {
				return err
			}
			bz, err := json.Marshal(out)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), string(bz))
			return err
		},
	}
}
