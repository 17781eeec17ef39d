package cmd

import (
	"fmt"

	math "cosmossdk.io/math"
	"github.com/cosmos/cosmos-sdk/client"
	"github.com/cosmos/cosmos-sdk/client/flags"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/spf13/cast"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"botarena/app"
	arenatypes "botarena/x/arena/types"
	prizepooltypes "botarena/x/prizepool/types"
)

// txResult is what every tx subcommand prints.
type txResult struct {
	Response any       `json:"response"`
	Events   []txEvent `json:"events"`
}

type txEvent struct {
	Type       string            `json:"type"`
	Attributes map[string]string `json:"attributes"`
}

// txHandler turns the signer and positional args into one message call.
type txHandler func(ctx sdk.Context, a *app.App, from string, args []string) (any, error)

func txCommand(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:                        "tx",
		Short:                      "Transactions subcommands",
		DisableFlagParsing:         false,
		SuggestionsMinimumDistance: 2,
		RunE:                       client.ValidateCmd,
	}
	cmd.PersistentFlags().String(flags.FlagFrom, "", "bech32 address that signs the message")

	cmd.AddCommand(
		arenaTxCmd(v),
		prizepoolTxCmd(v),
	)
	return cmd
}

// msgCmd builds a tx subcommand that runs handle as one committed state
// transition against the ledger under --home.
func msgCmd(v *viper.Viper, use, short string, args cobra.PositionalArgs, handle txHandler) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  args,
		RunE: func(cmd *cobra.Command, argv []string) error {
			from := v.GetString(flags.FlagFrom)
			if from == "" {
				return fmt.Errorf("--%s is required", flags.FlagFrom)
			}

			a, _, err := openHome(cmd, v, true)
			if err != nil {
				return err
			}
			defer a.Close()

			var resp any
			events, err := a.Deliver(func(ctx sdk.Context) error {
				var err error
				resp, err = handle(ctx, a, from, argv)
				return err
			})
			if err != nil {
				return err
			}

			res := txResult{Response: resp, Events: make([]txEvent, 0, len(events))}
			for _, e := range events {
				attrs := make(map[string]string, len(e.Attributes))
				for _, attr := range e.Attributes {
					attrs[attr.Key] = attr.Value
				}
				res.Events = append(res.Events, txEvent{Type: e.Type, Attributes: attrs})
			}
			return printJSON(cmd, res)
		},
	}
}

func parseID(s string) (uint64, error) {
	id, err := cast.ToUint64E(s)
	if err != nil {
		return 0, fmt.Errorf("invalid id %q: %w", s, err)
	}
	return id, nil
}

func parseAmount(s string) (math.Int, error) {
	amt, ok := math.NewIntFromString(s)
	if !ok {
		return math.Int{}, fmt.Errorf("invalid amount %q", s)
	}
	return amt, nil
}

func arenaTxCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:                        arenatypes.ModuleName,
		Short:                      "Arena transactions subcommands",
		SuggestionsMinimumDistance: 2,
		RunE:                       client.ValidateCmd,
	}

	cmd.AddCommand(
		msgCmd(v, "create-arena [entry-fee]", "Add an arena tier, owner only", cobra.ExactArgs(1),
			func(ctx sdk.Context, a *app.App, from string, args []string) (any, error) {
				fee, err := parseAmount(args[0])
				if err != nil {
					return nil, err
				}
				return a.ArenaMsgServer().CreateArena(ctx, &arenatypes.MsgCreateArena{Authority: from, EntryFee: fee})
			}),
		msgCmd(v, "toggle-arena [arena-id] [active]", "Open or close an arena tier, owner only", cobra.ExactArgs(2),
			func(ctx sdk.Context, a *app.App, from string, args []string) (any, error) {
				id, err := parseID(args[0])
				if err != nil {
					return nil, err
				}
				active, err := cast.ToBoolE(args[1])
				if err != nil {
					return nil, fmt.Errorf("invalid active flag %q: %w", args[1], err)
				}
				return a.ArenaMsgServer().ToggleArena(ctx, &arenatypes.MsgToggleArena{Authority: from, ArenaID: id, Active: active})
			}),
		msgCmd(v, "create-game [arena-id]", "Open a lobby in an active arena", cobra.ExactArgs(1),
			func(ctx sdk.Context, a *app.App, from string, args []string) (any, error) {
				id, err := parseID(args[0])
				if err != nil {
					return nil, err
				}
				return a.ArenaMsgServer().CreateGame(ctx, &arenatypes.MsgCreateGame{Creator: from, ArenaID: id})
			}),
		msgCmd(v, "join-game [game-id]", "Pay the entry fee and take a seat", cobra.ExactArgs(1),
			func(ctx sdk.Context, a *app.App, from string, args []string) (any, error) {
				id, err := parseID(args[0])
				if err != nil {
					return nil, err
				}
				return a.ArenaMsgServer().JoinGame(ctx, &arenatypes.MsgJoinGame{Player: from, GameID: id})
			}),
		msgCmd(v, "complete-game [game-id] [winner]", "Settle a full lobby and pay the winner, owner only", cobra.ExactArgs(2),
			func(ctx sdk.Context, a *app.App, from string, args []string) (any, error) {
				id, err := parseID(args[0])
				if err != nil {
					return nil, err
				}
				return a.ArenaMsgServer().CompleteGame(ctx, &arenatypes.MsgCompleteGame{Authority: from, GameID: id, Winner: args[1]})
			}),
		msgCmd(v, "withdraw-fees", "Pay accumulated operator fees to the owner", cobra.NoArgs,
			func(ctx sdk.Context, a *app.App, from string, _ []string) (any, error) {
				return a.ArenaMsgServer().WithdrawOperatorFees(ctx, &arenatypes.MsgWithdrawOperatorFees{Authority: from})
			}),
	)
	return cmd
}

func prizepoolTxCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:                        prizepooltypes.ModuleName,
		Short:                      "Prize pool transactions subcommands",
		SuggestionsMinimumDistance: 2,
		RunE:                       client.ValidateCmd,
	}

	cmd.AddCommand(
		msgCmd(v, "deposit [amount]", "Move funds from the signer into the pool", cobra.ExactArgs(1),
			func(ctx sdk.Context, a *app.App, from string, args []string) (any, error) {
				amt, err := parseAmount(args[0])
				if err != nil {
					return nil, err
				}
				return a.PrizePoolMsgServer().Deposit(ctx, &prizepooltypes.MsgDeposit{Depositor: from, Amount: amt})
			}),
		msgCmd(v, "set-trusted-caller [address]", "Allow an address to distribute prizes, owner only", cobra.ExactArgs(1),
			func(ctx sdk.Context, a *app.App, from string, args []string) (any, error) {
				return a.PrizePoolMsgServer().SetTrustedCaller(ctx, &prizepooltypes.MsgSetTrustedCaller{Authority: from, TrustedCaller: args[0]})
			}),
		msgCmd(v, "distribute [winner] [amount] [game-ref]", "Pay a prize out of the pool", cobra.ExactArgs(3),
			func(ctx sdk.Context, a *app.App, from string, args []string) (any, error) {
				amt, err := parseAmount(args[1])
				if err != nil {
					return nil, err
				}
				return a.PrizePoolMsgServer().DistributePrize(ctx, &prizepooltypes.MsgDistributePrize{
					Caller:  from,
					Winner:  args[0],
					Amount:  amt,
					GameRef: args[2],
				})
			}),
		msgCmd(v, "emergency-withdraw", "Sweep the pool to the owner, owner only", cobra.NoArgs,
			func(ctx sdk.Context, a *app.App, from string, _ []string) (any, error) {
				return a.PrizePoolMsgServer().EmergencyWithdraw(ctx, &prizepooltypes.MsgEmergencyWithdraw{Authority: from})
			}),
		msgCmd(v, "emergency-withdraw-token [denom]", "Sweep any denom held by the pool to the owner, owner only", cobra.ExactArgs(1),
			func(ctx sdk.Context, a *app.App, from string, args []string) (any, error) {
				return a.PrizePoolMsgServer().EmergencyWithdrawToken(ctx, &prizepooltypes.MsgEmergencyWithdrawToken{Authority: from, Denom: args[0]})
			}),
	)
	return cmd
}
