package cmd

import (
	"encoding/json"
	"fmt"

	math "cosmossdk.io/math"
	dbm "github.com/cosmos/cosmos-db"
	"github.com/cosmos/cosmos-sdk/client/flags"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/gorilla/mux"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"botarena/app"
	arenatypes "botarena/x/arena/types"
	prizepooltypes "botarena/x/prizepool/types"
)

const (
	flagArena  = "arena-id"
	flagWinner = "winner"
	flagBonus  = "bonus"
	flagServe  = "serve"
)

var defaultOwner = sdk.AccAddress([]byte("arena_operator______"))

// SimulateOptions selects the lobby and prize round a simulation plays.
type SimulateOptions struct {
	ArenaID uint64
	// Winner is the join index of the winning player.
	Winner int
	// Bonus is deposited into the prize pool and paid to the winner. Zero skips the round.
	Bonus math.Int
}

// SimulationResult summarizes the balances after a simulated round.
type SimulationResult struct {
	ArenaID       uint64   `json:"arena_id"`
	EntryFee      math.Int `json:"entry_fee"`
	GameID        uint64   `json:"game_id"`
	Players       []string `json:"players"`
	Winner        string   `json:"winner"`
	WinnerShare   math.Int `json:"winner_share"`
	OperatorShare math.Int `json:"operator_share"`
	PrizeBonus    math.Int `json:"prize_bonus"`
	WinnerBalance math.Int `json:"winner_balance"`
	OwnerBalance  math.Int `json:"owner_balance"`
	ArenaEscrow   math.Int `json:"arena_escrow"`
	PoolBalance   math.Int `json:"pool_balance"`
}

func simulateCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Deploy both ledgers in memory, play one full lobby and a prize round",
		Long: `Deploy both ledgers on an in-memory store, link the prize pool to the arena
ledger, fill one lobby with ten funded players, settle it and pay a prize pool
bonus to the winner. The resulting balances are printed as JSON.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadAppConfig(v)
			if err != nil {
				return err
			}
			owner, err := cfg.ownerAddress()
			if err != nil {
				return err
			}
			logger, err := newLogger(cmd.ErrOrStderr(), v.GetString(flags.FlagLogLevel))
			if err != nil {
				return err
			}

			bonus, ok := math.NewIntFromString(v.GetString(flagBonus))
			if !ok || bonus.IsNegative() {
				return fmt.Errorf("invalid %s %q", flagBonus, v.GetString(flagBonus))
			}
			opts := SimulateOptions{
				ArenaID: v.GetUint64(flagArena),
				Winner:  v.GetInt(flagWinner),
				Bonus:   bonus,
			}

			a, err := app.New(logger, dbm.NewMemDB(), owner)
			if err != nil {
				return err
			}
			res, err := Simulate(a, owner, opts)
			if err != nil {
				return err
			}

			bz, err := json.MarshalIndent(res, "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(bz))

			if !v.GetBool(flagServe) {
				return nil
			}
			rtr := mux.NewRouter()
			a.RegisterAPIRoutes(rtr)
			return serve(cmd.Context(), logger, cfg, rtr)
		},
	}

	cmd.Flags().Uint64(flagArena, 1, "arena tier the lobby is created in")
	cmd.Flags().Int(flagWinner, 0, "join index of the winning player")
	cmd.Flags().String(flagBonus, "1000000", "prize pool bonus paid to the winner, 0 to skip")
	cmd.Flags().Bool(flagServe, false, "serve the resulting state over HTTP after the run")
	cmd.Flags().String(flagAPIAddress, "tcp://localhost:1317", "the API server address used with --serve")
	cmd.Flags().String(flagOwner, "", "bech32 address that owns both ledgers")
	return cmd
}

// Simulate runs one lobby and prize round against a freshly built app. Every
// step is a message delivered and committed on its own, signed by bech32
// address like an external caller would.
func Simulate(a *app.App, owner sdk.AccAddress, opts SimulateOptions) (SimulationResult, error) {
	res := SimulationResult{ArenaID: opts.ArenaID, PrizeBonus: opts.Bonus}
	if opts.Winner < 0 || opts.Winner >= arenatypes.MaxParticipants {
		return res, fmt.Errorf("winner index %d out of range [0, %d)", opts.Winner, arenatypes.MaxParticipants)
	}

	if err := a.InitGenesis(a.DefaultGenesis()); err != nil {
		return res, fmt.Errorf("failed to init genesis: %w", err)
	}
	if err := linkLedgers(a, owner); err != nil {
		return res, err
	}
	logger := a.Logger().With("module", "simulate")
	arenaMsgs, poolMsgs := a.ArenaMsgServer(), a.PrizePoolMsgServer()
	authority := owner.String()

	arena, err := a.ArenaKeeper.GetArena(a.Context(), opts.ArenaID)
	if err != nil {
		return res, err
	}
	res.EntryFee = arena.EntryFee
	denom := arenatypes.DefaultDenom

	players := make([]string, arenatypes.MaxParticipants)
	for i := range players {
		addr := sdk.AccAddress([]byte(fmt.Sprintf("bot_%016d", i)))
		if err := a.Fund(addr, sdk.NewCoins(sdk.NewCoin(denom, arena.EntryFee))); err != nil {
			return res, fmt.Errorf("failed to fund player %d: %w", i, err)
		}
		players[i] = addr.String()
	}
	res.Players = players

	_, err = a.Deliver(func(ctx sdk.Context) error {
		created, err := arenaMsgs.CreateGame(ctx, &arenatypes.MsgCreateGame{Creator: players[0], ArenaID: opts.ArenaID})
		if err != nil {
			return err
		}
		res.GameID = created.GameID
		return nil
	})
	if err != nil {
		return res, err
	}
	for i, p := range players {
		_, err := a.Deliver(func(ctx sdk.Context) error {
			joined, err := arenaMsgs.JoinGame(ctx, &arenatypes.MsgJoinGame{Player: p, GameID: res.GameID})
			if err != nil {
				return err
			}
			logger.Debug("player joined", "game_id", res.GameID, "participants", joined.ParticipantCount)
			return nil
		})
		if err != nil {
			return res, fmt.Errorf("player %d failed to join: %w", i, err)
		}
	}

	res.Winner = players[opts.Winner]
	_, err = a.Deliver(func(ctx sdk.Context) error {
		done, err := arenaMsgs.CompleteGame(ctx, &arenatypes.MsgCompleteGame{Authority: authority, GameID: res.GameID, Winner: res.Winner})
		if err != nil {
			return err
		}
		res.WinnerShare, res.OperatorShare = done.WinnerShare, done.OperatorShare
		return nil
	})
	if err != nil {
		return res, err
	}

	if opts.Bonus.IsPositive() {
		if err := a.Fund(owner, sdk.NewCoins(sdk.NewCoin(denom, opts.Bonus))); err != nil {
			return res, err
		}
		gameRef := fmt.Sprintf("%s-%d", arenatypes.ModuleName, res.GameID)
		_, err := a.Deliver(func(ctx sdk.Context) error {
			if _, err := poolMsgs.Deposit(ctx, &prizepooltypes.MsgDeposit{Depositor: authority, Amount: opts.Bonus}); err != nil {
				return err
			}
			_, err := poolMsgs.DistributePrize(ctx, &prizepooltypes.MsgDistributePrize{
				Caller:  authority,
				Winner:  res.Winner,
				Amount:  opts.Bonus,
				GameRef: gameRef,
			})
			return err
		})
		if err != nil {
			return res, err
		}
	}

	_, err = a.Deliver(func(ctx sdk.Context) error {
		_, err := arenaMsgs.WithdrawOperatorFees(ctx, &arenatypes.MsgWithdrawOperatorFees{Authority: authority})
		return err
	})
	if err != nil {
		return res, err
	}
	if err := a.CheckInvariants(); err != nil {
		return res, err
	}
	logger.Info("simulation committed", "version", a.LastCommitID().Version)

	winner := sdk.MustAccAddressFromBech32(res.Winner)
	res.WinnerBalance = a.Balance(winner, denom)
	res.OwnerBalance = a.Balance(owner, denom)
	res.ArenaEscrow = a.Balance(a.ModuleAddress(arenatypes.ModuleName), denom)
	res.PoolBalance = a.Balance(a.ModuleAddress(prizepooltypes.ModuleName), denom)
	return res, nil
}
