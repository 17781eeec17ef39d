package keeper

import (
	"context"
	"errors"
	"strconv"

	"cosmossdk.io/collections"
	errorsmod "cosmossdk.io/errors"
	math "cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"botarena/x/arena/types"
)

// CreateGame opens an empty lobby on an active arena and returns its id.
// Missing and inactive arenas are reported alike.
func (k Keeper) CreateGame(ctx context.Context, caller sdk.AccAddress, arenaID uint64) (uint64, error) {
	var id uint64
	err := k.guard.Exclusive(ctx, "games", func(ctx context.Context) error {
		arena, err := k.Arenas.Get(ctx, arenaID)
		if err != nil {
			if errors.Is(err, collections.ErrNotFound) {
				return errorsmod.Wrapf(types.ErrArenaInactiveOrMissing, "arena %d", arenaID)
			}
			return err
		}
		if !arena.IsActive {
			return errorsmod.Wrapf(types.ErrArenaInactiveOrMissing, "arena %d", arenaID)
		}

		count, err := k.getCount(ctx, k.GameCount)
		if err != nil {
			return err
		}
		id = count + 1
		if err := k.Games.Set(ctx, id, types.NewGame(id, arenaID)); err != nil {
			return err
		}
		return k.GameCount.Set(ctx, id)
	})
	if err != nil {
		return 0, err
	}

	k.Logger(ctx).Info("game created", "game_id", id, "arena_id", arenaID, "creator", caller.String())
	return id, nil
}

// JoinGame seats caller in a lobby and pulls the arena's entry fee into escrow.
// It returns the participant count after the join.
func (k Keeper) JoinGame(ctx context.Context, caller sdk.AccAddress, gameID uint64) (int, error) {
	if caller.Empty() {
		return 0, errorsmod.Wrap(types.ErrInvalidAddress, "empty player address")
	}

	var count int
	err := k.guard.Exclusive(ctx, gameLock(gameID), func(ctx context.Context) error {
		game, err := k.GetGame(ctx, gameID)
		if err != nil {
			return err
		}
		player := caller.String()
		if game.HasParticipant(player) {
			return errorsmod.Wrapf(types.ErrAlreadyJoined, "%s in game %d", player, gameID)
		}
		if game.IsFull() {
			return errorsmod.Wrapf(types.ErrGameFull, "game %d", gameID)
		}
		arena, err := k.GetArena(ctx, game.ArenaID)
		if err != nil {
			return err
		}

		game.Participants = append(game.Participants, player)
		game.PrizePool = game.PrizePool.Add(arena.EntryFee)
		if err := k.Games.Set(ctx, gameID, game); err != nil {
			return err
		}

		fee, err := k.coins(ctx, arena.EntryFee)
		if err != nil {
			return err
		}
		if err := k.bankKeeper.SendCoinsFromAccountToModule(ctx, caller, types.ModuleName, fee); err != nil {
			return errorsmod.Wrap(err, "failed to collect entry fee")
		}

		count = len(game.Participants)
		sdkCtx := sdk.UnwrapSDKContext(ctx)
		sdkCtx.EventManager().EmitEvent(
			sdk.NewEvent(
				types.EventJoined,
				sdk.NewAttribute(types.AttrGameID, strconv.FormatUint(gameID, 10)),
				sdk.NewAttribute(types.AttrParticipant, player),
				sdk.NewAttribute(types.AttrParticipantCount, strconv.Itoa(count)),
			),
		)
		if game.IsFull() {
			sdkCtx.EventManager().EmitEvent(
				sdk.NewEvent(
					types.EventGameStarted,
					sdk.NewAttribute(types.AttrGameID, strconv.FormatUint(gameID, 10)),
					sdk.NewAttribute(types.AttrPrizePool, game.PrizePool.String()),
				),
			)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return count, nil
}

// CompleteGame records the winner of a full lobby and pays out. The winner's
// 90% is transferred immediately; the operator's remainder is accumulated.
func (k Keeper) CompleteGame(ctx context.Context, caller sdk.AccAddress, gameID uint64, winner sdk.AccAddress) (winnerShare, operatorShare math.Int, err error) {
	if !k.isOwner(caller) {
		return math.Int{}, math.Int{}, types.ErrNotOwner
	}

	err = k.guard.Exclusive(ctx, gameLock(gameID), func(ctx context.Context) error {
		game, err := k.GetGame(ctx, gameID)
		if err != nil {
			return err
		}
		if game.IsCompleted {
			return errorsmod.Wrapf(types.ErrGameAlreadyCompleted, "game %d won by %s", gameID, game.Winner)
		}
		if !game.IsFull() {
			return errorsmod.Wrapf(types.ErrGameNotFull, "game %d has %d/%d participants", gameID, len(game.Participants), types.MaxParticipants)
		}
		if winner.Empty() || !game.HasParticipant(winner.String()) {
			return errorsmod.Wrapf(types.ErrWinnerNotParticipant, "game %d", gameID)
		}

		winnerShare, operatorShare = types.SplitPool(game.PrizePool)

		game.Winner = winner.String()
		game.IsCompleted = true
		game.IsPaid = true
		if err := k.Games.Set(ctx, gameID, game); err != nil {
			return err
		}
		fees, err := k.getIntOrZero(ctx, k.AccumulatedFees)
		if err != nil {
			return err
		}
		if err := k.AccumulatedFees.Set(ctx, fees.Add(operatorShare)); err != nil {
			return err
		}

		if winnerShare.IsPositive() {
			prize, err := k.coins(ctx, winnerShare)
			if err != nil {
				return err
			}
			if err := k.bankKeeper.SendCoinsFromModuleToAccount(ctx, types.ModuleName, winner, prize); err != nil {
				return errorsmod.Wrap(err, "failed to pay winner")
			}
		}

		sdk.UnwrapSDKContext(ctx).EventManager().EmitEvent(
			sdk.NewEvent(
				types.EventGameCompleted,
				sdk.NewAttribute(types.AttrGameID, strconv.FormatUint(gameID, 10)),
				sdk.NewAttribute(types.AttrWinner, game.Winner),
				sdk.NewAttribute(types.AttrWinnerShare, winnerShare.String()),
				sdk.NewAttribute(types.AttrOperatorShare, operatorShare.String()),
			),
		)
		return nil
	})
	if err != nil {
		return math.Int{}, math.Int{}, err
	}

	k.Logger(ctx).Info("game completed",
		"game_id", gameID,
		"winner", winner.String(),
		"winner_share", winnerShare.String(),
		"operator_share", operatorShare.String(),
	)
	return winnerShare, operatorShare, nil
}

// GetGame returns ErrGameNotFound for unknown ids.
func (k Keeper) GetGame(ctx context.Context, gameID uint64) (types.Game, error) {
	game, err := k.Games.Get(ctx, gameID)
	if err != nil {
		if errors.Is(err, collections.ErrNotFound) {
			return types.Game{}, errorsmod.Wrapf(types.ErrGameNotFound, "game %d", gameID)
		}
		return types.Game{}, err
	}
	return game, nil
}

// GetParticipants returns a game's participants in join order.
func (k Keeper) GetParticipants(ctx context.Context, gameID uint64) ([]string, error) {
	game, err := k.GetGame(ctx, gameID)
	if err != nil {
		return nil, err
	}
	return game.Participants, nil
}

// ListGames returns all games ordered by id.
func (k Keeper) ListGames(ctx context.Context) ([]types.Game, error) {
	var games []types.Game
	err := k.Games.Walk(ctx, nil, func(_ uint64, g types.Game) (bool, error) {
		games = append(games, g)
		return false, nil
	})
	return games, err
}

func (k Keeper) GetGameCount(ctx context.Context) (uint64, error) {
	return k.getCount(ctx, k.GameCount)
}
