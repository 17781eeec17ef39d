package keeper

import (
	"context"

	math "cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"botarena/x/arena/types"
)

// WithdrawOperatorFees sends the whole accumulated fee balance to the owner and
// zeroes the accumulator.
func (k Keeper) WithdrawOperatorFees(ctx context.Context, caller sdk.AccAddress) (math.Int, error) {
	if !k.isOwner(caller) {
		return math.Int{}, types.ErrNotOwner
	}

	var amount math.Int
	err := k.guard.Exclusive(ctx, feesLock, func(ctx context.Context) error {
		fees, err := k.getIntOrZero(ctx, k.AccumulatedFees)
		if err != nil {
			return err
		}
		if !fees.IsPositive() {
			return types.ErrNoFeesToWithdraw
		}
		if err := k.AccumulatedFees.Set(ctx, math.ZeroInt()); err != nil {
			return err
		}

		coins, err := k.coins(ctx, fees)
		if err != nil {
			return err
		}
		owner := sdk.AccAddress(k.authority)
		if err := k.bankKeeper.SendCoinsFromModuleToAccount(ctx, types.ModuleName, owner, coins); err != nil {
			return err
		}

		sdk.UnwrapSDKContext(ctx).EventManager().EmitEvent(
			sdk.NewEvent(
				types.EventFeesWithdrawn,
				sdk.NewAttribute(types.AttrRecipient, owner.String()),
				sdk.NewAttribute(types.AttrAmount, fees.String()),
			),
		)
		amount = fees
		return nil
	})
	if err != nil {
		return math.Int{}, err
	}

	k.Logger(ctx).Info("operator fees withdrawn", "amount", amount.String())
	return amount, nil
}

// GetAccumulatedFees returns operator fees not yet withdrawn.
func (k Keeper) GetAccumulatedFees(ctx context.Context) (math.Int, error) {
	return k.getIntOrZero(ctx, k.AccumulatedFees)
}
