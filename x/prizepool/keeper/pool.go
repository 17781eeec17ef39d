package keeper

import (
	"context"
	"strings"

	errorsmod "cosmossdk.io/errors"
	math "cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"botarena/internal/custody"
	"botarena/x/prizepool/types"
)

// Deposit pulls amount of the primary denom from depositor into the pool.
// Anyone may top up the pool.
func (k Keeper) Deposit(ctx context.Context, depositor sdk.AccAddress, amount math.Int) error {
	if depositor.Empty() {
		return errorsmod.Wrap(types.ErrInvalidAddress, "empty depositor address")
	}
	if amount.IsNil() || !amount.IsPositive() {
		return types.ErrInvalidAmount
	}

	err := k.guard.Exclusive(ctx, poolLock, func(ctx context.Context) error {
		total, err := k.getIntOrZero(ctx, k.TotalDeposited)
		if err != nil {
			return err
		}
		if err := k.TotalDeposited.Set(ctx, total.Add(amount)); err != nil {
			return err
		}

		coins, err := k.coins(ctx, amount)
		if err != nil {
			return err
		}
		if err := k.bankKeeper.SendCoinsFromAccountToModule(ctx, depositor, types.ModuleName, coins); err != nil {
			return errorsmod.Wrap(err, "failed to collect deposit")
		}

		sdk.UnwrapSDKContext(ctx).EventManager().EmitEvent(
			sdk.NewEvent(
				types.EventDeposited,
				sdk.NewAttribute(types.AttrDepositor, depositor.String()),
				sdk.NewAttribute(types.AttrAmount, amount.String()),
			),
		)
		return nil
	})
	if err != nil {
		return err
	}

	k.Logger(ctx).Info("deposit", "depositor", depositor.String(), "amount", amount.String())
	return nil
}

// SetTrustedCaller replaces the single address allowed to distribute besides the owner.
func (k Keeper) SetTrustedCaller(ctx context.Context, caller, trusted sdk.AccAddress) error {
	if !k.isOwner(caller) {
		return types.ErrNotOwner
	}
	if trusted.Empty() {
		return errorsmod.Wrap(types.ErrInvalidTrustedCaller, "zero address")
	}

	old, err := k.GetTrustedCaller(ctx)
	if err != nil {
		return err
	}
	if err := k.TrustedCaller.Set(ctx, trusted); err != nil {
		return err
	}

	sdk.UnwrapSDKContext(ctx).EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTrustedCallerUpdated,
			sdk.NewAttribute(types.AttrOld, addrString(old)),
			sdk.NewAttribute(types.AttrNew, trusted.String()),
		),
	)
	k.Logger(ctx).Info("trusted caller updated", "old", addrString(old), "new", trusted.String())
	return nil
}

// DistributePrize pays amount to winner out of the custodied balance. The
// owner and the trusted caller may distribute. gameRef is only carried into the
// emitted event; distributing twice under one gameRef pays twice.
func (k Keeper) DistributePrize(ctx context.Context, caller, winner sdk.AccAddress, amount math.Int, gameRef string) error {
	trusted, err := k.GetTrustedCaller(ctx)
	if err != nil {
		return err
	}
	if !custody.Authorized(caller, custody.RoleDistributor, k.authority, trusted) {
		return types.ErrNotAuthorized
	}
	if winner.Empty() {
		return types.ErrInvalidWinner
	}
	if amount.IsNil() || !amount.IsPositive() {
		return types.ErrInvalidAmount
	}

	err = k.guard.Exclusive(ctx, poolLock, func(ctx context.Context) error {
		balance, err := k.PoolBalance(ctx)
		if err != nil {
			return err
		}
		if amount.GT(balance) {
			return errorsmod.Wrapf(types.ErrInsufficientPoolBalance, "requested %s, pool holds %s", amount, balance)
		}

		distributed, err := k.getIntOrZero(ctx, k.TotalDistributed)
		if err != nil {
			return err
		}
		if err := k.TotalDistributed.Set(ctx, distributed.Add(amount)); err != nil {
			return err
		}
		won, err := k.GetWinnings(ctx, winner)
		if err != nil {
			return err
		}
		if err := k.Winnings.Set(ctx, winner, won.Add(amount)); err != nil {
			return err
		}

		coins, err := k.coins(ctx, amount)
		if err != nil {
			return err
		}
		if err := k.bankKeeper.SendCoinsFromModuleToAccount(ctx, types.ModuleName, winner, coins); err != nil {
			return errorsmod.Wrap(err, "failed to pay winner")
		}

		sdk.UnwrapSDKContext(ctx).EventManager().EmitEvent(
			sdk.NewEvent(
				types.EventDistributed,
				sdk.NewAttribute(types.AttrWinner, winner.String()),
				sdk.NewAttribute(types.AttrAmount, amount.String()),
				sdk.NewAttribute(types.AttrGameRef, gameRef),
			),
		)
		return nil
	})
	if err != nil {
		return err
	}

	k.Logger(ctx).Info("prize distributed", "winner", winner.String(), "amount", amount.String(), "game_ref", gameRef)
	return nil
}

// EmergencyWithdraw sweeps the whole custodied primary balance to the owner,
// whatever the counters say. The counters are left as they are.
func (k Keeper) EmergencyWithdraw(ctx context.Context, caller sdk.AccAddress) (math.Int, error) {
	if !k.isOwner(caller) {
		return math.Int{}, types.ErrNotOwner
	}

	var swept math.Int
	err := k.guard.Exclusive(ctx, poolLock, func(ctx context.Context) error {
		balance, err := k.PoolBalance(ctx)
		if err != nil {
			return err
		}
		if !balance.IsPositive() {
			return types.ErrNoFundsToWithdraw
		}
		coins, err := k.coins(ctx, balance)
		if err != nil {
			return err
		}
		owner := sdk.AccAddress(k.authority)
		if err := k.bankKeeper.SendCoinsFromModuleToAccount(ctx, types.ModuleName, owner, coins); err != nil {
			return err
		}

		sdk.UnwrapSDKContext(ctx).EventManager().EmitEvent(
			sdk.NewEvent(
				types.EventWithdrawn,
				sdk.NewAttribute(types.AttrRecipient, owner.String()),
				sdk.NewAttribute(types.AttrAmount, balance.String()),
			),
		)
		swept = balance
		return nil
	})
	if err != nil {
		return math.Int{}, err
	}

	k.Logger(ctx).Info("emergency withdraw", "amount", swept.String())
	return swept, nil
}

// EmergencyWithdrawToken recovers any denom other than the primary one that
// ended up in the pool account.
func (k Keeper) EmergencyWithdrawToken(ctx context.Context, caller sdk.AccAddress, denom string) (math.Int, error) {
	if !k.isOwner(caller) {
		return math.Int{}, types.ErrNotOwner
	}
	if strings.TrimSpace(denom) == "" {
		return math.Int{}, errorsmod.Wrap(types.ErrInvalidTokenAddress, "empty denom")
	}
	if err := sdk.ValidateDenom(denom); err != nil {
		return math.Int{}, errorsmod.Wrap(types.ErrInvalidTokenAddress, err.Error())
	}
	params, err := k.GetParams(ctx)
	if err != nil {
		return math.Int{}, err
	}
	if denom == params.Denom {
		return math.Int{}, errorsmod.Wrapf(types.ErrInvalidTokenAddress, "%s is the pool denom", denom)
	}

	var swept math.Int
	err = k.guard.Exclusive(ctx, poolLock, func(ctx context.Context) error {
		balance := k.bankKeeper.GetBalance(ctx, k.ModuleAddress(), denom)
		if !balance.Amount.IsPositive() {
			return errorsmod.Wrapf(types.ErrNoTokenBalance, "%s", denom)
		}
		if err := k.bankKeeper.SendCoinsFromModuleToAccount(ctx, types.ModuleName, sdk.AccAddress(k.authority), sdk.NewCoins(balance)); err != nil {
			return err
		}
		swept = balance.Amount
		return nil
	})
	if err != nil {
		return math.Int{}, err
	}

	k.Logger(ctx).Info("token recovered", "denom", denom, "amount", swept.String())
	return swept, nil
}

func (k Keeper) coins(ctx context.Context, amount math.Int) (sdk.Coins, error) {
	p, err := k.GetParams(ctx)
	if err != nil {
		return nil, err
	}
	return sdk.NewCoins(sdk.NewCoin(p.Denom, amount)), nil
}

func addrString(addr sdk.AccAddress) string {
	if addr.Empty() {
		return ""
	}
	return addr.String()
}
