package keeper

import (
	"context"

	math "cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"botarena/x/prizepool/types"
)

// InitGenesis constructs the pool. An invalid denom fails with
// ErrInvalidAssetReference before anything is written.
func (k Keeper) InitGenesis(ctx context.Context, genState types.GenesisState) error {
	if err := genState.Validate(); err != nil {
		return err
	}
	if err := k.Params.Set(ctx, genState.Params); err != nil {
		return err
	}
	if err := k.TotalDeposited.Set(ctx, orZero(genState.TotalDeposited)); err != nil {
		return err
	}
	if err := k.TotalDistributed.Set(ctx, orZero(genState.TotalDistributed)); err != nil {
		return err
	}
	if genState.TrustedCaller != "" {
		trusted, err := k.addressCodec.StringToBytes(genState.TrustedCaller)
		if err != nil {
			return err
		}
		if err := k.TrustedCaller.Set(ctx, trusted); err != nil {
			return err
		}
	}
	for _, w := range genState.Winnings {
		addr, err := k.addressCodec.StringToBytes(w.Address)
		if err != nil {
			return err
		}
		if err := k.Winnings.Set(ctx, addr, w.Amount); err != nil {
			return err
		}
	}
	return nil
}

func (k Keeper) ExportGenesis(ctx context.Context) (*types.GenesisState, error) {
	params, err := k.GetParams(ctx)
	if err != nil {
		return nil, err
	}
	deposited, err := k.GetTotalDeposited(ctx)
	if err != nil {
		return nil, err
	}
	distributed, err := k.GetTotalDistributed(ctx)
	if err != nil {
		return nil, err
	}
	trusted, err := k.GetTrustedCaller(ctx)
	if err != nil {
		return nil, err
	}

	winnings := []types.Winnings{}
	err = k.Winnings.Walk(ctx, nil, func(addr sdk.AccAddress, amount math.Int) (bool, error) {
		winnings = append(winnings, types.Winnings{Address: addr.String(), Amount: amount})
		return false, nil
	})
	if err != nil {
		return nil, err
	}

	return &types.GenesisState{
		Params:           params,
		TotalDeposited:   deposited,
		TotalDistributed: distributed,
		TrustedCaller:    addrString(trusted),
		Winnings:         winnings,
	}, nil
}

func orZero(v math.Int) math.Int {
	if v.IsNil() {
		return math.ZeroInt()
	}
	return v
}
