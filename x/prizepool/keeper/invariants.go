package keeper

import (
	"fmt"

	math "cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"botarena/x/prizepool/types"
)

func RegisterInvariants(ir sdk.InvariantRegistry, k Keeper) {
	ir.RegisterRoute(types.ModuleName, "winnings-ledger", WinningsLedgerInvariant(k))
}

// WinningsLedgerInvariant checks per-winner payouts add up to TotalDistributed.
func WinningsLedgerInvariant(k Keeper) sdk.Invariant {
	return func(ctx sdk.Context) (string, bool) {
		sum := math.ZeroInt()
		err := k.Winnings.Walk(ctx, nil, func(_ sdk.AccAddress, amount math.Int) (bool, error) {
			sum = sum.Add(amount)
			return false, nil
		})
		if err != nil {
			return sdk.FormatInvariant(types.ModuleName, "winnings-ledger", err.Error()), true
		}
		distributed, err := k.GetTotalDistributed(ctx)
		if err != nil {
			return sdk.FormatInvariant(types.ModuleName, "winnings-ledger", err.Error()), true
		}
		return sdk.FormatInvariant(types.ModuleName, "winnings-ledger",
			fmt.Sprintf("\tsum of winnings: %s\n\ttotal distributed: %s\n", sum, distributed)), !sum.Equal(distributed)
	}
}
