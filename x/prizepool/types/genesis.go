package types

import (
	errorsmod "cosmossdk.io/errors"
	math "cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
)

// Winnings is one recipient's cumulative payout.
type Winnings struct {
	Address string   `json:"address"`
	Amount  math.Int `json:"amount"`
}

// GenesisState is the prizepool module's genesis state.
type GenesisState struct {
	Params           Params     `json:"params"`
	TotalDeposited   math.Int   `json:"total_deposited"`
	TotalDistributed math.Int   `json:"total_distributed"`
	TrustedCaller    string     `json:"trusted_caller,omitempty"`
	Winnings         []Winnings `json:"winnings"`
}

func DefaultGenesis() *GenesisState {
	return &GenesisState{
		Params:           DefaultParams(),
		TotalDeposited:   math.ZeroInt(),
		TotalDistributed: math.ZeroInt(),
		Winnings:         []Winnings{},
	}
}

// Validate checks counters are non-negative and that the winnings ledger adds
// up to the distributed total. Distributions are backed by custody rather than
// by deposits, so TotalDistributed may exceed TotalDeposited.
func (gs GenesisState) Validate() error {
	if err := gs.Params.Validate(); err != nil {
		return err
	}
	deposited, distributed := orZero(gs.TotalDeposited), orZero(gs.TotalDistributed)
	if deposited.IsNegative() || distributed.IsNegative() {
		return errorsmod.Wrap(ErrInvalidGenesis, "totals cannot be negative")
	}
	if gs.TrustedCaller != "" {
		if _, err := sdk.AccAddressFromBech32(gs.TrustedCaller); err != nil {
			return errorsmod.Wrapf(ErrInvalidTrustedCaller, "%s: %s", gs.TrustedCaller, err)
		}
	}

	sum := math.ZeroInt()
	seen := make(map[string]struct{}, len(gs.Winnings))
	for _, w := range gs.Winnings {
		if _, err := sdk.AccAddressFromBech32(w.Address); err != nil {
			return errorsmod.Wrapf(ErrInvalidGenesis, "winnings address %q: %s", w.Address, err)
		}
		if _, dup := seen[w.Address]; dup {
			return errorsmod.Wrapf(ErrInvalidGenesis, "duplicate winnings for %s", w.Address)
		}
		seen[w.Address] = struct{}{}
		if w.Amount.IsNil() || !w.Amount.IsPositive() {
			return errorsmod.Wrapf(ErrInvalidGenesis, "winnings for %s must be positive", w.Address)
		}
		sum = sum.Add(w.Amount)
	}
	if !sum.Equal(distributed) {
		return errorsmod.Wrapf(ErrInvalidGenesis, "winnings sum %s does not match total distributed %s", sum, distributed)
	}
	return nil
}

func orZero(v math.Int) math.Int {
	if v.IsNil() {
		return math.ZeroInt()
	}
	return v
}
