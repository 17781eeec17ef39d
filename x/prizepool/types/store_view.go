package types

import (
	"errors"

	math "cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"botarena/internal/storeview"
)

// StoreView reads prizepool state from raw store keys for the CLI and REST
// queries. Custody balances live in x/bank and are not visible here.
type StoreView struct {
	r storeview.Reader
}

func NewStoreView(r storeview.Reader) StoreView { return StoreView{r: r} }

func (v StoreView) Params() (Params, error) {
	p, err := storeview.JSON[Params](v.r, ParamsKey.Bytes())
	if errors.Is(err, storeview.ErrNotFound) {
		return DefaultParams(), nil
	}
	return p, err
}

func (v StoreView) TotalDeposited() (math.Int, error) {
	return storeview.Int(v.r, TotalDepositedKey.Bytes())
}

func (v StoreView) TotalDistributed() (math.Int, error) {
	return storeview.Int(v.r, TotalDistributedKey.Bytes())
}

// TrustedCaller returns nil when no trusted caller is set.
func (v StoreView) TrustedCaller() (sdk.AccAddress, error) {
	bz, err := v.r.Get(TrustedCallerKey.Bytes())
	if err != nil || len(bz) == 0 {
		return nil, err
	}
	return sdk.AccAddress(bz), nil
}

// Winnings reads as zero for addresses never paid.
func (v StoreView) Winnings(addr sdk.AccAddress) (math.Int, error) {
	key, err := WinningsStoreKey(addr)
	if err != nil {
		return math.Int{}, err
	}
	return storeview.Int(v.r, key)
}
