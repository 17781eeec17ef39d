package types

import (
	"strings"

	errorsmod "cosmossdk.io/errors"
	sdk "github.com/cosmos/cosmos-sdk/types"
)

// DefaultDenom is the micro-unit stablecoin denom entry fees are paid in.
const DefaultDenom = "uusdc"

// Params holds the arena module configuration.
type Params struct {
	// Denom is the fungible asset the ledger custodies.
	Denom string `json:"denom" yaml:"denom"`
}

func DefaultParams() Params {
	return Params{Denom: DefaultDenom}
}

// Validate rejects a missing or malformed asset reference.
func (p Params) Validate() error {
	if strings.TrimSpace(p.Denom) == "" {
		return errorsmod.Wrap(ErrInvalidAssetReference, "denom is empty")
	}
	if err := sdk.ValidateDenom(p.Denom); err != nil {
		return errorsmod.Wrap(ErrInvalidAssetReference, err.Error())
	}
	return nil
}
