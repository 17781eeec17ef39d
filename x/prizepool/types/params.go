package types

import (
	"strings"

	errorsmod "cosmossdk.io/errors"
	sdk "github.com/cosmos/cosmos-sdk/types"
)

// DefaultDenom matches the arena module so arena winners and pool winners are
// paid in the same asset.
const DefaultDenom = "uusdc"

// Params holds the prizepool module configuration.
type Params struct {
	// Denom is the primary asset the pool custodies and distributes.
	Denom string `json:"denom" yaml:"denom"`
}

func DefaultParams() Params {
	return Params{Denom: DefaultDenom}
}

func (p Params) Validate() error {
	if strings.TrimSpace(p.Denom) == "" {
		return errorsmod.Wrap(ErrInvalidAssetReference, "denom is empty")
	}
	if err := sdk.ValidateDenom(p.Denom); err != nil {
		return errorsmod.Wrap(ErrInvalidAssetReference, err.Error())
	}
	return nil
}
