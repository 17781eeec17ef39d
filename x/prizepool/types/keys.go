package types

import (
	"cosmossdk.io/collections"
	sdk "github.com/cosmos/cosmos-sdk/types"
)

const (
	// ModuleName defines the module name
	ModuleName = "prizepool"

	// StoreKey defines the primary module store key
	StoreKey = ModuleName

	// RouterKey is the message route for the module
	RouterKey = ModuleName
)

var (
	ParamsKey           = collections.NewPrefix("p_prizepool")
	TotalDepositedKey   = collections.NewPrefix("td_prizepool")
	TotalDistributedKey = collections.NewPrefix("tx_prizepool")
	TrustedCallerKey    = collections.NewPrefix("tc_prizepool")
	WinningsKeyPrefix   = collections.NewPrefix("w_prizepool")
	LockKeyPrefix       = collections.NewPrefix("l_prizepool")
)

// WinningsStoreKey is the raw store key of addr's cumulative winnings.
func WinningsStoreKey(addr sdk.AccAddress) ([]byte, error) {
	return collections.EncodeKeyWithPrefix(WinningsKeyPrefix.Bytes(), sdk.AccAddressKey, addr)
}
