package custody

import (
	"bytes"

	sdk "github.com/cosmos/cosmos-sdk/types"
)

// Role is a privilege a caller must hold for an operation.
type Role int

const (
	// RoleOwner is held only by the component owner.
	RoleOwner Role = iota + 1
	// RoleDistributor is held by the owner and by the trusted caller, if one is set.
	RoleDistributor
)

// Authorized reports whether caller holds role. An empty caller never does.
func Authorized(caller sdk.AccAddress, role Role, owner, trusted sdk.AccAddress) bool {
	if caller.Empty() {
		return false
	}
	switch role {
	case RoleOwner:
		return bytes.Equal(caller, owner)
	case RoleDistributor:
		if bytes.Equal(caller, owner) {
			return true
		}
		return !trusted.Empty() && bytes.Equal(caller, trusted)
	default:
		return false
	}
}
