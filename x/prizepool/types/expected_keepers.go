package types

import "botarena/internal/custody"

// BankKeeper defines the expected bank keeper.
type BankKeeper = custody.BankKeeper
