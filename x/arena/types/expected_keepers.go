package types

import "botarena/internal/custody"

// BankKeeper defines the expected interface for the Bank module.
type BankKeeper = custody.BankKeeper
