package types

const (
	EventDeposited            = "prizepool.deposited"
	EventTrustedCallerUpdated = "prizepool.trusted_caller_updated"
	EventDistributed          = "prizepool.distributed"
	EventWithdrawn            = "prizepool.withdrawn"
)

const (
	AttrDepositor = "depositor"
	AttrAmount    = "amount"
	AttrOld       = "old"
	AttrNew       = "new"
	AttrWinner    = "winner"
	AttrGameRef   = "game_ref"
	AttrRecipient = "recipient"
)
