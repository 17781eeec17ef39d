package types

const (
	EventJoined        = "arena.joined"
	EventGameStarted   = "arena.game_started"
	EventGameCompleted = "arena.game_completed"
	EventFeesWithdrawn = "arena.fees_withdrawn"
)

const (
	AttrGameID           = "game_id"
	AttrParticipant      = "participant"
	AttrParticipantCount = "participant_count"
	AttrPrizePool        = "prize_pool"
	AttrWinner           = "winner"
	AttrWinnerShare      = "winner_share"
	AttrOperatorShare    = "operator_share"
	AttrRecipient        = "recipient"
	AttrAmount           = "amount"
)
