package types

import (
	"slices"

	math "cosmossdk.io/math"
)

// Arena is a competition tier. Its entry fee never changes once created.
type Arena struct {
	ID       uint64   `json:"id"`
	EntryFee math.Int `json:"entry_fee"`
	IsActive bool     `json:"is_active"`
}

// Game is one escrow lobby bound to a single arena.
type Game struct {
	ID           uint64   `json:"id"`
	ArenaID      uint64   `json:"arena_id"`
	Participants []string `json:"participants"`
	PrizePool    math.Int `json:"prize_pool"`
	Winner       string   `json:"winner,omitempty"`
	IsCompleted  bool     `json:"is_completed"`
	IsPaid       bool     `json:"is_paid"`
}

// NewGame returns an empty lobby for arenaID.
func NewGame(id, arenaID uint64) Game {
	return Game{
		ID:           id,
		ArenaID:      arenaID,
		Participants: []string{},
		PrizePool:    math.ZeroInt(),
	}
}

func (g Game) HasParticipant(addr string) bool {
	return slices.Contains(g.Participants, addr)
}

func (g Game) IsFull() bool {
	return len(g.Participants) >= MaxParticipants
}

// SplitPool divides a completed game's pool. The operator share is derived by
// subtraction so the two shares always sum to pool.
func SplitPool(pool math.Int) (winnerShare, operatorShare math.Int) {
	winnerShare = pool.MulRaw(WinnerPercent).QuoRaw(100)
	return winnerShare, pool.Sub(winnerShare)
}
