package types

import math "cosmossdk.io/math"

// Messages carry bech32 addresses as signed by the external caller; the msg
// server decodes them before handing off to the keeper.

type MsgCreateArena struct {
	Authority string   `json:"authority"`
	EntryFee  math.Int `json:"entry_fee"`
}

type MsgCreateArenaResponse struct {
	ArenaID uint64 `json:"arena_id"`
}

type MsgToggleArena struct {
	Authority string `json:"authority"`
	ArenaID   uint64 `json:"arena_id"`
	Active    bool   `json:"active"`
}

type MsgToggleArenaResponse struct{}

type MsgCreateGame struct {
	Creator string `json:"creator"`
	ArenaID uint64 `json:"arena_id"`
}

type MsgCreateGameResponse struct {
	GameID uint64 `json:"game_id"`
}

type MsgJoinGame struct {
	Player string `json:"player"`
	GameID uint64 `json:"game_id"`
}

type MsgJoinGameResponse struct {
	ParticipantCount uint32 `json:"participant_count"`
}

type MsgCompleteGame struct {
	Authority string `json:"authority"`
	GameID    uint64 `json:"game_id"`
	Winner    string `json:"winner"`
}

type MsgCompleteGameResponse struct {
	WinnerShare   math.Int `json:"winner_share"`
	OperatorShare math.Int `json:"operator_share"`
}

type MsgWithdrawOperatorFees struct {
	Authority string `json:"authority"`
}

type MsgWithdrawOperatorFeesResponse struct {
	Amount math.Int `json:"amount"`
}
