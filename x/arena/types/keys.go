package types

import (
	"cosmossdk.io/collections"
	sdk "github.com/cosmos/cosmos-sdk/types"
)

const (
	// ModuleName defines the module name
	ModuleName = "arena"

	// StoreKey defines the primary module store key
	StoreKey = ModuleName

	// RouterKey is the message route for the module
	RouterKey = ModuleName

	// MemStoreKey defines the in-memory store key
	MemStoreKey = "mem_arena"
)

const (
	// MaxParticipants is the lobby capacity; a game starts and can be completed only when full.
	MaxParticipants = 10
	// WinnerPercent of a completed game's pool is paid to the winner.
	WinnerPercent = 90
	// OperatorPercent of a completed game's pool is retained as operator fees.
	OperatorPercent = 100 - WinnerPercent
)

var (
	ParamsKey          = collections.NewPrefix("p_arena")
	ArenaCountKey      = collections.NewPrefix("ac_arena")
	GameCountKey       = collections.NewPrefix("gc_arena")
	AccumulatedFeesKey = collections.NewPrefix("f_arena")
	ArenaKeyPrefix     = collections.NewPrefix("a_arena")
	GameKeyPrefix      = collections.NewPrefix("g_arena")
	LockKeyPrefix      = collections.NewPrefix("l_arena")
)

// ArenaStoreKey is the raw store key of arena id.
func ArenaStoreKey(id uint64) []byte { return uint64Key(ArenaKeyPrefix, id) }

// GameStoreKey is the raw store key of game id.
func GameStoreKey(id uint64) []byte { return uint64Key(GameKeyPrefix, id) }

func uint64Key(prefix collections.Prefix, id uint64) []byte {
	p := prefix.Bytes()
	key := make([]byte, 0, len(p)+8)
	key = append(key, p...)
	return append(key, sdk.Uint64ToBigEndian(id)...)
}
