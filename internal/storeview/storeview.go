// Package storeview reads ledger state straight from raw store keys, for
// callers that have no gRPC query service to talk to.
package storeview

import (
	"encoding/json"
	"errors"

	"cosmossdk.io/collections"
	math "cosmossdk.io/math"

	"botarena/internal/custody"
)

// ErrNotFound is returned when a key holds no value.
var ErrNotFound = errors.New("not found")

// Reader is a read-only view of one module store. A corestore.KVStore
// satisfies it.
type Reader interface {
	Get(key []byte) ([]byte, error)
}

func get(r Reader, key []byte) ([]byte, error) {
	bz, err := r.Get(key)
	if err != nil {
		return nil, err
	}
	if len(bz) == 0 {
		return nil, ErrNotFound
	}
	return bz, nil
}

// JSON decodes the JSON value at key into a T.
func JSON[T any](r Reader, key []byte) (T, error) {
	var v T
	bz, err := get(r, key)
	if err != nil {
		return v, err
	}
	err = json.Unmarshal(bz, &v)
	return v, err
}

// Uint64 decodes a collections.Uint64Value. Missing keys read as zero.
func Uint64(r Reader, key []byte) (uint64, error) {
	bz, err := get(r, key)
	if errors.Is(err, ErrNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return collections.Uint64Value.Decode(bz)
}

// Int decodes a custody.IntValue. Missing keys read as zero.
func Int(r Reader, key []byte) (math.Int, error) {
	bz, err := get(r, key)
	if errors.Is(err, ErrNotFound) {
		return math.ZeroInt(), nil
	}
	if err != nil {
		return math.Int{}, err
	}
	return custody.IntValue{}.Decode(bz)
}

// Sequence reads the records 1..count, skipping ids that hold no value.
func Sequence[T any](r Reader, count uint64, key func(uint64) []byte) ([]T, error) {
	out := make([]T, 0, count)
	for id := uint64(1); id <= count; id++ {
		v, err := JSON[T](r, key(id))
		if errors.Is(err, ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}
