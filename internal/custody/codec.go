package custody

import (
	"encoding/json"
	"fmt"

	collcodec "cosmossdk.io/collections/codec"
	math "cosmossdk.io/math"
)

var (
	_ collcodec.ValueCodec[math.Int] = IntValue{}
	_ collcodec.ValueCodec[struct{}] = JSONValue[struct{}]{}
)

// IntValue stores a math.Int as its decimal string. Missing bytes decode to zero.
type IntValue struct{}

func (IntValue) Encode(value math.Int) ([]byte, error) { return []byte(value.String()), nil }
func (IntValue) Decode(bz []byte) (math.Int, error) {
	if len(bz) == 0 {
		return math.ZeroInt(), nil
	}
	v, ok := math.NewIntFromString(string(bz))
	if !ok {
		return math.Int{}, fmt.Errorf("invalid int: %q", string(bz))
	}
	return v, nil
}
func (c IntValue) EncodeJSON(value math.Int) ([]byte, error) { return c.Encode(value) }
func (c IntValue) DecodeJSON(bz []byte) (math.Int, error)    { return c.Decode(bz) }
func (IntValue) Stringify(value math.Int) string             { return value.String() }
func (IntValue) ValueType() string                           { return "custody/Int" }

// JSONValue stores plain Go structs as JSON, for types that have no protobuf definition.
type JSONValue[T any] struct {
	Name string
}

func (JSONValue[T]) Encode(value T) ([]byte, error) { return json.Marshal(value) }
func (JSONValue[T]) Decode(bz []byte) (T, error) {
	var v T
	return v, json.Unmarshal(bz, &v)
}
func (c JSONValue[T]) EncodeJSON(value T) ([]byte, error) { return c.Encode(value) }
func (c JSONValue[T]) DecodeJSON(bz []byte) (T, error)    { return c.Decode(bz) }
func (c JSONValue[T]) Stringify(value T) string {
	bz, err := json.Marshal(value)
	if err != nil {
		return fmt.Sprintf("%v", value)
	}
	return string(bz)
}
func (c JSONValue[T]) ValueType() string { return c.Name }
