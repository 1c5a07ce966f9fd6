package types

import (
	"encoding/json"
	"fmt"

	collcodec "cosmossdk.io/collections/codec"
)

var (
	// ConfigValue stores Config records in their account layout.
	ConfigValue collcodec.ValueCodec[Config] = accountValueCodec[Config]{
		name:      "chests/Config",
		marshal:   Config.MarshalAccount,
		unmarshal: UnmarshalConfig,
	}

	// MintRecordValue stores MintRecord records in their account layout.
	MintRecordValue collcodec.ValueCodec[MintRecord] = accountValueCodec[MintRecord]{
		name:      "chests/MintRecord",
		marshal:   MintRecord.MarshalAccount,
		unmarshal: UnmarshalMintRecord,
	}
)

// accountValueCodec persists values with the same discriminator-prefixed
// layout the records have on the ledger.
type accountValueCodec[T any] struct {
	name      string
	marshal   func(T) ([]byte, error)
	unmarshal func([]byte) (T, error)
}

func (c accountValueCodec[T]) Encode(value T) ([]byte, error) {
	return c.marshal(value)
}

func (c accountValueCodec[T]) Decode(b []byte) (T, error) {
	return c.unmarshal(b)
}

func (c accountValueCodec[T]) EncodeJSON(value T) ([]byte, error) {
	return json.Marshal(value)
}

func (c accountValueCodec[T]) DecodeJSON(b []byte) (T, error) {
	var value T
	err := json.Unmarshal(b, &value)
	return value, err
}

func (c accountValueCodec[T]) Stringify(value T) string {
	return fmt.Sprintf("%+v", value)
}

func (c accountValueCodec[T]) ValueType() string {
	return c.name
}
