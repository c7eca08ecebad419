// Package codec selects the payload encoding for persisted and published
// trade events. JSON is the default; the protobuf codec serves callers
// whose payload types are generated proto messages.
package codec

import (
	"encoding/json"
	"errors"

	"google.golang.org/protobuf/proto"
)

type Serializer interface {
	Encode(v any) ([]byte, error)
	Decode(data []byte, v any) error
}

// ---------- JSON ----------

type JSON struct{}

func (JSON) Encode(v any) ([]byte, error) {
	return json.Marshal(v)
}

func (JSON) Decode(data []byte, v any) error {
	return json.Unmarshal(data, v)
}

// ---------- Protobuf ----------

var ErrNotProto = errors.New("value does not implement proto.Message")

type Proto struct{}

func (Proto) Encode(v any) ([]byte, error) {
	msg, ok := v.(proto.Message)
	if !ok {
		return nil, ErrNotProto
	}
	return proto.Marshal(msg)
}

func (Proto) Decode(data []byte, v any) error {
	msg, ok := v.(proto.Message)
	if !ok {
		return ErrNotProto
	}
	return proto.Unmarshal(data, msg)
}
