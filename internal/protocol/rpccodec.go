package protocol

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// CodecName is the Connect codec name, selected by the
// application/json content type.
const CodecName = "json"

// JSONCodec is a connect.Codec for the plain structs of this package.
// It stands in for Connect's protobuf JSON codec, which only accepts
// generated messages.
type JSONCodec struct{}

// Name implements connect.Codec.
func (JSONCodec) Name() string { return CodecName }

// Marshal implements connect.Codec.
func (JSONCodec) Marshal(msg any) ([]byte, error) {
	return json.Marshal(msg)
}

// Unmarshal implements connect.Codec. Unknown fields are rejected.
func (JSONCodec) Unmarshal(data []byte, msg any) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(msg); err != nil {
		return fmt.Errorf("unmarshal %T: %w", msg, err)
	}
	return nil
}
