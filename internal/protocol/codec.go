package protocol

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
)

var errTrailingData = errors.New("trailing data after message")

// message is the tagged-union frame shared by requests and replies.
type message struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

func encodeMessage(tag string, payload any) (string, error) {
	msg := message{Type: tag}
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return "", err
		}
		msg.Payload = raw
	}

	out, err := json.Marshal(msg)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

func decodeMessage(target, s string) (message, error) {
	var msg message
	if err := strictUnmarshal([]byte(s), &msg); err != nil {
		return message{}, decodeErr(target, "invalid json", err)
	}
	if msg.Type == "" {
		return message{}, decodeErr(target, "missing type", nil)
	}
	return msg, nil
}

func decodePayload(target string, msg message, v any) error {
	if len(msg.Payload) == 0 || bytes.Equal(msg.Payload, []byte("null")) {
		return decodeErr(target, "missing payload for "+msg.Type, nil)
	}
	if err := strictUnmarshal(msg.Payload, v); err != nil {
		return decodeErr(target, "invalid "+msg.Type+" payload", err)
	}
	return nil
}

// strictUnmarshal rejects unknown fields and trailing data.
func strictUnmarshal(data []byte, v any) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return err
	}
	if _, err := dec.Token(); err != io.EOF {
		return errTrailingData
	}
	return nil
}
