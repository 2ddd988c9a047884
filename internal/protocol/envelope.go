package protocol

import (
	"fmt"
	"log/slog"
)

// Procedure is the single RPC method exposed by a host.
const Procedure = "/foldershare.v1.ShareService/Serve"

// Envelope is the request frame: one serialized ClientRequest plus the
// shared password. Every call is authenticated on its own.
type Envelope struct {
	Payload  string `json:"payload"`
	Password string `json:"password"`
}

// LogValue keeps the password out of logs.
func (e Envelope) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("payload_len", len(e.Payload)),
		slog.Bool("has_password", e.Password != ""),
	)
}

// NewEnvelope encodes req and wraps it with password.
func NewEnvelope(req ClientRequest, password string) (*Envelope, error) {
	payload, err := EncodeRequest(req)
	if err != nil {
		return nil, err
	}
	return &Envelope{Payload: payload, Password: password}, nil
}

// Status says which of the three disjoint reply shapes a ReplyEnvelope holds.
type Status string

const (
	// StatusOK means Payload is a serialized ServerReply.
	StatusOK Status = "ok"
	// StatusAuthFailed means the password did not match; there is no payload.
	StatusAuthFailed Status = "auth_failed"
	// StatusBadRequest means the request payload did not decode; there is no payload.
	StatusBadRequest Status = "bad_request"
)

// ReplyEnvelope is the reply frame.
type ReplyEnvelope struct {
	Status  Status `json:"status"`
	Payload string `json:"payload,omitempty"`
}

// OK wraps a serialized reply.
func OK(payload string) *ReplyEnvelope {
	return &ReplyEnvelope{Status: StatusOK, Payload: payload}
}

// AuthFailed returns the authentication-failure reply.
func AuthFailed() *ReplyEnvelope {
	return &ReplyEnvelope{Status: StatusAuthFailed}
}

// BadRequest returns the malformed-request reply.
func BadRequest() *ReplyEnvelope {
	return &ReplyEnvelope{Status: StatusBadRequest}
}

// Validate checks that the payload is present exactly when Status is ok.
func (r *ReplyEnvelope) Validate() error {
	switch r.Status {
	case StatusOK:
		if r.Payload == "" {
			return decodeErr("envelope", "ok reply without payload", nil)
		}
	case StatusAuthFailed, StatusBadRequest:
		if r.Payload != "" {
			return decodeErr("envelope", fmt.Sprintf("%s reply with payload", r.Status), nil)
		}
	default:
		return decodeErr("envelope", fmt.Sprintf("unknown status %q", r.Status), nil)
	}
	return nil
}

// Reply decodes the payload of an ok envelope.
func (r *ReplyEnvelope) Reply() (ServerReply, error) {
	if err := r.Validate(); err != nil {
		return ServerReply{}, err
	}
	if r.Status != StatusOK {
		return ServerReply{}, decodeErr("envelope", fmt.Sprintf("no payload in %s reply", r.Status), nil)
	}
	return DecodeReply(r.Payload)
}
