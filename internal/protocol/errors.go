package protocol

import "fmt"

// DecodeError reports a payload that is not a valid message.
type DecodeError struct {
	// Target is what was being decoded: "request", "reply" or "envelope".
	Target string
	// Reason is a short machine-stable description.
	Reason string
	// Err is the underlying parser error, if any.
	Err error
}

// Error implements the error interface.
func (e *DecodeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("protocol: decode %s: %s: %v", e.Target, e.Reason, e.Err)
	}
	return fmt.Sprintf("protocol: decode %s: %s", e.Target, e.Reason)
}

// Unwrap returns the underlying error.
func (e *DecodeError) Unwrap() error {
	return e.Err
}

func decodeErr(target, reason string, err error) *DecodeError {
	return &DecodeError{Target: target, Reason: reason, Err: err}
}
