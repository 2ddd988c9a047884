package protocol

import "fmt"

// RequestKind discriminates client requests.
type RequestKind string

const (
	// RequestList asks for the shared tree snapshot.
	RequestList RequestKind = "list"
	// RequestFile asks for the contents of one file.
	RequestFile RequestKind = "file"
)

// ClientRequest is what a peer asks the host for.
// Path is only meaningful for RequestFile.
type ClientRequest struct {
	Kind RequestKind
	Path string
}

type filePayload struct {
	Path string `json:"path"`
}

// ListRequest returns a request for the shared tree.
func ListRequest() ClientRequest {
	return ClientRequest{Kind: RequestList}
}

// FileRequest returns a request for the file at path.
func FileRequest(path string) ClientRequest {
	return ClientRequest{Kind: RequestFile, Path: path}
}

// String renders the request for logs.
func (r ClientRequest) String() string {
	if r.Kind == RequestFile {
		return fmt.Sprintf("file(%s)", r.Path)
	}
	return string(r.Kind)
}

// EncodeRequest serializes a request.
func EncodeRequest(r ClientRequest) (string, error) {
	switch r.Kind {
	case RequestList:
		return encodeMessage(string(RequestList), nil)
	case RequestFile:
		if r.Path == "" {
			return "", fmt.Errorf("protocol: encode file request: empty path")
		}
		return encodeMessage(string(RequestFile), filePayload{Path: r.Path})
	default:
		return "", fmt.Errorf("protocol: encode request: unknown kind %q", r.Kind)
	}
}

// DecodeRequest parses a serialized request.
func DecodeRequest(s string) (ClientRequest, error) {
	const target = "request"

	msg, err := decodeMessage(target, s)
	if err != nil {
		return ClientRequest{}, err
	}

	switch RequestKind(msg.Type) {
	case RequestList:
		if len(msg.Payload) != 0 {
			return ClientRequest{}, decodeErr(target, "list request takes no payload", nil)
		}
		return ListRequest(), nil

	case RequestFile:
		var p filePayload
		if err := decodePayload(target, msg, &p); err != nil {
			return ClientRequest{}, err
		}
		if p.Path == "" {
			return ClientRequest{}, decodeErr(target, "empty file path", nil)
		}
		return FileRequest(p.Path), nil

	default:
		return ClientRequest{}, decodeErr(target, fmt.Sprintf("unknown type %q", msg.Type), nil)
	}
}
