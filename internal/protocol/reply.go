package protocol

import (
	"fmt"

	"github.com/yndnr/foldershare-go/internal/core/domain"
)

// ReplyKind discriminates server replies.
type ReplyKind string

const (
	// ReplyList carries the shared tree.
	ReplyList ReplyKind = "list"
	// ReplyFile carries one file or the reason it could not be read.
	ReplyFile ReplyKind = "file"
)

// ServerReply is the host's answer to an authenticated, well-formed request.
type ServerReply struct {
	Kind  ReplyKind
	Nodes []domain.Node // ReplyList
	File  *FileReply    // ReplyFile
}

// FileReply holds exactly one of Bytes or Error.
// A nil Bytes means "no content"; an empty file has non-nil, zero-length Bytes.
type FileReply struct {
	Path  string `json:"path"`
	Bytes []byte `json:"bytes"`
	Error string `json:"error,omitempty"`
}

type listPayload struct {
	Nodes []domain.Node `json:"nodes"`
}

// ListReply returns a reply carrying nodes.
func ListReply(nodes []domain.Node) ServerReply {
	return ServerReply{Kind: ReplyList, Nodes: nodes}
}

// FileContent returns a successful file reply.
func FileContent(path string, data []byte) ServerReply {
	if data == nil {
		data = []byte{}
	}
	return ServerReply{Kind: ReplyFile, File: &FileReply{Path: path, Bytes: data}}
}

// FileFailure returns a file reply carrying an error message.
func FileFailure(path, message string) ServerReply {
	return ServerReply{Kind: ReplyFile, File: &FileReply{Path: path, Error: message}}
}

// OK reports whether a file reply carries content.
func (f *FileReply) OK() bool {
	return f.Bytes != nil
}

// Validate checks the reply variant invariants.
func (r ServerReply) Validate() error {
	switch r.Kind {
	case ReplyList:
		if r.File != nil {
			return fmt.Errorf("list reply carries a file")
		}
		for _, n := range r.Nodes {
			if err := n.Validate(); err != nil {
				return err
			}
		}
	case ReplyFile:
		if r.File == nil {
			return fmt.Errorf("file reply has no body")
		}
		if r.Nodes != nil {
			return fmt.Errorf("file reply carries nodes")
		}
		if r.File.Path == "" {
			return fmt.Errorf("file reply has no path")
		}
		if (r.File.Bytes != nil) == (r.File.Error != "") {
			return fmt.Errorf("file reply must carry exactly one of bytes or error")
		}
	default:
		return fmt.Errorf("unknown reply kind %q", r.Kind)
	}
	return nil
}

// EncodeReply serializes a reply after checking its invariants.
func EncodeReply(r ServerReply) (string, error) {
	if err := r.Validate(); err != nil {
		return "", fmt.Errorf("protocol: encode reply: %w", err)
	}

	switch r.Kind {
	case ReplyList:
		return encodeMessage(string(ReplyList), listPayload{Nodes: r.Nodes})
	default:
		return encodeMessage(string(ReplyFile), r.File)
	}
}

// DecodeReply parses a serialized reply.
func DecodeReply(s string) (ServerReply, error) {
	const target = "reply"

	msg, err := decodeMessage(target, s)
	if err != nil {
		return ServerReply{}, err
	}

	var reply ServerReply
	switch ReplyKind(msg.Type) {
	case ReplyList:
		var p listPayload
		if err := decodePayload(target, msg, &p); err != nil {
			return ServerReply{}, err
		}
		reply = ListReply(p.Nodes)

	case ReplyFile:
		var f FileReply
		if err := decodePayload(target, msg, &f); err != nil {
			return ServerReply{}, err
		}
		reply = ServerReply{Kind: ReplyFile, File: &f}

	default:
		return ServerReply{}, decodeErr(target, fmt.Sprintf("unknown type %q", msg.Type), nil)
	}

	if err := reply.Validate(); err != nil {
		return ServerReply{}, decodeErr(target, "invalid "+msg.Type+" reply", err)
	}
	return reply, nil
}
