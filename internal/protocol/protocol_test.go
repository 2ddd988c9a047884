package protocol

import (
	"errors"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/yndnr/foldershare-go/internal/core/domain"
)

func sampleNodes() []domain.Node {
	mod := time.Date(2024, 5, 6, 7, 8, 9, 0, time.UTC)
	acc := mod.Add(time.Hour)
	return []domain.Node{
		domain.NewFolder("/srv/r",
			domain.NewFile("/srv/r/a.txt", &domain.Metadata{Size: 2, Modified: mod, Accessed: &acc}),
			domain.NewFolder("/srv/r/sub", domain.NewFile("/srv/r/sub/b.txt", nil)),
			domain.Node{Kind: domain.NodeFolder, Path: "/srv/r/locked", Error: "permission denied"},
		),
	}
}

func TestRequest_RoundTrip(t *testing.T) {
	tests := []struct {
		name string
		req  ClientRequest
	}{
		{"list", ListRequest()},
		{"file", FileRequest("/srv/r/a.txt")},
		{"file with unicode", FileRequest("/srv/r/ünï cödé/ファイル.txt")},
		{"file with quotes", FileRequest(`/srv/r/"quoted".txt`)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := EncodeRequest(tt.req)
			if err != nil {
				t.Fatalf("EncodeRequest() error = %v", err)
			}
			got, err := DecodeRequest(s)
			if err != nil {
				t.Fatalf("DecodeRequest(%s) error = %v", s, err)
			}
			if got != tt.req {
				t.Errorf("round trip = %+v, want %+v", got, tt.req)
			}
		})
	}
}

func TestReply_RoundTrip(t *testing.T) {
	tests := []struct {
		name  string
		reply ServerReply
	}{
		{"list", ListReply(sampleNodes())},
		{"empty list", ListReply([]domain.Node{})},
		{"file content", FileContent("/srv/r/a.txt", []byte("hi"))},
		{"binary content", FileContent("/srv/r/bin", []byte{0, 1, 2, 0xff})},
		{"empty file", FileContent("/srv/r/empty", nil)},
		{"file error", FileFailure("/srv/r/missing.txt", "[FS-FILE-4040] file not found")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := EncodeReply(tt.reply)
			if err != nil {
				t.Fatalf("EncodeReply() error = %v", err)
			}
			got, err := DecodeReply(s)
			if err != nil {
				t.Fatalf("DecodeReply(%s) error = %v", s, err)
			}
			if !reflect.DeepEqual(got, tt.reply) {
				t.Errorf("round trip mismatch\n got: %+v\nwant: %+v", got, tt.reply)
			}
		})
	}
}

func TestWireFormat(t *testing.T) {
	s, _ := EncodeRequest(ListRequest())
	if s != `{"type":"list"}` {
		t.Errorf("list request = %s", s)
	}

	s, _ = EncodeRequest(FileRequest("/x"))
	if s != `{"type":"file","payload":{"path":"/x"}}` {
		t.Errorf("file request = %s", s)
	}

	s, _ = EncodeReply(FileFailure("/x", "gone"))
	if s != `{"type":"file","payload":{"path":"/x","bytes":null,"error":"gone"}}` {
		t.Errorf("file failure reply = %s", s)
	}
}

func TestDecodeRequest_Malformed(t *testing.T) {
	inputs := []string{
		"",
		"not json",
		"[]",
		`{}`,
		`{"type":""}`,
		`{"type":"delete"}`,
		`{"type":"list","payload":{"path":"/x"}}`,
		`{"type":"file"}`,
		`{"type":"file","payload":null}`,
		`{"type":"file","payload":{}}`,
		`{"type":"file","payload":{"path":""}}`,
		`{"type":"file","payload":{"path":42}}`,
		`{"type":"file","payload":{"path":"/x","extra":1}}`,
		`{"type":"list"} trailing`,
		`{"type":"list"}}`,
		`"ListRequest"`,
	}

	for _, in := range inputs {
		t.Run(in, func(t *testing.T) {
			_, err := DecodeRequest(in)
			var de *DecodeError
			if !errors.As(err, &de) {
				t.Fatalf("DecodeRequest(%q) error = %v, want *DecodeError", in, err)
			}
			if de.Target != "request" {
				t.Errorf("Target = %q, want request", de.Target)
			}
		})
	}
}

func TestDecodeReply_Malformed(t *testing.T) {
	inputs := []string{
		"garbage",
		`{"type":"list"}`,
		`{"type":"list","payload":{"nodes":[{"type":"socket","path":"/x"}]}}`,
		`{"type":"list","payload":{"nodes":[{"type":"file","path":""}]}}`,
		`{"type":"file","payload":{"path":"/x","bytes":null}}`,
		`{"type":"file","payload":{"path":"/x","bytes":"aGk=","error":"both"}}`,
		`{"type":"file","payload":{"path":"","bytes":"aGk="}}`,
		`{"type":"file","payload":{"path":"/x","bytes":"not base64!"}}`,
		`{"type":"dir","payload":{}}`,
	}

	for _, in := range inputs {
		t.Run(in, func(t *testing.T) {
			_, err := DecodeReply(in)
			var de *DecodeError
			if !errors.As(err, &de) {
				t.Fatalf("DecodeReply(%q) error = %v, want *DecodeError", in, err)
			}
		})
	}
}

func TestEncode_RejectsInvalid(t *testing.T) {
	if _, err := EncodeRequest(ClientRequest{Kind: "bogus"}); err == nil {
		t.Error("EncodeRequest should reject unknown kinds")
	}
	if _, err := EncodeRequest(FileRequest("")); err == nil {
		t.Error("EncodeRequest should reject empty paths")
	}

	both := ServerReply{Kind: ReplyFile, File: &FileReply{Path: "/x", Bytes: []byte("a"), Error: "b"}}
	if _, err := EncodeReply(both); err == nil {
		t.Error("EncodeReply should reject a file reply with bytes and error")
	}
	neither := ServerReply{Kind: ReplyFile, File: &FileReply{Path: "/x"}}
	if _, err := EncodeReply(neither); err == nil {
		t.Error("EncodeReply should reject a file reply with neither bytes nor error")
	}
}

func TestFileReply_OK(t *testing.T) {
	if !FileContent("/x", nil).File.OK() {
		t.Error("empty file content should be OK")
	}
	if FileFailure("/x", "nope").File.OK() {
		t.Error("failure should not be OK")
	}
}

func TestReplyEnvelope_Validate(t *testing.T) {
	tests := []struct {
		name    string
		env     *ReplyEnvelope
		wantErr bool
	}{
		{"ok with payload", OK(`{"type":"list","payload":{"nodes":[]}}`), false},
		{"ok without payload", &ReplyEnvelope{Status: StatusOK}, true},
		{"auth failed", AuthFailed(), false},
		{"bad request", BadRequest(), false},
		{"auth failed with payload", &ReplyEnvelope{Status: StatusAuthFailed, Payload: "x"}, true},
		{"unknown status", &ReplyEnvelope{Status: "Invalid password!"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.env.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestReplyEnvelope_Reply(t *testing.T) {
	payload, err := EncodeReply(FileContent("/x", []byte("hi")))
	if err != nil {
		t.Fatal(err)
	}

	reply, err := OK(payload).Reply()
	if err != nil {
		t.Fatalf("Reply() error = %v", err)
	}
	if string(reply.File.Bytes) != "hi" {
		t.Errorf("Bytes = %q, want hi", reply.File.Bytes)
	}

	if _, err := AuthFailed().Reply(); err == nil {
		t.Error("Reply() on auth failure should error")
	}
}

func TestEnvelope_LogValueHidesPassword(t *testing.T) {
	env, err := NewEnvelope(ListRequest(), "hunter2")
	if err != nil {
		t.Fatal(err)
	}
	if env.Password != "hunter2" {
		t.Errorf("Password = %q", env.Password)
	}
	if strings.Contains(env.LogValue().String(), "hunter2") {
		t.Error("LogValue leaks the password")
	}
}

func TestJSONCodec(t *testing.T) {
	codec := JSONCodec{}
	if codec.Name() != "json" {
		t.Errorf("Name() = %q, want json", codec.Name())
	}

	data, err := codec.Marshal(&Envelope{Payload: `{"type":"list"}`, Password: "pw"})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	var env Envelope
	if err := codec.Unmarshal(data, &env); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if env.Payload != `{"type":"list"}` || env.Password != "pw" {
		t.Errorf("round trip = %+v", env)
	}

	for _, bad := range []string{`{"payload":"x","extra":1}`, `not json`, `{"status":7}`} {
		var reply ReplyEnvelope
		if err := codec.Unmarshal([]byte(bad), &reply); err == nil {
			t.Errorf("Unmarshal(%q) should fail", bad)
		}
	}
}
