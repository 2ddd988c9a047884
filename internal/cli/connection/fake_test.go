package connection

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/yndnr/foldershare-go/internal/core/domain"
	"github.com/yndnr/foldershare-go/internal/protocol"
)

const testPassword = "pw"

var errNetwork = errors.New("connection refused")

// fakeCaller answers like a host sharing /r with a.txt, and records the
// order and concurrency of calls.
type fakeCaller struct {
	mu    sync.Mutex
	calls []protocol.ClientRequest

	inflight    atomic.Int32
	maxInflight atomic.Int32
	fail        atomic.Bool

	// delay, when set, returns how long a call takes.
	delay func(protocol.ClientRequest) time.Duration
	// gate, when set, blocks every call until closed.
	gate chan struct{}
}

func (f *fakeCaller) Call(ctx context.Context, env *protocol.Envelope) (*protocol.ReplyEnvelope, error) {
	n := f.inflight.Add(1)
	defer f.inflight.Add(-1)
	for {
		m := f.maxInflight.Load()
		if n <= m || f.maxInflight.CompareAndSwap(m, n) {
			break
		}
	}

	if f.gate != nil {
		select {
		case <-f.gate:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	if f.fail.Load() {
		return nil, errNetwork
	}

	if env.Password != testPassword {
		return protocol.AuthFailed(), nil
	}

	req, err := protocol.DecodeRequest(env.Payload)
	if err != nil {
		return protocol.BadRequest(), nil
	}

	f.mu.Lock()
	f.calls = append(f.calls, req)
	f.mu.Unlock()

	if f.delay != nil {
		select {
		case <-time.After(f.delay(req)):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	var reply protocol.ServerReply
	switch {
	case req.Kind == protocol.RequestList:
		reply = protocol.ListReply([]domain.Node{
			domain.NewFolder("/r", domain.NewFile("/r/a.txt", &domain.Metadata{Size: 2})),
		})
	case req.Path == "/r/a.txt":
		reply = protocol.FileContent(req.Path, []byte("hi"))
	case req.Path == "/r/bad":
		return protocol.BadRequest(), nil
	case len(req.Path) > 3 && req.Path[:3] == "/q/":
		reply = protocol.FileContent(req.Path, []byte(req.Path))
	default:
		reply = protocol.FileFailure(req.Path, domain.ErrFileNotFound.WithDetails(req.Path).Error())
	}

	payload, err := protocol.EncodeReply(reply)
	if err != nil {
		return nil, err
	}
	return protocol.OK(payload), nil
}

func (f *fakeCaller) recorded() []protocol.ClientRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]protocol.ClientRequest(nil), f.calls...)
}
