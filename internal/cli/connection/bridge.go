package connection

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/yndnr/foldershare-go/internal/core/domain"
	"github.com/yndnr/foldershare-go/internal/protocol"
)

const (
	// DefaultQueueSize is the capacity of the command and result queues.
	DefaultQueueSize = 8
	// DefaultCallTimeout bounds one RPC call.
	DefaultCallTimeout = 30 * time.Second
)

// Command is an item of the bridge's command queue: a request, or the
// stop marker.
type Command struct {
	req  protocol.ClientRequest
	stop bool
}

// RequestCommand wraps req.
func RequestCommand(req protocol.ClientRequest) Command {
	return Command{req: req}
}

// StopCommand returns the stop marker.
func StopCommand() Command {
	return Command{stop: true}
}

// IsStop reports whether c is the stop marker.
func (c Command) IsStop() bool {
	return c.stop
}

// Request returns the wrapped request.
func (c Command) Request() protocol.ClientRequest {
	return c.req
}

// Result is the outcome of one call. Err is set only for connection loss
// or an undecodable reply; Status and Payload are the host's answer
// otherwise.
type Result struct {
	Request protocol.ClientRequest
	Status  protocol.Status
	Payload string
	Err     error
}

// Reply decodes the result into a ServerReply. auth_failed and bad_request
// map to domain errors.
func (r Result) Reply() (protocol.ServerReply, error) {
	if r.Err != nil {
		return protocol.ServerReply{}, r.Err
	}
	switch r.Status {
	case protocol.StatusAuthFailed:
		return protocol.ServerReply{}, domain.ErrAuthFailed
	case protocol.StatusBadRequest:
		return protocol.ServerReply{}, domain.ErrMalformedRequest.WithDetails(r.Request.String())
	}
	reply, err := protocol.DecodeReply(r.Payload)
	if err != nil {
		return protocol.ServerReply{}, domain.ErrMalformedReply.WithCause(err)
	}
	return reply, nil
}

// BridgeConfig configures a Bridge.
type BridgeConfig struct {
	Caller      Caller
	Password    string
	QueueSize   int
	CallTimeout time.Duration
	Logger      *slog.Logger
}

// Bridge turns one logical connection into a sequence of one-at-a-time
// calls. Commands are served in submission order, each after the previous
// call has finished and its result has been published.
type Bridge struct {
	caller   Caller
	password string
	timeout  time.Duration
	logger   *slog.Logger

	commands chan Command
	results  chan Result
	done     chan struct{}

	runOnce sync.Once
	err     error
}

// NewBridge creates a bridge. Run must be called to start it.
func NewBridge(cfg BridgeConfig) *Bridge {
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = DefaultQueueSize
	}
	if cfg.CallTimeout <= 0 {
		cfg.CallTimeout = DefaultCallTimeout
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	return &Bridge{
		caller:   cfg.Caller,
		password: cfg.Password,
		timeout:  cfg.CallTimeout,
		logger:   cfg.Logger,
		commands: make(chan Command, cfg.QueueSize),
		results:  make(chan Result, cfg.QueueSize),
		done:     make(chan struct{}),
	}
}

// Run issues the initial list call, then serves commands until the stop
// marker, an authentication failure, a lost connection or ctx ends. It
// closes the result queue and Done on return, and returns the same value
// as Err. Only the first call to Run does anything.
func (b *Bridge) Run(ctx context.Context) error {
	b.runOnce.Do(func() {
		b.err = b.loop(ctx)
		close(b.results)
		close(b.done)
	})
	<-b.done
	return b.err
}

func (b *Bridge) loop(ctx context.Context) error {
	if err := b.serve(ctx, protocol.ListRequest()); err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case cmd := <-b.commands:
			if cmd.IsStop() {
				b.logger.Debug("bridge stopped")
				return nil
			}
			if err := b.serve(ctx, cmd.Request()); err != nil {
				return err
			}
		}
	}
}

// serve performs one call, publishes its result and returns the error
// that ends the bridge, if any.
func (b *Bridge) serve(ctx context.Context, req protocol.ClientRequest) error {
	res, terminal := b.call(ctx, req)

	select {
	case b.results <- res:
	case <-ctx.Done():
		return ctx.Err()
	}
	return terminal
}

func (b *Bridge) call(ctx context.Context, req protocol.ClientRequest) (Result, error) {
	res := Result{Request: req}

	env, err := protocol.NewEnvelope(req, b.password)
	if err != nil {
		// An unencodable request never reaches the host.
		res.Status = protocol.StatusBadRequest
		b.logger.Warn("request not sent", "request", req.String(), "error", err)
		return res, nil
	}

	callCtx, cancel := context.WithTimeout(ctx, b.timeout)
	defer cancel()

	start := time.Now()
	reply, err := b.caller.Call(callCtx, env)
	if err != nil {
		if ctx.Err() != nil {
			res.Err = ctx.Err()
			return res, ctx.Err()
		}
		lost := domain.ErrConnectionLost.WithCause(err)
		b.logger.Warn("connection lost", "request", req.String(), "error", err)
		res.Err = lost
		return res, lost
	}
	if err := reply.Validate(); err != nil {
		bad := domain.ErrMalformedReply.WithCause(err)
		b.logger.Warn("malformed reply", "request", req.String(), "error", err)
		res.Err = bad
		return res, bad
	}

	b.logger.Debug("call finished",
		"request", req.String(),
		"status", reply.Status,
		"duration_ms", time.Since(start).Milliseconds())

	res.Status = reply.Status
	res.Payload = reply.Payload
	if reply.Status == protocol.StatusAuthFailed {
		return res, domain.ErrAuthFailed
	}
	return res, nil
}

// Submit enqueues a request. It blocks while the command queue is full and
// returns ErrBridgeClosed once the bridge has ended.
func (b *Bridge) Submit(ctx context.Context, req protocol.ClientRequest) error {
	return b.enqueue(ctx, RequestCommand(req))
}

// Stop enqueues the stop marker behind any pending commands. It does not
// wait for the bridge to end; use Done for that.
func (b *Bridge) Stop(ctx context.Context) error {
	err := b.enqueue(ctx, StopCommand())
	if domain.IsDomainError(err, domain.ErrBridgeClosed.Code) {
		return nil
	}
	return err
}

func (b *Bridge) enqueue(ctx context.Context, cmd Command) error {
	select {
	case <-b.done:
		return domain.ErrBridgeClosed
	default:
	}

	select {
	case b.commands <- cmd:
		return nil
	case <-b.done:
		return domain.ErrBridgeClosed
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Results returns the result queue. It is closed when the bridge ends.
func (b *Bridge) Results() <-chan Result {
	return b.results
}

// Done is closed when the bridge has ended.
func (b *Bridge) Done() <-chan struct{} {
	return b.done
}

// Err returns why the bridge ended: nil after the stop marker, the
// terminal error otherwise. It is only meaningful once Done is closed.
func (b *Bridge) Err() error {
	select {
	case <-b.done:
		return b.err
	default:
		return nil
	}
}
