package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/yndnr/foldershare-go/internal/core/domain"
	"github.com/yndnr/foldershare-go/internal/protocol"
	"github.com/yndnr/foldershare-go/internal/telemetry/logger"
)

// FileReader reads one shared file. Errors are domain file errors.
type FileReader interface {
	ReadFile(path string) ([]byte, error)
}

// Recorder receives per-call counters. *metric.Registry implements it.
type Recorder interface {
	IncAuthFailure()
	AddFileBytes(n int)
}

// ShareConfig holds the immutable inputs of a ShareService.
type ShareConfig struct {
	// Verifier checks the password of every call. Required.
	Verifier PasswordVerifier
	// Snapshot is the tree returned for list requests.
	Snapshot []domain.Node
	// Roots serves file requests. Required.
	Roots FileReader
	// Logger defaults to slog.Default().
	Logger *slog.Logger
	// Metrics may be nil.
	Metrics Recorder
}

// ShareService answers Serve calls.
type ShareService struct {
	verifier PasswordVerifier
	snapshot []domain.Node
	roots    FileReader
	logger   *slog.Logger
	metrics  Recorder
}

// NewShareService creates a ShareService.
func NewShareService(cfg ShareConfig) (*ShareService, error) {
	if cfg.Verifier == nil {
		return nil, errors.New("service: share config has no password verifier")
	}
	if cfg.Roots == nil {
		return nil, errors.New("service: share config has no roots")
	}

	snapshot := cfg.Snapshot
	if snapshot == nil {
		snapshot = []domain.Node{}
	}

	return &ShareService{
		verifier: cfg.Verifier,
		snapshot: snapshot,
		roots:    cfg.Roots,
		logger:   logger.OrDefault(cfg.Logger),
		metrics:  cfg.Metrics,
	}, nil
}

// Handle authenticates env, decodes its request and builds the reply.
//
// A wrong password yields AuthFailed without looking at the payload. A
// payload that does not decode yields BadRequest. File read failures are
// carried inside an OK reply. The returned error is non-nil only when a
// reply cannot be encoded.
func (s *ShareService) Handle(ctx context.Context, env *protocol.Envelope) (*protocol.ReplyEnvelope, error) {
	log := s.log(ctx)

	if env == nil {
		return protocol.BadRequest(), nil
	}

	if !s.verifier.Verify(env.Password) {
		if s.metrics != nil {
			s.metrics.IncAuthFailure()
		}
		log.Warn("authentication failed", "error", domain.ErrAuthFailed)
		return protocol.AuthFailed(), nil
	}

	req, err := protocol.DecodeRequest(env.Payload)
	if err != nil {
		log.Warn("malformed request", "code", domain.ErrMalformedRequest.Code, "error", err)
		return protocol.BadRequest(), nil
	}

	reply := s.dispatch(ctx, req)

	payload, err := protocol.EncodeReply(reply)
	if err != nil {
		log.Error("encode reply failed", "request", req.String(), "error", err)
		return nil, fmt.Errorf("service: %w", err)
	}

	return protocol.OK(payload), nil
}

func (s *ShareService) dispatch(ctx context.Context, req protocol.ClientRequest) protocol.ServerReply {
	switch req.Kind {
	case protocol.RequestFile:
		return s.readFile(ctx, req.Path)
	default:
		s.log(ctx).Debug("serving tree", "roots", len(s.snapshot))
		return protocol.ListReply(s.snapshot)
	}
}

func (s *ShareService) readFile(ctx context.Context, path string) protocol.ServerReply {
	data, err := s.roots.ReadFile(path)
	if err != nil {
		s.log(ctx).Info("file request failed", "path", path, "code", domain.GetErrorCode(err), "error", err)
		return protocol.FileFailure(path, err.Error())
	}

	if s.metrics != nil {
		s.metrics.AddFileBytes(len(data))
	}
	s.log(ctx).Debug("serving file", "path", path, "bytes", len(data))
	return protocol.FileContent(path, data)
}

func (s *ShareService) log(ctx context.Context) *slog.Logger {
	return logger.ForRequest(ctx, s.logger)
}
