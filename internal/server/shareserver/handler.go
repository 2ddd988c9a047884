package shareserver

import (
	"context"
	"log/slog"
	"net/http"

	"connectrpc.com/connect"

	"github.com/yndnr/foldershare-go/internal/protocol"
)

// Service answers one envelope.
type Service interface {
	Handle(ctx context.Context, env *protocol.Envelope) (*protocol.ReplyEnvelope, error)
}

// Handler binds a Service to the Serve procedure.
type Handler struct {
	svc    Service
	logger *slog.Logger
}

// NewHandler creates a new RPC handler.
func NewHandler(svc Service, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{svc: svc, logger: logger}
}

// Serve handles the Serve RPC.
func (h *Handler) Serve(
	ctx context.Context,
	req *connect.Request[protocol.Envelope],
) (*connect.Response[protocol.ReplyEnvelope], error) {
	reply, err := h.svc.Handle(ctx, req.Msg)
	if err != nil {
		return nil, connect.NewError(connect.CodeInternal, err)
	}
	return connect.NewResponse(reply), nil
}

// Mount returns the route path and HTTP handler for the Serve procedure,
// in the shape of generated Connect service constructors.
func (h *Handler) Mount(opts ...connect.HandlerOption) (string, http.Handler) {
	opts = append([]connect.HandlerOption{connect.WithCodec(protocol.JSONCodec{})}, opts...)
	return protocol.Procedure, connect.NewUnaryHandler(protocol.Procedure, h.Serve, opts...)
}
