package connection

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"connectrpc.com/connect"

	"github.com/yndnr/foldershare-go/internal/infra/buildinfo"
	"github.com/yndnr/foldershare-go/internal/protocol"
)

// Caller performs one Serve call.
type Caller interface {
	Call(ctx context.Context, env *protocol.Envelope) (*protocol.ReplyEnvelope, error)
}

// Client is the RPC stub for a host's Serve procedure.
type Client struct {
	baseURL string
	rpc     *connect.Client[protocol.Envelope, protocol.ReplyEnvelope]
}

// NewClient creates a client for server, given as host:port or a URL.
// A nil httpClient uses a dedicated http.Client.
func NewClient(server string, httpClient *http.Client) *Client {
	baseURL := NormalizeServer(server)
	if httpClient == nil {
		httpClient = &http.Client{
			Transport: &http.Transport{
				Proxy:               http.ProxyFromEnvironment,
				MaxIdleConnsPerHost: 2,
				IdleConnTimeout:     90 * time.Second,
			},
		}
	}

	return &Client{
		baseURL: baseURL,
		rpc: connect.NewClient[protocol.Envelope, protocol.ReplyEnvelope](
			httpClient,
			baseURL+protocol.Procedure,
			connect.WithCodec(protocol.JSONCodec{}),
		),
	}
}

// NormalizeServer adds the http:// scheme when missing and drops any
// trailing slash.
func NormalizeServer(server string) string {
	baseURL := strings.TrimRight(server, "/")
	if !strings.HasPrefix(baseURL, "http://") && !strings.HasPrefix(baseURL, "https://") {
		baseURL = "http://" + baseURL
	}
	return baseURL
}

// Call implements Caller.
func (c *Client) Call(ctx context.Context, env *protocol.Envelope) (*protocol.ReplyEnvelope, error) {
	req := connect.NewRequest(env)
	req.Header().Set("User-Agent", buildinfo.UserAgent("foldershare-cli"))

	resp, err := c.rpc.CallUnary(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("call %s: %w", c.baseURL, err)
	}
	return resp.Msg, nil
}

// BaseURL returns the base URL of the client.
func (c *Client) BaseURL() string {
	return c.baseURL
}
