// Package client provides the HTTP client for the Shopping Copilot backend.
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rvasani/shopcopilot/internal/chat"
)

// DefaultTimeout bounds every backend call when no timeout is configured.
// Replies can take a while because the backend scrapes and reranks before
// answering.
const DefaultTimeout = 60 * time.Second

// Client talks to the Shopping Copilot backend. The base URL and timeout are
// injected; there is no ambient configuration.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// Compile-time check that Client satisfies the session's network boundary.
var _ chat.Backend = (*Client)(nil)

// New creates a backend client for the given base URL. A zero timeout means
// DefaultTimeout.
func New(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// chatResponse is the wire shape of a /chat reply. Unknown fields are
// ignored; a missing reply or products field decodes to its zero value so a
// partial payload still renders instead of failing the turn.
type chatResponse struct {
	Reply    string               `json:"reply"`
	Products []chat.ProductResult `json:"products"`
}

// Chat sends one turn as a single multipart request and decodes the reply.
// Exactly one attempt is made; any transport error, non-2xx status, or
// undecodable body is returned as an error for the session to reconcile.
func (c *Client) Chat(ctx context.Context, req chat.TurnRequest) (chat.TurnReply, error) {
	body, contentType, err := encodeTurn(req)
	if err != nil {
		return chat.TurnReply{}, fmt.Errorf("encode request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat", body)
	if err != nil {
		return chat.TurnReply{}, fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", contentType)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return chat.TurnReply{}, fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	var payload chatResponse
	if err := readJSON(resp, &payload); err != nil {
		return chat.TurnReply{}, err
	}

	return chat.TurnReply{Text: payload.Reply, Products: payload.Products}, nil
}

// healthResponse is the wire shape of the backend root probe.
type healthResponse struct {
	Status string `json:"status"`
}

// Ping probes the backend root endpoint. Used by the TUI to report
// reachability before the first turn.
func (c *Client) Ping(ctx context.Context) error {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/", nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	var payload healthResponse
	if err := readJSON(resp, &payload); err != nil {
		return err
	}
	if payload.Status != "ok" {
		return fmt.Errorf("unexpected status %q", payload.Status)
	}
	return nil
}

// readJSON checks the status and decodes the body into result.
func readJSON(resp *http.Response, result any) error {
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("server error: %s - %s", resp.Status, strings.TrimSpace(string(raw)))
	}
	if err := json.Unmarshal(raw, result); err != nil {
		return fmt.Errorf("unmarshal response: %w", err)
	}
	return nil
}
