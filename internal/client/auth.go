package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

// AuthResult is the backend's answer to a successful login or registration.
// The token is opaque; the client stores and forwards it without inspection.
type AuthResult struct {
	Token    string `json:"token"`
	Username string `json:"username"`
}

// credentials is the wire shape of the auth endpoints' request body.
type credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Email    string `json:"email,omitempty"`
}

// Login exchanges a username (or email) and password for a session token.
func (c *Client) Login(ctx context.Context, username, password string) (*AuthResult, error) {
	return c.postAuth(ctx, "/login", credentials{Username: username, Password: password})
}

// Register creates an account and returns its session token.
func (c *Client) Register(ctx context.Context, username, email, password string) (*AuthResult, error) {
	return c.postAuth(ctx, "/register", credentials{Username: username, Password: password, Email: email})
}

func (c *Client) postAuth(ctx context.Context, path string, creds credentials) (*AuthResult, error) {
	body, err := json.Marshal(creds)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	var result AuthResult
	if err := readJSON(resp, &result); err != nil {
		return nil, err
	}
	return &result, nil
}
