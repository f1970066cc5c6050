// Package api is the client for the robot's daemon API. It exposes one
// small client per capability (auth, lease, state, command, power, estop,
// time sync) so callers depend only on the capabilities they use.
//
// Credentials, wire format, and transport details live here and nowhere
// else; the rest of the repo treats this package as the device boundary.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/google/uuid"
	"golang.org/x/oauth2"

	"github.com/teslashibe/go-spot/internal/config"
	"github.com/teslashibe/go-spot/internal/httpc"
)

// Client holds the connection details shared by all capability clients.
type Client struct {
	BaseURL    string
	StreamURL  string
	ClientName string

	http  *http.Client
	token string
}

// NewClient creates a client for the robot at the given hostname.
// The client is unauthenticated until SetToken is called.
func NewClient(hostname string) *Client {
	return &Client{
		BaseURL:    config.APIURL(hostname),
		StreamURL:  config.StreamURL(hostname),
		ClientName: fmt.Sprintf("SpotClient-%s", uuid.NewString()[:8]),
		http:       httpc.NewClient(httpc.DefaultTimeout),
	}
}

// Ping checks that the robot daemon is reachable.
func (c *Client) Ping(ctx context.Context) error {
	return c.getJSON(ctx, "/api/ping", nil)
}

// SetToken installs a bearer token on the client. All subsequent requests
// from every capability client carry it.
func (c *Client) SetToken(token string) {
	c.token = token
	src := oauth2.StaticTokenSource(&oauth2.Token{
		AccessToken: token,
		TokenType:   "Bearer",
	})
	c.http = &http.Client{
		Timeout: httpc.DefaultTimeout,
		Transport: &oauth2.Transport{
			Source: src,
			Base:   httpc.NewTransport(),
		},
	}
}

// Token returns the current bearer token, or "" before authentication.
func (c *Client) Token() string {
	return c.token
}

// Close releases idle connections held by the client.
func (c *Client) Close() {
	c.http.CloseIdleConnections()
}

// getJSON performs a GET and decodes the response body into out (if non-nil).
func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+path, nil)
	if err != nil {
		return fmt.Errorf("failed to build request for %s: %w", path, err)
	}
	return c.do(req, out)
}

// postJSON performs a POST with a JSON body and decodes the response into
// out (if non-nil).
func (c *Client) postJSON(ctx context.Context, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("failed to marshal request for %s: %w", path, err)
		}
		body = bytes.NewReader(data)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+path, body)
	if err != nil {
		return fmt.Errorf("failed to build request for %s: %w", path, err)
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request to %s failed: %w", req.URL.Path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 256))
		return &StatusError{Code: resp.StatusCode, Body: string(snippet)}
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response from %s: %w", req.URL.Path, err)
	}
	return nil
}
