package api

import (
	"context"
	"fmt"
	"time"
)

// TimeSyncClient estimates the skew between local and robot clocks.
type TimeSyncClient struct {
	c *Client
}

// NewTimeSyncClient creates a time-sync client on the shared connection.
func NewTimeSyncClient(c *Client) *TimeSyncClient {
	return &TimeSyncClient{c: c}
}

// Establish performs one sync round trip and returns the estimated skew
// (robot clock minus local clock). The robot timestamp is compared against
// the midpoint of the round trip.
func (t *TimeSyncClient) Establish(ctx context.Context) (time.Duration, error) {
	before := time.Now()

	var resp struct {
		UnixNanos int64 `json:"unix_nanos"`
	}
	if err := t.c.getJSON(ctx, "/api/time", &resp); err != nil {
		return 0, fmt.Errorf("time sync request failed: %w", err)
	}

	after := time.Now()
	midpoint := before.Add(after.Sub(before) / 2)
	return time.Unix(0, resp.UnixNanos).Sub(midpoint), nil
}
