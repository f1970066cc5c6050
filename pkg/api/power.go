package api

import (
	"context"
	"fmt"
)

// PowerClient controls motor power.
type PowerClient struct {
	c *Client
}

// NewPowerClient creates a power client on the shared connection.
func NewPowerClient(c *Client) *PowerClient {
	return &PowerClient{c: c}
}

// On requests motor power-on. The daemon acknowledges the request; callers
// poll robot state until motors report powered.
func (p *PowerClient) On(ctx context.Context) error {
	if err := p.c.postJSON(ctx, "/api/power/on", nil, nil); err != nil {
		return fmt.Errorf("power on request failed: %w", err)
	}
	return nil
}

// Off requests a safe motor power-off (the robot sits first).
func (p *PowerClient) Off(ctx context.Context) error {
	if err := p.c.postJSON(ctx, "/api/power/off", nil, nil); err != nil {
		return fmt.Errorf("power off request failed: %w", err)
	}
	return nil
}
