package api

import (
	"context"
	"fmt"
)

// EstopClient queries the emergency-stop state.
type EstopClient struct {
	c *Client
}

// NewEstopClient creates an estop client on the shared connection.
func NewEstopClient(c *Client) *EstopClient {
	return &EstopClient{c: c}
}

// Status reports whether the robot is estopped. No clearing is attempted
// here; an active estop must be resolved by the operator.
func (e *EstopClient) Status(ctx context.Context) (EstopStatus, error) {
	var status EstopStatus
	if err := e.c.getJSON(ctx, "/api/estop/status", &status); err != nil {
		return EstopStatus{}, fmt.Errorf("estop status request failed: %w", err)
	}
	return status, nil
}
