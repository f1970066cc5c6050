package api

import (
	"context"
	"fmt"
	"net/http"
)

// LeaseClient acquires and maintains the robot's command lease.
type LeaseClient struct {
	c *Client
}

// NewLeaseClient creates a lease client on the shared connection.
func NewLeaseClient(c *Client) *LeaseClient {
	return &LeaseClient{c: c}
}

// Acquire takes the command lease. Must-acquire semantics: if another
// controller holds it the call fails with ErrLeaseInUse rather than waiting.
func (l *LeaseClient) Acquire(ctx context.Context) (Lease, error) {
	payload := struct {
		ClientName string `json:"client_name"`
	}{ClientName: l.c.ClientName}

	var lease Lease
	if err := l.c.postJSON(ctx, "/api/lease/acquire", payload, &lease); err != nil {
		if statusCode(err) == http.StatusConflict {
			return Lease{}, ErrLeaseInUse
		}
		return Lease{}, fmt.Errorf("lease acquire failed: %w", err)
	}
	return lease, nil
}

// Retain sends a keep-alive beat for a held lease.
func (l *LeaseClient) Retain(ctx context.Context, lease Lease) error {
	if err := l.c.postJSON(ctx, "/api/lease/retain", lease, nil); err != nil {
		return fmt.Errorf("lease retain failed: %w", err)
	}
	return nil
}

// Return gives the lease back to the robot.
func (l *LeaseClient) Return(ctx context.Context, lease Lease) error {
	if err := l.c.postJSON(ctx, "/api/lease/return", lease, nil); err != nil {
		return fmt.Errorf("lease return failed: %w", err)
	}
	return nil
}
