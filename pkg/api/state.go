package api

import (
	"context"
	"fmt"
)

// StateClient queries the robot's kinematic and power state.
type StateClient struct {
	c *Client
}

// NewStateClient creates a state client on the shared connection.
func NewStateClient(c *Client) *StateClient {
	return &StateClient{c: c}
}

// GetRobotState returns a snapshot of the robot's current state.
func (s *StateClient) GetRobotState(ctx context.Context) (RobotState, error) {
	var state RobotState
	if err := s.c.getJSON(ctx, "/api/robot/state", &state); err != nil {
		return RobotState{}, fmt.Errorf("robot state request failed: %w", err)
	}
	return state, nil
}
