package api

import (
	"context"
	"fmt"
	"net/url"

	"github.com/google/uuid"
)

// CommandClient submits motion commands and queries their progress.
type CommandClient struct {
	c *Client
}

// NewCommandClient creates a command client on the shared connection.
func NewCommandClient(c *Client) *CommandClient {
	return &CommandClient{c: c}
}

// commandResponse is the daemon's acknowledgement of a submitted command.
type commandResponse struct {
	CommandID CommandID `json:"command_id"`
}

// Stand commands the robot to stand up. Completion is observed through the
// state service, not through this call.
func (cc *CommandClient) Stand(ctx context.Context) (CommandID, error) {
	var resp commandResponse
	if err := cc.c.postJSON(ctx, "/api/robot/command/stand", nil, &resp); err != nil {
		return "", fmt.Errorf("stand command failed: %w", err)
	}
	return resp.CommandID, nil
}

// SubmitTrajectoryPoint submits a single timed SE2 goal and returns the
// robot-assigned command ID. A request ID is generated when absent so
// resubmissions are idempotent on the daemon side.
func (cc *CommandClient) SubmitTrajectoryPoint(ctx context.Context, req TrajectoryPointRequest) (CommandID, error) {
	if req.RequestID == "" {
		req.RequestID = uuid.NewString()
	}
	var resp commandResponse
	if err := cc.c.postJSON(ctx, "/api/robot/command/trajectory_point", req, &resp); err != nil {
		return "", fmt.Errorf("trajectory point command failed: %w", err)
	}
	return resp.CommandID, nil
}

// SubmitTrajectory submits a multi-point SE2 trajectory as one command.
func (cc *CommandClient) SubmitTrajectory(ctx context.Context, req TrajectoryRequest) (CommandID, error) {
	if req.RequestID == "" {
		req.RequestID = uuid.NewString()
	}
	var resp commandResponse
	if err := cc.c.postJSON(ctx, "/api/robot/command/trajectory", req, &resp); err != nil {
		return "", fmt.Errorf("trajectory command failed: %w", err)
	}
	return resp.CommandID, nil
}

// Status returns the robot-reported progress of a command.
func (cc *CommandClient) Status(ctx context.Context, id CommandID) (CommandStatus, error) {
	var resp struct {
		Status CommandStatus `json:"status"`
	}
	path := "/api/robot/command/status?id=" + url.QueryEscape(string(id))
	if err := cc.c.getJSON(ctx, path, &resp); err != nil {
		return "", fmt.Errorf("command status request failed: %w", err)
	}
	return resp.Status, nil
}
