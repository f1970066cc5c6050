// Package movement plans and executes walking trajectories. Planning is
// pure geometry; execution submits timed SE2 goals through the command
// capability and blocks until the robot finishes or times out.
package movement

import (
	"context"

	"github.com/teslashibe/go-spot/pkg/api"
)

// Commander submits motion commands and reports their progress.
// *api.CommandClient satisfies this; tests substitute a mock.
type Commander interface {
	Stand(ctx context.Context) (api.CommandID, error)
	SubmitTrajectoryPoint(ctx context.Context, req api.TrajectoryPointRequest) (api.CommandID, error)
	SubmitTrajectory(ctx context.Context, req api.TrajectoryRequest) (api.CommandID, error)
	Status(ctx context.Context, id api.CommandID) (api.CommandStatus, error)
}

// StateStream is a live feed of robot state.
type StateStream interface {
	Next(ctx context.Context) (api.RobotState, error)
	Close() error
}

// StateSource reads robot state, as a snapshot or a stream.
type StateSource interface {
	GetRobotState(ctx context.Context) (api.RobotState, error)
	Stream(ctx context.Context) (StateStream, error)
}

// stateClientSource adapts *api.StateClient to StateSource.
type stateClientSource struct {
	c *api.StateClient
}

func (s stateClientSource) GetRobotState(ctx context.Context) (api.RobotState, error) {
	return s.c.GetRobotState(ctx)
}

func (s stateClientSource) Stream(ctx context.Context) (StateStream, error) {
	stream, err := s.c.Stream(ctx)
	if err != nil {
		return nil, err
	}
	return stream, nil
}

// ClientStateSource wraps the concrete state client for use as a
// StateSource.
func ClientStateSource(c *api.StateClient) StateSource {
	return stateClientSource{c: c}
}

// Strategy selects how a plan's waypoints are submitted to the robot.
// Both strategies produce identical geometry from the same plan.
type Strategy int

const (
	// Incremental submits each waypoint as its own command, spaced by a
	// small delay, and blocks on the last one.
	Incremental Strategy = iota

	// Batched packages all waypoints into a single trajectory command.
	Batched
)

func (s Strategy) String() string {
	switch s {
	case Batched:
		return "batched"
	default:
		return "incremental"
	}
}
