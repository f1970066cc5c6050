package movement

import (
	"context"
	"fmt"
	"time"

	"github.com/teslashibe/go-spot/internal/log"
	"github.com/teslashibe/go-spot/pkg/api"
	"github.com/teslashibe/go-spot/pkg/geom"
)

// Walker timing defaults.
const (
	// DefaultMaxAngularVelocity caps turning speed in rad/s.
	DefaultMaxAngularVelocity = 1.0

	// completionGrace is added to a plan's total time when blocking on the
	// final command.
	completionGrace = 5 * time.Second

	defaultSubmitSpacing = 100 * time.Millisecond
	defaultPollInterval  = 500 * time.Millisecond
)

// Walker drives the robot through planned trajectories. It consumes the
// command and state capabilities of an established session.
type Walker struct {
	cmd   Commander
	state StateSource

	// Params caps the robot's speed while tracking goals.
	Params api.MobilityParams

	// ClockSkew shifts command deadlines onto the robot's clock.
	ClockSkew time.Duration

	// SubmitSpacing is the pause between incremental waypoint submissions.
	SubmitSpacing time.Duration

	// PollInterval is how often command completion is checked.
	PollInterval time.Duration

	now func() time.Time
}

// NewWalker creates a walker with the given linear velocity cap in m/s.
func NewWalker(cmd Commander, state StateSource, maxLinearVelocity float64) *Walker {
	return &Walker{
		cmd:   cmd,
		state: state,
		Params: api.MobilityParams{
			MaxLinearVelocity:  maxLinearVelocity,
			MaxAngularVelocity: DefaultMaxAngularVelocity,
		},
		SubmitSpacing: defaultSubmitSpacing,
		PollInterval:  defaultPollInterval,
		now:           time.Now,
	}
}

// CurrentPose reads the robot's pose in the world (vision) frame.
func (w *Walker) CurrentPose(ctx context.Context) (geom.Pose2D, error) {
	state, err := w.state.GetRobotState(ctx)
	if err != nil {
		return geom.Pose2D{}, &CommandError{Op: "state", Err: err}
	}
	return state.VisionTformBody.Pose2D(), nil
}

// Stand commands the robot to stand and blocks on the state stream until
// it reports standing or the timeout elapses.
func (w *Walker) Stand(ctx context.Context, timeout time.Duration) error {
	log.Info("commanding robot to stand")

	if _, err := w.cmd.Stand(ctx); err != nil {
		return &CommandError{Op: "stand", Err: err}
	}

	waitCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	stream, err := w.state.Stream(waitCtx)
	if err != nil {
		return &CommandError{Op: "stand", Err: err}
	}
	defer stream.Close()

	for {
		state, err := stream.Next(waitCtx)
		if err != nil {
			return &CommandError{Op: "stand", Err: fmt.Errorf("robot did not report standing: %w", err)}
		}
		if state.Standing {
			log.Info("robot standing")
			return nil
		}
	}
}

// ExecutePlan walks the robot through the plan using the given submission
// strategy. Single pass/fail result: any submission error or completion
// timeout fails the whole plan, with no partial-progress recovery.
func (w *Walker) ExecutePlan(ctx context.Context, plan SquarePlan, strategy Strategy) error {
	if len(plan.Waypoints) == 0 {
		return &CommandError{Op: "walk", Err: fmt.Errorf("plan has no waypoints")}
	}

	log.Info("executing plan",
		"waypoints", len(plan.Waypoints),
		"total", plan.Total,
		"strategy", strategy.String(),
	)

	// Deadlines are absolute on the robot's clock.
	start := w.now().Add(w.ClockSkew)

	var id api.CommandID
	var err error
	switch strategy {
	case Batched:
		id, err = w.submitBatched(ctx, plan, start)
	default:
		id, err = w.submitIncremental(ctx, plan, start)
	}
	if err != nil {
		return err
	}

	log.Info("waiting for robot to reach final waypoint", "command_id", id)
	if err := w.waitForCommand(ctx, id, plan.Total+completionGrace); err != nil {
		return err
	}

	log.Info("plan complete")
	return nil
}

// submitIncremental sends each waypoint as its own command and returns the
// last command ID for completion blocking.
func (w *Walker) submitIncremental(ctx context.Context, plan SquarePlan, start time.Time) (api.CommandID, error) {
	var last api.CommandID
	for i, wp := range plan.Waypoints {
		req := api.TrajectoryPointRequest{
			Goal:      api.FromPose2D(wp.Pose),
			FrameName: plan.Frame,
			EndTime:   unixSeconds(start.Add(wp.After)),
			Params:    w.Params,
		}

		id, err := w.cmd.SubmitTrajectoryPoint(ctx, req)
		if err != nil {
			return "", &CommandError{Op: "walk", Err: fmt.Errorf("waypoint %d: %w", i, err)}
		}
		log.Debug("sent waypoint command", "index", i, "command_id", id)
		last = id

		if w.SubmitSpacing > 0 {
			time.Sleep(w.SubmitSpacing)
		}
	}
	return last, nil
}

// submitBatched packages the whole plan into one trajectory command.
func (w *Walker) submitBatched(ctx context.Context, plan SquarePlan, start time.Time) (api.CommandID, error) {
	points := make([]api.TrajectoryPoint, len(plan.Waypoints))
	for i, wp := range plan.Waypoints {
		points[i] = api.TrajectoryPoint{
			Pose:               api.FromPose2D(wp.Pose),
			TimeSinceReference: wp.After.Seconds(),
		}
	}

	req := api.TrajectoryRequest{
		Points:    points,
		FrameName: plan.Frame,
		EndTime:   unixSeconds(start.Add(plan.Total)),
		Params:    w.Params,
	}

	id, err := w.cmd.SubmitTrajectory(ctx, req)
	if err != nil {
		return "", &CommandError{Op: "walk", Err: err}
	}
	log.Debug("sent trajectory command", "points", len(points), "command_id", id)
	return id, nil
}

// waitForCommand polls command status until the robot reaches the goal,
// reports an error, or the timeout elapses.
func (w *Walker) waitForCommand(ctx context.Context, id api.CommandID, timeout time.Duration) error {
	deadline := time.Now().Add(timeout)
	for {
		status, err := w.cmd.Status(ctx, id)
		if err != nil {
			return &CommandError{Op: "walk", Err: err}
		}

		switch status {
		case api.CommandAtGoal:
			return nil
		case api.CommandError:
			return &CommandError{Op: "walk", Err: fmt.Errorf("robot reported command %s failed", id)}
		}

		if time.Now().After(deadline) {
			return &CommandError{Op: "walk", Err: fmt.Errorf("timed out after %s waiting for command %s", timeout, id)}
		}

		select {
		case <-ctx.Done():
			return &CommandError{Op: "walk", Err: ctx.Err()}
		case <-time.After(w.PollInterval):
		}
	}
}

// unixSeconds converts a time to fractional unix seconds for the wire.
func unixSeconds(t time.Time) float64 {
	return float64(t.UnixNano()) / float64(time.Second)
}
