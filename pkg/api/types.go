package api

import "github.com/teslashibe/go-spot/pkg/geom"

// VisionFrameName is the world-fixed frame trajectory goals are expressed in.
const VisionFrameName = "vision"

// SE2Pose is the wire form of a planar pose.
type SE2Pose struct {
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Angle float64 `json:"angle"`
}

// Pose2D converts the wire pose to a geom.Pose2D.
func (p SE2Pose) Pose2D() geom.Pose2D {
	return geom.Pose2D{X: p.X, Y: p.Y, Heading: p.Angle}
}

// FromPose2D converts a geom.Pose2D to its wire form.
func FromPose2D(p geom.Pose2D) SE2Pose {
	return SE2Pose{X: p.X, Y: p.Y, Angle: p.Heading}
}

// RobotState is a snapshot of the robot reported by the state service.
type RobotState struct {
	VisionTformBody SE2Pose `json:"vision_tform_body"`
	MotorsPoweredOn bool    `json:"motors_powered_on"`
	Standing        bool    `json:"standing"`
	BatteryPercent  float64 `json:"battery_percent"`
}

// Lease is a mutual-exclusion token for commanding the robot. Only the
// holder's commands are accepted; it must be returned when done.
type Lease struct {
	Resource string `json:"resource"`
	Token    string `json:"token"`
}

// EstopStatus reports the robot's emergency-stop state.
type EstopStatus struct {
	Estopped bool   `json:"estopped"`
	Level    string `json:"level,omitempty"`
}

// CommandID identifies a submitted motion command.
type CommandID string

// CommandStatus is the robot-reported state of a motion command.
type CommandStatus string

// Command statuses reported by the daemon.
const (
	CommandProcessing CommandStatus = "processing"
	CommandAtGoal     CommandStatus = "at_goal"
	CommandError      CommandStatus = "error"
)

// MobilityParams caps how fast the robot moves while tracking a goal.
type MobilityParams struct {
	MaxLinearVelocity  float64 `json:"max_linear_velocity"`
	MaxAngularVelocity float64 `json:"max_angular_velocity"`
}

// TrajectoryPointRequest submits a single timed SE2 goal.
type TrajectoryPointRequest struct {
	Goal      SE2Pose        `json:"goal"`
	FrameName string         `json:"frame_name"`
	EndTime   float64        `json:"end_time_secs"` // unix seconds
	Params    MobilityParams `json:"params"`
	RequestID string         `json:"request_id,omitempty"`
}

// TrajectoryPoint is one pose in a multi-point trajectory, timed relative
// to the trajectory's reference time.
type TrajectoryPoint struct {
	Pose               SE2Pose `json:"pose"`
	TimeSinceReference float64 `json:"time_since_reference_secs"`
}

// TrajectoryRequest submits a full multi-point SE2 trajectory at once.
type TrajectoryRequest struct {
	Points    []TrajectoryPoint `json:"points"`
	FrameName string            `json:"frame_name"`
	EndTime   float64           `json:"end_time_secs"` // unix seconds
	Params    MobilityParams    `json:"params"`
	RequestID string            `json:"request_id,omitempty"`
}
