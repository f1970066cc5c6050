package movement

import (
	"time"

	"github.com/teslashibe/go-spot/pkg/api"
	"github.com/teslashibe/go-spot/pkg/geom"
)

// PlanPoints is the number of waypoints in a square plan: start, three
// corners, and the return to start.
const PlanPoints = 5

// Waypoint is a target pose in the world frame plus the deadline, relative
// to plan start, by which the robot should reach it.
type Waypoint struct {
	Pose  geom.Pose2D
	After time.Duration
}

// SquarePlan is an ordered, closed sequence of waypoints tracing a square.
type SquarePlan struct {
	Waypoints []Waypoint
	Total     time.Duration
	Frame     string
}

// PlanSquare computes the waypoints for a closed square walk starting at
// the robot's current pose. Pure function: no I/O, deterministic.
//
// The square is laid out in the body frame as (0,0) -> (L,0) -> (L,L) ->
// (0,L) -> (0,0) and each corner is transformed into the world frame
// through origin. Headings look ahead: each vertex faces the next one.
// The final vertex's heading is reset to 0 (absolute forward) instead of
// continuing the loop direction; that asymmetry is existing behavior and
// is kept as is. Deadlines divide totalTime evenly across the vertices.
func PlanSquare(origin geom.Pose2D, sideLength float64, totalTime time.Duration) SquarePlan {
	offsets := [PlanPoints]geom.Vec2{
		{X: 0, Y: 0},
		{X: sideLength, Y: 0},
		{X: sideLength, Y: sideLength},
		{X: 0, Y: sideLength},
		{X: 0, Y: 0},
	}

	waypoints := make([]Waypoint, PlanPoints)
	for i, offset := range offsets {
		world := origin.Apply(offset)

		heading := 0.0
		if i < PlanPoints-1 {
			heading = geom.Heading(offset, offsets[i+1])
		}

		waypoints[i] = Waypoint{
			Pose:  geom.Pose2D{X: world.X, Y: world.Y, Heading: heading},
			After: totalTime * time.Duration(i+1) / PlanPoints,
		}
	}

	return SquarePlan{
		Waypoints: waypoints,
		Total:     totalTime,
		Frame:     api.VisionFrameName,
	}
}
