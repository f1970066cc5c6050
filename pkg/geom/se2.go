// Package geom provides planar (SE2) pose math for robot trajectories.
// Waypoints are planned as body-relative offsets and transformed into a
// world-fixed frame so they stay valid while the robot moves.
package geom

import "math"

// Vec2 is a 2D point or offset in meters.
type Vec2 struct {
	X float64
	Y float64
}

// Add returns v + other.
func (v Vec2) Add(other Vec2) Vec2 {
	return Vec2{X: v.X + other.X, Y: v.Y + other.Y}
}

// Sub returns v - other.
func (v Vec2) Sub(other Vec2) Vec2 {
	return Vec2{X: v.X - other.X, Y: v.Y - other.Y}
}

// Norm returns the Euclidean length of v.
func (v Vec2) Norm() float64 {
	return math.Hypot(v.X, v.Y)
}

// Pose2D is a planar pose: position plus heading, in radians.
// The frame it is expressed in is tracked by the caller.
type Pose2D struct {
	X       float64
	Y       float64
	Heading float64
}

// Position returns the translation part of the pose.
func (p Pose2D) Position() Vec2 {
	return Vec2{X: p.X, Y: p.Y}
}

// Apply transforms a point from the pose's local (body) frame into the
// frame the pose itself is expressed in: rotate by Heading, then translate.
func (p Pose2D) Apply(v Vec2) Vec2 {
	sin, cos := math.Sincos(p.Heading)
	return Vec2{
		X: p.X + cos*v.X - sin*v.Y,
		Y: p.Y + sin*v.X + cos*v.Y,
	}
}

// Compose returns the pose obtained by applying other in p's local frame.
func (p Pose2D) Compose(other Pose2D) Pose2D {
	pos := p.Apply(other.Position())
	return Pose2D{X: pos.X, Y: pos.Y, Heading: WrapAngle(p.Heading + other.Heading)}
}

// Inverse returns the pose q such that q.Apply(p.Apply(v)) == v.
func (p Pose2D) Inverse() Pose2D {
	sin, cos := math.Sincos(p.Heading)
	return Pose2D{
		X:       -(cos*p.X + sin*p.Y),
		Y:       -(-sin*p.X + cos*p.Y),
		Heading: -p.Heading,
	}
}

// Heading returns the direction of travel from one point to the next.
func Heading(from, to Vec2) float64 {
	return math.Atan2(to.Y-from.Y, to.X-from.X)
}

// WrapAngle normalizes an angle to (-pi, pi].
func WrapAngle(a float64) float64 {
	for a > math.Pi {
		a -= 2 * math.Pi
	}
	for a <= -math.Pi {
		a += 2 * math.Pi
	}
	return a
}
