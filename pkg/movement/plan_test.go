package movement

import (
	"math"
	"reflect"
	"testing"
	"time"

	"github.com/teslashibe/go-spot/pkg/geom"
)

const floatTolerance = 1e-9

func floatEquals(a, b float64) bool {
	return math.Abs(a-b) < floatTolerance
}

func TestPlanSquare_PositionsRelativeToOrigin(t *testing.T) {
	origin := geom.Pose2D{X: 3.2, Y: -1.7, Heading: 0.7}

	for _, side := range []float64{0.25, 1.0, 2.5} {
		plan := PlanSquare(origin, side, 20*time.Second)

		if len(plan.Waypoints) != PlanPoints {
			t.Fatalf("side %v: got %d waypoints, want %d", side, len(plan.Waypoints), PlanPoints)
		}

		want := []geom.Vec2{
			{X: 0, Y: 0},
			{X: side, Y: 0},
			{X: side, Y: side},
			{X: 0, Y: side},
			{X: 0, Y: 0},
		}

		inv := origin.Inverse()
		for i, wp := range plan.Waypoints {
			rel := inv.Apply(wp.Pose.Position())
			if !floatEquals(rel.X, want[i].X) || !floatEquals(rel.Y, want[i].Y) {
				t.Errorf("side %v waypoint %d: relative position %+v, want %+v", side, i, rel, want[i])
			}
		}
	}
}

func TestPlanSquare_IsClosed(t *testing.T) {
	plan := PlanSquare(geom.Pose2D{X: 1, Y: 2, Heading: -0.3}, 1.5, 20*time.Second)

	first := plan.Waypoints[0].Pose
	last := plan.Waypoints[PlanPoints-1].Pose

	if first.X != last.X || first.Y != last.Y {
		t.Errorf("square is not closed: first (%v, %v), last (%v, %v)",
			first.X, first.Y, last.X, last.Y)
	}
}

func TestPlanSquare_Headings(t *testing.T) {
	plan := PlanSquare(geom.Pose2D{}, 1.0, 20*time.Second)

	// Look-ahead headings for a counterclockwise unit square.
	want := []float64{0, math.Pi / 2, math.Pi, -math.Pi / 2}
	for i, w := range want {
		got := plan.Waypoints[i].Pose.Heading
		if !floatEquals(got, w) {
			t.Errorf("waypoint %d heading = %v, want %v", i, got, w)
		}
	}

	// Final vertex faces absolute forward, not the loop direction.
	if got := plan.Waypoints[PlanPoints-1].Pose.Heading; got != 0 {
		t.Errorf("final heading = %v, want exactly 0", got)
	}
}

func TestPlanSquare_Deadlines(t *testing.T) {
	total := 20 * time.Second
	plan := PlanSquare(geom.Pose2D{}, 1.0, total)

	want := []time.Duration{
		4 * time.Second,
		8 * time.Second,
		12 * time.Second,
		16 * time.Second,
		20 * time.Second,
	}

	prev := time.Duration(0)
	for i, wp := range plan.Waypoints {
		if wp.After != want[i] {
			t.Errorf("waypoint %d deadline = %v, want %v", i, wp.After, want[i])
		}
		if wp.After <= prev {
			t.Errorf("waypoint %d deadline %v is not after previous %v", i, wp.After, prev)
		}
		prev = wp.After
	}

	if last := plan.Waypoints[PlanPoints-1].After; last != total {
		t.Errorf("last deadline = %v, want %v", last, total)
	}
}

func TestPlanSquare_Deterministic(t *testing.T) {
	origin := geom.Pose2D{X: -4, Y: 9.5, Heading: 2.1}

	a := PlanSquare(origin, 1.3, 17*time.Second)
	b := PlanSquare(origin, 1.3, 17*time.Second)

	if !reflect.DeepEqual(a, b) {
		t.Errorf("identical inputs produced different plans:\n%+v\n%+v", a, b)
	}
}
