package flock

import (
	"math"
	"testing"

	"github.com/lao-tseu-is-alive/go-flocking-simulation/pkg/geometry"
)

const tickDt = 1.0 / 60.0

// worldWith builds a world around hand-placed boids, bypassing the random
// spawner so tests are deterministic.
func worldWith(boids ...*Boid) *World {
	return &World{boids: boids}
}

func mustBoid(t *testing.T, pos, vel geometry.Vector2D, p BoidParams) *Boid {
	t.Helper()
	b, err := NewBoid(pos, vel, p)
	if err != nil {
		t.Fatalf("NewBoid: %v", err)
	}
	return b
}

func TestAdvance_SpeedCapHolds(t *testing.T) {
	s := DefaultSettings()
	bounds := DefaultBounds()
	w, err := NewWorld(50, DefaultBoidParams(), bounds)
	if err != nil {
		t.Fatalf("NewWorld: %v", err)
	}

	goal := geometry.Vector2D{X: 100, Y: -50}
	for i := 0; i < 120; i++ {
		w.Advance(tickDt, s, bounds, &goal)
	}

	for i, b := range w.Boids() {
		if b.Speed() > b.MaxSpeed+1e-9 {
			t.Errorf("boid %d speed %v exceeds max %v", i, b.Speed(), b.MaxSpeed)
		}
	}
}

func TestAdvance_NonPositiveDtIsNoop(t *testing.T) {
	s := DefaultSettings()
	bounds := DefaultBounds()
	b := mustBoid(t, geometry.Vector2D{X: 1, Y: 2}, geometry.Vector2D{X: 10, Y: 0}, DefaultBoidParams())
	w := worldWith(b)

	before := *b
	w.Advance(0, s, bounds, nil)
	w.Advance(-0.5, s, bounds, nil)
	if *b != before {
		t.Errorf("boid changed under non-positive dt: %+v vs %+v", *b, before)
	}
}

func TestWrapAround(t *testing.T) {
	bounds := &Bounds{Width: 700, Height: 700}
	tests := []struct {
		name string
		pos  geometry.Vector2D
		want geometry.Vector2D
	}{
		{"past right edge", geometry.Vector2D{X: 350.1, Y: 42}, geometry.Vector2D{X: -350, Y: 42}},
		{"past left edge", geometry.Vector2D{X: -350.1, Y: 42}, geometry.Vector2D{X: 350, Y: 42}},
		{"past bottom edge", geometry.Vector2D{X: 13, Y: -351}, geometry.Vector2D{X: 13, Y: 350}},
		{"inside untouched", geometry.Vector2D{X: 13, Y: 42}, geometry.Vector2D{X: 13, Y: 42}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := &Boid{Pos: tt.pos}
			wrapAround(b, bounds)
			if !b.Pos.Eq(tt.want) {
				t.Errorf("wrapAround(%v) = %v; want %v", tt.pos, b.Pos, tt.want)
			}
		})
	}
}

func TestAdvance_WrapPolicyAppliesAfterIntegration(t *testing.T) {
	s := DefaultSettings()
	s.Boundary = BoundaryWrap
	bounds := &Bounds{Width: 700, Height: 700}

	// A near-zero max force keeps the lone boid from braking itself, so it
	// coasts across the edge in one tick. The y coordinate must be untouched
	// by the x wrap.
	params := BoidParams{Mass: 1, MaxSpeed: 100, MaxForce: 1e-9}
	b := mustBoid(t, geometry.Vector2D{X: 349.5, Y: 10}, geometry.Vector2D{X: 60, Y: 0}, params)
	w := worldWith(b)

	w.Advance(tickDt, s, bounds, nil)
	if b.Pos.X != -350 {
		t.Errorf("x = %v; want wrapped to -350", b.Pos.X)
	}
	if b.Pos.Y != 10 {
		t.Errorf("y = %v; want untouched 10", b.Pos.Y)
	}
	if !b.Vel.Eq(geometry.Vector2D{X: 60, Y: 0}) {
		t.Errorf("wrap must not touch velocity, got %v", b.Vel)
	}
}

func TestAdvance_SoftRepulsionPushesInward(t *testing.T) {
	s := DefaultSettings()
	s.Boundary = BoundarySoftRepulsion
	bounds := &Bounds{Width: 700, Height: 700}

	b := mustBoid(t, geometry.Vector2D{X: -340, Y: 0}, geometry.Vector2D{}, DefaultBoidParams())
	w := worldWith(b)

	w.Advance(tickDt, s, bounds, nil)
	if b.Vel.X <= 0 {
		t.Errorf("velocity x = %v; want pushed inward (positive)", b.Vel.X)
	}
	if b.Pos.X < -350 || b.Pos.X > -330 {
		t.Errorf("soft policy must not teleport, got x = %v", b.Pos.X)
	}
}

func TestAdvance_GoalSeekingScenario(t *testing.T) {
	// Single agent, zero neighbors, goal at (100, 0): full speed approach,
	// deceleration only once inside the 30-unit arrival radius.
	s := DefaultSettings()
	s.GoalAttractionWeight = 1.0
	s.GoalArrivalRadius = 30
	bounds := DefaultBounds()
	params := BoidParams{Mass: 1, MaxSpeed: 100, MaxForce: 1000}

	b := mustBoid(t, geometry.Vector2D{}, geometry.Vector2D{}, params)
	w := worldWith(b)
	goal := geometry.Vector2D{X: 100, Y: 0}

	w.Advance(tickDt, s, bounds, &goal)
	if b.Vel.X <= 0 || b.Vel.Y != 0 {
		t.Fatalf("first tick velocity = %v; want along +X", b.Vel)
	}

	minDist := math.MaxFloat64
	for i := 0; i < 1200; i++ {
		w.Advance(tickDt, s, bounds, &goal)
		if d := b.Pos.DistanceTo(goal); d < minDist {
			minDist = d
		}
		if b.Speed() > params.MaxSpeed+1e-9 {
			t.Fatalf("tick %d: speed %v exceeds max", i, b.Speed())
		}
	}
	if minDist >= 30 {
		t.Errorf("agent never entered the arrival radius, closest approach %v", minDist)
	}
}

func TestAdvance_NoGoalMeansNoGoalForce(t *testing.T) {
	s := DefaultSettings()
	bounds := DefaultBounds()

	// Lone stationary boid, no goal: the flocking steer is zero (empty
	// buckets, zero velocity), so nothing should move.
	b := mustBoid(t, geometry.Vector2D{X: 5, Y: 5}, geometry.Vector2D{}, DefaultBoidParams())
	w := worldWith(b)

	w.Advance(tickDt, s, bounds, nil)
	if !b.Vel.Eq(geometry.Vector2D{}) || !b.Pos.Eq(geometry.Vector2D{X: 5, Y: 5}) {
		t.Errorf("lone stationary boid moved: pos %v vel %v", b.Pos, b.Vel)
	}
}

func TestAdvance_ZeroVelocityKeepsHeading(t *testing.T) {
	s := DefaultSettings()
	bounds := DefaultBounds()

	b := mustBoid(t, geometry.Vector2D{}, geometry.Vector2D{}, DefaultBoidParams())
	b.Heading = 1.23
	w := worldWith(b)

	w.Advance(tickDt, s, bounds, nil)
	if b.Heading != 1.23 {
		t.Errorf("heading changed with zero velocity: %v", b.Heading)
	}
}

func TestAdvance_HeadingFollowsVelocity(t *testing.T) {
	s := DefaultSettings()
	bounds := DefaultBounds()
	params := BoidParams{Mass: 1, MaxSpeed: 100, MaxForce: 1e-9}

	// Moving straight up: heading is atan2(vy,vx) - Pi/2 = 0.
	b := mustBoid(t, geometry.Vector2D{}, geometry.Vector2D{X: 0, Y: 50}, params)
	w := worldWith(b)

	w.Advance(tickDt, s, bounds, nil)
	if math.Abs(b.Heading) > 1e-9 {
		t.Errorf("heading = %v; want 0 for upward motion", b.Heading)
	}
}

func TestAdvance_OrderIndependence(t *testing.T) {
	// Processing order must not bias the result: the same population stored
	// in reverse order has to produce the same per-agent state, because all
	// forces are computed from the start-of-tick snapshot.
	s := DefaultSettings()
	bounds := DefaultBounds()
	params := DefaultBoidParams()

	positions := []geometry.Vector2D{
		{X: 0, Y: 0}, {X: 10, Y: 5}, {X: -8, Y: 12}, {X: 30, Y: -20}, {X: -15, Y: -5},
	}
	velocities := []geometry.Vector2D{
		{X: 20, Y: 0}, {X: 0, Y: 20}, {X: -15, Y: 10}, {X: 5, Y: 5}, {X: 10, Y: -10},
	}

	n := len(positions)
	fwd := make([]*Boid, n)
	rev := make([]*Boid, n)
	for i := 0; i < n; i++ {
		fwd[i] = mustBoid(t, positions[i], velocities[i], params)
		rev[n-1-i] = mustBoid(t, positions[i], velocities[i], params)
	}
	w1 := worldWith(fwd...)
	w2 := worldWith(rev...)

	for tick := 0; tick < 10; tick++ {
		w1.Advance(tickDt, s, bounds, nil)
		w2.Advance(tickDt, s, bounds, nil)
	}

	for i := 0; i < n; i++ {
		a, b := fwd[i], rev[n-1-i]
		if !a.Pos.Eq(b.Pos) || !a.Vel.Eq(b.Vel) {
			t.Errorf("agent %d diverged across orderings: pos %v vs %v, vel %v vs %v",
				i, a.Pos, b.Pos, a.Vel, b.Vel)
		}
	}
}

func TestRespawn(t *testing.T) {
	bounds := DefaultBounds()
	w, err := NewWorld(10, DefaultBoidParams(), bounds)
	if err != nil {
		t.Fatalf("NewWorld: %v", err)
	}
	if err := w.Respawn(25, DefaultBoidParams(), bounds); err != nil {
		t.Fatalf("Respawn: %v", err)
	}
	if len(w.Boids()) != 25 {
		t.Errorf("population = %d; want 25", len(w.Boids()))
	}
	for i, b := range w.Boids() {
		if math.Abs(b.Pos.X) > bounds.Width/2 || math.Abs(b.Pos.Y) > bounds.Height/2 {
			t.Errorf("boid %d spawned outside bounds: %v", i, b.Pos)
		}
	}

	if err := w.Respawn(0, DefaultBoidParams(), bounds); err == nil {
		t.Error("Respawn(0) should fail")
	}
}

func BenchmarkAdvance500(b *testing.B) {
	s := DefaultSettings()
	bounds := DefaultBounds()
	w, err := NewWorld(500, DefaultBoidParams(), bounds)
	if err != nil {
		b.Fatalf("NewWorld: %v", err)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		w.Advance(tickDt, s, bounds, nil)
	}
}
