package flock

import (
	"fmt"
	"math"
	"runtime"
	"sync"

	"github.com/lao-tseu-is-alive/go-flocking-simulation/pkg/geometry"
)

// World is the sole owner of per-agent state. Settings and Bounds stay owned
// by the host and are passed into every Advance call by reference, so the
// host can mutate them between ticks (UI sliders) and the core simply
// re-reads them; there is no hidden shared configuration.
type World struct {
	boids []*Boid

	// Scratch buffers reused across ticks to keep the hot loop allocation-free.
	snapshot []AgentState
	forces   []geometry.Vector2D
}

// NewWorld creates a world populated with n randomly placed boids.
func NewWorld(n int, params BoidParams, bounds *Bounds) (*World, error) {
	w := &World{}
	if err := w.Respawn(n, params, bounds); err != nil {
		return nil, err
	}
	return w, nil
}

// Respawn replaces the whole population with n fresh randomized boids.
func (w *World) Respawn(n int, params BoidParams, bounds *Bounds) error {
	if n <= 0 {
		return fmt.Errorf("population size must be > 0, got %d", n)
	}
	if err := bounds.Validate(); err != nil {
		return err
	}
	boids := make([]*Boid, n)
	for i := range boids {
		b, err := NewRandomBoid(bounds, params)
		if err != nil {
			return fmt.Errorf("spawning boid %d: %w", i, err)
		}
		boids[i] = b
	}
	w.boids = boids
	return nil
}

// Boids exposes the live population for inspection (rendering, stats).
// Callers must not mutate it while Advance is running.
func (w *World) Boids() []*Boid {
	return w.boids
}

// Advance runs one simulation tick: snapshot, per-agent force computation
// over the snapshot, then integration and boundary handling. The two-phase
// split guarantees every agent's neighbor query sees start-of-tick state, so
// iteration order cannot bias the result. The read phase fans out across
// goroutines writing disjoint slots of the force buffer; the write phase only
// starts after the WaitGroup barrier.
//
// dt is elapsed seconds since the previous tick; a non-positive dt is a no-op.
// goal is an optional already-resolved target point in world coordinates.
func (w *World) Advance(dt float64, s *Settings, bounds *Bounds, goal *geometry.Vector2D) {
	if dt <= 0 {
		return
	}

	w.buildSnapshot()
	w.computeForces(s, goal)

	for i, b := range w.boids {
		integrate(b, w.forces[i], dt, s, bounds)
	}
}

func (w *World) buildSnapshot() {
	n := len(w.boids)
	if cap(w.snapshot) < n {
		w.snapshot = make([]AgentState, n)
		w.forces = make([]geometry.Vector2D, n)
	}
	w.snapshot = w.snapshot[:n]
	w.forces = w.forces[:n]
	for i, b := range w.boids {
		w.snapshot[i] = AgentState{Pos: b.Pos, Vel: b.Vel}
	}
}

// computeForces fills w.forces[i] for every agent from the immutable
// snapshot. Each goroutine owns a disjoint index range, so no locks are
// needed.
func (w *World) computeForces(s *Settings, goal *geometry.Vector2D) {
	n := len(w.boids)
	workers := runtime.NumCPU()
	if workers > n {
		workers = n
	}
	if workers <= 1 {
		for i := range w.boids {
			w.forces[i] = w.forceFor(i, s, goal)
		}
		return
	}

	chunk := (n + workers - 1) / workers
	var wg sync.WaitGroup
	for start := 0; start < n; start += chunk {
		end := min(start+chunk, n)
		wg.Add(1)
		go func(start, end int) {
			defer wg.Done()
			for i := start; i < end; i++ {
				w.forces[i] = w.forceFor(i, s, goal)
			}
		}(start, end)
	}
	wg.Wait()
}

// forceFor computes the net steering force for one agent: the three weighted
// flocking forces combined through a desired-velocity step and clamped to
// MaxForce, plus the goal force which carries its own clamp (2x headroom
// outside the arrival radius, see Arrive).
func (w *World) forceFor(i int, s *Settings, goal *geometry.Vector2D) geometry.Vector2D {
	me := w.snapshot[i]
	b := w.boids[i]
	ns := ClassifyNeighbors(i, w.snapshot, s)

	sep := Separation(me.Pos, ns.Separation).Mul(s.SeparationWeight)
	ali := Alignment(me.Vel, ns.Alignment).Mul(s.AlignmentWeight)
	coh := Cohesion(me.Pos, ns.Cohesion).Mul(s.CohesionWeight)

	desired := sep.Add(ali).Add(coh).Normalize().Mul(b.MaxSpeed)
	force := desired.Sub(me.Vel).ClampLength(b.MaxForce)

	if goal != nil && s.GoalAttractionWeight > 0 {
		arrive := Arrive(me.Pos, me.Vel, *goal, b.MaxSpeed, b.MaxForce, s.GoalArrivalRadius)
		force = force.Add(arrive.Mul(s.GoalAttractionWeight))
	}
	return force
}

// integrate advances one agent: force to acceleration through mass, velocity
// accumulation, hard speed cap, position update, heading. The border
// repulsion impulse under the soft policy bypasses the force clamp but lands
// before the speed cap, so |velocity| <= MaxSpeed still holds at the end of
// every tick.
func integrate(b *Boid, force geometry.Vector2D, dt float64, s *Settings, bounds *Bounds) {
	accel := force.Mul(1 / b.Mass)
	b.Vel = b.Vel.Add(accel.Mul(dt))
	if s.Boundary == BoundarySoftRepulsion {
		b.Vel = b.Vel.Add(BorderRepulsion(b.Pos, bounds, s).Mul(dt))
	}
	b.Vel = b.Vel.ClampLength(b.MaxSpeed)
	b.Pos = b.Pos.Add(b.Vel.Mul(dt))

	if b.Vel.LenSqr() > 0 {
		b.Heading = b.Vel.Angle() - math.Pi/2
	}

	if s.Boundary == BoundaryWrap {
		wrapAround(b, bounds)
	}
}

// wrapAround teleports an agent that left the world rectangle to the opposite
// edge. Each axis is handled independently and velocity is untouched.
func wrapAround(b *Boid, bounds *Bounds) {
	halfW := bounds.Width / 2
	halfH := bounds.Height / 2
	if b.Pos.X > halfW {
		b.Pos.X = -halfW
	} else if b.Pos.X < -halfW {
		b.Pos.X = halfW
	}
	if b.Pos.Y > halfH {
		b.Pos.Y = -halfH
	} else if b.Pos.Y < -halfH {
		b.Pos.Y = halfH
	}
}
