package flock

import (
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/lao-tseu-is-alive/go-flocking-simulation/pkg/geometry"
)

// Reference physical constants for a spawned population.
const (
	DefaultMass     = 1.0
	DefaultMaxSpeed = 100.0
	DefaultMaxForce = 1000.0

	// initialSpeed is the magnitude of the randomized spawn velocity.
	initialSpeed = 50.0
)

// BoidParams are the physical constants shared by a spawned population.
type BoidParams struct {
	Mass     float64
	MaxSpeed float64
	MaxForce float64
}

// DefaultBoidParams returns the reference physics tuning.
func DefaultBoidParams() BoidParams {
	return BoidParams{Mass: DefaultMass, MaxSpeed: DefaultMaxSpeed, MaxForce: DefaultMaxForce}
}

// Validate rejects parameters the integrator cannot work with. A non-positive
// mass would make force-to-acceleration conversion divide by zero or flip
// sign, so it is a construction-time error, never tolerated at tick time.
func (p BoidParams) Validate() error {
	if p.Mass <= 0 {
		return fmt.Errorf("boid mass must be > 0, got %g", p.Mass)
	}
	if p.MaxSpeed <= 0 {
		return fmt.Errorf("boid max speed must be > 0, got %g", p.MaxSpeed)
	}
	if p.MaxForce <= 0 {
		return fmt.Errorf("boid max force must be > 0, got %g", p.MaxForce)
	}
	return nil
}

// Boid is one simulated agent. Pos and Vel are world units and world units
// per second; both are mutated in place by the integrator every tick.
// Heading is derived from velocity with a -90 degree offset so that a sprite
// drawn pointing "up" faces along the motion; it keeps its last value while
// the velocity is exactly zero.
type Boid struct {
	Pos     geometry.Vector2D
	Vel     geometry.Vector2D
	Heading float64

	Mass     float64
	MaxSpeed float64
	MaxForce float64
}

// NewBoid creates a boid after validating its physical constants.
func NewBoid(pos, vel geometry.Vector2D, p BoidParams) (*Boid, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	b := &Boid{
		Pos:      pos,
		Vel:      vel,
		Mass:     p.Mass,
		MaxSpeed: p.MaxSpeed,
		MaxForce: p.MaxForce,
	}
	if vel.LenSqr() > 0 {
		b.Heading = vel.Angle() - math.Pi/2
	}
	return b, nil
}

// NewRandomBoid creates a boid with a random position inside the world
// rectangle and a random heading at the reference spawn speed.
func NewRandomBoid(bounds *Bounds, p BoidParams) (*Boid, error) {
	pos := geometry.Vector2D{
		X: (rand.Float64() - 0.5) * bounds.Width,
		Y: (rand.Float64() - 0.5) * bounds.Height,
	}
	vel := geometry.NewVectorPolar(initialSpeed, rand.Float64()*2*math.Pi)
	return NewBoid(pos, vel, p)
}

// Speed returns the current velocity magnitude.
func (b *Boid) Speed() float64 {
	return b.Vel.Len()
}
