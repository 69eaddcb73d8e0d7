package flock

import (
	"math"

	"github.com/lao-tseu-is-alive/go-flocking-simulation/pkg/geometry"
)

// The three base forces return a unit-or-zero vector: the accumulated raw
// vector is normalized at the end, discarding its magnitude. A cluster of 1
// or 50 aligned neighbors therefore produces the same unit-length
// contribution before weighting; only separation benefits from per-neighbor
// distance weighting before the final normalize. This is a known
// characteristic of the reference behavior, kept as is.

// Separation pushes the agent away from each separation-neighbor with
// inverse-linear distance weighting: closer neighbors repel more strongly.
func Separation(pos geometry.Vector2D, neighbors []AgentState) geometry.Vector2D {
	var steer geometry.Vector2D
	for _, n := range neighbors {
		diff := pos.Sub(n.Pos)
		dist := diff.Len()
		if dist > 0 {
			steer = steer.Add(diff.Normalize().Mul(1 / dist))
		}
	}
	return steer.Normalize()
}

// Alignment pulls the agent's velocity toward the average velocity of its
// alignment-neighbors. Empty list yields the zero vector.
func Alignment(vel geometry.Vector2D, neighbors []AgentState) geometry.Vector2D {
	if len(neighbors) == 0 {
		return geometry.Vector2D{}
	}
	var sum geometry.Vector2D
	for _, n := range neighbors {
		sum = sum.Add(n.Vel)
	}
	avg := sum.Mul(1 / float64(len(neighbors)))
	return avg.Sub(vel).Normalize()
}

// Cohesion pulls the agent toward the centroid of its cohesion-neighbors.
// Empty list yields the zero vector.
func Cohesion(pos geometry.Vector2D, neighbors []AgentState) geometry.Vector2D {
	if len(neighbors) == 0 {
		return geometry.Vector2D{}
	}
	var sum geometry.Vector2D
	for _, n := range neighbors {
		sum = sum.Add(n.Pos)
	}
	center := sum.Mul(1 / float64(len(neighbors)))
	return center.Sub(pos).Normalize()
}

// arriveDeadZone is the distance below which the goal force is zeroed to
// avoid division instability right on top of the target.
const arriveDeadZone = 0.001

// Arrive computes the goal-seeking steering force with an arrival ramp.
// Outside arrivalRadius the desired speed is the full maxSpeed and the clamp
// bound is doubled so the agent can close large distances against its own
// max-force limit; inside, the desired speed decays as
// maxSpeed * sqrt(distance/arrivalRadius), a non-linear slow-down that reads
// smoother than a linear ease-out.
func Arrive(pos, vel, target geometry.Vector2D, maxSpeed, maxForce, arrivalRadius float64) geometry.Vector2D {
	toTarget := target.Sub(pos)
	dist := toTarget.Len()
	if dist < arriveDeadZone {
		return geometry.Vector2D{}
	}

	speed := maxSpeed
	if dist < arrivalRadius {
		speed = maxSpeed * math.Sqrt(dist/arrivalRadius)
	}
	multiplier := 1.0
	if dist > arrivalRadius {
		multiplier = 2.0
	}

	desired := toTarget.Normalize().Mul(speed)
	return desired.Sub(vel).ClampLength(maxForce * multiplier)
}

// BorderRepulsion returns the soft-edge force for an agent near the world
// border: for each edge closer than BorderDistance, a component directed
// inward whose magnitude ramps linearly from 0 at BorderDistance to
// BorderRepulsionStrength at the edge itself. The caller applies it as a
// velocity impulse scaled by elapsed time, outside the max-force clamp.
func BorderRepulsion(pos geometry.Vector2D, bounds *Bounds, s *Settings) geometry.Vector2D {
	var force geometry.Vector2D
	halfW := bounds.Width / 2
	halfH := bounds.Height / 2

	if d := pos.X + halfW; d < s.BorderDistance {
		force.X += (1 - d/s.BorderDistance) * s.BorderRepulsionStrength
	}
	if d := halfW - pos.X; d < s.BorderDistance {
		force.X -= (1 - d/s.BorderDistance) * s.BorderRepulsionStrength
	}
	if d := pos.Y + halfH; d < s.BorderDistance {
		force.Y += (1 - d/s.BorderDistance) * s.BorderRepulsionStrength
	}
	if d := halfH - pos.Y; d < s.BorderDistance {
		force.Y -= (1 - d/s.BorderDistance) * s.BorderRepulsionStrength
	}
	return force
}
