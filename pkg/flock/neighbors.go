package flock

import (
	"math"

	"github.com/lao-tseu-is-alive/go-flocking-simulation/pkg/geometry"
)

// AgentState is one entry of the read-only tick snapshot: position and
// velocity as they stood at the start of the tick.
type AgentState struct {
	Pos geometry.Vector2D
	Vel geometry.Vector2D
}

// Neighbors buckets the agents one boid perceives, per steering rule.
// The radii are independent so the same agent may appear in several buckets.
type Neighbors struct {
	Separation []AgentState
	Alignment  []AgentState
	Cohesion   []AgentState
}

// InView reports whether a point at otherPos is inside the view cone of an
// agent at pos facing dir. dir is expected to be unit length or zero: with a
// zero direction the dot product is always zero and acos yields Pi/2, so a
// stationary agent effectively keeps a 90-degree half-cone regardless of
// bearing. That degenerate fallback is deliberate, matching the reference
// behavior.
func InView(pos, dir, otherPos geometry.Vector2D, viewAngle float64) bool {
	toOther := otherPos.Sub(pos).Normalize()
	d := dir.Dot(toOther)
	// Floating-point drift can push |d| past 1, and acos of that is NaN,
	// which would silently hide the pair forever. Clamp before acos.
	if d > 1 {
		d = 1
	} else if d < -1 {
		d = -1
	}
	return math.Acos(d) <= viewAngle/2
}

// ClassifyNeighbors scans the snapshot and buckets every agent that is both
// visible to snapshot[self] and within the corresponding radius. Pure
// function of the snapshot, no side effects; O(n) per agent.
func ClassifyNeighbors(self int, snapshot []AgentState, s *Settings) Neighbors {
	me := snapshot[self]
	dir := me.Vel.Normalize()

	var ns Neighbors
	for i := range snapshot {
		if i == self {
			continue
		}
		other := snapshot[i]
		if !InView(me.Pos, dir, other.Pos, s.ViewAngle) {
			continue
		}
		dist := me.Pos.DistanceTo(other.Pos)
		if dist < s.SeparationRadius {
			ns.Separation = append(ns.Separation, other)
		}
		if dist < s.AlignmentRadius {
			ns.Alignment = append(ns.Alignment, other)
		}
		if dist < s.CohesionRadius {
			ns.Cohesion = append(ns.Cohesion, other)
		}
	}
	return ns
}
