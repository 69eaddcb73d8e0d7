package flock

import (
	"errors"
	"fmt"
)

// BoundaryPolicy selects what happens to agents at the world edge.
// The two variants are mutually exclusive, never composed.
type BoundaryPolicy int

const (
	// BoundaryWrap teleports an agent to the opposite edge, per axis.
	BoundaryWrap BoundaryPolicy = iota
	// BoundarySoftRepulsion pushes agents inward before they reach the edge.
	// Agents can still overshoot under extreme velocity, which is accepted.
	BoundarySoftRepulsion
)

func (p BoundaryPolicy) String() string {
	switch p {
	case BoundaryWrap:
		return "wrap"
	case BoundarySoftRepulsion:
		return "soft"
	default:
		return fmt.Sprintf("BoundaryPolicy(%d)", int(p))
	}
}

// ParseBoundaryPolicy converts a config string into a BoundaryPolicy.
func ParseBoundaryPolicy(s string) (BoundaryPolicy, error) {
	switch s {
	case "wrap":
		return BoundaryWrap, nil
	case "soft":
		return BoundarySoftRepulsion, nil
	default:
		return 0, fmt.Errorf("unknown boundary policy %q (want \"wrap\" or \"soft\")", s)
	}
}

// Settings controls the steering rules for the whole population.
// The host owns it and may mutate it between ticks (e.g. from UI sliders);
// the core only reads it during Advance. The three radii are independent,
// an agent can land in several buckets at once.
type Settings struct {
	SeparationRadius float64
	AlignmentRadius  float64
	CohesionRadius   float64

	SeparationWeight float64
	AlignmentWeight  float64
	CohesionWeight   float64

	// ViewAngle is the full perception cone in radians; another agent is
	// visible when its bearing is within ViewAngle/2 of the heading.
	ViewAngle float64

	// Goal seeking. A zero GoalAttractionWeight disables the force even
	// when a goal point is supplied.
	GoalAttractionWeight float64
	GoalArrivalRadius    float64

	Boundary BoundaryPolicy
	// Soft-repulsion tuning, ignored under BoundaryWrap.
	BorderDistance          float64
	BorderRepulsionStrength float64
}

// DefaultSettings returns the reference tuning.
func DefaultSettings() *Settings {
	return &Settings{
		SeparationRadius:        25.0,
		AlignmentRadius:         50.0,
		CohesionRadius:          50.0,
		SeparationWeight:        1.5,
		AlignmentWeight:         1.0,
		CohesionWeight:          1.0,
		ViewAngle:               4.7,
		GoalAttractionWeight:    1.0,
		GoalArrivalRadius:       100.0,
		Boundary:                BoundaryWrap,
		BorderDistance:          50.0,
		BorderRepulsionStrength: 80.0,
	}
}

// Validate reports configuration errors up front, so the per-tick code never
// has to deal with them.
func (s *Settings) Validate() error {
	if s.SeparationWeight < 0 || s.AlignmentWeight < 0 || s.CohesionWeight < 0 {
		return errors.New("steering weights must be non-negative")
	}
	if s.GoalAttractionWeight < 0 {
		return errors.New("goal attraction weight must be non-negative")
	}
	if s.GoalAttractionWeight > 0 && s.GoalArrivalRadius <= 0 {
		return errors.New("goal arrival radius must be > 0 when goal seeking is enabled")
	}
	if s.Boundary == BoundarySoftRepulsion && s.BorderDistance <= 0 {
		return errors.New("border distance must be > 0 under the soft repulsion policy")
	}
	return nil
}

// Bounds is the world rectangle [-Width/2, Width/2] x [-Height/2, Height/2].
// It may change at runtime; existing agent positions are not re-clamped, only
// future boundary checks use the new extent.
type Bounds struct {
	Width  float64
	Height float64
}

// DefaultBounds returns the reference world extent.
func DefaultBounds() *Bounds {
	return &Bounds{Width: 700, Height: 700}
}

// Validate rejects degenerate world extents.
func (b *Bounds) Validate() error {
	if b.Width <= 0 || b.Height <= 0 {
		return fmt.Errorf("world bounds must be positive, got %gx%g", b.Width, b.Height)
	}
	return nil
}
