package flock

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// Config is the file-level configuration: world, population, physics and all
// steering settings in one flat JSON document.
type Config struct {
	// World dimensions
	WorldWidth  float64 `json:"worldWidth"`
	WorldHeight float64 `json:"worldHeight"`

	// Population
	NumBoids int `json:"numBoids"`

	// Physics
	BoidMass float64 `json:"boidMass"`
	MaxSpeed float64 `json:"maxSpeed"`
	MaxForce float64 `json:"maxForce"`

	// Perception radii
	SeparationRadius float64 `json:"separationRadius"`
	AlignmentRadius  float64 `json:"alignmentRadius"`
	CohesionRadius   float64 `json:"cohesionRadius"`

	// Steering weights
	SeparationWeight float64 `json:"separationWeight"`
	AlignmentWeight  float64 `json:"alignmentWeight"`
	CohesionWeight   float64 `json:"cohesionWeight"`

	// Full view cone angle in radians
	ViewAngle float64 `json:"viewAngle"`

	// Goal seeking
	GoalAttractionWeight float64 `json:"goalAttractionWeight"`
	GoalArrivalRadius    float64 `json:"goalArrivalRadius"`

	// Boundary handling: "wrap" or "soft"
	BoundaryPolicy          string  `json:"boundaryPolicy"`
	BorderDistance          float64 `json:"borderDistance"`
	BorderRepulsionStrength float64 `json:"borderRepulsionStrength"`
}

// DefaultConfig returns the reference tuning of the simulation.
func DefaultConfig() *Config {
	return &Config{
		WorldWidth:              700,
		WorldHeight:             700,
		NumBoids:                500,
		BoidMass:                DefaultMass,
		MaxSpeed:                DefaultMaxSpeed,
		MaxForce:                DefaultMaxForce,
		SeparationRadius:        25.0,
		AlignmentRadius:         50.0,
		CohesionRadius:          50.0,
		SeparationWeight:        1.5,
		AlignmentWeight:         1.0,
		CohesionWeight:          1.0,
		ViewAngle:               4.7,
		GoalAttractionWeight:    1.0,
		GoalArrivalRadius:       100.0,
		BoundaryPolicy:          "wrap",
		BorderDistance:          50.0,
		BorderRepulsionStrength: 80.0,
	}
}

// LoadConfig loads configuration from a JSON file and validates it against
// the schema before unmarshalling.
func LoadConfig(configFile string, schemaFile string) (*Config, error) {
	sch, err := jsonschema.Compile(schemaFile)
	if err != nil {
		return nil, fmt.Errorf("failed to compile schema: %w", err)
	}

	b, err := os.ReadFile(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return nil, fmt.Errorf("failed to decode config json: %w", err)
	}
	if err := sch.Validate(v); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	var cfg Config
	if err := json.Unmarshal(b, &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate cross-checks the fields the JSON schema cannot express relations
// between, by building the runtime objects once.
func (c *Config) Validate() error {
	if c.NumBoids <= 0 {
		return fmt.Errorf("numBoids must be > 0, got %d", c.NumBoids)
	}
	if err := c.BoidParams().Validate(); err != nil {
		return err
	}
	if err := c.Bounds().Validate(); err != nil {
		return err
	}
	s, err := c.Settings()
	if err != nil {
		return err
	}
	return s.Validate()
}

// Settings builds the runtime steering settings from the config.
func (c *Config) Settings() (*Settings, error) {
	policy, err := ParseBoundaryPolicy(c.BoundaryPolicy)
	if err != nil {
		return nil, err
	}
	return &Settings{
		SeparationRadius:        c.SeparationRadius,
		AlignmentRadius:         c.AlignmentRadius,
		CohesionRadius:          c.CohesionRadius,
		SeparationWeight:        c.SeparationWeight,
		AlignmentWeight:         c.AlignmentWeight,
		CohesionWeight:          c.CohesionWeight,
		ViewAngle:               c.ViewAngle,
		GoalAttractionWeight:    c.GoalAttractionWeight,
		GoalArrivalRadius:       c.GoalArrivalRadius,
		Boundary:                policy,
		BorderDistance:          c.BorderDistance,
		BorderRepulsionStrength: c.BorderRepulsionStrength,
	}, nil
}

// Bounds builds the runtime world bounds from the config.
func (c *Config) Bounds() *Bounds {
	return &Bounds{Width: c.WorldWidth, Height: c.WorldHeight}
}

// BoidParams builds the per-agent physics constants from the config.
func (c *Config) BoidParams() BoidParams {
	return BoidParams{Mass: c.BoidMass, MaxSpeed: c.MaxSpeed, MaxForce: c.MaxForce}
}
