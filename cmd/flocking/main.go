package main

import (
	"flag"
	"fmt"
	"image/color"
	"log"
	"math"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/lao-tseu-is-alive/go-flocking-simulation/pkg/flock"
	"github.com/lao-tseu-is-alive/go-flocking-simulation/pkg/geometry"
	"github.com/lao-tseu-is-alive/go-flocking-simulation/pkg/ui"
)

var whiteImage = ebiten.NewImage(3, 3)

func init() {
	whiteImage.Fill(color.RGBA{R: 100, G: 200, B: 255, A: 255})
}

type Game struct {
	world    *flock.World
	cfg      *flock.Config
	settings *flock.Settings
	bounds   *flock.Bounds

	// Hold left mouse outside the panel to place an attraction goal.
	goal *geometry.Vector2D

	panel *ui.Panel

	widgetSeparationRadius *ui.Slider
	widgetAlignmentRadius  *ui.Slider
	widgetCohesionRadius   *ui.Slider
	widgetSeparationWeight *ui.Slider
	widgetAlignmentWeight  *ui.Slider
	widgetCohesionWeight   *ui.Slider
	widgetViewAngle        *ui.Slider
	widgetGoalWeight       *ui.Slider
	widgetArrivalRadius    *ui.Slider
	widgetBorderDistance   *ui.Slider
	widgetBorderStrength   *ui.Slider
	widgetWorldWidth       *ui.Slider
	widgetWorldHeight      *ui.Slider
	widgetMaxSpeed         *ui.Slider
	widgetMaxForce         *ui.Slider
	widgetNumBoids         *ui.Slider
	widgetSoftBorders      *ui.Checkbox

	lastTick time.Time
}

func GetNewGame(cfg *flock.Config) (*Game, error) {
	settings, err := cfg.Settings()
	if err != nil {
		return nil, err
	}
	bounds := cfg.Bounds()
	world, err := flock.NewWorld(cfg.NumBoids, cfg.BoidParams(), bounds)
	if err != nil {
		return nil, err
	}

	g := &Game{
		world:    world,
		cfg:      cfg,
		settings: settings,
		bounds:   bounds,
		lastTick: time.Now(),
	}

	panel := ui.NewPanel(10, 10, 280, cfg.WorldHeight-20)

	panel.AddSection("Perception Radii")
	g.widgetSeparationRadius = panel.AddSlider("Separation Radius", 5, 150, cfg.SeparationRadius)
	g.widgetAlignmentRadius = panel.AddSlider("Alignment Radius", 5, 200, cfg.AlignmentRadius)
	g.widgetCohesionRadius = panel.AddSlider("Cohesion Radius", 5, 200, cfg.CohesionRadius)
	g.widgetViewAngle = panel.AddSlider("View Angle (rad)", 0.1, 2*math.Pi, cfg.ViewAngle)
	panel.EndSection()

	panel.AddSection("Steering Weights")
	g.widgetSeparationWeight = panel.AddSlider("Separation Weight", 0, 5, cfg.SeparationWeight)
	g.widgetAlignmentWeight = panel.AddSlider("Alignment Weight", 0, 5, cfg.AlignmentWeight)
	g.widgetCohesionWeight = panel.AddSlider("Cohesion Weight", 0, 5, cfg.CohesionWeight)
	panel.EndSection()

	panel.AddSection("Goal Seeking (hold mouse)")
	g.widgetGoalWeight = panel.AddSlider("Attraction Weight", 0, 5, cfg.GoalAttractionWeight)
	g.widgetArrivalRadius = panel.AddSlider("Arrival Radius", 10, 300, cfg.GoalArrivalRadius)
	panel.EndSection()

	panel.AddSection("Boundary")
	g.widgetSoftBorders = panel.AddCheckbox("Soft Borders (off = wrap)",
		g.settings.Boundary == flock.BoundarySoftRepulsion)
	g.widgetBorderDistance = panel.AddSlider("Border Distance", 10, 200, cfg.BorderDistance)
	g.widgetBorderStrength = panel.AddSlider("Border Strength", 0, 300, cfg.BorderRepulsionStrength)
	panel.EndSection()

	panel.AddSection("World")
	g.widgetWorldWidth = panel.AddSlider("World Width", 300, 1600, cfg.WorldWidth)
	g.widgetWorldHeight = panel.AddSlider("World Height", 300, 1200, cfg.WorldHeight)
	panel.EndSection()

	panel.AddSection("Physics (Respawn Required)")
	g.widgetMaxSpeed = panel.AddSlider("Max Speed", 10, 300, cfg.MaxSpeed)
	g.widgetMaxForce = panel.AddSlider("Max Force", 100, 5000, cfg.MaxForce)
	g.widgetNumBoids = panel.AddSlider("Population", 10, 2000, float64(cfg.NumBoids))
	panel.EndSection()

	panel.AddSection("Actions")
	panel.AddButton("Respawn Flock", g.respawn)
	panel.EndSection()

	g.panel = panel
	return g, nil
}

// respawn rebuilds the population from the physics sliders.
func (g *Game) respawn() {
	g.cfg.MaxSpeed = g.widgetMaxSpeed.Value
	g.cfg.MaxForce = g.widgetMaxForce.Value
	g.cfg.NumBoids = int(g.widgetNumBoids.Value)
	if err := g.world.Respawn(g.cfg.NumBoids, g.cfg.BoidParams(), g.bounds); err != nil {
		log.Printf("respawn failed: %v", err)
	}
}

// applySettings copies the live slider values into the steering settings read
// by the next tick.
func (g *Game) applySettings() {
	g.settings.SeparationRadius = g.widgetSeparationRadius.Value
	g.settings.AlignmentRadius = g.widgetAlignmentRadius.Value
	g.settings.CohesionRadius = g.widgetCohesionRadius.Value
	g.settings.SeparationWeight = g.widgetSeparationWeight.Value
	g.settings.AlignmentWeight = g.widgetAlignmentWeight.Value
	g.settings.CohesionWeight = g.widgetCohesionWeight.Value
	g.settings.ViewAngle = g.widgetViewAngle.Value
	g.settings.GoalAttractionWeight = g.widgetGoalWeight.Value
	g.settings.GoalArrivalRadius = g.widgetArrivalRadius.Value
	g.settings.BorderDistance = g.widgetBorderDistance.Value
	g.settings.BorderRepulsionStrength = g.widgetBorderStrength.Value
	if g.widgetSoftBorders.Value {
		g.settings.Boundary = flock.BoundarySoftRepulsion
	} else {
		g.settings.Boundary = flock.BoundaryWrap
	}
	// Live world resize: agents outside the new extent are not re-clamped,
	// the boundary policy picks them up on their next edge check.
	g.bounds.Width = g.widgetWorldWidth.Value
	g.bounds.Height = g.widgetWorldHeight.Value
}

func (g *Game) Update() error {
	g.panel.Update()
	g.applySettings()

	// A held mouse button outside the panel is an attraction goal, expressed
	// in centered world coordinates.
	g.goal = nil
	if ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
		mx, my := ebiten.CursorPosition()
		if !g.panel.Contains(float64(mx), float64(my)) {
			p := geometry.NewVector(float64(mx)-g.bounds.Width/2, float64(my)-g.bounds.Height/2)
			g.goal = &p
		}
	}

	// Frame delta for the integrator; clamp so a dragged window does not
	// produce one giant step.
	now := time.Now()
	dt := now.Sub(g.lastTick).Seconds()
	g.lastTick = now
	if dt > 0.1 {
		dt = 0.1
	}

	g.world.Advance(dt, g.settings, g.bounds, g.goal)
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{R: 10, G: 10, B: 30, A: 255})

	halfW := g.bounds.Width / 2
	halfH := g.bounds.Height / 2
	for _, b := range g.world.Boids() {
		drawBoid(screen, b.Pos.X+halfW, b.Pos.Y+halfH, b.Heading)
	}

	if g.goal != nil {
		vector.StrokeCircle(screen,
			float32(g.goal.X+halfW), float32(g.goal.Y+halfH),
			float32(g.settings.GoalArrivalRadius),
			1, color.RGBA{R: 255, G: 200, B: 50, A: 150}, true)
	}

	g.panel.Draw(screen)

	msg := fmt.Sprintf("Boids: %d\nFPS: %.2f\nTPS: %.2f",
		len(g.world.Boids()), ebiten.ActualFPS(), ebiten.ActualTPS())
	ebitenutil.DebugPrintAt(screen, msg, int(g.bounds.Width)-120, 10)
}

func (g *Game) Layout(w, h int) (int, int) {
	return int(g.bounds.Width), int(g.bounds.Height)
}

// drawBoid renders one boid as a triangle pointing along its heading.
func drawBoid(screen *ebiten.Image, x, y, heading float64) {
	// Heading 0 points "up"; rotate back into the atan2 frame for drawing.
	angle := heading + math.Pi/2

	tipX := x + math.Cos(angle)*6
	tipY := y + math.Sin(angle)*6
	rightX := x + math.Cos(angle+2.5)*5
	rightY := y + math.Sin(angle+2.5)*5
	leftX := x + math.Cos(angle-2.5)*5
	leftY := y + math.Sin(angle-2.5)*5

	vertices := []ebiten.Vertex{
		{
			DstX: float32(tipX),
			DstY: float32(tipY),
			SrcX: 1, SrcY: 1,
			ColorR: 1, ColorG: 1, ColorB: 1, ColorA: 1,
		},
		{
			DstX: float32(rightX),
			DstY: float32(rightY),
			SrcX: 1, SrcY: 1,
			ColorR: 1, ColorG: 1, ColorB: 1, ColorA: 1,
		},
		{
			DstX: float32(leftX),
			DstY: float32(leftY),
			SrcX: 1, SrcY: 1,
			ColorR: 1, ColorG: 1, ColorB: 1, ColorA: 1,
		},
	}

	indices := []uint16{0, 1, 2}

	screen.DrawTriangles(vertices, indices, whiteImage, &ebiten.DrawTrianglesOptions{})
}

func main() {
	configFile := flag.String("config", "", "path to a JSON config file")
	schemaFile := flag.String("schema", "configs/config.schema.json", "path to the JSON schema")
	flag.Parse()

	cfg := flock.DefaultConfig()
	if *configFile != "" {
		loaded, err := flock.LoadConfig(*configFile, *schemaFile)
		if err != nil {
			log.Fatalf("unable to load config: %v", err)
		}
		cfg = loaded
	}

	g, err := GetNewGame(cfg)
	if err != nil {
		log.Fatalf("unable to create game: %v", err)
	}

	ebiten.SetWindowSize(int(cfg.WorldWidth), int(cfg.WorldHeight))
	ebiten.SetWindowTitle("Flocking")
	if err := ebiten.RunGame(g); err != nil {
		log.Fatal(err)
	}
}
