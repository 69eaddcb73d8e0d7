package actorsim

import (
	"context"
	"fmt"
	"image/color"
	"math"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/tochemey/goakt/v3/actor"
	"google.golang.org/protobuf/types/known/durationpb"
	"google.golang.org/protobuf/types/known/emptypb"

	"github.com/lao-tseu-is-alive/go-flocking-simulation/pkg/flock"
)

var whiteImage = ebiten.NewImage(3, 3)

func init() {
	whiteImage.Fill(color.RGBA{R: 100, G: 200, B: 255, A: 255})
}

// Game renders the latest world snapshot and drives the WorldActor with one
// tick message per frame.
type Game struct {
	ctx        context.Context
	System     actor.ActorSystem
	worldPID   *actor.PID
	snapshotCh chan []BoidState
	lastState  []BoidState

	cfg *flock.Config

	lastTick time.Time

	// Timing instrumentation
	updateAvg float64 // Rolling average in ms
	drawAvg   float64 // Rolling average in ms
}

// GetNewGame spawns the world actor on the given system and returns the
// ebiten game hosting it.
func GetNewGame(ctx context.Context, cfg *flock.Config, system actor.ActorSystem) (*Game, error) {
	snapshotCh := make(chan []BoidState, 10) // Buffer to avoid blocking

	worldActor, err := NewWorldActor(cfg, snapshotCh)
	if err != nil {
		return nil, fmt.Errorf("unable to create world actor: %w", err)
	}
	worldPID, err := system.Spawn(ctx, "world", worldActor)
	if err != nil {
		return nil, fmt.Errorf("unable to spawn world actor: %w", err)
	}

	return &Game{
		ctx:        ctx,
		System:     system,
		worldPID:   worldPID,
		snapshotCh: snapshotCh,
		lastState:  []BoidState{},
		cfg:        cfg,
		lastTick:   time.Now(),
	}, nil
}

func (g *Game) Update() error {
	start := time.Now()
	defer func() {
		g.updateAvg = g.updateAvg*0.95 + float64(time.Since(start).Microseconds())/1000.0*0.05
	}()

	// Retrieve latest state, non-blocking.
	select {
	case snap := <-g.snapshotCh:
		g.lastState = snap
	default:
		// Use previous state if new one isn't ready
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		actor.Tell(g.ctx, g.worldPID, &emptypb.Empty{})
	}

	// Frame delta for the integrator; clamp so a debugger pause or a dragged
	// window does not produce one giant step.
	now := time.Now()
	dt := now.Sub(g.lastTick)
	g.lastTick = now
	if dt > 100*time.Millisecond {
		dt = 100 * time.Millisecond
	}
	actor.Tell(g.ctx, g.worldPID, durationpb.New(dt))

	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	start := time.Now()
	defer func() {
		g.drawAvg = g.drawAvg*0.95 + float64(time.Since(start).Microseconds())/1000.0*0.05
	}()

	halfW := g.cfg.WorldWidth / 2
	halfH := g.cfg.WorldHeight / 2
	for i := range g.lastState {
		b := &g.lastState[i]
		drawBoid(screen, b.X+halfW, b.Y+halfH, b.Heading)
	}

	msg := fmt.Sprintf("Boids: %d\nFPS: %.2f\nTPS: %.2f\nUpdate: %.2fms\nDraw:   %.2fms\n\n[R] respawn",
		len(g.lastState),
		ebiten.ActualFPS(),
		ebiten.ActualTPS(),
		g.updateAvg,
		g.drawAvg)
	ebitenutil.DebugPrintAt(screen, msg, int(g.cfg.WorldWidth)-150, 10)
}

func (g *Game) Layout(w, h int) (int, int) {
	return int(g.cfg.WorldWidth), int(g.cfg.WorldHeight)
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
