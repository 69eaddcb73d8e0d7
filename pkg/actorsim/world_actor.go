package actorsim

import (
	"time"

	"github.com/tochemey/goakt/v3/actor"
	"github.com/tochemey/goakt/v3/goaktpb"
	"google.golang.org/protobuf/types/known/durationpb"
	"google.golang.org/protobuf/types/known/emptypb"

	"github.com/lao-tseu-is-alive/go-flocking-simulation/pkg/flock"
)

// BoidState is the render-ready view of one boid pushed to the UI.
type BoidState struct {
	X, Y    float64
	Heading float64
}

// WorldActor owns the authoritative flock state. The UI drives it with
// *durationpb.Duration tick messages and reads back snapshots over a channel,
// so the simulation and the render loop never share mutable state.
type WorldActor struct {
	world    *flock.World
	settings *flock.Settings
	bounds   *flock.Bounds
	params   flock.BoidParams
	numBoids int

	snapshotCh chan<- []BoidState

	// throughput stats
	tickCount   int
	lastLogTime time.Time
}

// NewWorldActor builds the world from a validated config.
func NewWorldActor(cfg *flock.Config, snapshotCh chan<- []BoidState) (*WorldActor, error) {
	settings, err := cfg.Settings()
	if err != nil {
		return nil, err
	}
	bounds := cfg.Bounds()
	params := cfg.BoidParams()
	world, err := flock.NewWorld(cfg.NumBoids, params, bounds)
	if err != nil {
		return nil, err
	}
	return &WorldActor{
		world:      world,
		settings:   settings,
		bounds:     bounds,
		params:     params,
		numBoids:   cfg.NumBoids,
		snapshotCh: snapshotCh,
	}, nil
}

func (w *WorldActor) PreStart(ctx *actor.Context) error {
	w.lastLogTime = time.Now()
	return nil
}

func (w *WorldActor) Receive(ctx *actor.ReceiveContext) {
	switch msg := ctx.Message().(type) {

	case *goaktpb.PostStart:
		ctx.Logger().Infof("World started with %d boids", w.numBoids)

	// The main simulation step, driven by the game loop. The payload is the
	// frame delta.
	case *durationpb.Duration:
		w.world.Advance(msg.AsDuration().Seconds(), w.settings, w.bounds, nil)
		w.logThroughput(ctx)
		w.pushSnapshot()

	// Restart the population in place.
	case *emptypb.Empty:
		if err := w.world.Respawn(w.numBoids, w.params, w.bounds); err != nil {
			ctx.Logger().Errorf("respawn failed: %v", err)
			return
		}
		ctx.Logger().Infof("World respawned %d boids", w.numBoids)

	default:
		ctx.Unhandled()
	}
}

func (w *WorldActor) logThroughput(ctx *actor.ReceiveContext) {
	w.tickCount++
	if time.Since(w.lastLogTime) >= 10*time.Second {
		ctx.Logger().Infof("ticks: %d in %.1fs | boids: %d",
			w.tickCount, time.Since(w.lastLogTime).Seconds(), len(w.world.Boids()))
		w.tickCount = 0
		w.lastLogTime = time.Now()
	}
}

func (w *WorldActor) pushSnapshot() {
	select {
	case w.snapshotCh <- w.buildSnapshot():
	default:
		// UI busy, skip frame
	}
}

func (w *WorldActor) buildSnapshot() []BoidState {
	boids := w.world.Boids()
	snapshot := make([]BoidState, len(boids))
	for i, b := range boids {
		snapshot[i] = BoidState{X: b.Pos.X, Y: b.Pos.Y, Heading: b.Heading}
	}
	return snapshot
}

func (w *WorldActor) PostStop(ctx *actor.Context) error {
	ctx.ActorSystem().Logger().Info("World is shutdown...")
	return nil
}
