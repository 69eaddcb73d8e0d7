package main

import (
	"context"
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/tochemey/goakt/v3/actor"
	golog "github.com/tochemey/goakt/v3/log"

	"github.com/lao-tseu-is-alive/go-flocking-simulation/pkg/actorsim"
	"github.com/lao-tseu-is-alive/go-flocking-simulation/pkg/flock"
)

func main() {
	configFile := flag.String("config", "configs/config.json", "path to a JSON config file")
	schemaFile := flag.String("schema", "configs/config.schema.json", "path to the JSON schema")
	flag.Parse()

	cfg, err := flock.LoadConfig(*configFile, *schemaFile)
	if err != nil {
		log.Fatalf("unable to load config: %v", err)
	}

	ctx := context.Background()

	system, err := actor.NewActorSystem("FlockingWorld",
		actor.WithLogger(golog.DefaultLogger),
		actor.WithActorInitMaxRetries(3))
	if err != nil {
		log.Fatalf("unable to create actor system: %v", err)
	}
	if err := system.Start(ctx); err != nil {
		log.Fatalf("unable to start actor system: %v", err)
	}
	defer system.Stop(ctx)

	game, err := actorsim.GetNewGame(ctx, cfg, system)
	if err != nil {
		log.Fatalf("unable to create game: %v", err)
	}

	ebiten.SetWindowSize(int(cfg.WorldWidth), int(cfg.WorldHeight))
	ebiten.SetWindowTitle("Flocking (actor world)")
	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}
