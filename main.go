package main

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/delaneyj/toolbelt/embeddednats"
	"github.com/mark3labs/drive-golf/config"
	"github.com/mark3labs/drive-golf/game"
	"github.com/mark3labs/drive-golf/game/physics"
	"github.com/mark3labs/drive-golf/routes"
	"github.com/nats-io/nats-server/v2/server"
	"github.com/nats-io/nats.go/jetstream"
	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	configDir, _ := os.Getwd()
	if err := config.Load(configDir); err != nil {
		return err
	}
	log.SetLevel(config.LogLevel())

	gameCfg, err := config.Game()
	if err != nil {
		return err
	}

	ns, err := embeddednats.New(ctx,
		embeddednats.WithDirectory(config.GetString("nats.dataDir")),
		embeddednats.WithShouldClearData(config.GetBool("nats.clearData")),
		embeddednats.WithNATSServerOptions(&server.Options{
			JetStream: true,
			Port:      -1,
		}),
	)
	if err != nil {
		return fmt.Errorf("failed to start embedded nats: %v", err)
	}
	ns.WaitForServer()

	nc, err := ns.Client()
	if err != nil {
		return fmt.Errorf("failed to connect to embedded nats: %v", err)
	}
	defer nc.Close()

	js, err := jetstream.New(nc)
	if err != nil {
		return fmt.Errorf("failed to create jetstream context: %v", err)
	}

	kv, err := js.CreateOrUpdateKeyValue(ctx, jetstream.KeyValueConfig{
		Bucket:      config.GetString("nats.bucket"),
		Description: "Drive golf session state",
		Storage:     jetstream.MemoryStorage,
		History:     1,
	})
	if err != nil {
		return fmt.Errorf("failed to create state bucket: %v", err)
	}

	course := game.DefaultCourse()
	world := physics.NewCourseWorld(course)

	gameManager, err := game.NewManager(ctx, kv, gameCfg, course, world)
	if err != nil {
		return err
	}

	loop := physics.NewIntegration(gameManager, config.GetInt("sim.tickRate"), config.GetInt("sim.maxSubSteps"))
	loop.Start(ctx)
	defer loop.Stop()

	if config.GetBool("autopilot.enabled") {
		pilot := game.NewAutopilot(gameManager, config.GetDuration("autopilot.interval"))
		pilot.Start()
		defer pilot.Stop()
	}

	app := pocketbase.New()

	app.OnServe().BindFunc(func(se *core.ServeEvent) error {
		if err := routes.SetupRoutes(ctx, se.Router, gameManager, loop); err != nil {
			return err
		}
		return se.Next()
	})

	return app.Start()
}
