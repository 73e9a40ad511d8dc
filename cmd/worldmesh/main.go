package main

import (
	"log"
	"os"
	"time"

	"github.com/b1naryth1ef/worldmesh"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:        "worldmesh",
		Description: "procedural voxel terrain chunk pipeline",
		Commands: []*cli.Command{
			{
				Name:   "preview",
				Usage:  "render a top-down snapshot of the generated terrain",
				Action: commandPreview,
				Flags: []cli.Flag{
					&cli.PathFlag{
						Name:  "config",
						Usage: "path to the configuration file",
						Value: "config.hcl",
					},
					&cli.PathFlag{
						Name:  "out",
						Usage: "output image path, overrides the configured one",
					},
				},
			},
			{
				Name:   "simulate",
				Usage:  "move an eye through the world and run the chunk loader",
				Action: commandSimulate,
				Flags: []cli.Flag{
					&cli.PathFlag{
						Name:  "config",
						Usage: "path to the configuration file",
						Value: "config.hcl",
					},
					&cli.IntFlag{
						Name:  "ticks",
						Usage: "number of simulation ticks to run",
						Value: 300,
					},
					&cli.Float64Flag{
						Name:  "speed",
						Usage: "eye movement per tick in world units",
						Value: 8,
					},
				},
			},
		},
	}

	err := app.Run(os.Args)
	if err != nil {
		log.Fatal(err)
	}
}

func commandPreview(ctx *cli.Context) error {
	config, err := worldmesh.LoadConfig(ctx.Path("config"))
	if err != nil {
		return err
	}

	out := config.Preview.Out
	if ctx.Path("out") != "" {
		out = ctx.Path("out")
	}

	preview := worldmesh.NewPreview(config.Seed, config.Preview.Radius,
		config.Preview.Shading, config.Concurrency)

	start := time.Now()
	if err := preview.Render(out); err != nil {
		return err
	}
	log.Printf("[preview] rendered %s in %dms", out, time.Since(start).Milliseconds())
	return nil
}

func commandSimulate(ctx *cli.Context) error {
	config, err := worldmesh.LoadConfig(ctx.Path("config"))
	if err != nil {
		return err
	}

	loader := worldmesh.NewLoader(config.LoaderConfig())
	defer loader.Close()

	view := config.ViewConfig()
	speed := float32(ctx.Float64("speed"))
	ticks := ctx.Int("ticks")

	eye := mgl32.Vec3{0, 0, 0}
	for i := 0; i < ticks; i++ {
		loader.Request(worldmesh.VisibleCoords(eye, view))
		loader.Tick()
		eye = eye.Add(mgl32.Vec3{speed, 0, 0})
		time.Sleep(10 * time.Millisecond)
	}

	// let in-flight work drain so the final numbers are settled
	for i := 0; i < 100; i++ {
		loader.Tick()
		if _, inflight, _ := loader.Stats(); inflight == 0 {
			break
		}
		time.Sleep(10 * time.Millisecond)
	}

	resident, inflight, pending := loader.Stats()
	log.Printf("[simulate] %d ticks done: %d resident, %d inflight, %d pending",
		ticks, resident, inflight, pending)
	return nil
}
