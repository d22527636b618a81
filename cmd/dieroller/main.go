package main

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/png"
	"log"
	"math/rand"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/smasonuk/dieroller"
)

const appName = "dieroller"

type flags struct {
	scale     float64
	seed      int64
	headless  bool
	out       string
	seconds   float64
	linger    time.Duration
	outline   bool
	meshPath  string
	meshSides int
	texture   string
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		log.Fatal(err)
	}
}

func newRootCmd() *cobra.Command {
	f := &flags{}
	cmd := &cobra.Command{
		Use:   appName + " [d<sides>[=<result>] ...]",
		Short: "Roll polyhedral dice across the desktop",
		Long: `Drops one die per argument onto an invisible floor and lets them bounce
until they settle. Each argument is d<sides> with an optional =<result>
naming the face that should end up on top; + and - are shorthands for 12
and 11. With no arguments a single d20 is rolled.

Scene constants come from DIEROLLER_* environment variables.`,
		Example: `  dieroller d6=4 d20
  dieroller --headless --out roll.png d12=+`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), f, args)
		},
	}

	fl := cmd.Flags()
	fl.Float64Var(&f.scale, "scale", dieroller.DefaultScale, "die size multiplier applied to unit meshes")
	fl.Int64Var(&f.seed, "seed", 0, "random seed; 0 uses the clock")
	fl.BoolVar(&f.headless, "headless", false, "simulate without a window and write a PNG")
	fl.StringVar(&f.out, "out", "roll.png", "PNG written in headless mode")
	fl.Float64Var(&f.seconds, "seconds", 10, "headless time limit in seconds")
	fl.DurationVar(&f.linger, "linger", 3*time.Second, "how long the window stays open once every die has settled")
	fl.BoolVar(&f.outline, "outline", false, "stroke the silhouette in the window")
	fl.StringVar(&f.meshPath, "mesh", "", "OBJ file replacing the built-in mesh for --mesh-sides")
	fl.IntVar(&f.meshSides, "mesh-sides", 6, "die type the --mesh file is registered as")
	fl.StringVar(&f.texture, "texture", "", "PNG, BMP or WebP texture replacing the number atlas")
	return cmd
}

func run(ctx context.Context, f *flags, args []string) error {
	cfg, err := dieroller.LoadWorldConfig()
	if err != nil {
		return err
	}

	seed := f.seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	assets, err := loadAssets(f, seed)
	if err != nil {
		return err
	}

	world := dieroller.NewWorld(cfg, dieroller.NewTexture(assets.Texture()))
	if len(args) == 0 {
		args = []string{"d20"}
	}
	for i, arg := range args {
		spec, err := dieroller.ParseSpawnSpec(arg, rng)
		if err != nil {
			return err
		}
		location := dieroller.DefaultLocation.Add(dieroller.NewVector3(float64(i)*-3*f.scale, 0, 0))
		die, err := dieroller.Spawn(assets, spec,
			dieroller.WithRand(rng),
			dieroller.WithScale(f.scale),
			dieroller.WithLocation(location))
		if err != nil {
			return fmt.Errorf("spawning %s: %w", arg, err)
		}
		world.Add(die)
	}

	if f.headless {
		return runHeadless(ctx, world, f)
	}
	return runWindow(world, f)
}

func loadAssets(f *flags, seed int64) (*dieroller.AssetRegistry, error) {
	meshes, err := dieroller.StandardMeshes()
	if err != nil {
		return nil, err
	}
	if f.meshPath != "" {
		m, err := dieroller.LoadOBJFile(f.meshPath)
		if err != nil {
			return nil, err
		}
		meshes[f.meshSides] = m
	}

	var texture image.Image
	if f.texture != "" {
		t, err := dieroller.LoadTexture(f.texture)
		if err != nil {
			return nil, err
		}
		texture = t.Image()
	} else {
		texture = dieroller.NewNumberAtlas(dieroller.DefaultCellSize, seed)
	}
	return dieroller.NewAssetRegistry(meshes, texture), nil
}

// runHeadless ticks the world in real time until every die settles or
// the time limit passes, then writes one frame.
func runHeadless(ctx context.Context, world *dieroller.World, f *flags) error {
	log.Printf("Running headless for at most %.1fs...", f.seconds)
	ctx, cancel := context.WithTimeout(ctx, time.Duration(f.seconds*float64(time.Second)))
	defer cancel()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		err := dieroller.RunTicker(gctx, world, world.Config().TickInterval)
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil
		}
		return err
	})
	g.Go(func() error {
		defer cancel()
		poll := time.NewTicker(100 * time.Millisecond)
		defer poll.Stop()
		for {
			select {
			case <-gctx.Done():
				log.Println("Time limit reached before every die settled.")
				return writePNG(f.out, world.Snapshot())
			case <-poll.C:
				if world.Settled() {
					return writePNG(f.out, world.Snapshot())
				}
			}
		}
	})
	err := g.Wait()
	world.LogState()
	return err
}

func writePNG(fileName string, img image.Image) error {
	file, err := os.Create(fileName)
	if err != nil {
		return fmt.Errorf("could not create %s: %w", fileName, err)
	}
	defer file.Close()

	if err := png.Encode(file, img); err != nil {
		return fmt.Errorf("error encoding %s: %w", fileName, err)
	}
	log.Printf("Wrote %s", fileName)
	return nil
}
