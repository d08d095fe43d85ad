package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"nucleus-renderer/internal/camera"
	"nucleus-renderer/internal/capture"
	"nucleus-renderer/internal/config"
	"nucleus-renderer/internal/gu"
	"nucleus-renderer/internal/input"
	"nucleus-renderer/internal/logging"
	"nucleus-renderer/internal/mathutil"
	"nucleus-renderer/internal/mesh"
	"nucleus-renderer/internal/raster"
	"nucleus-renderer/internal/texture"
	"nucleus-renderer/internal/vram"
)

func main() {
	os.Exit(realMain(os.Args[1:]))
}

// realMain runs the demo and returns the process exit code. Deferred
// cleanup runs before main exits.
func realMain(args []string) int {
	// CLI flags
	fs := flag.NewFlagSet("squares", flag.ContinueOnError)
	configFile := fs.String("config", "", "Path to config file (.json, .yaml)")
	assetDir := fs.String("assets", "", "Base directory for texture paths")
	frames := fs.Int("frames", 0, "Stop after N frames (default: run until interrupted)")
	snapshot := fs.String("snapshot", "", "Write the last frame to this .png or .webp file")
	scale := fs.Int("scale", 0, "Integer upscale for the snapshot")
	logFile := fs.String("log", "", "Append log records to this file")
	logLevel := fs.String("log-level", "", "debug, info, warn or error")
	moves := fs.String("moves", "", "Scripted d-pad input, one of u/d/l/r/. per frame")

	if err := fs.Parse(args); err != nil {
		return 2
	}

	// Load config
	var cfg config.Config
	if *configFile != "" {
		var err error
		cfg, err = config.Load(*configFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			return 1
		}
	}
	cfg.Resolve(config.Flags{
		AssetDir: *assetDir,
		Snapshot: *snapshot,
		LogFile:  *logFile,
		LogLevel: *logLevel,
		Frames:   *frames,
		Scale:    *scale,
	})

	closer, err := setupLogging(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening log: %v\n", err)
		return 1
	}
	defer closer.Close()

	script, err := parseMoves(*moves)
	if err != nil {
		logging.Logger().Error("invalid moves", "err", err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, script); err != nil {
		logging.Logger().Error("run failed", "err", err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func setupLogging(cfg config.Config) (io.Closer, error) {
	level := logging.ParseLevel(cfg.LogLevel)
	if cfg.LogFile == "" {
		logging.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
		return io.NopCloser(nil), nil
	}
	l, c, err := logging.OpenFile(cfg.LogFile, level)
	if err != nil {
		return nil, err
	}
	logging.SetLogger(l)
	return c, nil
}

// parseMoves turns "rrd.l" into one button state per frame.
func parseMoves(s string) (*input.Script, error) {
	var seq []input.Buttons
	for i, r := range strings.ToLower(s) {
		switch r {
		case 'u':
			seq = append(seq, input.Up)
		case 'd':
			seq = append(seq, input.Down)
		case 'l':
			seq = append(seq, input.Left)
		case 'r':
			seq = append(seq, input.Right)
		case '.':
			seq = append(seq, 0)
		default:
			return nil, fmt.Errorf("moves: unexpected %q at %d", r, i)
		}
	}
	return input.NewScript(seq...), nil
}

// scene is everything drawn each frame.
type scene struct {
	rects    []*mesh.Rectangle
	quads    []*mesh.TextureQuad
	textures []*texture.Texture
}

func buildScene(cfg config.Config, pool *vram.Pool) scene {
	var s scene
	s.rects = []*mesh.Rectangle{
		mesh.NewRectangle(240, 136, gu.Color(0, 255, 0, 255), mathutil.Vec3{10, 10, 0}),
		mesh.NewRectangle(100, 100, gu.Color(255, 0, 0, 255),
			mathutil.Vec3{gu.ScreenWidth / 2, gu.ScreenHeight / 2, 0}),
	}

	x := float64(10)
	for _, te := range cfg.Textures {
		var alloc vram.Allocator = vram.Heap{}
		if te.VRAM {
			alloc = vram.Fallback{Primary: pool, Secondary: vram.Heap{}}
		}
		tex := texture.Load(te.Path, alloc)
		if !tex.Valid() {
			fmt.Printf("Skipping texture %s\n", te.Name)
			continue
		}
		w, h := float32(tex.Width()), float32(tex.Height())
		pos := mathutil.Vec3{x, gu.ScreenHeight - 10, 0}
		s.quads = append(s.quads, mesh.NewTextureQuad(w, h, pos, gu.Color(255, 255, 255, 255)))
		s.textures = append(s.textures, tex)
		x += float64(w) + 10
	}
	return s
}

func run(ctx context.Context, cfg config.Config, moves input.Source) error {
	var opts []raster.Option
	if cfg.Vsync {
		opts = append(opts, raster.WithVblank(time.Second/60))
	}
	dev := raster.NewDevice(opts...)
	pool := vram.NewPool(vram.PoolSize)

	g := gu.New(dev, pool, gu.DefaultDisplayConfig())
	if err := g.Init(); err != nil {
		return err
	}
	if err := g.SetRenderMode(gu.ModeTexture2D); err != nil {
		return err
	}

	s := buildScene(cfg, pool)
	cam := camera.New(0, 0)
	clock := gu.NewClock()

	fmt.Printf("VRAM: %d/%d bytes used, %d textures\n", pool.Offset(), pool.Size(), len(s.textures))
	if cfg.Frames > 0 {
		fmt.Printf("Frames: %d\n", cfg.Frames)
	} else {
		fmt.Println("Frames: until interrupted")
	}
	fmt.Println("------------------------------------------------------------")

	start := time.Now()
	for cfg.Frames == 0 || int(g.Frames()) < cfg.Frames {
		if ctx.Err() != nil {
			break
		}
		dt := clock.Delta()

		g.BeginFrame()
		g.Disable(gu.DepthTest)
		g.BlendFunc(gu.BlendAdd, gu.FactorSrcAlpha, gu.FactorOneMinusSrcAlpha)
		g.Enable(gu.Blend)
		g.ClearColor(gu.Color(255, 255, 255, 255))
		g.Clear(gu.ColorBufferBit | gu.DepthBufferBit | gu.StencilBufferBit)

		input.Apply(moves.Read(), cam)
		cam.Update(dt)
		cam.Apply(g)

		for _, r := range s.rects {
			r.Draw(g)
		}
		for i, q := range s.quads {
			s.textures[i].Bind(g)
			q.Draw(g)
		}

		if err := g.EndFrame(); err != nil {
			return err
		}
	}

	elapsed := time.Since(start)
	fmt.Println("------------------------------------------------------------")
	fmt.Printf("Done: %d frames in %.1fs\n", g.Frames(), elapsed.Seconds())

	if err := g.Terminate(); err != nil {
		return err
	}

	if cfg.Snapshot != "" {
		if err := capture.Save(cfg.Snapshot, dev.Snapshot(), cfg.Scale); err != nil {
			return err
		}
		fmt.Printf("Snapshot: %s\n", cfg.Snapshot)
	}
	return nil
}
