// glyphcube - ASCII Rotating Cube
// Renders a spinning cube as a grid of glyphs in your terminal, as a PNG
// snapshot, or streamed to a browser over a websocket.
//
// Controls:
//
//	W      - Toggle wireframe
//	C      - Toggle per-side colors
//	B      - Toggle backface culling
//	E      - Toggle edge overlay
//	X/Y/Z  - Toggle rotation about an axis
//	+/-    - Denser/sparser face sampling
//	Esc/Q  - Quit
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	uv "github.com/charmbracelet/ultraviolet"
	"github.com/taigrr/glyphcube/pkg/anim"
	"github.com/taigrr/glyphcube/pkg/math3d"
	"github.com/taigrr/glyphcube/pkg/models"
	"github.com/taigrr/glyphcube/pkg/render"
	"github.com/taigrr/glyphcube/pkg/server"
)

var (
	wireframe = flag.Bool("wireframe", false, "Draw edges only")
	color     = flag.Bool("color", false, "Color each side")
	cull      = flag.Bool("cull", false, "Skip sides facing away from the camera")
	edges     = flag.Bool("edges", true, "Draw the edge overlay")
	axes      = flag.String("axis", "xy", "Rotation axes, any of x, y, z")
	density   = flag.Float64("density", render.DefaultDensity, "Face sampling step (lower is denser)")
	speedX    = flag.Float64("speed-x", render.DefaultSpeed.Pitch, "Radians per tick about X")
	speedY    = flag.Float64("speed-y", render.DefaultSpeed.Yaw, "Radians per tick about Y")
	speedZ    = flag.Float64("speed-z", render.DefaultSpeed.Roll, "Radians per tick about Z")
	interval  = flag.Duration("interval", anim.DefaultInterval, "Time between ticks")
	targetFPS = flag.Int("fps", 0, "Target FPS (overrides -interval)")

	serveAddr = flag.String("serve", "", "Serve frames over websocket on this address, e.g. :8080")
	headless  = flag.Bool("headless", false, "Do not draw in the terminal (use with -serve)")
	pngPath   = flag.String("png", "", "Write one frame to this PNG file and exit")
	ticks     = flag.Int("ticks", 0, "Ticks to advance before -png or -once")
	once      = flag.Bool("once", false, "Print one frame to stdout and exit")
	export    = flag.String("export", "", "Write the cube as binary glTF to this path and exit")
	bgColor   = flag.String("bg", "#1e1e28", "PNG background color")
	fgColor   = flag.String("fg", "#e0e0e0", "PNG glyph color for uncolored cells")
	verbose   = flag.Bool("v", false, "Log to stderr")
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "glyphcube - ASCII Rotating Cube\n\n")
		fmt.Fprintf(os.Stderr, "Usage: glyphcube [options]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nControls:\n")
		fmt.Fprintf(os.Stderr, "  W      - Toggle wireframe\n")
		fmt.Fprintf(os.Stderr, "  C      - Toggle colors\n")
		fmt.Fprintf(os.Stderr, "  B      - Toggle backface culling\n")
		fmt.Fprintf(os.Stderr, "  E      - Toggle edges\n")
		fmt.Fprintf(os.Stderr, "  X/Y/Z  - Toggle rotation axis\n")
		fmt.Fprintf(os.Stderr, "  +/-    - Adjust density\n")
		fmt.Fprintf(os.Stderr, "  Esc/Q  - Quit\n")
	}
	flag.Parse()

	if *verbose {
		anim.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func configFromFlags() (render.Config, error) {
	cfg := render.DefaultConfig()
	cfg.Wireframe = *wireframe
	cfg.Color = *color
	cfg.BackfaceCulling = *cull
	cfg.Edges = *edges
	cfg.Density = *density
	cfg.Speed = math3d.Angles{Pitch: *speedX, Yaw: *speedY, Roll: *speedZ}

	a, err := render.ParseAxis(*axes)
	if err != nil {
		return cfg, err
	}
	cfg.Axes = a
	return cfg, cfg.Validate()
}

func run() error {
	if *export != "" {
		return exportCube(*export)
	}

	cfg, err := configFromFlags()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	if *pngPath != "" || *once {
		return snapshot(cfg)
	}

	tick := *interval
	if *targetFPS > 0 {
		tick = anim.IntervalForFPS(*targetFPS)
	}

	// Context for clean shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
	}()

	// Latest frame for the terminal; older frames are dropped.
	frames := make(chan *render.Frame, 1)
	var srv *server.Server
	publish := func(f *render.Frame) {
		if srv != nil {
			srv.Publish(f)
		}
		if *headless {
			return
		}
		select {
		case frames <- f:
		default:
			select {
			case <-frames:
			default:
			}
			frames <- f
		}
	}

	sched := anim.NewScheduler(publish, anim.WithInterval(tick))

	errc := make(chan error, 1)
	if *serveAddr != "" {
		srv = server.New(sched)
		go func() {
			if err := srv.ListenAndServe(ctx, *serveAddr); err != nil {
				errc <- err
				cancel()
			}
		}()
	}

	if err := sched.Start(ctx, cfg); err != nil {
		return err
	}
	defer sched.Stop()

	if *headless {
		<-ctx.Done()
	} else if err := runTerminal(ctx, cancel, sched, frames); err != nil {
		return err
	}

	select {
	case err := <-errc:
		return err
	default:
		return nil
	}
}

// snapshot renders a single frame after -ticks ticks.
func snapshot(cfg render.Config) error {
	a, err := anim.NewAnimation(cfg, math3d.Angles{})
	if err != nil {
		return err
	}
	for range *ticks {
		a.Step()
	}
	f := a.Frame()

	if *once {
		fmt.Println(f.String())
	}
	if *pngPath == "" {
		return nil
	}

	fg, err := render.ParseHex(*fgColor)
	if err != nil {
		return err
	}
	bg, err := render.ParseHex(*bgColor)
	if err != nil {
		return err
	}
	if err := f.SavePNG(*pngPath, fg, bg); err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "Wrote %s\n", *pngPath)
	return nil
}

func exportCube(path string) error {
	mesh, err := models.NewCube(render.DefaultHalfWidth).Mesh()
	if err != nil {
		return err
	}
	if err := models.SaveGLB(mesh, path); err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "Wrote %s (%d triangles)\n", path, mesh.TriangleCount())
	return nil
}

func runTerminal(ctx context.Context, cancel context.CancelFunc, sched *anim.Scheduler, frames <-chan *render.Frame) error {
	term := uv.DefaultTerminal()

	width, height, err := term.GetSize()
	if err != nil {
		return fmt.Errorf("get terminal size: %w", err)
	}

	if err := term.Start(); err != nil {
		return fmt.Errorf("start terminal: %w", err)
	}

	term.EnterAltScreen()
	term.HideCursor()
	term.Resize(width, height)

	cleanup := func() {
		term.ExitAltScreen()
		term.ShowCursor()
		term.Shutdown(context.Background())
	}
	defer cleanup()

	// Event handler
	go func() {
		for ev := range term.Events() {
			switch ev := ev.(type) {
			case uv.WindowSizeEvent:
				term.Erase()
				term.Resize(ev.Width, ev.Height)

			case uv.KeyPressEvent:
				cfg := sched.Config()
				switch {
				case ev.MatchString("escape", "q", "ctrl+c"):
					cancel()
					return
				case ev.MatchString("w"):
					cfg.Wireframe = !cfg.Wireframe
				case ev.MatchString("c"):
					cfg.Color = !cfg.Color
				case ev.MatchString("b"):
					cfg.BackfaceCulling = !cfg.BackfaceCulling
				case ev.MatchString("e"):
					cfg.Edges = !cfg.Edges
				case ev.MatchString("x"):
					cfg.Axes ^= render.AxisX
				case ev.MatchString("y"):
					cfg.Axes ^= render.AxisY
				case ev.MatchString("z"):
					cfg.Axes ^= render.AxisZ
				case ev.MatchString("+", "="):
					cfg.Density = max(cfg.Density*0.8, cfg.MinDensity())
				case ev.MatchString("-", "_"):
					cfg.Density = min(cfg.Density*1.25, maxDensity)
				default:
					continue
				}
				if err := sched.Reconfigure(cfg); err != nil {
					anim.Logger().Warn("reconfigure", "error", err)
				}
			}
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case f := <-frames:
			term.Draw(f)
			if err := term.Display(); err != nil {
				return fmt.Errorf("display: %w", err)
			}
		}
	}
}

// Sparsest density reachable with the - key.
const maxDensity = 0.2
