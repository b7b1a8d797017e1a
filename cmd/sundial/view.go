package main

import (
	"context"
	"fmt"
	"image/color"
	"io"
	"math"
	"os"
	"time"

	"github.com/charmbracelet/log"
	uv "github.com/charmbracelet/ultraviolet"
	"github.com/spf13/cobra"

	"github.com/taigrr/sundial/pkg/math3d"
	"github.com/taigrr/sundial/pkg/raytrace"
	"github.com/taigrr/sundial/pkg/render"
	"github.com/taigrr/sundial/pkg/scene"
)

// Camera speeds, per second of held key.
const (
	rotationSpeed = math.Pi / 3 // 60°
	zoomSpeed     = 10.0
	liftSpeed     = 5.0
	moveSpeed     = 5.0
	wheelZoom     = 1.0
)

var (
	homePosition = math3d.V3(0, 5, 15)
	homeTarget   = math3d.Zero3()
	fieldOfView  = 70 * math.Pi / 180
)

type viewOptions struct {
	quality     int
	autoQuality bool
	fps         int
}

func newViewCmd(cfg *sceneConfig) *cobra.Command {
	opts := &viewOptions{}
	cmd := &cobra.Command{
		Use:   "view",
		Short: "Explore the diorama in the terminal",
		Long: `Explore the diorama in the terminal.

Controls:
  W/S          tilt the camera up/down
  A/D, ←/→     orbit around the scene
  ↑/↓          zoom out/in
  +/-, wheel   zoom in/out
  Q/E          raise/lower the camera
  I/K          move forward/back
  J/L          strafe left/right
  1/2/3        low/medium/high quality
  P            toggle automatic quality
  T            toggle threaded rendering
  N            advance the time of day
  R            reset the camera
  ?            toggle HUD
  Esc          quit`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if opts.quality < 0 || opts.quality > int(raytrace.QualityHigh) {
				return fmt.Errorf("--quality must be 0, 1 or 2, got %d", opts.quality)
			}
			if opts.fps <= 0 {
				return fmt.Errorf("--fps must be positive, got %d", opts.fps)
			}
			// The terminal is the display, so logs only go to a file.
			closer, err := cfg.setupLogging(io.Discard)
			if err != nil {
				return err
			}
			defer closer.Close()

			s, err := cfg.buildScene()
			if err != nil {
				return err
			}
			return runViewer(cmd.Context(), s, cfg, opts)
		},
	}
	cmd.Flags().IntVar(&opts.quality, "quality", getEnvInt("QUALITY", int(raytrace.QualityMedium)), "starting quality: 0 low, 1 medium, 2 high")
	cmd.Flags().BoolVar(&opts.autoQuality, "auto-quality", getEnvBool("AUTO_QUALITY", false), "start with automatic quality on")
	cmd.Flags().IntVar(&opts.fps, "fps", getEnvInt("FPS", 30), "target frames per second")
	return cmd
}

// viewer is the interactive session state. It is only touched from the
// render loop goroutine.
type viewer struct {
	term   *uv.Terminal
	scene  *scene.Scene
	camera *render.Camera
	fb     *render.Framebuffer

	quality  *raytrace.AutoQuality
	threaded bool
	workers  int
	tod      float64
	showHUD  bool
	fps      float64

	orbit, tilt, zoom, lift motionAxis
	forward, strafe         motionAxis
	targetFPS               int
}

func newViewer(term *uv.Terminal, s *scene.Scene, cfg *sceneConfig, opts *viewOptions) *viewer {
	v := &viewer{
		term:      term,
		scene:     s,
		camera:    render.NewCamera(homePosition, homeTarget, fieldOfView, 1),
		fb:        render.NewFramebuffer(1, 1),
		quality:   raytrace.NewAutoQuality(raytrace.Quality(opts.quality)),
		threaded:  cfg.threaded,
		workers:   cfg.workers,
		tod:       cfg.timeOfDay,
		showHUD:   true,
		targetFPS: opts.fps,
	}
	if opts.autoQuality {
		v.quality.Toggle()
	}
	for _, a := range v.axes() {
		*a = newMotionAxis(v.targetFPS)
	}
	return v
}

func (v *viewer) axes() []*motionAxis {
	return []*motionAxis{&v.orbit, &v.tilt, &v.zoom, &v.lift, &v.forward, &v.strafe}
}

func (v *viewer) stopMotion() {
	for _, a := range v.axes() {
		a.Stop()
	}
}

// resize matches the framebuffer to the terminal. Each cell shows two
// vertically stacked pixels. Coarse quality leaves a strip past the last
// full block that no frame writes, so the new buffer starts opaque black.
func (v *viewer) resize(width, height int) {
	v.fb.Resize(max(width, 1), max(height*2, 1))
	v.fb.Clear(color.RGBA{A: 255})
	v.camera.SetAspectRatio(float64(v.fb.Width) / float64(v.fb.Height))
}

func runViewer(ctx context.Context, s *scene.Scene, cfg *sceneConfig, opts *viewOptions) error {
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

	// Mouse button tracking for wheel zoom, SGR encoding.
	fmt.Fprint(os.Stdout, "\x1b[?1000h")
	fmt.Fprint(os.Stdout, "\x1b[?1006h")

	defer func() {
		fmt.Fprint(os.Stdout, "\x1b[?1000l")
		fmt.Fprint(os.Stdout, "\x1b[?1006l")
		term.ExitAltScreen()
		term.ShowCursor()
		term.Shutdown(context.Background())
	}()

	v := newViewer(term, s, cfg, opts)
	v.resize(width, height)
	log.Info("viewer started", "width", width, "height", height, "quality", v.quality.Level())

	return v.loop(ctx)
}

func (v *viewer) loop(ctx context.Context) error {
	targetDuration := time.Second / time.Duration(v.targetFPS)
	lastFrame := time.Now()

	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		// Drain input before rendering so the frame reflects it.
	events:
		for {
			select {
			case ev, ok := <-v.term.Events():
				if !ok || v.handle(ev) {
					return nil
				}
			default:
				break events
			}
		}

		now := time.Now()
		frameTime := now.Sub(lastFrame)
		lastFrame = now
		dt := min(frameTime.Seconds(), 0.1)

		v.applyMotion(dt)
		v.scene.UpdateSun(v.tod)

		err := raytrace.Render(ctx, v.scene, *v.camera, v.fb, raytrace.Options{
			Scale:     raytrace.ScaleForQuality(v.quality.Level()),
			Threaded:  v.threaded,
			Workers:   v.workers,
			TimeOfDay: v.tod,
		})
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			// Keep showing the previous frame.
			log.Error("frame failed", "err", err)
		}

		v.term.Draw(uv.DrawableFunc(v.draw))
		if err := v.term.Display(); err != nil {
			return fmt.Errorf("display: %w", err)
		}

		if frameTime > 0 {
			v.fps = 1 / frameTime.Seconds()
			v.quality.Observe(v.fps, frameTime)
		}

		if elapsed := time.Since(now); elapsed < targetDuration {
			time.Sleep(targetDuration - elapsed)
		}
	}
}

// handle applies one input event and reports whether to quit.
func (v *viewer) handle(ev uv.Event) bool {
	switch ev := ev.(type) {
	case uv.WindowSizeEvent:
		v.term.Erase()
		v.term.Resize(ev.Width, ev.Height)
		v.resize(ev.Width, ev.Height)

	case uv.KeyPressEvent:
		switch {
		case ev.MatchString("esc", "ctrl+c"):
			return true
		case ev.MatchString("w"):
			v.tilt.Push(rotationSpeed)
		case ev.MatchString("s"):
			v.tilt.Push(-rotationSpeed)
		case ev.MatchString("a", "left"):
			v.orbit.Push(-rotationSpeed)
		case ev.MatchString("d", "right"):
			v.orbit.Push(rotationSpeed)
		case ev.MatchString("up", "-", "_"):
			v.zoom.Push(-zoomSpeed)
		case ev.MatchString("down", "+", "="):
			v.zoom.Push(zoomSpeed)
		case ev.MatchString("q"):
			v.lift.Push(liftSpeed)
		case ev.MatchString("e"):
			v.lift.Push(-liftSpeed)
		case ev.MatchString("i"):
			v.forward.Push(moveSpeed)
		case ev.MatchString("k"):
			v.forward.Push(-moveSpeed)
		case ev.MatchString("j"):
			v.strafe.Push(-moveSpeed)
		case ev.MatchString("l"):
			v.strafe.Push(moveSpeed)
		case ev.MatchString("1"):
			v.quality.SetManual(raytrace.QualityLow)
		case ev.MatchString("2"):
			v.quality.SetManual(raytrace.QualityMedium)
		case ev.MatchString("3"):
			v.quality.SetManual(raytrace.QualityHigh)
		case ev.MatchString("p"):
			on := v.quality.Toggle()
			log.Debug("auto quality", "enabled", on)
		case ev.MatchString("t"):
			v.threaded = !v.threaded
		case ev.MatchString("n"):
			v.tod = scene.AdvanceTime(v.tod)
		case ev.MatchString("r"):
			v.camera = render.NewCamera(homePosition, homeTarget, fieldOfView, v.camera.AspectRatio)
			v.stopMotion()
		case ev.MatchString("?", "shift+/"):
			v.showHUD = !v.showHUD
		}

	case uv.MouseWheelEvent:
		switch ev.Button {
		case uv.MouseWheelUp:
			v.camera.Zoom(wheelZoom)
		case uv.MouseWheelDown:
			v.camera.Zoom(-wheelZoom)
		}
	}
	return false
}

// applyMotion moves the camera by every axis still in motion.
func (v *viewer) applyMotion(dt float64) {
	if d := v.orbit.Step(dt); d != 0 {
		v.camera.RotateAroundTarget(d)
	}
	if d := v.tilt.Step(dt); d != 0 {
		v.camera.RotateVertical(d)
	}
	if d := v.zoom.Step(dt); d != 0 {
		v.camera.Zoom(d)
	}
	switch d := v.lift.Step(dt); {
	case d > 0:
		v.camera.MoveUp(d)
	case d < 0:
		v.camera.MoveDown(-d)
	}
	switch d := v.forward.Step(dt); {
	case d > 0:
		v.camera.MoveForward(d)
	case d < 0:
		v.camera.MoveBackward(-d)
	}
	switch d := v.strafe.Step(dt); {
	case d > 0:
		v.camera.StrafeRight(d)
	case d < 0:
		v.camera.StrafeLeft(-d)
	}
}

func (v *viewer) draw(scr uv.Screen, area uv.Rectangle) {
	v.fb.Draw(scr, area)
	if !v.showHUD {
		return
	}
	for i, line := range v.hudLines() {
		row := area.Min.Y + i
		if row >= area.Max.Y {
			break
		}
		// HUD text is ASCII, so its byte length is its cell width.
		w := min(len(line.text), area.Dx())
		styled := uv.NewStyledString(hudPanel + line.style + line.text + hudReset)
		styled.Draw(scr, uv.Rect(area.Min.X, row, w, 1))
	}
}

// SGR sequences for the HUD.
const (
	hudReset  = "\x1b[0m"
	hudPanel  = "\x1b[48;2;25;35;60m"
	hudTitle  = "\x1b[1;38;2;120;160;255m"
	hudText   = "\x1b[38;2;180;210;255m"
	hudGreen  = "\x1b[92m"
	hudYellow = "\x1b[93m"
	hudRed    = "\x1b[91m"
)

type hudLine struct {
	style string
	text  string
}

// hudLines is the info panel.
func (v *viewer) hudLines() []hudLine {
	fpsStyle := hudRed
	switch {
	case v.fps >= 50:
		fpsStyle = hudGreen
	case v.fps >= 25:
		fpsStyle = hudYellow
	}

	level := v.quality.Level()
	mode := "manual"
	if v.quality.Enabled {
		mode = "auto, max " + v.quality.Manual().String()
	}
	scale := raytrace.ScaleForQuality(level)
	threads := "off"
	if v.threaded {
		threads = "on"
	}

	return []hudLine{
		{hudTitle, " sundial "},
		{fpsStyle, fmt.Sprintf(" FPS: %.0f ", v.fps)},
		{hudText, fmt.Sprintf(" Quality: %s [%s] ", level, mode)},
		{hudText, fmt.Sprintf(" Pixels: %.0f%% ", 100/float64(scale*scale))},
		{hudText, fmt.Sprintf(" Threads: %s ", threads)},
		{hudText, fmt.Sprintf(" Hour: %.2f ", v.tod)},
		{hudText, fmt.Sprintf(" Orbit: %.0f/%.0f deg, %.1f ",
			v.camera.HorizontalAngle()*180/math.Pi,
			v.camera.VerticalAngle()*180/math.Pi,
			v.camera.Distance())},
	}
}
