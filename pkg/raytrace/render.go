package raytrace

import (
	"context"
	"fmt"
	"image/color"

	"golang.org/x/sync/errgroup"

	"github.com/taigrr/sundial/pkg/render"
	"github.com/taigrr/sundial/pkg/scene"
)

// DefaultWorkers is the band count used when Options.Workers is unset.
const DefaultWorkers = 4

// Options controls a single frame.
type Options struct {
	// Scale is the edge length of the block each primary ray fills.
	// Values below 1 are treated as 1.
	Scale int
	// Threaded splits the frame into Workers horizontal bands.
	Threaded bool
	Workers  int
	// TimeOfDay in [0,1), 0 being midday.
	TimeOfDay float64
}

// sample is one traced pixel of the downscaled image.
type sample struct {
	sx, sy int
	c      color.RGBA
}

// frame is the read-only state shared by every band of one Render call.
type frame struct {
	scene   *scene.Scene
	camera  render.Camera
	scaledW int
	scaledH int
	scale   int
	tod     float64
}

// Render traces one frame into fb. The camera is taken by value so that
// callers can keep moving their own copy while a frame is in flight; the
// scene must not be mutated until Render returns.
//
// Threaded and single-threaded frames are identical pixel for pixel. A
// panic inside a band is returned as an error after every band finishes,
// and the frame is not committed.
func Render(ctx context.Context, s *scene.Scene, cam render.Camera, fb *render.Framebuffer, opts Options) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("render cancelled: %w", err)
	}

	scale := max(opts.Scale, 1)
	f := &frame{
		scene:   s,
		camera:  cam,
		scaledW: fb.Width / scale,
		scaledH: fb.Height / scale,
		scale:   scale,
		tod:     opts.TimeOfDay,
	}
	if f.scaledW == 0 || f.scaledH == 0 {
		return nil
	}

	if !opts.Threaded {
		out, err := f.band(0, f.scaledH)
		if err != nil {
			return err
		}
		f.commit(fb, out)
		return nil
	}

	workers := opts.Workers
	if workers <= 0 {
		workers = DefaultWorkers
	}
	rows := (f.scaledH + workers - 1) / workers

	// Bands write disjoint slots and are committed only after all of
	// them finish.
	var g errgroup.Group
	results := make([][]sample, workers)
	for id := range workers {
		start := id * rows
		end := min(start+rows, f.scaledH)
		if start >= end {
			continue
		}
		g.Go(func() error {
			out, err := f.band(start, end)
			if err != nil {
				return err
			}
			results[id] = out
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	for _, out := range results {
		f.commit(fb, out)
	}
	return nil
}

// band traces scaled rows [start, end).
func (f *frame) band(start, end int) (out []sample, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("render band %d-%d: %v", start, end, r)
		}
	}()

	out = make([]sample, 0, (end-start)*f.scaledW)
	w, h := float64(f.scaledW), float64(f.scaledH)
	for sy := start; sy < end; sy++ {
		for sx := range f.scaledW {
			ray := f.camera.GetRay(float64(sx)/w, float64(sy)/h)
			c := Trace(f.scene, ray, 0, f.tod)
			out = append(out, sample{sx: sx, sy: sy, c: c.RGBA()})
		}
	}
	return out, nil
}

func (f *frame) commit(fb *render.Framebuffer, out []sample) {
	for _, p := range out {
		fb.FillRect(p.sx*f.scale, p.sy*f.scale, f.scale, f.scale, p.c)
	}
}
