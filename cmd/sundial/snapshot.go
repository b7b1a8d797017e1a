package main

import (
	"context"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/disintegration/imaging"
	"github.com/spf13/cobra"

	"github.com/taigrr/sundial/pkg/math3d"
	"github.com/taigrr/sundial/pkg/publish"
	"github.com/taigrr/sundial/pkg/raytrace"
	"github.com/taigrr/sundial/pkg/render"
	"github.com/taigrr/sundial/pkg/scene"
)

type snapshotOptions struct {
	width, height int
	scale         int
	out           string
	thumb         uint

	eye      []float64
	target   []float64
	orbit    float64
	tilt     float64
	distance float64

	upload bool
	s3     publish.Config
}

func newSnapshotCmd(cfg *sceneConfig) *cobra.Command {
	opts := &snapshotOptions{}
	cmd := &cobra.Command{
		Use:   "snapshot",
		Short: "Render the diorama to an image file",
		Example: `  sundial snapshot --time 0.75 --out night.png
  sundial snapshot --width 1920 --height 1080 --thumb 480 --upload --bucket renders`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			closer, err := cfg.setupLogging(os.Stderr)
			if err != nil {
				return err
			}
			defer closer.Close()

			s, err := cfg.buildScene()
			if err != nil {
				return err
			}
			return runSnapshot(cmd.Context(), s, cfg, opts)
		},
	}

	f := cmd.Flags()
	f.IntVar(&opts.width, "width", getEnvInt("WIDTH", 800), "image width in pixels")
	f.IntVar(&opts.height, "height", getEnvInt("HEIGHT", 600), "image height in pixels")
	f.IntVar(&opts.scale, "scale", getEnvInt("SCALE", 1), "trace one ray per scale×scale block")
	f.StringVarP(&opts.out, "out", "o", getEnv("OUT", "sundial.png"), "output file, format from the extension")
	f.UintVar(&opts.thumb, "thumb", uint(getEnvInt("THUMB", 0)), "resize the output to this width (0 keeps full size)")
	f.Float64SliceVar(&opts.eye, "eye", nil, "camera position as x,y,z (default 0,5,15)")
	f.Float64SliceVar(&opts.target, "target", nil, "point the camera looks at as x,y,z (default origin)")
	f.Float64Var(&opts.orbit, "orbit", 0, "rotate the camera around the scene by this many radians")
	f.Float64Var(&opts.tilt, "tilt", 0, "tilt the camera by this many radians")
	f.Float64Var(&opts.distance, "distance", 0, "camera distance from the scene center (0 keeps the default)")

	f.BoolVar(&opts.upload, "upload", getEnvBool("UPLOAD", false), "upload the image to S3")
	f.StringVar(&opts.s3.Bucket, "bucket", getEnv("S3_BUCKET", ""), "S3 bucket")
	f.StringVar(&opts.s3.Region, "region", getEnv("S3_REGION", os.Getenv("AWS_REGION")), "S3 region")
	f.StringVar(&opts.s3.Endpoint, "endpoint", getEnv("S3_ENDPOINT", ""), "S3 compatible endpoint URL")
	f.StringVar(&opts.s3.Prefix, "prefix", getEnv("S3_PREFIX", "snapshots"), "object key prefix")
	f.StringVar(&opts.s3.ACL, "acl", getEnv("S3_ACL", ""), "canned ACL, e.g. public-read")
	opts.s3.AccessKey = getEnv("S3_ACCESS_KEY", "")
	opts.s3.SecretKey = getEnv("S3_SECRET_KEY", "")
	return cmd
}

// snapshotUploader is the part of publish.S3Publisher a snapshot needs.
type snapshotUploader interface {
	Publish(ctx context.Context, name string, data []byte) (string, error)
}

var newUploader = func(cfg publish.Config) (snapshotUploader, error) {
	pub, err := publish.NewS3Publisher(cfg)
	if err != nil {
		return nil, err
	}
	return pub, nil
}

func vectorFlag(name string, v []float64) (math3d.Vec3, bool, error) {
	switch len(v) {
	case 0:
		return math3d.Vec3{}, false, nil
	case 3:
		return math3d.V3(v[0], v[1], v[2]), true, nil
	default:
		return math3d.Vec3{}, false, fmt.Errorf("--%s needs x,y,z, got %d values", name, len(v))
	}
}

// snapshotCamera places the default viewer camera, moves it to the
// requested eye and target, then applies orbit, tilt and distance.
func snapshotCamera(opts *snapshotOptions) (*render.Camera, error) {
	cam := render.NewCamera(homePosition, homeTarget, fieldOfView, float64(opts.width)/float64(opts.height))
	eye, ok, err := vectorFlag("eye", opts.eye)
	if err != nil {
		return nil, err
	}
	if ok {
		cam.SetPosition(eye)
	}
	target, ok, err := vectorFlag("target", opts.target)
	if err != nil {
		return nil, err
	}
	if ok {
		cam.LookAt(target)
	}
	if cam.Distance() == 0 {
		return nil, fmt.Errorf("--eye and --target must differ")
	}

	if opts.orbit != 0 {
		cam.RotateAroundTarget(opts.orbit)
	}
	if opts.tilt != 0 {
		cam.RotateVertical(opts.tilt)
	}
	if opts.distance > 0 {
		cam.Zoom(cam.Distance() - opts.distance)
	}
	return cam, nil
}

func runSnapshot(ctx context.Context, s *scene.Scene, cfg *sceneConfig, opts *snapshotOptions) error {
	if opts.width <= 0 || opts.height <= 0 {
		return fmt.Errorf("invalid size %dx%d", opts.width, opts.height)
	}

	cam, err := snapshotCamera(opts)
	if err != nil {
		return err
	}
	fb := render.NewFramebuffer(opts.width, opts.height)

	start := time.Now()
	err = raytrace.Render(ctx, s, *cam, fb, raytrace.Options{
		Scale:     opts.scale,
		Threaded:  cfg.threaded,
		Workers:   cfg.workers,
		TimeOfDay: cfg.timeOfDay,
	})
	if err != nil {
		return fmt.Errorf("render: %w", err)
	}
	log.Info("rendered",
		"width", opts.width,
		"height", opts.height,
		"scale", opts.scale,
		"time", cfg.timeOfDay,
		"elapsed", time.Since(start).Round(time.Millisecond))

	var img image.Image = fb.ToImage()
	if opts.thumb > 0 {
		img = publish.Thumbnail(img, opts.thumb)
		if err := imaging.Save(img, opts.out); err != nil {
			return fmt.Errorf("failed to save thumbnail: %w", err)
		}
	} else if err := fb.SavePNG(opts.out); err != nil {
		return err
	}
	log.Info("saved", "path", opts.out)

	if !opts.upload {
		return nil
	}
	return uploadSnapshot(ctx, opts, img)
}

// uploadSnapshot publishes img as PNG whatever format was written to disk.
func uploadSnapshot(ctx context.Context, opts *snapshotOptions, img image.Image) error {
	pub, err := newUploader(opts.s3)
	if err != nil {
		return err
	}
	data, err := publish.EncodePNG(img)
	if err != nil {
		return err
	}
	base := filepath.Base(opts.out)
	name := strings.TrimSuffix(base, filepath.Ext(base)) + ".png"
	_, err = pub.Publish(ctx, name, data)
	return err
}
