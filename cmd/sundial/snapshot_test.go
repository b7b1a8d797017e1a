package main

import (
	"bytes"
	"context"
	"image/png"
	"math"
	"path/filepath"
	"testing"

	"github.com/disintegration/imaging"

	"github.com/taigrr/sundial/pkg/math3d"
	"github.com/taigrr/sundial/pkg/publish"
)

func TestRunSnapshot(t *testing.T) {
	cfg := smallConfig()
	s, err := cfg.buildScene()
	if err != nil {
		t.Fatal(err)
	}

	dir := t.TempDir()
	tests := []struct {
		name         string
		thumb        uint
		wantW, wantH int
	}{
		{"full size", 0, 32, 24},
		{"thumbnail", 16, 16, 12},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			opts := &snapshotOptions{
				width:  32,
				height: 24,
				scale:  2,
				thumb:  tc.thumb,
				out:    filepath.Join(dir, tc.name+".png"),
			}
			if err := runSnapshot(context.Background(), s, cfg, opts); err != nil {
				t.Fatalf("runSnapshot: %v", err)
			}
			img, err := imaging.Open(opts.out)
			if err != nil {
				t.Fatalf("open: %v", err)
			}
			if b := img.Bounds(); b.Dx() != tc.wantW || b.Dy() != tc.wantH {
				t.Errorf("size = %dx%d, want %dx%d", b.Dx(), b.Dy(), tc.wantW, tc.wantH)
			}
		})
	}
}

func TestRunSnapshotRejectsSize(t *testing.T) {
	cfg := smallConfig()
	s, _ := cfg.buildScene()
	opts := &snapshotOptions{width: 0, height: 10, out: filepath.Join(t.TempDir(), "x.png")}
	if err := runSnapshot(context.Background(), s, cfg, opts); err == nil {
		t.Error("expected an error for a zero width")
	}
}

func TestSnapshotCamera(t *testing.T) {
	opts := &snapshotOptions{width: 40, height: 20, orbit: math.Pi / 2, distance: 5}
	cam, err := snapshotCamera(opts)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(cam.Distance()-5) > 1e-9 {
		t.Errorf("distance = %v", cam.Distance())
	}
	if cam.AspectRatio != 2 {
		t.Errorf("aspect = %v", cam.AspectRatio)
	}
	if cam.Target != homeTarget {
		t.Errorf("orbiting must keep the target, got %v", cam.Target)
	}
}

func TestSnapshotCameraEyeAndTarget(t *testing.T) {
	opts := &snapshotOptions{width: 10, height: 10, eye: []float64{0, 2, 8}, target: []float64{0, 2, 0}}
	cam, err := snapshotCamera(opts)
	if err != nil {
		t.Fatal(err)
	}
	if cam.Position != math3d.V3(0, 2, 8) || cam.Target != math3d.V3(0, 2, 0) {
		t.Errorf("camera at %v looking at %v", cam.Position, cam.Target)
	}
	if math.Abs(cam.Distance()-8) > 1e-9 {
		t.Errorf("distance = %v, want 8", cam.Distance())
	}

	tests := []struct {
		name        string
		eye, target []float64
	}{
		{"short eye", []float64{1, 2}, nil},
		{"long target", nil, []float64{1, 2, 3, 4}},
		{"eye on target", []float64{1, 1, 1}, []float64{1, 1, 1}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			opts := &snapshotOptions{width: 10, height: 10, eye: tc.eye, target: tc.target}
			if _, err := snapshotCamera(opts); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

type recordingUploader struct {
	name string
	data []byte
}

func (u *recordingUploader) Publish(_ context.Context, name string, data []byte) (string, error) {
	u.name, u.data = name, data
	return "snapshots/" + name, nil
}

func TestRunSnapshotUploadsEncodedImage(t *testing.T) {
	cfg := smallConfig()
	s, err := cfg.buildScene()
	if err != nil {
		t.Fatal(err)
	}

	rec := &recordingUploader{}
	orig := newUploader
	newUploader = func(c publish.Config) (snapshotUploader, error) {
		if c.Bucket != "renders" {
			t.Errorf("bucket = %q", c.Bucket)
		}
		return rec, nil
	}
	t.Cleanup(func() { newUploader = orig })

	opts := &snapshotOptions{
		width:  32,
		height: 24,
		scale:  4,
		thumb:  16,
		out:    filepath.Join(t.TempDir(), "frame.jpg"),
		upload: true,
		s3:     publish.Config{Bucket: "renders"},
	}
	if err := runSnapshot(context.Background(), s, cfg, opts); err != nil {
		t.Fatalf("runSnapshot: %v", err)
	}

	if rec.name != "frame.png" {
		t.Errorf("uploaded name = %q, want frame.png", rec.name)
	}
	img, err := png.Decode(bytes.NewReader(rec.data))
	if err != nil {
		t.Fatalf("upload is not a PNG: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 16 || b.Dy() != 12 {
		t.Errorf("uploaded size = %dx%d, want the 16x12 thumbnail", b.Dx(), b.Dy())
	}
}
