package publish

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"io"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/request"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
	"github.com/disintegration/imaging"
)

type fakeS3 struct {
	s3iface.S3API
	input    *s3.PutObjectInput
	body     []byte
	deadline bool
	err      error
}

func (f *fakeS3) PutObjectWithContext(ctx aws.Context, in *s3.PutObjectInput, _ ...request.Option) (*s3.PutObjectOutput, error) {
	f.input = in
	_, f.deadline = ctx.Deadline()
	body, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	f.body = body
	if f.err != nil {
		return nil, f.err
	}
	return &s3.PutObjectOutput{}, nil
}

func TestPublish(t *testing.T) {
	fake := &fakeS3{}
	p := NewS3PublisherWithClient(Config{
		Bucket: "frames",
		Prefix: "sundial/snapshots",
		ACL:    "public-read",
	}, fake)

	data := []byte("png bytes")
	key, err := p.Publish(context.Background(), "noon.png", data)
	if err != nil {
		t.Fatalf("Publish: %v", err)
	}
	if key != "sundial/snapshots/noon.png" {
		t.Errorf("key = %q", key)
	}

	in := fake.input
	if aws.StringValue(in.Bucket) != "frames" || aws.StringValue(in.Key) != key {
		t.Errorf("bucket/key = %q/%q", aws.StringValue(in.Bucket), aws.StringValue(in.Key))
	}
	if aws.StringValue(in.ContentType) != "image/png" {
		t.Errorf("content type = %q", aws.StringValue(in.ContentType))
	}
	if aws.Int64Value(in.ContentLength) != int64(len(data)) {
		t.Errorf("content length = %d", aws.Int64Value(in.ContentLength))
	}
	if aws.StringValue(in.ACL) != "public-read" {
		t.Errorf("acl = %q", aws.StringValue(in.ACL))
	}
	if !bytes.Equal(fake.body, data) {
		t.Errorf("body = %q", fake.body)
	}
	if !fake.deadline {
		t.Error("upload should run with a timeout")
	}
}

func TestPublishOmitsEmptyACL(t *testing.T) {
	fake := &fakeS3{}
	p := NewS3PublisherWithClient(Config{Bucket: "frames"}, fake)
	if _, err := p.Publish(context.Background(), "a.png", nil); err != nil {
		t.Fatal(err)
	}
	if fake.input.ACL != nil {
		t.Errorf("ACL = %q, want unset", aws.StringValue(fake.input.ACL))
	}
	if p.cfg.Timeout != DefaultTimeout {
		t.Errorf("timeout = %v", p.cfg.Timeout)
	}
}

func TestPublishErrors(t *testing.T) {
	upstream := errors.New("access denied")
	p := NewS3PublisherWithClient(Config{Bucket: "frames", Timeout: time.Second}, &fakeS3{err: upstream})
	if _, err := p.Publish(context.Background(), "a.png", []byte{1}); !errors.Is(err, upstream) {
		t.Errorf("err = %v, want wrapped upstream error", err)
	}

	p = NewS3PublisherWithClient(Config{}, &fakeS3{})
	if _, err := p.Publish(context.Background(), "a.png", []byte{1}); !errors.Is(err, ErrNoBucket) {
		t.Errorf("err = %v, want ErrNoBucket", err)
	}
	if _, err := NewS3Publisher(Config{}); !errors.Is(err, ErrNoBucket) {
		t.Errorf("NewS3Publisher err = %v, want ErrNoBucket", err)
	}
}

func testImage(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := range h {
		for x := range w {
			img.Set(x, y, color.NRGBA{R: uint8(x * 10), G: uint8(y * 10), B: 200, A: 255})
		}
	}
	return img
}

func TestEncodePNG(t *testing.T) {
	src := testImage(8, 4)
	data, err := EncodePNG(src)
	if err != nil {
		t.Fatalf("EncodePNG: %v", err)
	}
	got, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Bounds() != src.Bounds() {
		t.Fatalf("bounds = %v", got.Bounds())
	}
	r, g, b, _ := got.At(3, 2).RGBA()
	if r>>8 != 30 || g>>8 != 20 || b>>8 != 200 {
		t.Errorf("pixel (3,2) = %d,%d,%d", r>>8, g>>8, b>>8)
	}
}

func TestThumbnail(t *testing.T) {
	src := testImage(40, 20)
	tests := []struct {
		name  string
		width uint
		want  image.Point
	}{
		{"half", 20, image.Pt(20, 10)},
		{"zero keeps size", 0, image.Pt(40, 20)},
		{"larger keeps size", 80, image.Pt(40, 20)},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := Thumbnail(src, tc.width).Bounds().Size(); got != tc.want {
				t.Errorf("size = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestContentType(t *testing.T) {
	tests := map[string]string{
		"a.png":  "image/png",
		"b.jpg":  "image/jpeg",
		"c":      "image/png",
		"d.PNG":  "image/png",
		"e.jpeg": "image/jpeg",
	}
	for name, want := range tests {
		if got := contentType(name); got != want {
			t.Errorf("contentType(%q) = %q, want %q", name, got, want)
		}
	}
}
