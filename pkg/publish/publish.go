// Package publish encodes rendered frames and uploads them to S3 compatible
// object storage.
package publish

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"mime"
	"path"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
	"github.com/charmbracelet/log"
	"github.com/disintegration/imaging"
	"github.com/nfnt/resize"
)

// DefaultTimeout bounds a single upload.
const DefaultTimeout = 30 * time.Second

// ErrNoBucket is returned when publishing without a configured bucket.
var ErrNoBucket = errors.New("no bucket configured")

// Config describes the upload target. Empty credentials fall back to the
// default AWS credential chain; an empty endpoint means AWS itself.
type Config struct {
	Bucket    string
	Region    string
	Endpoint  string
	AccessKey string
	SecretKey string
	// Prefix is prepended to every object key.
	Prefix  string
	ACL     string
	Timeout time.Duration
}

// S3Publisher uploads PNG snapshots.
type S3Publisher struct {
	cfg    Config
	client s3iface.S3API
}

// NewS3Publisher opens an AWS session for cfg.
func NewS3Publisher(cfg Config) (*S3Publisher, error) {
	if cfg.Bucket == "" {
		return nil, ErrNoBucket
	}
	awsCfg := &aws.Config{Region: aws.String(cfg.Region)}
	if cfg.AccessKey != "" {
		awsCfg.Credentials = credentials.NewStaticCredentials(cfg.AccessKey, cfg.SecretKey, "")
	}
	if cfg.Endpoint != "" {
		awsCfg.Endpoint = aws.String(cfg.Endpoint)
		awsCfg.S3ForcePathStyle = aws.Bool(true)
	}
	sess, err := session.NewSession(awsCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create S3 session: %w", err)
	}
	return NewS3PublisherWithClient(cfg, s3.New(sess)), nil
}

// NewS3PublisherWithClient uses an existing S3 client.
func NewS3PublisherWithClient(cfg Config, client s3iface.S3API) *S3Publisher {
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	return &S3Publisher{cfg: cfg, client: client}
}

// Key returns the object key used for name.
func (p *S3Publisher) Key(name string) string {
	return path.Join(p.cfg.Prefix, name)
}

// Publish uploads data under name and returns the object key. The content
// type follows the extension of name, defaulting to PNG.
func (p *S3Publisher) Publish(ctx context.Context, name string, data []byte) (string, error) {
	if p.cfg.Bucket == "" {
		return "", ErrNoBucket
	}
	ctx, cancel := context.WithTimeout(ctx, p.cfg.Timeout)
	defer cancel()

	key := p.Key(name)
	input := &s3.PutObjectInput{
		Bucket:        aws.String(p.cfg.Bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentLength: aws.Int64(int64(len(data))),
		ContentType:   aws.String(contentType(name)),
	}
	if p.cfg.ACL != "" {
		input.ACL = aws.String(p.cfg.ACL)
	}
	if _, err := p.client.PutObjectWithContext(ctx, input); err != nil {
		return "", fmt.Errorf("failed to upload %s: %w", key, err)
	}

	log.Info("uploaded snapshot", "bucket", p.cfg.Bucket, "key", key, "bytes", len(data))
	return key, nil
}

func contentType(name string) string {
	if t := mime.TypeByExtension(path.Ext(name)); t != "" {
		return t
	}
	return "image/png"
}

// EncodePNG encodes img as PNG.
func EncodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		return nil, fmt.Errorf("failed to encode png: %w", err)
	}
	return buf.Bytes(), nil
}

// Thumbnail scales img to the given width, keeping its aspect ratio. A
// width of zero or one not smaller than the image returns img unchanged.
func Thumbnail(img image.Image, width uint) image.Image {
	if width == 0 || int(width) >= img.Bounds().Dx() {
		return img
	}
	return resize.Resize(width, 0, img, resize.Bilinear)
}
