package transform

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"io"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/magtapp/image-service/pkg/types/errs"
)

// Resizer re-encodes raster images, resizing when a target dimension is set.
// Width and height of zero is an explicit no-op: the bytes still pass through
// decode and encode, normalizing the output format.
type Resizer struct {
	width  int
	height int
}

func New(width, height int) *Resizer {
	return &Resizer{width: width, height: height}
}

func (r *Resizer) ShouldTransform(contentType string) bool {
	return strings.HasPrefix(strings.ToLower(contentType), "image/")
}

func (r *Resizer) Transform(ctx context.Context, contentType string, data io.Reader) (io.Reader, int64, error) {
	img, err := imaging.Decode(data)
	if err != nil {
		return nil, 0, fmt.Errorf("Resizer - Transform - imaging.Decode: %w: %w", errs.ErrTransform, err)
	}

	if err := ctx.Err(); err != nil {
		return nil, 0, fmt.Errorf("Resizer - Transform: %w", err)
	}

	if r.width > 0 || r.height > 0 {
		img = imaging.Resize(img, r.width, r.height, imaging.Lanczos)
	}

	res, err := encodeImage(img, contentType)
	if err != nil {
		return nil, 0, fmt.Errorf("Resizer - Transform - encodeImage: %w: %w", errs.ErrTransform, err)
	}

	return bytes.NewReader(res), int64(len(res)), nil
}

func encodeImage(img image.Image, contentType string) ([]byte, error) {
	var buf bytes.Buffer
	var format imaging.Format

	switch strings.ToLower(contentType) {
	case "image/jpeg", "image/jpg":
		format = imaging.JPEG
	case "image/png":
		format = imaging.PNG
	default:
		format = imaging.JPEG
	}

	err := imaging.Encode(&buf, img, format)
	if err != nil {
		return nil, fmt.Errorf("encodeImage - imaging.Encode: %w", err)
	}

	return buf.Bytes(), nil
}
