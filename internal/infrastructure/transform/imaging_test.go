package transform

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"io"
	"testing"

	"github.com/magtapp/image-service/pkg/types/errs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 100, A: 255})
		}
	}

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))

	return buf.Bytes()
}

func TestShouldTransform(t *testing.T) {
	r := New(0, 0)

	assert.True(t, r.ShouldTransform("image/png"))
	assert.True(t, r.ShouldTransform("image/jpeg"))
	assert.True(t, r.ShouldTransform("IMAGE/PNG"))
	assert.False(t, r.ShouldTransform("text/plain"))
	assert.False(t, r.ShouldTransform("application/octet-stream"))
}

func TestTransformNoResizeStillReencodes(t *testing.T) {
	src := pngBytes(t, 16, 12)
	r := New(0, 0)

	out, size, err := r.Transform(context.Background(), "image/png", bytes.NewReader(src))
	require.NoError(t, err)

	data, err := io.ReadAll(out)
	require.NoError(t, err)
	assert.Equal(t, int64(len(data)), size)

	decoded, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, 16, decoded.Bounds().Dx())
	assert.Equal(t, 12, decoded.Bounds().Dy())
}

func TestTransformResize(t *testing.T) {
	src := pngBytes(t, 16, 12)
	r := New(8, 6)

	out, _, err := r.Transform(context.Background(), "image/png", bytes.NewReader(src))
	require.NoError(t, err)

	decoded, err := png.Decode(out)
	require.NoError(t, err)
	assert.Equal(t, 8, decoded.Bounds().Dx())
	assert.Equal(t, 6, decoded.Bounds().Dy())
}

func TestTransformCorruptData(t *testing.T) {
	r := New(0, 0)

	_, _, err := r.Transform(context.Background(), "image/png", bytes.NewReader([]byte("not an image")))

	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrTransform)
}

func TestTransformCancelledContext(t *testing.T) {
	src := pngBytes(t, 4, 4)
	r := New(0, 0)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err := r.Transform(ctx, "image/png", bytes.NewReader(src))

	assert.ErrorIs(t, err, context.Canceled)
}
