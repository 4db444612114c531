package imageprocessor

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pngImage(t *testing.T, w, h int) *bytes.Buffer {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), B: 120, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return &buf
}

func TestProcessShrinksLargeImage(t *testing.T) {
	t.Parallel()

	// Arrange
	p := NewProcessor(85)
	src := pngImage(t, 1200, 800)

	// Act
	out, contentType, err := p.Process(src, SizeAvatar)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "image/png", contentType)

	decoded, _, err := image.Decode(out)
	require.NoError(t, err)
	bounds := decoded.Bounds()
	assert.LessOrEqual(t, bounds.Dx(), SizeAvatar.Width)
	assert.LessOrEqual(t, bounds.Dy(), SizeAvatar.Height)

	// Aspect ratio is preserved: 1200x800 fits 400x400 as 400x266.
	assert.Equal(t, 400, bounds.Dx())
	assert.Less(t, bounds.Dy(), 300)
}

func TestProcessNeverUpscales(t *testing.T) {
	t.Parallel()

	// Arrange
	p := NewProcessor(85)
	src := pngImage(t, 120, 80)

	// Act
	out, _, err := p.Process(src, SizeAvatar)

	// Assert
	require.NoError(t, err)
	decoded, _, err := image.Decode(out)
	require.NoError(t, err)
	assert.Equal(t, 120, decoded.Bounds().Dx())
	assert.Equal(t, 80, decoded.Bounds().Dy())
}

func TestProcessRejectsNonImage(t *testing.T) {
	t.Parallel()

	p := NewProcessor(85)
	_, _, err := p.Process(bytes.NewReader([]byte("pas une image")), SizeAvatar)
	assert.Error(t, err)
}

func TestIsValidImage(t *testing.T) {
	t.Parallel()

	assert.True(t, IsValidImage(pngImage(t, 10, 10)))
	assert.False(t, IsValidImage(bytes.NewReader([]byte("%PDF-1.4"))))
}
