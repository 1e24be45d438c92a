package imageio

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spacesedan/facesentiment/internal/apperrors"
)

func solidImage(w, h int, c color.Color) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

func writePNG(t *testing.T, dir, name string, img image.Image) string {
	t.Helper()
	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, img))
	return path
}

func TestOpen_PNG(t *testing.T) {
	path := writePNG(t, t.TempDir(), "face.png", solidImage(8, 6, color.NRGBA{R: 200, A: 255}))

	img, err := Open(path)
	require.NoError(t, err)
	assert.Equal(t, 8, img.Bounds().Dx())
	assert.Equal(t, 6, img.Bounds().Dy())
}

func TestOpen_Errors(t *testing.T) {
	dir := t.TempDir()
	notImage := filepath.Join(dir, "notes.txt")
	require.NoError(t, os.WriteFile(notImage, []byte("not an image"), 0o644))

	tests := []struct {
		name string
		path string
	}{
		{"missing file", filepath.Join(dir, "missing.jpg")},
		{"not an image", notImage},
		{"directory", dir},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img, err := Open(tt.path)
			require.Error(t, err)
			assert.Nil(t, img)
			assert.Equal(t, apperrors.KindDecode, apperrors.KindOf(err))
		})
	}
}

func TestEncodeRoundTrip(t *testing.T) {
	src := solidImage(4, 4, color.NRGBA{G: 255, A: 255})

	pngBytes, err := EncodePNG(src)
	require.NoError(t, err)
	decoded, format, err := image.Decode(bytes.NewReader(pngBytes))
	require.NoError(t, err)
	assert.Equal(t, "png", format)
	assert.Equal(t, src.Bounds(), decoded.Bounds())

	jpegBytes, err := EncodeJPEG(src, 90)
	require.NoError(t, err)
	_, format, err = image.Decode(bytes.NewReader(jpegBytes))
	require.NoError(t, err)
	assert.Equal(t, "jpeg", format)
}
