package classifier

import (
	"image"
	"image/color"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fill(w, h int, c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

func TestPreprocessor_TensorShapeAndRange(t *testing.T) {
	p := DefaultPreprocessor()
	img := fill(320, 240, color.NRGBA{R: 255, G: 0, B: 128, A: 255})

	data, err := p.Tensor(img)
	require.NoError(t, err)
	require.Len(t, data, 3*224*224)

	plane := 224 * 224
	assert.InDelta(t, 1.0, data[0], 1e-2)
	assert.InDelta(t, -1.0, data[plane], 1e-2)
	assert.InDelta(t, 0.0039, data[2*plane], 1e-2)

	for _, v := range data {
		assert.GreaterOrEqual(t, v, float32(-1.001))
		assert.LessOrEqual(t, v, float32(1.001))
	}
}

func TestPreprocessor_NoNormalize(t *testing.T) {
	p := DefaultPreprocessor()
	p.Width, p.Height = 8, 8
	p.DoNormalize = false

	data, err := p.Tensor(fill(16, 16, color.NRGBA{R: 255, G: 255, B: 255, A: 255}))
	require.NoError(t, err)
	for _, v := range data {
		assert.InDelta(t, 1.0, v, 1e-2)
	}
}

func TestPreprocessor_Crop(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 60, 40))
	rng := rand.New(rand.NewSource(1))
	for i := range src.Pix {
		src.Pix[i] = uint8(rng.Intn(256))
	}

	tests := []struct {
		mode  string
		check func(t *testing.T, b image.Rectangle)
	}{
		{"none", func(t *testing.T, b image.Rectangle) {
			assert.Equal(t, 60, b.Dx())
			assert.Equal(t, 40, b.Dy())
		}},
		{"center", func(t *testing.T, b image.Rectangle) {
			assert.Equal(t, 40, b.Dx())
			assert.Equal(t, 40, b.Dy())
		}},
		{"smart", func(t *testing.T, b image.Rectangle) {
			assert.InDelta(t, b.Dx(), b.Dy(), 1)
			assert.LessOrEqual(t, b.Dy(), 40)
		}},
	}

	for _, tt := range tests {
		t.Run(tt.mode, func(t *testing.T) {
			p := DefaultPreprocessor()
			p.CropMode = tt.mode

			out, err := p.crop(src)
			require.NoError(t, err)
			tt.check(t, out.Bounds())
		})
	}
}

func TestPreprocessor_EmptyImage(t *testing.T) {
	_, err := DefaultPreprocessor().Tensor(image.NewNRGBA(image.Rect(0, 0, 0, 0)))
	assert.Error(t, err)
}
