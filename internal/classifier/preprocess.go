package classifier

import (
	"fmt"
	"image"

	"github.com/disintegration/imaging"
	"github.com/muesli/smartcrop"

	"github.com/spacesedan/facesentiment/config"
)

// Preprocessor turns an image into the normalized CHW pixel tensor a ViT
// image classifier expects.
type Preprocessor struct {
	Width, Height int
	CropMode      string

	DoRescale     bool
	RescaleFactor float32
	DoNormalize   bool
	Mean          [3]float32
	Std           [3]float32
}

// DefaultPreprocessor mirrors the ViT image processor defaults: 224x224,
// bilinear resize, rescale by 1/255, normalize with mean and std 0.5.
func DefaultPreprocessor() Preprocessor {
	return Preprocessor{
		Width:         224,
		Height:        224,
		CropMode:      config.CropNone,
		DoRescale:     true,
		RescaleFactor: 1.0 / 255.0,
		DoNormalize:   true,
		Mean:          [3]float32{0.5, 0.5, 0.5},
		Std:           [3]float32{0.5, 0.5, 0.5},
	}
}

// Shape is the tensor shape produced by Tensor for a batch of one.
func (p Preprocessor) Shape() []int64 {
	return []int64{1, 3, int64(p.Height), int64(p.Width)}
}

// Tensor returns the pixel values of img in CHW order.
func (p Preprocessor) Tensor(img image.Image) ([]float32, error) {
	cropped, err := p.crop(img)
	if err != nil {
		return nil, err
	}

	resized := imaging.Resize(cropped, p.Width, p.Height, imaging.Linear)
	plane := p.Width * p.Height
	out := make([]float32, 3*plane)

	for y := 0; y < p.Height; y++ {
		row := resized.Pix[y*resized.Stride : y*resized.Stride+p.Width*4]
		for x := 0; x < p.Width; x++ {
			px := row[x*4 : x*4+3]
			for c := 0; c < 3; c++ {
				v := float32(px[c])
				if p.DoRescale {
					v *= p.RescaleFactor
				}
				if p.DoNormalize {
					v = (v - p.Mean[c]) / p.Std[c]
				}
				out[c*plane+y*p.Width+x] = v
			}
		}
	}
	return out, nil
}

func (p Preprocessor) crop(img image.Image) (image.Image, error) {
	b := img.Bounds()
	side := min(b.Dx(), b.Dy())
	if side == 0 {
		return nil, fmt.Errorf("image has no pixels")
	}

	switch p.CropMode {
	case config.CropCenter:
		return imaging.CropCenter(img, side, side), nil
	case config.CropSmart:
		analyzer := smartcrop.NewAnalyzer(resizer{})
		rect, err := analyzer.FindBestCrop(img, side, side)
		if err != nil {
			return nil, fmt.Errorf("finding best crop: %w", err)
		}
		return imaging.Crop(img, rect), nil
	default:
		return img, nil
	}
}

// resizer implements the smartcrop resizer on top of imaging.
type resizer struct{}

func (resizer) Resize(img image.Image, width, height uint) image.Image {
	return imaging.Resize(img, int(width), int(height), imaging.Linear)
}
