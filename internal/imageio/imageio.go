// Package imageio opens images from disk and encodes them for remote
// classifiers.
package imageio

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io/fs"
	"os"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/spacesedan/facesentiment/internal/apperrors"
)

// Decoder is the image decoding capability.
type Decoder struct{}

// Open decodes the image at path. EXIF orientation is not applied.
func (Decoder) Open(path string) (image.Image, error) {
	return Open(path)
}

// Open decodes the image at path. Any failure is a decode error.
func Open(path string) (image.Image, error) {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, apperrors.DecodeError(fmt.Sprintf("no such file: %s", path), err)
		}
		return nil, apperrors.DecodeError(fmt.Sprintf("cannot access %s", path), err)
	}
	if info.IsDir() {
		return nil, apperrors.DecodeError(fmt.Sprintf("%s is a directory", path), nil)
	}

	img, err := imaging.Open(path)
	if err != nil {
		return nil, apperrors.DecodeError(fmt.Sprintf("cannot identify image file %s", path), err)
	}
	return img, nil
}

// EncodeJPEG encodes img as a JPEG at the given quality.
func EncodeJPEG(img image.Image, quality int) ([]byte, error) {
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: quality}); err != nil {
		return nil, fmt.Errorf("encoding image: %w", err)
	}
	return buf.Bytes(), nil
}

// EncodePNG encodes img losslessly.
func EncodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encoding image: %w", err)
	}
	return buf.Bytes(), nil
}
