// Package analysis runs one image through decoding, classification, result
// selection and sentiment mapping.
package analysis

import (
	"context"
	"fmt"
	"image"
	"log/slog"

	"github.com/spacesedan/facesentiment/internal/classifier"
	"github.com/spacesedan/facesentiment/internal/models"
	"github.com/spacesedan/facesentiment/internal/sentiment"
)

// Decoder loads an image from a filesystem path.
type Decoder interface {
	Open(path string) (image.Image, error)
}

// Analyzer holds the injected capabilities for a run.
type Analyzer struct {
	decoder    Decoder
	classifier classifier.Classifier
}

func NewAnalyzer(decoder Decoder, c classifier.Classifier) *Analyzer {
	return &Analyzer{decoder: decoder, classifier: c}
}

// Analyze classifies the image at path and returns the sentiment record.
// Errors from each stage are returned as-is for the caller to report.
func (a *Analyzer) Analyze(ctx context.Context, path string) (models.OutputRecord, error) {
	slog.Info("[Analyzer] Image path received", slog.String("path", path))

	img, err := a.decoder.Open(path)
	if err != nil {
		return models.OutputRecord{}, err
	}
	slog.Info("[Analyzer] Image successfully loaded",
		slog.Int("width", img.Bounds().Dx()),
		slog.Int("height", img.Bounds().Dy()))

	results, err := a.classifier.Classify(ctx, img)
	if err != nil {
		return models.OutputRecord{}, err
	}
	slog.Debug("[Analyzer] Full result list", slog.String("results", fmt.Sprintf("%+v", results)))

	record, err := sentiment.Summarize(results)
	if err != nil {
		return models.OutputRecord{}, err
	}

	slog.Info("[Analyzer] Detected emotion",
		slog.String("emotion", string(record.Emotion)),
		slog.Float64("score", record.Score),
		slog.String("sentiment", string(record.Label)))

	return record, nil
}
