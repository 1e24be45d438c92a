package analysis

import (
	"context"
	"errors"
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spacesedan/facesentiment/internal/apperrors"
	"github.com/spacesedan/facesentiment/internal/models"
)

type stubDecoder struct {
	err   error
	paths []string
}

func (d *stubDecoder) Open(path string) (image.Image, error) {
	d.paths = append(d.paths, path)
	if d.err != nil {
		return nil, d.err
	}
	return image.NewNRGBA(image.Rect(0, 0, 10, 10)), nil
}

type stubClassifier struct {
	results []models.ClassificationResult
	err     error
	calls   int
}

func (c *stubClassifier) Classify(_ context.Context, _ image.Image) ([]models.ClassificationResult, error) {
	c.calls++
	return c.results, c.err
}

func (c *stubClassifier) Close() error { return nil }

func TestAnalyze(t *testing.T) {
	tests := []struct {
		name    string
		results []models.ClassificationResult
		want    models.OutputRecord
	}{
		{
			name: "confident result",
			results: []models.ClassificationResult{
				{Label: "happy", Score: 0.92},
				{Label: "neutral", Score: 0.05},
			},
			want: models.OutputRecord{Label: "POSITIVE", Emotion: "HAPPY", Score: 0.92},
		},
		{
			name: "fallback to first",
			results: []models.ClassificationResult{
				{Label: "sad", Score: 0.3},
				{Label: "neutral", Score: 0.2},
			},
			want: models.OutputRecord{Label: "NEGATIVE", Emotion: "SAD", Score: 0.3},
		},
		{
			name:    "neutral",
			results: []models.ClassificationResult{{Label: "neutral", Score: 0.8}},
			want:    models.OutputRecord{Label: "NEUTRAL", Emotion: "NEUTRAL", Score: 0.8},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dec := &stubDecoder{}
			cls := &stubClassifier{results: tt.results}

			got, err := NewAnalyzer(dec, cls).Analyze(context.Background(), "face.jpg")
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, []string{"face.jpg"}, dec.paths)
			assert.Equal(t, 1, cls.calls)
		})
	}
}

func TestAnalyze_DecodeErrorSkipsClassifier(t *testing.T) {
	dec := &stubDecoder{err: apperrors.DecodeError("no such file: x.jpg", nil)}
	cls := &stubClassifier{}

	_, err := NewAnalyzer(dec, cls).Analyze(context.Background(), "x.jpg")
	require.Error(t, err)
	assert.Equal(t, apperrors.KindDecode, apperrors.KindOf(err))
	assert.Zero(t, cls.calls)
}

func TestAnalyze_ClassifierError(t *testing.T) {
	cause := errors.New("session crashed")
	cls := &stubClassifier{err: apperrors.ClassifierError("onnx inference failed", cause)}

	_, err := NewAnalyzer(&stubDecoder{}, cls).Analyze(context.Background(), "face.jpg")
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, apperrors.KindClassifier, apperrors.KindOf(err))
}

func TestAnalyze_EmptyResult(t *testing.T) {
	_, err := NewAnalyzer(&stubDecoder{}, &stubClassifier{}).Analyze(context.Background(), "face.jpg")
	assert.ErrorIs(t, err, apperrors.ErrEmptyResult)
}
