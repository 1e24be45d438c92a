// Package classifier provides the facial-expression classification
// capability: a small interface, a local onnxruntime backend and a factory
// that builds whichever backend the configuration selects.
package classifier

import (
	"context"
	"image"
	"sort"

	"github.com/spacesedan/facesentiment/internal/models"
)

// ModelID is the pretrained facial-expression model every backend targets.
const ModelID = "trpakov/vit-face-expression"

// DefaultLabels is the id2label order published with ModelID.
var DefaultLabels = []string{"angry", "disgust", "fear", "happy", "neutral", "sad", "surprise"}

// Classifier scores an image against the emotion labels. Results are ranked
// by descending score.
type Classifier interface {
	Classify(ctx context.Context, img image.Image) ([]models.ClassificationResult, error)
	Close() error
}

// Rank sorts results by descending score, keeping the relative order of
// ties, and truncates to topK when topK > 0.
func Rank(results []models.ClassificationResult, topK int) []models.ClassificationResult {
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
	if topK > 0 && len(results) > topK {
		results = results[:topK]
	}
	return results
}
