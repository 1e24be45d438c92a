package sentiment

import (
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/spacesedan/facesentiment/internal/apperrors"
	"github.com/spacesedan/facesentiment/internal/models"
)

// ConfidenceThreshold is the score a candidate must exceed to be preferred
// over the top-ranked one.
const ConfidenceThreshold = 0.5

var emotionToSentiment = map[models.EmotionLabel]models.SentimentLabel{
	models.EmotionHappy:    models.SentimentPositive,
	models.EmotionSurprise: models.SentimentPositive,
	models.EmotionSad:      models.SentimentNegative,
	models.EmotionAngry:    models.SentimentNegative,
	models.EmotionFear:     models.SentimentNegative,
	models.EmotionDisgust:  models.SentimentNegative,
	models.EmotionNeutral:  models.SentimentNeutral,
}

var upper = cases.Upper(language.Und)

// NormalizeEmotion upper-cases a raw classifier label. Unknown labels are
// kept, only their case changes.
func NormalizeEmotion(label string) models.EmotionLabel {
	return models.EmotionLabel(upper.String(label))
}

// MapEmotion returns the sentiment for an emotion, NEUTRAL when unrecognized.
func MapEmotion(emotion models.EmotionLabel) models.SentimentLabel {
	if s, ok := emotionToSentiment[emotion]; ok {
		return s
	}
	return models.SentimentNeutral
}

// SelectResult returns the first result, in the given order, whose score is
// strictly above threshold. If none qualifies it falls back to results[0].
func SelectResult(results []models.ClassificationResult, threshold float64) (models.ClassificationResult, error) {
	if len(results) == 0 {
		return models.ClassificationResult{}, apperrors.EmptyResultError()
	}
	for _, r := range results {
		if r.Score > threshold {
			return r, nil
		}
	}
	return results[0], nil
}

// Summarize selects a result with ConfidenceThreshold and turns it into the
// output record. The score is passed through untouched.
func Summarize(results []models.ClassificationResult) (models.OutputRecord, error) {
	selected, err := SelectResult(results, ConfidenceThreshold)
	if err != nil {
		return models.OutputRecord{}, err
	}

	emotion := NormalizeEmotion(selected.Label)
	return models.OutputRecord{
		Label:   MapEmotion(emotion),
		Emotion: emotion,
		Score:   selected.Score,
	}, nil
}
