package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOutputRecord_JSONShape(t *testing.T) {
	rec := OutputRecord{Label: SentimentPositive, Emotion: EmotionHappy, Score: 0.92}

	b, err := json.Marshal(rec)
	require.NoError(t, err)
	assert.Equal(t, `{"label":"POSITIVE","emotion":"HAPPY","score":0.92}`, string(b))
}

func TestClassificationResult_DecodesPipelineOutput(t *testing.T) {
	raw := `[{"label":"happy","score":0.92},{"label":"neutral","score":0.05}]`

	var results []ClassificationResult
	require.NoError(t, json.Unmarshal([]byte(raw), &results))
	assert.Equal(t, []ClassificationResult{
		{Label: "happy", Score: 0.92},
		{Label: "neutral", Score: 0.05},
	}, results)
}
