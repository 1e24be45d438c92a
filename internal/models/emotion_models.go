package models

// ClassificationResult is one candidate emotion reported by a classifier.
type ClassificationResult struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

type (
	EmotionLabel   string
	SentimentLabel string
)

const (
	EmotionHappy    EmotionLabel = "HAPPY"
	EmotionSurprise EmotionLabel = "SURPRISE"
	EmotionSad      EmotionLabel = "SAD"
	EmotionAngry    EmotionLabel = "ANGRY"
	EmotionFear     EmotionLabel = "FEAR"
	EmotionDisgust  EmotionLabel = "DISGUST"
	EmotionNeutral  EmotionLabel = "NEUTRAL"
)

const (
	SentimentPositive SentimentLabel = "POSITIVE"
	SentimentNegative SentimentLabel = "NEGATIVE"
	SentimentNeutral  SentimentLabel = "NEUTRAL"
)

// OutputRecord is the single JSON line written to stdout.
type OutputRecord struct {
	Label   SentimentLabel `json:"label"`
	Emotion EmotionLabel   `json:"emotion"`
	Score   float64        `json:"score"`
}
