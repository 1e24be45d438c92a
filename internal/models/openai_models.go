package models

// OpenAIEmotionResponse is the JSON object the vision model is asked to return.
type OpenAIEmotionResponse struct {
	Emotions []ClassificationResult `json:"emotions"`
}
