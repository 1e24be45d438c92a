package clients

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"image"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/spacesedan/facesentiment/internal/apperrors"
	"github.com/spacesedan/facesentiment/internal/classifier"
	"github.com/spacesedan/facesentiment/internal/imageio"
	"github.com/spacesedan/facesentiment/internal/models"
)

const openAIEmotionPrompt = `You are a facial expression classifier.
Look at the face in the image and score each of these expressions with a
probability between 0 and 1 so that the scores sum to 1:
angry, disgust, fear, happy, neutral, sad, surprise.

You MUST return only valid JSON, formatted exactly as follows:
{"emotions": [{"label": "happy", "score": 0.9}, ...]}

No Markdown formatting and no text before or after the JSON.`

// OpenAIClient classifies images with an OpenAI vision model.
type OpenAIClient struct {
	Client *openai.Client
	Model  string
	TopK   int
}

func NewOpenAIClient(apiKey, model string, timeout time.Duration, topK int, opts ...option.RequestOption) *OpenAIClient {
	opts = append([]option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithHTTPClient(&http.Client{Timeout: timeout}),
	}, opts...)

	slog.Info("[OpenAIClient] OpenAI client initialized",
		slog.String("model", model),
		slog.Duration("timeout", timeout))

	return &OpenAIClient{
		Client: openai.NewClient(opts...),
		Model:  model,
		TopK:   topK,
	}
}

func (o *OpenAIClient) Classify(ctx context.Context, img image.Image) ([]models.ClassificationResult, error) {
	jpegBytes, err := imageio.EncodeJPEG(img, 90)
	if err != nil {
		return nil, apperrors.ClassifierError("failed to encode image", err)
	}
	dataURL := "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(jpegBytes)

	slog.Info("[OpenAIClient] Requesting expression scores", slog.String("model", o.Model))
	start := time.Now()

	completion, err := o.Client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Messages: openai.F([]openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(openAIEmotionPrompt),
			openai.UserMessageParts(openai.ImagePart(dataURL)),
		}),
		Model:       openai.F(openai.ChatModel(o.Model)),
		Temperature: openai.Float(0),
	})
	if err != nil {
		slog.Error("[OpenAIClient] Chat completion failed",
			slog.Duration("elapsed", time.Since(start)),
			slog.String("error", err.Error()))
		return nil, apperrors.ClassifierError("openai request failed", err)
	}

	if len(completion.Choices) == 0 {
		return nil, apperrors.ClassifierError("openai returned no choices", nil)
	}

	results, err := parseEmotionScores(completion.Choices[0].Message.Content)
	if err != nil {
		return nil, apperrors.ClassifierError("invalid openai response", err)
	}

	slog.Info("[OpenAIClient] Expression scores received",
		slog.Duration("elapsed", time.Since(start)),
		slog.Int("results", len(results)))

	return classifier.Rank(results, o.TopK), nil
}

func (o *OpenAIClient) Close() error {
	return nil
}

// parseEmotionScores decodes the model's JSON answer, dropping entries with
// an empty label or a score outside [0,1].
func parseEmotionScores(content string) ([]models.ClassificationResult, error) {
	raw := cleanOpenAIResponse(content)
	if raw == "" {
		return nil, fmt.Errorf("empty response")
	}

	var resp models.OpenAIEmotionResponse
	if err := json.Unmarshal([]byte(raw), &resp); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}

	results := make([]models.ClassificationResult, 0, len(resp.Emotions))
	for _, e := range resp.Emotions {
		label := strings.ToLower(strings.TrimSpace(e.Label))
		if label == "" || e.Score < 0 || e.Score > 1 {
			slog.Warn("[OpenAIClient] Dropping invalid entry",
				slog.String("label", e.Label),
				slog.Float64("score", e.Score))
			continue
		}
		results = append(results, models.ClassificationResult{Label: label, Score: e.Score})
	}
	return results, nil
}

func cleanOpenAIResponse(response string) string {
	response = strings.TrimSpace(response)

	response = strings.TrimPrefix(response, "```json")
	response = strings.TrimPrefix(response, "```")
	response = strings.TrimSuffix(response, "```")

	response = strings.ReplaceAll(response, "“", `"`)
	response = strings.ReplaceAll(response, "”", `"`)

	return strings.TrimSpace(response)
}
