package clients

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"io"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/oauth2"

	"github.com/spacesedan/facesentiment/internal/apperrors"
	"github.com/spacesedan/facesentiment/internal/classifier"
	"github.com/spacesedan/facesentiment/internal/imageio"
	"github.com/spacesedan/facesentiment/internal/models"
)

// HuggingFaceClient classifies images through the Hugging Face inference API.
type HuggingFaceClient struct {
	Client   *http.Client
	Endpoint string
	TopK     int
}

// NewHuggingFaceClient builds a client for endpoint (the hf-inference route
// for the facial-expression model when empty). A non-empty token is sent as
// a bearer token.
func NewHuggingFaceClient(ctx context.Context, token, endpoint string, timeout time.Duration, topK int) *HuggingFaceClient {
	if endpoint == "" {
		endpoint = HF_IMAGE_CLASSIFICATION_ENDPOINT
	}

	client := &http.Client{}
	if token != "" {
		client = oauth2.NewClient(ctx, oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token}))
	}
	client.Timeout = timeout

	slog.Info("[HuggingFaceClient] Initializing Client",
		slog.String("endpoint", endpoint),
		slog.Duration("timeout", timeout),
		slog.Bool("authenticated", token != ""))

	return &HuggingFaceClient{
		Client:   client,
		Endpoint: endpoint,
		TopK:     topK,
	}
}

func (h *HuggingFaceClient) Classify(ctx context.Context, img image.Image) ([]models.ClassificationResult, error) {
	body, err := imageio.EncodePNG(img)
	if err != nil {
		return nil, apperrors.ClassifierError("failed to encode image", err)
	}

	slog.Info("[HuggingFaceClient] Requesting image classification",
		slog.Int("bytes", len(body)))
	start := time.Now()

	var result models.HFImageClassificationResponse
	if err := h.postImage(ctx, body, "image/png", &result); err != nil {
		slog.Error("[HuggingFaceClient] Image classification request failed",
			slog.Duration("elapsed", time.Since(start)))
		return nil, apperrors.ClassifierError("inference API request failed", err)
	}

	slog.Info("[HuggingFaceClient] Image classification request successful",
		slog.Duration("elapsed", time.Since(start)),
		slog.Int("results", len(result)))

	return classifier.Rank(result, h.TopK), nil
}

// Close is a no-op; the HTTP client holds no resources worth releasing.
func (h *HuggingFaceClient) Close() error {
	return nil
}

func (h *HuggingFaceClient) postImage(ctx context.Context, body []byte, contentType string, output interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, h.Endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", USER_AGENT)

	resp, err := h.Client.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		slog.Error("[HuggingFaceClient] Unexpected status",
			slog.String("endpoint", h.Endpoint),
			slog.Int("status", resp.StatusCode),
			getPreview(respBody))
		return fmt.Errorf("status code %d: %w", resp.StatusCode, apiError(respBody))
	}

	if err := json.Unmarshal(respBody, output); err != nil {
		slog.Error("[HuggingFaceClient] Failed to unmarshal response",
			slog.String("endpoint", h.Endpoint),
			slog.String("error", err.Error()),
			getPreview(respBody),
			slog.Int("raw_response_length", len(respBody)))
		return fmt.Errorf("failed to unmarshal response: %w", err)
	}
	return nil
}

// apiError extracts the message from an inference API error body.
func apiError(body []byte) error {
	var e models.HFErrorResponse
	if err := json.Unmarshal(body, &e); err == nil && e.Error != "" {
		if e.EstimatedTime > 0 {
			return fmt.Errorf("%s (estimated time %.0fs)", e.Error, e.EstimatedTime)
		}
		return errors.New(e.Error)
	}
	return errors.New(getPreview(body).Value.String())
}

func getPreview(respBody []byte) slog.Attr {
	raw := string(respBody)
	if len(raw) > 50 {
		raw = raw[:50]
	}
	return slog.String("raw_response", raw)
}
