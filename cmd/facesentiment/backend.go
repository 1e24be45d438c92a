package main

import (
	"context"

	"github.com/spacesedan/facesentiment/config"
	"github.com/spacesedan/facesentiment/internal/classifier"
	"github.com/spacesedan/facesentiment/internal/clients"
)

// newClassifier builds the backend selected by CLASSIFIER_BACKEND.
func newClassifier(ctx context.Context, cfg *config.Config) (classifier.Classifier, error) {
	switch cfg.Backend {
	case config.BackendHF:
		return clients.NewHuggingFaceClient(ctx, cfg.HFToken, cfg.HFEndpoint, cfg.RequestTimeout, cfg.TopK), nil
	case config.BackendOpenAI:
		return clients.NewOpenAIClient(cfg.OpenAIKey, cfg.OpenAIModel, cfg.RequestTimeout, cfg.TopK), nil
	default:
		c, err := classifier.NewONNXClassifier(classifier.ONNXOptions{
			ModelDir:    cfg.ModelDir,
			LibraryPath: cfg.ORTLibrary,
			CropMode:    cfg.CropMode,
			TopK:        cfg.TopK,
		})
		if err != nil {
			return nil, err
		}
		return c, nil
	}
}
