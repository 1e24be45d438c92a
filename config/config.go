package config

import (
	"fmt"
	"strings"
	"time"

	"go-simpler.org/env"

	"github.com/spacesedan/facesentiment/internal/apperrors"
)

const (
	BackendONNX   = "onnx"
	BackendHF     = "hf"
	BackendOpenAI = "openai"

	CropNone   = "none"
	CropCenter = "center"
	CropSmart  = "smart"
)

type Config struct {
	AppEnv   string `env:"APP_ENV" default:"dev"`
	LogLevel string `env:"LOG_LEVEL" default:"info"`
	LogColor bool   `env:"LOG_COLOR" default:"true"`

	Backend     string `env:"CLASSIFIER_BACKEND" default:"onnx"`
	ModelDir    string `env:"MODEL_DIR" default:"models"`
	ORTLibrary  string `env:"ONNXRUNTIME_SHARED_LIBRARY_PATH"`
	CropMode    string `env:"CROP_MODE" default:"none"`
	TopK        int    `env:"TOP_K" default:"5"`
	HFToken     string `env:"HF_API_TOKEN"`
	HFEndpoint  string `env:"HF_INFERENCE_ENDPOINT"`
	OpenAIKey   string `env:"OPENAI_API_KEY"`
	OpenAIModel string `env:"OPENAI_MODEL" default:"gpt-4o-mini"`

	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT" default:"60s"`
}

// Load reads the environment into a Config and validates it.
func Load() (*Config, error) {
	var cfg Config
	if err := env.Load(&cfg, nil); err != nil {
		return nil, apperrors.ConfigError("failed to load environment variables", err)
	}

	cfg.Backend = strings.ToLower(strings.TrimSpace(cfg.Backend))
	cfg.CropMode = strings.ToLower(strings.TrimSpace(cfg.CropMode))

	if err := validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func validate(cfg *Config) error {
	switch cfg.Backend {
	case BackendONNX, BackendHF:
	case BackendOpenAI:
		if cfg.OpenAIKey == "" {
			return apperrors.ConfigError("OPENAI_API_KEY is required when CLASSIFIER_BACKEND=openai", nil)
		}
	default:
		return apperrors.ConfigError(fmt.Sprintf("unknown CLASSIFIER_BACKEND %q (want onnx, hf or openai)", cfg.Backend), nil)
	}

	switch cfg.CropMode {
	case CropNone, CropCenter, CropSmart:
	default:
		return apperrors.ConfigError(fmt.Sprintf("unknown CROP_MODE %q (want none, center or smart)", cfg.CropMode), nil)
	}

	if cfg.TopK < 1 {
		return apperrors.ConfigError(fmt.Sprintf("TOP_K must be at least 1, got %d", cfg.TopK), nil)
	}
	if cfg.RequestTimeout <= 0 {
		return apperrors.ConfigError("REQUEST_TIMEOUT must be positive", nil)
	}
	return nil
}
