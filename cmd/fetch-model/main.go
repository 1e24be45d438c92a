package main

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/knights-analytics/hugot"

	"github.com/spacesedan/facesentiment/config"
	"github.com/spacesedan/facesentiment/internal/classifier"
	"github.com/spacesedan/facesentiment/internal/logging"
)

type downloadFunc func(modelName, destination string, opts hugot.DownloadOptions) (string, error)

func main() {
	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "dev"
	}
	config.LoadEnv(env)

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "[ERROR] %s\n", err)
		os.Exit(1)
	}
	logging.InitLogger(cfg.LogLevel, cfg.LogColor)

	if _, err := fetchModel(cfg, hugot.DownloadModel); err != nil {
		slog.Error("[FetchModel] Failed to provision model", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

// fetchModel downloads the facial-expression model into cfg.ModelDir unless
// an ONNX graph is already present, and returns the bundle directory.
func fetchModel(cfg *config.Config, download downloadFunc) (string, error) {
	bundleDir := classifier.BundleDir(cfg.ModelDir)
	if path, err := classifier.FindONNXFile(bundleDir); err == nil {
		slog.Info("[FetchModel] Using existing model", slog.String("path", path))
		return bundleDir, nil
	}

	if err := os.MkdirAll(cfg.ModelDir, os.ModePerm); err != nil {
		return "", fmt.Errorf("failed to create model directory: %w", err)
	}

	opts := hugot.NewDownloadOptions()
	if cfg.HFToken != "" {
		opts.AuthToken = cfg.HFToken
	}

	slog.Info("[FetchModel] Model not found, downloading...",
		slog.String("model", classifier.ModelID),
		slog.String("destination", cfg.ModelDir))
	start := time.Now()

	modelPath, err := download(classifier.ModelID, cfg.ModelDir, opts)
	if err != nil {
		return "", fmt.Errorf("failed to download %s: %w", classifier.ModelID, err)
	}

	slog.Info("[FetchModel] Model downloaded successfully",
		slog.String("path", modelPath),
		slog.Duration("elapsed", time.Since(start)))
	return modelPath, nil
}
