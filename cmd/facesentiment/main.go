package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spacesedan/facesentiment/config"
	"github.com/spacesedan/facesentiment/internal/analysis"
	"github.com/spacesedan/facesentiment/internal/apperrors"
	"github.com/spacesedan/facesentiment/internal/classifier"
	"github.com/spacesedan/facesentiment/internal/imageio"
	"github.com/spacesedan/facesentiment/internal/logging"
)

type classifierFactory func(ctx context.Context, cfg *config.Config) (classifier.Classifier, error)

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdout, os.Stderr, newClassifier))
}

// run executes one classification and returns the process exit code. The
// JSON record is the only thing ever written to stdout.
func run(ctx context.Context, args []string, stdout, stderr io.Writer, factory classifierFactory) int {
	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "dev"
	}
	config.LoadEnv(env)

	cfg, err := config.Load()
	if err != nil {
		return fail(stderr, err)
	}
	slog.SetDefault(logging.New(stderr, cfg.LogLevel, cfg.LogColor))

	if err := classify(ctx, cfg, args, stdout, factory); err != nil {
		return fail(stderr, err)
	}
	return 0
}

func classify(ctx context.Context, cfg *config.Config, args []string, stdout io.Writer, factory classifierFactory) error {
	if len(args) < 1 || args[0] == "" {
		return apperrors.ArgumentError("no image path provided")
	}

	c, err := factory(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := c.Close(); err != nil {
			slog.Warn("[Main] Failed to release classifier", slog.String("error", err.Error()))
		}
	}()
	slog.Info("[Main] Model loaded successfully", slog.String("backend", cfg.Backend))

	record, err := analysis.NewAnalyzer(imageio.Decoder{}, c).Analyze(ctx, args[0])
	if err != nil {
		return err
	}

	if err := json.NewEncoder(stdout).Encode(record); err != nil {
		return fmt.Errorf("failed to write result: %w", err)
	}
	return nil
}

func fail(stderr io.Writer, err error) int {
	fmt.Fprintf(stderr, "[ERROR] %s\n", err)
	return apperrors.ExitCode(err)
}
