package classifier

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spacesedan/facesentiment/internal/models"
)

const (
	modelConfigFile        = "config.json"
	preprocessorConfigFile = "preprocessor_config.json"
	labelsFile             = "labels.json"
)

// BundleDir is where the downloader places ModelID under modelDir.
func BundleDir(modelDir string) string {
	return filepath.Join(modelDir, strings.ReplaceAll(ModelID, "/", "_"))
}

// FindONNXFile locates the model graph inside a bundle directory.
func FindONNXFile(bundleDir string) (string, error) {
	for _, candidate := range []string{
		filepath.Join(bundleDir, "model.onnx"),
		filepath.Join(bundleDir, "onnx", "model.onnx"),
	} {
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
	}

	for _, pattern := range []string{
		filepath.Join(bundleDir, "*.onnx"),
		filepath.Join(bundleDir, "onnx", "*.onnx"),
	} {
		matches, err := filepath.Glob(pattern)
		if err != nil {
			return "", err
		}
		if len(matches) > 0 {
			return matches[0], nil
		}
	}
	return "", fmt.Errorf("no .onnx file in %s: %w", bundleDir, fs.ErrNotExist)
}

// LoadLabels reads the label order from config.json's id2label, then from a
// labels.json list or {"0": "x"} map, and falls back to DefaultLabels.
func LoadLabels(bundleDir string) ([]string, error) {
	data, err := os.ReadFile(filepath.Join(bundleDir, modelConfigFile))
	switch {
	case err == nil:
		var cfg models.HFModelConfig
		if err := json.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", modelConfigFile, err)
		}
		if len(cfg.ID2Label) > 0 {
			return indexedLabels(cfg.ID2Label)
		}
	case !errors.Is(err, fs.ErrNotExist):
		return nil, fmt.Errorf("read %s: %w", modelConfigFile, err)
	}

	data, err = os.ReadFile(filepath.Join(bundleDir, labelsFile))
	if errors.Is(err, fs.ErrNotExist) {
		return append([]string(nil), DefaultLabels...), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", labelsFile, err)
	}

	var arr []string
	if err := json.Unmarshal(data, &arr); err == nil && len(arr) > 0 {
		return arr, nil
	}
	var m map[string]string
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse %s: %w", labelsFile, err)
	}
	return indexedLabels(m)
}

func indexedLabels(m map[string]string) ([]string, error) {
	out := make([]string, len(m))
	for k, v := range m {
		idx, err := strconv.Atoi(k)
		if err != nil {
			return nil, fmt.Errorf("invalid label index %q: %w", k, err)
		}
		if idx < 0 || idx >= len(m) {
			return nil, fmt.Errorf("label index %d out of range", idx)
		}
		out[idx] = v
	}
	return out, nil
}

// LoadPreprocessor reads preprocessor_config.json when present and applies
// it over the ViT defaults.
func LoadPreprocessor(bundleDir, cropMode string) (Preprocessor, error) {
	p := DefaultPreprocessor()
	p.CropMode = cropMode

	data, err := os.ReadFile(filepath.Join(bundleDir, preprocessorConfigFile))
	if errors.Is(err, fs.ErrNotExist) {
		return p, nil
	}
	if err != nil {
		return p, fmt.Errorf("read %s: %w", preprocessorConfigFile, err)
	}

	var cfg models.HFPreprocessorConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return p, fmt.Errorf("parse %s: %w", preprocessorConfigFile, err)
	}

	if cfg.Size.Width > 0 && cfg.Size.Height > 0 {
		p.Width, p.Height = cfg.Size.Width, cfg.Size.Height
	}
	if cfg.DoRescale != nil {
		p.DoRescale = *cfg.DoRescale
	}
	if cfg.RescaleFactor > 0 {
		p.RescaleFactor = float32(cfg.RescaleFactor)
	}
	if cfg.DoNormalize != nil {
		p.DoNormalize = *cfg.DoNormalize
	}
	if len(cfg.ImageMean) == 3 {
		for i, v := range cfg.ImageMean {
			p.Mean[i] = float32(v)
		}
	}
	if len(cfg.ImageStd) == 3 {
		for i, v := range cfg.ImageStd {
			if v == 0 {
				return p, fmt.Errorf("image_std[%d] is zero", i)
			}
			p.Std[i] = float32(v)
		}
	}
	return p, nil
}
