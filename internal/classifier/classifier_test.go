package classifier

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spacesedan/facesentiment/internal/models"
)

func TestRank(t *testing.T) {
	results := []models.ClassificationResult{
		{Label: "neutral", Score: 0.1},
		{Label: "happy", Score: 0.6},
		{Label: "sad", Score: 0.1},
		{Label: "fear", Score: 0.2},
	}

	ranked := Rank(results, 3)
	assert.Equal(t, []models.ClassificationResult{
		{Label: "happy", Score: 0.6},
		{Label: "fear", Score: 0.2},
		{Label: "neutral", Score: 0.1},
	}, ranked)
}

func TestRank_NoLimit(t *testing.T) {
	results := []models.ClassificationResult{{Label: "a", Score: 0.2}, {Label: "b", Score: 0.8}}
	assert.Len(t, Rank(results, 0), 2)
}

func TestRankLogits(t *testing.T) {
	logits := []float32{0.1, -1.0, 0.3, 4.0, 1.5, -0.5, 0.0}

	results := rankLogits(logits, DefaultLabels, 5)
	require.Len(t, results, 5)
	assert.Equal(t, "happy", results[0].Label)
	assert.Equal(t, "neutral", results[1].Label)

	all := rankLogits(logits, DefaultLabels, 0)
	var sum float64
	for _, r := range all {
		sum += r.Score
		assert.Greater(t, r.Score, 0.0)
	}
	assert.InDelta(t, 1.0, sum, 1e-9)
}

func TestRankLogits_Empty(t *testing.T) {
	assert.Nil(t, rankLogits(nil, DefaultLabels, 5))
}

func TestResolveSharedLibraryPath(t *testing.T) {
	assert.Equal(t, "/opt/ort/libonnxruntime.so", resolveSharedLibraryPath(" /opt/ort/libonnxruntime.so ", "models"))

	dir := t.TempDir()
	lib := filepath.Join(dir, "lib", "libonnxruntime.so")
	require.NoError(t, os.MkdirAll(filepath.Dir(lib), 0o755))
	require.NoError(t, os.WriteFile(lib, nil, 0o644))
	assert.Equal(t, lib, resolveSharedLibraryPath("", dir))
}

func TestNewONNXClassifier_MissingModel(t *testing.T) {
	_, err := NewONNXClassifier(ONNXOptions{ModelDir: t.TempDir(), TopK: 5})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "fetch-model")
}
