package classifier

import (
	"context"
	"errors"
	"image"
	"log/slog"
	"math"
	"sync"
	"time"

	ort "github.com/yalue/onnxruntime_go"

	"github.com/spacesedan/facesentiment/internal/apperrors"
	"github.com/spacesedan/facesentiment/internal/models"
)

const (
	inputName  = "pixel_values"
	outputName = "logits"
)

// ONNXOptions configures the local onnxruntime backend.
type ONNXOptions struct {
	ModelDir    string
	LibraryPath string
	CropMode    string
	TopK        int
}

// ONNXClassifier runs the facial-expression model in-process.
type ONNXClassifier struct {
	session *ort.AdvancedSession
	input   *ort.Tensor[float32]
	output  *ort.Tensor[float32]

	labels []string
	pre    Preprocessor
	topK   int

	mu sync.Mutex
}

// NewONNXClassifier loads the model bundle under opts.ModelDir and creates
// an onnxruntime session for it.
func NewONNXClassifier(opts ONNXOptions) (*ONNXClassifier, error) {
	start := time.Now()
	bundleDir := BundleDir(opts.ModelDir)

	modelPath, err := FindONNXFile(bundleDir)
	if err != nil {
		return nil, apperrors.ClassifierError("model not found; run fetch-model first", err)
	}
	labels, err := LoadLabels(bundleDir)
	if err != nil {
		return nil, apperrors.ClassifierError("failed to load labels", err)
	}
	pre, err := LoadPreprocessor(bundleDir, opts.CropMode)
	if err != nil {
		return nil, apperrors.ClassifierError("failed to load preprocessor config", err)
	}

	libPath := resolveSharedLibraryPath(opts.LibraryPath, opts.ModelDir)
	if libPath == "" {
		return nil, apperrors.ClassifierError(
			"onnxruntime shared library not found; set ONNXRUNTIME_SHARED_LIBRARY_PATH or install the runtime", nil)
	}
	ort.SetSharedLibraryPath(libPath)
	if !ort.IsInitialized() {
		if err := ort.InitializeEnvironment(); err != nil {
			return nil, apperrors.ClassifierError("failed to initialize onnxruntime", err)
		}
	}

	input, err := ort.NewEmptyTensor[float32](ort.NewShape(pre.Shape()...))
	if err != nil {
		return nil, apperrors.ClassifierError("failed to allocate input tensor", err)
	}
	output, err := ort.NewEmptyTensor[float32](ort.NewShape(1, int64(len(labels))))
	if err != nil {
		input.Destroy()
		return nil, apperrors.ClassifierError("failed to allocate output tensor", err)
	}

	session, err := ort.NewAdvancedSession(
		modelPath,
		[]string{inputName},
		[]string{outputName},
		[]ort.Value{input},
		[]ort.Value{output},
		nil,
	)
	if err != nil {
		input.Destroy()
		output.Destroy()
		return nil, apperrors.ClassifierError("failed to create onnx session", err)
	}

	slog.Info("[ONNXClassifier] Model loaded",
		slog.String("model", modelPath),
		slog.String("runtime", libPath),
		slog.Int("labels", len(labels)),
		slog.Duration("elapsed", time.Since(start)))

	return &ONNXClassifier{
		session: session,
		input:   input,
		output:  output,
		labels:  labels,
		pre:     pre,
		topK:    opts.TopK,
	}, nil
}

func (c *ONNXClassifier) Classify(ctx context.Context, img image.Image) ([]models.ClassificationResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, apperrors.ClassifierError("classification canceled", err)
	}

	pixels, err := c.pre.Tensor(img)
	if err != nil {
		return nil, apperrors.ClassifierError("failed to preprocess image", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	copy(c.input.GetData(), pixels)
	if err := c.session.Run(); err != nil {
		return nil, apperrors.ClassifierError("onnx inference failed", err)
	}

	return rankLogits(c.output.GetData(), c.labels, c.topK), nil
}

// Close releases the session, its tensors and the onnxruntime environment.
func (c *ONNXClassifier) Close() error {
	var errs []error
	if c.session != nil {
		errs = append(errs, c.session.Destroy())
	}
	if c.input != nil {
		errs = append(errs, c.input.Destroy())
	}
	if c.output != nil {
		errs = append(errs, c.output.Destroy())
	}
	errs = append(errs, ort.DestroyEnvironment())
	return errors.Join(errs...)
}

// rankLogits applies softmax over logits and ranks the labels by probability.
func rankLogits(logits []float32, labels []string, topK int) []models.ClassificationResult {
	n := min(len(logits), len(labels))
	if n == 0 {
		return nil
	}

	maxLogit := math.Inf(-1)
	for _, l := range logits[:n] {
		maxLogit = math.Max(maxLogit, float64(l))
	}

	var sum float64
	exps := make([]float64, n)
	for i, l := range logits[:n] {
		exps[i] = math.Exp(float64(l) - maxLogit)
		sum += exps[i]
	}

	results := make([]models.ClassificationResult, n)
	for i := range results {
		results[i] = models.ClassificationResult{Label: labels[i], Score: exps[i] / sum}
	}
	return Rank(results, topK)
}
