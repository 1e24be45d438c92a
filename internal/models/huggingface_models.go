package models

// HFImageClassificationResponse is the body returned by the Hugging Face
// inference API for image-classification models.
type HFImageClassificationResponse []ClassificationResult

// HFErrorResponse is returned by the inference API on failures, e.g. while
// the model is still loading.
type HFErrorResponse struct {
	Error         string  `json:"error"`
	EstimatedTime float64 `json:"estimated_time,omitempty"`
}

// HFModelConfig is the subset of a transformers config.json the local
// classifier reads.
type HFModelConfig struct {
	ID2Label map[string]string `json:"id2label"`
}

// HFPreprocessorConfig is the subset of preprocessor_config.json used for
// image preprocessing.
type HFPreprocessorConfig struct {
	DoRescale     *bool     `json:"do_rescale"`
	DoNormalize   *bool     `json:"do_normalize"`
	RescaleFactor float64   `json:"rescale_factor"`
	ImageMean     []float64 `json:"image_mean"`
	ImageStd      []float64 `json:"image_std"`
	Size          struct {
		Height int `json:"height"`
		Width  int `json:"width"`
	} `json:"size"`
}
