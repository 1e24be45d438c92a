package clients

const (
	HF_IMAGE_CLASSIFICATION_ENDPOINT = "https://router.huggingface.co/hf-inference/models/trpakov/vit-face-expression"
	USER_AGENT                       = "facesentiment/1.0 (+https://github.com/spacesedan/facesentiment)"
)
