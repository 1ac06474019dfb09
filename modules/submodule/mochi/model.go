package mochi

// ModelID is the pretrained checkpoint served by the Mochi sidecar.
const ModelID = "genmo/mochi-1-preview"

// LoadRequest warms up the pipeline on the sidecar.
type LoadRequest struct {
	ModelID string `json:"model_id"`
	Device  string `json:"device"`
}

// LoadResponse - sidecar warmup reply
type LoadResponse struct {
	Loaded bool   `json:"loaded"`
	Device string `json:"device"`
	Error  string `json:"error,omitempty"`
}

// InferRequest - one text-to-video generation call
type InferRequest struct {
	Prompt            string  `json:"prompt"`
	NegativePrompt    string  `json:"negative_prompt,omitempty"`
	NumFrames         int     `json:"num_frames"`
	FPS               int     `json:"fps"`
	GuidanceScale     float64 `json:"guidance_scale"`
	NumInferenceSteps int     `json:"num_inference_steps"`
	Seed              int64   `json:"seed,omitempty"`
}

// InferResponse - generated frames as base64 PNG
type InferResponse struct {
	Frames []string `json:"frames"`
	Error  string   `json:"error,omitempty"`
}
