package cogvideo

// ModelID is the pretrained checkpoint served by the CogVideoX sidecar.
const ModelID = "THUDM/CogVideoX-5b"

// LoadRequest warms up the pipeline on the sidecar.
type LoadRequest struct {
	ModelID string `json:"model_id"`
	Device  string `json:"device"`
	// CPU offload keeps the 5B model within consumer VRAM limits.
	EnableCPUOffload bool `json:"enable_cpu_offload"`
}

// LoadResponse - sidecar warmup reply
type LoadResponse struct {
	Loaded bool   `json:"loaded"`
	Device string `json:"device"`
	Error  string `json:"error,omitempty"`
}

// InferRequest - one text-to-video generation call
type InferRequest struct {
	Prompt             string  `json:"prompt"`
	NumFrames          int     `json:"num_frames"`
	FPS                int     `json:"fps"`
	GuidanceScale      float64 `json:"guidance_scale"`
	NumInferenceSteps  int     `json:"num_inference_steps"`
	NumVideosPerPrompt int     `json:"num_videos_per_prompt"`
	Seed               int64   `json:"seed,omitempty"`
}

// InferResponse - generated frames as base64 PNG
type InferResponse struct {
	Frames []string `json:"frames"`
	Error  string   `json:"error,omitempty"`
}
