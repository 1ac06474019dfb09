package animatediff

// AnimateDiff is a motion adapter layered over a base SD checkpoint,
// so the sidecar needs both ids at load time.
const (
	MotionAdapterID = "guoyww/animatediff-motion-adapter-v1-5-2"
	BaseModelID     = "emilianJR/epiCRealism"
)

// LoadRequest warms up the pipeline on the sidecar.
type LoadRequest struct {
	MotionAdapter string `json:"motion_adapter"`
	BaseModel     string `json:"base_model"`
	Device        string `json:"device"`
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
