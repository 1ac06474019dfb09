package generatevideo

import "mythiq-video-creator/modules/common/fallback"

// QueueKey is the Redis list the async worker watches.
const QueueKey = "video:jobs"

// GenerateRequest - POST /generate-video body. Older clients send
// model_type instead of model; both are accepted.
type GenerateRequest struct {
	Prompt    string `json:"prompt"`
	Model     string `json:"model,omitempty"`
	ModelType string `json:"model_type,omitempty"`
	Duration  int    `json:"duration,omitempty"`
}

// parseGenerateRequest coerces a loosely typed request body. Older
// clients send duration as a string, so every field goes through the
// safe coercers instead of strict struct decoding.
func parseGenerateRequest(raw map[string]interface{}) GenerateRequest {
	return GenerateRequest{
		Prompt:    fallback.SafeString(raw["prompt"], ""),
		Model:     fallback.SafeString(raw["model"], ""),
		ModelType: fallback.SafeString(raw["model_type"], ""),
		Duration:  fallback.SafeInt(raw["duration"], 0),
	}
}

// RequestedModel resolves the model/model_type alias; model wins.
func (r *GenerateRequest) RequestedModel() string {
	if r.Model != "" {
		return r.Model
	}
	return r.ModelType
}

// GenerateResponse - POST /generate-video reply
type GenerateResponse struct {
	Success    bool   `json:"success"`
	VideoData  string `json:"video_data,omitempty"`
	PosterData string `json:"poster_data,omitempty"`
	ModelUsed  string `json:"model_used,omitempty"`
	Duration   int    `json:"duration,omitempty"`
	Prompt     string `json:"prompt,omitempty"`
	Timestamp  string `json:"timestamp,omitempty"`
	Error      string `json:"error,omitempty"`
}

// AsyncResponse - POST /generate-video-async reply
type AsyncResponse struct {
	Success       bool   `json:"success"`
	JobID         string `json:"job_id,omitempty"`
	Status        string `json:"status,omitempty"`
	QueuePosition int64  `json:"queue_position,omitempty"`
	Error         string `json:"error,omitempty"`
}

// Result is what the engine hands back to callers.
type Result struct {
	VideoData  string
	PosterData string
	ModelUsed  string
	Duration   int
}
