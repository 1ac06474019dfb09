package preview

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/mux"

	"mythiq-video-creator/modules/common/config"
	"mythiq-video-creator/modules/common/gemini"
	"mythiq-video-creator/modules/common/model"
	generatevideo "mythiq-video-creator/modules/generate-video"
	"mythiq-video-creator/modules/selector"
)

// Handler answers preview requests without touching the pipelines:
// it runs the selector and estimates wall-clock cost from the profile.
type Handler struct {
	engine *generatevideo.Service
}

type PreviewRequest struct {
	Prompt   string `json:"prompt"`
	Duration int    `json:"duration,omitempty"`
}

type PreviewResponse struct {
	Success          bool   `json:"success"`
	Preview          string `json:"preview,omitempty"`
	RecommendedModel string `json:"recommended_model,omitempty"`
	EstimatedTime    string `json:"estimated_time,omitempty"`
	Error            string `json:"error,omitempty"`
}

func NewHandler(engine *generatevideo.Service) *Handler {
	return &Handler{engine: engine}
}

// RegisterRoutes wires the preview endpoint.
func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/generate-video-preview", h.HandlePreview).Methods("POST", "OPTIONS")
}

// HandlePreview - POST /generate-video-preview
func (h *Handler) HandlePreview(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	if r.Method == http.MethodOptions {
		w.WriteHeader(http.StatusOK)
		return
	}

	var req PreviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(PreviewResponse{Success: false, Error: "Invalid request body"})
		return
	}

	if strings.TrimSpace(req.Prompt) == "" {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(PreviewResponse{Success: false, Error: "Prompt is required"})
		return
	}

	key := selector.Select(req.Prompt)
	profile, _ := model.ProfileFor(key)
	duration := model.ClampDuration(key, req.Duration)

	estimate := duration * profile.SecondsPerSecond
	if !h.engine.IsLoaded(key) {
		estimate += profile.LoadSeconds
	}

	preview := h.previewLine(r.Context(), profile, duration, req.Prompt)

	json.NewEncoder(w).Encode(PreviewResponse{
		Success:          true,
		Preview:          preview,
		RecommendedModel: string(key),
		EstimatedTime:    fmt.Sprintf("~%d seconds", estimate),
	})
}

// previewLine builds the human-readable preview sentence. When Gemini
// is configured the line is enhanced; otherwise (or on any failure)
// the deterministic fallback is used.
func (h *Handler) previewLine(ctx context.Context, profile model.Profile, duration int, prompt string) string {
	line := fmt.Sprintf("%s will render a %d-second clip for: %s",
		profile.Name, duration, truncateString(prompt, 80))

	cfg := config.GetConfig()
	if len(cfg.GeminiAPIKeys) == 0 {
		return line
	}

	enhanceCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	instruction := fmt.Sprintf(
		"In one short sentence, describe what a %d-second video generated from this prompt will look like: %q",
		duration, prompt)

	enhanced, err := gemini.GenerateTextWithRetry(enhanceCtx, cfg.GeminiAPIKeys, cfg.GeminiModel, instruction)
	if err != nil {
		log.Printf("⚠️  [Preview] Gemini enhancement failed, using fallback: %v", err)
		return line
	}

	return strings.TrimSpace(enhanced)
}

func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
