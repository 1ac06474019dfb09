package generatevideo

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/redis/go-redis/v9"

	"mythiq-video-creator/modules/common/database"
	"mythiq-video-creator/modules/common/model"
	"mythiq-video-creator/modules/progress"
)

type Handler struct {
	service *Service
	db      *database.Client
	rdb     *redis.Client
	hub     *progress.Hub
}

// NewHandler wires the engine plus the optional async dependencies.
// db and rdb may be nil; the async endpoints then report unavailable.
func NewHandler(service *Service, db *database.Client, rdb *redis.Client, hub *progress.Hub) *Handler {
	return &Handler{
		service: service,
		db:      db,
		rdb:     rdb,
		hub:     hub,
	}
}

// RegisterRoutes wires the generation endpoints.
func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/generate-video", h.HandleGenerate).Methods("POST", "OPTIONS")
	r.HandleFunc("/generate-video-async", h.HandleGenerateAsync).Methods("POST", "OPTIONS")
	r.HandleFunc("/video-jobs/{job_id}", h.HandleJobStatus).Methods("GET")
}

// HandleGenerate - POST /generate-video
// Runs the full pipeline synchronously and returns base64 video data.
func (h *Handler) HandleGenerate(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	if r.Method == http.MethodOptions {
		w.WriteHeader(http.StatusOK)
		return
	}

	var raw map[string]interface{}
	if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	req := parseGenerateRequest(raw)

	if strings.TrimSpace(req.Prompt) == "" {
		writeError(w, http.StatusBadRequest, "Prompt is required")
		return
	}

	log.Printf("📥 [Generate] prompt=%s model=%s duration=%d",
		truncateString(req.Prompt, 30), req.RequestedModel(), req.Duration)

	result, err := h.service.Generate(r.Context(), req.Prompt, req.RequestedModel(), req.Duration)
	if err != nil {
		status := statusForError(err)
		log.Printf("❌ [Generate] Generation failed (%d): %v", status, err)
		writeError(w, status, err.Error())
		return
	}

	json.NewEncoder(w).Encode(GenerateResponse{
		Success:    true,
		VideoData:  result.VideoData,
		PosterData: result.PosterData,
		ModelUsed:  result.ModelUsed,
		Duration:   result.Duration,
		Prompt:     req.Prompt,
		Timestamp:  time.Now().UTC().Format(time.RFC3339),
	})
}

// HandleGenerateAsync - POST /generate-video-async
// Persists a job row and pushes the id onto the Redis queue.
func (h *Handler) HandleGenerateAsync(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	if r.Method == http.MethodOptions {
		w.WriteHeader(http.StatusOK)
		return
	}

	if h.db == nil || h.rdb == nil {
		w.WriteHeader(http.StatusServiceUnavailable)
		json.NewEncoder(w).Encode(AsyncResponse{
			Success: false,
			Error:   "Async generation is not configured",
		})
		return
	}

	var raw map[string]interface{}
	if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	req := parseGenerateRequest(raw)

	if strings.TrimSpace(req.Prompt) == "" {
		writeError(w, http.StatusBadRequest, "Prompt is required")
		return
	}

	jobID := uuid.New().String()
	job := &model.GenerationJob{
		JobID:          jobID,
		Prompt:         req.Prompt,
		RequestedModel: req.RequestedModel(),
		Duration:       req.Duration,
		JobStatus:      model.StatusPending,
	}

	if err := h.db.InsertJob(r.Context(), job); err != nil {
		log.Printf("❌ [Generate] Failed to store job: %v", err)
		writeError(w, http.StatusInternalServerError, "Failed to store job")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	if _, err := h.rdb.LPush(ctx, QueueKey, jobID).Result(); err != nil {
		log.Printf("❌ [Generate] Redis LPUSH failed: %v", err)
		writeError(w, http.StatusInternalServerError, "Failed to enqueue job")
		return
	}

	queueLen, _ := h.rdb.LLen(ctx, QueueKey).Result()
	log.Printf("✅ [Generate] Job %s enqueued (position: %d)", jobID, queueLen)

	h.hub.Publish(progress.Update{JobID: jobID, Status: model.StatusPending})

	w.WriteHeader(http.StatusAccepted)
	json.NewEncoder(w).Encode(AsyncResponse{
		Success:       true,
		JobID:         jobID,
		Status:        model.StatusPending,
		QueuePosition: queueLen,
	})
}

// HandleJobStatus - GET /video-jobs/{job_id}
func (h *Handler) HandleJobStatus(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	if h.db == nil {
		w.WriteHeader(http.StatusServiceUnavailable)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"success": false,
			"error":   "Async generation is not configured",
		})
		return
	}

	jobID := mux.Vars(r)["job_id"]

	job, err := h.db.FetchJob(jobID)
	if err != nil {
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"success": false,
			"error":   "Job not found",
		})
		return
	}

	json.NewEncoder(w).Encode(map[string]interface{}{
		"success": true,
		"job":     job,
	})
}

// statusForError maps the error taxonomy onto HTTP status codes.
// Validation problems are the caller's fault; everything else is a 500.
func statusForError(err error) int {
	var validationErr *model.ValidationError
	if errors.As(err, &validationErr) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"success": false,
		"error":   message,
	})
}
