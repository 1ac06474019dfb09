package videomodels

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"mythiq-video-creator/modules/common/model"
)

// Handler serves the static model catalog.
type Handler struct{}

func NewHandler() *Handler {
	return &Handler{}
}

// RegisterRoutes wires the catalog endpoint.
func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/video-models", h.HandleModels).Methods("GET")
}

// HandleModels - GET /video-models
func (h *Handler) HandleModels(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	models := make(map[string]model.Profile, len(model.Keys()))
	for _, key := range model.Keys() {
		profile, _ := model.ProfileFor(key)
		models[string(key)] = profile
	}

	json.NewEncoder(w).Encode(map[string]interface{}{
		"success":        true,
		"auto_detection": true,
		"models":         models,
	})
}
