package main

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/redis/go-redis/v9"

	"mythiq-video-creator/modules/common/config"
	"mythiq-video-creator/modules/common/database"
	redisClient "mythiq-video-creator/modules/common/redis"
	generatevideo "mythiq-video-creator/modules/generate-video"
	"mythiq-video-creator/modules/preview"
	"mythiq-video-creator/modules/progress"
	"mythiq-video-creator/modules/videomodels"
	"mythiq-video-creator/modules/worker"
)

const serviceName = "mythiq-video-creator"

// CORS 헤더 추가
func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// recoverMiddleware turns panics into a JSON 500 instead of killing the
// connection mid-response.
func recoverMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				log.Printf("❌ [Server] Panic serving %s %s: %v", r.Method, r.URL.Path, rec)
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusInternalServerError)
				json.NewEncoder(w).Encode(map[string]interface{}{
					"success": false,
					"error":   "Internal server error",
				})
			}
		}()
		next.ServeHTTP(w, r)
	})
}

func notFoundHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusNotFound)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"success": false,
		"error":   "Endpoint not found",
	})
}

// healthHandler reports service status plus which pipelines hold a
// live handle right now.
func healthHandler(engine *generatevideo.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cfg := config.GetConfig()

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"status":         "online",
			"service":        serviceName,
			"device":         cfg.Device,
			"cuda_available": cfg.CUDAAvailable(),
			"models_loaded":  engine.LoadedModels(),
			"message":        "Text-to-video generation service is running",
			"timestamp":      time.Now().UTC().Format(time.RFC3339),
		})
	}
}

// newRouter assembles the full route table. db and rdb may be nil when
// the async stack is not configured.
func newRouter(engine *generatevideo.Service, db *database.Client, rdb *redis.Client, hub *progress.Hub) *mux.Router {
	r := mux.NewRouter()

	r.Use(enableCORS)
	r.Use(recoverMiddleware)
	r.NotFoundHandler = enableCORS(http.HandlerFunc(notFoundHandler))

	r.HandleFunc("/", healthHandler(engine)).Methods("GET")
	r.HandleFunc("/health", healthHandler(engine)).Methods("GET")
	r.HandleFunc("/ws", hub.ServeWS)

	generatevideo.NewHandler(engine, db, rdb, hub).RegisterRoutes(r)
	videomodels.NewHandler().RegisterRoutes(r)
	preview.NewHandler(engine).RegisterRoutes(r)

	return r
}

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("❌ Failed to load config: %v", err)
	}

	engine := generatevideo.NewService()
	hub := progress.NewHub()

	var (
		db  *database.Client
		rdb *redis.Client
	)
	if cfg.AsyncEnabled() {
		db = database.NewClient()
		rdb = redisClient.Connect(cfg)
	}

	// Queue worker runs in the background; it disables itself when the
	// async stack is not configured.
	go worker.StartWorker(engine, hub)

	r := newRouter(engine, db, rdb, hub)

	log.Printf("🚀 Mythiq Video Creator starting on port %s", cfg.Port)
	log.Printf("🖥️  Device: %s (CUDA: %v)", cfg.Device, cfg.CUDAAvailable())
	log.Printf("❤️  Health check: http://localhost:%s/health", cfg.Port)
	log.Printf("🎬 Generate: http://localhost:%s/generate-video", cfg.Port)

	if err := http.ListenAndServe(":"+cfg.Port, r); err != nil {
		log.Fatalf("Server failed to start: %v", err)
	}
}
