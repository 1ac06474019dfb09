package worker

import (
	"context"
	"log"
	"time"

	"mythiq-video-creator/modules/common/config"
	"mythiq-video-creator/modules/common/database"
	"mythiq-video-creator/modules/common/model"
	redisClient "mythiq-video-creator/modules/common/redis"
	generatevideo "mythiq-video-creator/modules/generate-video"
	"mythiq-video-creator/modules/progress"
)

// jobStore is the slice of the database client the worker needs.
type jobStore interface {
	FetchJob(jobID string) (*model.GenerationJob, error)
	UpdateJobStatus(ctx context.Context, jobID string, status string) error
	CompleteJob(ctx context.Context, jobID, modelUsed, videoData, posterData string, duration int) error
	FailJob(ctx context.Context, jobID string, message string) error
}

// generator runs one text-to-video generation.
type generator interface {
	Generate(ctx context.Context, prompt, requestedModel string, duration int) (*generatevideo.Result, error)
}

// StartWorker watches the Redis job queue and drives async
// generations through the engine. It is a no-op when the async
// dependencies are not configured, so the sync endpoints keep working.
func StartWorker(engine *generatevideo.Service, hub *progress.Hub) {
	cfg := config.GetConfig()

	if !cfg.AsyncEnabled() {
		log.Println("⚠️  [Worker] Redis/Supabase not configured, async queue disabled")
		return
	}

	log.Println("🔄 [Worker] Video queue worker starting...")

	rdb := redisClient.Connect(cfg)
	if rdb == nil {
		log.Println("❌ [Worker] Failed to connect to Redis, async queue disabled")
		return
	}
	log.Println("✅ [Worker] Redis connected successfully")

	dbClient := database.NewClient()
	if dbClient == nil {
		log.Println("❌ [Worker] Failed to initialize Database client, async queue disabled")
		return
	}

	log.Printf("👀 [Worker] Watching queue: %s", generatevideo.QueueKey)

	ctx := context.Background()

	for {
		// BRPOP blocks until a job id arrives.
		result, err := rdb.BRPop(ctx, 0, generatevideo.QueueKey).Result()
		if err != nil {
			log.Printf("❌ [Worker] Redis BRPOP error: %v", err)
			time.Sleep(5 * time.Second)
			continue
		}

		// result[0] is the queue name, result[1] the job id.
		jobID := result[1]
		log.Printf("🎯 [Worker] Received job: %s", jobID)

		processJob(ctx, engine, dbClient, hub, jobID)
	}
}

// processJob runs one queued generation end to end. Failures land on
// the job row; the worker itself never dies on a bad job.
func processJob(ctx context.Context, engine generator, dbClient jobStore, hub *progress.Hub, jobID string) {
	job, err := dbClient.FetchJob(jobID)
	if err != nil {
		log.Printf("❌ [Worker] Failed to fetch job %s: %v", jobID, err)
		return
	}

	log.Printf("🚀 [Worker] Processing job %s: model=%s duration=%d",
		job.JobID, job.RequestedModel, job.Duration)

	if err := dbClient.UpdateJobStatus(ctx, jobID, model.StatusProcessing); err != nil {
		log.Printf("⚠️  [Worker] Failed to mark job processing: %v", err)
	}
	hub.Publish(progress.Update{JobID: jobID, Status: model.StatusProcessing})

	result, err := engine.Generate(ctx, job.Prompt, job.RequestedModel, job.Duration)
	if err != nil {
		log.Printf("❌ [Worker] Job %s failed: %v", jobID, err)
		if dbErr := dbClient.FailJob(ctx, jobID, err.Error()); dbErr != nil {
			log.Printf("⚠️  [Worker] Failed to record failure: %v", dbErr)
		}
		hub.Publish(progress.Update{JobID: jobID, Status: model.StatusFailed, Error: err.Error()})
		return
	}

	if err := dbClient.CompleteJob(ctx, jobID, result.ModelUsed, result.VideoData, result.PosterData, result.Duration); err != nil {
		log.Printf("⚠️  [Worker] Failed to record completion: %v", err)
	}
	hub.Publish(progress.Update{JobID: jobID, Status: model.StatusCompleted, ModelUsed: result.ModelUsed})

	log.Printf("✅ [Worker] Job %s completed with %s", jobID, result.ModelUsed)
}
