package database

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/supabase-community/supabase-go"
	"mythiq-video-creator/modules/common/config"
	"mythiq-video-creator/modules/common/model"
)

const jobsTable = "video_generation_jobs"

type Client struct {
	supabase *supabase.Client
}

// NewClient builds the Supabase-backed job store. Returns nil when
// Supabase is not configured or the client cannot be created.
func NewClient() *Client {
	cfg := config.GetConfig()

	if cfg.SupabaseURL == "" {
		log.Println("⚠️  [Database] Supabase not configured, job persistence disabled")
		return nil
	}

	supabaseClient, err := supabase.NewClient(cfg.SupabaseURL, cfg.SupabaseServiceKey, &supabase.ClientOptions{})
	if err != nil {
		log.Printf("❌ [Database] Failed to create Supabase client: %v", err)
		return nil
	}

	return &Client{
		supabase: supabaseClient,
	}
}

// InsertJob stores a freshly submitted generation job.
func (c *Client) InsertJob(ctx context.Context, job *model.GenerationJob) error {
	log.Printf("💾 [Database] Inserting job: %s", job.JobID)

	insertData := map[string]interface{}{
		"job_id":          job.JobID,
		"prompt":          job.Prompt,
		"requested_model": job.RequestedModel,
		"duration":        job.Duration,
		"job_status":      job.JobStatus,
	}

	_, _, err := c.supabase.From(jobsTable).
		Insert(insertData, false, "", "", "").
		Execute()

	if err != nil {
		return fmt.Errorf("failed to insert job: %w", err)
	}

	log.Printf("✅ [Database] Job inserted: %s", job.JobID)
	return nil
}

// FetchJob loads a job row by id.
func (c *Client) FetchJob(jobID string) (*model.GenerationJob, error) {
	log.Printf("🔍 [Database] Fetching job: %s", jobID)

	var jobs []model.GenerationJob

	data, _, err := c.supabase.From(jobsTable).
		Select("*", "exact", false).
		Eq("job_id", jobID).
		Execute()

	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", jobsTable, err)
	}

	if err := json.Unmarshal(data, &jobs); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	if len(jobs) == 0 {
		return nil, fmt.Errorf("job not found: %s", jobID)
	}

	job := &jobs[0]
	log.Printf("✅ [Database] Job fetched: %s (status: %s)", job.JobID, job.JobStatus)

	return job, nil
}

// UpdateJobStatus moves a job through its lifecycle. Started/completed
// timestamps are stamped on the matching transitions.
func (c *Client) UpdateJobStatus(ctx context.Context, jobID string, status string) error {
	log.Printf("📝 [Database] Updating job %s status to: %s", jobID, status)

	now := time.Now().UTC().Format(time.RFC3339)
	updateData := map[string]interface{}{
		"job_status": status,
		"updated_at": now,
	}

	if status == model.StatusProcessing {
		updateData["started_at"] = now
	} else if status == model.StatusCompleted || status == model.StatusFailed {
		updateData["completed_at"] = now
	}

	_, _, err := c.supabase.From(jobsTable).
		Update(updateData, "", "").
		Eq("job_id", jobID).
		Execute()

	if err != nil {
		return fmt.Errorf("failed to update job status: %w", err)
	}

	return nil
}

// CompleteJob stores the generation result on a finished job.
func (c *Client) CompleteJob(ctx context.Context, jobID, modelUsed, videoData, posterData string, duration int) error {
	log.Printf("📝 [Database] Completing job %s (model: %s, duration: %ds)", jobID, modelUsed, duration)

	now := time.Now().UTC().Format(time.RFC3339)
	updateData := map[string]interface{}{
		"job_status":   model.StatusCompleted,
		"model_used":   modelUsed,
		"video_data":   videoData,
		"poster_data":  posterData,
		"duration":     duration,
		"completed_at": now,
		"updated_at":   now,
	}

	_, _, err := c.supabase.From(jobsTable).
		Update(updateData, "", "").
		Eq("job_id", jobID).
		Execute()

	if err != nil {
		return fmt.Errorf("failed to complete job: %w", err)
	}

	log.Printf("✅ [Database] Job completed: %s", jobID)
	return nil
}

// FailJob records a failure message on a job.
func (c *Client) FailJob(ctx context.Context, jobID string, message string) error {
	log.Printf("📝 [Database] Failing job %s: %s", jobID, message)

	now := time.Now().UTC().Format(time.RFC3339)
	updateData := map[string]interface{}{
		"job_status":    model.StatusFailed,
		"error_message": message,
		"completed_at":  now,
		"updated_at":    now,
	}

	_, _, err := c.supabase.From(jobsTable).
		Update(updateData, "", "").
		Eq("job_id", jobID).
		Execute()

	if err != nil {
		return fmt.Errorf("failed to mark job failed: %w", err)
	}

	return nil
}
