package model

import "time"

// Key identifies one of the three model profiles.
type Key string

const (
	KeyPhotorealistic Key = "photorealistic"
	KeyCreative       Key = "creative"
	KeyAnimation      Key = "animation"

	// KeyAuto is a request-side sentinel, never a selected profile.
	KeyAuto Key = "auto"
)

// Profile is the static metadata for one video model.
type Profile struct {
	Key           Key      `json:"-"`
	Name          string   `json:"name"`
	Slug          string   `json:"-"` // wire name used by /health models_loaded
	Quality       string   `json:"quality"`
	MaxDuration   int      `json:"max_duration"` // seconds
	FPS           int      `json:"-"`
	BestFor       []string `json:"best_for"`
	GuidanceScale float64  `json:"-"`
	Steps         int      `json:"-"`
	// SecondsPerSecond is the rough wall-clock cost of generating one
	// second of video, used for preview estimates.
	SecondsPerSecond int `json:"-"`
	// LoadSeconds is the rough first-use pipeline load cost.
	LoadSeconds int `json:"-"`
}

// profiles is defined once at startup and never mutated.
var profiles = map[Key]Profile{
	KeyPhotorealistic: {
		Key:              KeyPhotorealistic,
		Name:             "Mochi-1",
		Slug:             "mochi",
		Quality:          "Highest",
		MaxDuration:      6,
		FPS:              30,
		BestFor:          []string{"realistic", "people", "nature", "objects"},
		GuidanceScale:    4.5,
		Steps:            64,
		SecondsPerSecond: 45,
		LoadSeconds:      90,
	},
	KeyCreative: {
		Key:              KeyCreative,
		Name:             "CogVideoX-5B",
		Slug:             "cogvideo",
		Quality:          "High",
		MaxDuration:      6,
		FPS:              8,
		BestFor:          []string{"artistic", "abstract", "fantasy", "creative"},
		GuidanceScale:    6.0,
		Steps:            50,
		SecondsPerSecond: 30,
		LoadSeconds:      60,
	},
	KeyAnimation: {
		Key:              KeyAnimation,
		Name:             "AnimateDiff",
		Slug:             "animatediff",
		Quality:          "High",
		MaxDuration:      2,
		FPS:              8,
		BestFor:          []string{"cartoon", "anime", "character", "illustration"},
		GuidanceScale:    7.5,
		Steps:            25,
		SecondsPerSecond: 20,
		LoadSeconds:      40,
	},
}

// Keys lists the profile keys in catalog order.
func Keys() []Key {
	return []Key{KeyPhotorealistic, KeyCreative, KeyAnimation}
}

// ProfileFor returns the profile for a key.
func ProfileFor(key Key) (Profile, bool) {
	p, ok := profiles[key]
	return p, ok
}

// IsValidKey reports whether key names a real profile (auto excluded).
func IsValidKey(key Key) bool {
	_, ok := profiles[key]
	return ok
}

// ClampDuration limits a requested duration to the profile maximum.
// Non-positive values fall back to the default duration.
func ClampDuration(key Key, duration int) int {
	if duration <= 0 {
		duration = DefaultDuration
	}
	if p, ok := profiles[key]; ok && duration > p.MaxDuration {
		return p.MaxDuration
	}
	return duration
}

// DefaultDuration is used when a request omits the duration field.
const DefaultDuration = 6

// GenerationJob is the video_generation_jobs row for the async path.
type GenerationJob struct {
	JobID          string     `json:"job_id"`
	Prompt         string     `json:"prompt"`
	RequestedModel string     `json:"requested_model"`
	ModelUsed      *string    `json:"model_used"`
	Duration       int        `json:"duration"`
	JobStatus      string     `json:"job_status"`
	VideoData      *string    `json:"video_data"`
	PosterData     *string    `json:"poster_data"`
	ErrorMessage   *string    `json:"error_message"`
	CreatedAt      time.Time  `json:"created_at"`
	StartedAt      *time.Time `json:"started_at"`
	CompletedAt    *time.Time `json:"completed_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

const (
	StatusPending    = "pending"
	StatusProcessing = "processing"
	StatusCompleted  = "completed"
	StatusFailed     = "failed"
)
