package generatevideo

import (
	"context"
	"log"
	"math/rand"
	"strings"
	"sync"

	"mythiq-video-creator/modules/common/config"
	"mythiq-video-creator/modules/common/fallback"
	"mythiq-video-creator/modules/common/model"
	"mythiq-video-creator/modules/common/pipeline"
	"mythiq-video-creator/modules/common/utils"
	"mythiq-video-creator/modules/selector"
	"mythiq-video-creator/modules/submodule/animatediff"
	"mythiq-video-creator/modules/submodule/cogvideo"
	"mythiq-video-creator/modules/submodule/mochi"
)

// EncodeFunc turns ordered PNG frames into an MP4 byte stream.
type EncodeFunc func(frames [][]byte, fps int) ([]byte, error)

// PosterFunc renders a base64 poster image from the first frame.
type PosterFunc func(frame []byte) (string, error)

// Service owns the three pipeline handles. Handles are created lazily
// on first use and kept for the life of the process; one mutex guards
// load-or-reuse plus inference, so generations are serialized
// process-wide no matter how many requests arrive.
type Service struct {
	mu        sync.Mutex
	pipelines map[model.Key]pipeline.Pipeline
	handles   map[model.Key]*pipeline.Handle

	encode EncodeFunc
	poster PosterFunc
}

// NewService wires the engine against the real sidecars and ffmpeg.
func NewService() *Service {
	cfg := config.GetConfig()

	return newService(
		map[model.Key]pipeline.Pipeline{
			model.KeyPhotorealistic: mochi.NewService(),
			model.KeyCreative:       cogvideo.NewService(),
			model.KeyAnimation:      animatediff.NewService(),
		},
		func(frames [][]byte, fps int) ([]byte, error) {
			return utils.EncodeFramesToMP4(cfg.FFmpegPath, frames, fps)
		},
		func(frame []byte) (string, error) {
			return utils.PosterWebPBase64(frame, 80.0)
		},
	)
}

func newService(pipelines map[model.Key]pipeline.Pipeline, encode EncodeFunc, poster PosterFunc) *Service {
	return &Service{
		pipelines: pipelines,
		handles:   make(map[model.Key]*pipeline.Handle),
		encode:    encode,
		poster:    poster,
	}
}

// Generate runs the full flow: resolve model, clamp duration, run the
// pipeline under the engine lock, then encode outside it.
func (s *Service) Generate(ctx context.Context, prompt, requestedModel string, duration int) (*Result, error) {
	if strings.TrimSpace(prompt) == "" {
		return nil, &model.ValidationError{Reason: "Prompt is required"}
	}

	key := selector.Resolve(requestedModel, prompt)
	profile, _ := model.ProfileFor(key)
	duration = model.ClampDuration(key, duration)

	params := pipeline.Params{
		Prompt:        prompt,
		FrameCount:    duration * profile.FPS,
		FPS:           profile.FPS,
		GuidanceScale: profile.GuidanceScale,
		Steps:         profile.Steps,
		Seed:          rand.Int63(),
	}

	log.Printf("🎬 [Engine] Generating with %s: %ds, %d frames, prompt: %s",
		profile.Name, duration, params.FrameCount, truncateString(prompt, 50))

	frames, err := s.runPipeline(ctx, key, profile, params)
	if err != nil {
		return nil, err
	}

	videoBytes, err := s.encode(frames, profile.FPS)
	if err != nil {
		return nil, &model.EncodingError{Err: err}
	}

	// Poster is best effort; a missing poster never fails the request.
	posterData := fallback.PlaceholderPosterBase64()
	if p, err := s.poster(frames[0]); err == nil {
		posterData = p
	} else {
		log.Printf("⚠️  [Engine] Poster render failed, using placeholder: %v", err)
	}

	return &Result{
		VideoData:  utils.VideoDataURL(videoBytes),
		PosterData: posterData,
		ModelUsed:  string(key),
		Duration:   duration,
	}, nil
}

// runPipeline holds the engine lock across load-or-reuse and inference.
func (s *Service) runPipeline(ctx context.Context, key model.Key, profile model.Profile, params pipeline.Params) ([][]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	pipe := s.pipelines[key]

	handle := s.handles[key]
	if handle == nil {
		loaded, err := pipe.Load(ctx)
		if err != nil {
			return nil, &model.ModelLoadError{Model: profile.Name, Err: err}
		}
		s.handles[key] = loaded
		handle = loaded
	}

	frames, err := pipe.Infer(ctx, handle, params)
	if err != nil {
		return nil, &model.InferenceError{Model: profile.Name, Err: err}
	}

	return frames, nil
}

// IsLoaded reports whether a pipeline handle exists yet.
func (s *Service) IsLoaded(key model.Key) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.handles[key] != nil
}

// LoadedModels maps the wire names used by /health to handle state.
func (s *Service) LoadedModels() map[string]bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	loaded := make(map[string]bool, len(model.Keys()))
	for _, key := range model.Keys() {
		profile, _ := model.ProfileFor(key)
		loaded[profile.Slug] = s.handles[key] != nil
	}
	return loaded
}

func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
