package animatediff

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"mythiq-video-creator/modules/common/config"
	"mythiq-video-creator/modules/common/pipeline"
)

// Service talks to the AnimateDiff inference sidecar.
type Service struct {
	endpoint string
	apiKey   string
	device   string
	client   *http.Client
}

func NewService() *Service {
	cfg := config.GetConfig()
	return &Service{
		endpoint: cfg.AnimateDiffEndpoint,
		apiKey:   cfg.PipelineAPIKey,
		device:   cfg.Device,
		client: &http.Client{
			Timeout: 10 * time.Minute,
		},
	}
}

// Load warms up the motion adapter plus base checkpoint and returns
// the pipeline handle.
func (s *Service) Load(ctx context.Context) (*pipeline.Handle, error) {
	body, err := json.Marshal(LoadRequest{
		MotionAdapter: MotionAdapterID,
		BaseModel:     BaseModelID,
		Device:        s.device,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal load request: %w", err)
	}

	log.Printf("📦 [AnimateDiff] Loading %s + %s on %s", MotionAdapterID, BaseModelID, s.device)

	var loadResp LoadResponse
	if err := s.post(ctx, "/load", body, &loadResp); err != nil {
		return nil, err
	}
	if !loadResp.Loaded {
		return nil, fmt.Errorf("sidecar refused to load %s: %s", MotionAdapterID, loadResp.Error)
	}

	log.Printf("✅ [AnimateDiff] Pipeline loaded on %s", loadResp.Device)
	return &pipeline.Handle{
		ModelID:  MotionAdapterID,
		Endpoint: s.endpoint,
		Device:   loadResp.Device,
		LoadedAt: time.Now(),
	}, nil
}

// Infer runs one generation and returns the decoded PNG frames.
func (s *Service) Infer(ctx context.Context, handle *pipeline.Handle, params pipeline.Params) ([][]byte, error) {
	body, err := json.Marshal(InferRequest{
		Prompt:            params.Prompt,
		NumFrames:         params.FrameCount,
		FPS:               params.FPS,
		GuidanceScale:     params.GuidanceScale,
		NumInferenceSteps: params.Steps,
		Seed:              params.Seed,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal infer request: %w", err)
	}

	log.Printf("🎬 [AnimateDiff] Generating %d frames (steps: %d, guidance: %.1f)",
		params.FrameCount, params.Steps, params.GuidanceScale)

	var inferResp InferResponse
	if err := s.post(ctx, "/generate", body, &inferResp); err != nil {
		return nil, err
	}
	if inferResp.Error != "" {
		return nil, fmt.Errorf("sidecar error: %s", inferResp.Error)
	}
	if len(inferResp.Frames) == 0 {
		return nil, fmt.Errorf("sidecar returned no frames")
	}

	frames := make([][]byte, 0, len(inferResp.Frames))
	for i, encoded := range inferResp.Frames {
		frame, err := base64.StdEncoding.DecodeString(encoded)
		if err != nil {
			return nil, fmt.Errorf("failed to decode frame %d: %w", i, err)
		}
		frames = append(frames, frame)
	}

	log.Printf("✅ [AnimateDiff] Received %d frames", len(frames))
	return frames, nil
}

func (s *Service) post(ctx context.Context, path string, body []byte, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, "POST", s.endpoint+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if s.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+s.apiKey)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to call AnimateDiff sidecar: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("AnimateDiff sidecar returned %d: %s", resp.StatusCode, string(respBody))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode sidecar response: %w", err)
	}
	return nil
}
