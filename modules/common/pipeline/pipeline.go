package pipeline

import (
	"context"
	"time"
)

// Handle is an opaque reference to a loaded pipeline. Handles are
// created at most once per process and live until exit.
type Handle struct {
	ModelID  string
	Endpoint string
	Device   string
	LoadedAt time.Time
}

// Params carries one inference request.
type Params struct {
	Prompt        string
	FrameCount    int
	FPS           int
	GuidanceScale float64
	Steps         int
	Seed          int64
}

// Pipeline is the contract every model sidecar client implements.
// Infer returns the generated frames as encoded PNG bytes in order.
type Pipeline interface {
	Load(ctx context.Context) (*Handle, error)
	Infer(ctx context.Context, handle *Handle, params Params) ([][]byte, error)
}
