package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	for _, key := range []string{
		"PORT", "DEVICE",
		"MOCHI_ENDPOINT", "COGVIDEO_ENDPOINT", "ANIMATEDIFF_ENDPOINT",
		"FFMPEG_PATH", "REDIS_HOST", "SUPABASE_URL", "SUPABASE_SERVICE_KEY",
	} {
		t.Setenv(key, "")
	}

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "cpu", cfg.Device)
	assert.Equal(t, "http://localhost:7860", cfg.MochiEndpoint)
	assert.Equal(t, "http://localhost:7861", cfg.CogVideoEndpoint)
	assert.Equal(t, "http://localhost:7862", cfg.AnimateDiffEndpoint)
	assert.Equal(t, "ffmpeg", cfg.FFmpegPath)
	assert.False(t, cfg.CUDAAvailable())
	assert.False(t, cfg.AsyncEnabled())
}

func TestValidateRejectsBadDevice(t *testing.T) {
	cfg := &Config{
		Device:              "tpu",
		MochiEndpoint:       "http://localhost:7860",
		CogVideoEndpoint:    "http://localhost:7861",
		AnimateDiffEndpoint: "http://localhost:7862",
	}
	assert.Error(t, cfg.validate())

	cfg.Device = "cuda"
	assert.NoError(t, cfg.validate())
	assert.True(t, cfg.CUDAAvailable())
}

func TestValidateRejectsMissingEndpoints(t *testing.T) {
	cfg := &Config{
		Device:           "cpu",
		MochiEndpoint:    "http://localhost:7860",
		CogVideoEndpoint: "http://localhost:7861",
	}
	assert.Error(t, cfg.validate())
}

func TestValidateSupabaseHalves(t *testing.T) {
	cfg := &Config{
		Device:              "cpu",
		MochiEndpoint:       "http://localhost:7860",
		CogVideoEndpoint:    "http://localhost:7861",
		AnimateDiffEndpoint: "http://localhost:7862",
		SupabaseURL:         "https://example.supabase.co",
	}
	assert.Error(t, cfg.validate())

	cfg.SupabaseServiceKey = "service-key"
	assert.NoError(t, cfg.validate())
}

func TestAsyncEnabledNeedsBothBackends(t *testing.T) {
	cfg := &Config{RedisHost: "localhost"}
	assert.False(t, cfg.AsyncEnabled())

	cfg.SupabaseURL = "https://example.supabase.co"
	assert.True(t, cfg.AsyncEnabled())
}

func TestGetRedisAddr(t *testing.T) {
	cfg := &Config{RedisHost: "redis.internal", RedisPort: "6380"}
	assert.Equal(t, "redis.internal:6380", cfg.GetRedisAddr())
}

func TestSplitKeys(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, splitKeys("a, b"))
	assert.Equal(t, []string{"a"}, splitKeys("a,,  "))
	assert.Empty(t, splitKeys(""))
}
