package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds every environment-driven setting for the service.
type Config struct {
	// Server
	Port   string
	Device string

	// Pipeline sidecars
	MochiEndpoint       string
	CogVideoEndpoint    string
	AnimateDiffEndpoint string
	PipelineAPIKey      string

	// Encoding
	FFmpegPath string

	// Redis (async job queue)
	RedisHost     string
	RedisPort     string
	RedisUsername string
	RedisPassword string
	RedisUseTLS   bool

	// Supabase (job persistence)
	SupabaseURL        string
	SupabaseServiceKey string

	// Gemini (preview enhancement)
	GeminiAPIKeys []string
	GeminiModel   string
}

var globalConfig *Config

// LoadConfig reads .env (when present) plus the environment and stores
// the result as the process-wide config.
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️  .env file not found, using environment variables")
	}

	useTLS := false
	if tlsStr := os.Getenv("REDIS_USE_TLS"); tlsStr != "" {
		if parsed, err := strconv.ParseBool(tlsStr); err == nil {
			useTLS = parsed
		}
	}

	globalConfig = &Config{
		// Server
		Port:   getEnv("PORT", "8080"),
		Device: getEnv("DEVICE", "cpu"),

		// Pipeline sidecars
		MochiEndpoint:       getEnv("MOCHI_ENDPOINT", "http://localhost:7860"),
		CogVideoEndpoint:    getEnv("COGVIDEO_ENDPOINT", "http://localhost:7861"),
		AnimateDiffEndpoint: getEnv("ANIMATEDIFF_ENDPOINT", "http://localhost:7862"),
		PipelineAPIKey:      getEnv("PIPELINE_API_KEY", ""),

		// Encoding
		FFmpegPath: getEnv("FFMPEG_PATH", "ffmpeg"),

		// Redis
		RedisHost:     getEnv("REDIS_HOST", ""),
		RedisPort:     getEnv("REDIS_PORT", "6379"),
		RedisUsername: getEnv("REDIS_USERNAME", ""),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisUseTLS:   useTLS,

		// Supabase
		SupabaseURL:        getEnv("SUPABASE_URL", ""),
		SupabaseServiceKey: getEnv("SUPABASE_SERVICE_KEY", ""),

		// Gemini
		GeminiAPIKeys: splitKeys(getEnv("GEMINI_API_KEYS", getEnv("GEMINI_API_KEY", ""))),
		GeminiModel:   getEnv("GEMINI_MODEL", "gemini-2.5-flash"),
	}

	if err := globalConfig.validate(); err != nil {
		return nil, err
	}

	log.Println("✅ Configuration loaded successfully")
	log.Printf("   Device: %s (cuda: %v)", globalConfig.Device, globalConfig.CUDAAvailable())
	log.Printf("   Mochi: %s", globalConfig.MochiEndpoint)
	log.Printf("   CogVideo: %s", globalConfig.CogVideoEndpoint)
	log.Printf("   AnimateDiff: %s", globalConfig.AnimateDiffEndpoint)
	log.Printf("   Async queue: %v, Preview enhancement: %v",
		globalConfig.AsyncEnabled(), len(globalConfig.GeminiAPIKeys) > 0)

	return globalConfig, nil
}

// GetConfig returns the loaded config.
func GetConfig() *Config {
	if globalConfig == nil {
		log.Fatal("❌ Config not loaded. Call LoadConfig() first.")
	}
	return globalConfig
}

// SetConfigForTest replaces the global config. Tests only.
func SetConfigForTest(cfg *Config) {
	globalConfig = cfg
}

func (c *Config) validate() error {
	if c.Device != "cpu" && c.Device != "cuda" {
		return fmt.Errorf("DEVICE must be cpu or cuda, got %q", c.Device)
	}
	if c.MochiEndpoint == "" || c.CogVideoEndpoint == "" || c.AnimateDiffEndpoint == "" {
		return fmt.Errorf("pipeline endpoints must not be empty")
	}
	// Supabase is only needed for the async path; require both halves together.
	if (c.SupabaseURL == "") != (c.SupabaseServiceKey == "") {
		return fmt.Errorf("SUPABASE_URL and SUPABASE_SERVICE_KEY must be set together")
	}
	return nil
}

// CUDAAvailable reports whether the configured device is a GPU.
func (c *Config) CUDAAvailable() bool {
	return c.Device == "cuda"
}

// AsyncEnabled reports whether the async job queue can run
// (needs both Redis and Supabase).
func (c *Config) AsyncEnabled() bool {
	return c.RedisHost != "" && c.SupabaseURL != ""
}

// getEnv returns an environment variable or the fallback default.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func splitKeys(raw string) []string {
	keys := []string{}
	for _, k := range strings.Split(raw, ",") {
		if k = strings.TrimSpace(k); k != "" {
			keys = append(keys, k)
		}
	}
	return keys
}

// GetRedisAddr builds the Redis host:port address.
func (c *Config) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", c.RedisHost, c.RedisPort)
}
