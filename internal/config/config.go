package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds application configuration
type Config struct {
	// Server
	HTTPAddr        string
	LogLevel        string
	HTTPTimeout     time.Duration
	ShutdownTimeout time.Duration

	// Optional access gate: bcrypt hash of the key clients send in X-Studio-Access-Key.
	AccessKeyHash string

	// Gemini text generation. The API key is never read here; it arrives per request.
	GeminiAPIEndpoint string // if set, overrides default Gemini API base URL (e.g. a local proxy)
	GeminiModelText   string
	LLMBackend        string // genai | langchaingo | chat
	LLMMaxAttempts    int
	LLMBackoffBase    time.Duration
	LLMBackoffMax     time.Duration

	// Image search
	UnsplashAccessKey      string
	UnsplashEndpoint       string
	ImageSearchRatePerHour int
	MaxImageBytes          int64
	PreferIPv4             bool

	// Thumbnail fonts, tried in order before the system and embedded fonts
	ThumbnailFontPaths []string

	// S3 artifact export (disabled when S3Bucket is empty)
	S3Endpoint     string
	S3Region       string
	S3Bucket       string
	S3AccessKey    string
	S3SecretKey    string
	S3UseSSL       bool
	ArtifactURLTTL time.Duration
}

// Load loads configuration from environment variables
func Load() *Config {
	return &Config{
		HTTPAddr:        getEnv("HTTP_ADDR", ":8080"),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		HTTPTimeout:     getEnvDuration("HTTP_TIMEOUT", 120*time.Second),
		ShutdownTimeout: getEnvDuration("SHUTDOWN_TIMEOUT", 15*time.Second),

		AccessKeyHash: getEnv("ACCESS_KEY_HASH", ""),

		GeminiAPIEndpoint: getEnv("GEMINI_API_ENDPOINT", ""),
		GeminiModelText:   getEnv("GEMINI_MODEL_TEXT", "gemini-2.5-flash"),
		LLMBackend:        getEnv("LLM_BACKEND", "genai"),
		LLMMaxAttempts:    clampMin(getEnvInt("LLM_MAX_ATTEMPTS", 6), 1),
		LLMBackoffBase:    getEnvDuration("LLM_BACKOFF_BASE", time.Second),
		LLMBackoffMax:     getEnvDuration("LLM_BACKOFF_MAX", 60*time.Second),

		UnsplashAccessKey:      getEnv("UNSPLASH_ACCESS_KEY", ""),
		UnsplashEndpoint:       getEnv("UNSPLASH_ENDPOINT", "https://api.unsplash.com"),
		ImageSearchRatePerHour: getEnvInt("IMAGE_SEARCH_RATE_PER_HOUR", 50),
		MaxImageBytes:          getEnvInt64("MAX_IMAGE_BYTES", 20*1024*1024), // 20MB
		PreferIPv4:             getEnvBool("PREFER_IPV4", false),

		ThumbnailFontPaths: getEnvList("THUMBNAIL_FONT_PATHS", ":"),

		S3Endpoint:     getEnv("S3_ENDPOINT", ""),
		S3Region:       getEnv("S3_REGION", "us-east-1"),
		S3Bucket:       getEnv("S3_BUCKET", ""),
		S3AccessKey:    getEnv("S3_ACCESS_KEY", ""),
		S3SecretKey:    getEnv("S3_SECRET_KEY", ""),
		S3UseSSL:       getEnvBool("S3_USE_SSL", false),
		ArtifactURLTTL: getEnvDuration("ARTIFACT_URL_TTL", 24*time.Hour),
	}
}

// ArtifactsEnabled reports whether generated files should be exported to S3.
func (c *Config) ArtifactsEnabled() bool {
	return c.S3Bucket != ""
}

// S3EndpointURL returns S3Endpoint with a scheme, chosen by S3UseSSL when the
// endpoint is a bare host:port.
func (c *Config) S3EndpointURL() string {
	if c.S3Endpoint == "" || strings.Contains(c.S3Endpoint, "://") {
		return c.S3Endpoint
	}
	if c.S3UseSSL {
		return "https://" + c.S3Endpoint
	}
	return "http://" + c.S3Endpoint
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intVal
		}
	}
	return defaultValue
}

// getEnvList splits a separated list, dropping empty entries.
func getEnvList(key, sep string) []string {
	var out []string
	for _, part := range strings.Split(os.Getenv(key), sep) {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// clampMin returns v if v >= min, otherwise min. Used to ensure config values are in valid range.
func clampMin(v, min int) int {
	if v < min {
		return min
	}
	return v
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
