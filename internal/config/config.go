package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	ProviderOllama = "ollama"
	ProviderGemini = "gemini"
)

type Config struct {
	// Server
	Port        string
	Env         string
	LogLevel    string
	MaxUploadMB int

	// Language model
	LLMProvider       string
	LLMModel          string
	OllamaURL         string
	GeminiAPIKey      string
	LLMTemperature    float64
	LLMConcurrentReqs int
	LLMTimeout        time.Duration

	// Quiz generation
	OvergenerationMargin int

	// Transcripts
	TranscriptTimeout   time.Duration
	TranscriptCacheSize int
	TranscriptLanguages []string

	// Rate limiting; an empty RedisURL keeps the limiter in memory.
	RedisURL           string
	RateLimitPerMinute int

	// Frontend
	FrontendURL string
}

func Load() *Config {
	// Load .env file if it exists
	godotenv.Load()

	cfg := &Config{
		Port:                 getEnvOrDefault("PORT", "8080"),
		Env:                  getEnvOrDefault("ENV", "development"),
		LogLevel:             getEnvOrDefault("LOG_LEVEL", "info"),
		MaxUploadMB:          getEnvAsIntOrDefault("MAX_UPLOAD_MB", 20),
		LLMProvider:          strings.ToLower(getEnvOrDefault("LLM_PROVIDER", ProviderOllama)),
		OllamaURL:            getEnvOrDefault("OLLAMA_URL", "http://localhost:11434"),
		LLMTemperature:       getEnvAsFloatOrDefault("LLM_TEMPERATURE", 0.3),
		LLMConcurrentReqs:    getEnvAsIntOrDefault("LLM_CONCURRENT_REQUESTS", 5),
		LLMTimeout:           getEnvAsDurationOrDefault("LLM_TIMEOUT", 120*time.Second),
		OvergenerationMargin: getEnvAsIntOrDefault("OVERGENERATION_MARGIN", 1),
		TranscriptTimeout:    getEnvAsDurationOrDefault("TRANSCRIPT_TIMEOUT", 30*time.Second),
		TranscriptCacheSize:  getEnvAsIntOrDefault("TRANSCRIPT_CACHE_SIZE", 128),
		TranscriptLanguages:  getEnvAsListOrDefault("TRANSCRIPT_LANGUAGES", []string{"en", "en-US", "en-GB"}),
		RedisURL:             getEnvOrDefault("REDIS_URL", ""),
		RateLimitPerMinute:   getEnvAsIntOrDefault("RATE_LIMIT_PER_MINUTE", 30),
		FrontendURL:          getEnvOrDefault("FRONTEND_URL", "*"),
	}

	cfg.LLMModel = getEnvOrDefault("LLM_MODEL", defaultModel(cfg.LLMProvider))
	if cfg.LLMProvider == ProviderGemini {
		cfg.GeminiAPIKey = mustGetEnv("GEMINI_API_KEY")
	}

	return cfg
}

func defaultModel(provider string) string {
	if provider == ProviderGemini {
		return "gemini-1.5-flash"
	}
	return "llama3.1"
}

// MaxUploadBytes is the multipart body limit derived from MaxUploadMB.
func (c *Config) MaxUploadBytes() int64 {
	return int64(c.MaxUploadMB) << 20
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

func mustGetEnv(key string) string {
	val := os.Getenv(key)
	if val == "" {
		panic(fmt.Sprintf("required environment variable %s is not set", key))
	}
	return val
}

func getEnvOrDefault(key, defaultVal string) string {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func getEnvAsIntOrDefault(key string, defaultVal int) int {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}
	return n
}

func getEnvAsFloatOrDefault(key string, defaultVal float64) float64 {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	f, err := strconv.ParseFloat(val, 64)
	if err != nil {
		return defaultVal
	}
	return f
}

// getEnvAsDurationOrDefault accepts Go durations ("90s") or bare seconds ("90").
func getEnvAsDurationOrDefault(key string, defaultVal time.Duration) time.Duration {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	if d, err := time.ParseDuration(val); err == nil {
		return d
	}
	if n, err := strconv.Atoi(val); err == nil {
		return time.Duration(n) * time.Second
	}
	return defaultVal
}

func getEnvAsListOrDefault(key string, defaultVal []string) []string {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	var out []string
	for _, part := range strings.Split(val, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return defaultVal
	}
	return out
}
