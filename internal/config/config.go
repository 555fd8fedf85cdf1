package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds all runtime settings. Values come from the environment with
// sensible dev defaults; main loads a .env file first via godotenv.
type Config struct {
	Port    string
	BaseURL string

	RedisAddr string

	StoreDriver string // "postgres" or "memory"
	DatabaseURL string

	BlobDriver     string // "minio" or "memory"
	MinioEndpoint  string
	MinioAccessKey string
	MinioSecretKey string
	MinioBucket    string
	MinioUseSSL    bool
	MinioPublicURL string

	OpenAIAPIKey string
	OpenAIModel  string
	OpenAIAPIURL string

	ElevenLabsAPIKey string
	ElevenLabsAPIURL string

	TweetUnrollAPIURL string
	ThreadAPIURL      string
	ThreadAPIKey      string
	TwitterOEmbedURL  string

	WorkerConcurrency int
	JobTimeout        time.Duration
}

// Load reads the configuration from the environment.
func Load() *Config {
	return &Config{
		Port:    getEnv("PORT", "8080"),
		BaseURL: getEnv("BASE_URL", "http://localhost:8080"),

		RedisAddr: getEnv("REDIS_ADDR", "127.0.0.1:6379"),

		StoreDriver: getEnv("STORE_DRIVER", "memory"),
		DatabaseURL: getEnv("DATABASE_URL", ""),

		BlobDriver:     getEnv("BLOB_DRIVER", "memory"),
		MinioEndpoint:  getEnv("MINIO_ENDPOINT", "localhost:9000"),
		MinioAccessKey: getEnv("MINIO_ACCESS_KEY", ""),
		MinioSecretKey: getEnv("MINIO_SECRET_KEY", ""),
		MinioBucket:    getEnv("MINIO_BUCKET", "podcast-audio"),
		MinioUseSSL:    getEnvBool("MINIO_USE_SSL", false),
		MinioPublicURL: getEnv("MINIO_PUBLIC_URL", ""),

		OpenAIAPIKey: getEnv("OPENAI_API_KEY", ""),
		OpenAIModel:  getEnv("OPENAI_MODEL", "gpt-4o-mini"),
		OpenAIAPIURL: getEnv("OPENAI_API_URL", "https://api.openai.com"),

		ElevenLabsAPIKey: getEnv("ELEVENLABS_API_KEY", ""),
		ElevenLabsAPIURL: getEnv("ELEVENLABS_API_URL", "https://api.elevenlabs.io"),

		TweetUnrollAPIURL: getEnv("TWEET_UNROLL_API_URL", "https://api.fxtwitter.com"),
		ThreadAPIURL:      getEnv("THREAD_API_URL", ""),
		ThreadAPIKey:      getEnv("THREAD_API_KEY", ""),
		TwitterOEmbedURL:  getEnv("TWITTER_OEMBED_URL", "https://publish.twitter.com/oembed"),

		WorkerConcurrency: getEnvInt("WORKER_CONCURRENCY", 4),
		JobTimeout:        getEnvDuration("JOB_TIMEOUT", 30*time.Minute),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
