package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Keys     APIKeys
	Ai       AIConfig
}

type AppConfig struct {
	Port               string
	BaseURL            string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	NatsURL            string
}

type DatabaseConfig struct {
	Connection string
}

type APIKeys struct {
	GoogleGemini string
}

type AIConfig struct {
	LLMProvider string // "gemini" or "ollama"
	LLMModel    string // e.g. "gemini-1.5-flash", "llama3"

	OllamaBaseURL string

	DefaultSubject string

	// Retry policy
	MaxAttempts    int
	RetryBaseDelay time.Duration
	RetryMaxDelay  time.Duration
	RetryMultiplier float64

	// Per provider call
	RequestTimeout time.Duration

	// Background workers
	WorkerCount int
	QueueSize   int
	SubmitTopic string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			BaseURL:            getEnv("APP_BASE_URL", "http://localhost:3000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			NatsURL:            getEnv("NATS_URL", "nats://localhost:4222"),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		Keys: APIKeys{
			GoogleGemini: getEnv("GOOGLE_GEMINI_API_KEY", ""),
		},
		Ai: AIConfig{
			LLMProvider:     getEnv("LLM_PROVIDER", "gemini"),
			LLMModel:        getEnv("LLM_MODEL", "gemini-1.5-flash"),
			OllamaBaseURL:   getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
			DefaultSubject:  getEnv("AI_DEFAULT_SUBJECT", "general"),
			MaxAttempts:     getEnvAsInt("AI_MAX_ATTEMPTS", 3),
			RetryBaseDelay:  getEnvAsDuration("AI_RETRY_BASE_DELAY", 500*time.Millisecond),
			RetryMaxDelay:   getEnvAsDuration("AI_RETRY_MAX_DELAY", 10*time.Second),
			RetryMultiplier: 2.0,
			RequestTimeout:  getEnvAsDuration("AI_REQUEST_TIMEOUT", 30*time.Second),
			WorkerCount:     getEnvAsInt("AI_WORKER_COUNT", 4),
			QueueSize:       getEnvAsInt("AI_QUEUE_SIZE", 64),
			SubmitTopic:     getEnv("AI_SUBMIT_TOPIC_NAME", "AI_INTERACTION_SUBMITTED"),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}

func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	strValue := getEnv(key, "")
	if value, err := time.ParseDuration(strValue); err == nil {
		return value
	}
	return fallback
}
