package config

import (
	"fmt"
	"os"
	"strconv"
)

// productionOrigins is the CORS allowlist used when ENVIRONMENT=production.
// Any other environment allows every origin.
var productionOrigins = []string{
	"http://localhost",
	"http://localhost:8000",
	"http://localhost:8080",
	"http://127.0.0.1:8000",
	"http://127.0.0.1:8080",
}

// Config holds server configuration read from environment variables.
type Config struct {
	Addr                  string
	DBPath                string
	Environment           string
	OpenAIAPIKey          string
	OpenAIBaseURL         string
	ChatModel             string
	TranscribeModel       string
	RequestTimeoutSeconds int
	HistoryWindow         int
	FrontendDir           string
	AllowedOrigins        []string
}

// Load reads server configuration from environment variables.
func Load() (Config, error) {
	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		return Config{}, fmt.Errorf("OPENAI_API_KEY is required in environment")
	}

	historyWindow := envIntOrDefault("VOXCHAT_HISTORY_WINDOW", 10)
	if historyWindow <= 0 {
		return Config{}, fmt.Errorf("VOXCHAT_HISTORY_WINDOW must be positive")
	}
	timeoutSeconds := envIntOrDefault("OPENAI_TIMEOUT_SECONDS", 60)
	if timeoutSeconds <= 0 {
		return Config{}, fmt.Errorf("OPENAI_TIMEOUT_SECONDS must be positive")
	}

	environment := envOrDefault("ENVIRONMENT", "development")
	origins := []string{"*"}
	if environment == "production" {
		origins = productionOrigins
	}

	return Config{
		Addr:                  envOrDefault("VOXCHAT_ADDR", ":8000"),
		DBPath:                envOrDefault("VOXCHAT_DB_PATH", "./transcription_app.db"),
		Environment:           environment,
		OpenAIAPIKey:          apiKey,
		OpenAIBaseURL:         os.Getenv("OPENAI_BASE_URL"),
		ChatModel:             envOrDefault("OPENAI_CHAT_MODEL", "gpt-4o"),
		TranscribeModel:       envOrDefault("OPENAI_TRANSCRIBE_MODEL", "gpt-4o-transcribe"),
		RequestTimeoutSeconds: timeoutSeconds,
		HistoryWindow:         historyWindow,
		FrontendDir:           envOrDefault("VOXCHAT_FRONTEND_DIR", "frontend"),
		AllowedOrigins:        origins,
	}, nil
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envIntOrDefault(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
