package config

import (
	"fmt"
	"log"
	"os"
	"sync"

	"github.com/joho/godotenv"
)

var (
	appOnce   sync.Once
	appConfig *AppConfig
	appErr    error
)

// AppConfig holds the service configuration loaded from the environment.
type AppConfig struct {
	Port        string
	LogLevel    string
	UploadDir   string
	StorageType string

	// GeminiAPIKey authenticates classification, summarization, explanation
	// refinement, embeddings and RAG chat calls.
	GeminiAPIKey string
	// GroqAPIKey authenticates the explanation draft stage.
	GroqAPIKey string
}

// GetConfig loads the application configuration once. Both API keys are
// required; a missing key is a startup error, never a silent no-op.
func GetConfig() (*AppConfig, error) {
	appOnce.Do(func() {
		if err := godotenv.Load(); err != nil {
			log.Printf("Warning: .env file not found, falling back to environment variables")
		}

		cfg := &AppConfig{
			Port:         getEnv("PORT", "8080"),
			LogLevel:     getEnv("LOG_LEVEL", "info"),
			UploadDir:    getEnv("UPLOAD_DIR", "uploads"),
			StorageType:  getEnv("STORAGE_TYPE", "local"),
			GeminiAPIKey: os.Getenv("GEMINI_API_KEY"),
			GroqAPIKey:   os.Getenv("GROQ_API_KEY"),
		}

		if cfg.GeminiAPIKey == "" {
			appErr = fmt.Errorf("GEMINI_API_KEY is not set")
			return
		}
		if cfg.GroqAPIKey == "" {
			appErr = fmt.Errorf("GROQ_API_KEY is not set")
			return
		}

		appConfig = cfg
	})
	return appConfig, appErr
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
