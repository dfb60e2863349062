package config

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
)

// Load reads .env from the working directory if one exists. Variables already
// exported in the environment take precedence, and a missing file is fine.
func Load() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("Warning: could not load .env file: %v", err)
	}
}

// GeminiAPIKey returns the hosted-model key, or an error when it is unset.
func GeminiAPIKey() (string, error) {
	key := os.Getenv("GEMINI_API_KEY")
	if key == "" {
		return "", fmt.Errorf("GEMINI_API_KEY environment variable is not set")
	}
	return key, nil
}

// QwenBaseURL points at the local OpenAI-compatible serving endpoint.
func QwenBaseURL() string {
	if url := os.Getenv("QWEN_BASE_URL"); url != "" {
		return url
	}
	return "http://localhost:8000"
}

// QwenAPIKey returns the token expected by the local server. Serving stacks
// that skip auth still want a placeholder.
func QwenAPIKey() string {
	if key := os.Getenv("QWEN_API_KEY"); key != "" {
		return key
	}
	return "EMPTY"
}

// QwenModel returns the served model name override, empty for the default.
func QwenModel() string {
	return os.Getenv("QWEN_MODEL")
}
