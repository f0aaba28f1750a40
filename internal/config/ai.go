package config

import (
	"os"
	"sync"
)

// AIConfig selects which text-generation provider the pipeline runs against.
// "openai" talks to any OpenAI-compatible endpoint, "gemini" uses the Google
// GenAI SDK and "canned" is the deterministic stand-in for local development.
type AIConfig struct {
	Provider string
}

var (
	aiConfig *AIConfig
	aiOnce   sync.Once
)

func LoadAIConfig() *AIConfig {
	aiOnce.Do(func() {
		provider := os.Getenv("AI_PROVIDER")
		if provider == "" {
			provider = "openai"
		}
		aiConfig = &AIConfig{
			Provider: provider,
		}
	})
	return aiConfig
}
