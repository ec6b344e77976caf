package service

import (
	"context"
	"fmt"
	"time"

	"github.com/lshigami/testforge/config"
)

// LLMClient abstracts the outbound text-generation service. Implementations
// return the raw response text, which nominally contains JSON; all parsing and
// recovery happens in the generation service.
type LLMClient interface {
	GenerateJSON(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

// llmCallTimeout is the per-invocation deadline applied by every provider.
func llmCallTimeout(cfg *config.Config) time.Duration {
	timeout := time.Duration(cfg.LLM.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return timeout
}

// NewLLMClient selects the provider from config.
func NewLLMClient(cfg *config.Config) (LLMClient, error) {
	switch cfg.LLM.Provider {
	case "gemini":
		return NewGeminiLLMClient(cfg)
	case "openai", "":
		return NewOpenAILLMClient(cfg), nil
	default:
		return nil, fmt.Errorf("unknown LLM provider %q", cfg.LLM.Provider)
	}
}
