package llm

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/nbenliogludev/go-android-ai-agent/internal/config"
)

const groqBaseURL = "https://api.groq.com/openai/v1"

// NewClient selects and constructs the decision backend. Selection is a pure
// function of the configured provider and its credentials.
func NewClient(ctx context.Context, cfg config.LLMConfig, logger *zap.Logger) (Client, error) {
	switch cfg.Provider {
	case "groq":
		return NewOpenAIClient(cfg.Groq.APIKey, cfg.Groq.Model, groqBaseURL, logger), nil
	case "openai":
		return NewOpenAIClient(cfg.OpenAI.APIKey, cfg.OpenAI.Model, "", logger), nil
	case "bedrock":
		return NewBedrockClient(ctx, cfg.Bedrock.Region, cfg.Bedrock.Model, logger)
	case "gemini":
		return NewGeminiClient(ctx, cfg.Gemini.APIKey, cfg.Gemini.Model, logger)
	default:
		return nil, fmt.Errorf("unknown llm provider %q", cfg.Provider)
	}
}
