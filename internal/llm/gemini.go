package llm

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"google.golang.org/genai"
)

// GeminiClient drives Google Gemini models through the Gemini API backend.
type GeminiClient struct {
	client *genai.Client
	model  string
	logger *zap.Logger
}

func NewGeminiClient(ctx context.Context, apiKey, model string, logger *zap.Logger) (*GeminiClient, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	return &GeminiClient{
		client: client,
		model:  model,
		logger: logger.Named("gemini"),
	}, nil
}

func (c *GeminiClient) Model() string { return c.model }

func (c *GeminiClient) GetDecision(ctx context.Context, goal, screenContext string, history []Action) (Action, error) {
	resp, err := c.client.Models.GenerateContent(ctx, c.model,
		genai.Text(userContent(goal, screenContext, history)),
		&genai.GenerateContentConfig{
			SystemInstruction: genai.NewContentFromText(systemPrompt, genai.RoleUser),
			ResponseMIMEType:  "application/json",
			Temperature:       genai.Ptr[float32](0.1),
		})
	if err != nil {
		return Action{}, fmt.Errorf("generate content: %w", err)
	}

	return ParseDecision(resp.Text(), c.logger), nil
}
