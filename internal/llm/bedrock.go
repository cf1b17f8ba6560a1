package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	"go.uber.org/zap"
)

// bedrockInvoker is the slice of the Bedrock runtime API this client uses,
// extracted so tests can substitute a fake.
type bedrockInvoker interface {
	InvokeModel(ctx context.Context, params *bedrockruntime.InvokeModelInput, optFns ...func(*bedrockruntime.Options)) (*bedrockruntime.InvokeModelOutput, error)
}

// BedrockClient drives models hosted on AWS Bedrock. Request and response
// bodies differ per model family, selected by substring match on the
// configured model identifier.
type BedrockClient struct {
	client bedrockInvoker
	model  string
	logger *zap.Logger
}

func NewBedrockClient(ctx context.Context, region, model string, logger *zap.Logger) (*BedrockClient, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	return &BedrockClient{
		client: bedrockruntime.NewFromConfig(awsCfg),
		model:  model,
		logger: logger.Named("bedrock"),
	}, nil
}

func (c *BedrockClient) Model() string { return c.model }

func (c *BedrockClient) GetDecision(ctx context.Context, goal, screenContext string, history []Action) (Action, error) {
	body, err := c.buildRequest(userContent(goal, screenContext, history))
	if err != nil {
		return Action{}, fmt.Errorf("build bedrock request: %w", err)
	}

	out, err := c.client.InvokeModel(ctx, &bedrockruntime.InvokeModelInput{
		ModelId:     aws.String(c.model),
		Body:        body,
		ContentType: aws.String("application/json"),
		Accept:      aws.String("application/json"),
	})
	if err != nil {
		return Action{}, fmt.Errorf("invoke model: %w", err)
	}

	text, err := c.extractText(out.Body)
	if err != nil {
		return Action{}, err
	}
	return ParseDecision(text, c.logger), nil
}

func (c *BedrockClient) isAnthropicModel() bool {
	return strings.Contains(c.model, "anthropic")
}

func (c *BedrockClient) isMetaModel() bool {
	m := strings.ToLower(c.model)
	return strings.Contains(m, "meta") || strings.Contains(m, "llama")
}

// buildRequest shapes the invocation body for the configured model family:
// Anthropic messages, the Llama prompt template, or Titan text generation.
func (c *BedrockClient) buildRequest(content string) ([]byte, error) {
	switch {
	case c.isAnthropicModel():
		return json.Marshal(map[string]any{
			"anthropic_version": "bedrock-2023-05-31",
			"max_tokens":        1024,
			"system":            systemPrompt,
			"messages": []map[string]string{
				{"role": "user", "content": content + "\n\nRespond with ONLY a valid JSON object."},
			},
		})
	case c.isMetaModel():
		prompt := fmt.Sprintf(
			"<|begin_of_text|><|start_header_id|>system<|end_header_id|>\n\n%s<|eot_id|>"+
				"<|start_header_id|>user<|end_header_id|>\n\n%s\n\nRespond with ONLY a valid JSON object, no other text.<|eot_id|>"+
				"<|start_header_id|>assistant<|end_header_id|>\n\n",
			systemPrompt, content,
		)
		return json.Marshal(map[string]any{
			"prompt":      prompt,
			"max_gen_len": 512,
			"temperature": 0.1,
		})
	default:
		return json.Marshal(map[string]any{
			"inputText": fmt.Sprintf("%s\n\n%s\n\nRespond with ONLY a valid JSON object.", systemPrompt, content),
			"textGenerationConfig": map[string]any{
				"maxTokenCount": 512,
				"temperature":   0.1,
			},
		})
	}
}

// extractText pulls the completion text out of the family-specific response.
func (c *BedrockClient) extractText(body []byte) (string, error) {
	switch {
	case c.isAnthropicModel():
		var resp struct {
			Content []struct {
				Text string `json:"text"`
			} `json:"content"`
		}
		if err := json.Unmarshal(body, &resp); err != nil {
			return "", fmt.Errorf("decode anthropic response: %w", err)
		}
		if len(resp.Content) == 0 {
			return "", fmt.Errorf("anthropic response has no content blocks")
		}
		return resp.Content[0].Text, nil
	case c.isMetaModel():
		var resp struct {
			Generation string `json:"generation"`
		}
		if err := json.Unmarshal(body, &resp); err != nil {
			return "", fmt.Errorf("decode llama response: %w", err)
		}
		return resp.Generation, nil
	default:
		var resp struct {
			Results []struct {
				OutputText string `json:"outputText"`
			} `json:"results"`
		}
		if err := json.Unmarshal(body, &resp); err != nil {
			return "", fmt.Errorf("decode titan response: %w", err)
		}
		if len(resp.Results) == 0 {
			return "", fmt.Errorf("titan response has no results")
		}
		return resp.Results[0].OutputText, nil
	}
}
