package llm

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/nbenliogludev/go-android-ai-agent/internal/config"
)

func testLLMConfig(provider string) config.LLMConfig {
	return config.LLMConfig{
		Provider: provider,
		Groq:     config.ProviderConfig{APIKey: "gsk_test", Model: "llama-3.3-70b-versatile"},
		OpenAI:   config.ProviderConfig{APIKey: "sk-test", Model: "gpt-4o"},
		Bedrock:  config.BedrockConfig{Model: "us.meta.llama3-3-70b-instruct-v1:0", Region: "us-east-1"},
		Gemini:   config.ProviderConfig{APIKey: "AIza-test", Model: "gemini-2.0-flash"},
	}
}

type fakeInvoker struct {
	response []byte
	lastIn   *bedrockruntime.InvokeModelInput
}

func (f *fakeInvoker) InvokeModel(ctx context.Context, params *bedrockruntime.InvokeModelInput, optFns ...func(*bedrockruntime.Options)) (*bedrockruntime.InvokeModelOutput, error) {
	f.lastIn = params
	return &bedrockruntime.InvokeModelOutput{Body: f.response}, nil
}

func newTestBedrockClient(model string, response []byte) (*BedrockClient, *fakeInvoker) {
	invoker := &fakeInvoker{response: response}
	return &BedrockClient{client: invoker, model: model, logger: zap.NewNop()}, invoker
}

func TestBedrockAnthropicRequestAndResponse(t *testing.T) {
	response := []byte(`{"content":[{"type":"text","text":"{\"action\":\"back\",\"reason\":\"leave menu\"}"}]}`)
	c, invoker := newTestBedrockClient("anthropic.claude-3-5-sonnet-20240620-v1:0", response)

	action, err := c.GetDecision(context.Background(), "goal", "[]", nil)
	require.NoError(t, err)
	assert.Equal(t, ActionBack, action.Action)

	var body map[string]any
	require.NoError(t, json.Unmarshal(invoker.lastIn.Body, &body))
	assert.Equal(t, "bedrock-2023-05-31", body["anthropic_version"])
	assert.Contains(t, body["system"], "Android Driver Agent")
	require.Contains(t, body, "messages")
	assert.Equal(t, "application/json", *invoker.lastIn.ContentType)
	assert.Equal(t, c.model, *invoker.lastIn.ModelId)
}

func TestBedrockLlamaRequestAndResponse(t *testing.T) {
	response := []byte(`{"generation":"{\"action\":\"home\"}"}`)
	c, invoker := newTestBedrockClient("us.meta.llama3-3-70b-instruct-v1:0", response)

	action, err := c.GetDecision(context.Background(), "goal", "[]", nil)
	require.NoError(t, err)
	assert.Equal(t, ActionHome, action.Action)

	var body map[string]any
	require.NoError(t, json.Unmarshal(invoker.lastIn.Body, &body))
	prompt := body["prompt"].(string)
	assert.Contains(t, prompt, "<|begin_of_text|>")
	assert.Contains(t, prompt, "GOAL: goal")
	assert.Equal(t, float64(512), body["max_gen_len"])
}

func TestBedrockTitanFallbackTemplate(t *testing.T) {
	response := []byte(`{"results":[{"outputText":"{\"action\":\"wait\",\"reason\":\"loading\"}"}]}`)
	c, invoker := newTestBedrockClient("amazon.titan-text-express-v1", response)

	action, err := c.GetDecision(context.Background(), "goal", "[]", nil)
	require.NoError(t, err)
	assert.Equal(t, ActionWait, action.Action)
	assert.Equal(t, "loading", action.Reason)

	var body map[string]any
	require.NoError(t, json.Unmarshal(invoker.lastIn.Body, &body))
	assert.Contains(t, body["inputText"], "Respond with ONLY a valid JSON object")
	require.Contains(t, body, "textGenerationConfig")
}

func TestBedrockFamilyDetection(t *testing.T) {
	c := &BedrockClient{model: "anthropic.claude-3-haiku"}
	assert.True(t, c.isAnthropicModel())
	assert.False(t, c.isMetaModel())

	// Family match on "llama" is case-insensitive.
	c = &BedrockClient{model: "us.meta.LLAMA3-3-70b"}
	assert.True(t, c.isMetaModel())

	c = &BedrockClient{model: "amazon.titan-text-express-v1"}
	assert.False(t, c.isAnthropicModel())
	assert.False(t, c.isMetaModel())
}

func TestBedrockUnparsableGenerationDegradesToWait(t *testing.T) {
	response := []byte(`{"generation":"I'll tap the button for you."}`)
	c, _ := newTestBedrockClient("meta.llama3-8b-instruct-v1:0", response)

	action, err := c.GetDecision(context.Background(), "goal", "[]", nil)
	require.NoError(t, err)
	assert.Equal(t, Action{Action: ActionWait, Reason: "Failed to parse response, waiting"}, action)
}
