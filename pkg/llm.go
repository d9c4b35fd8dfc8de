package pkg

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

type LLMConfig struct {
	Endpoint   string
	APIKey     string
	Deployment string
	APIVersion string
	Timeout    time.Duration
}

// LLMClient wraps an Azure OpenAI chat deployment. All calls run at
// temperature 0 and are bounded by the configured call timeout.
type LLMClient struct {
	llm     *openai.LLM
	timeout time.Duration
}

func NewLLMClient(cfg LLMConfig) (*LLMClient, error) {
	llm, err := openai.New(
		openai.WithAPIType(openai.APITypeAzure),
		openai.WithBaseURL(cfg.Endpoint),
		openai.WithToken(cfg.APIKey),
		openai.WithModel(cfg.Deployment),
		openai.WithAPIVersion(cfg.APIVersion),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to build openai client: %w", err)
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 120 * time.Second
	}

	return &LLMClient{llm: llm, timeout: timeout}, nil
}

// Complete runs one system+user exchange and returns the raw reply text.
func (slf *LLMClient) Complete(ctx context.Context, system, user string) (string, error) {
	return slf.generate(ctx, system, user)
}

// CompleteJSON is Complete with the model forced into JSON-object output.
func (slf *LLMClient) CompleteJSON(ctx context.Context, system, user string) (string, error) {
	return slf.generate(ctx, system, user, llms.WithJSONMode())
}

func (slf *LLMClient) generate(ctx context.Context, system, user string, extra ...llms.CallOption) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, slf.timeout)
	defer cancel()

	messages := []llms.MessageContent{
		llms.TextParts(llms.ChatMessageTypeSystem, system),
		llms.TextParts(llms.ChatMessageTypeHuman, user),
	}

	opts := append([]llms.CallOption{llms.WithTemperature(0)}, extra...)
	resp, err := slf.llm.GenerateContent(ctx, messages, opts...)
	if err != nil {
		return "", fmt.Errorf("chat completion failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("no completion choices returned")
	}
	return resp.Choices[0].Content, nil
}
