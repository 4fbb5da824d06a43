package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

// AnthropicClient implements Completer using the Anthropic Messages API.
type AnthropicClient struct {
	client    anthropic.Client
	model     string
	maxTokens int
}

// NewAnthropicClient creates an Anthropic completion client.
// Extra request options are appended after the API key.
func NewAnthropicClient(apiKey, model string, maxTokens int, opts ...option.RequestOption) (*AnthropicClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("anthropic API key is required")
	}
	if maxTokens <= 0 {
		return nil, fmt.Errorf("max tokens must be greater than 0")
	}

	opts = append([]option.RequestOption{option.WithAPIKey(apiKey)}, opts...)
	return &AnthropicClient{
		client:    anthropic.NewClient(opts...),
		model:     model,
		maxTokens: maxTokens,
	}, nil
}

// ChatWithMessages implements Completer.
func (a *AnthropicClient) ChatWithMessages(ctx context.Context, messages []Message, params ChatParams) (string, error) {
	req, err := a.buildParams(messages, params)
	if err != nil {
		return "", err
	}

	resp, err := a.client.Messages.New(ctx, req)
	if err != nil {
		return "", fmt.Errorf("anthropic request failed: %w", err)
	}

	var sb strings.Builder
	for _, block := range resp.Content {
		if block.Type == "text" {
			sb.WriteString(block.Text)
		}
	}
	if sb.Len() == 0 {
		return "", fmt.Errorf("no text content returned")
	}
	return sb.String(), nil
}

func (a *AnthropicClient) buildParams(messages []Message, params ChatParams) (anthropic.MessageNewParams, error) {
	model := params.Model
	if model == "" {
		model = a.model
	}
	maxTokens := params.MaxTokens
	if maxTokens <= 0 {
		maxTokens = a.maxTokens
	}

	req := anthropic.MessageNewParams{
		Model:     anthropic.Model(model),
		MaxTokens: int64(maxTokens),
	}
	if params.Temperature != nil {
		req.Temperature = anthropic.Float(float64(*params.Temperature))
	}

	for _, m := range messages {
		switch m.Role {
		case RoleSystem:
			req.System = append(req.System, anthropic.TextBlockParam{Text: m.Content})
		case RoleUser:
			req.Messages = append(req.Messages, anthropic.NewUserMessage(anthropic.NewTextBlock(m.Content)))
		case RoleAssistant:
			req.Messages = append(req.Messages, anthropic.NewAssistantMessage(anthropic.NewTextBlock(m.Content)))
		default:
			return anthropic.MessageNewParams{}, fmt.Errorf("unsupported message role %q", m.Role)
		}
	}

	if len(req.Messages) == 0 {
		return anthropic.MessageNewParams{}, fmt.Errorf("no messages to send")
	}
	return req, nil
}
