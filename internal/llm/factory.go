package llm

import (
	"context"
	"fmt"

	"ragdemo/internal/config"
)

// Providers bundles the embedder and completer selected by configuration.
type Providers struct {
	Embedder  Embedder
	Completer Completer
}

// NewProviders builds the embedder and completer named by cfg.
// A single Gemini client is shared when both providers are Gemini.
func NewProviders(ctx context.Context, cfg *config.Config) (*Providers, error) {
	var gemini *GeminiClient
	geminiClient := func() (*GeminiClient, error) {
		if gemini != nil {
			return gemini, nil
		}
		var err error
		gemini, err = NewGeminiClient(ctx, GeminiOptions{
			APIKey:       cfg.GoogleAPIKey,
			EmbedModel:   cfg.GeminiEmbedModel,
			ChatModel:    cfg.GeminiChatModel,
			ExpectedSize: cfg.VectorDimension,
		})
		return gemini, err
	}

	p := &Providers{}

	switch cfg.EmbeddingProvider {
	case config.ProviderOpenAI:
		p.Embedder = NewEmbeddingsClient(cfg.EmbeddingBaseURL, cfg.LLMAPIKey, cfg.EmbeddingModelName, cfg.VectorDimension)
	case config.ProviderGemini:
		g, err := geminiClient()
		if err != nil {
			return nil, fmt.Errorf("failed to create gemini embedder: %w", err)
		}
		p.Embedder = g
	default:
		return nil, fmt.Errorf("unsupported embedding provider %q", cfg.EmbeddingProvider)
	}

	switch cfg.CompletionProvider {
	case config.ProviderOpenAI:
		p.Completer = NewClient(cfg.LLMBaseURL, cfg.LLMAPIKey, cfg.LLMModelName)
	case config.ProviderGemini:
		g, err := geminiClient()
		if err != nil {
			return nil, fmt.Errorf("failed to create gemini completer: %w", err)
		}
		p.Completer = g
	case config.ProviderAnthropic:
		a, err := NewAnthropicClient(cfg.AnthropicAPIKey, cfg.AnthropicModel, cfg.AnthropicMaxTokens)
		if err != nil {
			return nil, fmt.Errorf("failed to create anthropic completer: %w", err)
		}
		p.Completer = a
	default:
		return nil, fmt.Errorf("unsupported completion provider %q", cfg.CompletionProvider)
	}

	return p, nil
}
