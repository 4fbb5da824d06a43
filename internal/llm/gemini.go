package llm

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

// GeminiClient serves both embeddings and completions through the Gemini API.
type GeminiClient struct {
	client       *genai.Client
	embedModel   string
	chatModel    string
	expectedSize int
}

// GeminiOptions configures a GeminiClient.
type GeminiOptions struct {
	APIKey       string
	EmbedModel   string
	ChatModel    string
	ExpectedSize int

	// BaseURL overrides the API endpoint. Empty uses the Gemini default.
	BaseURL string
}

// NewGeminiClient creates a Gemini client.
func NewGeminiClient(ctx context.Context, opts GeminiOptions) (*GeminiClient, error) {
	if opts.APIKey == "" {
		return nil, fmt.Errorf("google API key is required")
	}

	cfg := &genai.ClientConfig{
		APIKey:  opts.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if opts.BaseURL != "" {
		cfg.HTTPOptions = genai.HTTPOptions{BaseURL: opts.BaseURL}
	}

	client, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize genai client: %w", err)
	}

	return &GeminiClient{
		client:       client,
		embedModel:   opts.EmbedModel,
		chatModel:    opts.ChatModel,
		expectedSize: opts.ExpectedSize,
	}, nil
}

// geminiMaxBatch is the most requests a batchEmbedContents call accepts.
const geminiMaxBatch = 100

// EmbedDocuments implements Embedder, sending at most geminiMaxBatch texts per request.
func (g *GeminiClient) EmbedDocuments(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, fmt.Errorf("empty input array")
	}

	vectors := make([][]float32, 0, len(texts))
	for start := 0; start < len(texts); start += geminiMaxBatch {
		end := min(start+geminiMaxBatch, len(texts))
		batch, err := g.embedBatch(ctx, texts[start:end])
		if err != nil {
			return nil, fmt.Errorf("batch starting at %d: %w", start, err)
		}
		vectors = append(vectors, batch...)
	}
	return vectors, nil
}

func (g *GeminiClient) embedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	contents := make([]*genai.Content, len(texts))
	for i, text := range texts {
		contents[i] = genai.NewContentFromText(text, genai.RoleUser)
	}

	outputDim := int32(g.expectedSize)
	result, err := g.client.Models.EmbedContent(ctx, g.embedModel, contents, &genai.EmbedContentConfig{
		OutputDimensionality: &outputDim,
	})
	if err != nil {
		return nil, fmt.Errorf("embedding generation failed: %w", err)
	}
	if result == nil || len(result.Embeddings) != len(texts) {
		got := 0
		if result != nil {
			got = len(result.Embeddings)
		}
		return nil, fmt.Errorf("expected %d embeddings, got %d", len(texts), got)
	}

	vectors := make([][]float32, len(result.Embeddings))
	for i, emb := range result.Embeddings {
		if emb == nil || len(emb.Values) != g.expectedSize {
			size := 0
			if emb != nil {
				size = len(emb.Values)
			}
			return nil, fmt.Errorf("embedding %d has size %d, expected %d", i, size, g.expectedSize)
		}
		vectors[i] = emb.Values
	}
	return vectors, nil
}

// EmbedQuery implements Embedder.
func (g *GeminiClient) EmbedQuery(ctx context.Context, text string) ([]float32, error) {
	vectors, err := g.EmbedDocuments(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	return vectors[0], nil
}

// ChatWithMessages implements Completer.
func (g *GeminiClient) ChatWithMessages(ctx context.Context, messages []Message, params ChatParams) (string, error) {
	contents, system, err := toGeminiContents(messages)
	if err != nil {
		return "", err
	}

	model := params.Model
	if model == "" {
		model = g.chatModel
	}

	cfg := &genai.GenerateContentConfig{}
	if params.Temperature != nil {
		cfg.Temperature = genai.Ptr(*params.Temperature)
	}
	if params.MaxTokens > 0 {
		cfg.MaxOutputTokens = int32(params.MaxTokens)
	}
	if system != "" {
		cfg.SystemInstruction = genai.NewContentFromText(system, genai.RoleUser)
	}

	resp, err := g.client.Models.GenerateContent(ctx, model, contents, cfg)
	if err != nil {
		return "", fmt.Errorf("content generation failed: %w", err)
	}

	text := resp.Text()
	if text == "" {
		return "", fmt.Errorf("no content returned")
	}
	return text, nil
}

// toGeminiContents splits system messages out into a single instruction
// and maps the rest onto Gemini roles.
func toGeminiContents(messages []Message) ([]*genai.Content, string, error) {
	var system []string
	contents := make([]*genai.Content, 0, len(messages))

	for _, m := range messages {
		switch m.Role {
		case RoleSystem:
			system = append(system, m.Content)
		case RoleUser:
			contents = append(contents, genai.NewContentFromText(m.Content, genai.RoleUser))
		case RoleAssistant:
			contents = append(contents, genai.NewContentFromText(m.Content, genai.RoleModel))
		default:
			return nil, "", fmt.Errorf("unsupported message role %q", m.Role)
		}
	}

	if len(contents) == 0 {
		return nil, "", fmt.Errorf("no messages to send")
	}
	return contents, strings.Join(system, "\n\n"), nil
}
