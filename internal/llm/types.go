package llm

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_llm.go -package=mocks ragdemo/internal/llm Embedder,Completer

import "context"

// Message roles understood by every completion provider.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message represents a single message in a chat conversation.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatParams holds parameters for chat completion requests.
type ChatParams struct {
	// Model specifies the model to use. If empty, the client's default model is used.
	Model string

	// MaxTokens specifies the maximum number of tokens to generate.
	// If 0, the provider default is used.
	MaxTokens int

	// Temperature controls the randomness of the output.
	// If nil, the provider default is used; an explicit 0 is sent as 0.
	Temperature *float32
}

// Embedder turns text into vectors of a fixed dimension.
type Embedder interface {
	// EmbedDocuments embeds texts and returns one vector per text, in order.
	// Providers with a request size limit split the call internally.
	EmbedDocuments(ctx context.Context, texts []string) ([][]float32, error)

	// EmbedQuery embeds a single query string.
	EmbedQuery(ctx context.Context, text string) ([]float32, error)
}

// Completer produces a single completion for a conversation.
type Completer interface {
	ChatWithMessages(ctx context.Context, messages []Message, params ChatParams) (string, error)
}
