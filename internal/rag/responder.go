// Package rag answers questions from the passages stored in the vector index.
package rag

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"ragdemo/internal/contextutil"
	"ragdemo/internal/indexer"
	"ragdemo/internal/llm"
	"ragdemo/internal/vectorstore"
)

// DefaultTopK is the number of passages retrieved per question.
const DefaultTopK = 10

// Options tune the responder.
type Options struct {
	Index           string
	TopK            int      // Non-positive uses DefaultTopK
	MaxContextChars int      // 0 means unbounded
	Temperature     *float32 // Nil leaves the provider default
}

// Responder retrieves passages for a question and asks the completer to answer from them.
type Responder struct {
	embedder    llm.Embedder
	vectorStore vectorstore.VectorStore
	completer   llm.Completer
	opts        Options
}

// NewResponder creates a new query responder.
func NewResponder(embedder llm.Embedder, vectorStore vectorstore.VectorStore, completer llm.Completer, opts Options) *Responder {
	if opts.TopK <= 0 {
		opts.TopK = DefaultTopK
	}
	if opts.MaxContextChars < 0 {
		opts.MaxContextChars = 0
	}
	return &Responder{
		embedder:    embedder,
		vectorStore: vectorStore,
		completer:   completer,
		opts:        opts,
	}
}

// Answer embeds the question, retrieves the top matches, and makes one
// completion call over their concatenated page content. With no matches
// it returns an Answer with Found=false and does not call the completer.
func (r *Responder) Answer(ctx context.Context, question string) (Answer, error) {
	logger := contextutil.LoggerFromContext(ctx)

	logger.InfoContext(ctx, "answering question", "question_length", len(question), "top_k", r.opts.TopK)

	vector, err := r.embedder.EmbedQuery(ctx, question)
	if err != nil {
		return Answer{}, fmt.Errorf("failed to embed question: %w", err)
	}

	matches, err := r.vectorStore.Query(ctx, r.opts.Index, vectorstore.QueryRequest{
		Vector:          vector,
		TopK:            r.opts.TopK,
		IncludeMetadata: true,
	})
	if err != nil {
		return Answer{}, fmt.Errorf("failed to query index: %w", err)
	}

	logger.InfoContext(ctx, "query matches", "count", len(matches))
	for i, m := range matches {
		logger.DebugContext(ctx, "match", "rank", i, "id", m.ID, "score", m.Score, "metadata", m.Metadata)
	}

	if len(matches) == 0 {
		logger.InfoContext(ctx, "no matches, skipping completion")
		return Answer{Found: false}, nil
	}

	contextText, sources := joinPageContent(matches)
	contextLen := utf8.RuneCountInString(contextText)
	logger.InfoContext(ctx, "context assembled", "runes", contextLen, "passages", len(sources))

	if r.opts.MaxContextChars > 0 && contextLen > r.opts.MaxContextChars {
		contextText = truncateRunes(contextText, r.opts.MaxContextChars)
		logger.WarnContext(ctx, "context truncated", "runes", contextLen, "limit", r.opts.MaxContextChars)
	}

	text, err := r.completer.ChatWithMessages(ctx, []llm.Message{
		{Role: llm.RoleUser, Content: BuildPrompt(contextText, question)},
	}, llm.ChatParams{Temperature: r.opts.Temperature})
	if err != nil {
		return Answer{}, fmt.Errorf("failed to generate answer: %w", err)
	}

	logger.InfoContext(ctx, "answer generated", "answer_length", len(text))
	return Answer{
		Text:    strings.TrimSpace(text),
		Found:   true,
		Sources: sources,
	}, nil
}

// joinPageContent concatenates the page content of matches in order, separated by single spaces.
// Matches without page content contribute an empty string.
func joinPageContent(matches []vectorstore.Match) (string, []Source) {
	parts := make([]string, len(matches))
	sources := make([]Source, len(matches))
	for i, m := range matches {
		content, _ := m.Metadata[indexer.MetaPageContent].(string)
		path, _ := m.Metadata[indexer.MetaSource].(string)
		parts[i] = content
		sources[i] = Source{
			ID:     m.ID,
			Path:   path,
			Score:  m.Score,
			Length: utf8.RuneCountInString(content),
		}
	}
	return strings.Join(parts, " "), sources
}

func truncateRunes(s string, n int) string {
	i := 0
	for pos := range s {
		if i == n {
			return s[:pos]
		}
		i++
	}
	return s
}
