package indexer

import (
	"strings"
	"unicode/utf8"
)

// Defaults used for the document corpus.
const (
	DefaultChunkSize    = 1000
	DefaultChunkOverlap = 0
)

// defaultSeparators are tried in order: paragraphs, lines, words, characters.
var defaultSeparators = []string{"\n\n", "\n", " ", ""}

// RecursiveSplitter splits text on the coarsest separator that yields pieces
// no longer than ChunkSize runes, then merges neighbouring pieces back up to
// ChunkSize. Chunks are trimmed and empty chunks are dropped.
type RecursiveSplitter struct {
	chunkSize    int
	chunkOverlap int
	separators   []string
}

// NewRecursiveSplitter creates a splitter with the default separators.
// Non-positive chunkSize falls back to DefaultChunkSize; overlap is clamped to [0, chunkSize).
func NewRecursiveSplitter(chunkSize, chunkOverlap int) *RecursiveSplitter {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	if chunkOverlap < 0 {
		chunkOverlap = 0
	}
	if chunkOverlap >= chunkSize {
		chunkOverlap = chunkSize - 1
	}
	return &RecursiveSplitter{
		chunkSize:    chunkSize,
		chunkOverlap: chunkOverlap,
		separators:   defaultSeparators,
	}
}

// ChunkSize returns the maximum chunk length in runes.
func (s *RecursiveSplitter) ChunkSize() int {
	return s.chunkSize
}

// Split splits text into chunks annotated with their line span.
func (s *RecursiveSplitter) Split(text string) []Chunk {
	texts := s.SplitText(text)
	chunks := make([]Chunk, 0, len(texts))

	searchFrom := 0
	lastLine := 1
	for i, t := range texts {
		loc := Location{Lines: LineRange{From: lastLine, To: lastLine}}
		if idx := strings.Index(text[searchFrom:], t); idx >= 0 {
			start := searchFrom + idx
			from := 1 + strings.Count(text[:start], "\n")
			loc.Lines = LineRange{From: from, To: from + strings.Count(t, "\n")}
			if s.chunkOverlap > 0 {
				searchFrom = start + 1
			} else {
				searchFrom = start + len(t)
			}
		}
		lastLine = loc.Lines.To

		chunks = append(chunks, Chunk{Index: i, Text: t, Loc: loc})
	}
	return chunks
}

// SplitText splits text into chunk strings.
func (s *RecursiveSplitter) SplitText(text string) []string {
	return s.split(text, s.separators)
}

func (s *RecursiveSplitter) split(text string, separators []string) []string {
	separator := ""
	var remaining []string
	for i, sep := range separators {
		if sep == "" {
			break
		}
		if strings.Contains(text, sep) {
			separator = sep
			remaining = separators[i+1:]
			break
		}
	}

	var final, pending []string
	for _, piece := range splitOn(text, separator) {
		if utf8.RuneCountInString(piece) < s.chunkSize {
			pending = append(pending, piece)
			continue
		}

		if len(pending) > 0 {
			final = append(final, s.merge(pending, separator)...)
			pending = nil
		}
		if len(remaining) == 0 {
			final = append(final, strings.TrimSpace(piece))
		} else {
			final = append(final, s.split(piece, remaining)...)
		}
	}
	if len(pending) > 0 {
		final = append(final, s.merge(pending, separator)...)
	}
	return final
}

// merge greedily packs pieces joined by separator into chunks of at most chunkSize runes.
func (s *RecursiveSplitter) merge(pieces []string, separator string) []string {
	sepLen := utf8.RuneCountInString(separator)
	joinCost := func(n int) int {
		if n > 0 {
			return sepLen
		}
		return 0
	}

	var chunks, current []string
	total := 0
	for _, piece := range pieces {
		pieceLen := utf8.RuneCountInString(piece)

		if total+pieceLen+joinCost(len(current)) > s.chunkSize && len(current) > 0 {
			if chunk := strings.TrimSpace(strings.Join(current, separator)); chunk != "" {
				chunks = append(chunks, chunk)
			}
			// Keep a tail of at most chunkOverlap runes as the start of the next chunk.
			for total > s.chunkOverlap || (total+pieceLen+joinCost(len(current)) > s.chunkSize && total > 0) {
				total -= utf8.RuneCountInString(current[0]) + joinCost(len(current)-1)
				current = current[1:]
			}
		}

		current = append(current, piece)
		total += pieceLen + joinCost(len(current)-1)
	}

	if chunk := strings.TrimSpace(strings.Join(current, separator)); chunk != "" {
		chunks = append(chunks, chunk)
	}
	return chunks
}

// splitOn splits text on separator, or into single runes when separator is empty.
// Empty pieces are dropped.
func splitOn(text, separator string) []string {
	var parts []string
	if separator == "" {
		parts = make([]string, 0, utf8.RuneCountInString(text))
		for _, r := range text {
			parts = append(parts, string(r))
		}
	} else {
		parts = strings.Split(text, separator)
	}

	pieces := parts[:0]
	for _, p := range parts {
		if p != "" {
			pieces = append(pieces, p)
		}
	}
	return pieces
}
