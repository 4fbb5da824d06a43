package indexer

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestRecursiveSplitter_ChunkCount(t *testing.T) {
	tests := []struct {
		name   string
		length int
		want   int
	}{
		{name: "empty", length: 0, want: 0},
		{name: "shorter than chunk", length: 999, want: 1},
		{name: "exactly one chunk", length: 1000, want: 1},
		{name: "one over", length: 1001, want: 2},
		{name: "two and a half", length: 2500, want: 3},
		{name: "ten chunks", length: 10000, want: 10},
	}

	splitter := NewRecursiveSplitter(DefaultChunkSize, DefaultChunkOverlap)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text := strings.Repeat("x", tt.length)
			chunks := splitter.SplitText(text)
			if len(chunks) != tt.want {
				t.Errorf("SplitText() returned %d chunks, want %d", len(chunks), tt.want)
			}
			if strings.Join(chunks, "") != text {
				t.Error("SplitText() without overlap should preserve every character")
			}
		})
	}
}

func TestRecursiveSplitter_RespectsChunkSize(t *testing.T) {
	paragraph := strings.Repeat("word ", 150) // 750 runes
	text := strings.Join([]string{paragraph, paragraph, strings.Repeat("é", 1500), paragraph}, "\n\n")

	splitter := NewRecursiveSplitter(DefaultChunkSize, 0)
	for i, chunk := range splitter.SplitText(text) {
		if n := utf8.RuneCountInString(chunk); n > DefaultChunkSize {
			t.Errorf("chunk %d has %d runes, max %d", i, n, DefaultChunkSize)
		}
		if chunk != strings.TrimSpace(chunk) || chunk == "" {
			t.Errorf("chunk %d is not trimmed or is empty: %q", i, chunk)
		}
	}
}

func TestRecursiveSplitter_PrefersParagraphs(t *testing.T) {
	splitter := NewRecursiveSplitter(20, 0)

	got := splitter.SplitText("first para\n\nsecond one\n\nthird paragraph here")
	want := []string{"first para", "second one", "third paragraph here"}

	if strings.Join(got, "|") != strings.Join(want, "|") {
		t.Errorf("SplitText() = %q, want %q", got, want)
	}
}

func TestRecursiveSplitter_MergesSmallPieces(t *testing.T) {
	splitter := NewRecursiveSplitter(11, 0)

	got := splitter.SplitText("aa bb cc dd ee")
	want := []string{"aa bb cc dd", "ee"}

	if strings.Join(got, "|") != strings.Join(want, "|") {
		t.Errorf("SplitText() = %q, want %q", got, want)
	}
}

func TestRecursiveSplitter_Overlap(t *testing.T) {
	splitter := NewRecursiveSplitter(8, 3)

	got := splitter.SplitText("aa bb cc dd")
	want := []string{"aa bb cc", "cc dd"}

	if strings.Join(got, "|") != strings.Join(want, "|") {
		t.Errorf("SplitText() = %q, want %q", got, want)
	}
}

func TestRecursiveSplitter_Deterministic(t *testing.T) {
	text := strings.Repeat("The quick brown fox jumps over the lazy dog.\n", 80)
	splitter := NewRecursiveSplitter(DefaultChunkSize, 0)

	first := splitter.SplitText(text)
	second := splitter.SplitText(text)
	if strings.Join(first, "\x00") != strings.Join(second, "\x00") {
		t.Error("SplitText() should be deterministic")
	}
}

func TestRecursiveSplitter_Split_Locations(t *testing.T) {
	splitter := NewRecursiveSplitter(12, 0)

	chunks := splitter.Split("line one\nline two\n\nline three")
	if len(chunks) != 3 {
		t.Fatalf("Split() returned %d chunks, want 3: %+v", len(chunks), chunks)
	}

	want := []LineRange{{From: 1, To: 1}, {From: 2, To: 2}, {From: 4, To: 4}}
	for i, chunk := range chunks {
		if chunk.Index != i {
			t.Errorf("chunk %d Index = %d", i, chunk.Index)
		}
		if chunk.Loc.Lines != want[i] {
			t.Errorf("chunk %d Lines = %+v, want %+v", i, chunk.Loc.Lines, want[i])
		}
	}
}

func TestRecursiveSplitter_Split_MultiLineChunk(t *testing.T) {
	splitter := NewRecursiveSplitter(DefaultChunkSize, 0)

	chunks := splitter.Split("a\nb\nc")
	if len(chunks) != 1 {
		t.Fatalf("Split() returned %d chunks, want 1", len(chunks))
	}
	if chunks[0].Loc.Lines != (LineRange{From: 1, To: 3}) {
		t.Errorf("Lines = %+v, want 1-3", chunks[0].Loc.Lines)
	}
}

func TestNewRecursiveSplitter_Defaults(t *testing.T) {
	s := NewRecursiveSplitter(0, -1)
	if s.ChunkSize() != DefaultChunkSize {
		t.Errorf("ChunkSize() = %d, want %d", s.ChunkSize(), DefaultChunkSize)
	}
	if s.chunkOverlap != 0 {
		t.Errorf("chunkOverlap = %d, want 0", s.chunkOverlap)
	}

	s = NewRecursiveSplitter(10, 50)
	if s.chunkOverlap != 9 {
		t.Errorf("chunkOverlap = %d, want 9", s.chunkOverlap)
	}
}
