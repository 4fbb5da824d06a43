package corpus

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFile(t *testing.T, root, rel, content string) {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("MkdirAll() error = %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
}

func TestLoader_Load(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "b.txt", "plain text\nsecond line")
	writeFile(t, root, "a/notes.md", "# Title\n\nSome *markdown* text.")
	writeFile(t, root, "a/UPPER.TXT", "upper")
	writeFile(t, root, "c.markdown", "para")
	writeFile(t, root, "image.png", "binary")
	writeFile(t, root, ".hidden.txt", "secret")
	writeFile(t, root, ".git/config.txt", "ignored")

	docs, err := NewLoader(root).Load(context.Background())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	var sources []string
	for _, d := range docs {
		sources = append(sources, d.Source)
	}
	want := []string{"a/UPPER.TXT", "a/notes.md", "b.txt", "c.markdown"}
	if strings.Join(sources, ",") != strings.Join(want, ",") {
		t.Errorf("Load() sources = %v, want %v", sources, want)
	}

	for _, d := range docs {
		switch d.Source {
		case "b.txt":
			if d.Text != "plain text\nsecond line" {
				t.Errorf("text document should be read verbatim, got %q", d.Text)
			}
		case "a/notes.md":
			if d.Text != "Title\n\nSome markdown text." {
				t.Errorf("markdown document text = %q", d.Text)
			}
		}
	}
}

func TestLoader_Load_Errors(t *testing.T) {
	root := t.TempDir()
	file := filepath.Join(root, "file.txt")
	writeFile(t, root, "file.txt", "x")

	tests := []struct {
		name string
		dir  string
	}{
		{name: "missing directory", dir: filepath.Join(root, "missing")},
		{name: "not a directory", dir: file},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewLoader(tt.dir).Load(context.Background()); err == nil {
				t.Error("Load() expected error, got nil")
			}
		})
	}
}

func TestLoader_Load_EmptyDirectory(t *testing.T) {
	docs, err := NewLoader(t.TempDir()).Load(context.Background())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(docs) != 0 {
		t.Errorf("Load() returned %d documents, want 0", len(docs))
	}
}

func TestLoader_Load_ContextCanceled(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "a.txt", "a")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := NewLoader(root).Load(ctx); err == nil {
		t.Error("Load() with canceled context should return error")
	}
}
