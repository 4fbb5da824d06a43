// Package corpus loads the fixed document set that gets embedded into the index.
package corpus

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"ragdemo/internal/contextutil"
)

// Document is a source file read from the corpus directory.
type Document struct {
	Source string // Path relative to the corpus root, slash separated (e.g., "guides/funds.txt")
	Text   string
}

// Loader reads documents from a directory tree.
type Loader struct {
	root     string
	markdown goldmark.Markdown
}

// NewLoader creates a loader rooted at dir.
func NewLoader(dir string) *Loader {
	return &Loader{
		root: dir,
		markdown: goldmark.New(
			goldmark.WithExtensions(extension.Table),
		),
	}
}

// Load returns every supported document under the root, sorted by Source.
// Hidden files and directories are skipped. Markdown is reduced to plain text.
func (l *Loader) Load(ctx context.Context) ([]Document, error) {
	logger := contextutil.LoggerFromContext(ctx)

	info, err := os.Stat(l.root)
	if err != nil {
		return nil, fmt.Errorf("failed to access documents path %s: %w", l.root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("documents path %s is not a directory", l.root)
	}

	var docs []Document
	err = filepath.WalkDir(l.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("failed to access path %s: %w", path, err)
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}

		if path != l.root && strings.HasPrefix(d.Name(), ".") {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}

		kind := kindOf(path)
		if kind == kindUnsupported {
			return nil
		}

		relPath, err := filepath.Rel(l.root, path)
		if err != nil {
			return fmt.Errorf("failed to compute relative path for %s: %w", path, err)
		}

		content, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", path, err)
		}

		text := string(content)
		if kind == kindMarkdown {
			text = markdownToText(l.markdown, content)
		}

		docs = append(docs, Document{
			Source: filepath.ToSlash(relPath),
			Text:   text,
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load documents: %w", err)
	}

	sort.Slice(docs, func(i, j int) bool { return docs[i].Source < docs[j].Source })

	logger.InfoContext(ctx, "documents loaded", "path", l.root, "count", len(docs))
	return docs, nil
}

type fileKind int

const (
	kindUnsupported fileKind = iota
	kindText
	kindMarkdown
)

func kindOf(path string) fileKind {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".txt":
		return kindText
	case ".md", ".markdown":
		return kindMarkdown
	default:
		return kindUnsupported
	}
}
