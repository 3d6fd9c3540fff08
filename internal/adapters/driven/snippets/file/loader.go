// Package file loads code snippets from the site's lib directories.
package file

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/custodia-labs/folio/internal/core/domain"
	"github.com/custodia-labs/folio/internal/core/ports/driven"
	"github.com/custodia-labs/folio/internal/logger"
)

// Ensure Loader implements the interface.
var _ driven.SnippetLoader = (*Loader)(nil)

// Loader collects snippet files with the given extensions.
type Loader struct {
	extensions []string
}

// NewLoader creates a loader accepting files with the given extensions
// (e.g. ".lua"). Matching is case-insensitive.
func NewLoader(extensions ...string) *Loader {
	exts := make([]string, len(extensions))
	for i, ext := range extensions {
		exts[i] = strings.ToLower(ext)
	}
	return &Loader{extensions: exts}
}

// Load walks every directory in order. Relative directories resolve against
// siteDir. Files within each directory are returned sorted by full path.
// Snippet locations are the paths relative to siteDir where possible.
func (l *Loader) Load(ctx context.Context, siteDir string, dirs []string) ([]domain.CodeSnippet, error) {
	var snippets []domain.CodeSnippet
	for _, dir := range dirs {
		root := dir
		if !filepath.IsAbs(root) {
			root = filepath.Join(siteDir, root)
		}

		info, err := os.Stat(root)
		if errors.Is(err, fs.ErrNotExist) {
			logger.Debug("Skipping missing lib dir %s", root)
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("stat lib dir %s: %w", root, err)
		}
		if !info.IsDir() {
			return nil, fmt.Errorf("lib dir %s: %w: not a directory", root, domain.ErrInvalidInput)
		}

		found, err := l.walk(ctx, siteDir, root)
		if err != nil {
			return nil, err
		}
		snippets = append(snippets, found...)
	}
	return snippets, nil
}

// walk collects the matching files under root and reads them sorted by full
// path, so "lib/a.lua" loads before "lib/a/b.lua".
func (l *Loader) walk(ctx context.Context, siteDir, root string) ([]domain.CodeSnippet, error) {
	var paths []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if !d.IsDir() && l.accepts(path) {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	slices.Sort(paths)

	snippets := make([]domain.CodeSnippet, 0, len(paths))
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read snippet %s: %w", path, err)
		}
		snippets = append(snippets, domain.CodeSnippet{
			Source:   string(data),
			Location: location(siteDir, path),
		})
	}
	return snippets, nil
}

func (l *Loader) accepts(path string) bool {
	if len(l.extensions) == 0 {
		return true
	}
	return slices.Contains(l.extensions, strings.ToLower(filepath.Ext(path)))
}

func location(siteDir, path string) string {
	if siteDir == "" {
		return path
	}
	rel, err := filepath.Rel(siteDir, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return path
	}
	return filepath.ToSlash(rel)
}
