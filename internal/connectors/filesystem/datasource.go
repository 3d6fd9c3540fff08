// Package filesystem provides a data source that reads items and layouts
// from directories on the local filesystem.
package filesystem

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/custodia-labs/folio/internal/connectors/content"
	"github.com/custodia-labs/folio/internal/core/domain"
	"github.com/custodia-labs/folio/internal/core/ports/driven"
	"github.com/custodia-labs/folio/internal/logger"
)

// TypeID is the data source type name used in site configuration.
const TypeID = "filesystem"

// Default directories, relative to the site directory.
const (
	DefaultContentDir = "content"
	DefaultLayoutsDir = "layouts"
)

// Ensure DataSource implements the interfaces.
var (
	_ driven.DataSource = (*DataSource)(nil)
	_ driven.Watchable  = (*DataSource)(nil)
)

// DataSource reads nodes from a content and a layouts directory.
type DataSource struct {
	contentDir     string
	layoutsDir     string
	textExtensions []string

	active bool
}

// New creates a filesystem data source for absolute directories.
func New(contentDir, layoutsDir string, textExtensions []string) *DataSource {
	return &DataSource{
		contentDir:     contentDir,
		layoutsDir:     layoutsDir,
		textExtensions: textExtensions,
	}
}

// Build creates a data source from a configured mount.
func Build(params driven.DataSourceParams) (driven.DataSource, error) {
	cfg := params.Config
	return New(
		content.ResolvePath(params.Site, content.String(cfg, "content_dir", DefaultContentDir)),
		content.ResolvePath(params.Site, content.String(cfg, "layouts_dir", DefaultLayoutsDir)),
		content.TextExtensions(params.Site, cfg),
	), nil
}

// Info describes the filesystem data source type.
func Info() domain.DataSourceType {
	return domain.DataSourceType{
		ID:          TypeID,
		Name:        "Local Filesystem",
		Description: "Items and layouts from files in the site directory",
		ConfigKeys: []domain.ConfigKey{
			{Key: "content_dir", Description: "Directory holding items", Default: DefaultContentDir},
			{Key: "layouts_dir", Description: "Directory holding layouts", Default: DefaultLayoutsDir},
			{Key: "text_extensions", Description: "Extensions read as text", Default: "site text_extensions"},
		},
	}
}

// Type returns the data source type identifier.
func (d *DataSource) Type() string {
	return TypeID
}

// Activate checks that the configured paths are directories when present.
func (d *DataSource) Activate(_ context.Context) error {
	for _, dir := range []string{d.contentDir, d.layoutsDir} {
		info, err := os.Stat(dir)
		if errors.Is(err, fs.ErrNotExist) {
			logger.Debug("Filesystem data source: %s does not exist, no nodes", dir)
			continue
		}
		if err != nil {
			return fmt.Errorf("filesystem: stat %s: %w", dir, err)
		}
		if !info.IsDir() {
			return fmt.Errorf("filesystem: %w: %s is not a directory", domain.ErrInvalidInput, dir)
		}
	}
	d.active = true
	return nil
}

// Deactivate releases nothing; it only closes the activation window.
func (d *DataSource) Deactivate(_ context.Context) error {
	d.active = false
	return nil
}

// Items returns the files under the content directory.
func (d *DataSource) Items(ctx context.Context) ([]domain.RawNode, error) {
	if !d.active {
		return nil, domain.ErrNotActivated
	}
	return d.read(ctx, d.contentDir)
}

// Layouts returns the files under the layouts directory.
func (d *DataSource) Layouts(ctx context.Context) ([]domain.RawNode, error) {
	if !d.active {
		return nil, domain.ErrNotActivated
	}
	return d.read(ctx, d.layoutsDir)
}

// WatchRoots returns the content and layouts directories.
func (d *DataSource) WatchRoots() []string {
	return []string{d.contentDir, d.layoutsDir}
}

func (d *DataSource) read(ctx context.Context, root string) ([]domain.RawNode, error) {
	if _, err := os.Stat(root); errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}

	var nodes []domain.RawNode
	err := filepath.WalkDir(root, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		if rel == "." {
			return nil
		}
		if isHidden(rel) || isBackup(rel) {
			if entry.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if entry.IsDir() {
			return nil
		}

		node, err := d.readFile(path, rel, entry)
		if err != nil {
			return err
		}
		nodes = append(nodes, node)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return nodes, nil
}

func (d *DataSource) readFile(path, rel string, entry fs.DirEntry) (domain.RawNode, error) {
	info, err := entry.Info()
	if err != nil {
		return domain.RawNode{}, fmt.Errorf("filesystem: stat %s: %w", path, err)
	}

	attrs := map[string]any{
		"filename":  path,
		"extension": content.Extension(rel),
		"mtime":     info.ModTime().UTC().Format(time.RFC3339),
	}
	node := domain.RawNode{Identifier: content.IdentifierFor(rel)}

	if !content.IsText(rel, d.textExtensions) {
		attrs["content_filename"] = path
		node.Binary = true
		node.Attributes = attrs
		return node, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return domain.RawNode{}, fmt.Errorf("filesystem: read %s: %w", path, err)
	}
	meta, body, err := content.SplitFrontMatter(string(data))
	if err != nil {
		return domain.RawNode{}, fmt.Errorf("filesystem: %s: %w", path, err)
	}
	for k, v := range meta {
		attrs[k] = v
	}
	content.SetDefaultTitle(attrs, rel, body)
	node.Content = body
	node.Attributes = attrs
	return node, nil
}

// isHidden reports whether any path component starts with a dot.
func isHidden(rel string) bool {
	for _, part := range strings.Split(rel, "/") {
		if part != "." && part != ".." && strings.HasPrefix(part, ".") {
			return true
		}
	}
	return false
}

// isBackup reports editor backup files (name~ and #name#).
func isBackup(rel string) bool {
	base := filepath.Base(rel)
	return strings.HasSuffix(base, "~") || (strings.HasPrefix(base, "#") && strings.HasSuffix(base, "#"))
}
