// Package passthrough provides a compiler that writes item content to the
// output directory unchanged. It exercises the site content graph end to end
// without a rendering pipeline.
package passthrough

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"strings"

	"github.com/pmezard/go-difflib/difflib"

	"github.com/custodia-labs/folio/internal/core/domain"
	"github.com/custodia-labs/folio/internal/core/ports/driven"
	"github.com/custodia-labs/folio/internal/logger"
)

// Ensure Compiler implements the interface.
var _ driven.Compiler = (*Compiler)(nil)

// DiffFilename is written to the site directory when enable_output_diff is set.
const DiffFilename = "output.diff"

// ErrNotLoaded is returned by Run before Load.
var ErrNotLoaded = errors.New("compiler not loaded")

// Compiler writes every item to its output path.
type Compiler struct {
	site  driven.SiteContent
	items []*domain.Node
}

// New creates a pass-through compiler for site. It has the driven.CompilerBuilder signature.
func New(site driven.SiteContent) (driven.Compiler, error) {
	if site == nil {
		return nil, fmt.Errorf("%w: site is required", domain.ErrInvalidInput)
	}
	return &Compiler{site: site}, nil
}

// Load snapshots the site's current items.
func (c *Compiler) Load(ctx context.Context) error {
	items, err := c.site.Items(ctx)
	if err != nil {
		return err
	}
	c.items = items.All()
	return nil
}

// Unload drops the snapshot.
func (c *Compiler) Unload() {
	c.items = nil
}

// Run writes the loaded items and prunes stale output when configured.
func (c *Compiler) Run(ctx context.Context) (*domain.CompileResult, error) {
	if c.items == nil {
		return nil, ErrNotLoaded
	}

	cfg := c.site.Config()
	outputDir := resolve(cfg.SiteDir(), cfg.OutputDir())
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}

	indexFilename := "index.html"
	if names := cfg.IndexFilenames(); len(names) > 0 {
		indexFilename = names[0]
	}

	result := &domain.CompileResult{}
	produced := make(map[string]struct{}, len(c.items))
	var diff bytes.Buffer

	for _, item := range c.items {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		rel := OutputPath(item.Identifier(), indexFilename)
		if rel == "" {
			continue
		}
		dest, rel, err := outputFile(outputDir, rel)
		if err != nil {
			return nil, err
		}
		produced[rel] = struct{}{}

		data, err := c.contentOf(item)
		if err != nil {
			return nil, err
		}

		old, readErr := os.ReadFile(dest)
		if readErr == nil && bytes.Equal(old, data) {
			result.Unchanged = append(result.Unchanged, rel)
			continue
		}

		if err := writeFile(dest, data); err != nil {
			return nil, err
		}
		result.Written = append(result.Written, rel)
		logger.Debug("Wrote %s", rel)

		if cfg.EnableOutputDiff() && !item.Binary() {
			if err := appendDiff(&diff, rel, old, data); err != nil {
				return nil, fmt.Errorf("diff %s: %w", rel, err)
			}
		}
	}

	if cfg.EnableOutputDiff() {
		diffPath := filepath.Join(cfg.SiteDir(), DiffFilename)
		if err := os.WriteFile(diffPath, diff.Bytes(), 0644); err != nil {
			return nil, fmt.Errorf("write output diff: %w", err)
		}
	}

	if cfg.AutoPrune() {
		pruned, err := prune(outputDir, produced, cfg.PruneExclude())
		if err != nil {
			return nil, err
		}
		result.Pruned = pruned
	}

	logger.Info("Compiled %d items (%d written, %d unchanged, %d pruned)",
		len(c.items), len(result.Written), len(result.Unchanged), len(result.Pruned))
	return result, nil
}

func (c *Compiler) contentOf(item *domain.Node) ([]byte, error) {
	if !item.Binary() {
		return []byte(item.Content()), nil
	}

	v, ok := item.Attribute("content_filename")
	src, _ := v.(string)
	if !ok || src == "" {
		return nil, fmt.Errorf("%w: binary item %s has no content_filename", domain.ErrInvalidInput, item.Identifier())
	}
	f, err := os.Open(src)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", src, err)
	}
	defer f.Close()
	return io.ReadAll(f)
}

// OutputPath maps an identifier to a slash-separated path relative to the
// output directory. Full identifiers get the index filename appended.
func OutputPath(id domain.Identifier, indexFilename string) string {
	p := strings.TrimPrefix(id.String(), domain.Separator)
	if id.IsFull() {
		p += indexFilename
	}
	return p
}

// outputFile joins rel onto outputDir and returns the destination with its
// cleaned relative path. Paths that resolve outside outputDir are rejected.
func outputFile(outputDir, rel string) (string, string, error) {
	dest := filepath.Join(outputDir, filepath.FromSlash(rel))
	within, err := filepath.Rel(outputDir, dest)
	if err != nil || within == "." || within == ".." ||
		strings.HasPrefix(within, ".."+string(filepath.Separator)) {
		return "", "", fmt.Errorf("%w: output path %q is outside %s", domain.ErrInvalidInput, rel, outputDir)
	}
	return dest, filepath.ToSlash(within), nil
}

func resolve(base, path string) string {
	if path == "" || filepath.IsAbs(path) || base == "" {
		return path
	}
	return filepath.Join(base, path)
}

func writeFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create dir for %s: %w", path, err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// appendDiff records the change to rel in unified diff notation.
func appendDiff(buf *bytes.Buffer, rel string, old, updated []byte) error {
	from := "a/" + rel
	if old == nil {
		from = "/dev/null"
	}
	return difflib.WriteUnifiedDiff(buf, difflib.UnifiedDiff{
		A:        diffLines(old),
		B:        diffLines(updated),
		FromFile: from,
		ToFile:   "b/" + rel,
		Context:  3,
	})
}

// diffLines splits data into newline-terminated lines.
func diffLines(data []byte) []string {
	if len(data) == 0 {
		return nil
	}
	lines := strings.SplitAfter(string(data), "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	} else {
		lines[len(lines)-1] += "\n"
	}
	return lines
}

// prune removes files under outputDir that were not produced, skipping any
// path with a component listed in exclude. Emptied directories are removed.
func prune(outputDir string, produced map[string]struct{}, exclude []string) ([]string, error) {
	var stale []string
	var dirs []string
	err := filepath.WalkDir(outputDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if path == outputDir {
			return nil
		}
		if slices.Contains(exclude, d.Name()) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		rel, err := filepath.Rel(outputDir, path)
		if err != nil {
			return err
		}
		if d.IsDir() {
			dirs = append(dirs, path)
			return nil
		}
		if _, ok := produced[filepath.ToSlash(rel)]; !ok {
			stale = append(stale, filepath.ToSlash(rel))
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan output dir: %w", err)
	}

	for _, rel := range stale {
		if err := os.Remove(filepath.Join(outputDir, filepath.FromSlash(rel))); err != nil {
			return nil, fmt.Errorf("prune %s: %w", rel, err)
		}
		logger.Debug("Pruned %s", rel)
	}

	// Deepest first, so parents can empty out.
	sort.Slice(dirs, func(i, j int) bool { return len(dirs[i]) > len(dirs[j]) })
	for _, dir := range dirs {
		entries, err := os.ReadDir(dir)
		if err != nil || len(entries) > 0 {
			continue
		}
		if err := os.Remove(dir); err != nil {
			logger.Debug("Keeping empty dir %s: %v", dir, err)
			continue
		}
		logger.Debug("Pruned empty dir %s", dir)
	}
	return stale, nil
}
