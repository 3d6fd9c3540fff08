package services

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"strings"

	"github.com/custodia-labs/folio/internal/core/domain"
	"github.com/custodia-labs/folio/internal/core/ports/driven"
	"github.com/custodia-labs/folio/internal/logger"
)

// DefaultConfigFilenames are the site configuration filenames, in lookup order.
var DefaultConfigFilenames = []string{"folio.yaml", "folio.yml", "folio.toml", "config.yaml"}

// DefaultConfig returns the global configuration defaults.
// Every call returns a fresh map.
func DefaultConfig() map[string]any {
	exts := []string{
		"adoc", "asciidoc", "atom", "coffee", "css", "erb", "haml", "handlebars",
		"hb", "htm", "html", "js", "less", "markdown", "md", "ms", "mustache",
		"php", "rb", "rdoc", "sass", "scss", "slim", "tex", "txt", "xhtml", "xml",
	}
	sort.Strings(exts)
	textExtensions := make([]any, len(exts))
	for i, e := range exts {
		textExtensions[i] = e
	}

	return map[string]any{
		domain.KeyTextExtensions:   textExtensions,
		domain.KeyLibDirs:          []any{"lib"},
		domain.KeyOutputDir:        "output",
		domain.KeyDataSources:      []any{map[string]any{}},
		domain.KeyIndexFilenames:   []any{"index.html"},
		domain.KeyEnableOutputDiff: false,
		domain.KeyPrune: map[string]any{
			"auto_prune": false,
			"exclude":    []any{".git", ".hg", ".svn", "CVS"},
		},
	}
}

// DataSourceDefaults returns the defaults merged underneath every data_sources entry.
func DataSourceDefaults() map[string]any {
	return map[string]any{
		domain.KeyType:        "filesystem",
		domain.KeyItemsRoot:   "/",
		domain.KeyLayoutsRoot: "/",
		domain.KeyConfig:      map[string]any{},
	}
}

// ConfigResolver loads a site configuration document, follows its
// parent_config_file chain and layers the defaults underneath.
//
// Precedence, weakest first: global defaults, parent chain (root-most first),
// site document, per-call overrides.
type ConfigResolver struct {
	readers   map[string]driven.ConfigReader
	filenames []string
}

// NewConfigResolver creates a resolver that reads documents with the given readers,
// selected by file extension.
func NewConfigResolver(readers ...driven.ConfigReader) *ConfigResolver {
	r := &ConfigResolver{
		readers:   make(map[string]driven.ConfigReader),
		filenames: DefaultConfigFilenames,
	}
	for _, reader := range readers {
		for _, ext := range reader.Extensions() {
			r.readers[strings.ToLower(ext)] = reader
		}
	}
	return r
}

// WithFilenames replaces the configuration filenames looked up by ResolveDir.
func (r *ConfigResolver) WithFilenames(names ...string) *ConfigResolver {
	r.filenames = names
	return r
}

// Locate returns the path of the first configuration file present in dir.
func (r *ConfigResolver) Locate(dir string) (string, error) {
	for _, name := range r.filenames {
		path := filepath.Join(dir, name)
		info, err := os.Stat(path)
		if err == nil && !info.IsDir() {
			return path, nil
		}
	}
	return "", fmt.Errorf("%w in %s (looked for %s)", domain.ErrConfigNotFound, dir, strings.Join(r.filenames, ", "))
}

// ResolveDir resolves the configuration file found in the site directory dir.
func (r *ConfigResolver) ResolveDir(dir string, overrides map[string]any) (*domain.Config, error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolve site dir: %w", err)
	}

	path, err := r.Locate(absDir)
	if err != nil {
		return nil, err
	}
	return r.ResolveFile(path, overrides)
}

// ResolveFile resolves the configuration document at path.
// The site directory is the directory containing the file.
func (r *ConfigResolver) ResolveFile(path string, overrides map[string]any) (*domain.Config, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve config path: %w", err)
	}

	doc, err := r.read(absPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", domain.ErrConfigNotFound, absPath)
		}
		return nil, err
	}
	return r.ResolveDocument(doc, absPath, overrides)
}

// ResolveDocument resolves an already parsed document as if it had been read
// from path. Parent references are resolved relative to path's directory.
func (r *ConfigResolver) ResolveDocument(doc map[string]any, path string, overrides map[string]any) (*domain.Config, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve config path: %w", err)
	}

	resolved, err := r.resolveChain(doc, absPath, nil)
	if err != nil {
		return nil, err
	}

	result := domain.Layer(DefaultConfig(), resolved, overrides)
	delete(result, domain.KeyParentConfigFile)
	if _, ok := result[domain.KeySiteDir]; !ok {
		result[domain.KeySiteDir] = filepath.Dir(absPath)
	}

	entries := domain.MapSlice(result[domain.KeyDataSources])
	dataSources := make([]any, 0, len(entries))
	for _, entry := range entries {
		dataSources = append(dataSources, domain.Layer(DataSourceDefaults(), entry))
	}
	result[domain.KeyDataSources] = dataSources

	logger.Debug("Resolved configuration %s (%d data sources)", absPath, len(dataSources))
	return domain.NewConfig(result), nil
}

// resolveChain merges doc over its resolved parent chain.
// visited holds the absolute paths of every document below doc in the chain;
// it is never mutated, each step works on its own copy.
func (r *ConfigResolver) resolveChain(doc map[string]any, path string, visited []string) (map[string]any, error) {
	own := domain.CloneMap(doc)
	if own == nil {
		own = make(map[string]any)
	}
	ref, _ := own[domain.KeyParentConfigFile].(string)
	delete(own, domain.KeyParentConfigFile)
	if ref == "" {
		return own, nil
	}

	parentPath := ref
	if !filepath.IsAbs(parentPath) {
		parentPath = filepath.Join(filepath.Dir(path), ref)
	}
	parentPath = filepath.Clean(parentPath)

	chain := append(slices.Clip(visited), path)
	if slices.Contains(chain, parentPath) {
		return nil, &domain.ConfigCycleError{Path: parentPath, Chain: chain}
	}

	parentDoc, err := r.read(parentPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &domain.ConfigParentMissingError{Path: parentPath, Referrer: path}
		}
		return nil, err
	}

	logger.Debug("Config %s inherits from %s", path, parentPath)
	parent, err := r.resolveChain(parentDoc, parentPath, chain)
	if err != nil {
		return nil, err
	}
	return domain.DeepMerge(parent, own), nil
}

func (r *ConfigResolver) read(path string) (map[string]any, error) {
	ext := strings.ToLower(filepath.Ext(path))
	reader, ok := r.readers[ext]
	if !ok {
		return nil, fmt.Errorf("%w: no configuration reader for %q files", domain.ErrInvalidInput, ext)
	}
	return reader.Read(path)
}
