package services

import (
	"context"
	"path/filepath"

	"github.com/custodia-labs/folio/internal/core/domain"
	"github.com/custodia-labs/folio/internal/core/ports/driven"
	"github.com/custodia-labs/folio/internal/core/ports/driving"
	"github.com/custodia-labs/folio/internal/logger"
)

// Ensure Site implements the interfaces.
var (
	_ driving.Site       = (*Site)(nil)
	_ driven.SiteContent = (*Site)(nil)
)

// Site is the content aggregate of one static site. It owns the resolved
// configuration, the code snippets and the item and layout collections, and
// controls their load/unload lifecycle.
//
// A Site is not safe for concurrent use. Reentrant Load and Unload calls are
// rejected by checking the lifecycle state.
type Site struct {
	config          *domain.Config
	factory         driven.DataSourceFactory
	snippetLoader   driven.SnippetLoader
	snippetRunner   driven.SnippetRunner
	compilerBuilder driven.CompilerBuilder

	state       domain.LoadState
	frozen      bool
	dataSources []driven.MountedDataSource
	snippets    []domain.CodeSnippet
	items       *domain.Collection
	layouts     *domain.Collection
	compiler    driven.Compiler
}

// NewSite creates an unloaded site for an already resolved configuration.
// snippetLoader, snippetRunner and compilerBuilder are optional.
func NewSite(
	cfg *domain.Config,
	factory driven.DataSourceFactory,
	snippetLoader driven.SnippetLoader,
	snippetRunner driven.SnippetRunner,
	compilerBuilder driven.CompilerBuilder,
) *Site {
	return &Site{
		config:          cfg,
		factory:         factory,
		snippetLoader:   snippetLoader,
		snippetRunner:   snippetRunner,
		compilerBuilder: compilerBuilder,
		state:           domain.StateUnloaded,
		items:           domain.NewCollection(domain.KindItem),
		layouts:         domain.NewCollection(domain.KindLayout),
	}
}

// OpenSite resolves the configuration in dir once and creates the site.
func OpenSite(
	dir string,
	overrides map[string]any,
	resolver *ConfigResolver,
	factory driven.DataSourceFactory,
	snippetLoader driven.SnippetLoader,
	snippetRunner driven.SnippetRunner,
	compilerBuilder driven.CompilerBuilder,
) (*Site, error) {
	cfg, err := resolver.ResolveDir(dir, overrides)
	if err != nil {
		return nil, err
	}
	return NewSite(cfg, factory, snippetLoader, snippetRunner, compilerBuilder), nil
}

// Config returns the resolved configuration.
func (s *Site) Config() *domain.Config {
	return s.config
}

// State returns the current lifecycle state.
func (s *Site) State() domain.LoadState {
	return s.state
}

// Load runs the code snippets, pulls every data source inside an activation
// scope, links the item hierarchy and validates identifier uniqueness.
//
// Load is a no-op when the site is loaded or already loading. On any failure
// the site is fully unloaded and the original error is returned unmodified.
func (s *Site) Load(ctx context.Context) error {
	if s.state != domain.StateUnloaded {
		return nil
	}
	s.state = domain.StateLoading
	logger.Section("Loading site")
	defer logger.Timed("Load")()

	if err := s.load(ctx); err != nil {
		logger.Debug("Site load failed, unloading: %v", err)
		s.Unload()
		return err
	}

	if s.frozen {
		s.items.Freeze()
		s.layouts.Freeze()
	}
	s.state = domain.StateLoaded
	logger.Info("Loaded %d items, %d layouts, %d code snippets",
		s.items.Len(), s.layouts.Len(), len(s.snippets))
	return nil
}

func (s *Site) load(ctx context.Context) error {
	if err := s.loadCodeSnippets(ctx); err != nil {
		return err
	}

	dataSources, err := s.DataSources()
	if err != nil {
		return err
	}

	err = withActivated(ctx, dataSources, func() error {
		return s.pull(ctx, dataSources)
	})
	if err != nil {
		return err
	}

	if err := domain.LinkHierarchy(s.items); err != nil {
		return err
	}
	if err := s.items.ValidateUnique(); err != nil {
		return err
	}
	return s.layouts.ValidateUnique()
}

func (s *Site) loadCodeSnippets(ctx context.Context) error {
	if s.snippetLoader == nil {
		return nil
	}

	snippets, err := s.snippetLoader.Load(ctx, s.config.SiteDir(), s.config.LibDirs())
	if err != nil {
		return err
	}
	s.snippets = snippets

	if s.snippetRunner == nil {
		return nil
	}
	for _, snippet := range snippets {
		logger.Debug("Running code snippet %s", snippet.Location)
		if err := s.snippetRunner.Run(ctx, snippet); err != nil {
			return err
		}
	}
	return nil
}

// withActivated activates every data source, runs fn and deactivates every
// data source that was activated, in reverse order, on every exit path. A
// deactivation error is only reported when nothing else failed.
func withActivated(ctx context.Context, dataSources []driven.MountedDataSource, fn func() error) (err error) {
	activated := make([]driven.MountedDataSource, 0, len(dataSources))
	defer func() {
		for i := len(activated) - 1; i >= 0; i-- {
			ds := activated[i]
			if derr := ds.Deactivate(ctx); derr != nil {
				logger.Warn("Deactivating %s data source: %v", ds.Type(), derr)
				if err == nil {
					err = derr
				}
			}
		}
	}()

	for _, ds := range dataSources {
		if err := ds.Activate(ctx); err != nil {
			return err
		}
		activated = append(activated, ds)
	}
	return fn()
}

// pull appends every data source's items, then every data source's layouts,
// each prefixed with its mount root.
func (s *Site) pull(ctx context.Context, dataSources []driven.MountedDataSource) error {
	for _, ds := range dataSources {
		raws, err := ds.Items(ctx)
		if err != nil {
			return err
		}
		if err := s.mount(s.items, raws, ds.ItemsRoot); err != nil {
			return err
		}
		logger.Debug("Pulled %d items from %s data source", len(raws), ds.Type())
	}

	for _, ds := range dataSources {
		raws, err := ds.Layouts(ctx)
		if err != nil {
			return err
		}
		if err := s.mount(s.layouts, raws, ds.LayoutsRoot); err != nil {
			return err
		}
		logger.Debug("Pulled %d layouts from %s data source", len(raws), ds.Type())
	}
	return nil
}

func (s *Site) mount(c *domain.Collection, raws []domain.RawNode, root string) error {
	for _, raw := range raws {
		node := domain.NewNode(c.Kind(), raw)
		if err := node.Mount(s, root); err != nil {
			return err
		}
		if err := c.Add(node); err != nil {
			return err
		}
	}
	return nil
}

// Unload resets snippets, items and layouts and returns the site to the
// unloaded state, whatever state it was in. Reentrant calls are no-ops.
func (s *Site) Unload() {
	if s.state == domain.StateUnloading {
		return
	}
	s.state = domain.StateUnloading
	logger.Debug("Unloading site")

	if s.compiler != nil {
		s.compiler.Unload()
	}
	if s.snippetRunner != nil {
		if err := s.snippetRunner.Reset(); err != nil {
			logger.Warn("Resetting snippet runner: %v", err)
		}
	}

	s.snippets = nil
	s.items = domain.NewCollection(domain.KindItem)
	s.layouts = domain.NewCollection(domain.KindLayout)
	s.state = domain.StateUnloaded
}

// SnippetValues returns the values code snippets shared through the runner.
func (s *Site) SnippetValues() map[string]any {
	if s.snippetRunner == nil {
		return map[string]any{}
	}
	return s.snippetRunner.Values()
}

// Freeze loads the site and makes the configuration and every node immutable.
// The site stays frozen across Unload: the next Load freezes its new content.
func (s *Site) Freeze(ctx context.Context) error {
	if err := s.Load(ctx); err != nil {
		return err
	}
	s.frozen = true
	s.config.Freeze()
	if s.state == domain.StateLoaded {
		s.items.Freeze()
		s.layouts.Freeze()
	}
	return nil
}

// Frozen reports whether Freeze was called.
func (s *Site) Frozen() bool {
	return s.frozen
}

// Items returns the item collection, loading the site if needed.
func (s *Site) Items(ctx context.Context) (*domain.Collection, error) {
	if err := s.Load(ctx); err != nil {
		return nil, err
	}
	return s.items, nil
}

// Layouts returns the layout collection, loading the site if needed.
func (s *Site) Layouts(ctx context.Context) (*domain.Collection, error) {
	if err := s.Load(ctx); err != nil {
		return nil, err
	}
	return s.layouts, nil
}

// CodeSnippets returns the loaded code snippets, loading the site if needed.
func (s *Site) CodeSnippets(ctx context.Context) ([]domain.CodeSnippet, error) {
	if err := s.Load(ctx); err != nil {
		return nil, err
	}
	out := make([]domain.CodeSnippet, len(s.snippets))
	copy(out, s.snippets)
	return out, nil
}

// DataSources returns the configured data source instances, creating them on
// first use. Instances are kept across Unload.
func (s *Site) DataSources() ([]driven.MountedDataSource, error) {
	if s.dataSources != nil {
		return s.dataSources, nil
	}
	dataSources, err := s.factory.Instantiate(s, s.config)
	if err != nil {
		return nil, err
	}
	s.dataSources = dataSources
	return dataSources, nil
}

// WatchRoots returns the lib directories and every watchable data source root.
func (s *Site) WatchRoots() []string {
	var roots []string
	for _, dir := range s.config.LibDirs() {
		if !filepath.IsAbs(dir) {
			dir = filepath.Join(s.config.SiteDir(), dir)
		}
		roots = append(roots, dir)
	}

	dataSources, err := s.DataSources()
	if err != nil {
		logger.Warn("Cannot list data source watch roots: %v", err)
		return roots
	}
	for _, ds := range dataSources {
		if w, ok := ds.DataSource.(driven.Watchable); ok {
			roots = append(roots, w.WatchRoots()...)
		}
	}
	return roots
}

// Compiler returns the site's compiler, building it on first use.
func (s *Site) Compiler() (driven.Compiler, error) {
	if s.compiler != nil {
		return s.compiler, nil
	}
	if s.compilerBuilder == nil {
		return nil, domain.ErrCompilerUnavailable
	}
	compiler, err := s.compilerBuilder(s)
	if err != nil {
		return nil, err
	}
	s.compiler = compiler
	return compiler, nil
}

// Compile loads the site, prepares the compiler and runs it.
func (s *Site) Compile(ctx context.Context) (*domain.CompileResult, error) {
	defer logger.Timed("Compile")()

	if err := s.Load(ctx); err != nil {
		return nil, err
	}
	compiler, err := s.Compiler()
	if err != nil {
		return nil, err
	}
	if err := compiler.Load(ctx); err != nil {
		return nil, err
	}
	return compiler.Run(ctx)
}
