package driven

import (
	"context"

	"github.com/custodia-labs/folio/internal/core/domain"
)

// SiteContent is the read-only view of a loaded site handed to a compiler.
type SiteContent interface {
	domain.SiteRef

	// Items returns the loaded items, loading the site if needed.
	Items(ctx context.Context) (*domain.Collection, error)

	// Layouts returns the loaded layouts, loading the site if needed.
	Layouts(ctx context.Context) (*domain.Collection, error)
}

// Compiler turns a loaded site into output. Its behaviour is outside the
// content core; the site only builds it once and drives its lifecycle.
type Compiler interface {
	// Load prepares the compiler for a run against the site's current content.
	Load(ctx context.Context) error

	// Unload drops anything Load prepared.
	Unload()

	// Run compiles the site.
	Run(ctx context.Context) (*domain.CompileResult, error)
}

// CompilerBuilder creates the compiler bound to a site.
type CompilerBuilder func(site SiteContent) (Compiler, error)
