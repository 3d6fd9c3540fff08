package driven

import (
	"context"

	"github.com/custodia-labs/folio/internal/core/domain"
)

// DataSource provides raw items and layouts to a site.
// Each data source type (filesystem, static, sqlite, github) implements this interface.
//
// A site brackets every load with Activate and Deactivate. Items and Layouts
// are only called between the two, once each per load.
type DataSource interface {
	// Type returns the data source type identifier.
	Type() string

	// Activate acquires whatever the data source needs to serve content
	// (open a database, build an API client, check directories).
	Activate(ctx context.Context) error

	// Deactivate releases resources acquired by Activate.
	// It is called on every exit path once Activate has succeeded.
	Deactivate(ctx context.Context) error

	// Items returns the raw items, identifiers relative to the items root.
	Items(ctx context.Context) ([]domain.RawNode, error)

	// Layouts returns the raw layouts, identifiers relative to the layouts root.
	Layouts(ctx context.Context) ([]domain.RawNode, error)
}

// Watchable is implemented by data sources backed by local paths that can be
// watched for changes.
type Watchable interface {
	// WatchRoots returns the directories whose changes affect this data source.
	WatchRoots() []string
}

// MountedDataSource is one configured data source instance and its mount roots.
type MountedDataSource struct {
	DataSource

	// ItemsRoot prefixes every item identifier.
	ItemsRoot string

	// LayoutsRoot prefixes every layout identifier.
	LayoutsRoot string
}
