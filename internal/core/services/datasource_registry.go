package services

import (
	"sort"
	"sync"

	"github.com/custodia-labs/folio/internal/core/domain"
	"github.com/custodia-labs/folio/internal/core/ports/driven"
	"github.com/custodia-labs/folio/internal/logger"
)

// Ensure DataSourceRegistry implements the interface.
var _ driven.DataSourceFactory = (*DataSourceRegistry)(nil)

type registeredDataSource struct {
	info    domain.DataSourceType
	builder driven.DataSourceBuilder
}

// DataSourceRegistry maps data source type names to their builders.
type DataSourceRegistry struct {
	mu      sync.RWMutex
	entries map[string]registeredDataSource
}

// NewDataSourceRegistry creates an empty data source registry.
func NewDataSourceRegistry() *DataSourceRegistry {
	return &DataSourceRegistry{
		entries: make(map[string]registeredDataSource),
	}
}

// Register adds a data source builder for info.ID, replacing any previous one.
func (r *DataSourceRegistry) Register(info domain.DataSourceType, builder driven.DataSourceBuilder) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries[info.ID] = registeredDataSource{info: info, builder: builder}
}

// Get returns the description of a registered data source type.
func (r *DataSourceRegistry) Get(id string) (*domain.DataSourceType, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	entry, ok := r.entries[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	info := entry.info
	return &info, nil
}

// SupportedTypes returns all registered data source types, sorted by ID.
func (r *DataSourceRegistry) SupportedTypes() []domain.DataSourceType {
	r.mu.RLock()
	defer r.mu.RUnlock()
	result := make([]domain.DataSourceType, 0, len(r.entries))
	for _, entry := range r.entries {
		result = append(result, entry.info)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result
}

// Instantiate creates one data source per configured entry, preserving
// declaration order. Each builder receives the entry merged with its nested
// config mapping, nested keys winning.
func (r *DataSourceRegistry) Instantiate(site domain.SiteRef, cfg *domain.Config) ([]driven.MountedDataSource, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entries := cfg.DataSources()
	result := make([]driven.MountedDataSource, 0, len(entries))
	for _, entry := range entries {
		registered, ok := r.entries[entry.Type]
		if !ok {
			return nil, &domain.UnknownDataSourceError{Type: entry.Type}
		}

		params := driven.DataSourceParams{
			Site:        site,
			ItemsRoot:   entry.ItemsRoot,
			LayoutsRoot: entry.LayoutsRoot,
			Config:      domain.Layer(entry.Entry, entry.Config),
		}
		ds, err := registered.builder(params)
		if err != nil {
			return nil, err
		}

		logger.Debug("Instantiated %s data source (items_root=%s, layouts_root=%s)",
			entry.Type, entry.ItemsRoot, entry.LayoutsRoot)
		result = append(result, driven.MountedDataSource{
			DataSource:  ds,
			ItemsRoot:   entry.ItemsRoot,
			LayoutsRoot: entry.LayoutsRoot,
		})
	}
	return result, nil
}
