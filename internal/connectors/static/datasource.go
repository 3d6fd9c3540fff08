// Package static provides a data source whose items and layouts are listed
// inline in the site configuration or produced by code snippets.
package static

import (
	"context"
	"fmt"

	"github.com/custodia-labs/folio/internal/connectors/content"
	"github.com/custodia-labs/folio/internal/core/domain"
	"github.com/custodia-labs/folio/internal/core/ports/driven"
)

// TypeID is the data source type name used in site configuration.
const TypeID = "static"

// Ensure DataSource implements the interface.
var _ driven.DataSource = (*DataSource)(nil)

// DataSource serves a fixed list of nodes, followed by any nodes a code
// snippet stored under the configured snippet value names.
type DataSource struct {
	items   []domain.RawNode
	layouts []domain.RawNode

	site        domain.SiteRef
	itemsFrom   string
	layoutsFrom string

	active bool
}

// New creates a static data source. The slices are served as-is.
func New(items, layouts []domain.RawNode) *DataSource {
	return &DataSource{items: items, layouts: layouts}
}

// Build parses the "items" and "layouts" sequences of a configured mount.
func Build(params driven.DataSourceParams) (driven.DataSource, error) {
	items, err := parseNodes(params.Config["items"], "items")
	if err != nil {
		return nil, err
	}
	layouts, err := parseNodes(params.Config["layouts"], "layouts")
	if err != nil {
		return nil, err
	}

	ds := New(items, layouts)
	ds.site = params.Site
	ds.itemsFrom = content.String(params.Config, "items_from", "")
	ds.layoutsFrom = content.String(params.Config, "layouts_from", "")
	if (ds.itemsFrom != "" || ds.layoutsFrom != "") && ds.site == nil {
		return nil, fmt.Errorf("%w: static snippet values need a site", domain.ErrInvalidInput)
	}
	return ds, nil
}

// Info describes the static data source type.
func Info() domain.DataSourceType {
	return domain.DataSourceType{
		ID:          TypeID,
		Name:        "Static",
		Description: "Items and layouts listed inline in the site configuration",
		ConfigKeys: []domain.ConfigKey{
			{Key: "items", Description: "Sequence of {identifier, content, attributes, binary}"},
			{Key: "layouts", Description: "Sequence of {identifier, content, attributes}"},
			{Key: "items_from", Description: "Snippet value (folio.set) holding more items"},
			{Key: "layouts_from", Description: "Snippet value (folio.set) holding more layouts"},
		},
	}
}

func parseNodes(val any, key string) ([]domain.RawNode, error) {
	if val == nil {
		return nil, nil
	}
	if _, ok := val.([]any); !ok {
		if _, ok := val.([]map[string]any); !ok {
			return nil, fmt.Errorf("%w: static %s must be a sequence of mappings", domain.ErrInvalidInput, key)
		}
	}

	entries := domain.MapSlice(val)
	nodes := make([]domain.RawNode, 0, len(entries))
	for i, entry := range entries {
		id := content.String(entry, "identifier", "")
		if id == "" {
			return nil, fmt.Errorf("%w: static %s[%d] has no identifier", domain.ErrInvalidInput, key, i)
		}
		attrs, _ := entry["attributes"].(map[string]any)
		nodes = append(nodes, domain.RawNode{
			Identifier: domain.Identifier(id),
			Content:    content.String(entry, "content", ""),
			Attributes: attrs,
			Binary:     content.Bool(entry, "binary", false),
		})
	}
	return nodes, nil
}

// fromSnippets parses the nodes stored under the snippet value name.
func (d *DataSource) fromSnippets(name string) ([]domain.RawNode, error) {
	if name == "" {
		return nil, nil
	}
	val, ok := d.site.SnippetValues()[name]
	if !ok {
		return nil, fmt.Errorf("%w: snippet value %q was never set", domain.ErrNotFound, name)
	}
	return parseNodes(val, name)
}

// Type returns the data source type identifier.
func (d *DataSource) Type() string {
	return TypeID
}

// Activate opens the activation window.
func (d *DataSource) Activate(_ context.Context) error {
	d.active = true
	return nil
}

// Deactivate closes the activation window.
func (d *DataSource) Deactivate(_ context.Context) error {
	d.active = false
	return nil
}

// Items returns the configured items, then the snippet-provided ones.
func (d *DataSource) Items(_ context.Context) ([]domain.RawNode, error) {
	if !d.active {
		return nil, domain.ErrNotActivated
	}
	extra, err := d.fromSnippets(d.itemsFrom)
	if err != nil {
		return nil, err
	}
	return append(append([]domain.RawNode(nil), d.items...), extra...), nil
}

// Layouts returns the configured layouts, then the snippet-provided ones.
func (d *DataSource) Layouts(_ context.Context) ([]domain.RawNode, error) {
	if !d.active {
		return nil, domain.ErrNotActivated
	}
	extra, err := d.fromSnippets(d.layoutsFrom)
	if err != nil {
		return nil, err
	}
	return append(append([]domain.RawNode(nil), d.layouts...), extra...), nil
}
