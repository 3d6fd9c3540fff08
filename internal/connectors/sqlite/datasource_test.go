package sqlite

import (
	"context"
	"database/sql"
	"io/fs"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/folio/internal/core/domain"
	"github.com/custodia-labs/folio/internal/core/ports/driven"
)

type stubSite struct{ cfg *domain.Config }

func (s stubSite) Config() *domain.Config { return s.cfg }

func (s stubSite) SnippetValues() map[string]any { return map[string]any{} }

// seedDatabase creates a database with the default tables and the given rows.
func seedDatabase(t *testing.T, path string, items, layouts [][3]any) {
	t.Helper()
	ctx := context.Background()
	db, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	defer db.Close()

	for table, rows := range map[string][][3]any{"items": items, "layouts": layouts} {
		require.NoError(t, EnsureTable(ctx, db, table))
		for _, row := range rows {
			_, err := db.ExecContext(ctx,
				"INSERT INTO "+table+" (identifier, content, attributes) VALUES (?, ?, ?)",
				row[0], row[1], row[2])
			require.NoError(t, err)
		}
	}
}

func TestDataSource_PullAfterActivation(t *testing.T) {
	path := filepath.Join(t.TempDir(), "site.db")
	seedDatabase(t, path,
		[][3]any{
			{"/", "home", nil},
			{"/about/", "about", `{"title": "About", "tags": ["a"]}`},
			{"/logo.png", nil, `{"binary": true, "content_filename": "/tmp/logo.png"}`},
		},
		[][3]any{{"/default/", "<%= yield %>", nil}},
	)

	ds, err := New(path, DefaultItemsTable, DefaultLayoutsTable)
	require.NoError(t, err)
	ctx := context.Background()

	_, err = ds.Items(ctx)
	require.ErrorIs(t, err, domain.ErrNotActivated)

	require.NoError(t, ds.Activate(ctx))
	items, err := ds.Items(ctx)
	require.NoError(t, err)
	layouts, err := ds.Layouts(ctx)
	require.NoError(t, err)
	require.NoError(t, ds.Deactivate(ctx))

	require.Len(t, items, 3)
	assert.Equal(t, domain.Identifier("/"), items[0].Identifier)
	assert.Equal(t, "home", items[0].Content)
	assert.Nil(t, items[0].Attributes)
	assert.Equal(t, "About", items[1].Attributes["title"])
	assert.Equal(t, []any{"a"}, items[1].Attributes["tags"])
	assert.True(t, items[2].Binary)
	assert.Equal(t, "/tmp/logo.png", items[2].Attributes["content_filename"])
	_, hasBinaryAttr := items[2].Attributes["binary"]
	assert.False(t, hasBinaryAttr)

	require.Len(t, layouts, 1)
	assert.Equal(t, domain.Identifier("/default/"), layouts[0].Identifier)

	_, err = ds.Layouts(ctx)
	assert.ErrorIs(t, err, domain.ErrNotActivated, "closed after deactivation")
}

func TestDataSource_MissingDatabase(t *testing.T) {
	ds, err := New(filepath.Join(t.TempDir(), "missing.db"), DefaultItemsTable, DefaultLayoutsTable)
	require.NoError(t, err)

	err = ds.Activate(context.Background())

	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestDataSource_CreateTables(t *testing.T) {
	siteDir := t.TempDir()
	site := stubSite{cfg: domain.NewConfig(map[string]any{"site_dir": siteDir})}

	built, err := Build(driven.DataSourceParams{Site: site, Config: map[string]any{
		"path":          "content.db",
		"items_table":   "pages",
		"create_tables": true,
	}})
	require.NoError(t, err)
	ds := built.(*DataSource)
	assert.Equal(t, filepath.Join(siteDir, "content.db"), ds.path)
	ctx := context.Background()

	require.NoError(t, ds.Activate(ctx))
	defer ds.Deactivate(ctx)

	items, err := ds.Items(ctx)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestDataSource_InvalidAttributes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "site.db")
	seedDatabase(t, path, [][3]any{{"/", "home", "{not json"}}, nil)
	ds, err := New(path, DefaultItemsTable, DefaultLayoutsTable)
	require.NoError(t, err)
	ctx := context.Background()
	require.NoError(t, ds.Activate(ctx))
	defer ds.Deactivate(ctx)

	_, err = ds.Items(ctx)

	assert.Error(t, err)
}

func TestBuild_Validation(t *testing.T) {
	t.Run("path is required", func(t *testing.T) {
		_, err := Build(driven.DataSourceParams{Config: map[string]any{}})
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("table names are checked", func(t *testing.T) {
		_, err := Build(driven.DataSourceParams{Config: map[string]any{
			"path":        "x.db",
			"items_table": "items; DROP TABLE layouts",
		}})
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})
}
