package filesystem

import (
	"context"
	"os"
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

func writeFile(t *testing.T, path, data string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(data), 0600))
}

func activated(t *testing.T, ds *DataSource) *DataSource {
	t.Helper()
	require.NoError(t, ds.Activate(context.Background()))
	t.Cleanup(func() { _ = ds.Deactivate(context.Background()) })
	return ds
}

func byIdentifier(nodes []domain.RawNode) map[domain.Identifier]domain.RawNode {
	out := make(map[domain.Identifier]domain.RawNode, len(nodes))
	for _, n := range nodes {
		out[n.Identifier] = n
	}
	return out
}

func TestBuild(t *testing.T) {
	site := stubSite{cfg: domain.NewConfig(map[string]any{
		"site_dir":        "/srv/site",
		"text_extensions": []any{"html"},
	})}

	t.Run("defaults", func(t *testing.T) {
		ds, err := Build(driven.DataSourceParams{Site: site, Config: map[string]any{}})
		require.NoError(t, err)

		fsds := ds.(*DataSource)
		assert.Equal(t, "/srv/site/content", fsds.contentDir)
		assert.Equal(t, "/srv/site/layouts", fsds.layoutsDir)
		assert.Equal(t, []string{"html"}, fsds.textExtensions)
		assert.Equal(t, []string{"/srv/site/content", "/srv/site/layouts"}, fsds.WatchRoots())
	})

	t.Run("overrides", func(t *testing.T) {
		ds, err := Build(driven.DataSourceParams{Site: site, Config: map[string]any{
			"content_dir":     "pages",
			"layouts_dir":     "/opt/themes",
			"text_extensions": []any{"md"},
		}})
		require.NoError(t, err)

		fsds := ds.(*DataSource)
		assert.Equal(t, "/srv/site/pages", fsds.contentDir)
		assert.Equal(t, "/opt/themes", fsds.layoutsDir)
		assert.Equal(t, []string{"md"}, fsds.textExtensions)
	})
}

func TestDataSource_Items(t *testing.T) {
	root := t.TempDir()
	contentDir := filepath.Join(root, "content")
	writeFile(t, filepath.Join(contentDir, "index.html"), "home")
	writeFile(t, filepath.Join(contentDir, "about.html"), "---\ntitle: About\n---\nabout us\n")
	writeFile(t, filepath.Join(contentDir, "blog", "index.md"), "blog")
	writeFile(t, filepath.Join(contentDir, "blog", "post1.md"), "post")
	writeFile(t, filepath.Join(contentDir, "logo.png"), "\x89PNG")
	writeFile(t, filepath.Join(contentDir, ".git", "HEAD"), "ref")
	writeFile(t, filepath.Join(contentDir, "draft.md~"), "backup")

	ds := activated(t, New(contentDir, filepath.Join(root, "layouts"), []string{"html", "md"}))

	nodes, err := ds.Items(context.Background())

	require.NoError(t, err)
	items := byIdentifier(nodes)
	assert.Len(t, items, 5)

	home := items["/"]
	assert.Equal(t, "home", home.Content)
	assert.False(t, home.Binary)
	assert.Equal(t, filepath.Join(contentDir, "index.html"), home.Attributes["filename"])
	assert.Equal(t, "html", home.Attributes["extension"])
	assert.NotEmpty(t, home.Attributes["mtime"])
	assert.Equal(t, "index", home.Attributes["title"])

	about := items["/about/"]
	assert.Equal(t, "about us\n", about.Content)
	assert.Equal(t, "About", about.Attributes["title"])

	assert.Equal(t, "blog", items["/blog/"].Content)
	assert.Equal(t, "blog", items["/blog/"].Attributes["title"])
	assert.Equal(t, "post1", items["/blog/post1/"].Attributes["title"])
	assert.Equal(t, "post", items["/blog/post1/"].Content)

	logo := items["/logo/"]
	assert.True(t, logo.Binary)
	assert.Empty(t, logo.Content)
	assert.Equal(t, filepath.Join(contentDir, "logo.png"), logo.Attributes["content_filename"])

	_, hasBackup := items["/draft/"]
	assert.False(t, hasBackup, "editor backups are skipped")
}

func TestDataSource_Layouts(t *testing.T) {
	root := t.TempDir()
	layoutsDir := filepath.Join(root, "layouts")
	writeFile(t, filepath.Join(layoutsDir, "default.html"), "<html><%= yield %></html>")

	ds := activated(t, New(filepath.Join(root, "content"), layoutsDir, []string{"html"}))

	nodes, err := ds.Layouts(context.Background())

	require.NoError(t, err)
	require.Len(t, nodes, 1)
	assert.Equal(t, domain.Identifier("/default/"), nodes[0].Identifier)
}

func TestDataSource_MissingDirectories(t *testing.T) {
	root := t.TempDir()
	ds := activated(t, New(filepath.Join(root, "content"), filepath.Join(root, "layouts"), nil))

	items, err := ds.Items(context.Background())
	require.NoError(t, err)
	assert.Empty(t, items)

	layouts, err := ds.Layouts(context.Background())
	require.NoError(t, err)
	assert.Empty(t, layouts)
}

func TestDataSource_NotActivated(t *testing.T) {
	ds := New(t.TempDir(), t.TempDir(), nil)

	_, err := ds.Items(context.Background())
	assert.ErrorIs(t, err, domain.ErrNotActivated)

	_, err = ds.Layouts(context.Background())
	assert.ErrorIs(t, err, domain.ErrNotActivated)
}

func TestDataSource_ActivateRejectsFile(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "content")
	writeFile(t, path, "not a directory")

	err := New(path, filepath.Join(root, "layouts"), nil).Activate(context.Background())

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestDataSource_InvalidFrontMatter(t *testing.T) {
	root := t.TempDir()
	contentDir := filepath.Join(root, "content")
	writeFile(t, filepath.Join(contentDir, "bad.md"), "---\ntitle: [oops\n---\nbody")

	ds := activated(t, New(contentDir, filepath.Join(root, "layouts"), []string{"md"}))

	_, err := ds.Items(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad.md")
}

func TestIsHidden(t *testing.T) {
	tests := []struct {
		path     string
		expected bool
	}{
		{".hidden", true},
		{"dir/.git/config", true},
		{".config/.cache/data", true},
		{"file.txt", false},
		{"path/to/file.txt", false},
		{"directory.name/file", false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.expected, isHidden(tt.path))
		})
	}
}

func TestIsBackup(t *testing.T) {
	assert.True(t, isBackup("blog/post.md~"))
	assert.True(t, isBackup("#post.md#"))
	assert.False(t, isBackup("post.md"))
}

func TestInfo(t *testing.T) {
	info := Info()

	assert.Equal(t, TypeID, info.ID)
	assert.NotEmpty(t, info.ConfigKeys)
}
