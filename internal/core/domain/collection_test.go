package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newItem(id string) *Node {
	return NewNode(KindItem, RawNode{Identifier: Identifier(id)})
}

func TestCollection_AddKeepsInsertionOrder(t *testing.T) {
	c := NewCollection(KindItem)
	require.NoError(t, c.Add(newItem("/b/")))
	require.NoError(t, c.Add(newItem("/a/")))
	require.NoError(t, c.Add(newItem("/c/")))

	var ids []Identifier
	for _, n := range c.All() {
		ids = append(ids, n.Identifier())
	}
	assert.Equal(t, []Identifier{"/b/", "/a/", "/c/"}, ids)
	assert.Equal(t, 3, c.Len())
	assert.Equal(t, KindItem, c.Kind())
}

func TestCollection_ContainsAndGet(t *testing.T) {
	c := NewCollection(KindLayout)
	require.NoError(t, c.Add(newItem("/default/")))

	assert.True(t, c.Contains("/default/"))
	assert.False(t, c.Contains("/missing/"))

	n, ok := c.Get("/default/")
	require.True(t, ok)
	assert.Equal(t, Identifier("/default/"), n.Identifier())
}

func TestCollection_AddAllowsDuplicatesUntilValidated(t *testing.T) {
	c := NewCollection(KindItem)
	require.NoError(t, c.Add(newItem("/about/")))
	require.NoError(t, c.Add(newItem("/contact/")))
	require.NoError(t, c.Add(newItem("/about/")))
	assert.Equal(t, 3, c.Len())

	err := c.ValidateUnique()

	require.ErrorIs(t, err, ErrDuplicateIdentifier)
	var dup *DuplicateIdentifierError
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, Identifier("/about/"), dup.Identifier)
	assert.Equal(t, KindItem, dup.Kind)
}

func TestCollection_ValidateUnique_ReportsFirstRepeat(t *testing.T) {
	c := NewCollection(KindLayout)
	for _, id := range []string{"/a/", "/b/", "/b/", "/a/"} {
		require.NoError(t, c.Add(newItem(id)))
	}

	var dup *DuplicateIdentifierError
	require.ErrorAs(t, c.ValidateUnique(), &dup)
	assert.Equal(t, Identifier("/b/"), dup.Identifier)
	assert.Equal(t, KindLayout, dup.Kind)
}

func TestCollection_ValidateUnique_Distinct(t *testing.T) {
	c := NewCollection(KindItem)
	require.NoError(t, c.Add(newItem("/a/")))
	require.NoError(t, c.Add(newItem("/b/")))

	assert.NoError(t, c.ValidateUnique())
}

func TestCollection_Freeze(t *testing.T) {
	c := NewCollection(KindItem)
	n := newItem("/a/")
	require.NoError(t, c.Add(n))

	c.Freeze()

	assert.True(t, c.Frozen())
	assert.True(t, n.Frozen())
	assert.ErrorIs(t, c.Add(newItem("/b/")), ErrFrozen)
	assert.ErrorIs(t, n.SetIdentifier("/c/"), ErrFrozen)
	assert.ErrorIs(t, n.SetContent("x"), ErrFrozen)
	assert.ErrorIs(t, n.SetAttribute("k", "v"), ErrFrozen)
	assert.ErrorIs(t, n.Mount(nil, "/blog/"), ErrFrozen)
	assert.Equal(t, Identifier("/a/"), n.Identifier())
}

func TestNode_AttributesAreCopied(t *testing.T) {
	attrs := map[string]any{"title": "Hello", "tags": []any{"go"}}
	n := NewNode(KindItem, RawNode{Identifier: "/a/", Attributes: attrs})

	attrs["title"] = "Changed"
	got := n.Attributes()
	got["title"] = "Also changed"

	title, ok := n.Attribute("title")
	require.True(t, ok)
	assert.Equal(t, "Hello", title)
}

func TestNode_Mount(t *testing.T) {
	n := NewNode(KindItem, RawNode{Identifier: "/post1/"})
	site := stubSite{}

	require.NoError(t, n.Mount(site, "/blog/"))

	assert.Equal(t, Identifier("/blog/post1/"), n.Identifier())
	assert.Equal(t, site, n.Site())

	t.Run("identifier without leading separator", func(t *testing.T) {
		tests := []struct {
			raw  Identifier
			root string
			want Identifier
		}{
			{"post1/", "/blog/", "/blog/post1/"},
			{"post1/", "/blog", "/blog/post1/"},
			{"post1/", "/", "/post1/"},
			{"feed.xml", "/blog/", "/blog/feed.xml"},
		}
		for _, tt := range tests {
			n := NewNode(KindItem, RawNode{Identifier: tt.raw})
			require.NoError(t, n.Mount(site, tt.root))
			assert.Equal(t, tt.want, n.Identifier(), "%s mounted at %s", tt.raw, tt.root)
		}
	})
}

type stubSite struct{}

func (stubSite) Config() *Config { return NewConfig(nil) }

func (stubSite) SnippetValues() map[string]any { return map[string]any{} }
