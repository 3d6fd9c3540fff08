package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildCollection(t *testing.T, ids ...string) *Collection {
	t.Helper()
	c := NewCollection(KindItem)
	for _, id := range ids {
		require.NoError(t, c.Add(newItem(id)))
	}
	return c
}

func parentOf(t *testing.T, c *Collection, id Identifier) Identifier {
	t.Helper()
	n, ok := c.Get(id)
	require.True(t, ok, "missing node %s", id)
	p, _ := n.Parent()
	return p
}

func TestLinkHierarchy(t *testing.T) {
	c := buildCollection(t, "/", "/a/", "/a/b/", "/a/b/c.html")

	require.NoError(t, LinkHierarchy(c))

	assert.Equal(t, Identifier("/a/b/"), parentOf(t, c, "/a/b/c.html"))
	assert.Equal(t, Identifier("/a/"), parentOf(t, c, "/a/b/"))
	assert.Equal(t, Identifier("/"), parentOf(t, c, "/a/"))
	assert.Equal(t, Identifier(""), parentOf(t, c, "/"))

	root, _ := c.Get("/")
	assert.Contains(t, root.Children(), Identifier("/a/"))

	children := c.Children(root)
	require.Len(t, children, 1)
	assert.Equal(t, Identifier("/a/"), children[0].Identifier())

	leaf, _ := c.Get("/a/b/c.html")
	parent, ok := c.Parent(leaf)
	require.True(t, ok)
	assert.Equal(t, Identifier("/a/b/"), parent.Identifier())
}

func TestLinkHierarchy_ChildrenFollowCollectionOrder(t *testing.T) {
	c := buildCollection(t, "/z/", "/", "/b/", "/a/")

	require.NoError(t, LinkHierarchy(c))

	root, _ := c.Get("/")
	assert.Equal(t, []Identifier{"/z/", "/b/", "/a/"}, root.Children())
}

func TestLinkHierarchy_MissingParentStaysRoot(t *testing.T) {
	c := buildCollection(t, "/", "/docs/guide/", "/docs/guide/intro.md")

	require.NoError(t, LinkHierarchy(c))

	assert.Equal(t, Identifier(""), parentOf(t, c, "/docs/guide/"))
	assert.Equal(t, Identifier("/docs/guide/"), parentOf(t, c, "/docs/guide/intro.md"))

	var roots []Identifier
	for _, n := range c.Roots() {
		roots = append(roots, n.Identifier())
	}
	assert.Equal(t, []Identifier{"/", "/docs/guide/"}, roots)
}

func TestLinkHierarchy_NonFullNodesAreNotParents(t *testing.T) {
	c := buildCollection(t, "/", "/a", "/a/b/")

	require.NoError(t, LinkHierarchy(c))

	assert.Equal(t, Identifier("/"), parentOf(t, c, "/a"))
	assert.Equal(t, Identifier(""), parentOf(t, c, "/a/b/"))
}

func TestLinkHierarchy_Idempotent(t *testing.T) {
	c := buildCollection(t, "/", "/a/", "/b/")

	require.NoError(t, LinkHierarchy(c))
	require.NoError(t, LinkHierarchy(c))

	root, _ := c.Get("/")
	assert.Equal(t, []Identifier{"/a/", "/b/"}, root.Children())

	require.NoError(t, UnlinkHierarchy(c))
	assert.Empty(t, root.Children())
	assert.Equal(t, Identifier(""), parentOf(t, c, "/a/"))

	require.NoError(t, LinkHierarchy(c))
	assert.Equal(t, []Identifier{"/a/", "/b/"}, root.Children())
}

func TestLinkHierarchy_Frozen(t *testing.T) {
	c := buildCollection(t, "/", "/a/")
	require.NoError(t, LinkHierarchy(c))
	c.Freeze()

	assert.ErrorIs(t, LinkHierarchy(c), ErrFrozen)
	assert.ErrorIs(t, UnlinkHierarchy(c), ErrFrozen)
	assert.Equal(t, Identifier("/"), parentOf(t, c, "/a/"))
}
