package domain

// NodeKind distinguishes items from layouts.
type NodeKind string

const (
	// KindItem is a piece of site content.
	KindItem NodeKind = "item"

	// KindLayout is a layout that content can be rendered through.
	KindLayout NodeKind = "layout"
)

// SiteRef is the read-only view of the owning site that nodes and data sources receive.
type SiteRef interface {
	// Config returns the resolved site configuration.
	Config() *Config

	// SnippetValues returns a copy of the values code snippets shared while
	// the site loaded. Empty when the site runs no snippets.
	SnippetValues() map[string]any
}

// RawNode is what a data source returns before it is mounted.
// The identifier is relative to the data source's mount root.
type RawNode struct {
	// Identifier is the node address, not yet prefixed by the mount root.
	Identifier Identifier

	// Content is the raw text content. Empty for binary nodes.
	Content string

	// Attributes contains data-source specific key-value pairs.
	Attributes map[string]any

	// Binary indicates the content lives outside memory (see "content_filename").
	Binary bool
}

// Node is one addressable unit of content (an item or a layout).
// Parent and children are identifiers into the owning Collection, never pointers.
type Node struct {
	kind       NodeKind
	identifier Identifier
	content    string
	attributes map[string]any
	binary     bool
	site       SiteRef

	parent   Identifier
	children []Identifier

	frozen bool
}

// NewNode creates a node of the given kind from raw data source output.
// Attributes are copied so the data source cannot mutate them afterwards.
func NewNode(kind NodeKind, raw RawNode) *Node {
	return &Node{
		kind:       kind,
		identifier: raw.Identifier,
		content:    raw.Content,
		attributes: cloneMap(raw.Attributes),
		binary:     raw.Binary,
	}
}

// Kind returns whether this is an item or a layout.
func (n *Node) Kind() NodeKind { return n.kind }

// Identifier returns the node address.
func (n *Node) Identifier() Identifier { return n.identifier }

// Content returns the raw content.
func (n *Node) Content() string { return n.content }

// Binary reports whether the node is binary.
func (n *Node) Binary() bool { return n.binary }

// Site returns the owning site, or nil before the node is mounted.
func (n *Node) Site() SiteRef { return n.site }

// Attribute returns a single attribute value.
func (n *Node) Attribute(key string) (any, bool) {
	v, ok := n.attributes[key]
	return v, ok
}

// Attributes returns a deep copy of all attributes.
func (n *Node) Attributes() map[string]any {
	return cloneMap(n.attributes)
}

// Parent returns the parent identifier, if the node has a parent.
func (n *Node) Parent() (Identifier, bool) {
	return n.parent, n.parent != ""
}

// Children returns the identifiers of child nodes in link order.
func (n *Node) Children() []Identifier {
	out := make([]Identifier, len(n.children))
	copy(out, n.children)
	return out
}

// Frozen reports whether the node rejects mutation.
func (n *Node) Frozen() bool { return n.frozen }

// SetIdentifier changes the node address.
func (n *Node) SetIdentifier(id Identifier) error {
	if n.frozen {
		return ErrFrozen
	}
	n.identifier = id
	return nil
}

// SetContent replaces the raw content.
func (n *Node) SetContent(content string) error {
	if n.frozen {
		return ErrFrozen
	}
	n.content = content
	return nil
}

// SetAttribute stores a single attribute value.
func (n *Node) SetAttribute(key string, value any) error {
	if n.frozen {
		return ErrFrozen
	}
	if n.attributes == nil {
		n.attributes = make(map[string]any)
	}
	n.attributes[key] = value
	return nil
}

// Mount binds the node to its owning site and prefixes its identifier with root.
func (n *Node) Mount(site SiteRef, root string) error {
	if n.frozen {
		return ErrFrozen
	}
	n.site = site
	n.identifier = n.identifier.WithRoot(root)
	return nil
}

func (n *Node) clearLinks() {
	n.parent = ""
	n.children = nil
}
