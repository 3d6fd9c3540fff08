// Package domain defines the core entities of a folio site.
//
// This package is the innermost layer of the hexagonal architecture.
// It has NO external dependencies and defines the fundamental types:
//
//   - Identifier: A slash-delimited node address ("/blog/post1/")
//   - Node: An item or layout contributed by a data source
//   - Collection: The insertion-ordered owner of all nodes of one kind
//   - Config: The resolved, layered site configuration
//   - CodeSnippet: Auxiliary code loaded from a lib directory
//
// Parent/child links are derived from identifiers alone (LinkHierarchy) and
// stored as identifiers, never as a second ownership path.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
