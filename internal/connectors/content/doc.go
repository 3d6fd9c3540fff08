// Package content holds helpers shared by the data source connectors:
// mapping file paths to identifiers, splitting YAML front matter from
// text content and reading typed values from generic config maps.
package content
