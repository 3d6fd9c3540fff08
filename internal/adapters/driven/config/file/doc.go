// Package file provides file-based implementations of driven port interfaces.
// These adapters read site configuration documents from the local filesystem.
//
// Adapters:
//   - YAMLReader: YAML configuration documents (folio.yaml, config.yaml)
//   - TOMLReader: TOML configuration documents (folio.toml)
package file
