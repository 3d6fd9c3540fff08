// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
//   - DataSource: Provides raw items and layouts
//   - DataSourceFactory: Creates data sources from site configuration
//   - ConfigReader: Parses one configuration document format
//
// # Optional Interfaces
//
// These can be nil - the site degrades gracefully:
//
//   - SnippetLoader / SnippetRunner: Without them, lib_dirs are ignored.
//   - CompilerBuilder: Without it, Compile reports the site cannot be compiled.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter or connector package
package driven
