// Package services implements the driving port interfaces.
//
// ConfigResolver turns a site directory into a layered Config by following
// the parent_config_file chain. DataSourceRegistry maps type names to data
// source builders. Site owns the content lifecycle: it loads code snippets,
// pulls every data source inside a single activation scope, validates the
// content graph and rolls back to the unloaded state on any failure.
//
// Services are pure Go and reach infrastructure only through driven ports.
package services
