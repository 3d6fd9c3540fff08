// Package connectors provides the data source implementations a site pulls
// items and layouts from. Each subpackage knows how to read one kind of
// backend (local files, inline configuration, SQLite, GitHub).
//
// Data sources are registered with the DataSourceFactory at startup.
package connectors
