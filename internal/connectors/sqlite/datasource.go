// Package sqlite provides a data source that reads items and layouts from
// tables of a SQLite database.
//
// Each table has the columns identifier TEXT, content TEXT and attributes
// TEXT holding a JSON object (nullable). A binary column is optional.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"regexp"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/custodia-labs/folio/internal/connectors/content"
	"github.com/custodia-labs/folio/internal/core/domain"
	"github.com/custodia-labs/folio/internal/core/ports/driven"
	"github.com/custodia-labs/folio/internal/logger"
)

// TypeID is the data source type name used in site configuration.
const TypeID = "sqlite"

// Default table names.
const (
	DefaultItemsTable   = "items"
	DefaultLayoutsTable = "layouts"
)

// Ensure DataSource implements the interface.
var _ driven.DataSource = (*DataSource)(nil)

var tableName = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// DataSource pulls nodes from a SQLite database. The database is only open
// between Activate and Deactivate.
type DataSource struct {
	path         string
	itemsTable   string
	layoutsTable string
	createTables bool

	db *sql.DB
}

// New creates a SQLite data source for the database file at path.
func New(path, itemsTable, layoutsTable string) (*DataSource, error) {
	for _, table := range []string{itemsTable, layoutsTable} {
		if !tableName.MatchString(table) {
			return nil, fmt.Errorf("%w: sqlite table name %q", domain.ErrInvalidInput, table)
		}
	}
	return &DataSource{path: path, itemsTable: itemsTable, layoutsTable: layoutsTable}, nil
}

// Build creates a data source from a configured mount.
func Build(params driven.DataSourceParams) (driven.DataSource, error) {
	cfg := params.Config
	path, err := content.Require(cfg, TypeID, "path")
	if err != nil {
		return nil, err
	}
	ds, err := New(
		content.ResolvePath(params.Site, path),
		content.String(cfg, "items_table", DefaultItemsTable),
		content.String(cfg, "layouts_table", DefaultLayoutsTable),
	)
	if err != nil {
		return nil, err
	}
	ds.createTables = content.Bool(cfg, "create_tables", false)
	return ds, nil
}

// Info describes the SQLite data source type.
func Info() domain.DataSourceType {
	return domain.DataSourceType{
		ID:          TypeID,
		Name:        "SQLite",
		Description: "Items and layouts stored in SQLite tables",
		ConfigKeys: []domain.ConfigKey{
			{Key: "path", Description: "Database file, relative to the site directory", Required: true},
			{Key: "items_table", Description: "Table holding items", Default: DefaultItemsTable},
			{Key: "layouts_table", Description: "Table holding layouts", Default: DefaultLayoutsTable},
			{Key: "create_tables", Description: "Create missing tables on activation", Default: "false"},
		},
	}
}

// Type returns the data source type identifier.
func (d *DataSource) Type() string {
	return TypeID
}

// Activate opens the database.
func (d *DataSource) Activate(ctx context.Context) error {
	if d.db != nil {
		return nil
	}

	mode := "rwc"
	if !d.createTables {
		mode = "ro"
		if _, err := os.Stat(d.path); err != nil {
			return fmt.Errorf("sqlite: opening %s: %w", d.path, err)
		}
	}
	db, err := sql.Open("sqlite", "file:"+d.path+"?mode="+mode+"&_pragma=busy_timeout(5000)")
	if err != nil {
		return fmt.Errorf("sqlite: opening %s: %w", d.path, err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return fmt.Errorf("sqlite: opening %s: %w", d.path, err)
	}

	if d.createTables {
		for _, table := range []string{d.itemsTable, d.layoutsTable} {
			if err := EnsureTable(ctx, db, table); err != nil {
				db.Close()
				return err
			}
		}
	}

	logger.Debug("SQLite data source: opened %s", d.path)
	d.db = db
	return nil
}

// Deactivate closes the database.
func (d *DataSource) Deactivate(_ context.Context) error {
	if d.db == nil {
		return nil
	}
	err := d.db.Close()
	d.db = nil
	if err != nil {
		return fmt.Errorf("sqlite: closing %s: %w", d.path, err)
	}
	return nil
}

// Items returns the rows of the items table.
func (d *DataSource) Items(ctx context.Context) ([]domain.RawNode, error) {
	return d.query(ctx, d.itemsTable)
}

// Layouts returns the rows of the layouts table.
func (d *DataSource) Layouts(ctx context.Context) ([]domain.RawNode, error) {
	return d.query(ctx, d.layoutsTable)
}

func (d *DataSource) query(ctx context.Context, table string) ([]domain.RawNode, error) {
	if d.db == nil {
		return nil, domain.ErrNotActivated
	}

	// Table names are validated in New.
	rows, err := d.db.QueryContext(ctx,
		"SELECT identifier, content, attributes FROM "+table+" ORDER BY rowid")
	if err != nil {
		return nil, fmt.Errorf("sqlite: querying %s: %w", table, err)
	}
	defer rows.Close()

	var nodes []domain.RawNode
	for rows.Next() {
		var (
			id      string
			body    sql.NullString
			attrsJS sql.NullString
		)
		if err := rows.Scan(&id, &body, &attrsJS); err != nil {
			return nil, fmt.Errorf("sqlite: scanning %s: %w", table, err)
		}

		node := domain.RawNode{Identifier: domain.Identifier(id), Content: body.String}
		if attrsJS.Valid && attrsJS.String != "" && attrsJS.String != "null" {
			if err := json.Unmarshal([]byte(attrsJS.String), &node.Attributes); err != nil {
				return nil, fmt.Errorf("sqlite: %s row %s: attributes: %w", table, id, err)
			}
		}
		if b, ok := node.Attributes["binary"].(bool); ok {
			node.Binary = b
			delete(node.Attributes, "binary")
		}
		nodes = append(nodes, node)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: reading %s: %w", table, err)
	}
	return nodes, nil
}

// EnsureTable creates a node table with the expected columns if it does not exist.
func EnsureTable(ctx context.Context, db *sql.DB, table string) error {
	if !tableName.MatchString(table) {
		return fmt.Errorf("%w: sqlite table name %q", domain.ErrInvalidInput, table)
	}
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS `+table+` (
			identifier TEXT NOT NULL,
			content    TEXT,
			attributes TEXT
		)
	`)
	if err != nil {
		return fmt.Errorf("sqlite: creating table %s: %w", table, err)
	}
	return nil
}
