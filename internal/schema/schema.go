// Package schema reads table and column structure out of a database's
// information_schema catalog.
package schema

import "context"

// Reader is the interface for introspecting a database schema
type Reader interface {
	// ListTables returns all user-defined base table names in the given
	// schema (e.g. "public"), sorted lexicographically
	ListTables(ctx context.Context, schema string) ([]string, error)

	// InspectTable returns full column info for a table
	InspectTable(ctx context.Context, schema, table string) (*TableInfo, error)
}
