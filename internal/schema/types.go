package schema

// ColumnInfo describes a single column in a table
type ColumnInfo struct {
	Name         string
	DataType     string // engine type name: varchar, int4, timestamptz, etc.
	IsNullable   bool
	IsPrimaryKey bool
	DefaultValue *string // nil if no default
}

// TableInfo describes a table and its columns, ordered by ordinal position
type TableInfo struct {
	Schema  string
	Name    string
	Columns []ColumnInfo
}
