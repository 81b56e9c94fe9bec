package gen

import "strings"

// tsType maps an engine data type name (information_schema data_type, from
// either MySQL or Postgres) to the TypeScript type used in the generated
// declarations. Unrecognized types fall back to any.
func tsType(dataType string) string {
	switch strings.ToLower(dataType) {
	case "char", "varchar", "tinytext", "text", "mediumtext", "longtext",
		"character", "character varying", "citext", "name", "uuid",
		"enum", "set", "time", "time without time zone", "time with time zone",
		"interval", "inet", "cidr", "macaddr", "xml":
		return "string"

	case "int", "integer", "smallint", "mediumint", "bigint",
		"int2", "int4", "int8", "serial", "bigserial",
		"decimal", "numeric", "float", "double", "real",
		"double precision", "float4", "float8", "money", "year":
		return "number"

	// MySQL has no native boolean; BOOL columns surface as tinyint.
	case "bool", "boolean", "tinyint":
		return "boolean"

	case "date", "datetime", "timestamp",
		"timestamp without time zone", "timestamp with time zone",
		"timestamptz":
		return "Date"

	case "binary", "varbinary", "tinyblob", "blob", "mediumblob", "longblob",
		"bytea", "bit":
		return "Buffer"

	case "json", "jsonb":
		return "Object"

	default:
		return "any"
	}
}
