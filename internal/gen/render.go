package gen

import (
	"fmt"
	"strings"

	"github.com/koustreak/tablegen/internal/schema"
)

const generatedHeader = "// Code generated by tablegen. DO NOT EDIT.\n"

// indexImportAlias is the namespace alias under which the index artifact
// imports the declarations artifact. The naming convention of both files
// must stay consistent: the index references types by this alias.
const indexImportAlias = "dbt"

// RenderTables renders the type-declarations artifact: one exported
// interface per table, fields in column (ordinal) order with
// lowerCamel-normalized names, nullable columns widened with `| null`.
//
// Output is deterministic: the same table list in the same order always
// produces byte-identical text.
func RenderTables(tables []schema.TableInfo) string {
	var b strings.Builder
	b.WriteString(generatedHeader)

	for _, t := range tables {
		b.WriteString("\n")
		fmt.Fprintf(&b, "export interface %s {\n", UpperCamel(t.Name))
		for _, col := range t.Columns {
			if col.IsPrimaryKey {
				b.WriteString("  /** Primary key. */\n")
			}
			ts := tsType(col.DataType)
			if col.IsNullable {
				ts += " | null"
			}
			fmt.Fprintf(&b, "  %s: %s;\n", LowerCamel(col.Name), ts)
		}
		b.WriteString("}\n")
	}

	return b.String()
}

// RenderIndex renders the index artifact for the given table names:
// a mapping interface with one `name: dbt.Type;` entry per table and a
// string-literal-union type over the normalized names.
//
// With zero tables the mapping body is empty and the union renders as
// `never`, the uninhabited type, so downstream code still compiles.
func RenderIndex(tableNames []string, declarationsImport string) string {
	var b strings.Builder
	b.WriteString(generatedHeader)

	b.WriteString("\n")
	fmt.Fprintf(&b, "import * as %s from '%s';\n", indexImportAlias, declarationsImport)

	b.WriteString("\nexport interface Tables {\n")
	for _, name := range tableNames {
		fmt.Fprintf(&b, "  %s: %s.%s;\n", LowerCamel(name), indexImportAlias, UpperCamel(name))
	}
	b.WriteString("}\n")

	if len(tableNames) == 0 {
		b.WriteString("\nexport type TableName = never;\n")
		return b.String()
	}

	literals := make([]string, len(tableNames))
	for i, name := range tableNames {
		literals[i] = fmt.Sprintf("%q", LowerCamel(name))
	}
	fmt.Fprintf(&b, "\nexport type TableName = %s;\n", strings.Join(literals, " | "))

	return b.String()
}
