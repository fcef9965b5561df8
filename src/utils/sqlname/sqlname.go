package sqlname

import (
	"fmt"
	"strings"
)

// Identifiers in the catalog are three-part: catalog.schema.table.
// Names are kept unquoted internally; quoting is applied only when an
// identifier needs it in rendered statements.

type SchemaName struct {
	Catalog string
	Schema  string
}

func NewSchemaName(catalog, schema string) SchemaName {
	if catalog == "" || schema == "" {
		panic("catalog and schema names cannot be empty")
	}
	return SchemaName{Catalog: catalog, Schema: schema}
}

func (s SchemaName) Qualified() string {
	return s.Catalog + "." + s.Schema
}

func (s SchemaName) MinQuoted() string {
	return MinQuote(s.Catalog) + "." + MinQuote(s.Schema)
}

func (s SchemaName) String() string {
	return s.Qualified()
}

type TableName struct {
	SchemaName
	Table string
}

func NewTableName(catalog, schema, table string) TableName {
	if table == "" {
		panic("table name cannot be empty")
	}
	return TableName{SchemaName: NewSchemaName(catalog, schema), Table: table}
}

func (t TableName) Qualified() string {
	return t.SchemaName.Qualified() + "." + t.Table
}

func (t TableName) MinQuoted() string {
	return t.SchemaName.MinQuoted() + "." + MinQuote(t.Table)
}

func (t TableName) String() string {
	return t.Qualified()
}

func NewTableNameFromQualifiedName(qualifiedName string) TableName {
	parts := strings.Split(qualifiedName, ".")
	if len(parts) != 3 {
		panic(fmt.Sprintf("invalid qualified table name: %s", qualifiedName))
	}
	return NewTableName(parts[0], parts[1], parts[2])
}

// Quote wraps an identifier in backticks, doubling any embedded backticks.
func Quote(s string) string {
	return "`" + strings.ReplaceAll(s, "`", "``") + "`"
}

// MinQuote quotes an identifier only when it needs quoting.
func MinQuote(s string) string {
	if isPlainIdentifier(s) {
		return s
	}
	return Quote(s)
}

func isPlainIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for _, c := range s {
		ok := c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
		if !ok {
			return false
		}
	}
	return true
}
