package sqlname

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTableNameQualified(t *testing.T) {
	tbl := NewTableName("hive_metastore", "sales", "fact")
	assert.Equal(t, "hive_metastore.sales.fact", tbl.Qualified())
	assert.Equal(t, "hive_metastore.sales.fact", tbl.MinQuoted())
	assert.Equal(t, "hive_metastore.sales.fact", tbl.String())
}

func TestSchemaNameQualified(t *testing.T) {
	s := NewSchemaName("production", "analytics_uc")
	assert.Equal(t, "production.analytics_uc", s.Qualified())
	assert.Equal(t, "production.analytics_uc", s.MinQuoted())
}

func TestMinQuote(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"sales_fact", "sales_fact"},
		{"SalesFact", "SalesFact"},
		{"order-items", "`order-items`"},
		{"2022 backup", "`2022 backup`"},
		{"we`ird", "`we``ird`"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, MinQuote(tt.input))
	}
}

func TestMinQuotedMixed(t *testing.T) {
	tbl := NewTableName("hive_metastore", "default", "order-items")
	assert.Equal(t, "hive_metastore.default.`order-items`", tbl.MinQuoted())
}

func TestNewTableNameFromQualifiedName(t *testing.T) {
	tbl := NewTableNameFromQualifiedName("prod.sales.fact")
	assert.Equal(t, "prod", tbl.Catalog)
	assert.Equal(t, "sales", tbl.Schema)
	assert.Equal(t, "fact", tbl.Table)

	assert.Panics(t, func() { NewTableNameFromQualifiedName("sales.fact") })
}
