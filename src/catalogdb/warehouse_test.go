/*
Copyright (c) Lakeshift Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package catalogdb

import (
	"errors"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lakeshift/lakeshift/src/utils/sqlname"
)

func newMockWarehouse(t *testing.T) (*WarehouseDB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewWarehouseDBWithConn(db), mock
}

func TestExecuteStatement(t *testing.T) {
	w, mock := newMockWarehouse(t)

	mock.ExpectExec("SYNC TABLE production.sales.fact FROM hive_metastore.sales.fact").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := w.ExecuteStatement("SYNC TABLE production.sales.fact FROM hive_metastore.sales.fact")
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestExecuteStatementFailure(t *testing.T) {
	w, mock := newMockWarehouse(t)

	mock.ExpectExec("CREATE OR REPLACE TABLE production.crm.customers DEEP CLONE hive_metastore.default.customers").
		WillReturnError(errors.New("PERMISSION_DENIED: user does not own the schema"))

	err := w.ExecuteStatement("CREATE OR REPLACE TABLE production.crm.customers DEEP CLONE hive_metastore.default.customers")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "PERMISSION_DENIED")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetAllTableNames(t *testing.T) {
	w, mock := newMockWarehouse(t)

	rows := sqlmock.NewRows([]string{"database", "tableName", "isTemporary"}).
		AddRow("analytics", "events", false).
		AddRow("analytics", "sessions", false).
		AddRow("analytics", "tmp_view", true).
		AddRow("analytics", "users", false)
	mock.ExpectQuery("SHOW TABLES IN hive_metastore.analytics").WillReturnRows(rows)

	tables, err := w.GetAllTableNames(sqlname.NewSchemaName("hive_metastore", "analytics"))
	require.NoError(t, err)
	assert.Equal(t, []string{"events", "sessions", "users"}, tables)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetAllTableNamesEmptySchema(t *testing.T) {
	w, mock := newMockWarehouse(t)

	rows := sqlmock.NewRows([]string{"database", "tableName", "isTemporary"})
	mock.ExpectQuery("SHOW TABLES IN hive_metastore.empty_schema").WillReturnRows(rows)

	tables, err := w.GetAllTableNames(sqlname.NewSchemaName("hive_metastore", "empty_schema"))
	require.NoError(t, err)
	assert.Empty(t, tables)
}

func TestTableExists(t *testing.T) {
	w, mock := newMockWarehouse(t)

	rows := sqlmock.NewRows([]string{"col_name", "data_type", "comment"}).
		AddRow("id", "bigint", "")
	mock.ExpectQuery("DESCRIBE TABLE production.sales.fact").WillReturnRows(rows)

	exists, err := w.TableExists(sqlname.NewTableName("production", "sales", "fact"))
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestTableExistsNotFound(t *testing.T) {
	w, mock := newMockWarehouse(t)

	mock.ExpectQuery("DESCRIBE TABLE production.sales.missing").
		WillReturnError(errors.New("[TABLE_OR_VIEW_NOT_FOUND] The table or view `production`.`sales`.`missing` cannot be found"))

	exists, err := w.TableExists(sqlname.NewTableName("production", "sales", "missing"))
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestTableExistsOtherError(t *testing.T) {
	w, mock := newMockWarehouse(t)

	mock.ExpectQuery("DESCRIBE TABLE production.sales.fact").
		WillReturnError(errors.New("connection reset by peer"))

	exists, err := w.TableExists(sqlname.NewTableName("production", "sales", "fact"))
	require.Error(t, err)
	assert.False(t, exists)
}
