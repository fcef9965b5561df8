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
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/databricks/databricks-sql-go"
	"github.com/samber/lo"
	log "github.com/sirupsen/logrus"

	"github.com/lakeshift/lakeshift/src/utils/sqlname"
)

// WarehouseDB talks to the catalog service through a SQL warehouse
// endpoint over database/sql.
type WarehouseDB struct {
	driver string
	dsn    string
	db     *sql.DB
}

func NewWarehouseDB(driver, dsn string) *WarehouseDB {
	if driver == "" {
		driver = "databricks"
	}
	return &WarehouseDB{driver: driver, dsn: dsn}
}

// NewWarehouseDBWithConn wraps an already-open connection. Used by tests.
func NewWarehouseDBWithConn(db *sql.DB) *WarehouseDB {
	return &WarehouseDB{db: db}
}

func (w *WarehouseDB) Connect() error {
	if w.db != nil {
		return nil
	}
	db, err := sql.Open(w.driver, w.dsn)
	if err != nil {
		return fmt.Errorf("open %s connection to warehouse: %w", w.driver, err)
	}
	err = db.Ping()
	if err != nil {
		db.Close()
		return fmt.Errorf("ping warehouse: %w", err)
	}
	w.db = db
	return nil
}

func (w *WarehouseDB) Disconnect() {
	if w.db == nil {
		return
	}
	err := w.db.Close()
	if err != nil {
		log.Errorf("failed to close connection to the warehouse: %v", err)
	}
}

func (w *WarehouseDB) ExecuteStatement(stmt string) error {
	log.Infof("executing statement: %s", stmt)
	_, err := w.db.Exec(stmt)
	if err != nil {
		return fmt.Errorf("run statement %q against the warehouse: %w", stmt, err)
	}
	return nil
}

// GetAllTableNames lists the tables currently present under a schema.
// SHOW TABLES returns (database, tableName, isTemporary); temporary views
// are not migratable and are filtered out.
func (w *WarehouseDB) GetAllTableNames(schema sqlname.SchemaName) ([]string, error) {
	query := fmt.Sprintf("SHOW TABLES IN %s", schema.MinQuoted())
	log.Infof("executing query: %s", query)
	rows, err := w.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("query table names of schema %s: %w", schema, err)
	}
	defer rows.Close()

	var tableNames []string
	for rows.Next() {
		var database, tableName string
		var isTemporary bool
		err = rows.Scan(&database, &tableName, &isTemporary)
		if err != nil {
			return nil, fmt.Errorf("scan table name row for schema %s: %w", schema, err)
		}
		if isTemporary {
			continue
		}
		tableNames = append(tableNames, tableName)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("iterate table name rows for schema %s: %w", schema, rows.Err())
	}
	return tableNames, nil
}

// Error markers the service reports for a missing table. Anything else is
// treated as a real failure, not as absence.
var tableNotFoundMarkers = []string{
	"TABLE_OR_VIEW_NOT_FOUND",
	"Table or view not found",
}

func (w *WarehouseDB) TableExists(table sqlname.TableName) (bool, error) {
	query := fmt.Sprintf("DESCRIBE TABLE %s", table.MinQuoted())
	rows, err := w.db.Query(query)
	if err != nil {
		if lo.SomeBy(tableNotFoundMarkers, func(marker string) bool {
			return strings.Contains(err.Error(), marker)
		}) {
			return false, nil
		}
		return false, fmt.Errorf("describe table %s: %w", table, err)
	}
	rows.Close()
	return true, nil
}
