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
package migration

import (
	"fmt"

	"github.com/lakeshift/lakeshift/src/errs"
	"github.com/lakeshift/lakeshift/src/utils/sqlname"
)

// TableLister is the collaborator used for schema-level expansion.
type TableLister interface {
	GetAllTableNames(schema sqlname.SchemaName) ([]string, error)
}

// MigrationTarget is a fully-specified migration of exactly one table,
// carrying the resolved three-part source and destination identifiers.
type MigrationTarget struct {
	Item           string
	MigrationType  MigrationType
	SyncAsExternal bool
	Owner          string
	Source         sqlname.TableName
	Destination    sqlname.TableName
}

/*
ResolveTargets turns a validated descriptor into fully-specified targets.

	A table-level descriptor resolves to exactly one target. A schema-level
	descriptor (no source-table) expands into one target per table found in
	the source schema, each inheriting the parent's destination catalog,
	owner and flags; the destination table name equals the source table
	name. A schema with no tables is a ResolutionError.
*/
func ResolveTargets(rm *ResolvedMigration, settings GlobalSettings, lister TableLister) ([]MigrationTarget, error) {
	sourceCatalog := settings.SourceCatalogName()

	if !rm.IsSchemaLevel() {
		target := MigrationTarget{
			Item:           rm.Item,
			MigrationType:  rm.MigrationType,
			SyncAsExternal: rm.SyncAsExternal,
			Owner:          rm.Owner,
			Source:         sqlname.NewTableName(sourceCatalog, rm.SourceSchema, rm.SourceTable),
			Destination:    sqlname.NewTableName(rm.DestinationCatalog, rm.DestinationSchema, rm.DestinationTable),
		}
		return []MigrationTarget{target}, nil
	}

	schema := sqlname.NewSchemaName(sourceCatalog, rm.SourceSchema)
	tableNames, err := lister.GetAllTableNames(schema)
	if err != nil {
		return nil, errs.NewResolutionError(rm.Item, fmt.Errorf("list tables of schema %s: %w", schema, err))
	}
	if len(tableNames) == 0 {
		return nil, errs.NewResolutionError(rm.Item, fmt.Errorf("no tables found in schema %s", schema))
	}

	targets := make([]MigrationTarget, 0, len(tableNames))
	for _, tableName := range tableNames {
		targets = append(targets, MigrationTarget{
			Item:           rm.Item + "/" + tableName,
			MigrationType:  rm.MigrationType,
			SyncAsExternal: rm.SyncAsExternal,
			Owner:          rm.Owner,
			Source:         sqlname.NewTableName(sourceCatalog, rm.SourceSchema, tableName),
			Destination:    sqlname.NewTableName(rm.DestinationCatalog, rm.DestinationSchema, tableName),
		})
	}
	return targets, nil
}
