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
	"strings"

	"github.com/samber/lo"

	"github.com/lakeshift/lakeshift/src/errs"
)

/*
ValidateDescriptor checks one descriptor for required fields, recognized
enum values and mutually-consistent options, and fills in defaults.

	It has no side effects and never touches the catalog. position is the
	descriptor's index in the config list, used to label unnamed
	descriptors in errors.
*/
func ValidateDescriptor(d MigrationDescriptor, position int) (*ResolvedMigration, error) {
	item := d.Identity(position)

	requiredFields := []struct {
		field string
		value string
	}{
		{"migration-type", string(d.MigrationType)},
		{"source-schema", d.SourceSchema},
		{"destination-catalog", d.DestinationCatalog},
		{"destination-schema", d.DestinationSchema},
		{"owner", d.Owner},
	}
	for _, required := range requiredFields {
		if strings.TrimSpace(required.value) == "" {
			return nil, errs.NewValidationError(item, required.field, "required field is missing or empty")
		}
	}

	if !lo.Contains(supportedMigrationTypes, d.MigrationType) {
		return nil, errs.NewValidationError(item, "migration-type",
			fmt.Sprintf("unsupported value %q, must be one of %v", d.MigrationType, supportedMigrationTypes))
	}
	if d.SyncAsExternal && d.MigrationType != SyncMigration {
		return nil, errs.NewValidationError(item, "sync-as-external", "only valid for SYNC migrations")
	}
	if d.DestinationTable != "" && d.SourceTable == "" {
		return nil, errs.NewValidationError(item, "destination-table", "only meaningful when source-table is set")
	}

	if d.SourceTable != "" && d.DestinationTable == "" {
		d.DestinationTable = d.SourceTable
	}
	return &ResolvedMigration{MigrationDescriptor: d, Item: item}, nil
}
