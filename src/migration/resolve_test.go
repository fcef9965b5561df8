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
	"errors"
	"testing"

	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lakeshift/lakeshift/src/errs"
)

func TestResolveTargetsTableLevel(t *testing.T) {
	resolved, err := ValidateDescriptor(validSyncDescriptor(), 0)
	require.NoError(t, err)

	targets, err := ResolveTargets(resolved, GlobalSettings{}, newFakeCatalog())
	require.NoError(t, err)
	require.Len(t, targets, 1)
	assert.Equal(t, "sales_data_sync", targets[0].Item)
	assert.Equal(t, "hive_metastore.default.sales_fact", targets[0].Source.Qualified())
	assert.Equal(t, "production.sales.sales_fact", targets[0].Destination.Qualified())
	assert.Equal(t, "data_team", targets[0].Owner)
}

func TestResolveTargetsCustomSourceCatalog(t *testing.T) {
	resolved, err := ValidateDescriptor(validSyncDescriptor(), 0)
	require.NoError(t, err)

	settings := GlobalSettings{SourceCatalog: "legacy_metastore"}
	targets, err := ResolveTargets(resolved, settings, newFakeCatalog())
	require.NoError(t, err)
	assert.Equal(t, "legacy_metastore.default.sales_fact", targets[0].Source.Qualified())
}

func TestResolveTargetsSchemaExpansion(t *testing.T) {
	descriptor := MigrationDescriptor{
		Name:               "analytics_schema_sync",
		MigrationType:      SyncMigration,
		SourceSchema:       "analytics",
		DestinationCatalog: "production",
		DestinationSchema:  "analytics_uc",
		Owner:              "analytics_team",
		SyncAsExternal:     true,
	}
	resolved, err := ValidateDescriptor(descriptor, 0)
	require.NoError(t, err)

	catalog := newFakeCatalog()
	catalog.tablesBySchema["hive_metastore.analytics"] = []string{"events", "sessions", "users"}

	targets, err := ResolveTargets(resolved, GlobalSettings{}, catalog)
	require.NoError(t, err)
	require.Len(t, targets, 3)

	items := lo.Map(targets, func(target MigrationTarget, _ int) string { return target.Item })
	assert.Equal(t, []string{"analytics_schema_sync/events", "analytics_schema_sync/sessions", "analytics_schema_sync/users"}, items)

	for _, target := range targets {
		assert.Equal(t, "analytics_team", target.Owner)
		assert.Equal(t, "production", target.Destination.Catalog)
		assert.True(t, target.SyncAsExternal)
		// destination table name equals the source table name
		assert.Equal(t, target.Source.Table, target.Destination.Table)
	}
	assert.Equal(t, "hive_metastore.analytics.events", targets[0].Source.Qualified())
	assert.Equal(t, "production.analytics_uc.events", targets[0].Destination.Qualified())
}

func TestResolveTargetsEmptySchema(t *testing.T) {
	descriptor := validSyncDescriptor()
	descriptor.SourceTable = ""
	resolved, err := ValidateDescriptor(descriptor, 0)
	require.NoError(t, err)

	_, err = ResolveTargets(resolved, GlobalSettings{}, newFakeCatalog())
	require.Error(t, err)
	var resolutionErr errs.ResolutionError
	require.True(t, errors.As(err, &resolutionErr))
	assert.Equal(t, "sales_data_sync", resolutionErr.Item())
	assert.Contains(t, err.Error(), "no tables found")
}

func TestResolveTargetsListerFailure(t *testing.T) {
	descriptor := validSyncDescriptor()
	descriptor.SourceTable = ""
	resolved, err := ValidateDescriptor(descriptor, 0)
	require.NoError(t, err)

	catalog := newFakeCatalog()
	catalog.listErr = errors.New("permission denied on schema")

	_, err = ResolveTargets(resolved, GlobalSettings{}, catalog)
	require.Error(t, err)
	var resolutionErr errs.ResolutionError
	require.True(t, errors.As(err, &resolutionErr))
	assert.Contains(t, err.Error(), "permission denied")
}
