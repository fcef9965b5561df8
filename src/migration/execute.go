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
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/lakeshift/lakeshift/src/errs"
	"github.com/lakeshift/lakeshift/src/utils/sqlname"
)

// CatalogClient is the slice of the catalog service the engine consumes.
// catalogdb.WarehouseDB satisfies it.
type CatalogClient interface {
	ExecuteStatement(stmt string) error
	GetAllTableNames(schema sqlname.SchemaName) ([]string, error)
	TableExists(table sqlname.TableName) (bool, error)
}

type MigrationStatus string

const (
	StatusSucceeded MigrationStatus = "SUCCEEDED"
	StatusFailed    MigrationStatus = "FAILED"
	StatusSkipped   MigrationStatus = "SKIPPED"
	StatusDryRun    MigrationStatus = "DRY_RUN"
)

// MigrationResult is the outcome of executing (or simulating) one
// operation plan. Read-only once created.
type MigrationResult struct {
	Item          string          `json:"name"`
	MigrationType MigrationType   `json:"migrationType"`
	Source        string          `json:"source,omitempty"`
	Destination   string          `json:"destination,omitempty"`
	Status        MigrationStatus `json:"status"`
	Operations    []Operation     `json:"operations,omitempty"`
	Error         string          `json:"error,omitempty"`
	StartTime     time.Time       `json:"startTime"`
	EndTime       time.Time       `json:"endTime"`
}

type Executor struct {
	catalog  CatalogClient
	settings GlobalSettings
}

func NewExecutor(catalog CatalogClient, settings GlobalSettings) *Executor {
	return &Executor{catalog: catalog, settings: settings}
}

/*
Execute runs the plan's operations in order against the catalog service.

	The first failing operation fails the migration and the remaining
	operations are not attempted. Operations already applied stay applied
	and are visible in the result; the catalog service has no
	multi-statement transaction to roll them back. In dry-run mode no
	remote call is made and the fully-rendered operations are returned for
	inspection, exactly as a real execution would attempt them.
*/
func (e *Executor) Execute(plan OperationPlan) MigrationResult {
	result := MigrationResult{
		Item:          plan.Target.Item,
		MigrationType: plan.Target.MigrationType,
		Source:        plan.Target.Source.Qualified(),
		Destination:   plan.Target.Destination.Qualified(),
		Operations:    plan.Operations,
		StartTime:     time.Now(),
	}

	if e.settings.DryRun {
		log.Infof("dry run: migration %q would execute %d operations", plan.Target.Item, len(plan.Operations))
		result.Status = StatusDryRun
		result.EndTime = time.Now()
		return result
	}

	for i, operation := range plan.Operations {
		err := e.catalog.ExecuteStatement(operation.Statement)
		if err != nil {
			execErr := errs.NewExecutionError(plan.Target.Item, operation.Statement, err)
			log.Errorf("%s", execErr)
			result.Status = StatusFailed
			result.Error = execErr.Error()
			result.Operations = plan.Operations[:i+1]
			result.EndTime = time.Now()
			return result
		}
	}

	log.Infof("migration %q completed: %s -> %s", plan.Target.Item, result.Source, result.Destination)
	result.Status = StatusSucceeded
	result.EndTime = time.Now()
	return result
}
