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
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/lakeshift/lakeshift/src/errs"
)

// BatchRunner drives every configured descriptor through validation,
// resolution, rendering and execution, strictly in input order. Items
// are isolated: a failure in one never stops the rest of the batch.
type BatchRunner struct {
	catalog  CatalogClient
	settings GlobalSettings
}

func NewBatchRunner(catalog CatalogClient, settings GlobalSettings) *BatchRunner {
	return &BatchRunner{catalog: catalog, settings: settings}
}

func (r *BatchRunner) Run(descriptors []MigrationDescriptor) *BatchReport {
	report := newBatchReport()
	executor := NewExecutor(r.catalog, r.settings)
	log.Infof("starting migration batch %s with %d descriptors", report.RunID, len(descriptors))

	for position, descriptor := range descriptors {
		resolved, err := ValidateDescriptor(descriptor, position)
		if err != nil {
			log.Errorf("%s", err)
			report.addResult(r.failedResult(descriptor.Identity(position), descriptor, err))
			continue
		}

		targets, err := ResolveTargets(resolved, r.settings, r.catalog)
		if err != nil {
			log.Errorf("%s", err)
			report.addResult(r.failedResult(resolved.Item, resolved.MigrationDescriptor, err))
			continue
		}

		for _, target := range targets {
			report.addResult(r.runTarget(executor, target))
		}
	}

	report.EndTime = time.Now()
	return report
}

func (r *BatchRunner) runTarget(executor *Executor, target MigrationTarget) MigrationResult {
	// Existence probing is a remote call, so dry-run never skips.
	if r.settings.SkipExisting && !r.settings.DryRun {
		exists, err := r.catalog.TableExists(target.Destination)
		if err != nil {
			execErr := errs.NewExecutionError(target.Item,
				fmt.Sprintf("DESCRIBE TABLE %s", target.Destination.MinQuoted()), err)
			log.Errorf("%s", execErr)
			now := time.Now()
			return MigrationResult{
				Item:          target.Item,
				MigrationType: target.MigrationType,
				Source:        target.Source.Qualified(),
				Destination:   target.Destination.Qualified(),
				Status:        StatusFailed,
				Error:         execErr.Error(),
				StartTime:     now,
				EndTime:       now,
			}
		}
		if exists {
			log.Infof("destination %s already exists, skipping migration %q", target.Destination, target.Item)
			now := time.Now()
			return MigrationResult{
				Item:          target.Item,
				MigrationType: target.MigrationType,
				Source:        target.Source.Qualified(),
				Destination:   target.Destination.Qualified(),
				Status:        StatusSkipped,
				StartTime:     now,
				EndTime:       now,
			}
		}
	}

	plan := RenderPlan(target, r.settings)
	return executor.Execute(plan)
}

// failedResult builds a FAILED result for an item that never reached the
// executor. Source and destination are filled best-effort from whatever
// the descriptor carries.
func (r *BatchRunner) failedResult(item string, d MigrationDescriptor, err error) MigrationResult {
	now := time.Now()
	result := MigrationResult{
		Item:          item,
		MigrationType: d.MigrationType,
		Status:        StatusFailed,
		Error:         err.Error(),
		StartTime:     now,
		EndTime:       now,
	}
	if d.SourceSchema != "" {
		source := r.settings.SourceCatalogName() + "." + d.SourceSchema
		if d.SourceTable != "" {
			source += "." + d.SourceTable
		}
		result.Source = source
	}
	if d.DestinationCatalog != "" && d.DestinationSchema != "" {
		destination := d.DestinationCatalog + "." + d.DestinationSchema
		destinationTable := d.DestinationTable
		if destinationTable == "" {
			destinationTable = d.SourceTable
		}
		if destinationTable != "" {
			destination += "." + destinationTable
		}
		result.Destination = destination
	}
	return result
}

func newBatchReport() *BatchReport {
	return &BatchReport{
		RunID:     uuid.NewString(),
		StartTime: time.Now(),
	}
}
