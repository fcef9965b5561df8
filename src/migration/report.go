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
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// BatchReport aggregates the per-item results of one batch run, in config
// input order. It is the engine's output contract for every sink, human
// or machine.
type BatchReport struct {
	RunID     string        `json:"runId"`
	StartTime time.Time     `json:"startTime"`
	EndTime   time.Time     `json:"endTime"`
	Summary   ReportSummary `json:"summary"`
	Results   []MigrationResult `json:"results"`
}

type ReportSummary struct {
	Total     int `json:"total"`
	Succeeded int `json:"succeeded"`
	Failed    int `json:"failed"`
	Skipped   int `json:"skipped"`
	DryRun    int `json:"dryRun"`
}

func (r *BatchReport) addResult(result MigrationResult) {
	r.Results = append(r.Results, result)
	r.Summary.Total++
	switch result.Status {
	case StatusSucceeded:
		r.Summary.Succeeded++
	case StatusFailed:
		r.Summary.Failed++
	case StatusSkipped:
		r.Summary.Skipped++
	case StatusDryRun:
		r.Summary.DryRun++
	}
}

// WriteJSON writes the report as indented JSON for machine consumption.
func (r *BatchReport) WriteJSON(path string) error {
	reportBytes, err := json.MarshalIndent(r, "", "\t")
	if err != nil {
		return fmt.Errorf("marshal batch report: %w", err)
	}
	err = os.WriteFile(path, reportBytes, 0644)
	if err != nil {
		return fmt.Errorf("write batch report to file %q: %w", path, err)
	}
	return nil
}
