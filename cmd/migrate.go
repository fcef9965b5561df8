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
package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/tebeka/atexit"

	"github.com/lakeshift/lakeshift/src/catalogdb"
	"github.com/lakeshift/lakeshift/src/migration"
	"github.com/lakeshift/lakeshift/src/utils"
)

var (
	dryRun bool
	dsn    string
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Migrate hive_metastore tables to Unity Catalog as declared in the config file.",
	Long: `Runs every migration declared in the config file in order: SYNC entries
register external references in Unity Catalog, DEEP_CLONE entries copy data
into managed tables. Each entry succeeds or fails on its own; the batch
always runs to the end and a report is written to the report directory.`,

	PreRun: func(cmd *cobra.Command, args []string) {
		validateConfigFileFlag()
		validateReportDirFlag()
		validateLogLevelFlag()
	},

	Run: func(cmd *cobra.Command, args []string) {
		migrationConfig, err := migration.LoadMigrationConfig(cfgFile)
		if err != nil {
			utils.ErrExit("load migration config: %v", err)
		}
		if dryRun {
			migrationConfig.GlobalSettings.DryRun = true
		}
		if dsn != "" {
			migrationConfig.Warehouse.DSN = dsn
		}

		warehouse := catalogdb.NewWarehouseDB(migrationConfig.Warehouse.Driver, migrationConfig.Warehouse.DSN)
		if !migrationConfig.GlobalSettings.DryRun || anySchemaLevel(migrationConfig.Migrations) {
			err = warehouse.Connect()
			if err != nil {
				utils.ErrExit("connect to warehouse: %v", err)
			}
			defer warehouse.Disconnect()
		}

		utils.PrintAndLog("Running %d migration(s) from %s", len(migrationConfig.Migrations), cfgFile)
		runner := migration.NewBatchRunner(warehouse, migrationConfig.GlobalSettings)
		report := runner.Run(migrationConfig.Migrations)

		printBatchReport(report)

		reportFilePath := filepath.Join(reportDir, "migration-report.json")
		err = report.WriteJSON(reportFilePath)
		if err != nil {
			utils.ErrExit("write report file %q: %v", reportFilePath, err)
		}
		utils.PrintAndLog("Detailed report: %s", reportFilePath)

		if report.Summary.Failed > 0 {
			log.Errorf("batch finished with %d failed migration(s)", report.Summary.Failed)
			atexit.Exit(1)
		}
	},
}

// anySchemaLevel reports whether schema expansion will need the warehouse
// even on a dry run.
func anySchemaLevel(descriptors []migration.MigrationDescriptor) bool {
	for _, d := range descriptors {
		if d.IsSchemaLevel() {
			return true
		}
	}
	return false
}

func printBatchReport(report *migration.BatchReport) {
	uiTable := uitable.New()
	headerfmt := color.New(color.FgGreen, color.Underline).SprintFunc()
	uiTable.AddRow(headerfmt("MIGRATION"), headerfmt("TYPE"), headerfmt("DESTINATION"), headerfmt("STATUS"))
	for _, result := range report.Results {
		uiTable.AddRow(result.Item, string(result.MigrationType), result.Destination, colorizeStatus(result.Status))
	}
	fmt.Print("\n")
	fmt.Println(uiTable)
	fmt.Print("\n")

	summary := report.Summary
	utils.PrintAndLog("Total: %d | Succeeded: %d | Failed: %d | Skipped: %d | Dry-run: %d",
		summary.Total, summary.Succeeded, summary.Failed, summary.Skipped, summary.DryRun)

	for _, result := range report.Results {
		if result.Status == migration.StatusFailed {
			color.Red("%s: %s", result.Item, result.Error)
			log.Errorf("%s: %s", result.Item, result.Error)
		}
	}
}

func colorizeStatus(status migration.MigrationStatus) string {
	switch status {
	case migration.StatusSucceeded:
		return color.GreenString(string(status))
	case migration.StatusFailed:
		return color.RedString(string(status))
	case migration.StatusSkipped:
		return color.YellowString(string(status))
	default:
		return string(status)
	}
}

func init() {
	rootCmd.AddCommand(migrateCmd)
	registerCommonFlags(migrateCmd)

	migrateCmd.Flags().StringVarP(&reportDir, "report-dir", "r", "",
		"directory used to keep the batch report and logs (required)")
	migrateCmd.MarkFlagRequired("report-dir")

	migrateCmd.Flags().BoolVar(&dryRun, "dry-run", false,
		"render catalog statements without executing them (overrides the config file)")

	migrateCmd.Flags().StringVar(&dsn, "dsn", "",
		"warehouse connection string (overrides the config file)")
}
