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

	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/spf13/cobra"
	"github.com/tebeka/atexit"

	"github.com/lakeshift/lakeshift/src/migration"
	"github.com/lakeshift/lakeshift/src/utils"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate the migration config file without touching the warehouse.",
	Long: `Parses the config file and checks every migration entry: required
fields, supported migration types, and flag combinations. No connection
to the warehouse is made.`,

	PreRun: func(cmd *cobra.Command, args []string) {
		validateConfigFileFlag()
	},

	Run: func(cmd *cobra.Command, args []string) {
		migrationConfig, err := migration.LoadMigrationConfig(cfgFile)
		if err != nil {
			utils.ErrExit("load migration config: %v", err)
		}

		uiTable := uitable.New()
		headerfmt := color.New(color.FgGreen, color.Underline).SprintFunc()
		uiTable.AddRow(headerfmt("MIGRATION"), headerfmt("TYPE"), headerfmt("RESULT"))

		invalid := 0
		for i, descriptor := range migrationConfig.Migrations {
			_, err := migration.ValidateDescriptor(descriptor, i)
			if err != nil {
				invalid++
				uiTable.AddRow(descriptor.Identity(i), string(descriptor.MigrationType), color.RedString("INVALID: %s", err))
			} else {
				uiTable.AddRow(descriptor.Identity(i), string(descriptor.MigrationType), color.GreenString("OK"))
			}
		}
		fmt.Print("\n")
		fmt.Println(uiTable)
		fmt.Print("\n")

		if invalid > 0 {
			fmt.Printf("%d of %d migration(s) are invalid\n", invalid, len(migrationConfig.Migrations))
			atexit.Exit(1)
		}
		fmt.Printf("All %d migration(s) are valid\n", len(migrationConfig.Migrations))
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
	validateCmd.Flags().StringVarP(&cfgFile, "config", "c", "",
		"path to the migration config file (required)")
	validateCmd.MarkFlagRequired("config")
}
