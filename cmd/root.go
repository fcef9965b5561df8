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
	"os"
	"path/filepath"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/nightlyone/lockfile"
	"github.com/spf13/cobra"

	"github.com/lakeshift/lakeshift/src/config"
	"github.com/lakeshift/lakeshift/src/utils"
)

var (
	cfgFile   string
	reportDir string
	lockFile  lockfile.Lockfile
)

var rootCmd = &cobra.Command{
	Use:   "lakeshift",
	Short: "A CLI to migrate hive_metastore tables to Unity Catalog in batch",
	Long: `A CLI based batch migration tool that moves tables from a Hive metastore
into Unity Catalog. Migrations are declared in a YAML config file; each entry
is either a SYNC (external reference) or a DEEP_CLONE (managed copy), executed
against a SQL warehouse with a per-table outcome report.`,

	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if reportDir != "" && utils.FileOrFolderExists(reportDir) {
			if cmd.Use != "version" && cmd.Use != "validate" {
				lockReportDir()
			}
			InitLogging(reportDir, cmd.Use)
		}
	},

	Run: func(cmd *cobra.Command, args []string) {
		if len(args) == 0 {
			cmd.Help()
			os.Exit(0)
		}
	},

	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if reportDir != "" && utils.FileOrFolderExists(reportDir) && cmd.Use != "version" && cmd.Use != "validate" {
			unlockReportDir()
		}
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	cobra.CheckErr(rootCmd.Execute())
}

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true
}

func registerCommonFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&cfgFile, "config", "c", "",
		"path to the migration config file (required)")
	cmd.MarkFlagRequired("config")

	cmd.Flags().StringVar(&config.LogLevel, "log-level", "info",
		"log level for the log file. Accepted values: (trace, debug, info, warn, error, fatal, panic)")
}

func validateConfigFileFlag() {
	if cfgFile == "" {
		utils.ErrExit(`ERROR: required flag "config" not set`)
	}
	if !utils.FileOrFolderExists(cfgFile) {
		utils.ErrExit("config file %q doesn't exist", cfgFile)
	}
}

func validateReportDirFlag() {
	if reportDir == "" {
		utils.ErrExit(`ERROR: required flag "report-dir" not set`)
	}
	if !utils.FileOrFolderExists(reportDir) {
		utils.ErrExit("report-dir %q doesn't exist", reportDir)
	}
	reportDir = strings.TrimRight(reportDir, "/")
}

func validateLogLevelFlag() {
	err := config.ValidateLogLevel()
	if err != nil {
		utils.ErrExit("%s", err.Error())
	}
	logLevel, err := log.ParseLevel(config.LogLevel)
	if err != nil {
		utils.ErrExit("parse log level %q: %v", config.LogLevel, err)
	}
	log.SetLevel(logLevel)
}

func lockReportDir() {
	lockFilePath, err := filepath.Abs(filepath.Join(reportDir, ".lockfile.lck"))
	if err != nil {
		utils.ErrExit("Failed to get absolute path for lockfile: %v", err)
	}
	lockFile, err = lockfile.New(lockFilePath)
	if err != nil {
		utils.ErrExit("Failed to create lockfile %q: %v", lockFilePath, err)
	}

	err = lockFile.TryLock()
	if err == nil {
		return
	} else if err == lockfile.ErrBusy {
		utils.ErrExit("Another instance of lakeshift is running in the report-dir = %s", reportDir)
	} else {
		utils.ErrExit("Unable to lock the report-dir: %v", err)
	}
}

func unlockReportDir() {
	err := lockFile.Unlock()
	if err != nil {
		utils.ErrExit("Unable to unlock %q: %v", lockFile, err)
	}
}
