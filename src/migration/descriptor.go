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
)

type MigrationType string

const (
	SyncMigration      MigrationType = "SYNC"
	DeepCloneMigration MigrationType = "DEEP_CLONE"
)

var supportedMigrationTypes = []MigrationType{SyncMigration, DeepCloneMigration}

const (
	DefaultSourceCatalog   = "hive_metastore"
	DefaultCommentTemplate = "This table is deprecated. Please use {destination} instead of {source}."
)

// MigrationDescriptor is one requested migration as written in the config
// file. Descriptors are read once at batch start and never mutated.
type MigrationDescriptor struct {
	Name               string        `mapstructure:"name" json:"name,omitempty"`
	MigrationType      MigrationType `mapstructure:"migration-type" json:"migrationType"`
	SourceSchema       string        `mapstructure:"source-schema" json:"sourceSchema"`
	SourceTable        string        `mapstructure:"source-table" json:"sourceTable,omitempty"`
	DestinationCatalog string        `mapstructure:"destination-catalog" json:"destinationCatalog"`
	DestinationSchema  string        `mapstructure:"destination-schema" json:"destinationSchema"`
	DestinationTable   string        `mapstructure:"destination-table" json:"destinationTable,omitempty"`
	Owner              string        `mapstructure:"owner" json:"owner"`
	SyncAsExternal     bool          `mapstructure:"sync-as-external" json:"syncAsExternal,omitempty"`
}

// Identity labels the descriptor in logs, errors and the report: its name,
// or its position in the config list when unnamed.
func (d MigrationDescriptor) Identity(position int) string {
	if d.Name != "" {
		return d.Name
	}
	return fmt.Sprintf("migration #%d", position+1)
}

// IsSchemaLevel reports whether the descriptor migrates every table of the
// source schema rather than a single table.
func (d MigrationDescriptor) IsSchemaLevel() bool {
	return d.SourceTable == ""
}

// GlobalSettings is batch-wide policy, loaded once per run and passed
// explicitly into every stage that needs it.
type GlobalSettings struct {
	SourceCatalog          string `mapstructure:"source-catalog" json:"sourceCatalog"`
	DryRun                 bool   `mapstructure:"dry-run" json:"dryRun"`
	SkipExisting           bool   `mapstructure:"skip-existing" json:"skipExisting"`
	AddDeprecationComments bool   `mapstructure:"add-deprecation-comments" json:"addDeprecationComments"`
	CommentTemplate        string `mapstructure:"comment-template" json:"commentTemplate"`
}

func (s GlobalSettings) SourceCatalogName() string {
	if s.SourceCatalog == "" {
		return DefaultSourceCatalog
	}
	return s.SourceCatalog
}

func (s GlobalSettings) CommentTemplateText() string {
	if s.CommentTemplate == "" {
		return DefaultCommentTemplate
	}
	return s.CommentTemplate
}

// ResolvedMigration is a descriptor that passed validation, with defaults
// filled in. Item carries the descriptor's identity label.
type ResolvedMigration struct {
	MigrationDescriptor
	Item string
}
