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

	"github.com/spf13/viper"
)

// WarehouseConfig holds the connection parameters of the SQL warehouse
// endpoint that fronts the catalog service.
type WarehouseConfig struct {
	Driver string `mapstructure:"driver"`
	DSN    string `mapstructure:"dsn"`
}

// MigrationConfig is the full content of a migration config file.
type MigrationConfig struct {
	Warehouse      WarehouseConfig       `mapstructure:"warehouse"`
	GlobalSettings GlobalSettings        `mapstructure:"global-settings"`
	Migrations     []MigrationDescriptor `mapstructure:"migrations"`
}

/*
LoadMigrationConfig reads and parses a migration config file.

	Any failure here is batch-fatal: the run does not proceed without a
	parseable config. Unknown keys anywhere in the file are rejected so a
	misspelled field surfaces at load time instead of silently defaulting.
	Per-descriptor semantic validation happens later, per item, in
	ValidateDescriptor.
*/
func LoadMigrationConfig(path string) (*MigrationConfig, error) {
	v := viper.New()
	v.SetConfigFile(path)

	v.SetDefault("global-settings.source-catalog", DefaultSourceCatalog)
	v.SetDefault("global-settings.add-deprecation-comments", true)
	v.SetDefault("global-settings.comment-template", DefaultCommentTemplate)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read migration config file %q: %w", path, err)
	}

	var cfg MigrationConfig
	if err := v.UnmarshalExact(&cfg); err != nil {
		return nil, fmt.Errorf("parse migration config file %q: %w", path, err)
	}
	if len(cfg.Migrations) == 0 {
		return nil, fmt.Errorf("migration config file %q defines no migrations", path)
	}
	return &cfg, nil
}
