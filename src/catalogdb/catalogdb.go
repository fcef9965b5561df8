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
package catalogdb

import (
	"github.com/lakeshift/lakeshift/src/utils/sqlname"
)

// Catalog is the boundary to the remote data catalog service. Statements
// are opaque strings in the service's own SQL grammar; the service is not
// transactional across statements.
type Catalog interface {
	Connect() error
	Disconnect()
	ExecuteStatement(stmt string) error
	GetAllTableNames(schema sqlname.SchemaName) ([]string, error)
	TableExists(table sqlname.TableName) (bool, error)
}
