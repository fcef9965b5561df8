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
	"strings"

	"github.com/lakeshift/lakeshift/src/utils/sqlname"
)

type OperationKind string

const (
	SyncTableOperation  OperationKind = "SYNC_TABLE"
	DeepCloneOperation  OperationKind = "DEEP_CLONE"
	SetOwnerOperation   OperationKind = "SET_OWNER"
	SetCommentOperation OperationKind = "SET_COMMENT"
)

// Operation is one catalog statement, opaque to everything but the
// catalog service itself.
type Operation struct {
	Kind      OperationKind `json:"kind"`
	Statement string        `json:"statement"`
}

// OperationPlan is the ordered list of operations for one target:
// primary migration op, then ownership, then the optional deprecation
// comment on the source. Consumed exactly once by the Executor.
type OperationPlan struct {
	Target     MigrationTarget
	Operations []Operation
}

/*
RenderPlan builds the operation plan for one target.

	SYNC renders a SYNC TABLE statement, which the catalog service applies
	idempotently: re-running it against an already-synced destination is a
	refresh, never an error. DEEP_CLONE renders CREATE OR REPLACE ... DEEP
	CLONE, a full data+metadata copy. Rendering is pure data construction;
	nothing here touches the catalog, so plans can be inspected in dry-run
	mode before anything executes.
*/
func RenderPlan(target MigrationTarget, settings GlobalSettings) OperationPlan {
	source := target.Source.MinQuoted()
	destination := target.Destination.MinQuoted()

	var operations []Operation
	switch target.MigrationType {
	case SyncMigration:
		stmt := fmt.Sprintf("SYNC TABLE %s FROM %s", destination, source)
		if target.SyncAsExternal {
			stmt = fmt.Sprintf("SYNC TABLE %s AS EXTERNAL FROM %s", destination, source)
		}
		operations = append(operations, Operation{Kind: SyncTableOperation, Statement: stmt})
	case DeepCloneMigration:
		stmt := fmt.Sprintf("CREATE OR REPLACE TABLE %s DEEP CLONE %s", destination, source)
		operations = append(operations, Operation{Kind: DeepCloneOperation, Statement: stmt})
	}

	operations = append(operations, Operation{
		Kind:      SetOwnerOperation,
		Statement: fmt.Sprintf("ALTER TABLE %s SET OWNER TO %s", destination, sqlname.Quote(target.Owner)),
	})

	if settings.AddDeprecationComments {
		comment := renderDeprecationComment(settings.CommentTemplateText(), target)
		operations = append(operations, Operation{
			Kind:      SetCommentOperation,
			Statement: fmt.Sprintf("COMMENT ON TABLE %s IS '%s'", source, escapeSingleQuotes(comment)),
		})
	}

	return OperationPlan{Target: target, Operations: operations}
}

func renderDeprecationComment(template string, target MigrationTarget) string {
	comment := strings.ReplaceAll(template, "{source}", target.Source.Qualified())
	return strings.ReplaceAll(comment, "{destination}", target.Destination.Qualified())
}

func escapeSingleQuotes(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}
