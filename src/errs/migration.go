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

package errs

import (
	"fmt"
)

// ValidationError reports a malformed or inconsistent migration descriptor.
// It is raised before any remote call is made.
type ValidationError struct {
	item   string
	field  string
	reason string
}

func (e ValidationError) Item() string {
	return e.item
}

func (e ValidationError) Field() string {
	return e.field
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("validate migration: %s: field %q: %s", e.item, e.field, e.reason)
}

func NewValidationError(item, field, reason string) ValidationError {
	return ValidationError{
		item:   item,
		field:  field,
		reason: reason,
	}
}

// ResolutionError reports a failure while resolving a descriptor into
// fully-specified migration targets, e.g. a schema-level expansion that
// finds no tables.
type ResolutionError struct {
	item string
	err  error
}

func (e ResolutionError) Item() string {
	return e.item
}

func (e ResolutionError) Error() string {
	return fmt.Sprintf("resolve migration: %s: %s", e.item, e.err.Error())
}

func (e ResolutionError) Unwrap() error {
	return e.err
}

func NewResolutionError(item string, err error) ResolutionError {
	return ResolutionError{
		item: item,
		err:  err,
	}
}

// ExecutionError reports a catalog statement that failed remotely.
type ExecutionError struct {
	item      string
	statement string
	err       error
}

func (e ExecutionError) Item() string {
	return e.item
}

func (e ExecutionError) Statement() string {
	return e.statement
}

func (e ExecutionError) Error() string {
	return fmt.Sprintf("execute statement: %q for migration: %s: %s", e.statement, e.item, e.err.Error())
}

func (e ExecutionError) Unwrap() error {
	return e.err
}

func NewExecutionError(item, statement string, err error) ExecutionError {
	return ExecutionError{
		item:      item,
		statement: statement,
		err:       err,
	}
}
