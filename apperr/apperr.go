// Package apperr defines the internal error taxonomy from spec.md §7:
// ParseError, SchemaError, DatastoreError, AllocationError and
// InternalInvariant. Every non-leaf package wraps its failures against
// one of these sentinels with github.com/pkg/errors.Wrap, so callers
// can classify a failure with errors.Is regardless of which package
// raised it.
package apperr

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	// ErrParse marks malformed filter XML or an unrecognized filter type.
	ErrParse = errors.New("parse error")
	// ErrSchema marks an xpath referencing an unknown node or module.
	// Benign for subtree filters (skip silently), fatal for xpath filters.
	ErrSchema = errors.New("schema error")
	// ErrDatastore marks any non-NotFound/UnknownModel backend failure.
	ErrDatastore = errors.New("datastore error")
	// ErrAllocation marks an out-of-memory condition; always fatal.
	ErrAllocation = errors.New("allocation error")
	// ErrInternal marks a bug: e.g. reply validation failing.
	ErrInternal = errors.New("internal invariant violation")
)

// Parse returns ErrParse wrapped with a message built from format and
// args.
func Parse(format string, args ...interface{}) error {
	return errors.Wrapf(ErrParse, format, args...)
}

// Schema wraps a schema-resolution failure against ErrSchema.
func Schema(format string, args ...interface{}) error {
	return errors.Wrapf(ErrSchema, format, args...)
}

// Datastore wraps a backend failure against ErrDatastore, preserving
// cause's message in the resulting error text.
func Datastore(cause error, format string, args ...interface{}) error {
	msg := fmt.Sprintf(format, args...)
	return errors.Wrapf(ErrDatastore, "%s: %v", msg, cause)
}

// Internal wraps a should-never-happen condition against ErrInternal.
func Internal(format string, args ...interface{}) error {
	return errors.Wrapf(ErrInternal, format, args...)
}
