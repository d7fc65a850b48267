package readop

import (
	stderrors "errors"

	"github.com/damianoneill/netconf-yang-server/netconf/common"
)

// toRPCError maps any failure from the read path — ParseError,
// SchemaError, DatastoreError, AllocationError, InternalInvariant
// (spec.md §7, apperr's sentinels) — onto a single NETCONF rpc-error
// shape: every failure surfaces as operation-failed/application/error
// carrying the last wrapped error's message, since spec.md draws no
// distinction between the taxonomy members at the wire level.
func toRPCError(err error) common.RPCError {
	return common.RPCError{
		Type:     "application",
		Tag:      "operation-failed",
		Severity: "error",
		Message:  err.Error(),
	}
}

// causeString unwraps err down to its root cause for logging, mirroring
// the teacher's use of github.com/pkg/errors.Cause elsewhere.
func causeString(err error) string {
	for {
		unwrapped := stderrors.Unwrap(err)
		if unwrapped == nil {
			return err.Error()
		}
		err = unwrapped
	}
}
