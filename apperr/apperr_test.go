package apperr_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/damianoneill/netconf-yang-server/apperr"
)

func TestParseClassifiesAsErrParse(t *testing.T) {
	err := apperr.Parse("bad filter %q", "xyz")
	require.True(t, errors.Is(err, apperr.ErrParse))
	require.Contains(t, err.Error(), "bad filter")
}

func TestSchemaClassifiesAsErrSchema(t *testing.T) {
	err := apperr.Schema("unknown node %q", "foo")
	require.True(t, errors.Is(err, apperr.ErrSchema))
	require.False(t, errors.Is(err, apperr.ErrParse))
}

func TestDatastoreClassifiesAsErrDatastoreAndKeepsCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := apperr.Datastore(cause, "refresh %s", "running")
	require.True(t, errors.Is(err, apperr.ErrDatastore))
	require.Contains(t, err.Error(), "connection refused")
	require.Contains(t, err.Error(), "refresh running")
}

func TestInternalClassifiesAsErrInternal(t *testing.T) {
	err := apperr.Internal("unreachable branch")
	require.True(t, errors.Is(err, apperr.ErrInternal))
}

func TestSentinelsAreDistinct(t *testing.T) {
	require.False(t, errors.Is(apperr.ErrParse, apperr.ErrSchema))
	require.False(t, errors.Is(apperr.ErrDatastore, apperr.ErrAllocation))
	require.False(t, errors.Is(apperr.ErrInternal, apperr.ErrParse))
}
