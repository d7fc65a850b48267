package assemble_test

import (
	"errors"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"

	"github.com/damianoneill/netconf-yang-server/apperr"
	"github.com/damianoneill/netconf-yang-server/assemble"
	"github.com/damianoneill/netconf-yang-server/datastore"
	"github.com/damianoneill/netconf-yang-server/datatree"
	"github.com/damianoneill/netconf-yang-server/internal/mocks"
)

// TestFromDatastorePropagatesGenericBackendError exercises the one
// FromDatastore branch the hand-written fakeBackend in
// assemble_test.go never drives: a backend failure that is neither
// ErrNotFound nor ErrUnknownModel, which must surface wrapped against
// apperr.ErrDatastore rather than be swallowed.
func TestFromDatastorePropagatesGenericBackendError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	backend := mocks.NewMockBackend(ctrl)
	backend.EXPECT().Items("/ietf-interfaces:interfaces").Return(nil, errors.New("connection reset"))

	dst := datatree.New()
	err := assemble.FromDatastore(interfacesCtx(t), backend, dst, "/ietf-interfaces:interfaces")
	require.Error(t, err)
	require.True(t, errors.Is(err, apperr.ErrDatastore))
}

// TestFromDatastorePropagatesIteratorError covers the analogous
// failure surfacing from Next rather than Items.
func TestFromDatastorePropagatesIteratorError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	backend := mocks.NewMockBackend(ctrl)
	iter := mocks.NewMockIterator(ctrl)
	backend.EXPECT().Items("/ietf-interfaces:interfaces").Return(iter, nil)
	iter.EXPECT().Next().Return(datastore.Value{}, errors.New("stream closed"))
	iter.EXPECT().Close()

	dst := datatree.New()
	err := assemble.FromDatastore(interfacesCtx(t), backend, dst, "/ietf-interfaces:interfaces")
	require.Error(t, err)
	require.True(t, errors.Is(err, apperr.ErrDatastore))
}
