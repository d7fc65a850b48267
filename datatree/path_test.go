package datatree_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/damianoneill/netconf-yang-server/datatree"
)

func TestPathToReconstructsKeyPredicate(t *testing.T) {
	ctx := buildInterfacesCtx(t)
	tr := datatree.New()
	id, err := tr.Upsert(ctx, "/ietf-interfaces:interfaces/interface[name='eth0']/name", "eth0", false)
	require.NoError(t, err)

	require.Equal(t, "/ietf-interfaces:interfaces/interface[name='eth0']/name", tr.PathTo(id))
}

func TestLeavesCollectsOnlyValuedNodes(t *testing.T) {
	ctx := buildInterfacesCtx(t)
	tr := datatree.New()
	_, err := tr.Upsert(ctx, "/ietf-interfaces:interfaces/interface[name='eth0']/name", "eth0", false)
	require.NoError(t, err)
	_, err = tr.Upsert(ctx, "/ietf-interfaces:interfaces/interface[name='eth0']/enabled", "true", false)
	require.NoError(t, err)

	root := tr.Roots()[0]
	leaves := tr.Leaves(root)
	// the key leaf "name" (created once by createKeys and reused by the
	// second walk step) plus "enabled".
	require.Len(t, leaves, 2)
	for _, l := range leaves {
		require.True(t, tr.Node(l).HasValue)
	}
}
