package datatree_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/damianoneill/netconf-yang-server/datatree"
	"github.com/damianoneill/netconf-yang-server/yang/schema"
)

func buildInterfacesCtx(t *testing.T) *schema.Context {
	mod := &schema.Module{Name: "ietf-interfaces", Namespace: "urn:ietf:params:xml:ns:yang:ietf-interfaces"}
	name := &schema.Node{Module: mod, Name: "name", Kind: schema.Leaf, Type: &schema.LeafType{Base: schema.BaseString}}
	enabled := &schema.Node{
		Module: mod, Name: "enabled", Kind: schema.Leaf, Config: true,
		Type: &schema.LeafType{Base: schema.BaseBool}, Default: "true",
	}
	ifc := &schema.Node{Module: mod, Name: "interface", Kind: schema.List, Keys: []string{"name"}, Children: []*schema.Node{name, enabled}}
	name.Parent, enabled.Parent = ifc, ifc
	ifcs := &schema.Node{Module: mod, Name: "interfaces", Kind: schema.Container, Children: []*schema.Node{ifc}}
	ifc.Parent = ifcs
	mod.Top = []*schema.Node{ifcs}

	ctx := schema.NewContext()
	require.NoError(t, ctx.InstallModule(mod))
	return ctx
}

func TestNewChildAndChildren(t *testing.T) {
	tr := datatree.New()
	sn := &schema.Node{Name: "interfaces", Kind: schema.Container}
	id := tr.NewChild(datatree.NoNode, sn)
	require.Len(t, tr.Roots(), 1)
	require.Equal(t, id, tr.Roots()[0])

	childSn := &schema.Node{Name: "interface", Kind: schema.List}
	cid := tr.NewChild(id, childSn)
	kids := tr.Children(id)
	require.Len(t, kids, 1)
	require.Equal(t, cid, kids[0])
}

func TestDeleteRecyclesFreelist(t *testing.T) {
	tr := datatree.New()
	sn := &schema.Node{Name: "interfaces", Kind: schema.Container}
	id := tr.NewChild(datatree.NoNode, sn)
	childSn := &schema.Node{Name: "interface", Kind: schema.List}
	cid := tr.NewChild(id, childSn)

	tr.Delete(cid)
	require.Empty(t, tr.Children(id))

	// the freed id should be recycled by the next allocation.
	newID := tr.NewChild(id, childSn)
	require.Equal(t, cid, newID)
}

func TestDeleteRemovesWholeSubtree(t *testing.T) {
	tr := datatree.New()
	root := tr.NewChild(datatree.NoNode, &schema.Node{Name: "interfaces", Kind: schema.Container})
	mid := tr.NewChild(root, &schema.Node{Name: "interface", Kind: schema.List})
	tr.NewChild(mid, &schema.Node{Name: "name", Kind: schema.Leaf})

	tr.Delete(root)
	require.Empty(t, tr.Roots())
}

func TestUpsertCreatesThenUpdates(t *testing.T) {
	ctx := buildInterfacesCtx(t)
	tr := datatree.New()

	id, err := tr.Upsert(ctx, "/ietf-interfaces:interfaces/interface[name='eth0']/name", "eth0", false)
	require.NoError(t, err)
	require.Equal(t, "eth0", tr.Node(id).Value)

	id2, err := tr.Upsert(ctx, "/ietf-interfaces:interfaces/interface[name='eth0']/name", "eth0", false)
	require.NoError(t, err)
	require.Equal(t, id, id2)
}

func TestUpsertRejectsNonLeafTarget(t *testing.T) {
	ctx := buildInterfacesCtx(t)
	tr := datatree.New()
	_, err := tr.Upsert(ctx, "/ietf-interfaces:interfaces/interface[name='eth0']", "x", false)
	require.Error(t, err)
}

func TestMergeLeafAttachesMissingLeaf(t *testing.T) {
	ctx := buildInterfacesCtx(t)
	tr := datatree.New()
	err := tr.MergeLeaf(ctx, "/ietf-interfaces:interfaces/interface[name='eth0']/name", "eth0", false)
	require.NoError(t, err)
}

func TestMergeLeafConflictIsFatal(t *testing.T) {
	ctx := buildInterfacesCtx(t)
	tr := datatree.New()
	require.NoError(t, tr.MergeLeaf(ctx, "/ietf-interfaces:interfaces/interface[name='eth0']/name", "eth0", false))
	err := tr.MergeLeaf(ctx, "/ietf-interfaces:interfaces/interface[name='eth0']/name", "eth1", false)
	require.Error(t, err)
}

func TestPropagateDefaultStopsAtKeyedList(t *testing.T) {
	ctx := buildInterfacesCtx(t)
	tr := datatree.New()
	id, err := tr.Upsert(ctx, "/ietf-interfaces:interfaces/interface[name='eth0']/enabled", "true", true)
	require.NoError(t, err)
	require.True(t, tr.Node(id).Default)

	ifc, ok := tr.ChildByName(tr.Roots()[0], "", "interface")
	require.True(t, ok)
	// the keyed list instance itself stops the upward mark, so it is
	// never flagged default even though its leaf child is.
	require.False(t, tr.Node(ifc).Default)
}

func TestPropagateDefaultClearsOnNonDefaultLeaf(t *testing.T) {
	ctx := buildInterfacesCtx(t)
	tr := datatree.New()
	_, err := tr.Upsert(ctx, "/ietf-interfaces:interfaces/interface[name='eth0']/enabled", "true", true)
	require.NoError(t, err)

	_, err = tr.Upsert(ctx, "/ietf-interfaces:interfaces/interface[name='eth0']/enabled", "false", false)
	require.NoError(t, err)

	ifc, ok := tr.ChildByName(tr.Roots()[0], "", "interface")
	require.True(t, ok)
	require.False(t, tr.Node(ifc).Default)
}

func TestSelectMatchesKeyedPredicate(t *testing.T) {
	ctx := buildInterfacesCtx(t)
	tr := datatree.New()
	_, err := tr.Upsert(ctx, "/ietf-interfaces:interfaces/interface[name='eth0']/name", "eth0", false)
	require.NoError(t, err)
	_, err = tr.Upsert(ctx, "/ietf-interfaces:interfaces/interface[name='eth1']/name", "eth1", false)
	require.NoError(t, err)

	ids, err := datatree.Select(tr, "/ietf-interfaces:interfaces/interface[name='eth0']")
	require.NoError(t, err)
	require.Len(t, ids, 1)
}

func TestSelectWildcardModule(t *testing.T) {
	ctx := buildInterfacesCtx(t)
	tr := datatree.New()
	_, err := tr.Upsert(ctx, "/ietf-interfaces:interfaces/interface[name='eth0']/name", "eth0", false)
	require.NoError(t, err)

	ids, err := datatree.Select(tr, "/ietf-interfaces:*")
	require.NoError(t, err)
	require.Len(t, ids, 1)
}

func TestSelectNoMatchReturnsEmpty(t *testing.T) {
	ctx := buildInterfacesCtx(t)
	tr := datatree.New()
	ids, err := datatree.Select(tr, "/ietf-interfaces:interfaces/interface[name='eth0']")
	require.NoError(t, err)
	require.Empty(t, ids)
}
