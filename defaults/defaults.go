// Package defaults implements the Defaults Filter (spec.md §4.E): the
// with-defaults capability's leaf inclusion/exclusion/tagging rules,
// applied as a final pass over an assembled reply tree. Grounded on
// op_dflt_data_inspect in original_source/server/operations.c.
package defaults

import (
	"github.com/damianoneill/netconf-yang-server/datatree"
	"github.com/damianoneill/netconf-yang-server/yang/schema"
)

// WDM is the with-defaults mode negotiated for one read operation.
type WDM int

const (
	ReportAll WDM = iota
	ReportAllTagged
	Trim
	Explicit
)

// tagModule/tagName name the RFC 6243 default-indicator attribute this
// package stamps onto report-all-tagged leaves.
const (
	tagModule = "ietf-netconf-with-defaults"
	tagName   = "default"
)

// Apply walks every leaf in tree and applies the with-defaults
// decision table for mode, deleting leaves the mode excludes and
// tagging the ones report-all-tagged requires tagged. rpcOutput
// matches op_dflt_data_inspect's rpc_output parameter: true when tree
// holds an rpc-reply body (e.g. an action output) rather than a
// get/get-config data tree, which changes the explicit-mode rule for
// config leaves.
func Apply(ctx *schema.Context, tree *datatree.Tree, mode WDM, rpcOutput bool) {
	if mode == ReportAll {
		return
	}

	for _, root := range tree.Roots() {
		applyNode(ctx, tree, root, mode, rpcOutput)
	}
}

// applyNode recurses depth-first so a deleted child doesn't shift
// sibling iteration order (datatree.Tree.Children snapshots the
// sibling list per call).
func applyNode(ctx *schema.Context, tree *datatree.Tree, id datatree.NodeID, mode WDM, rpcOutput bool) {
	for _, c := range tree.Children(id) {
		applyNode(ctx, tree, c, mode, rpcOutput)
	}

	n := tree.Node(id)
	if n.Schema == nil || (n.Schema.Kind != schema.Leaf && n.Schema.Kind != schema.LeafList) {
		return
	}

	switch decide(ctx, n, mode, rpcOutput) {
	case decisionDiscard:
		tree.Delete(id)
	case decisionTag:
		n.Attrs = append(n.Attrs, datatree.Attr{Module: tagModule, Name: tagName, Value: "true"})
	}
}

type decision int

const (
	decisionKeep decision = iota
	decisionDiscard
	decisionTag
)

// decide implements op_dflt_data_inspect's decision table for a single
// leaf node already known to exist in the reply tree.
func decide(ctx *schema.Context, n *datatree.Node, mode WDM, rpcOutput bool) decision {
	switch mode {
	case Explicit:
		if !n.Default {
			return decisionKeep
		}
		if n.Schema.Config && !rpcOutput {
			return decisionDiscard
		}
		return decisionKeep

	case Trim:
		if n.Default {
			return decisionDiscard
		}
		if declared, ok := ctx.TypedefDefault(n.Schema); ok && declared == n.Value {
			return decisionDiscard
		}
		return decisionKeep

	case ReportAllTagged:
		if n.Default {
			return decisionTag
		}
		if declared, ok := ctx.TypedefDefault(n.Schema); ok && declared == n.Value {
			return decisionTag
		}
		return decisionKeep

	default:
		return decisionKeep
	}
}
