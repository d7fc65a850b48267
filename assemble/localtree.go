package assemble

import (
	"github.com/imdario/mergo"

	"github.com/damianoneill/netconf-yang-server/apperr"
	"github.com/damianoneill/netconf-yang-server/datatree"
	"github.com/damianoneill/netconf-yang-server/yang/schema"
)

// FromLocalTree copies everything in src matching xpath into dst, the
// Local Tree Projector (spec.md §4.D): it's the path ietf-yang-library,
// ietf-netconf-monitoring and nc-notifications data take, since that
// data is already an in-memory tree rather than something a backend
// iterates. Grounded on opget_build_tree_from_data's per-match
// duplicate-then-reattach-ancestors shape, reformulated: instead of
// duplicating nodes and re-parenting them, every matched subtree is
// flattened to its (path, value, attrs) leaves and merged leaf-by-leaf
// into dst, since dst's arena already knows how to create whatever
// ancestor chain a path implies.
func FromLocalTree(ctx *schema.Context, dst *datatree.Tree, src *datatree.Tree, xpath string) error {
	matches, err := datatree.Select(src, xpath)
	if err != nil {
		return err
	}

	for _, root := range matches {
		for _, leaf := range src.Leaves(root) {
			path := src.PathTo(leaf)
			n := src.Node(leaf)

			if err := dst.MergeLeaf(ctx, path, n.Value, n.Default); err != nil {
				return err
			}
			if err := mergeAttrs(dst, path, n.Attrs); err != nil {
				return err
			}
		}
	}
	return nil
}

// mergeAttrs reconciles a merged leaf's XML attribute annotations
// (e.g. a with-defaults keep-with-tag marker already present from an
// earlier pass) with the ones carried by the source fragment, using
// mergo over a name->value projection so a destination attribute
// already set is never silently clobbered by an equal-or-absent
// source one; WithOverride lets a source attribute that genuinely
// differs win, matching the "fragment's value wins on non-conflicting
// merge" rule spec.md §4.D states for leaves in general.
func mergeAttrs(dst *datatree.Tree, path string, srcAttrs []datatree.Attr) error {
	if len(srcAttrs) == 0 {
		return nil
	}

	matches, err := datatree.Select(dst, path)
	if err != nil || len(matches) == 0 {
		return apperr.Internal("attribute merge target %s vanished after leaf merge", path)
	}
	id := matches[0]
	n := dst.Node(id)

	existing := attrMap(n.Attrs)
	incoming := attrMap(srcAttrs)
	if err := mergo.Merge(&existing, incoming, mergo.WithOverride); err != nil {
		return apperr.Internal("attribute merge at %s: %v", path, err)
	}

	n.Attrs = mapToAttrs(existing)
	return nil
}

func attrKey(module, name string) string {
	return module + ":" + name
}

func attrMap(attrs []datatree.Attr) map[string]string {
	m := make(map[string]string, len(attrs))
	for _, a := range attrs {
		m[attrKey(a.Module, a.Name)] = a.Value
	}
	return m
}

func mapToAttrs(m map[string]string) []datatree.Attr {
	out := make([]datatree.Attr, 0, len(m))
	for k, v := range m {
		module, name := splitAttrKey(k)
		out = append(out, datatree.Attr{Module: module, Name: name, Value: v})
	}
	return out
}

func splitAttrKey(k string) (module, name string) {
	for i := 0; i < len(k); i++ {
		if k[i] == ':' {
			return k[:i], k[i+1:]
		}
	}
	return "", k
}
