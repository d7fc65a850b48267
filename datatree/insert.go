package datatree

import (
	"github.com/damianoneill/netconf-yang-server/apperr"
	"github.com/damianoneill/netconf-yang-server/xpath"
	"github.com/damianoneill/netconf-yang-server/yang/schema"
)

// walk resolves (creating if needed) every step of path under tree,
// returning the final node id and its schema node.
func (t *Tree) walk(ctx *schema.Context, path string, create bool) (NodeID, *schema.Node, error) {
	steps, err := xpath.Parse(path)
	if err != nil {
		return NoNode, nil, apperr.Parse("%v", err)
	}
	if len(steps) == 0 {
		return NoNode, nil, apperr.Parse("empty xpath")
	}

	module, ok := ctx.ModuleByName(steps[0].Module)
	if !ok {
		return NoNode, nil, apperr.Schema("unknown module %q in path %q", steps[0].Module, path)
	}

	sn := module.Child(steps[0].Name)
	if sn == nil {
		return NoNode, nil, apperr.Schema("module %q has no top-level node %q", module.Name, steps[0].Name)
	}

	cur, foundSchema, err := t.findOrCreateTop(module, steps[0], create)
	if err != nil {
		return NoNode, nil, err
	}
	curSchema := foundSchema

	for _, step := range steps[1:] {
		var err error
		cur, curSchema, err = t.findOrCreateStep(cur, curSchema, step, create)
		if err != nil {
			return NoNode, nil, err
		}
	}

	return cur, curSchema, nil
}

// findOrCreateTop handles the first path step, whose parent is the
// virtual root (no schema node to look a child up on — modules own
// their own top-level nodes directly).
func (t *Tree) findOrCreateTop(module *schema.Module, step xpath.Step, create bool) (NodeID, *schema.Node, error) {
	sn := module.Child(step.Name)
	if sn == nil {
		return NoNode, nil, apperr.Schema("module %q has no top-level node %q", module.Name, step.Name)
	}

	for _, c := range t.Children(NoNode) {
		n := &t.nodes[c]
		if n.Schema != sn {
			continue
		}
		if sn.IsKeyedList() {
			if t.matchPredicates(c, keyPredicates(step.Predicates)) {
				return c, sn, nil
			}
			continue
		}
		return c, sn, nil
	}

	if !create {
		return NoNode, sn, errNotFoundLocal
	}

	id := t.NewChild(NoNode, sn)
	if sn.Kind == schema.List {
		if err := t.createKeys(id, sn, step.Predicates); err != nil {
			return NoNode, sn, err
		}
	}
	for _, p := range step.Predicates {
		if p.Kind == xpath.PredAttr {
			t.nodes[id].Attrs = append(t.nodes[id].Attrs, Attr{Module: p.Module, Name: p.Name, Value: p.Value})
		}
	}
	return id, sn, nil
}

// Upsert implements the Subtree Builder's insert-or-update rule
// (spec.md §4.C step 1): a node is created at path if missing,
// otherwise its value is replaced — never duplicated.
func (t *Tree) Upsert(ctx *schema.Context, path, value string, isDefault bool) (NodeID, error) {
	id, sn, err := t.walk(ctx, path, true)
	if err != nil {
		return NoNode, err
	}
	if sn.Kind != schema.Leaf && sn.Kind != schema.LeafList {
		return NoNode, apperr.Internal("upsert target %s is not a leaf", sn.Path())
	}
	t.nodes[id].Value = value
	t.nodes[id].HasValue = true
	t.PropagateDefault(id, isDefault)
	return id, nil
}

// MergeLeaf implements the Local Tree Projector's destructive-merge
// rule (spec.md §4.D step 4): an already-existing leaf at path is
// retained unless the fragment's value differs, which is a fatal
// internal error (merge conflict); a missing leaf is attached with
// the fragment's value.
func (t *Tree) MergeLeaf(ctx *schema.Context, path, value string, isDefault bool) error {
	id, sn, err := t.walk(ctx, path, true)
	if err != nil {
		return err
	}
	if sn.Kind != schema.Leaf && sn.Kind != schema.LeafList {
		return apperr.Internal("merge target %s is not a leaf", sn.Path())
	}

	n := &t.nodes[id]
	if n.HasValue && n.Value != value {
		return apperr.Internal("merge conflict at %s: %q vs %q", sn.Path(), n.Value, value)
	}
	n.Value = value
	n.HasValue = true
	t.PropagateDefault(id, isDefault || n.Default)
	return nil
}

// PropagateDefault implements spec.md §4.C steps 2/3: when a leaf's
// default flag is true, mark it and walk upward marking ancestors
// default too, stopping (and excluding) at any presence-container or
// keyed list; when false, walk upward clearing any ancestor still
// marked default, stopping as soon as an ancestor is already non-default.
func (t *Tree) PropagateDefault(leaf NodeID, isDefault bool) {
	n := &t.nodes[leaf]
	n.Default = isDefault

	if isDefault {
		iter := t.nodes[leaf].parent
		for iter != NoNode {
			ps := t.nodes[iter].Schema
			if ps.Presence || ps.IsKeyedList() {
				break
			}
			t.nodes[iter].Default = true
			iter = t.nodes[iter].parent
		}
		return
	}

	iter := t.nodes[leaf].parent
	for iter != NoNode && t.nodes[iter].Default {
		t.nodes[iter].Default = false
		iter = t.nodes[iter].parent
	}
}

// Select returns every node matching the compiled path, evaluated
// against this tree in isolation (spec.md §4.D: "for each node n
// matching xpath in source_tree"). It never creates nodes.
func Select(t *Tree, path string) ([]NodeID, error) {
	steps, err := xpath.Parse(path)
	if err != nil {
		return nil, apperr.Parse("%v", err)
	}
	if len(steps) == 0 {
		return nil, apperr.Parse("empty xpath")
	}

	if steps[0].Name == "*" {
		var out []NodeID
		for _, id := range t.Roots() {
			if t.nodes[id].Schema.Module.Name == steps[0].Module {
				out = append(out, id)
			}
		}
		return out, nil
	}

	frontier := []NodeID{NoNode}
	for _, step := range steps {
		var next []NodeID
		for _, parent := range frontier {
			for _, c := range t.Children(parent) {
				n := &t.nodes[c]
				if n.Schema.Name != step.Name {
					continue
				}
				if step.Module != "" && n.Schema.Module.Name != step.Module {
					continue
				}
				if !t.matchPredicates(c, step.Predicates) {
					continue
				}
				next = append(next, c)
			}
		}
		frontier = next
		if len(frontier) == 0 {
			break
		}
	}
	return frontier, nil
}
