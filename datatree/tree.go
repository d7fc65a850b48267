// Package datatree implements the Data Tree (DT) described in
// spec.md §3/§9: an ordered tree of data nodes represented as an
// arena of node values addressed by index rather than pointer, to
// avoid cyclic ownership (parent/child/sibling all point back into
// the same slice). Node deletion frees by index into a freelist.
package datatree

import (
	"github.com/damianoneill/netconf-yang-server/xpath"
	"github.com/damianoneill/netconf-yang-server/yang/schema"

	"github.com/pkg/errors"
)

// NodeID addresses one node in a Tree's arena. The zero value, NoNode,
// addresses nothing (the virtual parent of top-level nodes).
type NodeID uint32

// NoNode is the sentinel "no node" / "virtual root" id.
const NoNode NodeID = 0

// Attr is an XML attribute attached to a node, used both for
// subtree-filter attribute predicates carried into the reply and for
// the with-defaults default-indicator tag (Defaults Filter, §4.E).
type Attr struct {
	Module string
	Name   string
	Value  string
}

// Node is one arena-resident data node.
type Node struct {
	Schema   *schema.Node
	Value    string // canonical leaf text value; meaningless for non-leaves
	HasValue bool
	Default  bool
	Attrs    []Attr

	parent      NodeID
	firstChild  NodeID
	lastChild   NodeID
	nextSibling NodeID
	freed       bool
}

// Tree is an arena of Nodes plus the list of top-level (root) nodes.
type Tree struct {
	nodes []Node // index 0 is an unused sentinel so NoNode == 0 is safe
	roots []NodeID
	free  []NodeID
}

// New returns an empty Tree.
func New() *Tree {
	return &Tree{nodes: make([]Node, 1)}
}

// Node returns a pointer to the node at id. Callers must not retain
// the pointer across calls that allocate (NewChild), since the
// backing slice may be reallocated.
func (t *Tree) Node(id NodeID) *Node {
	return &t.nodes[id]
}

// Roots returns the tree's top-level node ids, in insertion order.
func (t *Tree) Roots() []NodeID {
	return t.roots
}

// Children returns the children of parent, in sibling order. Pass
// NoNode to get the tree's roots.
func (t *Tree) Children(parent NodeID) []NodeID {
	if parent == NoNode {
		return t.roots
	}
	var out []NodeID
	for cur := t.nodes[parent].firstChild; cur != NoNode; cur = t.nodes[cur].nextSibling {
		out = append(out, cur)
	}
	return out
}

// NewChild allocates a new node with the given schema node under parent
// (NoNode for a new top-level root) and returns its id.
func (t *Tree) NewChild(parent NodeID, sn *schema.Node) NodeID {
	var id NodeID
	if len(t.free) > 0 {
		id, t.free = t.free[len(t.free)-1], t.free[:len(t.free)-1]
		t.nodes[id] = Node{Schema: sn, parent: parent}
	} else {
		t.nodes = append(t.nodes, Node{Schema: sn, parent: parent})
		id = NodeID(len(t.nodes) - 1)
	}

	if parent == NoNode {
		t.roots = append(t.roots, id)
		return id
	}

	p := &t.nodes[parent]
	if p.firstChild == NoNode {
		p.firstChild = id
	} else {
		t.nodes[p.lastChild].nextSibling = id
	}
	p.lastChild = id
	return id
}

// ChildByName returns the first child of parent whose schema node has
// the given name, optionally restricted to a module.
func (t *Tree) ChildByName(parent NodeID, module, name string) (NodeID, bool) {
	for _, c := range t.Children(parent) {
		n := &t.nodes[c]
		if n.Schema.Name != name {
			continue
		}
		if module != "" && n.Schema.Module.Name != module {
			continue
		}
		return c, true
	}
	return NoNode, false
}

// Delete frees id and its whole subtree, unlinking it from its parent
// or the roots list. Freed ids are recycled by later NewChild calls.
func (t *Tree) Delete(id NodeID) {
	if id == NoNode || t.nodes[id].freed {
		return
	}

	for _, c := range t.Children(id) {
		t.Delete(c)
	}

	parent := t.nodes[id].parent
	if parent == NoNode {
		t.roots = removeID(t.roots, id)
	} else {
		p := &t.nodes[parent]
		if p.firstChild == id {
			p.firstChild = t.nodes[id].nextSibling
			if p.lastChild == id {
				p.lastChild = p.firstChild
			}
		} else {
			for cur := p.firstChild; cur != NoNode; cur = t.nodes[cur].nextSibling {
				if t.nodes[cur].nextSibling == id {
					t.nodes[cur].nextSibling = t.nodes[id].nextSibling
					if p.lastChild == id {
						p.lastChild = cur
					}
					break
				}
			}
		}
	}

	t.nodes[id] = Node{freed: true}
	t.free = append(t.free, id)
}

func removeID(ids []NodeID, id NodeID) []NodeID {
	for i, v := range ids {
		if v == id {
			return append(ids[:i], ids[i+1:]...)
		}
	}
	return ids
}

// matchPredicates reports whether node's children satisfy every
// predicate (key-leaf value match, attribute match, or top-level text
// match against the node's own value).
func (t *Tree) matchPredicates(id NodeID, preds []xpath.Predicate) bool {
	for _, p := range preds {
		switch p.Kind {
		case xpath.PredText:
			if t.nodes[id].Value != p.Value {
				return false
			}
		case xpath.PredAttr:
			if !t.hasAttr(id, p.Module, p.Name, p.Value) {
				return false
			}
		default: // PredKey
			keyChild, ok := t.ChildByName(id, p.Module, p.Name)
			if !ok || t.nodes[keyChild].Value != p.Value {
				return false
			}
		}
	}
	return true
}

func (t *Tree) hasAttr(id NodeID, module, name, value string) bool {
	for _, a := range t.nodes[id].Attrs {
		if a.Name == name && a.Value == value && (module == "" || a.Module == module) {
			return true
		}
	}
	return false
}

// findOrCreateStep locates (or creates, for upsert paths) the child of
// parent matching step, returning its id and schema node.
func (t *Tree) findOrCreateStep(parent NodeID, parentSchema *schema.Node, step xpath.Step, create bool) (NodeID, *schema.Node, error) {
	var sn *schema.Node
	if parentSchema == nil {
		// top-level step: module must resolve directly (caller resolves module).
		return NoNode, nil, errors.New("datatree: internal: missing parent schema")
	}
	sn = parentSchema.Child(step.Name)
	if sn == nil {
		return NoNode, nil, errors.Errorf("datatree: schema: %s has no child %q", parentSchema.Path(), step.Name)
	}

	for _, c := range t.Children(parent) {
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

	id := t.NewChild(parent, sn)
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

func keyPredicates(preds []xpath.Predicate) []xpath.Predicate {
	var out []xpath.Predicate
	for _, p := range preds {
		if p.Kind == xpath.PredKey {
			out = append(out, p)
		}
	}
	return out
}

// createKeys creates the key-leaf children of a freshly created list
// instance, in schema-declared order (spec.md invariant 1: key
// completeness), using the values supplied in the step's predicates.
func (t *Tree) createKeys(listID NodeID, listSchema *schema.Node, preds []xpath.Predicate) error {
	for _, keyName := range listSchema.Keys {
		value, ok := predicateValue(preds, keyName)
		if !ok {
			return errors.Errorf("datatree: list %s missing key %q in path", listSchema.Path(), keyName)
		}
		keySchema := listSchema.Child(keyName)
		if keySchema == nil {
			return errors.Errorf("datatree: list %s has no schema for declared key %q", listSchema.Path(), keyName)
		}
		kid := t.NewChild(listID, keySchema)
		t.nodes[kid].Value = value
		t.nodes[kid].HasValue = true
	}
	return nil
}

func predicateValue(preds []xpath.Predicate, name string) (string, bool) {
	for _, p := range preds {
		if p.Kind == xpath.PredKey && p.Name == name {
			return p.Value, true
		}
	}
	return "", false
}

var errNotFoundLocal = errors.New("datatree: no matching node")
