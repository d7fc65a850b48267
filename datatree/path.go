package datatree

import (
	"github.com/damianoneill/netconf-yang-server/xpath"
)

// PathTo reconstructs the absolute compiled-xpath form of id within
// this tree, including list-key predicates pulled from the node's own
// key-leaf children, e.g. "/ietf-interfaces:interfaces/interface[name='eth0']".
func (t *Tree) PathTo(id NodeID) string {
	var chain []NodeID
	for cur := id; cur != NoNode; cur = t.nodes[cur].parent {
		chain = append(chain, cur)
	}
	// chain is leaf-to-root; reverse to root-to-leaf.
	for i, j := 0, len(chain)-1; i < j; i, j = i+1, j-1 {
		chain[i], chain[j] = chain[j], chain[i]
	}

	steps := make([]xpath.Step, 0, len(chain))
	for _, nid := range chain {
		n := &t.nodes[nid]
		step := xpath.Step{Module: n.Schema.Module.Name, Name: n.Schema.Name}
		if n.Schema.IsKeyedList() {
			for _, keyName := range n.Schema.Keys {
				if kc, ok := t.ChildByName(nid, "", keyName); ok {
					step.Predicates = append(step.Predicates, xpath.Predicate{
						Kind: xpath.PredKey, Name: keyName, Value: t.nodes[kc].Value,
					})
				}
			}
		}
		steps = append(steps, step)
	}
	return xpath.String(steps)
}

// Leaves returns every leaf/leaf-list descendant of root (root
// included) that carries a value, in pre-order. Used to flatten a
// matched subtree into (path, value) pairs for merging elsewhere.
func (t *Tree) Leaves(root NodeID) []NodeID {
	var out []NodeID
	var walk func(NodeID)
	walk = func(id NodeID) {
		n := &t.nodes[id]
		if n.HasValue {
			out = append(out, id)
		}
		for _, c := range t.Children(id) {
			walk(c)
		}
	}
	walk(root)
	return out
}
