// Package schema implements the Schema Context (SC) described in
// spec.md §3: a process-wide, read-mostly registry of loaded YANG
// modules. It models only the node shapes the read path needs
// (container/list/leaf/leaf-list/anyxml, key lists, defaults, config
// flags) rather than a full YANG compiler — schema walking beyond
// that, and validation, remain the external collaborator's job per
// spec.md §1/§6.
package schema

import (
	"sync"

	"github.com/pkg/errors"

	"github.com/damianoneill/netconf-yang-server/xpath"
)

// Kind identifies the data-node kind of a schema Node.
type Kind int

const (
	Container Kind = iota
	List
	Leaf
	LeafList
	AnyXML
)

func (k Kind) String() string {
	switch k {
	case Container:
		return "container"
	case List:
		return "list"
	case Leaf:
		return "leaf"
	case LeafList:
		return "leaf-list"
	case AnyXML:
		return "anyxml"
	default:
		return "unknown"
	}
}

// LeafBase identifies the base YANG type of a leaf/leaf-list, as far
// as the Value Codec needs to distinguish.
type LeafBase int

const (
	BaseString LeafBase = iota
	BaseBool
	BaseEmpty
	BaseInt8
	BaseInt16
	BaseInt32
	BaseInt64
	BaseUint8
	BaseUint16
	BaseUint32
	BaseUint64
	BaseDecimal64
	BaseBits
	BaseEnum
	BaseIdentityref
	BaseInstanceIdentifier
	BaseBinary
	// BaseUnsupported covers leafref/union/derived types that the
	// Value Codec explicitly refuses per spec.md §4.A.
	BaseUnsupported
)

// LeafType carries the per-kind detail the Value Codec needs.
type LeafType struct {
	Base           LeafBase
	FractionDigits int      // decimal64 only
	BitNames       []string // bits only, in schema declaration order
	// IdentityModule is the module that owns the identity base,
	// used to decide whether an identityref value's module differs
	// from the leaf's own module (spec.md §4.A).
	IdentityModule string
}

// Node is one schema tree node.
type Node struct {
	Module   *Module
	Name     string
	Kind     Kind
	Config   bool // false for state-data nodes
	Presence bool // true for presence containers
	Keys     []string
	Type     *LeafType
	Default  string // declared default, "" if none declared on this node
	RPCOutput bool  // true if this node only appears inside an rpc-reply body

	Parent   *Node
	Children []*Node // schema-declared order
}

// Path reconstructs "module:a/b/c" for diagnostics.
func (n *Node) Path() string {
	if n == nil {
		return ""
	}
	if n.Parent == nil {
		return n.Module.Name + ":" + n.Name
	}
	return n.Parent.Path() + "/" + n.Name
}

// Child returns the declared child with the given name, or nil.
func (n *Node) Child(name string) *Node {
	for _, c := range n.Children {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// IsKeyedList reports whether n is a list with at least one declared key.
func (n *Node) IsKeyedList() bool {
	return n.Kind == List && len(n.Keys) > 0
}

// Module is one loaded YANG module.
type Module struct {
	Name      string
	Namespace string
	Top       []*Node // top-level schema nodes, declared order
}

// Child returns the top-level node with the given local name, or nil.
func (m *Module) Child(name string) *Node {
	for _, n := range m.Top {
		if n.Name == name {
			return n
		}
	}
	return nil
}

// HasDataNodes reports whether the module owns at least one top-level
// node that is not a grouping/rpc/notification — groupings never reach
// this model since we only store data nodes, and rpc/notification
// subtrees are represented by RPCOutput-flagged nodes kept out of Top.
func (m *Module) HasDataNodes() bool {
	return len(m.Top) > 0
}

// Context is the process-wide Schema Context. It is read-concurrent,
// write-exclusive (spec.md §5): readers take RLock, InstallModule
// takes the exclusive Lock.
type Context struct {
	mu          sync.RWMutex
	modules     map[string]*Module
	byNamespace map[string]*Module
}

// NewContext returns an empty Schema Context ready for module installation.
func NewContext() *Context {
	return &Context{
		modules:     make(map[string]*Module),
		byNamespace: make(map[string]*Module),
	}
}

// InstallModule registers m, making it visible to subsequent readers.
// Mutates the Context only here, matching spec.md §3's "mutated only
// by explicit module install/feature toggles" lifecycle.
func (c *Context) InstallModule(m *Module) error {
	if m.Name == "" || m.Namespace == "" {
		return errors.New("schema: module must have a name and namespace")
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.modules[m.Name]; exists {
		return errors.Errorf("schema: module %q already installed", m.Name)
	}
	c.modules[m.Name] = m
	c.byNamespace[m.Namespace] = m
	return nil
}

// ModuleByNamespace resolves a module by its XML namespace URI.
// An unknown namespace is not an error: it reports (nil, false) so
// callers (the Filter Compiler) can silently skip it per spec.md §4.B.
func (c *Context) ModuleByNamespace(ns string) (*Module, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	m, ok := c.byNamespace[ns]
	return m, ok
}

// ModuleByName resolves a module by its declared name.
func (c *Context) ModuleByName(name string) (*Module, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	m, ok := c.modules[name]
	return m, ok
}

// Modules returns every installed module, in no particular order.
func (c *Context) Modules() []*Module {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]*Module, 0, len(c.modules))
	for _, m := range c.modules {
		out = append(out, m)
	}
	return out
}

// ModulesWithLocalName enumerates every module whose top-level schema
// has a child sharing localName, used to resolve unqualified
// (legacy, no-namespace) filter root elements per spec.md §4.B.
func (c *Context) ModulesWithLocalName(localName string) []*Module {
	c.mu.RLock()
	defer c.mu.RUnlock()
	var out []*Module
	for _, m := range c.modules {
		if m.Child(localName) != nil {
			out = append(out, m)
		}
	}
	return out
}

// TypedefDefault walks a leaf's typedef chain upward to find the
// first declared default, starting at the leaf itself. Since this
// model stores only the resolved Default string per Node (typedef
// resolution having already happened at module-load time), this is
// just Node.Default; the method exists to match the schema library
// contract named in spec.md §6 and to give Defaults Filter a single
// named entry point independent of that representation choice.
func (c *Context) TypedefDefault(n *Node) (string, bool) {
	if n == nil || n.Default == "" {
		return "", false
	}
	return n.Default, true
}

// Resolve walks an absolute compiled xpath (no wildcards, no
// predicates needed — only step names and modules matter for schema
// resolution) down to its terminal schema Node, without touching any
// data tree. Used by the Value Codec's callers to recover the leaf
// type a bare backend value doesn't carry.
func (c *Context) Resolve(path string) (*Node, error) {
	steps, err := xpath.Parse(path)
	if err != nil {
		return nil, errors.Wrapf(err, "schema: resolve %q", path)
	}
	if len(steps) == 0 {
		return nil, errors.Errorf("schema: empty path")
	}

	mod, ok := c.ModuleByName(steps[0].Module)
	if !ok {
		return nil, errors.Errorf("schema: unknown module %q", steps[0].Module)
	}
	n := mod.Child(steps[0].Name)
	if n == nil {
		return nil, errors.Errorf("schema: module %q has no top-level node %q", mod.Name, steps[0].Name)
	}
	for _, step := range steps[1:] {
		n = n.Child(step.Name)
		if n == nil {
			return nil, errors.Errorf("schema: no node %q under %q", step.Name, mod.Name)
		}
	}
	return n, nil
}
