package filter

import (
	"strings"

	"github.com/damianoneill/netconf-yang-server/yang/schema"
)

// Compile converts a parsed subtree filter forest into the compiled
// xpath strings, one per containment/selection/content-match branch
// found (spec.md §4.B). An empty forest compiles to the no-filter
// enumeration of every installed module with data nodes.
func Compile(ctx *schema.Context, forest []*Elem) ([]string, error) {
	if len(forest) == 0 {
		return noFilterPaths(ctx), nil
	}

	var filters []string
	for _, root := range forest {
		modules, err := resolveRootModules(ctx, root)
		if err != nil {
			return nil, err
		}

		for _, mod := range modules {
			if len(root.Children) == 0 && strings.TrimSpace(root.Content) != "" {
				// special case: top-level content match node.
				seg, ok := buildTopContent(root, mod.Name)
				if ok {
					filters = append(filters, seg)
				}
				continue
			}

			sub, err := compileNode(ctx, root, mod.Name, mod.Namespace, "")
			if err != nil {
				return nil, err
			}
			filters = append(filters, sub...)
		}
	}
	return filters, nil
}

// resolveRootModules resolves the module(s) a filter's root element
// belongs to: a namespaced root resolves to exactly one module (or
// none, silently skipped, if the namespace is unknown); an
// unqualified root enumerates every module declaring a matching
// top-level node, the legacy behavior op_get_config.c's module-iterate
// loop implements.
func resolveRootModules(ctx *schema.Context, root *Elem) ([]*schema.Module, error) {
	if root.NS != "" && root.NS != ncBaseNS {
		mod, ok := ctx.ModuleByNamespace(root.NS)
		if !ok {
			return nil, nil
		}
		return []*schema.Module{mod}, nil
	}
	return ctx.ModulesWithLocalName(root.Name), nil
}

// noFilterPaths implements the no-filter branch: one "/module:*" path
// per installed module that has at least one top-level data node.
func noFilterPaths(ctx *schema.Context) []string {
	var out []string
	for _, m := range ctx.Modules() {
		if m.HasDataNodes() {
			out = append(out, "/"+m.Name+":*")
		}
	}
	return out
}

// compileNode recurses over one filter subtree, grounded on
// opget_xpath_buf_add. moduleName/lastNS carry forward the namespace
// already resolved for elem itself (empty moduleName lets the node's
// own namespace, if any, resolve it); prefix is the compiled xpath
// accumulated so far for elem's parent chain.
func compileNode(ctx *schema.Context, elem *Elem, moduleName, lastNS, prefix string) ([]string, error) {
	seg, moduleName, lastNS, ok := buildNodeSegment(ctx, elem, moduleName, lastNS)
	if !ok {
		return nil, nil
	}
	full := prefix + seg

	var filters []string
	var selections []string
	var structural []*Elem
	for _, child := range elem.Children {
		if len(child.Children) == 0 && strings.TrimSpace(child.Content) != "" {
			// content match node: the predicate is appended directly to
			// full itself (opget_xpath_buf_add_content mutates *buf
			// before the node is added), so it persists into this
			// node's selection form and into every later selection form
			// and structural sibling. full itself is emitted only when
			// no structural children remain.
			contentSeg, ok := buildContentPredicate(ctx, child, moduleName, lastNS)
			if !ok {
				continue
			}
			full += contentSeg

			selSeg, _, _, ok := buildNodeSegment(ctx, child, moduleName, lastNS)
			if ok {
				selections = append(selections, full+selSeg)
			}
			continue
		}
		structural = append(structural, child)
	}

	if len(structural) == 0 {
		filters = append(filters, full)
		filters = append(filters, selections...)
		return filters, nil
	}

	filters = append(filters, selections...)
	for _, child := range structural {
		sub, err := compileNode(ctx, child, "", lastNS, full)
		if err != nil {
			return nil, err
		}
		filters = append(filters, sub...)
	}
	return filters, nil
}

// buildNodeSegment renders "/module:name" (or "/name" if moduleName is
// still unresolved and elem carries no useful namespace) plus any
// attribute predicates, resolving elem's own namespace into moduleName
// when the caller didn't already pin one down (child recursion always
// passes an empty moduleName so each child re-resolves against its own
// namespace, exactly as opget_xpath_buf_add_node does). ok is false
// when elem's namespace doesn't match any installed module — the node
// and everything under it is silently dropped, not an error.
func buildNodeSegment(ctx *schema.Context, elem *Elem, moduleName, lastNS string) (seg, newModule, newLastNS string, ok bool) {
	newModule, newLastNS = moduleName, lastNS
	if moduleName == "" && elem.NS != "" && elem.NS != lastNS && elem.NS != ncBaseNS {
		mod, found := ctx.ModuleByNamespace(elem.NS)
		if !found {
			return "", "", "", false
		}
		newModule = mod.Name
		newLastNS = elem.NS
	}

	var b strings.Builder
	b.WriteByte('/')
	if newModule != "" {
		b.WriteString(newModule)
		b.WriteByte(':')
	}
	b.WriteString(elem.Name)
	appendAttrPredicates(ctx, &b, elem.Attrs)
	return b.String(), newModule, newLastNS, true
}

// buildContentPredicate renders "[name='value']" (or
// "[module:name='value']" before a namespace has been pinned) for a
// content-match child, grounded on opget_xpath_buf_add_content.
func buildContentPredicate(ctx *schema.Context, elem *Elem, moduleName, lastNS string) (string, bool) {
	newModule := moduleName
	if moduleName == "" && elem.NS != "" && elem.NS != lastNS && elem.NS != ncBaseNS {
		mod, found := ctx.ModuleByNamespace(elem.NS)
		if !found {
			return "", false
		}
		newModule = mod.Name
	}

	var b strings.Builder
	b.WriteByte('[')
	if newModule != "" {
		b.WriteString(newModule)
		b.WriteByte(':')
	}
	b.WriteString(elem.Name)
	appendAttrPredicates(ctx, &b, elem.Attrs)
	b.WriteString("='")
	b.WriteString(strings.TrimSpace(elem.Content))
	b.WriteString("']")
	return b.String(), true
}

// buildTopContent renders the special-cased top-level content-match
// form "/module:name[text()='value']", grounded on
// opget_xpath_buf_add_top_content.
func buildTopContent(elem *Elem, moduleName string) (string, bool) {
	var b strings.Builder
	b.WriteByte('/')
	b.WriteString(moduleName)
	b.WriteByte(':')
	b.WriteString(elem.Name)
	b.WriteString("[text()='")
	b.WriteString(strings.TrimSpace(elem.Content))
	b.WriteString("']")
	return b.String(), true
}

// appendAttrPredicates appends "[@module:name='value']" for every
// attribute whose namespace resolves to an installed module, silently
// skipping attributes with no namespace or an unknown one, grounded on
// opget_xpath_buf_add_attrs.
func appendAttrPredicates(ctx *schema.Context, b *strings.Builder, attrs []Attr) {
	for _, a := range attrs {
		if a.NS == "" {
			continue
		}
		mod, ok := ctx.ModuleByNamespace(a.NS)
		if !ok {
			continue
		}
		b.WriteString("[@")
		b.WriteString(mod.Name)
		b.WriteByte(':')
		b.WriteString(a.Name)
		b.WriteString("='")
		b.WriteString(a.Value)
		b.WriteString("']")
	}
}
