package datatree

import (
	"bytes"
	"encoding/xml"
	"strings"

	"github.com/damianoneill/netconf-yang-server/yang/schema"
)

// RenderXML serializes every root of t into its instance-data XML
// form, the final step of the Wrap stage (spec.md §4.F step 7): one
// element per root, xmlns declared whenever a node's module differs
// from its parent's, leaf/leaf-list content as escaped text.
func RenderXML(t *Tree) string {
	var b strings.Builder
	for _, r := range t.Roots() {
		renderNode(&b, t, r, nil)
	}
	return b.String()
}

func renderNode(b *strings.Builder, t *Tree, id NodeID, parentModule *schema.Module) {
	n := t.Node(id)
	sn := n.Schema

	b.WriteByte('<')
	b.WriteString(sn.Name)
	if parentModule != sn.Module {
		b.WriteString(` xmlns="`)
		b.WriteString(escapeXML(sn.Module.Namespace))
		b.WriteByte('"')
	}
	for _, a := range n.Attrs {
		b.WriteByte(' ')
		b.WriteString(a.Module)
		b.WriteByte(':')
		b.WriteString(a.Name)
		b.WriteString(`="`)
		b.WriteString(escapeXML(a.Value))
		b.WriteByte('"')
	}
	b.WriteByte('>')

	switch sn.Kind {
	case schema.Leaf, schema.LeafList:
		b.WriteString(escapeXML(n.Value))
	default:
		for _, c := range t.Children(id) {
			renderNode(b, t, c, sn.Module)
		}
	}

	b.WriteString("</")
	b.WriteString(sn.Name)
	b.WriteByte('>')
}

func escapeXML(s string) string {
	var buf bytes.Buffer
	_ = xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
