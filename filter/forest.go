// Package filter implements the Filter Compiler (spec.md §4.B): it
// turns a NETCONF <filter> body (subtree or xpath) into the list of
// compiled absolute xpath strings the Subtree Builder and Local Tree
// Projector consume. Grounded line-by-line on
// original_source/server/op_get_config.c's opget_build_xpath_from_subtree_filter
// and its opget_xpath_buf_add* helpers, reformulated as pure recursion
// (spec.md §9): every builder function here returns new strings
// instead of mutating a shared buffer or the input XML tree.
package filter

import (
	"encoding/xml"
	"io"
	"strings"

	"github.com/damianoneill/netconf-yang-server/apperr"
)

// ncBaseNS is the base NETCONF namespace, excluded from namespace
// tracking the same way op_get_config.c special-cases it.
const ncBaseNS = "urn:ietf:params:xml:ns:netconf:base:1.0"

// Attr is one XML attribute on a subtree filter element.
type Attr struct {
	NS    string
	Name  string
	Value string
}

// Elem is one node of the parsed subtree filter forest.
type Elem struct {
	NS       string
	Name     string
	Attrs    []Attr
	Content  string
	Children []*Elem
}

// ParseForest parses a <filter type="subtree"> body, which may contain
// more than one top-level element, into a forest of Elem trees.
func ParseForest(body string) ([]*Elem, error) {
	dec := xml.NewDecoder(strings.NewReader(body))

	var roots []*Elem
	var stack []*Elem

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, apperr.Parse("filter: malformed subtree filter: %v", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			e := &Elem{NS: t.Name.Space, Name: t.Name.Local}
			for _, a := range t.Attr {
				if a.Name.Space == "xmlns" || a.Name.Local == "xmlns" {
					continue
				}
				e.Attrs = append(e.Attrs, Attr{NS: a.Name.Space, Name: a.Name.Local, Value: a.Value})
			}
			if len(stack) == 0 {
				roots = append(roots, e)
			} else {
				parent := stack[len(stack)-1]
				parent.Children = append(parent.Children, e)
			}
			stack = append(stack, e)
		case xml.EndElement:
			stack = stack[:len(stack)-1]
		case xml.CharData:
			if len(stack) > 0 {
				stack[len(stack)-1].Content += string(t)
			}
		}
	}

	return roots, nil
}
