// Package xpath models the narrow subset of absolute, module-qualified
// XPath expressions that this server both compiles (filter) and
// consumes (assemble, defaults): a sequence of "/module:name" steps,
// each optionally carrying key, attribute or text() predicates.
//
// This is not a general XPath 1.0 evaluator; evaluating arbitrary
// XPath is out of scope (spec Non-goals). Parsing here only has to
// understand the grammar this server itself emits in the Filter
// Compiler, plus whatever a client supplies verbatim via a
// type="xpath" filter, which by convention follows the same shape.
package xpath

import (
	"strings"

	"github.com/pkg/errors"
)

// PredKind distinguishes the three predicate shapes this server emits.
type PredKind int

const (
	// PredKey is a list-key-style predicate: [name='value'] or [module:name='value'].
	PredKey PredKind = iota
	// PredAttr is an attribute-match predicate: [@module:name='value'].
	PredAttr
	// PredText is the content-match-at-root predicate: [text()='value'].
	PredText
)

// Predicate is one bracketed qualifier following a step.
type Predicate struct {
	Kind   PredKind
	Module string // owning module: Key predicates only when qualified; unqualified Attr predicates take the step's module
	Name   string // leaf/attribute name; empty for PredText
	Value  string
}

// Step is one "/module:name[predicates]" segment of a compiled path.
type Step struct {
	Module     string // resolved module name; may be empty only for the synthetic wildcard step
	Name       string // local name, or "*" for a whole-module wildcard step
	Predicates []Predicate
}

// Parse splits an absolute compiled XPath string into its steps.
// It understands exactly the grammar produced by the filter compiler:
// one or more "/module:name" or "/name" segments, each optionally
// followed by any number of "[...]" predicates using single-quoted
// values (values themselves never contain "]").
func Parse(path string) ([]Step, error) {
	if !strings.HasPrefix(path, "/") {
		return nil, errors.Errorf("xpath: expected absolute path, got %q", path)
	}

	var steps []Step
	rest := path[1:]
	lastModule := ""

	for len(rest) > 0 {
		// name portion: up to next '/' or '[' or end.
		end := len(rest)
		for i, r := range rest {
			if r == '/' || r == '[' {
				end = i
				break
			}
		}
		seg := rest[:end]
		rest = rest[end:]

		module, name, err := splitQName(seg, lastModule)
		if err != nil {
			return nil, err
		}
		if name != "*" {
			lastModule = module
		}

		step := Step{Module: module, Name: name}

		for strings.HasPrefix(rest, "[") {
			predEnd := strings.Index(rest, "]")
			if predEnd < 0 {
				return nil, errors.Errorf("xpath: unterminated predicate in %q", path)
			}
			predStr := rest[1:predEnd]
			rest = rest[predEnd+1:]

			pred, perr := parsePredicate(predStr, module)
			if perr != nil {
				return nil, perr
			}
			step.Predicates = append(step.Predicates, pred)
		}

		steps = append(steps, step)

		if strings.HasPrefix(rest, "/") {
			rest = rest[1:]
		}
	}

	return steps, nil
}

func splitQName(seg, lastModule string) (module, name string, err error) {
	if seg == "" {
		return "", "", errors.New("xpath: empty step")
	}
	if idx := strings.IndexByte(seg, ':'); idx >= 0 {
		return seg[:idx], seg[idx+1:], nil
	}
	return lastModule, seg, nil
}

func parsePredicate(s, stepModule string) (Predicate, error) {
	switch {
	case strings.HasPrefix(s, "text()="):
		return Predicate{Kind: PredText, Value: unquote(strings.TrimPrefix(s, "text()="))}, nil
	case strings.HasPrefix(s, "@"):
		kv := strings.SplitN(s[1:], "=", 2)
		if len(kv) != 2 {
			return Predicate{}, errors.Errorf("xpath: malformed attribute predicate [%s]", s)
		}
		module, name, err := splitQName(kv[0], stepModule)
		if err != nil {
			return Predicate{}, err
		}
		return Predicate{Kind: PredAttr, Module: module, Name: name, Value: unquote(kv[1])}, nil
	default:
		kv := strings.SplitN(s, "=", 2)
		if len(kv) != 2 {
			return Predicate{}, errors.Errorf("xpath: malformed key predicate [%s]", s)
		}
		module, name, err := splitQName(kv[0], "")
		if err != nil {
			return Predicate{}, err
		}
		return Predicate{Kind: PredKey, Module: module, Name: name, Value: unquote(kv[1])}, nil
	}
}

func unquote(s string) string {
	s = strings.TrimSpace(s)
	if len(s) >= 2 && s[0] == '\'' && s[len(s)-1] == '\'' {
		return s[1 : len(s)-1]
	}
	return s
}

// String reassembles steps back into their canonical compiled form.
func String(steps []Step) string {
	var b strings.Builder
	lastModule := ""
	for _, st := range steps {
		b.WriteByte('/')
		if st.Module != lastModule {
			b.WriteString(st.Module)
			b.WriteByte(':')
			if st.Name != "*" {
				lastModule = st.Module
			}
		}
		b.WriteString(st.Name)
		for _, p := range st.Predicates {
			b.WriteByte('[')
			switch p.Kind {
			case PredText:
				b.WriteString("text()='")
				b.WriteString(p.Value)
				b.WriteString("'")
			case PredAttr:
				b.WriteByte('@')
				if p.Module != "" {
					b.WriteString(p.Module)
					b.WriteByte(':')
				}
				b.WriteString(p.Name)
				b.WriteString("='")
				b.WriteString(p.Value)
				b.WriteString("'")
			default:
				if p.Module != "" {
					b.WriteString(p.Module)
					b.WriteByte(':')
				}
				b.WriteString(p.Name)
				b.WriteString("='")
				b.WriteString(p.Value)
				b.WriteString("'")
			}
			b.WriteByte(']')
		}
	}
	return b.String()
}

// TopModule returns the module name of the first step, or "" if steps is empty.
func TopModule(steps []Step) string {
	if len(steps) == 0 {
		return ""
	}
	return steps[0].Module
}
