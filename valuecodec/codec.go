// Package valuecodec implements the Value Codec (spec.md §4.A): the
// two-way conversion between a datastore.Value's typed union and the
// canonical text form stored on a datatree.Node leaf, plus the reverse
// conversion used when serializing a node back into a datastore.Value
// (e.g. for a future write path). Grounded on op_get_srval and
// op_set_srval in original_source/server/operations.c.
package valuecodec

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/damianoneill/netconf-yang-server/apperr"
	"github.com/damianoneill/netconf-yang-server/datastore"
	"github.com/damianoneill/netconf-yang-server/yang/schema"
)

// ErrUnsupportedType reports a leaf typed leafref, union or a derived
// type the codec cannot render a canonical text value for — op_set_srval's
// SR_UNKNOWN_T fallback for LY_LEAFREF/LY_DERIVED/LY_UNION.
var ErrUnsupportedType = errors.New("valuecodec: unsupported leaf type")

// DatastoreToTree converts one backend Value into the canonical text
// form a datatree.Node stores, using sn to resolve schema details the
// Value itself doesn't carry (decimal64 fraction digits, bits ordering).
// buf is scratch space the caller may reuse across calls, mirroring
// op_get_srval's caller-supplied buf[128] — the codec never allocates
// for the numeric/decimal formatting paths.
func DatastoreToTree(sn *schema.Node, v datastore.Value, buf []byte) (string, error) {
	switch v.Kind {
	case datastore.KindString, datastore.KindBinary, datastore.KindEnum, datastore.KindInstanceID:
		return v.Str, nil
	case datastore.KindLeafEmpty:
		return "", nil
	case datastore.KindBool:
		if v.Bool {
			return "true", nil
		}
		return "false", nil
	case datastore.KindDecimal64:
		digits := v.Digits
		if sn != nil && sn.Type != nil {
			digits = sn.Type.FractionDigits
		}
		return formatDecimal64(v.Int, digits, buf), nil
	case datastore.KindInt8, datastore.KindInt16, datastore.KindInt32, datastore.KindInt64:
		return string(strconv.AppendInt(buf[:0], v.Int, 10)), nil
	case datastore.KindUint8, datastore.KindUint16, datastore.KindUint32, datastore.KindUint64:
		return string(strconv.AppendUint(buf[:0], v.Uint, 10)), nil
	case datastore.KindBits:
		return strings.Join(orderedBits(sn, v.Bits), " "), nil
	case datastore.KindIdentityRef:
		if v.IdentityModule != "" && (sn == nil || v.IdentityModule != sn.Module.Name) {
			return v.IdentityModule + ":" + v.Identity, nil
		}
		return v.Identity, nil
	default:
		return "", apperr.Internal("valuecodec: container/list value %q has no leaf text form", v.XPath)
	}
}

// formatDecimal64 renders a decimal64 value stored as a scaled int64
// (the value times 10^digits, as the wire encoding carries it) with
// the decimal point shifted left by digits places, matching
// op_get_srval's "%.*f" formatting of the already-shifted double.
func formatDecimal64(scaled int64, digits int, buf []byte) string {
	if digits <= 0 {
		return string(strconv.AppendInt(buf[:0], scaled, 10))
	}
	neg := scaled < 0
	if neg {
		scaled = -scaled
	}
	s := strconv.AppendInt(buf[:0], scaled, 10)
	for len(s) <= digits {
		s = append([]byte{'0'}, s...)
	}
	intPart := s[:len(s)-digits]
	fracPart := s[len(s)-digits:]
	out := make([]byte, 0, len(intPart)+len(fracPart)+2)
	if neg {
		out = append(out, '-')
	}
	out = append(out, intPart...)
	out = append(out, '.')
	out = append(out, fracPart...)
	return string(out)
}

// orderedBits renders bits in schema-declared position order, dropping
// any name the schema doesn't recognize (a defensive no-op when sn is
// absent: the codec returns the names as given).
func orderedBits(sn *schema.Node, set []string) []string {
	if sn == nil || sn.Type == nil || len(sn.Type.BitNames) == 0 {
		return set
	}
	present := make(map[string]bool, len(set))
	for _, b := range set {
		present[b] = true
	}
	out := make([]string, 0, len(set))
	for _, name := range sn.Type.BitNames {
		if present[name] {
			out = append(out, name)
		}
	}
	return out
}

// TreeToDatastore converts a leaf's canonical text value back into a
// typed datastore.Value, the inverse of DatastoreToTree, grounded on
// op_set_srval's type switch. If dup is false the returned Value
// shares text storage with the caller-owned text argument rather than
// copying it (op_set_srval's dup/val_buf distinction); dup exists only
// to document the borrow and has no effect in Go, since strings are
// already immutable and share-safe.
func TreeToDatastore(sn *schema.Node, text string, dup bool) (datastore.Value, error) {
	_ = dup
	if sn == nil || sn.Type == nil {
		return datastore.Value{}, apperr.Internal("valuecodec: missing leaf type for %q", text)
	}

	v := datastore.Value{XPath: sn.Path()}
	switch sn.Type.Base {
	case schema.BaseString:
		v.Kind, v.Str = datastore.KindString, text
	case schema.BaseBinary:
		v.Kind, v.Str = datastore.KindBinary, text
	case schema.BaseBits:
		v.Kind, v.Bits = datastore.KindBits, strings.Fields(text)
	case schema.BaseBool:
		v.Kind = datastore.KindBool
		v.Bool = text == "true"
	case schema.BaseDecimal64:
		scaled, err := parseDecimal64(text, sn.Type.FractionDigits)
		if err != nil {
			return datastore.Value{}, apperr.Parse("valuecodec: %v", err)
		}
		v.Kind, v.Int, v.Digits = datastore.KindDecimal64, scaled, sn.Type.FractionDigits
	case schema.BaseEmpty:
		v.Kind = datastore.KindLeafEmpty
	case schema.BaseEnum:
		v.Kind, v.Str = datastore.KindEnum, text
	case schema.BaseIdentityref:
		v.Kind = datastore.KindIdentityRef
		if i := strings.IndexByte(text, ':'); i >= 0 {
			v.IdentityModule, v.Identity = text[:i], text[i+1:]
		} else {
			v.IdentityModule, v.Identity = sn.Module.Name, text
		}
	case schema.BaseInstanceIdentifier:
		v.Kind, v.Str = datastore.KindInstanceID, text
	case schema.BaseInt8:
		n, err := strconv.ParseInt(text, 10, 8)
		v.Kind, v.Int = datastore.KindInt8, n
		if err != nil {
			return datastore.Value{}, apperr.Parse("valuecodec: %v", err)
		}
	case schema.BaseInt16:
		n, err := strconv.ParseInt(text, 10, 16)
		v.Kind, v.Int = datastore.KindInt16, n
		if err != nil {
			return datastore.Value{}, apperr.Parse("valuecodec: %v", err)
		}
	case schema.BaseInt32:
		n, err := strconv.ParseInt(text, 10, 32)
		v.Kind, v.Int = datastore.KindInt32, n
		if err != nil {
			return datastore.Value{}, apperr.Parse("valuecodec: %v", err)
		}
	case schema.BaseInt64:
		n, err := strconv.ParseInt(text, 10, 64)
		v.Kind, v.Int = datastore.KindInt64, n
		if err != nil {
			return datastore.Value{}, apperr.Parse("valuecodec: %v", err)
		}
	case schema.BaseUint8:
		n, err := strconv.ParseUint(text, 10, 8)
		v.Kind, v.Uint = datastore.KindUint8, n
		if err != nil {
			return datastore.Value{}, apperr.Parse("valuecodec: %v", err)
		}
	case schema.BaseUint16:
		n, err := strconv.ParseUint(text, 10, 16)
		v.Kind, v.Uint = datastore.KindUint16, n
		if err != nil {
			return datastore.Value{}, apperr.Parse("valuecodec: %v", err)
		}
	case schema.BaseUint32:
		n, err := strconv.ParseUint(text, 10, 32)
		v.Kind, v.Uint = datastore.KindUint32, n
		if err != nil {
			return datastore.Value{}, apperr.Parse("valuecodec: %v", err)
		}
	case schema.BaseUint64:
		n, err := strconv.ParseUint(text, 10, 64)
		v.Kind, v.Uint = datastore.KindUint64, n
		if err != nil {
			return datastore.Value{}, apperr.Parse("valuecodec: %v", err)
		}
	default:
		// BaseUnsupported: leafref, union, derived — op_set_srval's
		// SR_UNKNOWN_T fallback.
		return datastore.Value{}, errors.Wrapf(ErrUnsupportedType, "leaf %s", sn.Path())
	}
	return v, nil
}

// parseDecimal64 parses a decimal text value into its scaled int64
// representation (value * 10^digits), the inverse of formatDecimal64.
func parseDecimal64(text string, digits int) (int64, error) {
	neg := strings.HasPrefix(text, "-")
	if neg {
		text = text[1:]
	}
	intPart, fracPart := text, ""
	if i := strings.IndexByte(text, '.'); i >= 0 {
		intPart, fracPart = text[:i], text[i+1:]
	}
	for len(fracPart) < digits {
		fracPart += "0"
	}
	fracPart = fracPart[:digits]
	combined := intPart + fracPart
	if combined == "" {
		combined = "0"
	}
	n, err := strconv.ParseInt(combined, 10, 64)
	if err != nil {
		return 0, err
	}
	if neg {
		n = -n
	}
	return n, nil
}
