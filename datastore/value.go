// Package datastore defines the backend contract named in spec.md §6
// (switch_datastore, refresh, get_items_iter/iter_next, free_iter,
// free_value) as Go interfaces, plus the typed-union Value shape
// (spec.md §9 Design Notes) and an in-memory reference Backend used
// by the demo binary and by tests in place of a production datastore.
package datastore

import "github.com/pkg/errors"

// Kind discriminates the tagged union Value.
type Kind int

const (
	KindContainer Kind = iota
	KindList
	KindLeafEmpty
	KindBool
	KindInt8
	KindInt16
	KindInt32
	KindInt64
	KindUint8
	KindUint16
	KindUint32
	KindUint64
	KindDecimal64
	KindString
	KindBinary
	KindBits
	KindEnum
	KindIdentityRef
	KindInstanceID
)

// Value is one scalar (or container/list marker) value yielded by a
// Backend iterator, tagged by Kind. Exactly one of the typed fields
// is meaningful for a given Kind; Value Codec switches exhaustively
// on Kind to pick it.
type Value struct {
	Kind Kind

	XPath   string // absolute path this value was found at
	Default bool   // true if the backend considers this value schema-default

	Bool   bool
	Int    int64  // Int8..Int64
	Uint   uint64 // Uint8..Uint64
	Str    string // String, Enum
	Bytes  []byte // Binary
	Bits   []string
	Digits int // decimal64 fraction digits

	// IdentityModule is set only when the identity's module differs
	// from the leaf's own schema module (spec.md §4.A).
	IdentityModule string
	Identity       string

	InstanceID string
}

// Sentinel iterator errors (spec.md §6). Other backend errors are
// fatal and should be wrapped with apperr.Datastore by callers.
var (
	ErrNotFound     = errors.New("datastore: not found")
	ErrUnknownModel = errors.New("datastore: unknown model")
	ErrIterDone     = errors.New("datastore: iterator exhausted")
)

// Datastore names the three datastores spec.md §3/§6 define.
type Datastore int

const (
	Running Datastore = iota
	Startup
	Candidate
)

func (d Datastore) String() string {
	switch d {
	case Running:
		return "running"
	case Startup:
		return "startup"
	case Candidate:
		return "candidate"
	default:
		return "unknown"
	}
}

// Iterator yields successive Values for one get_items_iter request.
type Iterator interface {
	// Next returns the next value, or ErrIterDone when exhausted, or
	// ErrNotFound/ErrUnknownModel/another backend error as described
	// in spec.md §6.
	Next() (Value, error)
	// Close releases the iterator (free_iter).
	Close()
}

// Backend is the datastore backend contract from spec.md §6, owned
// per-session (not shared across goroutines).
type Backend interface {
	// SwitchDatastore changes which datastore subsequent operations
	// target.
	SwitchDatastore(ds Datastore) error
	// Refresh refreshes the session's view of its current datastore.
	Refresh() error
	// Items issues an iterator request for everything at or under xpath.
	Items(xpath string) (Iterator, error)
	// CandidateDiverged reports whether the candidate datastore has
	// pending edits not yet present in running (spec.md §4.F step 4).
	CandidateDiverged() bool
}
