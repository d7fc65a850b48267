// Package readop implements the Read Operation Orchestrator (spec.md
// §4.F): the glue that turns one inbound <get>/<get-config> RPC into
// a compiled filter, a populated reply tree, and a wire reply,
// driving the Filter Compiler, Subtree Builder, Local Tree Projector
// and Defaults Filter in sequence. Grounded on op_get in
// original_source/server/op_get_config.c.
package readop

import (
	"sync"

	"github.com/damianoneill/netconf-yang-server/datastore"
	"github.com/damianoneill/netconf-yang-server/datatree"
)

// Session holds the per-connection state the Orchestrator mutates:
// the datastore handle, which datastore is selected, and whether the
// session is config-only; whether candidate has diverged from running
// is asked of the backend. spec.md §5 calls for an RPC mutex plus a condition
// variable signalling "rpc-in-use"; a plain sync.Mutex already
// provides that serialization since Lock blocks the next RPC for the
// lifetime of the current one, so no sync.Cond is introduced here
// (see DESIGN.md).
type Session struct {
	mu sync.Mutex

	Backend    datastore.Backend
	DS         datastore.Datastore
	ConfigOnly bool

	// LocalTrees supplies the already-assembled data for modules the
	// Local Tree Projector serves (ietf-yang-library etc.), keyed by
	// module name.
	LocalTrees map[string]*datatree.Tree
}

// NewSession returns a Session bound to backend, defaulting to the
// running datastore.
func NewSession(backend datastore.Backend) *Session {
	return &Session{Backend: backend, DS: datastore.Running}
}

// lock acquires the session's RPC mutex for the duration of one
// Handle call.
func (s *Session) lock()   { s.mu.Lock() }
func (s *Session) unlock() { s.mu.Unlock() }

// selectDatastore implements spec.md §4.F step 1: switch the
// session's datastore if the request resolves to a different one than
// currently selected.
func (s *Session) selectDatastore(ds datastore.Datastore, configOnly bool) error {
	if ds == s.DS && configOnly == s.ConfigOnly {
		return nil
	}
	if err := s.Backend.SwitchDatastore(ds); err != nil {
		return err
	}
	s.DS = ds
	s.ConfigOnly = configOnly
	return nil
}

// refresh implements spec.md §4.F step 4: non-candidate datastores
// always refresh; candidate refreshes only while it has not yet
// diverged from running.
func (s *Session) refresh() error {
	if s.DS != datastore.Candidate || !s.Backend.CandidateDiverged() {
		return s.Backend.Refresh()
	}
	return nil
}
