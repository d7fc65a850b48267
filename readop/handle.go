package readop

import (
	"encoding/xml"

	"github.com/damianoneill/netconf-yang-server/apperr"
	"github.com/damianoneill/netconf-yang-server/assemble"
	"github.com/damianoneill/netconf-yang-server/datastore"
	"github.com/damianoneill/netconf-yang-server/datatree"
	"github.com/damianoneill/netconf-yang-server/defaults"
	"github.com/damianoneill/netconf-yang-server/filter"
	"github.com/damianoneill/netconf-yang-server/netconf/common"
	ncserver "github.com/damianoneill/netconf-yang-server/netconf/server/netconf"
	"github.com/damianoneill/netconf-yang-server/xpath"
	"github.com/damianoneill/netconf-yang-server/yang/schema"
)

// localTreeModules always route to the Local Tree Projector (§4.D)
// rather than the Subtree Builder, and are skipped entirely under
// get-config (spec.md §4.F step 5).
var localTreeModules = map[string]bool{
	"ietf-yang-library":       true,
	"ietf-netconf-monitoring": true,
	"nc-notifications":        true,
}

// Server is the explicit, non-global Orchestrator context (spec.md §9
// replacing np2srv's global state): the Schema Context and the
// server-wide default with-defaults mode every Session falls back to.
type Server struct {
	SC         *schema.Context
	DefaultWDM defaults.WDM
	Trace      *Trace
}

// NewServer returns a Server with NoOpLoggingHooks; callers override
// Trace for diagnostics.
func NewServer(sc *schema.Context, defaultWDM defaults.WDM) *Server {
	return &Server{SC: sc, DefaultWDM: defaultWDM, Trace: NoOpLoggingHooks}
}

// Handle implements spec.md §4.F steps 1-7 for one inbound
// <get>/<get-config> RPC, serialized by sess's RPC mutex. Any-step
// failure produces a single operation-failed/application/error
// rpc-error carrying the failing step's message (spec.md §4.F).
func (s *Server) Handle(sess *Session, req *ncserver.RPCRequestMessage) *ncserver.RPCReplyMessage {
	sess.lock()
	defer sess.unlock()

	reply, err := s.handleLocked(sess, req)
	if err != nil {
		s.Trace.Handled("", err)
		return &ncserver.RPCReplyMessage{
			MessageID: req.MessageID,
			Errors:    []common.RPCError{toRPCError(err)},
		}
	}
	return reply
}

func (s *Server) handleLocked(sess *Session, req *ncserver.RPCRequestMessage) (*ncserver.RPCReplyMessage, error) {
	isGetConfig := req.Request.XMLName.Local == "get-config"

	body, err := decodeRequestBody(req.Request.Body)
	if err != nil {
		return nil, err
	}

	// Step 1: datastore selection.
	ds := datastore.Running
	configOnly := false
	if isGetConfig {
		ds = body.datastoreFrom()
		configOnly = true
	}
	if err := sess.selectDatastore(ds, configOnly); err != nil {
		return nil, apperr.Datastore(err, "switch to %s", ds)
	}

	// Step 2: filter compilation.
	xpaths, err := compileFilter(s.SC, body)
	if err != nil {
		return nil, err
	}

	// Step 3: with-defaults resolution.
	wdm, ok := parseWDM(body.WithDefaults, s.DefaultWDM)
	if !ok {
		return nil, apperr.Parse("unrecognized with-defaults mode %q", body.WithDefaults)
	}

	// Step 4: datastore refresh.
	if err := sess.refresh(); err != nil {
		return nil, apperr.Datastore(err, "refresh")
	}

	// Step 5: assembly, dispatched per xpath.
	dst := datatree.New()
	for _, xp := range xpaths {
		if err := assembleOne(s.SC, sess, dst, xp, configOnly); err != nil {
			s.Trace.Handled(xp, err)
			return nil, err
		}
		s.Trace.Handled(xp, nil)
	}

	// Step 6: defaults pass.
	defaults.Apply(s.SC, dst, wdm, false)

	// Step 7: wrap.
	return wrapReply(req, dst), nil
}

// compileFilter implements spec.md §4.B's two entry shapes: an xpath
// filter passes its select attribute through unchanged; a subtree
// filter is parsed and compiled; no filter compiles to the no-filter
// module enumeration.
func compileFilter(sc *schema.Context, body requestBody) ([]string, error) {
	if !body.hasFilter() {
		return filter.Compile(sc, nil)
	}
	if body.Filter.Type == "xpath" {
		if body.Filter.Select == "" {
			return nil, nil
		}
		return []string{body.Filter.Select}, nil
	}

	forest, err := filter.ParseForest(body.Filter.Content)
	if err != nil {
		return nil, err
	}
	return filter.Compile(sc, forest)
}

// assembleOne routes one compiled xpath to the Subtree Builder or the
// Local Tree Projector based on its top-level module, per spec.md
// §4.F step 5 and the config-only-aware per-filter routing carried
// over from op_get_config.c (SUPPLEMENTED FEATURES #1).
func assembleOne(sc *schema.Context, sess *Session, dst *datatree.Tree, xp string, configOnly bool) error {
	steps, err := xpath.Parse(xp)
	if err != nil {
		return apperr.Parse("%v", err)
	}
	module := xpath.TopModule(steps)

	if localTreeModules[module] {
		if configOnly {
			return nil
		}
		src := sess.LocalTrees[module]
		if src == nil {
			return nil
		}
		return assemble.FromLocalTree(sc, dst, src, xp)
	}
	return assemble.FromDatastore(sc, sess.Backend, dst, xp)
}

// wrapReply renders dst and wraps it in a cloned rpc-reply envelope
// carrying the original request's message-id, spec.md §4.F step 7.
func wrapReply(req *ncserver.RPCRequestMessage, dst *datatree.Tree) *ncserver.RPCReplyMessage {
	return &ncserver.RPCReplyMessage{
		XMLName:   xml.Name{Space: common.NetconfNS, Local: "rpc-reply"},
		MessageID: req.MessageID,
		Ok:        true,
		Data:      ncserver.ReplyData{Data: datatree.RenderXML(dst)},
	}
}
