package readop

import (
	"github.com/damianoneill/netconf-yang-server/netconf/common"
	ncserver "github.com/damianoneill/netconf-yang-server/netconf/server/netconf"
)

// Callback adapts a Server/Session pair to ncserver.SessionCallback,
// the interface netconf/server/netconf.SessionHandler calls into for
// every connected session (spec.md §1's "external collaborator"
// boundary: this is the one place the read path is wired to a live
// transport).
type Callback struct {
	srv  *Server
	sess *Session
	caps []string
}

// NewCallback returns a Callback advertising caps (or, if empty,
// common.DefaultCapabilities plus this server's with-defaults
// capability) and dispatching every RPC to srv.Handle(sess, ...).
func NewCallback(srv *Server, sess *Session, caps []string) *Callback {
	if len(caps) == 0 {
		caps = append(append([]string{}, common.DefaultCapabilities...), WithDefaultsCapability(srv.DefaultWDM))
	}
	return &Callback{srv: srv, sess: sess, caps: caps}
}

func (c *Callback) Capabilities() []string { return c.caps }

func (c *Callback) HandleRequest(req *ncserver.RPCRequestMessage) *ncserver.RPCReplyMessage {
	return c.srv.Handle(c.sess, req)
}
