// Command netconf-yang-server is a demonstration NETCONF server
// exposing the read path (<get>/<get-config>) over SSH against an
// in-memory datastore seeded with a handful of ietf-interfaces
// instances, wiring readop.Server/Session behind
// netconf/server/netconf.Server the way spec.md §1 describes the
// Orchestrator plugging into a transport.
package main

import (
	"context"
	"flag"
	"log"

	"github.com/damianoneill/netconf-yang-server/datastore"
	"github.com/damianoneill/netconf-yang-server/defaults"
	ncserver "github.com/damianoneill/netconf-yang-server/netconf/server/netconf"
	"github.com/damianoneill/netconf-yang-server/netconf/server/ssh"
	"github.com/damianoneill/netconf-yang-server/readop"
	"github.com/damianoneill/netconf-yang-server/yang/schema"
)

func main() {
	addr := flag.String("address", "0.0.0.0", "listen address")
	port := flag.Int("port", 8330, "listen port")
	user := flag.String("user", "admin", "SSH username")
	pass := flag.String("password", "admin", "SSH password")
	wdm := flag.String("with-defaults", "explicit", "server with-defaults basic-mode (report-all|report-all-tagged|trim|explicit)")
	flag.Parse()

	mode, ok := parseWDMFlag(*wdm)
	if !ok {
		log.Fatalf("netconf-yang-server: unrecognized -with-defaults %q", *wdm)
	}

	sc := buildDemoSchema()
	srv := readop.NewServer(sc, mode)
	srv.Trace = readop.DefaultLoggingHooks

	sshcfg, err := ssh.PasswordConfig(*user, *pass)
	if err != nil {
		log.Fatalf("netconf-yang-server: generating ssh host key: %v", err)
	}

	sf := func(*ncserver.SessionHandler) ncserver.SessionCallback {
		sess := readop.NewSession(seedDemoBackend())
		return readop.NewCallback(srv, sess, nil)
	}

	ncs, err := ncserver.NewServer(context.Background(), *addr, *port, sshcfg, sf)
	if err != nil {
		log.Fatalf("netconf-yang-server: listen: %v", err)
	}
	defer ncs.Close()

	log.Printf("netconf-yang-server: listening on %s:%d (with-defaults=%s)\n", *addr, *port, *wdm)
	select {}
}

func parseWDMFlag(text string) (defaults.WDM, bool) {
	switch text {
	case "report-all":
		return defaults.ReportAll, true
	case "report-all-tagged":
		return defaults.ReportAllTagged, true
	case "trim":
		return defaults.Trim, true
	case "explicit":
		return defaults.Explicit, true
	default:
		return 0, false
	}
}

// buildDemoSchema installs a minimal ietf-interfaces module (interfaces
// container / interface list keyed by name / name+enabled leaves), just
// enough to exercise the full read path against a real schema.
func buildDemoSchema() *schema.Context {
	mod := &schema.Module{
		Name:      "ietf-interfaces",
		Namespace: "urn:ietf:params:xml:ns:yang:ietf-interfaces",
	}
	name := &schema.Node{
		Module: mod, Name: "name", Kind: schema.Leaf,
		Type: &schema.LeafType{Base: schema.BaseString},
	}
	enabled := &schema.Node{
		Module: mod, Name: "enabled", Kind: schema.Leaf, Config: true,
		Type: &schema.LeafType{Base: schema.BaseBool}, Default: "true",
	}
	typ := &schema.Node{
		Module: mod, Name: "type", Kind: schema.Leaf, Config: true,
		Type: &schema.LeafType{Base: schema.BaseIdentityref, IdentityModule: "iana-if-type"},
	}
	iface := &schema.Node{
		Module: mod, Name: "interface", Kind: schema.List,
		Keys:     []string{"name"},
		Children: []*schema.Node{name, enabled, typ},
	}
	name.Parent, enabled.Parent, typ.Parent = iface, iface, iface
	interfaces := &schema.Node{
		Module: mod, Name: "interfaces", Kind: schema.Container,
		Children: []*schema.Node{iface},
	}
	iface.Parent = interfaces
	mod.Top = []*schema.Node{interfaces}

	sc := schema.NewContext()
	if err := sc.InstallModule(mod); err != nil {
		log.Fatalf("netconf-yang-server: installing demo schema: %v", err)
	}
	return sc
}

// seedDemoBackend populates a fresh MemoryBackend with two interface
// instances, one left at its declared default (enabled=true) and one
// explicitly disabled, so with-defaults handling is visible end to end.
func seedDemoBackend() *datastore.MemoryBackend {
	b := datastore.NewMemoryBackend()
	put := func(xp string, v datastore.Value) { v.XPath = xp; b.Put(datastore.Running, v) }

	put("/ietf-interfaces:interfaces/interface[name='eth0']/name", datastore.Value{Kind: datastore.KindString, Str: "eth0"})
	put("/ietf-interfaces:interfaces/interface[name='eth0']/enabled", datastore.Value{Kind: datastore.KindBool, Bool: true, Default: true})
	put("/ietf-interfaces:interfaces/interface[name='eth0']/type", datastore.Value{Kind: datastore.KindIdentityRef, IdentityModule: "iana-if-type", Identity: "ethernetCsmacd"})

	put("/ietf-interfaces:interfaces/interface[name='lo0']/name", datastore.Value{Kind: datastore.KindString, Str: "lo0"})
	put("/ietf-interfaces:interfaces/interface[name='lo0']/enabled", datastore.Value{Kind: datastore.KindBool, Bool: false})
	put("/ietf-interfaces:interfaces/interface[name='lo0']/type", datastore.Value{Kind: datastore.KindIdentityRef, IdentityModule: "iana-if-type", Identity: "softwareLoopback"})

	return b
}
