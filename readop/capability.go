package readop

import "github.com/damianoneill/netconf-yang-server/defaults"

// WithDefaultsCapability builds the with-defaults capability URI
// (RFC 6243 §2.2) advertising mode as this server's basic-mode.
func WithDefaultsCapability(mode defaults.WDM) string {
	return "urn:ietf:params:netconf:capability:with-defaults:1.0?basic-mode=" + basicModeName(mode)
}

func basicModeName(mode defaults.WDM) string {
	switch mode {
	case defaults.Trim:
		return "trim"
	case defaults.ReportAllTagged:
		return "report-all-tagged"
	case defaults.Explicit:
		return "explicit"
	default:
		return "report-all"
	}
}

// parseWDM resolves the <with-defaults> leaf's text value (or the
// empty string, meaning "use the server default") to a WDM.
func parseWDM(text string, serverDefault defaults.WDM) (defaults.WDM, bool) {
	switch text {
	case "":
		return serverDefault, true
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
