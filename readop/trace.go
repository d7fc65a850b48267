package readop

import "log"

// Trace mirrors the teacher's per-package logging-hooks struct
// (netconf/server/netconf.Trace). It is used exactly as assigned to
// Server.Trace; it is not merged against NoOpLoggingHooks.
type Trace struct {
	Handled func(xpath string, err error)
}

// DefaultLoggingHooks logs only failures, matching the teacher's
// DefaultLoggingHooks convention.
var DefaultLoggingHooks = &Trace{
	Handled: func(xpath string, err error) {
		if err != nil {
			log.Printf("readop: %s: %v\n", xpath, err)
		}
	},
}

// NoOpLoggingHooks discards every trace event.
var NoOpLoggingHooks = &Trace{
	Handled: func(xpath string, err error) {},
}
