// Package api
// Author: momentics
//
// Live debug and introspection support.

package api

// Debug exposes runtime introspection.
type Debug interface {
	// DumpState emits a snapshot of system state for diagnostics.
	DumpState() map[string]any
}

// ProbeRegistry accepts named debug probes. Owners unregister their probe
// when they are torn down.
type ProbeRegistry interface {
	RegisterProbe(name string, fn func() any)
	UnregisterProbe(name string)
}
