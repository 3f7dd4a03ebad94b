//go:build !windows

// File: reactor/reactor_other.go
// Author: momentics <momentics@gmail.com>
//
// Fallback for platforms without a native completion port.

package reactor

// New returns the platform completion reactor. Without IOCP this is a MemPort.
func New() (Reactor, error) {
	return NewMemPort(), nil
}
