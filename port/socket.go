// File: port/socket.go
// Author: momentics <momentics@gmail.com>
//
// Contract between a port and the per-socket state machines it coordinates.

package port

import (
	"github.com/momentics/hioload-wepoll/api"
	"github.com/momentics/hioload-wepoll/internal/fifo"
	"github.com/momentics/hioload-wepoll/pool"
)

// Socket is the per-socket state machine a port schedules and feeds.
// Implementations are pointer types embedding Links.
type Socket interface {
	// PortLinks returns the linkage owned by the port.
	PortLinks() *Links

	// Update re-issues the socket's low-level probe so that it reflects the
	// current interest set. On success it must call p.ClearUpdate.
	Update(p *Port) error

	// FeedEvent interprets one completion record issued by this socket and
	// writes at most one readiness event into ev, returning 0 or 1.
	FeedEvent(p *Port, c *api.Completion, ev *api.Event) int

	// ForceDelete tears the socket down unconditionally. It is called while
	// the port is being deleted and should release the socket's poll group,
	// clear any pending update and remove the socket from the port.
	ForceDelete(p *Port)
}

// Links is the registry and schedule linkage of a Socket. Its zero value is
// unregistered and not scheduled. Only a port modifies it.
type Links struct {
	owner      *Port
	fd         api.Descriptor
	token      pool.Token
	registered bool
	queue      fifo.Node
}

// PortLinks returns l itself, so embedding Links satisfies part of Socket.
func (l *Links) PortLinks() *Links { return l }

// Descriptor returns the descriptor the socket was registered under.
func (l *Links) Descriptor() api.Descriptor { return l.fd }

// Registered reports whether the socket is in a port's registry.
func (l *Links) Registered() bool { return l.registered }

// Token returns the completion token assigned at registration, zero when
// unregistered.
func (l *Links) Token() uint64 { return uint64(l.token) }
