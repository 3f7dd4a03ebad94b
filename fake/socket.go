// Package fake
// Author: momentics <momentics@gmail.com>
//
// Fake socket collaborator for tests and examples. A completion's byte count
// carries the simulated readiness mask.

package fake

import (
	"github.com/momentics/hioload-wepoll/api"
	"github.com/momentics/hioload-wepoll/pool"
	"github.com/momentics/hioload-wepoll/port"
	"github.com/momentics/hioload-wepoll/reactor"
)

// TCP is the protocol class used by sockets created with NewSocket.
var TCP = api.Protocol{Family: 2, Type: 1, Protocol: 6}

// Socket is a predictable port.Socket.
type Socket struct {
	port.Links

	Proto    api.Protocol
	Interest api.EventMask
	Data     uint64

	group      *pool.PollGroup
	failUpdate error
	armed      bool

	Updates      int
	Fed          int
	ForceDeletes int
}

// NewSocket returns an unregistered TCP socket interested in mask.
func NewSocket(mask api.EventMask, data uint64) *Socket {
	return &Socket{Proto: TCP, Interest: mask, Data: data}
}

// Register adds s to p under fd, joins a poll group and schedules the first
// probe.
func (s *Socket) Register(p *port.Port, fd api.Descriptor) error {
	if err := p.AddSocket(s, fd); err != nil {
		return err
	}
	g, err := p.AcquirePollGroup(s.Proto)
	if err != nil {
		_ = p.RemoveSocket(s)
		return err
	}
	s.group = g
	p.RequestUpdate(s)
	return nil
}

// Modify replaces the interest mask and schedules a new probe.
func (s *Socket) Modify(p *port.Port, mask api.EventMask) {
	s.Interest = mask
	p.RequestUpdate(s)
}

// Unregister leaves the poll group and removes s from p.
func (s *Socket) Unregister(p *port.Port) error {
	s.leave(p)
	return p.RemoveSocket(s)
}

// Group returns the poll group joined on registration.
func (s *Socket) Group() *pool.PollGroup { return s.group }

// Armed reports whether a probe is outstanding.
func (s *Socket) Armed() bool { return s.armed }

// FailUpdates makes every following Update return err; nil restores success.
func (s *Socket) FailUpdates(err error) { s.failUpdate = err }

// Signal posts a completion for s carrying mask to r.
func (s *Socket) Signal(r reactor.Reactor, mask api.EventMask) error {
	return r.Post(api.Completion{Token: s.Token(), Bytes: uint32(mask)})
}

// Update implements port.Socket.
func (s *Socket) Update(p *port.Port) error {
	if s.failUpdate != nil {
		return s.failUpdate
	}
	s.Updates++
	s.armed = s.Interest&^api.EPOLLONESHOT != 0
	p.ClearUpdate(s)
	return nil
}

// FeedEvent implements port.Socket.
func (s *Socket) FeedEvent(p *port.Port, c *api.Completion, ev *api.Event) int {
	s.armed = false
	mask := api.EventMask(c.Bytes) & (s.Interest | api.EPOLLERR | api.EPOLLHUP)
	if mask == 0 {
		p.RequestUpdate(s)
		return 0
	}
	*ev = api.Event{Events: mask, Data: s.Data}
	s.Fed++
	if s.Interest&api.EPOLLONESHOT != 0 {
		s.Interest = 0
	} else {
		p.RequestUpdate(s)
	}
	return 1
}

// ForceDelete implements port.Socket.
func (s *Socket) ForceDelete(p *port.Port) {
	s.ForceDeletes++
	s.leave(p)
	_ = p.RemoveSocket(s)
}

func (s *Socket) leave(p *port.Port) {
	if s.group != nil {
		p.ReleasePollGroup(s.group)
		s.group = nil
	}
	s.armed = false
}

var _ port.Socket = (*Socket)(nil)
