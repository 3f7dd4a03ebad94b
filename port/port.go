// File: port/port.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Port lifecycle: creation, completion port close, and full teardown.

package port

import (
	"github.com/momentics/hioload-wepoll/api"
	"github.com/momentics/hioload-wepoll/internal/fifo"
	"github.com/momentics/hioload-wepoll/internal/sockmap"
	"github.com/momentics/hioload-wepoll/pool"
)

// Port coordinates one polling instance: its registered sockets, the
// schedule of pending probe updates, the per-protocol poll-group pools, and
// the translation of completion records into readiness events.
//
// A Port is not safe for concurrent use.
type Port struct {
	cfg Config
	cp  api.CompletionPort

	registry   *sockmap.Map[api.Descriptor, Socket]
	updates    fifo.Queue[Socket]
	handles    *pool.HandleTable[Socket]
	allocators map[api.Protocol]*pool.Allocator

	completions []api.Completion
	deleted     bool
}

// New wraps cp in a port with an empty registry, schedule and pool table.
// The port takes ownership of cp.
func New(cp api.CompletionPort, opts ...Option) (*Port, error) {
	if cp == nil {
		return nil, api.NewError(api.ErrCodeInvalidArgument, "nil completion port")
	}
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	cfg.normalize()

	p := &Port{
		cfg:        cfg,
		cp:         cp,
		registry:   sockmap.New[api.Descriptor, Socket](),
		handles:    pool.NewHandleTable[Socket](cfg.HandleLimit),
		allocators: make(map[api.Protocol]*pool.Allocator),
	}
	if cfg.Probes != nil {
		cfg.Probes.RegisterProbe(cfg.Name, func() any { return p.DumpState() })
	}
	p.cfg.Logger.Debug().
		Str("port", cfg.Name).
		Int("group_capacity", cfg.PollGroupCapacity).
		Log("port created")
	return p, nil
}

// Config returns the effective settings.
func (p *Port) Config() Config { return p.cfg }

// CompletionPort returns the owned completion port, nil once closed.
func (p *Port) CompletionPort() api.CompletionPort { return p.cp }

// Close closes the completion port only. Sockets and poll groups stay until
// Delete. Closing twice fails with an OS resource error wrapping
// ErrPortClosed.
func (p *Port) Close() error {
	if p.cp == nil {
		return api.Wrap(api.ErrCodeOSResource, "completion port already closed", api.ErrPortClosed).
			WithContext("port", p.cfg.Name)
	}
	cp := p.cp
	p.cp = nil
	if err := cp.Close(); err != nil {
		return api.Wrap(api.ErrCodeOSResource, "close completion port", err).
			WithContext("port", p.cfg.Name)
	}
	return nil
}

// Delete tears the port down: it closes the completion port if still open,
// force-deletes every registered socket, and closes all poll-group
// allocators. Failures are logged and never returned. Delete is terminal;
// calling it again does nothing.
func (p *Port) Delete() {
	if p.deleted {
		return
	}
	log := p.cfg.Logger

	if p.cp != nil {
		if err := p.Close(); err != nil {
			log.Warning().Str("port", p.cfg.Name).Err(err).Log("close completion port during delete")
		}
	}

	for {
		_, sock, ok := p.registry.Min()
		if !ok {
			break
		}
		sock.ForceDelete(p)
		l := sock.PortLinks()
		p.updates.Remove(&l.queue)
		if l.registered && l.owner == p {
			log.Warning().
				Str("port", p.cfg.Name).
				Uint64("fd", uint64(l.fd)).
				Log("socket left registered by force delete")
			p.detach(sock)
		}
	}
	for {
		if _, ok := p.updates.PopFront(); !ok {
			break
		}
	}

	for proto, a := range p.allocators {
		if err := a.Close(); err != nil {
			log.Warning().
				Str("port", p.cfg.Name).
				Stringer("protocol", proto).
				Err(err).
				Log("close poll groups during delete")
		}
	}
	p.allocators = nil
	p.completions = nil
	p.deleted = true

	p.gauge("sockets", 0)
	p.gauge("updates.pending", 0)
	p.gauge("pollgroups", 0)
	if p.cfg.Probes != nil {
		p.cfg.Probes.UnregisterProbe(p.cfg.Name)
	}
	log.Debug().Str("port", p.cfg.Name).Log("port deleted")
}

// Deleted reports whether Delete has run.
func (p *Port) Deleted() bool { return p.deleted }

// Stats is a point-in-time view of a port.
type Stats struct {
	Open           bool
	Sockets        int
	PendingUpdates int
	Allocators     int
	PollGroups     int
	Members        int
}

// Stats returns current counts.
func (p *Port) Stats() Stats {
	s := Stats{
		Open:           p.cp != nil,
		Sockets:        p.registry.Len(),
		PendingUpdates: p.updates.Len(),
		Allocators:     len(p.allocators),
	}
	for _, a := range p.allocators {
		s.PollGroups += a.Groups()
		s.Members += a.Members()
	}
	return s
}

// DumpState implements api.Debug.
func (p *Port) DumpState() map[string]any {
	s := p.Stats()
	return map[string]any{
		"open":            s.Open,
		"deleted":         p.deleted,
		"sockets":         s.Sockets,
		"updates.pending": s.PendingUpdates,
		"allocators":      s.Allocators,
		"pollgroups":      s.PollGroups,
		"members":         s.Members,
	}
}

func (p *Port) gauge(name string, v int) {
	if p.cfg.Metrics != nil {
		p.cfg.Metrics.Set(p.cfg.Name+"."+name, int64(v))
	}
}

func (p *Port) count(name string, delta int) {
	if p.cfg.Metrics != nil && delta != 0 {
		p.cfg.Metrics.Add(p.cfg.Name+"."+name, int64(delta))
	}
}

var _ api.Debug = (*Port)(nil)
