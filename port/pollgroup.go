// File: port/pollgroup.go
// Author: momentics <momentics@gmail.com>
//
// Per-protocol poll group pools.

package port

import (
	"github.com/momentics/hioload-wepoll/api"
	"github.com/momentics/hioload-wepoll/pool"
)

// AcquirePollGroup returns a poll group for proto with a free member slot,
// creating the protocol's allocator on first use.
func (p *Port) AcquirePollGroup(proto api.Protocol) (*pool.PollGroup, error) {
	if p.deleted {
		return nil, api.ErrPortClosed
	}
	a, ok := p.allocators[proto]
	if !ok {
		a = pool.NewAllocator(proto, p.cfg.PollGroupCapacity, p.newGroupHandle)
		p.allocators[proto] = a
		p.cfg.Logger.Debug().
			Str("port", p.cfg.Name).
			Stringer("protocol", proto).
			Log("poll group allocator created")
	}
	g, err := a.Acquire()
	if err != nil {
		return nil, err
	}
	p.gaugeGroups()
	return g, nil
}

// ReleasePollGroup returns one membership of g to its allocator.
func (p *Port) ReleasePollGroup(g *pool.PollGroup) {
	g.Release()
	p.gaugeGroups()
}

// Allocator returns the allocator serving proto, if one was created.
func (p *Port) Allocator(proto api.Protocol) (*pool.Allocator, bool) {
	a, ok := p.allocators[proto]
	return a, ok
}

func (p *Port) newGroupHandle(proto api.Protocol) (api.GroupHandle, error) {
	if p.cp == nil {
		return nil, api.ErrPortClosed
	}
	return p.cp.NewGroupHandle(proto)
}

func (p *Port) gaugeGroups() {
	if p.cfg.Metrics == nil {
		return
	}
	n := 0
	for _, a := range p.allocators {
		n += a.Groups()
	}
	p.gauge("pollgroups", n)
}
