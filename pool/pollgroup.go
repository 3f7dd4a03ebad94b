// File: pool/pollgroup.go
// Package pool implements bounded poll-group pooling per protocol class.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package pool

import (
	"container/list"
	"errors"

	"github.com/momentics/hioload-wepoll/api"
)

// DefaultGroupCapacity is the member limit of a poll group.
const DefaultGroupCapacity = 32

// GroupFactory creates the shared grouping handle of a new poll group.
type GroupFactory func(proto api.Protocol) (api.GroupHandle, error)

// PollGroup is a counted set of sockets sharing one grouping handle.
// Acquire increments the count, Release decrements it; an empty group stays
// pooled for the next acquirer until its Allocator is closed.
type PollGroup struct {
	alloc  *Allocator
	handle api.GroupHandle
	size   int
	elem   *list.Element
}

// Handle returns the shared grouping handle.
func (g *PollGroup) Handle() api.GroupHandle { return g.handle }

// Size returns the current member count.
func (g *PollGroup) Size() int { return g.size }

// Protocol returns the protocol class of the group.
func (g *PollGroup) Protocol() api.Protocol { return g.alloc.proto }

// Release returns one membership to the owning allocator.
func (g *PollGroup) Release() { g.alloc.Release(g) }

// Allocator pools poll groups for one protocol class.
//
// Groups are kept in a list with full groups at the front and groups with
// spare capacity at the back, so the tail is always the best candidate and a
// new group is only created when every existing group is full.
type Allocator struct {
	proto    api.Protocol
	capacity int
	factory  GroupFactory
	groups   list.List // of *PollGroup
	members  int
	closed   bool
}

// NewAllocator returns an empty allocator. Capacity below 1 selects
// DefaultGroupCapacity.
func NewAllocator(proto api.Protocol, capacity int, factory GroupFactory) *Allocator {
	if capacity < 1 {
		capacity = DefaultGroupCapacity
	}
	return &Allocator{
		proto:    proto,
		capacity: capacity,
		factory:  factory,
	}
}

// Acquire returns a group with a free slot, counting the caller as a member.
func (a *Allocator) Acquire() (*PollGroup, error) {
	if a.closed {
		return nil, api.NewError(api.ErrCodePortClosed, "poll group allocator closed").
			WithContext("protocol", a.proto.String())
	}

	var g *PollGroup
	if back := a.groups.Back(); back != nil {
		if cand := back.Value.(*PollGroup); cand.size < a.capacity {
			g = cand
		}
	}
	if g == nil {
		h, err := a.factory(a.proto)
		if err != nil {
			return nil, api.Wrap(api.ErrCodeOSResource, "create poll group handle", err).
				WithContext("protocol", a.proto.String())
		}
		g = &PollGroup{alloc: a, handle: h}
		g.elem = a.groups.PushBack(g)
	}

	g.size++
	a.members++
	if g.size == a.capacity {
		a.groups.MoveToFront(g.elem)
	}
	return g, nil
}

// Release drops one member from g. The group is retained for reuse.
func (a *Allocator) Release(g *PollGroup) {
	if g.alloc != a {
		panic("pool: poll group released to foreign allocator")
	}
	if g.size == 0 {
		panic("pool: poll group released with no members")
	}
	g.size--
	a.members--
	if !a.closed {
		a.groups.MoveToBack(g.elem)
	}
}

// Close releases every grouping handle, including those of groups that still
// have members. It returns the joined close errors.
func (a *Allocator) Close() error {
	if a.closed {
		return nil
	}
	a.closed = true
	var errs []error
	for e := a.groups.Front(); e != nil; e = e.Next() {
		g := e.Value.(*PollGroup)
		if err := g.handle.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	a.groups.Init()
	return errors.Join(errs...)
}

// Protocol returns the protocol class served.
func (a *Allocator) Protocol() api.Protocol { return a.proto }

// Capacity returns the per-group member limit.
func (a *Allocator) Capacity() int { return a.capacity }

// Groups returns the number of live groups.
func (a *Allocator) Groups() int { return a.groups.Len() }

// Members returns the total member count across groups.
func (a *Allocator) Members() int { return a.members }
