// File: reactor/memport.go
// Author: momentics <momentics@gmail.com>
//
// In-process completion port. Records are queued FIFO and handed out in
// batches, mirroring GetQueuedCompletionStatusEx semantics.

package reactor

import (
	"sync"
	"time"

	"github.com/eapache/queue"

	"github.com/momentics/hioload-wepoll/api"
)

// MemPort is a portable completion port.
type MemPort struct {
	mu        sync.Mutex
	pending   *queue.Queue // of api.Completion
	wake      chan struct{}
	closed    bool
	nextGroup uintptr
	live      int
}

// NewMemPort returns an open, empty MemPort.
func NewMemPort() *MemPort {
	return &MemPort{
		pending: queue.New(),
		wake:    make(chan struct{}, 1),
	}
}

// Post enqueues c and wakes one waiter.
func (m *MemPort) Post(c api.Completion) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return api.ErrPortClosed
	}
	m.pending.Add(c)
	m.signalLocked()
	return nil
}

// Dequeue implements api.CompletionPort.
func (m *MemPort) Dequeue(entries []api.Completion, timeout time.Duration) (int, error) {
	if len(entries) == 0 {
		return 0, api.NewError(api.ErrCodeInvalidArgument, "empty completion buffer")
	}

	var expired <-chan time.Time
	for {
		m.mu.Lock()
		if m.closed {
			m.mu.Unlock()
			return 0, api.ErrPortClosed
		}
		n := 0
		for n < len(entries) && m.pending.Length() > 0 {
			entries[n] = m.pending.Remove().(api.Completion)
			n++
		}
		if n > 0 && m.pending.Length() > 0 {
			m.signalLocked()
		}
		m.mu.Unlock()

		if n > 0 {
			return n, nil
		}
		if timeout == 0 {
			return 0, nil
		}
		if timeout > 0 && expired == nil {
			t := time.NewTimer(timeout)
			defer t.Stop()
			expired = t.C
		}
		select {
		case <-m.wake:
		case <-expired:
			return 0, nil
		}
	}
}

// NewGroupHandle returns a synthetic grouping handle bound to this port.
func (m *MemPort) NewGroupHandle(api.Protocol) (api.GroupHandle, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return nil, api.ErrPortClosed
	}
	m.nextGroup++
	m.live++
	return &memGroup{port: m, id: m.nextGroup}, nil
}

// Close wakes all waiters; they observe ErrPortClosed. Closing twice fails.
func (m *MemPort) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return api.ErrPortClosed
	}
	m.closed = true
	close(m.wake)
	return nil
}

// Closed reports whether Close has been called.
func (m *MemPort) Closed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closed
}

// Pending returns the number of undelivered records.
func (m *MemPort) Pending() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.pending.Length()
}

// LiveGroups returns the number of grouping handles not yet closed.
func (m *MemPort) LiveGroups() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.live
}

func (m *MemPort) signalLocked() {
	if m.closed {
		return
	}
	select {
	case m.wake <- struct{}{}:
	default:
	}
}

type memGroup struct {
	port   *MemPort
	id     uintptr
	closed bool
}

func (g *memGroup) Handle() uintptr { return g.id }

func (g *memGroup) Close() error {
	g.port.mu.Lock()
	defer g.port.mu.Unlock()
	if g.closed {
		return api.NewError(api.ErrCodeOSResource, "group handle already closed").
			WithContext("handle", g.id)
	}
	g.closed = true
	g.port.live--
	return nil
}

var _ Reactor = (*MemPort)(nil)
