// File: port/update.go
// Author: momentics <momentics@gmail.com>
//
// Update schedule: sockets whose probe must be re-issued before the next wait.

package port

import (
	"github.com/momentics/hioload-wepoll/api"
)

// RequestUpdate schedules sock at the tail of the update queue. It is a
// no-op if sock is already scheduled.
func (p *Port) RequestUpdate(sock Socket) {
	l := sock.PortLinks()
	if l.queue.Enqueued() {
		return
	}
	p.updates.Append(&l.queue, sock)
	p.gauge("updates.pending", p.updates.Len())
}

// ClearUpdate unschedules sock from wherever it sits in the queue. It is a
// no-op if sock is not scheduled.
func (p *Port) ClearUpdate(sock Socket) {
	l := sock.PortLinks()
	if !l.queue.Enqueued() {
		return
	}
	p.updates.Remove(&l.queue)
	p.gauge("updates.pending", p.updates.Len())
}

// IsUpdatePending reports whether sock is scheduled.
func (p *Port) IsUpdatePending(sock Socket) bool {
	return sock.PortLinks().queue.Enqueued()
}

// PendingUpdates returns the number of scheduled sockets.
func (p *Port) PendingUpdates() int { return p.updates.Len() }

// DrainUpdates asks every scheduled socket, head first, to re-issue its
// probe. The first failure stops the drain and is returned; sockets already
// updated stay cleared and the failing socket and everything behind it stay
// scheduled.
func (p *Port) DrainUpdates() error {
	drained := 0
	defer func() { p.count("updates.drained", drained) }()

	for {
		sock, ok := p.updates.Front()
		if !ok {
			return nil
		}
		l := sock.PortLinks()
		if err := sock.Update(p); err != nil {
			p.count("drain.failures", 1)
			p.cfg.Logger.Err().
				Str("port", p.cfg.Name).
				Uint64("fd", uint64(l.fd)).
				Err(err).
				Log("socket update failed")
			return api.Wrap(api.CodeOf(err), "socket update failed", err).
				WithContext("descriptor", l.fd)
		}
		if p.updates.IsFront(&l.queue) {
			// Update succeeded without clearing; unschedule so the drain advances.
			p.cfg.Logger.Warning().
				Str("port", p.cfg.Name).
				Uint64("fd", uint64(l.fd)).
				Log("socket update left entry scheduled")
			p.ClearUpdate(sock)
		}
		drained++
	}
}
