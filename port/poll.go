// File: port/poll.go
// Author: momentics <momentics@gmail.com>
//
// Wait loop: drain, dequeue, feed.

package port

import (
	"time"

	"github.com/momentics/hioload-wepoll/api"
)

// Poll drains the update schedule, waits for completions and feeds them
// into events until at least one event is produced or timeout elapses.
// A negative timeout waits indefinitely, zero makes a single pass.
func (p *Port) Poll(events []api.Event, timeout time.Duration) (int, error) {
	if p.cp == nil {
		return 0, api.ErrPortClosed
	}
	if len(events) == 0 {
		return 0, api.NewError(api.ErrCodeInvalidArgument, "empty event buffer")
	}

	batch := min(len(events), p.cfg.MaxCompletions)
	if cap(p.completions) < batch {
		p.completions = make([]api.Completion, batch)
	}
	buf := p.completions[:batch]

	var deadline time.Time
	if timeout > 0 {
		deadline = time.Now().Add(timeout)
	}
	wait := timeout

	for {
		if err := p.DrainUpdates(); err != nil {
			return 0, err
		}
		if p.cp == nil {
			return 0, api.ErrPortClosed
		}
		got, err := p.cp.Dequeue(buf, wait)
		if err != nil {
			return 0, err
		}
		if n := p.FeedEvents(buf[:got], events); n > 0 {
			return n, nil
		}

		switch {
		case timeout == 0:
			return 0, nil
		case timeout > 0:
			wait = time.Until(deadline)
			if wait <= 0 {
				return 0, nil
			}
		}
	}
}
