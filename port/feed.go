// File: port/feed.go
// Author: momentics <momentics@gmail.com>
//
// Completion record to readiness event translation.

package port

import (
	"github.com/momentics/hioload-wepoll/api"
)

// FeedEvents translates completions into readiness events written to the
// front of events and returns how many were written. Events keep the order
// of their source records. Records whose token no longer resolves, e.g. a
// probe completing after its socket was removed, produce nothing.
//
// FeedEvents panics if len(completions) > len(events).
func (p *Port) FeedEvents(completions []api.Completion, events []api.Event) int {
	if len(completions) > len(events) {
		panic("port: more completion records than event slots")
	}
	n, stale := 0, 0
	for i := range completions {
		c := &completions[i]
		sock, ok := p.FromCompletion(c)
		if !ok {
			stale++
			p.cfg.Logger.Debug().
				Str("port", p.cfg.Name).
				Uint64("token", c.Token).
				Log("completion for released token")
			continue
		}
		switch sock.FeedEvent(p, c, &events[n]) {
		case 0:
		case 1:
			n++
		default:
			panic("port: socket emitted more than one event per completion")
		}
	}
	p.count("events.fed", n)
	p.count("completions.stale", stale)
	return n
}
