// File: reactor/reactor.go
// Author: momentics <momentics@gmail.com>
//
// Platform-neutral completion reactor interface.

package reactor

import "github.com/momentics/hioload-wepoll/api"

// Reactor is a completion port that also accepts posted records, so other
// goroutines can inject completions (wakeups, simulated probe results).
// Post is safe for concurrent use; the remaining methods belong to the
// goroutine that owns the port.
type Reactor interface {
	api.CompletionPort

	// Post enqueues a completion record as if an operation had finished.
	Post(c api.Completion) error
}
