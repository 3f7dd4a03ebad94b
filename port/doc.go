// Package port
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Port is the coordinator behind one epoll-style polling instance on top of a
// completion port. It owns:
//   - the socket registry, ordered by descriptor;
//   - the update schedule of sockets whose probe must be re-issued before the
//     next wait, drained head first and stopping at the first failure;
//   - one poll-group allocator per protocol class;
//   - the token table that maps completion records back to their sockets.
//
// Per-socket behavior lives behind the Socket interface. A Port performs no
// locking; callers serialize access.
package port
