// File: api/reactor.go
// Author: momentics <momentics@gmail.com>
//
// Contracts for the completion-based OS layer a port is built on:
// a completion port that yields batches of completion records, and the
// per-protocol grouping handles that low-level probes are issued against.

package api

import (
	"fmt"
	"time"
)

// Descriptor is an OS socket descriptor (SOCKET / fd).
type Descriptor uintptr

// Protocol identifies a socket class. Sockets probed through one grouping
// handle must share the same Protocol.
type Protocol struct {
	Family   int32 // address family, e.g. AF_INET
	Type     int32 // socket type, e.g. SOCK_STREAM
	Protocol int32 // protocol number, e.g. IPPROTO_TCP
}

func (p Protocol) String() string {
	return fmt.Sprintf("af=%d type=%d proto=%d", p.Family, p.Type, p.Protocol)
}

// Completion is one raw completion record, shaped like OVERLAPPED_ENTRY.
type Completion struct {
	Token      uint64  // completion key the request was issued under
	Overlapped uintptr // address of the request's OVERLAPPED, zero for posted records
	Internal   uintptr // request status
	Bytes      uint32  // bytes transferred
}

// GroupHandle is a low-level grouping handle shared by the members of a poll group.
type GroupHandle interface {
	// Handle returns the OS value of the handle.
	Handle() uintptr

	// Close releases the handle.
	Close() error
}

// CompletionPort is the OS completion queue owned by a port.
type CompletionPort interface {
	// NewGroupHandle creates a grouping handle for proto, associated with this port.
	NewGroupHandle(proto Protocol) (GroupHandle, error)

	// Dequeue blocks up to timeout (negative waits forever, zero polls) and
	// fills entries with at most len(entries) records.
	Dequeue(entries []Completion, timeout time.Duration) (int, error)

	// Close releases the completion port.
	Close() error
}
