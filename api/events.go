// File: api/events.go
// Package api defines core event types for hioload-wepoll.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package api

import (
	"strings"
)

// EventMask is a set of epoll readiness bits.
type EventMask uint32

// Bit values match <sys/epoll.h>.
const (
	EPOLLIN      EventMask = 1 << 0
	EPOLLPRI     EventMask = 1 << 1
	EPOLLOUT     EventMask = 1 << 2
	EPOLLERR     EventMask = 1 << 3
	EPOLLHUP     EventMask = 1 << 4
	EPOLLRDNORM  EventMask = 1 << 6
	EPOLLRDBAND  EventMask = 1 << 7
	EPOLLWRNORM  EventMask = 1 << 8
	EPOLLWRBAND  EventMask = 1 << 9
	EPOLLMSG     EventMask = 1 << 10
	EPOLLRDHUP   EventMask = 1 << 13
	EPOLLONESHOT EventMask = 1 << 31
)

var maskNames = []struct {
	bit  EventMask
	name string
}{
	{EPOLLIN, "IN"},
	{EPOLLPRI, "PRI"},
	{EPOLLOUT, "OUT"},
	{EPOLLERR, "ERR"},
	{EPOLLHUP, "HUP"},
	{EPOLLRDNORM, "RDNORM"},
	{EPOLLRDBAND, "RDBAND"},
	{EPOLLWRNORM, "WRNORM"},
	{EPOLLWRBAND, "WRBAND"},
	{EPOLLMSG, "MSG"},
	{EPOLLRDHUP, "RDHUP"},
	{EPOLLONESHOT, "ONESHOT"},
}

// String renders the mask as IN|OUT style text.
func (m EventMask) String() string {
	if m == 0 {
		return "0"
	}
	var parts []string
	for _, n := range maskNames {
		if m&n.bit != 0 {
			parts = append(parts, n.name)
		}
	}
	return strings.Join(parts, "|")
}

// Event is one readiness notification, shaped like struct epoll_event.
type Event struct {
	Events EventMask
	Data   uint64 // caller-supplied value echoed back
}
