// Copyright (c) 2025
// Author: momentics <momentics@gmail.com>

// Package reactor provides completion-port backends for ports: the native
// Windows I/O completion port (IOCP) and MemPort, an in-process completion
// queue used on other platforms and in tests.
package reactor
