// Package control
// Author: momentics <momentics@gmail.com>
//
// Runtime metrics, structured logging, and debug introspection layer for
// hioload-wepoll ports.
//
// Provides concurrent-safe primitives including:
//   - Metrics counters updated by ports and read from any goroutine
//   - Probe registration and state export
//   - logiface/stumpy logger construction
//
// This package is cross-platform and build-tag-partitioned as needed.
package control
