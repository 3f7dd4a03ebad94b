// Package pool
// Author: momentics <momentics@gmail.com>
//
// Resource pooling for hioload-wepoll ports.
// Allocator keeps bounded-capacity poll groups per protocol class and recycles
// empty groups instead of returning their grouping handles to the OS.
// HandleTable issues generation-checked tokens that map completion records
// back to the sockets that issued them.
// Nothing in this package is safe for concurrent use; ports serialize access.
package pool
