// Author: momentics <momentics@gmail.com>
// SPDX-License-Identifier: MIT

package pool

import (
	"math"

	"github.com/momentics/hioload-wepoll/api"
)

// Token identifies a slot of a HandleTable: slot index in the low 32 bits,
// slot generation in the high 32 bits. The zero Token is never issued.
type Token uint64

func makeToken(index, gen uint32) Token { return Token(uint64(gen)<<32 | uint64(index)) }

func (t Token) index() uint32 { return uint32(t) }
func (t Token) gen() uint32   { return uint32(t >> 32) }

type slot[T any] struct {
	val  T
	gen  uint32
	used bool
}

// HandleTable maps tokens to values in O(1). Freed slots are recycled with a
// bumped generation, so a stale token never resolves to a newer value.
// Not safe for concurrent use.
type HandleTable[T any] struct {
	slots []slot[T]
	free  []uint32
	limit uint64
	live  int
}

// NewHandleTable returns a table holding at most limit live values.
// A limit below 1 allows the full 32-bit index space.
func NewHandleTable[T any](limit int) *HandleTable[T] {
	ceiling := uint64(math.MaxUint32)
	if limit > 0 && uint64(limit) < ceiling {
		ceiling = uint64(limit)
	}
	return &HandleTable[T]{limit: ceiling}
}

// Alloc stores v and returns its token. It fails with ErrOutOfMemory when
// the table is full.
func (t *HandleTable[T]) Alloc(v T) (Token, error) {
	var idx uint32
	if n := len(t.free); n > 0 {
		idx = t.free[n-1]
		t.free = t.free[:n-1]
	} else {
		if uint64(len(t.slots)) >= t.limit {
			return 0, api.NewError(api.ErrCodeOutOfMemory, "handle table exhausted").
				WithContext("limit", t.limit)
		}
		idx = uint32(len(t.slots))
		t.slots = append(t.slots, slot[T]{gen: 1})
	}
	s := &t.slots[idx]
	s.val = v
	s.used = true
	t.live++
	return makeToken(idx, s.gen), nil
}

// Lookup resolves tok.
func (t *HandleTable[T]) Lookup(tok Token) (v T, ok bool) {
	idx := tok.index()
	if int64(idx) >= int64(len(t.slots)) {
		return v, false
	}
	s := &t.slots[idx]
	if !s.used || s.gen != tok.gen() {
		return v, false
	}
	return s.val, true
}

// Free releases tok, reporting whether it was live.
func (t *HandleTable[T]) Free(tok Token) bool {
	idx := tok.index()
	if int64(idx) >= int64(len(t.slots)) {
		return false
	}
	s := &t.slots[idx]
	if !s.used || s.gen != tok.gen() {
		return false
	}
	var zero T
	s.val = zero
	s.used = false
	s.gen++
	if s.gen == 0 {
		s.gen = 1
	}
	t.free = append(t.free, idx)
	t.live--
	return true
}

// Len returns the number of live values.
func (t *HandleTable[T]) Len() int { return t.live }
