package fifo_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/momentics/hioload-wepoll/internal/fifo"
)

type item struct {
	name string
	node fifo.Node
}

func drain(q *fifo.Queue[*item]) []string {
	var out []string
	for {
		it, ok := q.PopFront()
		if !ok {
			return out
		}
		out = append(out, it.name)
	}
}

func TestAppendPopOrder(t *testing.T) {
	var q fifo.Queue[*item]
	a, b, c := &item{name: "a"}, &item{name: "b"}, &item{name: "c"}
	q.Append(&a.node, a)
	q.Append(&b.node, b)
	q.Append(&c.node, c)
	require.Equal(t, 3, q.Len())

	head, ok := q.Front()
	require.True(t, ok)
	assert.Same(t, a, head)

	assert.Equal(t, []string{"a", "b", "c"}, drain(&q))
	assert.False(t, a.node.Enqueued())
	assert.False(t, c.node.Enqueued())
}

func TestRemoveFromMiddle(t *testing.T) {
	var q fifo.Queue[*item]
	a, b, c := &item{name: "a"}, &item{name: "b"}, &item{name: "c"}
	q.Append(&a.node, a)
	q.Append(&b.node, b)
	q.Append(&c.node, c)

	q.Remove(&b.node)
	assert.False(t, b.node.Enqueued())
	q.Remove(&b.node) // no-op

	assert.Equal(t, []string{"a", "c"}, drain(&q))
}

func TestRequeueAfterRemove(t *testing.T) {
	var q fifo.Queue[*item]
	a := &item{name: "a"}
	q.Append(&a.node, a)
	q.Remove(&a.node)
	q.Append(&a.node, a)
	assert.True(t, a.node.Enqueued())
	assert.Equal(t, 1, q.Len())
}

func TestDoubleAppendPanics(t *testing.T) {
	var q fifo.Queue[*item]
	a := &item{name: "a"}
	q.Append(&a.node, a)
	assert.Panics(t, func() { q.Append(&a.node, a) })
}

func TestEmptyQueue(t *testing.T) {
	var q fifo.Queue[*item]
	_, ok := q.PopFront()
	assert.False(t, ok)
	_, ok = q.Front()
	assert.False(t, ok)
}
