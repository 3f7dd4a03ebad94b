// File: internal/fifo/fifo.go
// Author: momentics <momentics@gmail.com>
//
// Intrusive FIFO with O(1) removal from the middle. Each queued value owns a
// Node, so membership is a property of the value rather than a search.

package fifo

import "container/list"

// Node is the queue linkage embedded in a queued value.
// The zero Node is not enqueued.
type Node struct {
	elem *list.Element
}

// Enqueued reports whether the node is currently in a queue.
func (n *Node) Enqueued() bool {
	return n.elem != nil
}

// Queue is a FIFO of values of type T, each linked through its own Node.
// The zero Queue is empty and ready to use.
type Queue[T any] struct {
	l list.List
}

// Append adds v at the tail, linked through n. Appending an already
// enqueued node panics.
func (q *Queue[T]) Append(n *Node, v T) {
	if n.elem != nil {
		panic("fifo: node already enqueued")
	}
	n.elem = q.l.PushBack(entry[T]{node: n, val: v})
}

// Remove unlinks n from wherever it sits. Removing a node that is not
// enqueued is a no-op.
func (q *Queue[T]) Remove(n *Node) {
	if n.elem == nil {
		return
	}
	q.l.Remove(n.elem)
	n.elem = nil
}

// Front returns the head without removing it.
func (q *Queue[T]) Front() (v T, ok bool) {
	e := q.l.Front()
	if e == nil {
		return v, false
	}
	return e.Value.(entry[T]).val, true
}

// PopFront removes and returns the head.
func (q *Queue[T]) PopFront() (v T, ok bool) {
	e := q.l.Front()
	if e == nil {
		return v, false
	}
	ent := q.l.Remove(e).(entry[T])
	ent.node.elem = nil
	return ent.val, true
}

// IsFront reports whether n is the head of q.
func (q *Queue[T]) IsFront(n *Node) bool {
	return n.elem != nil && q.l.Front() == n.elem
}

// Len returns the number of queued values.
func (q *Queue[T]) Len() int {
	return q.l.Len()
}

// Each calls fn for each value from head to tail until fn returns false.
func (q *Queue[T]) Each(fn func(v T) bool) {
	for e := q.l.Front(); e != nil; e = e.Next() {
		if !fn(e.Value.(entry[T]).val) {
			return
		}
	}
}

type entry[T any] struct {
	node *Node
	val  T
}
