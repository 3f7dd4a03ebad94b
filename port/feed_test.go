package port_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/momentics/hioload-wepoll/api"
	"github.com/momentics/hioload-wepoll/control"
	"github.com/momentics/hioload-wepoll/fake"
	"github.com/momentics/hioload-wepoll/port"
)

func TestFeedEventsEmpty(t *testing.T) {
	p, _ := newPort(t)
	events := []api.Event{{Events: api.EPOLLOUT, Data: 9}}
	assert.Equal(t, 0, p.FeedEvents(nil, events))
	assert.Equal(t, api.Event{Events: api.EPOLLOUT, Data: 9}, events[0])
}

func TestFeedEventsPanicsOnShortBuffer(t *testing.T) {
	p, _ := newPort(t)
	assert.Panics(t, func() {
		p.FeedEvents(make([]api.Completion, 3), make([]api.Event, 2))
	})
}

func TestFeedEventsKeepsOrderAndSkipsBookkeeping(t *testing.T) {
	p, _ := newPort(t)
	a := fake.NewSocket(api.EPOLLIN, 10)
	b := fake.NewSocket(api.EPOLLOUT, 20)
	c := fake.NewSocket(api.EPOLLIN|api.EPOLLOUT, 30)
	for i, s := range []*fake.Socket{a, b, c} {
		require.NoError(t, s.Register(p, api.Descriptor(i+1)))
	}
	require.NoError(t, p.DrainUpdates())

	completions := []api.Completion{
		{Token: c.Token(), Bytes: uint32(api.EPOLLOUT)},
		{Token: b.Token(), Bytes: uint32(api.EPOLLIN)}, // not of interest
		{Token: a.Token(), Bytes: uint32(api.EPOLLIN | api.EPOLLOUT)},
	}
	events := make([]api.Event, 3)
	n := p.FeedEvents(completions, events)
	require.Equal(t, 2, n)
	assert.Equal(t, api.Event{Events: api.EPOLLOUT, Data: 30}, events[0])
	assert.Equal(t, api.Event{Events: api.EPOLLIN, Data: 10}, events[1])

	// Every socket re-arms.
	assert.True(t, p.IsUpdatePending(a))
	assert.True(t, p.IsUpdatePending(b))
	assert.True(t, p.IsUpdatePending(c))
}

func TestFeedEventsSkipsStaleTokens(t *testing.T) {
	mr := control.NewMetricsRegistry()
	p, _ := newPort(t, port.WithMetrics(mr))
	a := fake.NewSocket(api.EPOLLIN, 1)
	require.NoError(t, a.Register(p, 1))
	stale := a.Token()
	require.NoError(t, a.Unregister(p))

	// A new socket may reuse the slot but not the generation.
	b := fake.NewSocket(api.EPOLLIN, 2)
	require.NoError(t, b.Register(p, 1))
	assert.NotEqual(t, stale, b.Token())

	events := make([]api.Event, 2)
	n := p.FeedEvents([]api.Completion{
		{Token: stale, Bytes: uint32(api.EPOLLIN)},
		{Token: b.Token(), Bytes: uint32(api.EPOLLIN)},
	}, events)
	require.Equal(t, 1, n)
	assert.Equal(t, uint64(2), events[0].Data)
	assert.Equal(t, int64(1), mr.Get("port.completions.stale"))
	assert.Equal(t, int64(1), mr.Get("port.events.fed"))
}

func TestFeedEventsPanicsOnMultipleEvents(t *testing.T) {
	p, _ := newPort(t)
	var log []string
	s := newRec("s", &log)
	s.emit = 2
	require.NoError(t, p.AddSocket(s, 1))
	assert.Panics(t, func() {
		p.FeedEvents([]api.Completion{{Token: s.Token()}}, make([]api.Event, 1))
	})
}

func TestFromCompletion(t *testing.T) {
	p, _ := newPort(t)
	s := fake.NewSocket(api.EPOLLIN, 1)
	require.NoError(t, s.Register(p, 4))
	got, ok := p.FromCompletion(&api.Completion{Token: p.Token(s)})
	require.True(t, ok)
	assert.Same(t, s, got)
	_, ok = p.FromCompletion(&api.Completion{})
	assert.False(t, ok)
}
