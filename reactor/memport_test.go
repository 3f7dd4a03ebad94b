package reactor_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/momentics/hioload-wepoll/api"
	"github.com/momentics/hioload-wepoll/reactor"
)

func TestMemPortBatchOrder(t *testing.T) {
	m := reactor.NewMemPort()
	defer m.Close()
	for i := uint64(1); i <= 5; i++ {
		require.NoError(t, m.Post(api.Completion{Token: i}))
	}

	buf := make([]api.Completion, 3)
	n, err := m.Dequeue(buf, 0)
	require.NoError(t, err)
	require.Equal(t, 3, n)
	assert.Equal(t, []uint64{1, 2, 3}, []uint64{buf[0].Token, buf[1].Token, buf[2].Token})

	n, err = m.Dequeue(buf, 0)
	require.NoError(t, err)
	require.Equal(t, 2, n)
	assert.Equal(t, uint64(4), buf[0].Token)
	assert.Equal(t, 0, m.Pending())
}

func TestMemPortTimeout(t *testing.T) {
	m := reactor.NewMemPort()
	defer m.Close()
	buf := make([]api.Completion, 1)

	start := time.Now()
	n, err := m.Dequeue(buf, 20*time.Millisecond)
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.GreaterOrEqual(t, time.Since(start), 15*time.Millisecond)
}

func TestMemPortWakesBlockedWaiter(t *testing.T) {
	m := reactor.NewMemPort()
	defer m.Close()

	done := make(chan int, 1)
	go func() {
		buf := make([]api.Completion, 4)
		n, _ := m.Dequeue(buf, -1)
		done <- n
	}()

	time.Sleep(10 * time.Millisecond)
	require.NoError(t, m.Post(api.Completion{Token: 9}))
	select {
	case n := <-done:
		assert.Equal(t, 1, n)
	case <-time.After(2 * time.Second):
		t.Fatal("waiter not woken by Post")
	}
}

func TestMemPortClose(t *testing.T) {
	m := reactor.NewMemPort()

	done := make(chan error, 1)
	go func() {
		_, err := m.Dequeue(make([]api.Completion, 1), -1)
		done <- err
	}()
	time.Sleep(10 * time.Millisecond)

	require.NoError(t, m.Close())
	select {
	case err := <-done:
		assert.ErrorIs(t, err, api.ErrPortClosed)
	case <-time.After(2 * time.Second):
		t.Fatal("waiter not released by Close")
	}

	assert.True(t, m.Closed())
	assert.ErrorIs(t, m.Close(), api.ErrPortClosed)
	assert.ErrorIs(t, m.Post(api.Completion{}), api.ErrPortClosed)
	_, err := m.NewGroupHandle(api.Protocol{})
	assert.ErrorIs(t, err, api.ErrPortClosed)
}

func TestMemPortGroupHandles(t *testing.T) {
	m := reactor.NewMemPort()
	defer m.Close()

	a, err := m.NewGroupHandle(api.Protocol{Family: 2, Type: 1, Protocol: 6})
	require.NoError(t, err)
	b, err := m.NewGroupHandle(api.Protocol{Family: 2, Type: 1, Protocol: 6})
	require.NoError(t, err)
	assert.NotEqual(t, a.Handle(), b.Handle())
	assert.Equal(t, 2, m.LiveGroups())

	require.NoError(t, a.Close())
	assert.ErrorIs(t, a.Close(), api.ErrOSResource)
	assert.Equal(t, 1, m.LiveGroups())
}

func TestMemPortRejectsEmptyBuffer(t *testing.T) {
	m := reactor.NewMemPort()
	defer m.Close()
	_, err := m.Dequeue(nil, 0)
	assert.ErrorIs(t, err, api.ErrInvalidArgument)
}

func TestNewReturnsReactor(t *testing.T) {
	r, err := reactor.New()
	require.NoError(t, err)
	require.NoError(t, r.Close())
}
