package port_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/momentics/hioload-wepoll/api"
	"github.com/momentics/hioload-wepoll/port"
	"github.com/momentics/hioload-wepoll/reactor"
)

func newPort(t *testing.T, opts ...port.Option) (*port.Port, *reactor.MemPort) {
	t.Helper()
	mp := reactor.NewMemPort()
	p, err := port.New(mp, opts...)
	require.NoError(t, err)
	t.Cleanup(p.Delete)
	return p, mp
}

// recSocket records the order of Update calls and can misbehave on demand.
type recSocket struct {
	port.Links
	name string
	log  *[]string

	err       error
	noClear   bool
	emit      int
	keepAlive bool
}

func (s *recSocket) Update(p *port.Port) error {
	*s.log = append(*s.log, s.name)
	if s.err != nil {
		return s.err
	}
	if !s.noClear {
		p.ClearUpdate(s)
	}
	return nil
}

func (s *recSocket) FeedEvent(_ *port.Port, c *api.Completion, ev *api.Event) int {
	if s.emit > 0 {
		*ev = api.Event{Events: api.EventMask(c.Bytes)}
	}
	return s.emit
}

func (s *recSocket) ForceDelete(p *port.Port) {
	if !s.keepAlive {
		_ = p.RemoveSocket(s)
	}
}

func newRec(name string, log *[]string) *recSocket {
	return &recSocket{name: name, log: log}
}

// stubCP is a completion port whose failures are scripted.
type stubCP struct {
	closeErr error
	groupErr error
	closes   int
}

type stubHandle uintptr

func (h stubHandle) Handle() uintptr { return uintptr(h) }
func (h stubHandle) Close() error    { return nil }

func (c *stubCP) NewGroupHandle(api.Protocol) (api.GroupHandle, error) {
	if c.groupErr != nil {
		return nil, c.groupErr
	}
	return stubHandle(1), nil
}

func (c *stubCP) Dequeue([]api.Completion, time.Duration) (int, error) { return 0, nil }

func (c *stubCP) Close() error {
	c.closes++
	return c.closeErr
}
