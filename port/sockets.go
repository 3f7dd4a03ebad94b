// File: port/sockets.go
// Author: momentics <momentics@gmail.com>
//
// Socket registry operations.

package port

import (
	"github.com/momentics/hioload-wepoll/api"
	"github.com/momentics/hioload-wepoll/pool"
)

// AddSocket registers sock under fd and assigns its completion token.
// It fails with ErrDuplicateRegistration if fd is taken or sock is already
// registered, leaving the registry unchanged, and with ErrPortClosed once
// the completion port is closed.
func (p *Port) AddSocket(sock Socket, fd api.Descriptor) error {
	if p.cp == nil {
		return api.ErrPortClosed
	}
	l := sock.PortLinks()
	if l.registered {
		return api.NewError(api.ErrCodeDuplicateRegistration, "socket already registered").
			WithContext("descriptor", l.fd)
	}

	tok, err := p.handles.Alloc(sock)
	if err != nil {
		return err
	}
	if err := p.registry.Insert(fd, sock); err != nil {
		p.handles.Free(tok)
		return api.NewError(api.ErrCodeDuplicateRegistration, "descriptor already registered").
			WithContext("descriptor", fd)
	}

	l.owner = p
	l.fd = fd
	l.token = tok
	l.registered = true

	p.gauge("sockets", p.registry.Len())
	p.cfg.Logger.Debug().
		Str("port", p.cfg.Name).
		Uint64("fd", uint64(fd)).
		Uint64("token", uint64(tok)).
		Log("socket added")
	return nil
}

// RemoveSocket unregisters sock and cancels any pending update for it.
// It fails with ErrNotRegistered if sock is not registered with p.
func (p *Port) RemoveSocket(sock Socket) error {
	l := sock.PortLinks()
	if !l.registered || l.owner != p {
		return api.NewError(api.ErrCodeNotRegistered, "socket not registered").
			WithContext("descriptor", l.fd)
	}
	p.updates.Remove(&l.queue)
	p.detach(sock)
	p.cfg.Logger.Debug().
		Str("port", p.cfg.Name).
		Uint64("fd", uint64(l.fd)).
		Log("socket removed")
	return nil
}

// FindSocket looks up the socket registered under fd.
func (p *Port) FindSocket(fd api.Descriptor) (Socket, bool) {
	return p.registry.Get(fd)
}

// FromCompletion resolves the socket whose probe produced c. It fails for
// records whose token was released, e.g. a probe that completed after its
// socket was removed.
func (p *Port) FromCompletion(c *api.Completion) (Socket, bool) {
	return p.handles.Lookup(pool.Token(c.Token))
}

// Len returns the number of registered sockets.
func (p *Port) Len() int { return p.registry.Len() }

// Each calls fn for every registered socket in descriptor order until fn
// returns false. fn must not add or remove sockets.
func (p *Port) Each(fn func(fd api.Descriptor, sock Socket) bool) {
	p.registry.Ascend(fn)
}

func (p *Port) detach(sock Socket) {
	l := sock.PortLinks()
	p.registry.Delete(l.fd)
	p.handles.Free(l.token)
	l.owner = nil
	l.token = 0
	l.registered = false
	p.gauge("sockets", p.registry.Len())
	p.gauge("updates.pending", p.updates.Len())
}

// Token returns the completion token of sock, to be carried by every probe
// it issues. It is zero if sock is not registered with p.
func (p *Port) Token(sock Socket) uint64 {
	l := sock.PortLinks()
	if !l.registered || l.owner != p {
		return 0
	}
	return uint64(l.token)
}
