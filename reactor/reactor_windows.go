//go:build windows

// File: reactor/reactor_windows.go
// Author: momentics <momentics@gmail.com>
//
// Windows IOCP (I/O Completion Port) backend and factory.

package reactor

import (
	"sync"
	"time"
	"unsafe"

	"golang.org/x/sys/windows"

	"github.com/momentics/hioload-wepoll/api"
)

var (
	modkernel32                     = windows.NewLazySystemDLL("kernel32.dll")
	procGetQueuedCompletionStatusEx = modkernel32.NewProc("GetQueuedCompletionStatusEx")

	wsaOnce sync.Once
	wsaErr  error
)

// overlappedEntry mirrors OVERLAPPED_ENTRY.
type overlappedEntry struct {
	key        uintptr
	overlapped *windows.Overlapped
	internal   uintptr
	qty        uint32
}

// maxBatch bounds one GetQueuedCompletionStatusEx call.
const maxBatch = 256

// IOCP is a native completion port.
type IOCP struct {
	handle windows.Handle
	buf    []overlappedEntry
}

// New returns the platform completion reactor.
func New() (Reactor, error) {
	return NewIOCP()
}

// NewIOCP creates a completion port. Winsock is initialized on first use,
// since grouping handles are sockets.
func NewIOCP() (*IOCP, error) {
	wsaOnce.Do(func() {
		var data windows.WSAData
		wsaErr = windows.WSAStartup(uint32(0x202), &data)
	})
	if wsaErr != nil {
		return nil, api.Wrap(api.ErrCodeOSResource, "WSAStartup", wsaErr)
	}
	h, err := windows.CreateIoCompletionPort(windows.InvalidHandle, 0, 0, 0)
	if err != nil {
		return nil, api.Wrap(api.ErrCodeOSResource, "CreateIoCompletionPort", err)
	}
	return &IOCP{handle: h}, nil
}

// Handle returns the raw completion port handle.
func (r *IOCP) Handle() windows.Handle { return r.handle }

// NewGroupHandle creates an overlapped socket of the given protocol class,
// marks it non-inheritable, and associates it with the port.
func (r *IOCP) NewGroupHandle(proto api.Protocol) (api.GroupHandle, error) {
	s, err := windows.WSASocket(proto.Family, proto.Type, proto.Protocol, nil, 0, windows.WSA_FLAG_OVERLAPPED)
	if err != nil {
		return nil, api.Wrap(api.ErrCodeOSResource, "WSASocket", err).
			WithContext("protocol", proto.String())
	}
	if err := windows.SetHandleInformation(s, windows.HANDLE_FLAG_INHERIT, 0); err != nil {
		_ = windows.Closesocket(s)
		return nil, api.Wrap(api.ErrCodeOSResource, "SetHandleInformation", err)
	}
	if _, err := windows.CreateIoCompletionPort(s, r.handle, 0, 0); err != nil {
		_ = windows.Closesocket(s)
		return nil, api.Wrap(api.ErrCodeOSResource, "CreateIoCompletionPort", err)
	}
	return groupSocket(s), nil
}

// Dequeue retrieves a batch with GetQueuedCompletionStatusEx.
func (r *IOCP) Dequeue(entries []api.Completion, timeout time.Duration) (int, error) {
	if len(entries) == 0 {
		return 0, api.NewError(api.ErrCodeInvalidArgument, "empty completion buffer")
	}
	want := len(entries)
	if want > maxBatch {
		want = maxBatch
	}
	if cap(r.buf) < want {
		r.buf = make([]overlappedEntry, maxBatch)
	}
	buf := r.buf[:want]

	ms := uint32(windows.INFINITE)
	switch {
	case timeout >= time.Duration(windows.INFINITE-1)*time.Millisecond:
		ms = windows.INFINITE - 1
	case timeout > 0:
		ms = uint32((timeout + time.Millisecond - 1) / time.Millisecond)
	case timeout == 0:
		ms = 0
	}

	var n uint32
	r1, _, e1 := procGetQueuedCompletionStatusEx.Call(
		uintptr(r.handle),
		uintptr(unsafe.Pointer(&buf[0])),
		uintptr(len(buf)),
		uintptr(unsafe.Pointer(&n)),
		uintptr(ms),
		0,
	)
	if r1 == 0 {
		if errno, ok := e1.(windows.Errno); ok {
			switch errno {
			case windows.WAIT_TIMEOUT:
				return 0, nil
			case windows.ERROR_ABANDONED_WAIT_0, windows.ERROR_INVALID_HANDLE:
				return 0, api.ErrPortClosed
			}
		}
		return 0, api.Wrap(api.ErrCodeOSResource, "GetQueuedCompletionStatusEx", e1)
	}
	for i := uint32(0); i < n; i++ {
		e := &buf[i]
		entries[i] = api.Completion{
			Token:      uint64(e.key),
			Overlapped: uintptr(unsafe.Pointer(e.overlapped)),
			Internal:   e.internal,
			Bytes:      e.qty,
		}
	}
	return int(n), nil
}

// Post enqueues a completion packet. Posted records carry no OVERLAPPED.
func (r *IOCP) Post(c api.Completion) error {
	if err := windows.PostQueuedCompletionStatus(r.handle, c.Bytes, uintptr(c.Token), nil); err != nil {
		return api.Wrap(api.ErrCodeOSResource, "PostQueuedCompletionStatus", err)
	}
	return nil
}

// Close releases the completion port handle.
func (r *IOCP) Close() error {
	if err := windows.CloseHandle(r.handle); err != nil {
		return api.Wrap(api.ErrCodeOSResource, "CloseHandle", err)
	}
	return nil
}

type groupSocket windows.Handle

func (s groupSocket) Handle() uintptr { return uintptr(s) }

func (s groupSocket) Close() error {
	if err := windows.Closesocket(windows.Handle(s)); err != nil {
		return api.Wrap(api.ErrCodeOSResource, "closesocket", err)
	}
	return nil
}

var _ Reactor = (*IOCP)(nil)
