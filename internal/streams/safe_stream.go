package streams

import (
	"io"
	"sync"
)

// SafeStream makes sure that `Close()` can be called safely multiple times, even from
// concurrent goroutines. Calling `Close()` on a closed object will simply succeed
// without an error.
type SafeStream struct {
	io.ReadWriteCloser
	mu     sync.Mutex
	closed bool
}

// NewSafeStream will create a new SafeStream around the given stream. It *WILL NOT* create
// a new instance if the provided argument is already a SafeStream.
func NewSafeStream(wrapped io.ReadWriteCloser) *SafeStream {
	if scs, ok := wrapped.(*SafeStream); ok {
		return scs
	}

	return &SafeStream{
		ReadWriteCloser: wrapped,
	}
}

// Close will close the underlying stream. If the Close has already been called, it will do nothing
func (ns *SafeStream) Close() error {
	ns.mu.Lock()
	if ns.closed {
		ns.mu.Unlock()
		return nil
	}
	ns.closed = true
	ns.mu.Unlock()

	return LogClose(ns.ReadWriteCloser)
}

// Closed will return `true` if SafeStream.Close has been called at least once
func (ns *SafeStream) Closed() bool {
	ns.mu.Lock()
	defer ns.mu.Unlock()
	return ns.closed
}

// Unwrap returns the embedded io.ReadWriteCloser
func (ns *SafeStream) Unwrap() io.ReadWriteCloser {
	return ns.ReadWriteCloser
}
