// Package scanner drives one streaming-scan conversation with a clamav
// daemon over an already acquired duplex byte channel.
package scanner

import (
	"bufio"
	"fmt"
	"io"
	"sync"

	"github.com/bokysan/scanstream/internal/streams"
	"github.com/bokysan/scanstream/wire"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// Session owns the connection to the scanning daemon for the lifetime of one
// scanned stream. The protocol is write-only until Finalize, which flushes
// the terminator and reads the daemon's single response line.
//
// A Session has exactly one writer and one reader and is not meant to be
// shared; only Close may be called from another goroutine.
type Session struct {
	conn     *streams.SafeStream
	closer   sync.Once
	closeErr error
	degraded error
}

// Open announces a streaming scan on the freshly acquired channel. The
// channel is closed and an error is returned if the handshake cannot be
// written.
func Open(conn io.ReadWriteCloser) (*Session, error) {
	s := &Session{
		conn: streams.NewSafeStream(conn),
	}

	log.Tracef("Starting a streaming scan on %v", conn)
	if _, err := s.conn.Write([]byte(wire.CommandInstream)); err != nil {
		streams.TryClose(s.conn)
		return nil, errors.Wrapf(err, "Could not announce a streaming scan: %v", err)
	}

	return s, nil
}

// Write frames one chunk and sends it to the daemon. Write never returns an
// error: a wire failure marks the session as degraded and is absorbed, so
// that pass-through to the consumer is never interrupted. A degraded
// session will finalize to a protocol-error verdict, never to a clean one.
func (s *Session) Write(p []byte) (int, error) {
	// A zero-length chunk would read as the terminator on the wire
	if s.degraded != nil || len(p) == 0 {
		return len(p), nil
	}

	for sent := 0; sent < len(p); {
		end := sent + wire.MaxChunkSize
		if end > len(p) {
			end = len(p)
		}
		if _, err := s.conn.Write(wire.EncodeChunk(p[sent:end])); err != nil {
			s.degraded = errors.WithStack(err)
			log.WithError(err).Debugf("Scan channel degraded: %v", err)
			break
		}
		sent = end
	}

	return len(p), nil
}

// Degraded returns the first wire failure seen by Write, if any.
func (s *Session) Degraded() error {
	return s.degraded
}

// Finalize ends the conversation: it writes the terminator frame, reads the
// daemon's response line and classifies it. A degraded session skips the
// terminator and reports the failure that degraded it. The connection is
// released in every case.
func (s *Session) Finalize() wire.Verdict {
	defer streams.TryClose(s.conn)

	if s.degraded != nil {
		return wire.ProtocolFailure(fmt.Sprintf("scan channel degraded: %v", s.degraded))
	}

	if _, err := s.conn.Write(wire.Terminator); err != nil {
		return wire.ProtocolFailure(fmt.Sprintf("could not terminate the scan stream: %v", err))
	}

	line, err := bufio.NewReader(s.conn).ReadString('\n')
	if line == "" && err != nil {
		return wire.ProtocolFailure(fmt.Sprintf("could not read the scan response: %v", err))
	}

	log.Debugf("Scan response: %v", line)
	return wire.Classify(line)
}

// Close releases the daemon connection. It is safe to call any number of
// times and concurrently with a blocked Write or Finalize -- that is how an
// abandoned stream unblocks and tears down its scan.
func (s *Session) Close() error {
	s.closer.Do(func() {
		s.closeErr = streams.LogClose(s.conn)
	})
	return s.closeErr
}

// Closed reports whether the daemon connection has been released.
func (s *Session) Closed() bool {
	return s.conn.Closed()
}
