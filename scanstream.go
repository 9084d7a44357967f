// Package scanstream wraps a byte stream so that everything read from it is
// also submitted to a clamav daemon for scanning, without changing what the
// consumer sees. The wrapped stream forwards every chunk byte-for-byte and
// in order; only once the input is exhausted does it report -- exactly once,
// as its terminal item -- whether the daemon flagged the content.
//
// A clean stream reads exactly like the unwrapped input:
//
//	stream, err := scanstream.Tcp(file, "localhost:3310")
//	if err != nil {
//		return err
//	}
//	defer stream.Close()
//
//	_, err = io.Copy(dst, stream)
//	if scanErr, ok := err.(*scanstream.ScanError); ok {
//		log.Errorf("Content rejected: %v", scanErr)
//	}
//
// An infected stream yields all of its content first and a *ScanError last,
// so a consumer never silently keeps a partial copy without learning that
// the content was flagged.
package scanstream

import (
	"io"

	"github.com/bokysan/scanstream/scanner"
	"github.com/bokysan/scanstream/wire"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// ChannelFunc acquires the duplex byte channel to the scanning daemon. The
// wrapper performs the protocol handshake itself; the function only has to
// produce a connected channel.
type ChannelFunc func() (io.ReadWriteCloser, error)

// chunkQueueDepth bounds how far the scan side may fall behind the consumer
// before a Read has to wait for the daemon writes to drain.
const chunkQueueDepth = 16

type teeState int

const (
	stateForwarding teeState = iota
	stateFinalizing
	stateDone
)

// ScannedStream is the wrapped stream. It implements io.ReadCloser over any
// io.Reader; the scan writes happen on a separate goroutine so they stay off
// the Read path. The chunk boundaries the input produces are the chunk
// boundaries the consumer and the daemon both observe.
//
// ScannedStream is driven by a single consumer: Read and Close are not safe
// for concurrent use with each other. Closing an only partially consumed
// stream abandons the scan and releases the daemon connection.
type ScannedStream struct {
	input   io.Reader
	session *scanner.Session

	chunks      chan []byte
	result      chan wire.Verdict
	queueClosed bool
	closed      bool
	state       teeState
	verdict     *wire.Verdict
}

// Wrap ties an input stream to a scanning channel produced by acquire. It
// fails -- before any chunk is forwarded -- if the channel cannot be
// acquired or the scan handshake cannot be written.
func Wrap(input io.Reader, acquire ChannelFunc) (*ScannedStream, error) {
	conn, err := acquire()
	if err != nil {
		return nil, errors.Wrapf(err, "Could not acquire a scan channel: %v", err)
	}

	session, err := scanner.Open(conn)
	if err != nil {
		return nil, err
	}

	s := &ScannedStream{
		input:   input,
		session: session,
		chunks:  make(chan []byte, chunkQueueDepth),
		result:  make(chan wire.Verdict, 1),
	}
	go s.scanLoop()

	return s, nil
}

// scanLoop is the second consumer of the tee: it drains the chunk queue into
// the scan session and finalizes once the queue is closed. It communicates
// back through the buffered result channel only, so it can never leak.
func (s *ScannedStream) scanLoop() {
	for chunk := range s.chunks {
		_, _ = s.session.Write(chunk)
	}
	s.result <- s.session.Finalize()
}

// Read forwards one chunk from the input. Once the input is exhausted it
// waits for the daemon's verdict -- the only point where the scan adds
// consumer-visible latency -- and then returns either io.EOF or, exactly
// once, a *ScanError. A terminal item is never combined with payload bytes:
// every chunk has been delivered strictly before it.
func (s *ScannedStream) Read(p []byte) (int, error) {
	switch s.state {
	case stateDone:
		return 0, io.EOF
	case stateFinalizing:
		return 0, s.deliverVerdict()
	}

	n, err := s.input.Read(p)
	if n > 0 {
		chunk := make([]byte, n)
		copy(chunk, p[:n])
		s.chunks <- chunk
	}

	switch {
	case err == nil:
		return n, nil
	case err == io.EOF:
		s.state = stateFinalizing
		if n > 0 {
			return n, nil
		}
		return 0, s.deliverVerdict()
	default:
		// The input's own error terminates the stream; a partial-content
		// verdict would be meaningless, so the scan is abandoned.
		s.state = stateDone
		s.shutdown()
		return n, err
	}
}

// deliverVerdict closes the chunk queue, waits for the scan goroutine to
// finalize and turns the verdict into the terminal item.
func (s *ScannedStream) deliverVerdict() error {
	s.state = stateDone
	s.queueClosed = true
	close(s.chunks)

	verdict := <-s.result
	s.verdict = &verdict
	log.Debugf("Scan verdict: %v", verdict.Status)

	if verdict.Clean() {
		return io.EOF
	}
	return &ScanError{Verdict: verdict}
}

// shutdown releases the daemon connection and lets the scan goroutine run
// to completion. Closing the connection first unblocks any in-flight write.
func (s *ScannedStream) shutdown() {
	if s.closed {
		return
	}
	s.closed = true

	_ = s.session.Close()
	if !s.queueClosed {
		s.queueClosed = true
		close(s.chunks)
	}
}

// Verdict returns the daemon's verdict once the stream has been fully
// consumed. The second return is false while the scan is still pending or
// when the stream terminated without one (input error, early Close).
func (s *ScannedStream) Verdict() (wire.Verdict, bool) {
	if s.verdict == nil {
		return wire.Verdict{}, false
	}
	return *s.verdict, true
}

// Close abandons the stream and releases the daemon connection. A stream
// abandoned before the end of its input gets no verdict. Close does not
// touch the input stream -- the wrapper only ever consumes from it.
func (s *ScannedStream) Close() error {
	s.state = stateDone
	if s.closed {
		return nil
	}
	s.shutdown()
	return nil
}

// Closed reports whether the stream has been closed or fully consumed.
func (s *ScannedStream) Closed() bool {
	return s.closed || s.state == stateDone
}
