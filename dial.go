package scanstream

import (
	"io"
	"net"

	log "github.com/sirupsen/logrus"
)

// Tcp wraps the input with a scan over a TCP connection to the daemon,
// e.g. "localhost:3310".
func Tcp(input io.Reader, address string) (*ScannedStream, error) {
	return Wrap(input, func() (io.ReadWriteCloser, error) {
		log.Debugf("Dialing scan daemon at tcp://%s", address)
		return net.Dial("tcp", address)
	})
}

// Unix wraps the input with a scan over the daemon's local socket,
// e.g. "/run/clamav/clamd.ctl".
func Unix(input io.Reader, path string) (*ScannedStream, error) {
	return Wrap(input, func() (io.ReadWriteCloser, error) {
		log.Debugf("Dialing scan daemon at unix://%s", path)
		return net.Dial("unix", path)
	})
}
