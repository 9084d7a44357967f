package wire

import (
	"encoding/binary"
)

// CommandInstream is the handshake token that switches the daemon into
// streaming-scan mode. The trailing null byte is part of the token.
const CommandInstream = "zINSTREAM\x00"

// MaxChunkSize is the largest payload carried by a single frame. Larger
// chunks are split into multiple frames before they hit the wire.
const MaxChunkSize = 4096

// Terminator is the zero-length frame which tells the daemon that no
// further content will follow.
var Terminator = []byte{0, 0, 0, 0}

// EncodeChunk frames a payload as a 4-byte big-endian length followed by
// the raw payload bytes. No upper bound is enforced here -- an oversized
// frame is the daemon's to reject.
func EncodeChunk(p []byte) []byte {
	frame := make([]byte, 4+len(p))
	binary.BigEndian.PutUint32(frame, uint32(len(p)))
	copy(frame[4:], p)
	return frame
}
