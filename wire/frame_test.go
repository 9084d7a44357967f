package wire

import (
	"github.com/stretchr/testify/require"
	"testing"
)

func Test_EncodeChunk(t *testing.T) {
	frame := EncodeChunk([]byte("Hello World"))

	require.Equal(t, []byte{0, 0, 0, 11}, frame[:4], "Length prefix should be 4-byte big-endian")
	require.Equal(t, "Hello World", string(frame[4:]), "Payload should follow the prefix unmodified")
}

func Test_EncodeChunk_Empty(t *testing.T) {
	frame := EncodeChunk(nil)

	require.Equal(t, Terminator, frame, "An empty payload frames exactly as the terminator")
}

func Test_EncodeChunk_LargeLength(t *testing.T) {
	frame := EncodeChunk(make([]byte, 0x01020304))

	require.Equal(t, []byte{1, 2, 3, 4}, frame[:4])
	require.Len(t, frame, 4+0x01020304)
}

func Test_Terminator(t *testing.T) {
	require.Equal(t, []byte{0, 0, 0, 0}, Terminator)
}
