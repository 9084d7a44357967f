package addr

import (
	"github.com/stretchr/testify/require"
	"testing"
)

func Test_ParseAddress_Tcp(t *testing.T) {
	a, err := ParseAddress("tcp://localhost:3310")
	require.NoError(t, err)
	require.Equal(t, "tcp", a.Network)
	require.Equal(t, "localhost:3310", a.Address)
	require.Equal(t, "tcp://localhost:3310", a.String())
}

func Test_ParseAddress_Unix(t *testing.T) {
	a, err := ParseAddress("unix:///run/clamav/clamd.ctl")
	require.NoError(t, err)
	require.Equal(t, "unix", a.Network)
	require.Equal(t, "/run/clamav/clamd.ctl", a.Address)
}

func Test_ParseAddress_MissingNetwork(t *testing.T) {
	_, err := ParseAddress("localhost:3310")
	require.Error(t, err)
}

func Test_ParseAddress_UnsupportedNetwork(t *testing.T) {
	_, err := ParseAddress("udp://localhost:3310")
	require.Error(t, err)
}

func Test_UnmarshalFlag(t *testing.T) {
	var a ProtoAddress
	require.NoError(t, a.UnmarshalFlag("tcp://localhost:3310"))
	require.Equal(t, "localhost:3310", a.Address)
	require.Error(t, a.UnmarshalFlag("nonsense"))
}
