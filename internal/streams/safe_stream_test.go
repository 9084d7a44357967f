package streams

import (
	"io/ioutil"
	"os"
	"testing"

	"github.com/stretchr/testify/require"
)

func Test_SafeStream_DoubleClose(t *testing.T) {
	f, err := ioutil.TempFile("", "test")
	require.NoErrorf(t, err, "Could not create temp file: %v", err)
	defer os.Remove(f.Name())

	obj := NewSafeStream(f)

	require.False(t, obj.Closed())
	require.NoError(t, obj.Close())
	require.True(t, obj.Closed())
	require.NoError(t, obj.Close(), "Closing a closed stream should succeed without an error")
}

func Test_SafeStream_NoDoubleWrap(t *testing.T) {
	f, err := ioutil.TempFile("", "test")
	require.NoErrorf(t, err, "Could not create temp file: %v", err)
	defer os.Remove(f.Name())
	defer f.Close()

	obj1 := NewSafeStream(f)
	obj2 := NewSafeStream(obj1)

	require.Same(t, obj1, obj2, "Wrapping a SafeStream should not create a new instance")
	require.Equal(t, f, obj1.Unwrap())
}

func Test_TryClose_Nil(t *testing.T) {
	// Must not panic
	TryClose(nil)
}
