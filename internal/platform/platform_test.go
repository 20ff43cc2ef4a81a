package platform

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFromGOOS(t *testing.T) {
	p, err := fromGOOS("linux")
	require.NoError(t, err)
	require.Equal(t, Linux, p)
	require.Equal(t, "linux", p.String())

	p, err = fromGOOS("darwin")
	require.NoError(t, err)
	require.Equal(t, MacOS, p)
	require.Equal(t, "macos", p.String())
}

func TestFromGOOSUnsupported(t *testing.T) {
	for _, goos := range []string{"windows", "plan9", ""} {
		_, err := fromGOOS(goos)
		require.Error(t, err)

		var unsupported *UnsupportedError
		require.ErrorAs(t, err, &unsupported)
		// The raw OS identifier must survive into the error for the operator.
		require.Equal(t, goos, unsupported.GOOS)
	}
}

func TestDetectMatchesRuntime(t *testing.T) {
	p, err := Detect()
	if runtime.GOOS != "linux" && runtime.GOOS != "darwin" {
		require.Error(t, err)
		return
	}
	require.NoError(t, err)
	want, _ := fromGOOS(runtime.GOOS)
	require.Equal(t, want, p)
}
