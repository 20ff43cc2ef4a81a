package platform

import (
	"fmt"
	"runtime"
)

// Platform identifies the family of operating system the run targets.
// It is detected exactly once per run and drives which package manager
// backend performs the actual install/update/remove work.
type Platform int

const (
	// Linux covers any GOOS=linux host; the apt backend is used.
	Linux Platform = iota
	// MacOS covers GOOS=darwin hosts; the Homebrew backend is used.
	MacOS
)

// String returns the lowercase tag used in log output and reports.
func (p Platform) String() string {
	switch p {
	case Linux:
		return "linux"
	case MacOS:
		return "macos"
	default:
		return "unknown"
	}
}

// UnsupportedError is returned by Detect when the running OS is neither
// Linux nor macOS. It carries the raw GOOS string so the operator can see
// exactly what was detected.
type UnsupportedError struct {
	GOOS string
}

func (e *UnsupportedError) Error() string {
	return fmt.Sprintf("unsupported platform %q: only linux and darwin are supported", e.GOOS)
}

// Detect inspects the running OS and returns its Platform tag.
// It has no side effects and must succeed before any backend or version
// probe is used; an unsupported OS aborts the whole run.
func Detect() (Platform, error) {
	return fromGOOS(runtime.GOOS)
}

// fromGOOS maps a GOOS value to a Platform. Split out from Detect so the
// mapping can be tested without faking the runtime.
func fromGOOS(goos string) (Platform, error) {
	switch goos {
	case "linux":
		return Linux, nil
	case "darwin":
		return MacOS, nil
	default:
		return 0, &UnsupportedError{GOOS: goos}
	}
}
