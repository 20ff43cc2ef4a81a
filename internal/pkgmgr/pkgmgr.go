package pkgmgr

import (
	"fmt"
	"os/exec"
	"strings"

	"provision-host/internal/logger"
	"provision-host/internal/platform"
)

// Backend drives one platform's native package manager. Implementations are
// a small closed set selected once at startup from the detected platform;
// every call is best effort with no retries, so one tool's failure never
// takes the run down with it.
type Backend interface {
	Install(tool string) error
	Update(tool string) error
	Remove(tool string) error
}

// InstallError reports a failed package-manager invocation. It keeps the
// tool name and the command's combined output so the operator sees what the
// package manager actually said, not just the exit status.
type InstallError struct {
	Tool   string
	Output string
	Err    error
}

func (e *InstallError) Error() string {
	return fmt.Sprintf("package manager failed for %s: %v", e.Tool, e.Err)
}

func (e *InstallError) Unwrap() error {
	return e.Err
}

// runFunc executes a command and returns its combined output. It exists as
// an indirection point so tests can drive the backends without a real
// package manager on the machine.
type runFunc func(name string, args ...string) ([]byte, error)

func runCommand(name string, args ...string) ([]byte, error) {
	cmd := exec.Command(name, args...)
	logger.Debug("[DEBUG] Running command: %s\n", strings.Join(cmd.Args, " "))
	return cmd.CombinedOutput()
}

// For selects the backend matching the detected platform.
func For(p platform.Platform) Backend {
	switch p {
	case platform.MacOS:
		return &brewBackend{run: runCommand}
	default:
		return &aptBackend{run: runCommand}
	}
}

// aptBackend drives apt-get on Linux hosts. apt requires elevated
// privileges for all mutating operations, so every call goes through sudo;
// that privilege is an environmental precondition, not something validated
// here.
type aptBackend struct {
	run runFunc
}

func (b *aptBackend) Install(tool string) error {
	return b.apt(tool, "install", "-y", tool)
}

func (b *aptBackend) Update(tool string) error {
	return b.apt(tool, "install", "--only-upgrade", "-y", tool)
}

func (b *aptBackend) Remove(tool string) error {
	return b.apt(tool, "remove", "-y", tool)
}

func (b *aptBackend) apt(tool string, args ...string) error {
	output, err := b.run("sudo", append([]string{"apt-get"}, args...)...)
	logger.Debug("[DEBUG] apt-get output for %s: %s\n", tool, output)
	if err != nil {
		return &InstallError{Tool: tool, Output: string(output), Err: err}
	}
	return nil
}

// brewBackend drives Homebrew on macOS hosts. Homebrew refuses to run as
// root, so unlike apt there is no sudo in front of it.
type brewBackend struct {
	run runFunc
}

func (b *brewBackend) Install(tool string) error {
	return b.brew(tool, "install", tool)
}

func (b *brewBackend) Update(tool string) error {
	return b.brew(tool, "upgrade", tool)
}

func (b *brewBackend) Remove(tool string) error {
	return b.brew(tool, "uninstall", tool)
}

func (b *brewBackend) brew(tool string, args ...string) error {
	output, err := b.run("brew", args...)
	logger.Debug("[DEBUG] brew output for %s: %s\n", tool, output)
	if err != nil {
		return &InstallError{Tool: tool, Output: string(output), Err: err}
	}
	return nil
}
