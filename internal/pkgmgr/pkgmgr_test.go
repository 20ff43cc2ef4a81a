package pkgmgr

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"provision-host/internal/platform"
)

// recordingRun captures every command line a backend issues and returns a
// canned result.
type recordingRun struct {
	commands []string
	output   []byte
	err      error
}

func (r *recordingRun) run(name string, args ...string) ([]byte, error) {
	r.commands = append(r.commands, strings.Join(append([]string{name}, args...), " "))
	return r.output, r.err
}

func TestForSelectsBackendByPlatform(t *testing.T) {
	require.IsType(t, &aptBackend{}, For(platform.Linux))
	require.IsType(t, &brewBackend{}, For(platform.MacOS))
}

func TestAptBackendCommands(t *testing.T) {
	rec := &recordingRun{}
	b := &aptBackend{run: rec.run}

	require.NoError(t, b.Install("git"))
	require.NoError(t, b.Update("git"))
	require.NoError(t, b.Remove("git"))

	require.Equal(t, []string{
		"sudo apt-get install -y git",
		"sudo apt-get install --only-upgrade -y git",
		"sudo apt-get remove -y git",
	}, rec.commands)
}

func TestBrewBackendCommands(t *testing.T) {
	rec := &recordingRun{}
	b := &brewBackend{run: rec.run}

	require.NoError(t, b.Install("jq"))
	require.NoError(t, b.Update("jq"))
	require.NoError(t, b.Remove("jq"))

	require.Equal(t, []string{
		"brew install jq",
		"brew upgrade jq",
		"brew uninstall jq",
	}, rec.commands)
}

func TestInstallErrorCarriesToolAndOutput(t *testing.T) {
	underlying := errors.New("exit status 100")
	rec := &recordingRun{output: []byte("E: Unable to locate package ghost"), err: underlying}
	b := &aptBackend{run: rec.run}

	err := b.Install("ghost")
	require.Error(t, err)

	var installErr *InstallError
	require.ErrorAs(t, err, &installErr)
	require.Equal(t, "ghost", installErr.Tool)
	require.Contains(t, installErr.Output, "Unable to locate package")
	require.ErrorIs(t, err, underlying)
}
