package version

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func fakeProber(output string, err error, commands *[]string) *Prober {
	return &Prober{
		run: func(name string, args ...string) ([]byte, error) {
			if commands != nil {
				*commands = append(*commands, strings.Join(append([]string{name}, args...), " "))
			}
			return []byte(output), err
		},
	}
}

func TestProbeBespokeRule(t *testing.T) {
	var commands []string
	p := fakeProber("Client Version: v1.30.2\n", nil, &commands)

	require.Equal(t, "Client Version: v1.30.2", p.Probe("kubectl"))
	require.Equal(t, []string{"kubectl version --client --short"}, commands)
}

func TestProbeFallbackRule(t *testing.T) {
	var commands []string
	p := fakeProber("jq-1.7.1\n", nil, &commands)

	require.Equal(t, "jq-1.7.1", p.Probe("jq"))
	require.Equal(t, []string{"jq --version"}, commands)
}

func TestProbeTakesFirstNonEmptyLine(t *testing.T) {
	p := fakeProber("\n\nTerraform v1.9.5\non linux_amd64\n", nil, nil)
	require.Equal(t, "Terraform v1.9.5", p.Probe("terraform"))
}

func TestProbeErrorWithOutputStillUsed(t *testing.T) {
	// Tools occasionally print a version and still exit non-zero; that
	// output is better than nothing.
	p := fakeProber("ansible [core 2.17.0]\n", errors.New("exit status 2"), nil)
	require.Equal(t, "ansible [core 2.17.0]", p.Probe("ansible"))
}

func TestProbeErrorWithoutOutputIsEmpty(t *testing.T) {
	p := fakeProber("", errors.New("executable file not found"), nil)
	require.Equal(t, "", p.Probe("ghost-tool"))
}
