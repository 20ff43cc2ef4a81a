package version

import (
	"os/exec"
	"strings"

	"provision-host/internal/logger"
)

// probeArgs maps a tool name to the arguments that make it print its
// version. Tools disagree wildly here (`--version`, `version --client`,
// plain `version`), so the special cases live in one table instead of
// branching logic repeated per tool. Anything not listed gets the generic
// `--version` fallback.
var probeArgs = map[string][]string{
	"kubectl":   {"version", "--client", "--short"},
	"helm":      {"version", "--short"},
	"terraform": {"version"},
	"go":        {"version"},
	"docker":    {"--version"},
	"k9s":       {"version", "--short"},
	"awscli":    {"--version"},
	"ansible":   {"--version"},
	"lazygit":   {"--version"},
}

// fallbackArgs is the generic probe used for tools without a bespoke rule.
var fallbackArgs = []string{"--version"}

// Prober turns a tool name into a human-readable version string by running
// the tool itself. Version display is advisory: a probe that fails yields
// an empty string rather than an error, and never aborts the run.
type Prober struct {
	// run executes the probe command and returns its combined output.
	// Overridable in tests so no real tools are required.
	run func(name string, args ...string) ([]byte, error)
}

// New returns a Prober that shells out to the probed tool.
func New() *Prober {
	return &Prober{
		run: func(name string, args ...string) ([]byte, error) {
			return exec.Command(name, args...).CombinedOutput()
		},
	}
}

// NewWithRunner returns a Prober that uses a custom command runner instead
// of spawning processes. Intended for tests needing deterministic output.
func NewWithRunner(run func(name string, args ...string) ([]byte, error)) *Prober {
	return &Prober{run: run}
}

// Probe returns the first non-empty line the tool prints for its version
// flag, trimmed of surrounding whitespace. Some tools print their version
// and still exit non-zero (or print it to stderr), so any captured output
// is used even when the command reports an error; only a probe with no
// output at all comes back empty.
func (p *Prober) Probe(tool string) string {
	args, ok := probeArgs[tool]
	if !ok {
		args = fallbackArgs
	}

	output, err := p.run(tool, args...)
	if err != nil && len(output) == 0 {
		logger.Debug("[DEBUG] Version probe for %s failed: %v\n", tool, err)
		return ""
	}
	return firstLine(output)
}

// firstLine extracts the first non-empty line from command output.
func firstLine(output []byte) string {
	for _, line := range strings.Split(string(output), "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			return trimmed
		}
	}
	return ""
}
