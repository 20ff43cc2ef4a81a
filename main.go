package main

import (
	"provision-host/cmd" // Import the cmd package which contains the CLI commands and execution logic
)

// main is the program entry point.
// It delegates to cmd.Execute() which handles command line argument parsing and execution.
//
// This design cleanly separates the CLI interface (cmd package) from main,
// allowing easier testing, extension, and reuse of the CLI commands.
//
// The provision-host project is a host-provisioning orchestrator that:
//   - Carries a catalog of known tools grouped into named modules
//     (essentials, infrastructure, additional), optionally overridden from a YAML file
//   - Installs, updates, or removes the requested tools through the native
//     package manager of the detected platform (apt on Linux, Homebrew on macOS)
//   - Falls back to downloading GitHub release archives for tools the
//     package manager does not carry, extracting them into a bin directory
//   - Probes each touched tool for a human-readable version string and
//     accumulates per-tool outcomes in an in-memory run ledger
//   - Resolves operator typos in tool names via exact, case-insensitive, and
//     edit-distance matching, suggesting the closest catalog entry
//
// Error handling strategy:
//   - A single tool's failure never aborts the run; it is logged and the run
//     proceeds to the next requested tool, finishing with a summary
//   - Only an unsupported platform is fatal, since no backend can be selected
//
// Execution model:
//   - Strictly sequential: package managers serialize on a global database
//     lock, so tools are dispatched one at a time, first requested first
func main() {
	cmd.Execute()
}
