package dispatch

import (
	"os/exec"

	"provision-host/internal/catalog"
	"provision-host/internal/ledger"
	"provision-host/internal/logger"
	"provision-host/internal/pkgmgr"
	"provision-host/internal/release"
	"provision-host/internal/version"
)

// Dispatcher executes one action per tool: it checks whether the tool is
// already on the host, delegates to the package-manager backend when work
// is needed, probes the resulting version, and records the outcome in the
// run ledger. The ledger is owned here and written only from the single
// run goroutine; package managers serialize on a global database lock, so
// dispatching is strictly sequential by design.
type Dispatcher struct {
	backend pkgmgr.Backend
	prober  *version.Prober
	ledger  *ledger.Ledger

	// lookPath reports whether a tool's executable is resolvable on the
	// host. Defaults to exec.LookPath; replaceable in tests.
	lookPath func(name string) (string, error)

	// releaseInstall is the GitHub-release fallback used when the package
	// manager fails for a catalog entry that carries a repo. Replaceable in
	// tests.
	releaseInstall func(tool, repo, tag string) (string, error)
}

// New builds a dispatcher around the given backend. The ledger starts
// empty and accumulates for the lifetime of the run.
func New(backend pkgmgr.Backend) *Dispatcher {
	return &Dispatcher{
		backend:        backend,
		prober:         version.New(),
		ledger:         ledger.New(),
		lookPath:       exec.LookPath,
		releaseInstall: release.Install,
	}
}

// Ledger exposes the accumulated outcomes for summary rendering and report
// export after the run.
func (d *Dispatcher) Ledger() *ledger.Ledger {
	return d.ledger
}

// Run dispatches the requested action for every tool in the work list, one
// tool fully processed before the next begins. A failing tool is reported
// and the run continues with the rest.
func (d *Dispatcher) Run(tools []catalog.Tool, action Action) {
	for _, tool := range tools {
		d.Dispatch(tool, action)
	}
}

// Dispatch performs one action for one tool and records the outcome.
// Per-tool failure isolation: errors are logged, never propagated.
func (d *Dispatcher) Dispatch(tool catalog.Tool, action Action) {
	logger.Debug("[DEBUG] Dispatching %s for %s\n", action, tool.Name)
	switch action {
	case Install:
		d.install(tool)
	case Update:
		d.update(tool)
	case Remove:
		d.remove(tool)
	}
}

// present reports whether the tool's executable resolves on the host.
// Presence is always probed live rather than tracked, so a tool installed
// or removed outside this run is still seen correctly.
func (d *Dispatcher) present(tool string) bool {
	path, err := d.lookPath(tool)
	if err != nil {
		return false
	}
	logger.Debug("[DEBUG] %s already resolvable at %s\n", tool, path)
	return true
}

func (d *Dispatcher) install(tool catalog.Tool) {
	if d.present(tool.Name) {
		// Already on the host: skip the backend but tell the operator and
		// still record the version, so the summary covers every requested
		// tool.
		logger.Info("[INFO] %s is already installed. Skipping install.\n", tool.Name)
		d.ledger.Record(tool.Name, d.prober.Probe(tool.Name))
		return
	}

	logger.Info("[INFO] Installing %s...\n", tool.Name)
	if err := d.backend.Install(tool.Name); err != nil {
		logger.Error("[ERROR] Failed to install %s: %v\n", tool.Name, err)
		if !d.installFromRelease(tool) {
			// The install failed, but probing is independent of the
			// backend: record whatever state is still observable.
			if ver := d.prober.Probe(tool.Name); ver != "" {
				d.ledger.Record(tool.Name, ver)
			}
			return
		}
	}

	logger.Info("[INFO] Installed %s\n", tool.Name)
	d.ledger.Record(tool.Name, d.prober.Probe(tool.Name))
}

// installFromRelease tries the GitHub-release fallback for catalog entries
// that declare one. Returns true when the fallback produced a binary.
func (d *Dispatcher) installFromRelease(tool catalog.Tool) bool {
	if tool.Repo == "" {
		return false
	}
	logger.Info("[INFO] Falling back to GitHub release %s@%s for %s...\n", tool.Repo, tool.Tag, tool.Name)
	path, err := d.releaseInstall(tool.Name, tool.Repo, tool.Tag)
	if err != nil {
		logger.Error("[ERROR] Release fallback for %s failed: %v\n", tool.Name, err)
		return false
	}
	logger.Debug("[DEBUG] Release fallback installed %s at %s\n", tool.Name, path)
	return true
}

func (d *Dispatcher) update(tool catalog.Tool) {
	if !d.present(tool.Name) {
		logger.Warn("[WARN] %s is not installed, skipping update\n", tool.Name)
		return
	}

	logger.Info("[INFO] Updating %s...\n", tool.Name)
	if err := d.backend.Update(tool.Name); err != nil {
		logger.Error("[ERROR] Failed to update %s: %v\n", tool.Name, err)
	}
	// Re-probe regardless: the summary should show the version that is
	// actually on the host after the attempt.
	d.ledger.Record(tool.Name, d.prober.Probe(tool.Name))
}

func (d *Dispatcher) remove(tool catalog.Tool) {
	if !d.present(tool.Name) {
		logger.Warn("[WARN] %s is not installed, skipping removal\n", tool.Name)
		return
	}

	logger.Info("[INFO] Removing %s...\n", tool.Name)
	if err := d.backend.Remove(tool.Name); err != nil {
		// The Removed marker asserts absence; a failed removal must not
		// claim it.
		logger.Error("[ERROR] Failed to remove %s: %v\n", tool.Name, err)
		return
	}
	d.ledger.Record(tool.Name, ledger.Removed)
}
