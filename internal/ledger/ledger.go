package ledger

import (
	"encoding/json"
	"os"

	"provision-host/internal/logger"
)

// Removed is the fixed outcome marker recorded after a successful removal.
// A removed tool has no version to report, so this literal stands in.
const Removed = "Removed"

// Ledger is the in-memory record of per-tool outcomes accumulated during
// one run. An outcome is either a version string (after install/update) or
// the Removed marker. Entries keep the position of their first write;
// touching the same tool again overwrites the outcome in place, so the
// summary shows each tool once with its final state. The ledger lives for
// exactly one run and is discarded at process exit.
type Ledger struct {
	order    []string
	outcomes map[string]string
}

// New returns an empty ledger.
func New() *Ledger {
	return &Ledger{outcomes: make(map[string]string)}
}

// Record writes the outcome for a tool, overwriting any earlier entry for
// the same tool in this run (last write wins).
func (l *Ledger) Record(tool, outcome string) {
	if _, seen := l.outcomes[tool]; !seen {
		l.order = append(l.order, tool)
	}
	l.outcomes[tool] = outcome
}

// Outcome returns the recorded outcome for a tool, if any.
func (l *Ledger) Outcome(tool string) (string, bool) {
	outcome, ok := l.outcomes[tool]
	return outcome, ok
}

// Len reports how many tools have an entry.
func (l *Ledger) Len() int {
	return len(l.order)
}

// Render prints the run summary, one line per touched tool in first-seen
// order. A run that touched nothing says so instead of printing an empty
// table.
func (l *Ledger) Render() {
	if len(l.order) == 0 {
		logger.Warn("[WARN] No tools were changed in this run\n")
		return
	}
	logger.Info("[INFO] Run summary:\n")
	for _, tool := range l.order {
		logger.Info("[INFO]   %-16s %s\n", tool, l.outcomes[tool])
	}
}

// reportEntry is the JSON shape of one ledger row in an exported report.
type reportEntry struct {
	Tool    string `json:"tool"`
	Outcome string `json:"outcome"`
}

// WriteReport exports the ledger as indented JSON to the given path,
// preserving first-seen order. The report is a convenience snapshot of one
// run, not persistent state: nothing reads it back on the next run.
func WriteReport(path string, l *Ledger) error {
	entries := make([]reportEntry, 0, len(l.order))
	for _, tool := range l.order {
		entries = append(entries, reportEntry{Tool: tool, Outcome: l.outcomes[tool]})
	}

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return err
	}

	logger.Debug("[DEBUG] Writing run report to %s:\n%s\n", path, string(data))
	return os.WriteFile(path, data, 0644)
}
