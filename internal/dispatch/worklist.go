package dispatch

import (
	"provision-host/internal/catalog"
	"provision-host/internal/logger"
)

// BuildWorkList turns the operator's request into the ordered list of
// catalog entries to act on: first every tool of each requested module, in
// the catalog's declared order, then each bare name after resolution, in
// request order. No de-duplication happens here; dispatching the same tool
// twice is an idempotent re-dispatch and the ledger's last write wins.
//
// An unresolved bare name never aborts the run: it is reported, the
// closest catalog entry is suggested when one is within reach, and the
// remaining names are still processed.
func BuildWorkList(cat *catalog.Catalog, modules []string, names []string) []catalog.Tool {
	var work []catalog.Tool

	for _, name := range modules {
		m, ok := cat.Module(name)
		if !ok {
			// Module flags are validated by the CLI, so this only fires for
			// catalog override files missing a built-in module name.
			logger.Warn("[WARN] Module %q is not in the catalog, skipping\n", name)
			continue
		}
		logger.Debug("[DEBUG] Module %s expands to %d tools\n", m.Name, len(m.Tools))
		work = append(work, m.Tools...)
	}

	for _, name := range names {
		tool, ok := cat.Resolve(name)
		if !ok {
			logger.Error("[ERROR] Unknown tool %q\n", name)
			if suggestion, found := cat.Suggest(name); found {
				logger.Warn("[WARN] Did you mean %q?\n", suggestion.Name)
			} else {
				logger.Warn("[WARN] No suggestion found for %q\n", name)
			}
			continue
		}
		work = append(work, tool)
	}

	return work
}
