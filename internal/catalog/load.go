package catalog

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"provision-host/internal/logger"
)

// Load reads a catalog override from a YAML file. The expected layout
// mirrors the built-in catalog:
//
//	modules:
//	  - name: essentials
//	    tools:
//	      - name: git
//	      - name: k9s
//	        repo: derailed/k9s
//	        tag: v0.32.5
//
// A file that cannot be read, cannot be parsed, or declares no modules is a
// configuration error; the caller aborts before any work list is computed.
func Load(path string) (*Catalog, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file %s: %w", path, err)
	}

	var cat Catalog
	if err := yaml.Unmarshal(raw, &cat); err != nil {
		return nil, fmt.Errorf("failed to unmarshal catalog file %s: %w", path, err)
	}

	// An empty catalog can never produce work; treat it as a mistake rather
	// than silently doing nothing.
	if len(cat.Modules) == 0 {
		return nil, fmt.Errorf("catalog file %s declares no modules", path)
	}
	for _, m := range cat.Modules {
		if m.Name == "" {
			return nil, fmt.Errorf("catalog file %s contains a module without a name", path)
		}
	}

	logger.Debug("[DEBUG] Loaded catalog from %s with %d modules\n", path, len(cat.Modules))
	return &cat, nil
}
