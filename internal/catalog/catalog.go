package catalog

// Tool is a single catalog entry. Name is the canonical identifier used on
// the command line, as the package-manager package name, and as the
// executable name probed on the host.
//
// Repo/Tag optionally point at a GitHub release for tools the OS package
// manager does not carry; they are only consulted when a package-manager
// install fails.
type Tool struct {
	Name string `yaml:"name"`
	Repo string `yaml:"repo,omitempty"` // GitHub repo, e.g. derailed/k9s
	Tag  string `yaml:"tag,omitempty"`  // Release tag, e.g. v0.32.5
}

// Module is a named, ordered group of tools that can be targeted together
// by one CLI flag. Membership is fixed when the catalog is defined.
type Module struct {
	Name  string `yaml:"name"`
	Tools []Tool `yaml:"tools"`
}

// Catalog is the complete registry of known tools, partitioned into modules
// without duplication. It is read-only for the lifetime of a run.
type Catalog struct {
	Modules []Module `yaml:"modules"`
}

// Default returns the built-in catalog. It is used whenever the operator
// does not provide a catalog override file.
func Default() *Catalog {
	return &Catalog{
		Modules: []Module{
			{
				Name: "essentials",
				Tools: []Tool{
					{Name: "git"},
					{Name: "curl"},
					{Name: "wget"},
					{Name: "vim"},
					{Name: "tmux"},
					{Name: "htop"},
					{Name: "jq"},
					{Name: "unzip"},
				},
			},
			{
				Name: "infrastructure",
				Tools: []Tool{
					{Name: "docker"},
					{Name: "terraform"},
					{Name: "kubectl"},
					{Name: "helm"},
					{Name: "ansible"},
					{Name: "awscli"},
				},
			},
			{
				Name: "additional",
				Tools: []Tool{
					{Name: "nmap"},
					{Name: "python3"},
					{Name: "fzf"},
					{Name: "k9s", Repo: "derailed/k9s", Tag: "v0.32.5"},
					{Name: "lazygit", Repo: "jesseduffield/lazygit", Tag: "v0.44.1"},
					{Name: "yq", Repo: "mikefarah/yq", Tag: "v4.44.3"},
				},
			},
		},
	}
}

// Module returns the module with the given name, if present.
func (c *Catalog) Module(name string) (Module, bool) {
	for _, m := range c.Modules {
		if m.Name == name {
			return m, true
		}
	}
	return Module{}, false
}

// ModuleNames lists all module names in declaration order.
func (c *Catalog) ModuleNames() []string {
	names := make([]string, 0, len(c.Modules))
	for _, m := range c.Modules {
		names = append(names, m.Name)
	}
	return names
}

// Tools returns every catalog entry, walking modules in declaration order
// and tools in their declared order within each module. Resolution and
// suggestion both rely on this order for their first-seen-wins semantics.
func (c *Catalog) Tools() []Tool {
	var tools []Tool
	for _, m := range c.Modules {
		tools = append(tools, m.Tools...)
	}
	return tools
}
