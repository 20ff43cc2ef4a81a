package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefaultModules(t *testing.T) {
	cat := Default()
	require.Equal(t, []string{"essentials", "infrastructure", "additional"}, cat.ModuleNames())

	// Modules partition the catalog: no tool name may appear twice.
	seen := map[string]bool{}
	for _, tool := range cat.Tools() {
		require.False(t, seen[tool.Name], "duplicate catalog entry %q", tool.Name)
		seen[tool.Name] = true
	}
}

func TestModuleExpansionOrder(t *testing.T) {
	cat := Default()
	m, ok := cat.Module("infrastructure")
	require.True(t, ok)

	var names []string
	for _, tool := range m.Tools {
		names = append(names, tool.Name)
	}
	require.Equal(t, []string{"docker", "terraform", "kubectl", "helm", "ansible", "awscli"}, names)

	_, ok = cat.Module("nonexistent")
	require.False(t, ok)
}

func TestResolveExact(t *testing.T) {
	cat := Default()
	tool, ok := cat.Resolve("docker")
	require.True(t, ok)
	require.Equal(t, "docker", tool.Name)
}

func TestResolveCaseInsensitive(t *testing.T) {
	cat := Default()

	upper, ok := cat.Resolve("Docker")
	require.True(t, ok)
	lower, ok2 := cat.Resolve("docker")
	require.True(t, ok2)
	// Both spellings must land on the same canonical entry.
	require.Equal(t, lower, upper)

	tool, ok := cat.Resolve("TERRAFORM")
	require.True(t, ok)
	require.Equal(t, "terraform", tool.Name)
}

func TestResolveUnknown(t *testing.T) {
	cat := Default()
	_, ok := cat.Resolve("definitely-not-a-tool")
	require.False(t, ok)
}

func TestSuggestTypo(t *testing.T) {
	cat := Default()
	tool, ok := cat.Suggest("dcoker")
	require.True(t, ok)
	require.Equal(t, "docker", tool.Name)

	tool, ok = cat.Suggest("teraform")
	require.True(t, ok)
	require.Equal(t, "terraform", tool.Name)
}

func TestSuggestTooFar(t *testing.T) {
	cat := Default()
	_, ok := cat.Suggest("xyz123!!")
	require.False(t, ok)
}

func TestSuggestFirstSeenWinsOnTies(t *testing.T) {
	cat := &Catalog{Modules: []Module{{
		Name:  "tied",
		Tools: []Tool{{Name: "aaab"}, {Name: "aaac"}},
	}}}
	// "aaad" is distance 1 from both entries; the first declared must win.
	tool, ok := cat.Suggest("aaad")
	require.True(t, ok)
	require.Equal(t, "aaab", tool.Name)
}

func TestDistance(t *testing.T) {
	cases := []struct {
		a, b string
		want int
	}{
		{"", "", 0},
		{"docker", "docker", 0},
		{"", "abc", 3},
		{"abc", "", 3},
		{"dcoker", "docker", 2},
		{"kitten", "sitting", 3},
		{"flaw", "lawn", 2},
		// No case folding in the distance itself.
		{"Docker", "docker", 1},
	}
	for _, c := range cases {
		require.Equal(t, c.want, Distance(c.a, c.b), "distance(%q, %q)", c.a, c.b)
		// Symmetry must hold for every pair.
		require.Equal(t, Distance(c.a, c.b), Distance(c.b, c.a), "symmetry for (%q, %q)", c.a, c.b)
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	data := `modules:
  - name: minimal
    tools:
      - name: git
      - name: k9s
        repo: derailed/k9s
        tag: v0.32.5
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))

	cat, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, []string{"minimal"}, cat.ModuleNames())

	tool, ok := cat.Resolve("k9s")
	require.True(t, ok)
	require.Equal(t, "derailed/k9s", tool.Repo)
	require.Equal(t, "v0.32.5", tool.Tag)
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := Load(filepath.Join(dir, "missing.yaml"))
	require.Error(t, err)

	empty := filepath.Join(dir, "empty.yaml")
	require.NoError(t, os.WriteFile(empty, []byte("modules: []\n"), 0644))
	_, err = Load(empty)
	require.Error(t, err)

	unnamed := filepath.Join(dir, "unnamed.yaml")
	require.NoError(t, os.WriteFile(unnamed, []byte("modules:\n  - tools:\n      - name: git\n"), 0644))
	_, err = Load(unnamed)
	require.Error(t, err)
}
