package ledger

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRecordAndOutcome(t *testing.T) {
	l := New()
	require.Equal(t, 0, l.Len())

	_, ok := l.Outcome("git")
	require.False(t, ok)

	l.Record("git", "git version 2.45.0")
	outcome, ok := l.Outcome("git")
	require.True(t, ok)
	require.Equal(t, "git version 2.45.0", outcome)
	require.Equal(t, 1, l.Len())
}

func TestRecordLastWriteWins(t *testing.T) {
	l := New()
	l.Record("terraform", "Terraform v1.9.4")
	l.Record("git", "git version 2.45.0")
	l.Record("terraform", "Terraform v1.9.5")

	// The overwrite keeps the original position and the new outcome.
	require.Equal(t, 2, l.Len())
	require.Equal(t, []string{"terraform", "git"}, l.order)

	outcome, _ := l.Outcome("terraform")
	require.Equal(t, "Terraform v1.9.5", outcome)
}

func TestRemovedMarker(t *testing.T) {
	l := New()
	l.Record("htop", Removed)
	outcome, _ := l.Outcome("htop")
	require.Equal(t, "Removed", outcome)
}

func TestWriteReport(t *testing.T) {
	l := New()
	l.Record("git", "git version 2.45.0")
	l.Record("htop", Removed)

	path := filepath.Join(t.TempDir(), "report.json")
	require.NoError(t, WriteReport(path, l))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)

	var entries []struct {
		Tool    string `json:"tool"`
		Outcome string `json:"outcome"`
	}
	require.NoError(t, json.Unmarshal(raw, &entries))
	require.Len(t, entries, 2)
	require.Equal(t, "git", entries[0].Tool)
	require.Equal(t, "git version 2.45.0", entries[0].Outcome)
	require.Equal(t, "htop", entries[1].Tool)
	require.Equal(t, "Removed", entries[1].Outcome)
}
