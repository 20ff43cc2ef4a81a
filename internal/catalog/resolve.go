package catalog

import (
	"strings"

	"provision-host/internal/logger"
)

// Resolve maps operator-supplied text to a canonical catalog entry.
// Matching order: exact name match first, then case-insensitive.
// Both passes walk the catalog in declaration order, so the first declared
// entry wins if the catalog ever contains near-duplicate names.
func (c *Catalog) Resolve(input string) (Tool, bool) {
	for _, t := range c.Tools() {
		if t.Name == input {
			return t, true
		}
	}
	for _, t := range c.Tools() {
		if strings.EqualFold(t.Name, input) {
			logger.Debug("[DEBUG] Resolved %q case-insensitively to %q\n", input, t.Name)
			return t, true
		}
	}
	return Tool{}, false
}

// maxSuggestDistance bounds how far a suggestion may be from the input.
// Anything further than three edits is more likely a different word than a
// typo, so no suggestion is offered.
const maxSuggestDistance = 3

// Suggest proposes the catalog entry closest to the input by Levenshtein
// edit distance. The minimum-distance entry wins, first seen on ties, and
// only distances of at most maxSuggestDistance qualify. Distances are
// computed on the raw strings with no case folding; case-insensitive hits
// are already handled by Resolve before Suggest is consulted.
func (c *Catalog) Suggest(input string) (Tool, bool) {
	var (
		best     Tool
		bestDist = -1
	)
	for _, t := range c.Tools() {
		d := Distance(input, t.Name)
		if bestDist < 0 || d < bestDist {
			best = t
			bestDist = d
		}
	}
	if bestDist < 0 || bestDist > maxSuggestDistance {
		return Tool{}, false
	}
	logger.Debug("[DEBUG] Closest catalog entry to %q is %q (distance %d)\n", input, best.Name, bestDist)
	return best, true
}

// Distance computes the Levenshtein edit distance between a and b: the
// minimum number of single-character insertions, deletions, and
// substitutions needed to turn one into the other, each at unit cost.
// Classic dynamic programming over bytes, kept to two rolling rows so the
// memory cost is O(len(b)) rather than O(len(a)*len(b)).
func Distance(a, b string) int {
	if a == b {
		return 0
	}
	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
		return len(a)
	}

	prev := make([]int, len(b)+1)
	cur := make([]int, len(b)+1)
	for j := 0; j <= len(b); j++ {
		prev[j] = j
	}

	for i := 1; i <= len(a); i++ {
		cur[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			cur[j] = min(
				prev[j]+1,      // deletion
				cur[j-1]+1,     // insertion
				prev[j-1]+cost, // substitution
			)
		}
		prev, cur = cur, prev
	}
	return prev[len(b)]
}
