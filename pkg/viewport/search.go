package viewport

import (
	"fmt"
	"strings"

	"github.com/vanderheijden86/chartview/pkg/model"
)

// SearchState is the outcome of the last search submission.
type SearchState struct {
	Term    string
	Matches []int
}

// Active reports whether a search has been submitted since the last reset.
func (s SearchState) Active() bool {
	return s.Term != ""
}

// Count returns the number of matches.
func (s SearchState) Count() int {
	return len(s.Matches)
}

// Summary is the result line shown under the search box.
func (s SearchState) Summary() string {
	switch {
	case !s.Active():
		return ""
	case len(s.Matches) == 0:
		return "0 results"
	case len(s.Matches) == 1:
		return "Found 1 result"
	default:
		return fmt.Sprintf("Found %d results", len(s.Matches))
	}
}

// Search returns, in dataset order, the indices of every point whose label
// contains term, ignoring case. An empty term matches nothing.
func Search(ds *model.Dataset, term string) []int {
	if term == "" {
		return nil
	}
	needle := strings.ToLower(term)
	var matches []int
	for i := 0; i < ds.Len(); i++ {
		if strings.Contains(strings.ToLower(ds.Label(i)), needle) {
			matches = append(matches, i)
		}
	}
	return matches
}

// FocusWindow is the three-point x range centered on index, cut at the ends
// of a dataset of n points.
func FocusWindow(index, n int) Range {
	lo := index - 1
	if lo < 0 {
		lo = 0
	}
	hi := index + 1
	if hi > n-1 {
		hi = n - 1
	}
	return Range{Min: float64(lo), Max: float64(hi)}
}
