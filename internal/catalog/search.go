// file: internal/catalog/search.go
// version: 1.0.0
// guid: aba0febc-6fa4-4483-ac6c-a00187a05bc4

package catalog

import (
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// Match is a single search hit
type Match struct {
	Location Location `json:"location"`
	Path     string   `json:"path"`
	Label    string   `json:"label"`
	Distance int      `json:"distance"`
}

// Label renders the human readable name of an edition.
func Label(friend *Friend, doc *Document, ed *Edition) string {
	return friend.Name + " / " + doc.Title + " / " + ed.Type
}

// Search fuzzy-matches query against every edition label and path.
// Results are ordered by edit distance, then catalog order.
func (c *Catalog) Search(query string, limit int) []Match {
	query = strings.TrimSpace(query)
	if query == "" || c == nil {
		return []Match{}
	}

	var labels []string
	var paths []string
	var locs []Location
	c.Walk(func(loc Location, friend *Friend, doc *Document, ed *Edition) {
		labels = append(labels, Label(friend, doc, ed)+" "+ed.Path)
		paths = append(paths, ed.Path)
		locs = append(locs, loc)
	})

	ranks := fuzzy.RankFindNormalizedFold(query, labels)
	sort.Stable(ranks)

	matches := make([]Match, 0, len(ranks))
	for _, r := range ranks {
		loc := locs[r.OriginalIndex]
		matches = append(matches, Match{
			Location: loc,
			Path:     paths[r.OriginalIndex],
			Label:    strings.TrimSuffix(r.Target, " "+paths[r.OriginalIndex]),
			Distance: r.Distance,
		})
		if limit > 0 && len(matches) >= limit {
			break
		}
	}
	return matches
}
