package breeds

import (
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/five82/catvote/internal/catapi"
)

// DefaultBreed is preselected the first time the breed list loads.
const DefaultBreed = "abyssinian"

// Sort returns a copy of list ordered by display name, ignoring case.
// Equal names keep a stable order by id.
func Sort(list []catapi.BreedSummary) []catapi.BreedSummary {
	out := append([]catapi.BreedSummary(nil), list...)
	col := collate.New(language.English, collate.IgnoreCase)
	sort.SliceStable(out, func(i, j int) bool {
		if c := col.CompareString(out[i].Name, out[j].Name); c != 0 {
			return c < 0
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// Find returns the first breed whose name matches name under case folding.
func Find(list []catapi.BreedSummary, name string) (catapi.BreedSummary, bool) {
	fold := cases.Fold()
	want := fold.String(strings.TrimSpace(name))
	for _, b := range list {
		if fold.String(strings.TrimSpace(b.Name)) == want {
			return b, true
		}
	}
	return catapi.BreedSummary{}, false
}

// Filter keeps the breeds whose name contains query under case folding.
// An empty query returns list unchanged.
func Filter(list []catapi.BreedSummary, query string) []catapi.BreedSummary {
	query = strings.TrimSpace(query)
	if query == "" {
		return list
	}
	fold := cases.Fold()
	q := fold.String(query)
	var out []catapi.BreedSummary
	for _, b := range list {
		if strings.Contains(fold.String(b.Name), q) {
			out = append(out, b)
		}
	}
	return out
}
