package catalog

import (
	"sort"
	"strings"

	"github.com/HerbHall/stampcatalog/pkg/models"
)

// OptionsFor returns the distinct non-blank values of attr across records.
// Values are sorted lexicographically, except centering, which follows the
// schema's rank table with unranked values appended in lexicographic order.
func (s *Schema) OptionsFor(records []models.Stamp, attr models.Attribute) []string {
	seen := make(map[string]struct{})
	values := make([]string, 0)
	for i := range records {
		v, ok := records[i].Value(attr)
		if !ok || strings.TrimSpace(v) == "" {
			continue
		}
		if _, dup := seen[v]; dup {
			continue
		}
		seen[v] = struct{}{}
		values = append(values, v)
	}

	if attr != models.AttrCentering {
		sort.Strings(values)
		return values
	}

	sort.SliceStable(values, func(a, b int) bool {
		ra, okA := s.CenteringRank(values[a])
		rb, okB := s.CenteringRank(values[b])
		switch {
		case okA && okB:
			if ra != rb {
				return ra < rb
			}
			return values[a] < values[b]
		case okA:
			return true
		case okB:
			return false
		default:
			return values[a] < values[b]
		}
	})
	return values
}
