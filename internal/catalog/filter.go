package catalog

import (
	"strings"

	"github.com/HerbHall/stampcatalog/pkg/models"
)

// Predicate selects records.
type Predicate func(*models.Stamp) bool

// Compose builds the single row-selection function for criteria and a search
// query. Constraints that select everything are left out, so empty criteria
// and an empty query compose to nil.
func Compose(c Criteria, search string, m Matcher) Predicate {
	var preds []Predicate

	for _, attr := range models.FilterableAttributes {
		values := c.Selections[attr]
		if len(values) == 0 {
			continue
		}
		preds = append(preds, membership(attr, values))
	}

	switch c.Certificate {
	case CertificateHas:
		preds = append(preds, hasCertificate)
	case CertificateLacks:
		preds = append(preds, func(s *models.Stamp) bool { return !hasCertificate(s) })
	}

	if q := strings.ToLower(strings.TrimSpace(search)); q != "" {
		if m == nil {
			m = ExactMatcher{}
		}
		preds = append(preds, func(s *models.Stamp) bool { return m.Match(s.SearchBlob, q) })
	}

	if len(preds) == 0 {
		return nil
	}
	return func(s *models.Stamp) bool {
		for _, p := range preds {
			if !p(s) {
				return false
			}
		}
		return true
	}
}

// Filter returns the records selected by criteria and search, in input order.
// The result is always a new slice.
func Filter(records []models.Stamp, c Criteria, search string, m Matcher) []models.Stamp {
	pred := Compose(c, search, m)
	result := make([]models.Stamp, 0, len(records))
	for i := range records {
		if pred == nil || pred(&records[i]) {
			result = append(result, records[i])
		}
	}
	return result
}

func membership(attr models.Attribute, values []string) Predicate {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return func(s *models.Stamp) bool {
		v, _ := s.Value(attr)
		_, ok := set[v]
		return ok
	}
}

func hasCertificate(s *models.Stamp) bool {
	return strings.Contains(strings.ToLower(s.HasCertificate), "yes")
}
