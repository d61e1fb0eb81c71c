package catalog

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/HerbHall/stampcatalog/pkg/models"
)

// Configuration errors. They indicate an integration bug in the caller and
// are never silently defaulted.
var (
	ErrInvalidSortMode          = errors.New("invalid sort mode")
	ErrInvalidCertificateFilter = errors.New("invalid certificate filter")
	ErrUnknownAttribute         = errors.New("unknown filter attribute")
)

// CertificateFilter is the tri-state certificate constraint.
type CertificateFilter string

const (
	CertificateAll   CertificateFilter = "all"
	CertificateHas   CertificateFilter = "has"
	CertificateLacks CertificateFilter = "lacks"
)

// ParseCertificateFilter accepts "all", "has" or "lacks"; empty means all.
func ParseCertificateFilter(s string) (CertificateFilter, error) {
	switch f := CertificateFilter(strings.ToLower(strings.TrimSpace(s))); f {
	case "", CertificateAll:
		return CertificateAll, nil
	case CertificateHas, CertificateLacks:
		return f, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidCertificateFilter, s)
}

// SortMode orders the filtered records.
type SortMode string

const (
	SortOriginal  SortMode = "original"
	SortPriceAsc  SortMode = "price_asc"
	SortPriceDesc SortMode = "price_desc"
)

// ParseSortMode accepts "original", "price_asc" or "price_desc"; empty means
// original.
func ParseSortMode(s string) (SortMode, error) {
	switch m := SortMode(strings.ToLower(strings.TrimSpace(s))); m {
	case "", SortOriginal:
		return SortOriginal, nil
	case SortPriceAsc, SortPriceDesc:
		return m, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidSortMode, s)
}

// Criteria is the set of independent filter constraints, ANDed together.
// The zero value selects every record.
type Criteria struct {
	Selections  map[models.Attribute][]string `json:"selections,omitempty"`
	Certificate CertificateFilter             `json:"certificate,omitempty"`
}

// NewCriteria validates raw selections keyed by attribute name. Empty value
// lists are dropped.
func NewCriteria(selections map[string][]string, certificate string) (Criteria, error) {
	cert, err := ParseCertificateFilter(certificate)
	if err != nil {
		return Criteria{}, err
	}
	c := Criteria{Certificate: cert}
	for name, values := range selections {
		attr, ok := models.ParseAttribute(name)
		if !ok || !attr.Filterable() {
			return Criteria{}, fmt.Errorf("%w: %q", ErrUnknownAttribute, name)
		}
		if len(values) == 0 {
			continue
		}
		if c.Selections == nil {
			c.Selections = make(map[models.Attribute][]string)
		}
		c.Selections[attr] = append([]string(nil), values...)
	}
	return c, nil
}

// IsEmpty reports whether c constrains nothing.
func (c Criteria) IsEmpty() bool {
	if c.Certificate != "" && c.Certificate != CertificateAll {
		return false
	}
	for _, v := range c.Selections {
		if len(v) > 0 {
			return false
		}
	}
	return true
}

// Equal reports whether c and o select the same records. Selection order is
// irrelevant.
func (c Criteria) Equal(o Criteria) bool {
	if normCert(c.Certificate) != normCert(o.Certificate) {
		return false
	}
	a, b := c.normalized(), o.normalized()
	if len(a) != len(b) {
		return false
	}
	for attr, av := range a {
		bv, ok := b[attr]
		if !ok || len(av) != len(bv) {
			return false
		}
		for i := range av {
			if av[i] != bv[i] {
				return false
			}
		}
	}
	return true
}

func (c Criteria) normalized() map[models.Attribute][]string {
	out := make(map[models.Attribute][]string, len(c.Selections))
	for attr, values := range c.Selections {
		if len(values) == 0 {
			continue
		}
		set := make(map[string]struct{}, len(values))
		uniq := make([]string, 0, len(values))
		for _, v := range values {
			if _, dup := set[v]; dup {
				continue
			}
			set[v] = struct{}{}
			uniq = append(uniq, v)
		}
		sort.Strings(uniq)
		out[attr] = uniq
	}
	return out
}

func normCert(f CertificateFilter) CertificateFilter {
	if f == "" {
		return CertificateAll
	}
	return f
}
