package catalog

import (
	_ "embed"
	"fmt"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed fields.yaml
var fieldsRawData []byte

// Columns maps record fields to source column names.
type Columns struct {
	Name             string `yaml:"name"`
	CategoryID       string `yaml:"category_id"`
	Currency         string `yaml:"currency"`
	Price            string `yaml:"price"`
	Description      string `yaml:"description"`
	Image            string `yaml:"image"`
	Country          string `yaml:"country"`
	CatalogNumber    string `yaml:"catalog_number"`
	StampType        string `yaml:"stamp_type"`
	Condition        string `yaml:"condition"`
	StampFormat      string `yaml:"stamp_format"`
	Centering        string `yaml:"centering"`
	HasCertificate   string `yaml:"has_certificate"`
	CertificateGrade string `yaml:"certificate_grade"`
}

// Required returns every column name the source header must contain, in
// export order.
func (c Columns) Required() []string {
	return []string{
		c.Name, c.CategoryID, c.Currency, c.Price, c.Description, c.Image,
		c.Country, c.CatalogNumber, c.StampType, c.Condition, c.StampFormat,
		c.Centering, c.HasCertificate, c.CertificateGrade,
	}
}

// Schema is the parsed column layout and value tables of the inventory export.
type Schema struct {
	Columns      Columns
	nullMarkers  map[string]struct{}
	centering    []string
	notSpecified string
	rank         map[string]int
}

type fieldsFile struct {
	Columns     Columns  `yaml:"columns"`
	NullMarkers []string `yaml:"null_markers"`
	Centering   struct {
		Tiers        []string `yaml:"tiers"`
		NotSpecified string   `yaml:"not_specified"`
	} `yaml:"centering"`
}

var (
	schemaOnce sync.Once
	schema     *Schema
	schemaErr  error
)

// DefaultSchema returns the embedded schema, parsing it on first access.
func DefaultSchema() (*Schema, error) {
	schemaOnce.Do(func() {
		schema, schemaErr = parseSchema(fieldsRawData)
	})
	return schema, schemaErr
}

func parseSchema(data []byte) (*Schema, error) {
	var f fieldsFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("catalog: parse fields yaml: %w", err)
	}
	for _, col := range f.Columns.Required() {
		if col == "" {
			return nil, fmt.Errorf("catalog: fields yaml: empty column name")
		}
	}

	s := &Schema{
		Columns:      f.Columns,
		nullMarkers:  make(map[string]struct{}, len(f.NullMarkers)),
		notSpecified: f.Centering.NotSpecified,
		rank:         make(map[string]int, len(f.Centering.Tiers)+1),
	}
	for _, m := range f.NullMarkers {
		s.nullMarkers[strings.ToLower(m)] = struct{}{}
	}
	s.centering = append(s.centering, f.Centering.Tiers...)
	if s.notSpecified != "" {
		s.centering = append(s.centering, s.notSpecified)
	}
	for i, tier := range s.centering {
		s.rank[strings.ToLower(tier)] = i
	}
	return s, nil
}

// IsNull reports whether v is a textual null marker.
func (s *Schema) IsNull(v string) bool {
	_, ok := s.nullMarkers[strings.ToLower(strings.TrimSpace(v))]
	return ok
}

// CenteringTiers returns the rank table, best first, ending with the
// "not specified" sentinel.
func (s *Schema) CenteringTiers() []string {
	out := make([]string, len(s.centering))
	copy(out, s.centering)
	return out
}

// CenteringRank returns the position of v in the rank table.
func (s *Schema) CenteringRank(v string) (int, bool) {
	r, ok := s.rank[strings.ToLower(strings.TrimSpace(v))]
	return r, ok
}
