package catalog

import (
	"math"
	"strconv"
	"strings"

	"github.com/HerbHall/stampcatalog/pkg/models"
)

// Normalize converts a raw table into records. It fails with a
// *DataSourceError when required columns are missing. Unparseable prices
// become absent and are reported as warnings; missing cells and null markers
// become empty strings.
func (s *Schema) Normalize(source string, t *Table) ([]models.Stamp, []FieldCoercionWarning, error) {
	if t == nil {
		return nil, nil, &DataSourceError{Source: source, Missing: s.Columns.Required()}
	}

	idx := make(map[string]int, len(t.Columns))
	for i, c := range t.Columns {
		name := strings.TrimSpace(strings.TrimPrefix(c, "\ufeff"))
		if _, dup := idx[name]; !dup {
			idx[name] = i
		}
	}
	var missing []string
	for _, c := range s.Columns.Required() {
		if _, ok := idx[c]; !ok {
			missing = append(missing, c)
		}
	}
	if len(missing) > 0 {
		return nil, nil, &DataSourceError{Source: source, Missing: missing}
	}

	var warnings []FieldCoercionWarning
	records := make([]models.Stamp, 0, len(t.Rows))
	for n, row := range t.Rows {
		cell := func(col string) string {
			i := idx[col]
			if i >= len(row) {
				return ""
			}
			v := row[i]
			if s.IsNull(v) {
				return ""
			}
			return v
		}

		rec := models.Stamp{
			Index:            n,
			Name:             cell(s.Columns.Name),
			CategoryID:       cell(s.Columns.CategoryID),
			CatalogNumber:    cell(s.Columns.CatalogNumber),
			Country:          cell(s.Columns.Country),
			Currency:         cell(s.Columns.Currency),
			Description:      cell(s.Columns.Description),
			Image:            cell(s.Columns.Image),
			StampType:        cell(s.Columns.StampType),
			Condition:        cell(s.Columns.Condition),
			StampFormat:      cell(s.Columns.StampFormat),
			Centering:        cell(s.Columns.Centering),
			HasCertificate:   cell(s.Columns.HasCertificate),
			CertificateGrade: cell(s.Columns.CertificateGrade),
		}

		raw := cell(s.Columns.Price)
		price, ok := parsePrice(raw)
		if !ok {
			warnings = append(warnings, FieldCoercionWarning{Row: n, Column: s.Columns.Price, Value: raw})
		}
		rec.Price = price
		rec.SearchBlob = SearchBlob(rec.Name, rec.CatalogNumber, rec.Country)

		records = append(records, rec)
	}
	return records, warnings, nil
}

// parsePrice coerces a cell to a price. An empty cell is absent without
// complaint; a non-numeric cell is absent and ok is false.
func parsePrice(raw string) (models.Price, bool) {
	v := strings.TrimSpace(raw)
	if v == "" {
		return models.Price{}, true
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return models.Price{}, false
	}
	return models.NewPrice(f), true
}

// SearchBlob builds the lowercase text that free-text search runs against.
func SearchBlob(name, catalogNumber, country string) string {
	return strings.ToLower(name + " " + catalogNumber + " " + country)
}
