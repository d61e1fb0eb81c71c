package testutil

import (
	"github.com/HerbHall/stampcatalog/pkg/catalog"
	"github.com/HerbHall/stampcatalog/pkg/models"
)

// NewStamp returns a Stamp with sensible defaults, suitable for test fixtures.
// The search blob is derived after the options run.
func NewStamp(opts ...func(*models.Stamp)) models.Stamp {
	s := models.Stamp{
		Name:           "Test Stamp",
		CategoryID:     "260",
		CatalogNumber:  "1",
		Country:        "United States",
		Currency:       "USD",
		Price:          models.NewPrice(10),
		StampType:      "Definitive",
		Condition:      "Mint Never Hinged",
		StampFormat:    "Single",
		Centering:      "VF",
		HasCertificate: "No",
	}
	for _, opt := range opts {
		opt(&s)
	}
	s.SearchBlob = catalog.SearchBlob(s.Name, s.CatalogNumber, s.Country)
	return s
}

// Stamps returns n default stamps with Index 0..n-1, each passed through opts.
func Stamps(n int, opts ...func(*models.Stamp)) []models.Stamp {
	out := make([]models.Stamp, n)
	for i := range out {
		out[i] = NewStamp(append([]func(*models.Stamp){WithIndex(i)}, opts...)...)
	}
	return out
}

// WithIndex sets the stamp's row index.
func WithIndex(i int) func(*models.Stamp) {
	return func(s *models.Stamp) { s.Index = i }
}

// WithName sets the stamp name.
func WithName(name string) func(*models.Stamp) {
	return func(s *models.Stamp) { s.Name = name }
}

// WithPrice sets a present price.
func WithPrice(amount float64) func(*models.Stamp) {
	return func(s *models.Stamp) { s.Price = models.NewPrice(amount) }
}

// WithoutPrice marks the price absent.
func WithoutPrice() func(*models.Stamp) {
	return func(s *models.Stamp) { s.Price = models.Price{} }
}

// WithCategory sets the category id.
func WithCategory(id string) func(*models.Stamp) {
	return func(s *models.Stamp) { s.CategoryID = id }
}

// WithCentering sets the centering grade.
func WithCentering(c string) func(*models.Stamp) {
	return func(s *models.Stamp) { s.Centering = c }
}

// WithCondition sets the condition.
func WithCondition(c string) func(*models.Stamp) {
	return func(s *models.Stamp) { s.Condition = c }
}

// WithCertificate sets the has-certificate text and grade.
func WithCertificate(has, grade string) func(*models.Stamp) {
	return func(s *models.Stamp) {
		s.HasCertificate = has
		s.CertificateGrade = grade
	}
}

// WithCountry sets the country.
func WithCountry(c string) func(*models.Stamp) {
	return func(s *models.Stamp) { s.Country = c }
}

// WithImage sets the raw image list.
func WithImage(raw string) func(*models.Stamp) {
	return func(s *models.Stamp) { s.Image = raw }
}

// WithDescription sets the raw HTML description.
func WithDescription(html string) func(*models.Stamp) {
	return func(s *models.Stamp) { s.Description = html }
}
