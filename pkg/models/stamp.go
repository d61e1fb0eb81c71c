package models

import (
	"encoding/json"
	"strconv"
)

// Attribute names a categorical field of a Stamp that can be indexed for
// filter choices.
type Attribute string

const (
	AttrCategory         Attribute = "category"
	AttrStampType        Attribute = "stamp_type"
	AttrCondition        Attribute = "condition"
	AttrCentering        Attribute = "centering"
	AttrStampFormat      Attribute = "stamp_format"
	AttrCertificateGrade Attribute = "certificate_grade"
	AttrCountry          Attribute = "country"
	AttrCurrency         Attribute = "currency"
	AttrHasCertificate   Attribute = "has_certificate"
)

// FilterableAttributes lists the attributes that accept membership
// constraints, in the order choice lists are presented.
var FilterableAttributes = []Attribute{
	AttrCategory,
	AttrStampType,
	AttrCondition,
	AttrCentering,
	AttrStampFormat,
	AttrCertificateGrade,
}

// ParseAttribute maps a wire name to an Attribute.
func ParseAttribute(s string) (Attribute, bool) {
	switch a := Attribute(s); a {
	case AttrCategory, AttrStampType, AttrCondition, AttrCentering,
		AttrStampFormat, AttrCertificateGrade, AttrCountry, AttrCurrency,
		AttrHasCertificate:
		return a, true
	}
	return "", false
}

// Filterable reports whether a accepts membership constraints.
func (a Attribute) Filterable() bool {
	for _, f := range FilterableAttributes {
		if f == a {
			return true
		}
	}
	return false
}

// Price is a nullable decimal amount. The zero value is an absent price.
type Price struct {
	Amount float64
	Valid  bool
}

// NewPrice returns a present price.
func NewPrice(amount float64) Price {
	return Price{Amount: amount, Valid: true}
}

// OrZero returns the amount, or 0 when the price is absent.
func (p Price) OrZero() float64 {
	if !p.Valid {
		return 0
	}
	return p.Amount
}

// Less orders prices with an absent price below every present one.
func (p Price) Less(o Price) bool {
	switch {
	case !p.Valid:
		return o.Valid
	case !o.Valid:
		return false
	default:
		return p.Amount < o.Amount
	}
}

// MarshalJSON encodes an absent price as null.
func (p Price) MarshalJSON() ([]byte, error) {
	if !p.Valid {
		return []byte("null"), nil
	}
	return strconv.AppendFloat(nil, p.Amount, 'f', -1, 64), nil
}

// UnmarshalJSON accepts a number or null.
func (p *Price) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*p = Price{}
		return nil
	}
	var f float64
	if err := json.Unmarshal(b, &f); err != nil {
		return err
	}
	*p = NewPrice(f)
	return nil
}

// Stamp is one catalog item for sale.
type Stamp struct {
	Index         int    `json:"index"`
	Name          string `json:"name"`
	CategoryID    string `json:"category_id"`
	CatalogNumber string `json:"catalog_number"`
	Country       string `json:"country"`
	Currency      string `json:"currency"`
	Price         Price  `json:"price"`
	Description   string `json:"description"`
	Image         string `json:"image"`

	StampType        string `json:"stamp_type"`
	Condition        string `json:"condition"`
	StampFormat      string `json:"stamp_format"`
	Centering        string `json:"centering"`
	HasCertificate   string `json:"has_certificate"`
	CertificateGrade string `json:"certificate_grade"`

	// SearchBlob is the lowercase name, catalog number and country, joined by
	// spaces. Derived at load time.
	SearchBlob string `json:"-"`
}

// Value returns the text of the given attribute, and false for an unknown
// attribute.
func (s *Stamp) Value(a Attribute) (string, bool) {
	switch a {
	case AttrCategory:
		return s.CategoryID, true
	case AttrStampType:
		return s.StampType, true
	case AttrCondition:
		return s.Condition, true
	case AttrCentering:
		return s.Centering, true
	case AttrStampFormat:
		return s.StampFormat, true
	case AttrCertificateGrade:
		return s.CertificateGrade, true
	case AttrCountry:
		return s.Country, true
	case AttrCurrency:
		return s.Currency, true
	case AttrHasCertificate:
		return s.HasCertificate, true
	}
	return "", false
}
