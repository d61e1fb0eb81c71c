package models

import (
	"encoding/json"
	"testing"
)

func TestParseAttribute(t *testing.T) {
	for _, name := range []string{"category", "centering", "country", "has_certificate"} {
		if _, ok := ParseAttribute(name); !ok {
			t.Errorf("ParseAttribute(%q) not ok", name)
		}
	}
	if _, ok := ParseAttribute("Category"); ok {
		t.Error("ParseAttribute is case-sensitive")
	}
	if AttrCountry.Filterable() {
		t.Error("country should not be filterable")
	}
	if !AttrCertificateGrade.Filterable() {
		t.Error("certificate_grade should be filterable")
	}
}

func TestPriceLess(t *testing.T) {
	absent := Price{}
	two, five := NewPrice(2), NewPrice(5)

	tests := []struct {
		name string
		a, b Price
		want bool
	}{
		{"absent below present", absent, two, true},
		{"present not below absent", two, absent, false},
		{"absent not below absent", absent, absent, false},
		{"numeric order", two, five, true},
		{"equal", five, five, false},
		{"absent below zero", absent, NewPrice(0), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Less(tt.b); got != tt.want {
				t.Errorf("Less() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPriceJSON(t *testing.T) {
	b, err := json.Marshal(struct {
		A Price `json:"a"`
		B Price `json:"b"`
	}{A: NewPrice(12.5)})
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != `{"a":12.5,"b":null}` {
		t.Errorf("Marshal = %s", b)
	}

	var p Price
	if err := json.Unmarshal([]byte("7"), &p); err != nil || !p.Valid || p.Amount != 7 {
		t.Errorf("Unmarshal(7) = %+v, %v", p, err)
	}
	if err := json.Unmarshal([]byte("null"), &p); err != nil || p.Valid {
		t.Errorf("Unmarshal(null) = %+v, %v", p, err)
	}
	if err := json.Unmarshal([]byte(`"x"`), &p); err == nil {
		t.Error("Unmarshal(string) should fail")
	}
}

func TestStampValue(t *testing.T) {
	s := Stamp{CategoryID: "260", Centering: "VF", HasCertificate: "Yes"}
	if v, ok := s.Value(AttrCategory); !ok || v != "260" {
		t.Errorf("Value(category) = %q, %v", v, ok)
	}
	if v, _ := s.Value(AttrCentering); v != "VF" {
		t.Errorf("Value(centering) = %q", v)
	}
	if _, ok := s.Value(Attribute("color")); ok {
		t.Error("Value(color) should not be ok")
	}
}
