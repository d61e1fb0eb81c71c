package testutil

import (
	"context"
	"testing"
	"time"
)

func TestLogger_NotNil(t *testing.T) {
	l := Logger()
	if l == nil {
		t.Fatal("expected non-nil logger")
	}
}

func TestNewStore_Usable(t *testing.T) {
	db := NewStore(t)
	if db == nil {
		t.Fatal("expected non-nil store")
	}
	if err := db.DB().PingContext(context.Background()); err != nil {
		t.Fatalf("PingContext: %v", err)
	}
}

func TestClock_Advance(t *testing.T) {
	c := NewClock()
	start := c.Now()
	c.Advance(5 * time.Minute)
	if got := c.Now().Sub(start); got != 5*time.Minute {
		t.Errorf("Advance: elapsed = %v, want 5m", got)
	}
}

func TestClock_Set(t *testing.T) {
	c := NewClock()
	target := time.Date(2030, 6, 15, 12, 0, 0, 0, time.UTC)
	c.Set(target)
	if !c.Now().Equal(target) {
		t.Errorf("Set: got %v, want %v", c.Now(), target)
	}
}

func TestNewStamp_Defaults(t *testing.T) {
	s := NewStamp()
	if s.Name != "Test Stamp" {
		t.Errorf("Name = %q, want Test Stamp", s.Name)
	}
	if !s.Price.Valid || s.Price.Amount != 10 {
		t.Errorf("Price = %+v, want 10", s.Price)
	}
	if s.SearchBlob != "test stamp 1 united states" {
		t.Errorf("SearchBlob = %q", s.SearchBlob)
	}
}

func TestNewStamp_WithOptions(t *testing.T) {
	s := NewStamp(
		WithName("Inverted Jenny"),
		WithoutPrice(),
		WithCertificate("Yes - PSE", "90"),
	)
	if s.Name != "Inverted Jenny" {
		t.Errorf("Name = %q, want Inverted Jenny", s.Name)
	}
	if s.Price.Valid {
		t.Error("Price should be absent")
	}
	if s.HasCertificate != "Yes - PSE" || s.CertificateGrade != "90" {
		t.Errorf("certificate = %q/%q", s.HasCertificate, s.CertificateGrade)
	}
	if s.SearchBlob != "inverted jenny 1 united states" {
		t.Errorf("SearchBlob = %q", s.SearchBlob)
	}
}

func TestStamps_Indexes(t *testing.T) {
	got := Stamps(3, WithCountry("Canada"))
	for i, s := range got {
		if s.Index != i {
			t.Errorf("Stamps[%d].Index = %d", i, s.Index)
		}
		if s.Country != "Canada" {
			t.Errorf("Stamps[%d].Country = %q", i, s.Country)
		}
	}
}
