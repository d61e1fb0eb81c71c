package catalog

import "github.com/HerbHall/stampcatalog/pkg/models"

// DefaultIncrement is how many records each "load more" reveals.
const DefaultIncrement = 20

// Pagination tracks how many filtered records are revealed. Limit only grows,
// except through Reset.
type Pagination struct {
	Limit     int `json:"limit"`
	Increment int `json:"increment"`
}

// NewPagination returns a pagination state revealing one increment.
func NewPagination(increment int) Pagination {
	if increment <= 0 {
		increment = DefaultIncrement
	}
	return Pagination{Limit: increment, Increment: increment}
}

// RevealMore grows the limit by one increment.
func (p *Pagination) RevealMore() {
	p.normalize()
	p.Limit += p.Increment
}

// Reset returns the limit to one increment.
func (p *Pagination) Reset() {
	p.normalize()
	p.Limit = p.Increment
}

// Visible returns the revealed prefix of records.
func (p Pagination) Visible(records []models.Stamp) []models.Stamp {
	p.normalize()
	if p.Limit >= len(records) {
		return records
	}
	return records[:p.Limit]
}

// HasMore reports whether total exceeds the revealed count.
func (p Pagination) HasMore(total int) bool {
	p.normalize()
	return total > p.Limit
}

func (p *Pagination) normalize() {
	if p.Increment <= 0 {
		p.Increment = DefaultIncrement
	}
	if p.Limit < p.Increment {
		p.Limit = p.Increment
	}
}
