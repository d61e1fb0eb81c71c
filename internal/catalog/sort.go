package catalog

import (
	"fmt"
	"sort"

	"github.com/HerbHall/stampcatalog/pkg/models"
)

// Sort returns a new slice ordered by mode. Price sorts are stable and treat
// an absent price as the lowest value.
func Sort(records []models.Stamp, mode SortMode) ([]models.Stamp, error) {
	result := make([]models.Stamp, len(records))
	copy(result, records)

	switch mode {
	case SortOriginal, "":
	case SortPriceAsc:
		sort.SliceStable(result, func(a, b int) bool {
			return result[a].Price.Less(result[b].Price)
		})
	case SortPriceDesc:
		sort.SliceStable(result, func(a, b int) bool {
			return result[b].Price.Less(result[a].Price)
		})
	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidSortMode, mode)
	}
	return result, nil
}
