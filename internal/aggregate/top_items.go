package aggregate

import (
	"fmt"
	"sort"

	"github.com/samber/lo"

	"csvreport/internal/models"
)

// TopItems returns the ids of the n rows with the highest Value, highest first.
// Ties keep their original row order and empty values rank last.
func TopItems(t *models.Table, n int) ([]models.Cell, error) {
	if n < 0 {
		return nil, fmt.Errorf("%w: top items must not be negative, got %d", models.ErrInvalidParameter, n)
	}

	values, err := t.NumericColumn(models.ColumnValue)
	if err != nil {
		return nil, err
	}
	ids, err := t.Column(models.ColumnID)
	if err != nil {
		return nil, err
	}

	order := lo.Range(len(values))
	sort.SliceStable(order, func(a, b int) bool {
		va, vb := values[order[a]], values[order[b]]
		if va.Null != vb.Null {
			return vb.Null
		}
		return va.Compare(vb) > 0
	})

	if n > len(order) {
		n = len(order)
	}
	return lo.Map(order[:n], func(i int, _ int) models.Cell {
		return ids[i]
	}), nil
}
