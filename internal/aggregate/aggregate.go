// Package aggregate reduces report tables into the grouped series the charts
// plot and the ranked ids the report highlights.
package aggregate

import (
	"sort"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"

	"csvreport/internal/models"
)

// MaxByCode groups rows by code and keeps the largest Value of each group.
// Groups come back ordered by ascending code. A code without any Value has
// no maximum and is left out.
func MaxByCode(t *models.Table) ([]models.AggregateRow, error) {
	values, err := t.NumericColumn(models.ColumnValue)
	if err != nil {
		return nil, err
	}
	codes, err := t.Column(models.ColumnCode)
	if err != nil {
		return nil, err
	}

	rows := group(codes, values, false, func(acc, v decimal.Decimal) decimal.Decimal {
		return decimal.Max(acc, v)
	})
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Key.Compare(rows[j].Key) < 0
	})
	return rows, nil
}

// SumByMonth groups rows of a month-normalized table by month label and sums
// Value per group; a month without any Value sums to zero. Labels are ordered as plain strings, so "Dec" sorts before
// "Jan"; calendar order is not used.
func SumByMonth(t *models.Table) ([]models.AggregateRow, error) {
	values, err := t.NumericColumn(models.ColumnValue)
	if err != nil {
		return nil, err
	}
	months, err := t.Column(models.ColumnMonth)
	if err != nil {
		return nil, err
	}

	rows := group(months, values, true, func(acc, v decimal.Decimal) decimal.Decimal {
		return acc.Add(v)
	})
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Label() < rows[j].Label()
	})
	return rows, nil
}

// group folds values by key. Rows with an empty key are dropped and empty
// values are skipped. A group without any value reduces to zero when
// keepEmpty is set and is dropped otherwise.
func group(keys, values []models.Cell, keepEmpty bool, combine func(acc, v decimal.Decimal) decimal.Decimal) []models.AggregateRow {
	byKey := lo.GroupBy(lo.Range(len(keys)), func(i int) models.Cell {
		return keys[i]
	})

	rows := make([]models.AggregateRow, 0, len(byKey))
	for key, idx := range byKey {
		if key.Null {
			continue
		}

		acc := decimal.Zero
		seen := false
		for _, i := range idx {
			v, ok := values[i].Decimal()
			if !ok {
				continue
			}
			if !seen {
				acc, seen = v, true
				continue
			}
			acc = combine(acc, v)
		}
		if !seen && !keepEmpty {
			continue
		}
		rows = append(rows, models.AggregateRow{Key: key, Value: acc})
	}
	return rows
}
