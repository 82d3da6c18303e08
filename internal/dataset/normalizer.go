package dataset

import (
	"fmt"
	"time"

	"csvreport/internal/models"
)

const monthLayout = "2006-01"

// NormalizeMonths returns a copy of the table whose month column holds
// three-letter month names ("2023-04" becomes "Apr"). The input table is not modified.
func NormalizeMonths(t *models.Table) (*models.Table, error) {
	months, err := t.Column(models.ColumnMonth)
	if err != nil {
		return nil, err
	}

	labels := make([]models.Cell, len(months))
	for i, cell := range months {
		if cell.Null {
			return nil, fmt.Errorf("%w: row %d: empty month", models.ErrDateParse, i+1)
		}
		label, err := MonthLabel(cell.String())
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+1, err)
		}
		labels[i] = models.StringCell(label)
	}

	return t.WithColumn(models.ColumnMonth, models.KindString, labels)
}

// MonthLabel maps a YYYY-MM string to the abbreviated name of its month
func MonthLabel(value string) (string, error) {
	ts, err := time.Parse(monthLayout, value)
	if err != nil {
		return "", fmt.Errorf("%w: %q does not match YYYY-MM", models.ErrDateParse, value)
	}
	return ts.Month().String()[:3], nil
}
