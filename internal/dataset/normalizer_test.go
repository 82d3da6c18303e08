package dataset

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"csvreport/internal/models"
)

func TestMonthLabel(t *testing.T) {
	tests := []struct {
		input   string
		want    string
		wantErr bool
	}{
		{"2023-04", "Apr", false},
		{"2023-11", "Nov", false},
		{"2024-01", "Jan", false},
		{"1999-12", "Dec", false},
		{"2023-13", "", true},
		{"2023-4", "", true},
		{"04-2023", "", true},
		{"2023-04-01", "", true},
		{"April", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := MonthLabel(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, models.ErrDateParse)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNormalizeMonthsWorksOnCopy(t *testing.T) {
	table, err := Read(strings.NewReader(sampleCSV))
	require.NoError(t, err)

	normalized, err := NormalizeMonths(table)
	require.NoError(t, err)

	labels, _ := normalized.Column(models.ColumnMonth)
	assert.Equal(t, []string{"Apr", "Nov", "Jan"}, []string{labels[0].Str, labels[1].Str, labels[2].Str})

	original, _ := table.Column(models.ColumnMonth)
	assert.Equal(t, "2023-04", original[0].Str)
	assert.Equal(t, "2023-11", original[1].Str)
}

func TestNormalizeMonthsErrors(t *testing.T) {
	t.Run("malformed value", func(t *testing.T) {
		table, err := Read(strings.NewReader("id,month\n1,2023-04\n2,not-a-month\n"))
		require.NoError(t, err)

		_, err = NormalizeMonths(table)
		require.Error(t, err)
		assert.ErrorIs(t, err, models.ErrDateParse)
		assert.Contains(t, err.Error(), "row 2")
	})

	t.Run("empty value", func(t *testing.T) {
		table, err := Read(strings.NewReader("id,month\n1,\n"))
		require.NoError(t, err)

		_, err = NormalizeMonths(table)
		assert.ErrorIs(t, err, models.ErrDateParse)
	})

	t.Run("missing column", func(t *testing.T) {
		table, err := Read(strings.NewReader("id,Value\n1,2\n"))
		require.NoError(t, err)

		_, err = NormalizeMonths(table)
		assert.ErrorIs(t, err, models.ErrMissingColumn)
	})
}
