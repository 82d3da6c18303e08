package models

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleTable(t *testing.T) *Table {
	t.Helper()
	table, err := NewTable(
		[]string{ColumnID, ColumnValue, ColumnCode, ColumnMonth},
		[]Kind{KindInt, KindFloat, KindString, KindString},
		[][]Cell{
			{IntCell(1), FloatCell(5), StringCell("A"), StringCell("2023-04")},
			{IntCell(2), FloatCell(9.5), StringCell("A"), StringCell("2023-11")},
			{IntCell(3), NullCell(KindFloat), StringCell("B"), StringCell("2023-01")},
		},
	)
	require.NoError(t, err)
	return table
}

func TestNewTableValidation(t *testing.T) {
	tests := []struct {
		name    string
		columns []string
		kinds   []Kind
		rows    [][]Cell
	}{
		{
			name:    "kind count mismatch",
			columns: []string{"a", "b"},
			kinds:   []Kind{KindString},
		},
		{
			name:    "duplicate column",
			columns: []string{"a", "a"},
			kinds:   []Kind{KindString, KindString},
		},
		{
			name:    "short row",
			columns: []string{"a", "b"},
			kinds:   []Kind{KindString, KindString},
			rows:    [][]Cell{{StringCell("x")}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewTable(tt.columns, tt.kinds, tt.rows)
			assert.Error(t, err)
		})
	}
}

func TestTableColumnAccess(t *testing.T) {
	table := sampleTable(t)

	assert.Equal(t, 3, table.Len())
	assert.Equal(t, []string{"id", "Value", "code", "month"}, table.Columns())
	assert.True(t, table.HasColumn("code"))
	assert.False(t, table.HasColumn("Code"))

	codes, err := table.Column(ColumnCode)
	require.NoError(t, err)
	assert.Equal(t, []Cell{StringCell("A"), StringCell("A"), StringCell("B")}, codes)

	_, err = table.Column("missing")
	var mce *MissingColumnError
	require.True(t, errors.As(err, &mce))
	assert.Equal(t, "missing", mce.Column)
	assert.True(t, errors.Is(err, ErrMissingColumn))
}

func TestNumericColumnRejectsStrings(t *testing.T) {
	table := sampleTable(t)

	_, err := table.NumericColumn(ColumnCode)
	assert.ErrorIs(t, err, ErrDataLoad)

	values, err := table.NumericColumn(ColumnValue)
	require.NoError(t, err)
	assert.Len(t, values, 3)
}

func TestWithColumnLeavesOriginalUntouched(t *testing.T) {
	table := sampleTable(t)

	replaced, err := table.WithColumn(ColumnMonth, KindString, []Cell{
		StringCell("Apr"), StringCell("Nov"), StringCell("Jan"),
	})
	require.NoError(t, err)

	original, _ := table.Column(ColumnMonth)
	assert.Equal(t, "2023-04", original[0].Str)

	derived, _ := replaced.Column(ColumnMonth)
	assert.Equal(t, "Apr", derived[0].Str)

	_, err = table.WithColumn(ColumnMonth, KindString, []Cell{StringCell("Apr")})
	assert.Error(t, err)
}

func TestRecords(t *testing.T) {
	records := sampleTable(t).Records()
	require.Len(t, records, 3)

	assert.Equal(t, int64(1), records[0]["id"])
	assert.Equal(t, 5.0, records[0]["Value"])
	assert.Equal(t, "A", records[0]["code"])
	assert.Nil(t, records[2]["Value"])
}

func TestCellCompare(t *testing.T) {
	tests := []struct {
		name string
		a, b Cell
		want int
	}{
		{"int vs float", IntCell(2), FloatCell(2.5), -1},
		{"equal numbers", IntCell(3), FloatCell(3), 0},
		{"strings", StringCell("B"), StringCell("A"), 1},
		{"null last", NullCell(KindFloat), IntCell(-100), 1},
		{"both null", NullCell(KindInt), NullCell(KindInt), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.a.Compare(tt.b))
		})
	}
}

func TestCellFormatting(t *testing.T) {
	assert.Equal(t, "12", IntCell(12).String())
	assert.Equal(t, "12.5", FloatCell(12.5).String())
	assert.Equal(t, "", NullCell(KindFloat).String())

	d, ok := FloatCell(0.1).Decimal()
	require.True(t, ok)
	assert.Equal(t, "0.1", d.String())

	_, ok = StringCell("x").Decimal()
	assert.False(t, ok)
}

func TestCellDecimalNonFinite(t *testing.T) {
	for _, v := range []float64{math.Inf(1), math.Inf(-1), math.NaN()} {
		d, ok := FloatCell(v).Decimal()
		assert.False(t, ok, "Decimal(%v)", v)
		assert.True(t, d.IsZero())
	}
}

func TestStageErrorUnwraps(t *testing.T) {
	err := &StageError{Stage: "load data", Err: &MissingColumnError{Column: "Value"}}

	assert.ErrorIs(t, err, ErrMissingColumn)
	assert.Contains(t, err.Error(), `stage "load data"`)
	assert.Contains(t, err.Error(), `"Value"`)
}
