package models

import (
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Kind is the type inferred for a table column
type Kind int

const (
	KindString Kind = iota
	KindInt
	KindFloat
)

// String returns the string representation of the kind
func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	default:
		return "unknown"
	}
}

// Numeric reports whether cells of this kind hold numbers
func (k Kind) Numeric() bool {
	return k == KindInt || k == KindFloat
}

// Cell is a single typed value of a table. Null marks an empty CSV field.
type Cell struct {
	Kind  Kind
	Null  bool
	Int   int64
	Float float64
	Str   string
}

// StringCell creates a string cell
func StringCell(s string) Cell {
	return Cell{Kind: KindString, Str: s}
}

// IntCell creates an integer cell
func IntCell(v int64) Cell {
	return Cell{Kind: KindInt, Int: v}
}

// FloatCell creates a float cell
func FloatCell(v float64) Cell {
	return Cell{Kind: KindFloat, Float: v}
}

// NullCell creates an empty cell of the given kind
func NullCell(kind Kind) Cell {
	return Cell{Kind: kind, Null: true}
}

// Float64 returns the numeric value of the cell
func (c Cell) Float64() (float64, bool) {
	if c.Null {
		return 0, false
	}
	switch c.Kind {
	case KindInt:
		return float64(c.Int), true
	case KindFloat:
		return c.Float, true
	default:
		return 0, false
	}
}

// Decimal returns the numeric value of the cell as an exact decimal.
// Non-finite floats have no decimal form and report false.
func (c Cell) Decimal() (decimal.Decimal, bool) {
	if c.Null {
		return decimal.Zero, false
	}
	switch c.Kind {
	case KindInt:
		return decimal.NewFromInt(c.Int), true
	case KindFloat:
		if math.IsInf(c.Float, 0) || math.IsNaN(c.Float) {
			return decimal.Zero, false
		}
		return decimal.NewFromFloat(c.Float), true
	default:
		return decimal.Zero, false
	}
}

// Interface returns the cell as a plain Go value for templates
func (c Cell) Interface() any {
	if c.Null {
		return nil
	}
	switch c.Kind {
	case KindInt:
		return c.Int
	case KindFloat:
		return c.Float
	default:
		return c.Str
	}
}

// String formats the cell for display. Empty fields format as "".
func (c Cell) String() string {
	if c.Null {
		return ""
	}
	switch c.Kind {
	case KindInt:
		return strconv.FormatInt(c.Int, 10)
	case KindFloat:
		return strconv.FormatFloat(c.Float, 'f', -1, 64)
	default:
		return c.Str
	}
}

// Compare orders two cells: numbers numerically, everything else as strings.
// Null cells sort after non-null ones.
func (c Cell) Compare(o Cell) int {
	switch {
	case c.Null && o.Null:
		return 0
	case c.Null:
		return 1
	case o.Null:
		return -1
	}

	a, aok := c.Float64()
	b, bok := o.Float64()
	if aok && bok {
		switch {
		case a < b:
			return -1
		case a > b:
			return 1
		default:
			return 0
		}
	}
	return strings.Compare(c.String(), o.String())
}
