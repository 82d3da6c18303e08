package models

import "github.com/shopspring/decimal"

// AggregateRow is one (key, reduced value) pair of a grouped table
type AggregateRow struct {
	Key   Cell            `json:"key"`
	Value decimal.Decimal `json:"value"`
}

// Label returns the display form of the group key
func (r AggregateRow) Label() string {
	return r.Key.String()
}

// Float returns the reduced value for charting
func (r AggregateRow) Float() float64 {
	return r.Value.InexactFloat64()
}
