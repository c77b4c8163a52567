// Package core holds the domain types and the pure budgeting math.
//
// All derived figures (monthly normalization, summary totals, trend
// averages) are computed with shopspring decimals and converted to
// float64 only at the edges, so that yearly amortization and exchange
// rates never accumulate binary floating-point drift.
package core

import "github.com/shopspring/decimal"

var twelve = decimal.NewFromInt(12)

// MonthlyAmount normalizes a fixed-expense template amount to a single
// monthly figure in the base currency: yearly amounts are divided by
// 12, then the result is multiplied by the exchange rate. A zero or
// negative exchange rate is treated as 1 (unset).
func MonthlyAmount(amount float64, freq Frequency, exchangeRate float64) float64 {
	d := decimal.NewFromFloat(amount)
	if freq == Yearly {
		d = d.Div(twelve)
	}
	rate := decimal.NewFromFloat(exchangeRate)
	if rate.Sign() <= 0 {
		rate = decimal.NewFromInt(1)
	}
	f, _ := d.Mul(rate).Round(6).Float64()
	return f
}

// SumAmounts adds a slice of float64 amounts exactly.
func SumAmounts(amounts []float64) float64 {
	total := decimal.Zero
	for _, a := range amounts {
		total = total.Add(decimal.NewFromFloat(a))
	}
	f, _ := total.Float64()
	return f
}

// ChangePercent computes the relative month-over-month change in
// percent. It returns nil when previous is zero: a change from nothing
// is undefined, not infinite.
func ChangePercent(current, previous float64) *float64 {
	prev := decimal.NewFromFloat(previous)
	if prev.IsZero() {
		return nil
	}
	cur := decimal.NewFromFloat(current)
	pct, _ := cur.Sub(prev).Div(prev).Mul(decimal.NewFromInt(100)).Round(6).Float64()
	return &pct
}

// Mean returns the arithmetic mean of values, or 0 for an empty slice.
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	total := decimal.Zero
	for _, v := range values {
		total = total.Add(decimal.NewFromFloat(v))
	}
	f, _ := total.Div(decimal.NewFromInt(int64(len(values)))).Round(6).Float64()
	return f
}
