package money

import "github.com/shopspring/decimal"

var hundred = decimal.NewFromInt(100)

// PercentOf returns pct percent of amount in cents, truncated toward zero.
func PercentOf(amount int64, pct decimal.Decimal) int64 {
	if amount <= 0 || !pct.IsPositive() {
		return 0
	}
	return decimal.NewFromInt(amount).Mul(pct).Div(hundred).Truncate(0).IntPart()
}

func FloorZero(v int64) int64 {
	if v < 0 {
		return 0
	}
	return v
}

func Min(a, b int64) int64 {
	if a < b {
		return a
	}
	return b
}
