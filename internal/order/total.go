package order

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// totalTolerance is the largest accepted gap between a client total and
// the recomputed one.
var totalTolerance = decimal.RequireFromString("0.005")

// maxTotal is the largest amount orders.total (NUMERIC(12,2)) can hold.
var maxTotal = decimal.RequireFromString("9999999999.99")

// ParsePrice parses a menu price such as "2.50" or "$2.50".
func ParsePrice(s string) (decimal.Decimal, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "$")
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid price %q", s)
	}
	if d.IsNegative() {
		return decimal.Zero, fmt.Errorf("negative price %q", s)
	}
	return d, nil
}

// ComputeTotal returns Σ price × quantity over items.
func ComputeTotal(items []Item) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, it := range items {
		p, err := ParsePrice(it.Price)
		if err != nil {
			return decimal.Zero, err
		}
		total = total.Add(p.Mul(decimal.NewFromInt(int64(it.Quantity))))
	}
	return total, nil
}

// FormatMoney renders an amount with two decimals.
func FormatMoney(d decimal.Decimal) string { return d.StringFixed(2) }

// TotalsMatch reports whether a and b agree within half a cent.
func TotalsMatch(a, b decimal.Decimal) bool {
	return a.Sub(b).Abs().LessThan(totalTolerance)
}
