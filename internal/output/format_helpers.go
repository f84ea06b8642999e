package output

import (
	"fmt"
	"math"
	"strconv"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// FormatCurrency formats a decimal as USD currency with 2 decimals and thousands separators.
// Kept here so it can be reused by multiple formatters and unit tested in isolation.
func FormatCurrency(amount decimal.Decimal) string {
	cents := amount.Round(2).Shift(2).IntPart()
	return money.New(cents, money.USD).Display()
}

// FormatDollars is FormatCurrency for float64 simulation outcomes.
func FormatDollars(amount float64) string {
	return FormatCurrency(decimal.NewFromFloat(amount))
}

// FormatPercentage formats a decimal as a percentage with 2 decimals.
func FormatPercentage(amount decimal.Decimal) string { return amount.StringFixed(2) + "%" }

// FormatPercent formats a float64 percentage with 2 decimals.
func FormatPercent(pct float64) string { return strconv.FormatFloat(pct, 'f', 2, 64) + "%" }

// HumanFormat abbreviates a dollar amount to one decimal with a k, M, B or T
// suffix, e.g. 1234567 -> "$1.2M".
func HumanFormat(amount float64) string {
	suffixes := []string{"", "k", "M", "B", "T"}
	i := 0
	for math.Abs(amount) >= 1000 && i < len(suffixes)-1 {
		amount /= 1000
		i++
	}
	return fmt.Sprintf("$%.1f%s", amount, suffixes[i])
}

func intToString(i int) string { return strconv.Itoa(i) }

func boolToString(b bool) string { return strconv.FormatBool(b) }
