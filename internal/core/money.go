// Package core provides the domain types shared by every other package:
// transactions, budgets, goals, recurring rules, notifications, and the
// Money and Date value types they are built from.
package core

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode"
)

// Money is an exact currency amount in cents. All accumulation happens on
// the integer cents value so sums never drift; float conversion exists only
// for display and percentage math.
type Money struct {
	Cents int64
}

func (m Money) Validate() error {
	if m.Cents <= 0 {
		return ErrInvalidAmount
	}
	return nil
}

func (m Money) Add(o Money) Money { return Money{Cents: m.Cents + o.Cents} }
func (m Money) Sub(o Money) Money { return Money{Cents: m.Cents - o.Cents} }

// Float returns the amount in whole currency units for display purposes.
// Use cents for calculations.
func (m Money) Float() float64 {
	return float64(m.Cents) / 100.0
}

// Scale multiplies the amount by a factor, rounding half away from zero.
// Used for budget suggestions (average spend plus a buffer).
func (m Money) Scale(factor float64) Money {
	return Money{Cents: int64(math.Round(float64(m.Cents) * factor))}
}

// Format renders the amount with the currency's display symbol, e.g.
// "$600.00". Unrecognized currencies fall back to "$".
func (m Money) Format(c Currency) string {
	return fmt.Sprintf("%s%.2f", c.Symbol(), m.Float())
}

// MarshalJSON encodes Money as a bare integer number of cents.
func (m Money) MarshalJSON() ([]byte, error) {
	return strconv.AppendInt(nil, m.Cents, 10), nil
}

func (m *Money) UnmarshalJSON(data []byte) error {
	v, err := strconv.ParseInt(string(data), 10, 64)
	if err != nil {
		return ErrInvalidAmount
	}
	m.Cents = v
	return nil
}

// ParseAmount converts a decimal amount string to Money with half-up
// rounding on the third decimal place. Both dot and comma decimal
// separators are accepted. Only strictly positive amounts are valid.
//
//	ParseAmount("12.34") -> $12.34
//	ParseAmount("12,345") -> $12.35 (rounds up)
func ParseAmount(s string) (Money, error) {
	s = strings.TrimSpace(s)
	if s == "" || strings.HasPrefix(s, "+") || strings.HasPrefix(s, "-") {
		return Money{}, ErrInvalidAmount
	}
	s = strings.ReplaceAll(s, ",", ".")

	parts := strings.Split(s, ".")
	if len(parts) > 2 {
		return Money{}, ErrInvalidAmount
	}
	intPart := parts[0]
	fracPart := ""
	if len(parts) == 2 {
		fracPart = parts[1]
	}
	if intPart == "" {
		intPart = "0"
	}
	for _, r := range intPart + fracPart {
		if !unicode.IsDigit(r) {
			return Money{}, ErrInvalidAmount
		}
	}

	iv, err := strconv.ParseInt(intPart, 10, 64)
	if err != nil || iv > math.MaxInt64/100 {
		return Money{}, ErrInvalidAmount
	}

	var fracCents int64
	if len(fracPart) > 0 {
		fracCents = int64(fracPart[0]-'0') * 10
		if len(fracPart) > 1 {
			fracCents += int64(fracPart[1] - '0')
			if len(fracPart) > 2 && fracPart[2] >= '5' {
				fracCents++
			}
		}
	}

	m := Money{Cents: iv*100 + fracCents}
	if err := m.Validate(); err != nil {
		return Money{}, err
	}
	return m, nil
}
