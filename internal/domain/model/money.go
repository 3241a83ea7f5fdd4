package model

import (
	"fmt"
	"math"
)

// Money is an amount in minor currency units (euro cents).
type Money int64

// MoneyFromFloat converts a decimal amount such as 29.5 into cents.
func MoneyFromFloat(v float64) Money {
	return Money(math.Round(v * 100))
}

// Float returns the amount in major units.
func (m Money) Float() float64 {
	return float64(m) / 100
}

func (m Money) String() string {
	sign := ""
	v := int64(m)
	if v < 0 {
		sign = "-"
		v = -v
	}
	return fmt.Sprintf("%s%d.%02d", sign, v/100, v%100)
}

// ApplyRate returns the share of m described by basis points, rounding half up.
func (m Money) ApplyRate(bps int64) Money {
	if bps <= 0 || m <= 0 {
		return 0
	}
	return Money((int64(m)*bps + 5000) / 10000)
}
