// Package units converts between human decimal amounts and integer base units
// (wei for ether, the smallest denomination for ERC-20 tokens).
//
// Conversions are exact for decimal.Decimal inputs. Amounts that start life as
// float64 carry the float's binary rounding error; FromFloat takes the shortest
// decimal that round-trips to the same float, so 0.1 becomes exactly 0.1 but a
// float computed as 0.1+0.2 becomes 0.30000000000000004.
package units

import (
	"fmt"
	"math/big"

	"github.com/shopspring/decimal"
)

// Common decimal counts.
const (
	DefaultDecimals int32 = 18
	GweiDecimals    int32 = 9
)

// ToBaseUnits rounds amount to decimals places (half to even) and scales it by
// 10^decimals.
func ToBaseUnits(amount decimal.Decimal, decimals int32) *big.Int {
	return amount.RoundBank(decimals).Shift(decimals).BigInt()
}

// FromBaseUnits divides n by 10^decimals.
func FromBaseUnits(n *big.Int, decimals int32) decimal.Decimal {
	if n == nil {
		return decimal.Zero
	}
	return decimal.NewFromBigInt(n, -decimals)
}

// ToWei converts an ether amount to wei.
func ToWei(amount decimal.Decimal) *big.Int {
	return ToBaseUnits(amount, DefaultDecimals)
}

// FromWei converts wei to ether.
func FromWei(wei *big.Int) decimal.Decimal {
	return FromBaseUnits(wei, DefaultDecimals)
}

// FromFloat converts a float64 amount; see the package doc for precision.
func FromFloat(f float64) decimal.Decimal {
	return decimal.NewFromFloat(f)
}

// ParseAmount parses a decimal string such as "1.5" or "0.000001".
func ParseAmount(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	return d, nil
}

// Format renders base units as a fixed-point string with decimals places.
func Format(n *big.Int, decimals int32) string {
	return FromBaseUnits(n, decimals).StringFixed(decimals)
}
