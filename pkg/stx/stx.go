// Package stx converts between microSTX ledger amounts and STX strings.
package stx

import (
	"errors"
	"fmt"
	"math"
	"math/big"
	"strings"

	"github.com/shopspring/decimal"
)

// Decimals is the number of microSTX digits after the STX decimal point.
const Decimals = 6

var (
	ErrNegative  = errors.New("stx: amount must not be negative")
	ErrPrecision = errors.New("stx: amount has more than 6 decimal places")
	ErrTooLarge  = errors.New("stx: amount exceeds the ledger maximum")
)

var microPerSTX = decimal.New(1, Decimals)

// ToSTX converts a microSTX amount into STX.
func ToSTX(micro uint64) decimal.Decimal {
	return decimal.NewFromBigInt(new(big.Int).SetUint64(micro), -Decimals)
}

// Format renders a microSTX amount as STX, e.g. "1.5 STX".
func Format(micro uint64) string {
	return ToSTX(micro).String() + " STX"
}

// FormatSigned renders a net balance, keeping its sign.
func FormatSigned(micro int64) string {
	return decimal.NewFromInt(micro).Shift(-Decimals).String() + " STX"
}

// Parse reads an STX amount such as "1.5" or "1.5 STX" into microSTX.
func Parse(s string) (uint64, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimSpace(strings.TrimSuffix(strings.TrimSuffix(s, "STX"), "stx"))
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, fmt.Errorf("stx: invalid amount %q: %w", s, err)
	}
	if d.IsNegative() {
		return 0, ErrNegative
	}
	micro := d.Mul(microPerSTX)
	if !micro.Equal(micro.Truncate(0)) {
		return 0, ErrPrecision
	}
	if micro.GreaterThan(decimal.NewFromInt(math.MaxInt64)) {
		return 0, ErrTooLarge
	}
	return uint64(micro.IntPart()), nil
}
