// Package masav encodes the fixed-width clearing files the banking portal
// consumes for direct debits and credits. Records are 128 characters,
// CR+LF terminated; the encoder is purely functional, charges in, bytes
// out. A malformed charge aborts the whole build so a partial file is
// never emitted.
package masav

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/sh5616107/gemach-management-system-sub001/internal/domain"
)

const (
	recordLen = 128

	amountWidth    = 13 // 11 whole-unit digits + 2 minor-unit digits
	totalWidth     = 15
	countWidth     = 7
	referenceWidth = 20
	nameWidth      = 16
	idWidth        = 9
	accountWidth   = 9
	branchWidth    = 3
	bankWidth      = 2
)

var maxMinorUnits = decimal.New(1, amountWidth) // 10^13, exclusive bound

// FormatAmount renders an amount as 13 digits of minor units: round(amount
// × 100). Non-positive amounts and amounts that overflow the field are
// rejected.
func FormatAmount(amount decimal.Decimal) (string, error) {
	if !amount.IsPositive() {
		return "", fmt.Errorf("%w: amount must be positive, got %s", domain.ErrEncoding, amount)
	}
	minor := amount.Shift(2).Round(0)
	if minor.GreaterThanOrEqual(maxMinorUnits) {
		return "", fmt.Errorf("%w: amount %s overflows %d-digit field", domain.ErrEncoding, amount, amountWidth)
	}
	return padNumber(minor.String(), amountWidth)
}

// DecodeAmount is the inverse of FormatAmount, for reconciling a stored
// file against the ledger.
func DecodeAmount(field string) (decimal.Decimal, error) {
	minor, err := decimal.NewFromString(strings.TrimLeft(field, "0 "))
	if err != nil {
		if strings.Trim(field, "0 ") == "" {
			return decimal.Decimal{}, fmt.Errorf("%w: zero amount field", domain.ErrEncoding)
		}
		return decimal.Decimal{}, fmt.Errorf("%w: bad amount field %q", domain.ErrEncoding, field)
	}
	return minor.Shift(-2), nil
}

// FormatDate renders a calendar date as YYMMDD.
func FormatDate(t time.Time) string {
	return t.Format("060102")
}

// DecodeDate parses a YYMMDD field back into a date.
func DecodeDate(field string) (time.Time, error) {
	t, err := time.Parse("060102", field)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: bad date field %q", domain.ErrEncoding, field)
	}
	return t, nil
}

// padNumber left-pads a digit string with zeros to width. Overflow or a
// non-digit character fails the build.
func padNumber(s string, width int) (string, error) {
	if len(s) > width {
		return "", fmt.Errorf("%w: value %q overflows %d-character field", domain.ErrEncoding, s, width)
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return "", fmt.Errorf("%w: non-digit %q in numeric field", domain.ErrEncoding, r)
		}
	}
	return strings.Repeat("0", width-len(s)) + s, nil
}

// padName compensates for bidirectional rendering on the bank side: the
// payee name is character-reversed, then right-justified into a 16-rune
// field with leading spaces. Names longer than the field are truncated
// before reversal.
func padName(name string, width int) string {
	runes := []rune(name)
	if len(runes) > width {
		runes = runes[:width]
	}
	for i, j := 0, len(runes)-1; i < j; i, j = i+1, j-1 {
		runes[i], runes[j] = runes[j], runes[i]
	}
	return strings.Repeat(" ", width-len(runes)) + string(runes)
}

// padText right-justifies free text into a field with leading spaces,
// truncating from the right when too long.
func padText(s string, width int) string {
	runes := []rune(s)
	if len(runes) > width {
		runes = runes[:width]
	}
	return strings.Repeat(" ", width-len(runes)) + string(runes)
}

// stripNationalID removes separators and zero-pads to nine digits.
func stripNationalID(id string) (string, error) {
	normalized, ok := domain.NormalizeNationalID(id)
	if !ok {
		return "", fmt.Errorf("%w: national id %q is not numeric", domain.ErrEncoding, id)
	}
	return normalized, nil
}
