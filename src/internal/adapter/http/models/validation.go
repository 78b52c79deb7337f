package models

import (
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/api-sage/ledgerdesk/src/internal/domain"
	"github.com/gookit/validate"
	"github.com/shopspring/decimal"
)

const dateLayout = "2006-01-02"

const (
	maxAmountText     = 32
	maxAmountExponent = 20
)

// MaxAmount is the largest value a NUMERIC(18,2) column holds.
var MaxAmount = decimal.RequireFromString("9999999999999999.99")

var errAmountOutOfRange = errors.New("amount out of range")

// checkStruct runs the struct's validate tags and records the first failure
// of every field on v.
func checkStruct(payload any, v *domain.ValidationError) {
	result := validate.Struct(payload)
	result.StopOnError = false
	if result.Validate() {
		return
	}

	for field, errs := range result.Errors.All() {
		for _, msg := range errs {
			v.Add(lowerFirst(field), msg)
			break
		}
	}
}

// ParseAmount accepts a JSON number or a numeric string and rounds it to two
// decimal places. Overlong text and exponents outside ±20 are rejected before
// any rounding so that inputs like 1e20000000 never expand.
func ParseAmount(raw json.RawMessage) (decimal.Decimal, bool, error) {
	text := strings.TrimSpace(string(raw))
	if text == "" || text == "null" {
		return decimal.Zero, false, nil
	}
	text = strings.TrimSpace(strings.Trim(text, `"`))
	if text == "" {
		return decimal.Zero, false, nil
	}
	if len(text) > maxAmountText {
		return decimal.Zero, true, errAmountOutOfRange
	}

	amount, err := decimal.NewFromString(text)
	if err != nil {
		return decimal.Zero, true, err
	}
	if exp := amount.Exponent(); exp < -maxAmountExponent || exp > maxAmountExponent {
		return decimal.Zero, true, errAmountOutOfRange
	}
	return amount.Round(2), true, nil
}

// amountField parses raw and records a message on v when it is missing (and
// required), not a number, or larger than MaxAmount. Sign rules are left to
// the caller.
func amountField(v *domain.ValidationError, field string, raw json.RawMessage, required bool) (decimal.Decimal, bool) {
	amount, present, err := ParseAmount(raw)
	switch {
	case !present:
		if required {
			v.Add(field, field+" is required")
		}
		return decimal.Zero, false
	case errors.Is(err, errAmountOutOfRange):
		v.Add(field, field+" is out of range (max "+MaxAmount.StringFixed(2)+")")
		return decimal.Zero, false
	case err != nil:
		v.Add(field, field+" must be a number")
		return decimal.Zero, false
	case amount.Abs().GreaterThan(MaxAmount):
		v.Add(field, field+" must be at most "+MaxAmount.StringFixed(2))
		return decimal.Zero, false
	}
	return amount, true
}

// ParseDate accepts YYYY-MM-DD or an RFC 3339 timestamp.
func ParseDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	return time.Parse(dateLayout, raw)
}

func Money(amount decimal.Decimal) json.Number {
	return json.Number(amount.StringFixed(2))
}

func FormatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

func FormatTimePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := FormatTime(*t)
	return &s
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}
