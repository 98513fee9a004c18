// Package util holds small helpers shared by the usecase and delivery layers.
package util

import (
	"fmt"
	"reflect"
	"strings"
	"time"
	"unicode"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// MinPhoneDigits is the least number of digits a contact phone must contain.
const MinPhoneDigits = 10

// NewValidator returns a validator with the storefront rules registered:
//   - phone_digits: the string contains at least MinPhoneDigits digits
//   - decimal.Decimal fields validate as their float64 value, so gte/lte apply to prices
func NewValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("phone_digits", func(fl validator.FieldLevel) bool {
		return DigitCount(fl.Field().String()) >= MinPhoneDigits
	})
	v.RegisterCustomTypeFunc(decimalValue, decimal.Decimal{})

	return v
}

func decimalValue(field reflect.Value) any {
	amount, ok := field.Interface().(decimal.Decimal)
	if !ok {
		return nil
	}

	return amount.InexactFloat64()
}

// ValidationDetails flattens validator errors into "field: rule" pairs.
func ValidationDetails(err error) string {
	fieldErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err.Error()
	}

	parts := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		parts = append(parts, lowerFirst(fe.Field())+": "+fe.Tag())
	}

	return strings.Join(parts, ", ")
}

// DigitCount counts the decimal digits in s.
func DigitCount(s string) int {
	n := 0
	for _, r := range s {
		if unicode.IsDigit(r) {
			n++
		}
	}

	return n
}

// FormatPrice renders an amount with two decimals and a dollar sign.
func FormatPrice(amount decimal.Decimal) string {
	return "$" + amount.StringFixed(2)
}

// FormatDuration formats duration into human readable format (e.g., "1h30m", "5m10s", "45s").
func FormatDuration(duration time.Duration) string {
	duration = duration.Round(time.Second)

	if duration < time.Minute {
		return fmt.Sprintf("%ds", int(duration.Seconds()))
	}

	if duration < time.Hour {
		m := int(duration.Minutes())
		s := int(duration.Seconds()) % 60

		return fmt.Sprintf("%dm%ds", m, s)
	}

	h := int(duration.Hours())
	m := int(duration.Minutes()) % 60

	return fmt.Sprintf("%dh%dm", h, m)
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}

	return strings.ToLower(s[:1]) + s[1:]
}
