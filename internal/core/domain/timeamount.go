package domain

import (
	"github.com/shopspring/decimal"

	"github.com/totodo713/miometory-sub007/internal/apperrors"
)

var (
	maxHoursPerDay = decimal.NewFromInt(24)
	quarterHour    = decimal.NewFromFloat(0.25)
)

// TimeAmount is a validated number of hours for a single work-log entry.
// Values are kept at 2 decimal places and must be a multiple of 0.25 within
// [0, 24]. Using decimal avoids the float drift that quarter-hour sums would
// otherwise accumulate.
type TimeAmount struct {
	value decimal.Decimal
}

// NewTimeAmount validates and builds a TimeAmount from a decimal value.
func NewTimeAmount(value decimal.Decimal) (TimeAmount, error) {
	rounded := value.Round(2)
	if rounded.IsNegative() {
		return TimeAmount{}, apperrors.NewValidationError(apperrors.CodeTimeAmountNegative, "hours must not be negative")
	}
	if rounded.GreaterThan(maxHoursPerDay) {
		return TimeAmount{}, apperrors.NewValidationError(apperrors.CodeTimeAmountTooLarge, "hours must not exceed 24")
	}
	if !rounded.Mod(quarterHour).IsZero() {
		return TimeAmount{}, apperrors.NewValidationError(apperrors.CodeTimeAmountGranularity, "hours must be a multiple of 0.25")
	}
	return TimeAmount{value: rounded}, nil
}

// NewTimeAmountFromFloat validates and builds a TimeAmount from a float64.
func NewTimeAmountFromFloat(value float64) (TimeAmount, error) {
	return NewTimeAmount(decimal.NewFromFloat(value))
}

// NewTimeAmountFromPtr rejects nil input with a distinct code, then delegates
// to NewTimeAmountFromFloat. Command DTOs use pointers so "missing" and "zero"
// stay distinguishable.
func NewTimeAmountFromPtr(value *float64) (TimeAmount, error) {
	if value == nil {
		return TimeAmount{}, apperrors.NewValidationError(apperrors.CodeTimeAmountRequired, "hours are required")
	}
	return NewTimeAmountFromFloat(*value)
}

// MustTimeAmount is a test/seed helper that panics on invalid input.
func MustTimeAmount(value float64) TimeAmount {
	ta, err := NewTimeAmountFromFloat(value)
	if err != nil {
		panic(err)
	}
	return ta
}

// Add returns the sum, revalidating the [0, 24] bound on the result.
func (t TimeAmount) Add(other TimeAmount) (TimeAmount, error) {
	return NewTimeAmount(t.value.Add(other.value))
}

// Sub returns the difference, revalidating the [0, 24] bound on the result.
func (t TimeAmount) Sub(other TimeAmount) (TimeAmount, error) {
	return NewTimeAmount(t.value.Sub(other.value))
}

func (t TimeAmount) IsZero() bool {
	return t.value.IsZero()
}

func (t TimeAmount) Equal(other TimeAmount) bool {
	return t.value.Equal(other.value)
}

// Decimal returns the underlying 2-decimal value.
func (t TimeAmount) Decimal() decimal.Decimal {
	return t.value.Round(2)
}

func (t TimeAmount) Float64() float64 {
	f, _ := t.value.Float64()
	return f
}

func (t TimeAmount) String() string {
	return t.value.StringFixed(2)
}

// MarshalJSON encodes the amount as a JSON number string, matching decimal's
// default representation.
func (t TimeAmount) MarshalJSON() ([]byte, error) {
	return t.Decimal().MarshalJSON()
}

// UnmarshalJSON decodes and revalidates the amount.
func (t *TimeAmount) UnmarshalJSON(data []byte) error {
	var d decimal.Decimal
	if err := d.UnmarshalJSON(data); err != nil {
		return err
	}
	ta, err := NewTimeAmount(d)
	if err != nil {
		return err
	}
	*t = ta
	return nil
}
