package models

import (
	"database/sql/driver"
	"fmt"

	"github.com/shopspring/decimal"
)

var maxAmount = decimal.New(1, 8)

// Amount is a currency value persisted as numeric(10,2) and serialized as a
// string with exactly two fractional digits.
type Amount struct {
	decimal.Decimal
}

func NewAmount(s string) (Amount, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Amount{}, fmt.Errorf("invalid amount %q", s)
	}
	return Amount{d}, nil
}

func MustAmount(s string) Amount {
	a, err := NewAmount(s)
	if err != nil {
		panic(err)
	}
	return a
}

// Valid reports whether a is non-negative, has at most two fractional digits
// and fits the column precision.
func (a Amount) Valid() bool {
	if a.IsNegative() || a.GreaterThanOrEqual(maxAmount) {
		return false
	}
	return a.Equal(a.Round(2))
}

func (a Amount) String() string {
	return a.StringFixed(2)
}

func (a Amount) MarshalJSON() ([]byte, error) {
	return []byte(`"` + a.StringFixed(2) + `"`), nil
}

// UnmarshalJSON accepts both "50.00" and 50.
func (a *Amount) UnmarshalJSON(b []byte) error {
	var d decimal.Decimal
	if err := d.UnmarshalJSON(b); err != nil {
		return fmt.Errorf("invalid amount: %s", string(b))
	}
	a.Decimal = d
	return nil
}

func (a *Amount) Scan(value interface{}) error {
	if value == nil {
		a.Decimal = decimal.Zero
		return nil
	}
	return a.Decimal.Scan(value)
}

func (a Amount) Value() (driver.Value, error) {
	return a.StringFixed(2), nil
}

func (Amount) GormDataType() string {
	return "numeric(10,2)"
}
