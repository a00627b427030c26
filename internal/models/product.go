package models

import (
	"bytes"
	"encoding/json"
	"errors"
	"math"
	"strconv"
	"time"
)

// ProductDB represents an inventory row in the database.
// JSON field names match the wire format the browser client renders.
type ProductDB struct {
	ID          int64     `json:"id" db:"id"`                     // Primary key
	ProductCode string    `json:"productCode" db:"product_code"`  // Free-text code
	Product     string    `json:"product" db:"product"`           // Product name
	Qty         int64     `json:"qty" db:"qty"`                   // Non-negative quantity
	PerPrice    float64   `json:"perPrice" db:"per_price"`        // Unit price, 2-decimal precision
	UserEmail   string    `json:"user_email" db:"user_email"`     // Owning account's email
	CreatedAt   time.Time `json:"created_at" db:"created_at"`     // Creation timestamp
}

// ErrNotNumeric is returned when a quantity or price field cannot be coerced.
var ErrNotNumeric = errors.New("value is not numeric")

// Quantity is an integer quantity that accepts both JSON numbers and
// numeric strings. The browser client submits raw form field values, so
// `"qty": "3"` and `"qty": 3` must decode identically.
type Quantity int64

// UnmarshalJSON implements json.Unmarshaler.
func (q *Quantity) UnmarshalJSON(data []byte) error {
	data = bytes.Trim(bytes.TrimSpace(data), `"`)
	if len(data) == 0 || string(data) == "null" {
		*q = 0
		return nil
	}
	n, err := strconv.ParseInt(string(data), 10, 64)
	if err != nil {
		return ErrNotNumeric
	}
	*q = Quantity(n)
	return nil
}

// Price is a decimal unit price that accepts both JSON numbers and numeric
// strings, rounded to 2 digits at the boundary.
type Price float64

// UnmarshalJSON implements json.Unmarshaler.
func (p *Price) UnmarshalJSON(data []byte) error {
	data = bytes.Trim(bytes.TrimSpace(data), `"`)
	if len(data) == 0 || string(data) == "null" {
		*p = 0
		return nil
	}
	f, err := strconv.ParseFloat(string(data), 64)
	if err != nil {
		return ErrNotNumeric
	}
	*p = Price(math.Round(f*100) / 100)
	return nil
}

var _ json.Unmarshaler = (*Quantity)(nil)
var _ json.Unmarshaler = (*Price)(nil)
