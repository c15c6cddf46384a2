// internal/domain/models/numeric.go
package models

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// Numeric is a number the backend may send either as a JSON number or as a
// numeric string ("12.50"). null, "" and unparseable strings decode to an
// invalid Numeric rather than failing the whole payload.
type Numeric struct {
	Raw   string
	Value float64
	Valid bool
}

// UnmarshalJSON accepts numbers, numeric strings and null.
func (n *Numeric) UnmarshalJSON(b []byte) error {
	*n = Numeric{}
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		return nil
	}

	var s string
	if b[0] == '"' {
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
	} else {
		var num json.Number
		if err := json.Unmarshal(b, &num); err != nil {
			return err
		}
		s = num.String()
	}

	n.Raw = s
	if f, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil {
		n.Value = f
		n.Valid = true
	}
	return nil
}

// MarshalJSON writes the original representation back out.
func (n Numeric) MarshalJSON() ([]byte, error) {
	if n.Raw == "" {
		return []byte("null"), nil
	}
	return json.Marshal(n.Raw)
}

// Float returns the parsed value, or 0 when the field was missing or malformed.
func (n Numeric) Float() float64 {
	if !n.Valid {
		return 0
	}
	return n.Value
}

// NewNumeric builds a valid Numeric from a float (used by fixtures and tests).
func NewNumeric(f float64) Numeric {
	return Numeric{Raw: strconv.FormatFloat(f, 'f', -1, 64), Value: f, Valid: true}
}
