package dataset

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Number is a coerced numeric cell. Valid is false when the cell was blank or
// could not be parsed, which is how the loader marks a missing value.
type Number struct {
	Value float64
	Valid bool
}

// Float returns a present Number.
func Float(v float64) Number {
	return Number{Value: v, Valid: true}
}

// Missing returns the missing-value sentinel.
func Missing() Number {
	return Number{}
}

// ParseNumber coerces a raw cell. Blank, malformed and non-finite input all
// become Missing; it never fails.
func ParseNumber(raw string) Number {
	s := strings.TrimSpace(raw)
	if s == "" || isHex(s) {
		return Missing()
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return Missing()
	}
	return Float(v)
}

// isHex reports whether s uses Go's hexadecimal float syntax, which the
// dataset never contains as a real number.
func isHex(s string) bool {
	s = strings.TrimLeft(s, "+-")
	return len(s) >= 2 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X')
}

// ParseVotes strips thousands separators before coercing.
func ParseVotes(raw string) Number {
	return ParseNumber(strings.ReplaceAll(raw, ",", ""))
}

// ParseYear accepts "2019" as well as the "(2019)" form used by the IMDb export.
func ParseYear(raw string) Number {
	s := strings.TrimSpace(raw)
	s = strings.TrimSuffix(strings.TrimPrefix(s, "("), ")")
	n := ParseNumber(s)
	if !n.Valid || n.Value != math.Trunc(n.Value) {
		return Missing()
	}
	return n
}

// Int truncates the value; callers must check Valid first.
func (n Number) Int() int {
	return int(n.Value)
}

func (n Number) String() string {
	if !n.Valid {
		return "NaN"
	}
	return strconv.FormatFloat(n.Value, 'f', -1, 64)
}

// MarshalJSON encodes a missing value as null.
func (n Number) MarshalJSON() ([]byte, error) {
	if !n.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(n.Value)
}

// UnmarshalJSON accepts a number or null.
func (n *Number) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*n = Missing()
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*n = Float(v)
	return nil
}
