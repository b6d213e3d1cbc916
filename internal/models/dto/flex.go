package dto

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
)

// integers above this lose precision as float64 and keep their literal text
const maxExactInt = 1 << 53

// FlexString is an identifier the upstream API sends either as a JSON
// string or as a JSON number. Integral numbers are rendered without a
// fraction or exponent, so 42, 42.0 and 4.2e1 all read "42".
type FlexString string

// UnmarshalJSON accepts strings, numbers and null. Any other JSON value
// decodes to the empty string rather than failing the whole record.
func (f *FlexString) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*f = ""
		return nil
	}

	switch b[0] {
	case '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = FlexString(s)
	case '-', '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
		var n json.Number
		if err := json.Unmarshal(b, &n); err != nil {
			return err
		}
		*f = FlexString(canonicalNumber(n))
	default:
		*f = ""
	}
	return nil
}

// String returns the identifier text
func (f FlexString) String() string {
	return string(f)
}

func canonicalNumber(n json.Number) string {
	v, err := n.Float64()
	if err != nil || v != math.Trunc(v) || math.Abs(v) > maxExactInt {
		return n.String()
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
