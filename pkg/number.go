package pkg

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Number holds a JSON value that clients send either as a number or as a
// numeric string ("10", "52.5"). Decoding never fails; the parse happens when
// the value is read, so callers decide what a malformed value means.
type Number struct {
	raw   string
	isSet bool
}

func NewNumber(raw string) Number {
	return Number{raw: raw, isSet: true}
}

func (n *Number) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*n = Number{}
		return nil
	}

	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*n = Number{raw: strings.TrimSpace(s), isSet: true}
		return nil
	}

	*n = Number{raw: string(data), isSet: true}
	return nil
}

func (n Number) MarshalJSON() ([]byte, error) {
	if !n.isSet {
		return []byte("null"), nil
	}
	if _, err := n.Float(); err != nil {
		return json.Marshal(n.raw)
	}
	return []byte(n.raw), nil
}

// IsSet reports whether the field was present and not null.
func (n Number) IsSet() bool {
	return n.isSet && n.raw != ""
}

func (n Number) String() string {
	return n.raw
}

// Int parses the value as a whole number that fits a postgres INT. "10.0" is accepted, "10.5" is not.
func (n Number) Int() (int, error) {
	if !n.IsSet() {
		return 0, InvalidInput("value is missing")
	}
	if v, err := strconv.ParseInt(n.raw, 10, 64); err == nil {
		if v > math.MaxInt32 || v < math.MinInt32 {
			return 0, InvalidInput("value is out of range")
		}
		return int(v), nil
	}
	f, err := n.Float()
	if err != nil {
		return 0, err
	}
	if f != math.Trunc(f) {
		return 0, InvalidInput("value must be a whole number")
	}
	if f > math.MaxInt32 || f < math.MinInt32 {
		return 0, InvalidInput("value is out of range")
	}
	return int(f), nil
}

func (n Number) Float() (float64, error) {
	if !n.IsSet() {
		return 0, InvalidInput("value is missing")
	}
	f, err := strconv.ParseFloat(n.raw, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, InvalidInput("value must be numeric")
	}
	return f, nil
}
