package models

import (
	"encoding/json"
	"strconv"
	"strings"
)

// NASentinel is the wire representation of an unavailable value.
const NASentinel = "N/A"

// Value is a single metric reading as delivered by a feed collaborator.
// Feeds emit numbers, numeric strings ("34,50", "45%"), free text (credit
// ratings, meeting dates) or the "N/A" sentinel. A Value is never NaN.
type Value struct {
	raw     string
	num     float64
	numeric bool
}

// NA returns the unavailable value.
func NA() Value {
	return Value{raw: NASentinel}
}

// Num returns a numeric value.
func Num(f float64) Value {
	return Value{raw: strconv.FormatFloat(f, 'f', -1, 64), num: f, numeric: true}
}

// Parse normalizes raw feed text into a Value. Comma decimal separators and
// trailing percent signs are accepted; unparseable text is kept for display
// but carries no numeric reading.
func Parse(s string) Value {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, NASentinel) {
		return NA()
	}
	n := strings.TrimSpace(strings.TrimSuffix(s, "%"))
	n = strings.ReplaceAll(n, ",", ".")
	if f, err := strconv.ParseFloat(n, 64); err == nil {
		return Value{raw: s, num: f, numeric: true}
	}
	return Value{raw: s}
}

// IsNA reports whether the value is the unavailable sentinel.
func (v Value) IsNA() bool {
	return v.raw == "" || v.raw == NASentinel
}

// Float returns the numeric reading, if any.
func (v Value) Float() (float64, bool) {
	if v.IsNA() || !v.numeric {
		return 0, false
	}
	return v.num, true
}

// String returns the display text, "N/A" when unavailable.
func (v Value) String() string {
	if v.IsNA() {
		return NASentinel
	}
	return v.raw
}

func (v Value) MarshalJSON() ([]byte, error) {
	if v.IsNA() {
		return json.Marshal(NASentinel)
	}
	if v.numeric {
		return json.Marshal(v.num)
	}
	return json.Marshal(v.raw)
}

func (v *Value) UnmarshalJSON(b []byte) error {
	var f float64
	if err := json.Unmarshal(b, &f); err == nil {
		*v = Num(f)
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*v = Parse(s)
		return nil
	}
	// null or unexpected shape: treat as unavailable
	*v = NA()
	return nil
}
