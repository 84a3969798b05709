package validation

import (
	"bytes"
	"encoding/json"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// The admin form submits price/quota either as JSON numbers or as the raw
// <input> string; older clients even send the literal string "undefined".
// These regexes mirror what the form accepts: non-negative decimals with at
// most two fraction digits, and plain non-negative integers.
var (
	numberPattern  = regexp.MustCompile(`^\d+(\.\d{1,2})?$`)
	integerPattern = regexp.MustCompile(`^\d+$`)
)

// OptionalNumber is a JSON value that may be a number, a numeric string, or
// absent. Empty strings, null, and "undefined" normalize to absent. A string
// that is present but not numeric sets Invalid instead of failing the whole
// decode, so it can surface as a field-level error.
type OptionalNumber struct {
	Valid   bool
	Invalid bool
	Value   float64
}

func (n *OptionalNumber) UnmarshalJSON(b []byte) error {
	*n = OptionalNumber{}
	if bytes.Equal(b, []byte("null")) {
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		s = strings.TrimSpace(s)
		if s == "" || s == "undefined" {
			return nil
		}
		if !numberPattern.MatchString(s) {
			n.Invalid = true
			return nil
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			n.Invalid = true
			return nil
		}
		n.Valid = true
		n.Value = v
		return nil
	}
	var v float64
	if err := json.Unmarshal(b, &v); err != nil {
		n.Invalid = true
		return nil
	}
	n.Valid = true
	n.Value = v
	return nil
}

// Ptr returns the value as a *float64, nil when absent.
func (n OptionalNumber) Ptr() *float64 {
	if !n.Valid {
		return nil
	}
	v := n.Value
	return &v
}

// OptionalInt is the integer counterpart of OptionalNumber.
type OptionalInt struct {
	Valid   bool
	Invalid bool
	Value   int
}

func (n *OptionalInt) UnmarshalJSON(b []byte) error {
	*n = OptionalInt{}
	if bytes.Equal(b, []byte("null")) {
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		s = strings.TrimSpace(s)
		if s == "" || s == "undefined" {
			return nil
		}
		if !integerPattern.MatchString(s) {
			n.Invalid = true
			return nil
		}
		v, err := strconv.Atoi(s)
		if err != nil {
			n.Invalid = true
			return nil
		}
		n.Valid = true
		n.Value = v
		return nil
	}
	var v float64
	if err := json.Unmarshal(b, &v); err != nil {
		n.Invalid = true
		return nil
	}
	if v != float64(int(v)) {
		n.Invalid = true
		return nil
	}
	n.Valid = true
	n.Value = int(v)
	return nil
}

// Ptr returns the value as a *int, nil when absent.
func (n OptionalInt) Ptr() *int {
	if !n.Valid {
		return nil
	}
	v := n.Value
	return &v
}

// dateLayouts are the two shapes the admin UI sends: a bare date from
// <input type="date"> and a full RFC 3339 timestamp from programmatic clients.
var dateLayouts = []string{time.RFC3339, "2006-01-02"}

// parseDate parses a trip date string, trying each accepted layout.
func parseDate(s string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
