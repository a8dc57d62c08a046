package classify

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// decimalPattern is the plain decimal grammar the browser script accepts.
// Hex floats, digit separators and named values are rejected.
var decimalPattern = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?$`)

// ParseNumeric parses a raw input value. Empty, malformed, NaN and infinite
// inputs report false so callers can treat them as unset.
func ParseNumeric(raw string) (float64, bool) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" || !decimalPattern.MatchString(trimmed) {
		return 0, false
	}
	value, err := strconv.ParseFloat(trimmed, 64)
	if err != nil {
		return 0, false
	}
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return 0, false
	}
	return value, true
}

// Float returns a pointer to v. Useful for literal bounds and optional values.
func Float(v float64) *float64 {
	return &v
}

// Bounds are the hard limits of a field, usually its min/max markup
// attributes. A nil end is open.
type Bounds struct {
	Min *float64 `json:"min,omitempty" yaml:"min,omitempty"`
	Max *float64 `json:"max,omitempty" yaml:"max,omitempty"`
}

// Between returns closed bounds [min, max].
func Between(min, max float64) Bounds {
	return Bounds{Min: Float(min), Max: Float(max)}
}

// Unbounded returns bounds with both ends open.
func Unbounded() Bounds {
	return Bounds{}
}

// ParseBounds converts raw min/max attributes into Bounds. Attributes that do
// not parse are treated as absent, matching how a browser compares against a
// missing attribute.
func ParseBounds(rawMin, rawMax string) Bounds {
	var bounds Bounds
	if value, ok := ParseNumeric(rawMin); ok {
		bounds.Min = Float(value)
	}
	if value, ok := ParseNumeric(rawMax); ok {
		bounds.Max = Float(value)
	}
	return bounds
}

// Contains reports whether v lies within the bounds, inclusive.
func (b Bounds) Contains(v float64) bool {
	if b.Min != nil && v < *b.Min {
		return false
	}
	if b.Max != nil && v > *b.Max {
		return false
	}
	return true
}

// IsZero reports whether both ends are open.
func (b Bounds) IsZero() bool {
	return b.Min == nil && b.Max == nil
}
