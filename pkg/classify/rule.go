package classify

import (
	"errors"
	"fmt"
	"strings"
)

// Band is one qualitative sub-range of a field. Open ends are nil. Ends are
// inclusive unless flagged exclusive.
type Band struct {
	Status       Status   `json:"status" yaml:"status"`
	Min          *float64 `json:"min,omitempty" yaml:"min,omitempty"`
	Max          *float64 `json:"max,omitempty" yaml:"max,omitempty"`
	MinExclusive bool     `json:"minExclusive,omitempty" yaml:"minExclusive,omitempty"`
	MaxExclusive bool     `json:"maxExclusive,omitempty" yaml:"maxExclusive,omitempty"`
}

// Contains reports whether v falls inside the band.
func (b Band) Contains(v float64) bool {
	if b.Min != nil {
		if b.MinExclusive && v <= *b.Min {
			return false
		}
		if !b.MinExclusive && v < *b.Min {
			return false
		}
	}
	if b.Max != nil {
		if b.MaxExclusive && v >= *b.Max {
			return false
		}
		if !b.MaxExclusive && v > *b.Max {
			return false
		}
	}
	return true
}

// Rule is the qualitative classification of a recognised field: the first band
// containing the value decides the status, otherwise Fallback applies.
type Rule struct {
	Field    string `json:"field" yaml:"field"`
	Label    string `json:"label,omitempty" yaml:"label,omitempty"`
	Unit     string `json:"unit,omitempty" yaml:"unit,omitempty"`
	Bands    []Band `json:"bands" yaml:"bands"`
	Fallback Status `json:"fallback" yaml:"fallback"`
}

// Evaluate returns the qualitative status for v.
func (r Rule) Evaluate(v float64) Status {
	for _, band := range r.Bands {
		if band.Contains(v) {
			return band.Status
		}
	}
	return r.Fallback
}

// Validate checks that the rule is well formed: a field name, known statuses,
// non-inverted bands, and bands listed in ascending, non-overlapping order.
func (r Rule) Validate() error {
	name := strings.TrimSpace(r.Field)
	if name == "" {
		return errors.New("classify: rule field is required")
	}
	if !r.Fallback.Known() {
		return fmt.Errorf("classify: rule %q: unknown fallback status %q", name, r.Fallback)
	}
	if len(r.Bands) == 0 {
		return fmt.Errorf("classify: rule %q: at least one band is required", name)
	}

	for idx, band := range r.Bands {
		if band.Status == StatusUnset || !band.Status.Known() {
			return fmt.Errorf("classify: rule %q: band %d has invalid status %q", name, idx, band.Status)
		}
		if band.Min != nil && band.Max != nil {
			lo, hi := *band.Min, *band.Max
			if lo > hi || (lo == hi && (band.MinExclusive || band.MaxExclusive)) {
				return fmt.Errorf("classify: rule %q: band %d is empty", name, idx)
			}
		}
		if band.Min == nil && idx > 0 {
			return fmt.Errorf("classify: rule %q: band %d has an open minimum but is not first", name, idx)
		}
		if band.Max == nil && idx < len(r.Bands)-1 {
			return fmt.Errorf("classify: rule %q: band %d has an open maximum but is not last", name, idx)
		}
		if idx == 0 {
			continue
		}
		prev := r.Bands[idx-1]
		if !ordered(prev, band) {
			return fmt.Errorf("classify: rule %q: band %d overlaps or precedes band %d", name, idx, idx-1)
		}
	}
	return nil
}

// ordered reports whether next starts strictly after prev ends. Touching ends
// are allowed when at least one side excludes the shared point.
func ordered(prev, next Band) bool {
	if prev.Max == nil || next.Min == nil {
		return false
	}
	if *next.Min > *prev.Max {
		return true
	}
	if *next.Min == *prev.Max {
		return next.MinExclusive || prev.MaxExclusive
	}
	return false
}

// ValidBand, WarningBand and InvalidBand build closed bands. Use AboveTo for a
// band whose lower end continues an earlier band, as in (120, 140].
func ValidBand(min, max float64) Band {
	return Band{Status: StatusValid, Min: Float(min), Max: Float(max)}
}

func WarningBand(min, max float64) Band {
	return Band{Status: StatusWarning, Min: Float(min), Max: Float(max)}
}

func InvalidBand(min, max float64) Band {
	return Band{Status: StatusInvalid, Min: Float(min), Max: Float(max)}
}

// AboveTo builds the band (min, max] with the given status.
func AboveTo(status Status, min, max float64) Band {
	return Band{Status: status, Min: Float(min), Max: Float(max), MinExclusive: true}
}
