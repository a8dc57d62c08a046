package form

import (
	"strconv"

	"github.com/goliatone/go-cardioform/pkg/classify"
)

// Kind enumerates the input kinds a field renders as.
type Kind string

const (
	KindNumber Kind = "number"
	KindSelect Kind = "select"
)

// Option is one choice of a select field.
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// Field is a single input of the form.
type Field struct {
	Name     string   `json:"name"`
	Label    string   `json:"label"`
	Kind     Kind     `json:"kind"`
	Min      *float64 `json:"min,omitempty"`
	Max      *float64 `json:"max,omitempty"`
	Step     string   `json:"step,omitempty"`
	Unit     string   `json:"unit,omitempty"`
	Help     string   `json:"help,omitempty"`
	Required bool     `json:"required,omitempty"`
	Options  []Option `json:"options,omitempty"`
	Order    int      `json:"order,omitempty"`
}

// Bounds returns the field's hard bounds.
func (f Field) Bounds() classify.Bounds {
	return classify.Bounds{Min: f.Min, Max: f.Max}
}

// Numeric reports whether the field takes a free numeric value.
func (f Field) Numeric() bool {
	return f.Kind == KindNumber
}

// MinAttr and MaxAttr format the bounds for markup; open ends are empty.
func (f Field) MinAttr() string {
	return formatBound(f.Min)
}

func (f Field) MaxAttr() string {
	return formatBound(f.Max)
}

// HasOption reports whether value is one of the select options.
func (f Field) HasOption(value string) bool {
	for _, opt := range f.Options {
		if opt.Value == value {
			return true
		}
	}
	return false
}

func formatBound(v *float64) string {
	if v == nil {
		return ""
	}
	return formatNumber(*v)
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
