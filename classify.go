package cardioform

import (
	"github.com/goliatone/go-cardioform/pkg/classify"
)

// Status aliases classify.Status.
type Status = classify.Status

// Status values.
const (
	StatusUnset   = classify.StatusUnset
	StatusValid   = classify.StatusValid
	StatusWarning = classify.StatusWarning
	StatusInvalid = classify.StatusInvalid
)

// Classify returns the status of value for field under the built-in rules and
// the given hard bounds. A nil value is unset.
func Classify(field string, value *float64, bounds classify.Bounds) Status {
	return classify.Classify(field, value, bounds)
}

// ClassifyInput parses raw like a form input before classifying it. Empty or
// malformed input is unset.
func ClassifyInput(field, raw string, bounds classify.Bounds) Status {
	return classify.ClassifyInput(field, raw, bounds)
}

// DefaultTable returns a fresh table holding the built-in rules.
func DefaultTable() *classify.Table {
	return classify.DefaultTable()
}
