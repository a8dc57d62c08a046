package form

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/goliatone/go-cardioform/pkg/classify"
)

// FieldResult is the classification of one numeric field.
type FieldResult struct {
	Field  string          `json:"field"`
	Raw    string          `json:"raw,omitempty"`
	Value  *float64        `json:"value,omitempty"`
	Status classify.Status `json:"status"`
	Class  string          `json:"class,omitempty"`
}

// Evaluate classifies every numeric field of the catalog using raw input
// values. Missing or unparsable values are unset.
func (c *Catalog) Evaluate(table *classify.Table, values map[string]string) []FieldResult {
	fields := c.NumericFields()
	out := make([]FieldResult, 0, len(fields))
	for _, field := range fields {
		out = append(out, EvaluateField(table, field, values[field.Name]))
	}
	return out
}

// EvaluateField classifies a single raw value with the field's bounds.
func EvaluateField(table *classify.Table, field Field, raw string) FieldResult {
	result := FieldResult{
		Field: field.Name,
		Raw:   strings.TrimSpace(raw),
	}
	if value, ok := classify.ParseNumeric(raw); ok {
		result.Value = &value
	}
	result.Status = table.Classify(field.Name, result.Value, field.Bounds())
	result.Class = result.Status.Class()
	return result
}

// Problem describes a submitted value that could not be used.
type Problem struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (p Problem) String() string {
	return fmt.Sprintf("%s: %s", p.Field, p.Message)
}

// Submission holds a parsed form post.
type Submission struct {
	Raw      map[string]string
	Numbers  map[string]float64
	Problems []Problem
}

// Valid reports whether every field parsed.
func (s Submission) Valid() bool {
	return len(s.Problems) == 0
}

// Messages returns the problems formatted for display, labelled with the
// field's label where the catalog knows it.
func (s Submission) Messages(c *Catalog) []string {
	if len(s.Problems) == 0 {
		return nil
	}
	out := make([]string, 0, len(s.Problems))
	for _, problem := range s.Problems {
		label := problem.Field
		if field, err := c.Field(problem.Field); err == nil && field.Label != "" {
			label = field.Label
		}
		out = append(out, fmt.Sprintf("%s %s", label, problem.Message))
	}
	return out
}

// ParseSubmission reads the catalog's fields from a form post. Select values
// must match an option; numeric values must parse. Both are stored in Numbers
// when usable. Values outside the hard bounds are kept: they are reported by
// classification, not rejected.
func ParseSubmission(c *Catalog, values url.Values) Submission {
	sub := Submission{
		Raw:     make(map[string]string),
		Numbers: make(map[string]float64),
	}
	for _, field := range c.Fields() {
		raw := strings.TrimSpace(values.Get(field.Name))
		if raw != "" {
			sub.Raw[field.Name] = raw
		}

		if raw == "" {
			if field.Required {
				sub.Problems = append(sub.Problems, Problem{Field: field.Name, Message: "is required"})
			}
			continue
		}

		if field.Kind == KindSelect && !field.HasOption(raw) {
			sub.Problems = append(sub.Problems, Problem{Field: field.Name, Message: "has an unknown option"})
			continue
		}

		value, ok := classify.ParseNumeric(raw)
		if !ok {
			sub.Problems = append(sub.Problems, Problem{Field: field.Name, Message: "must be a number"})
			continue
		}
		sub.Numbers[field.Name] = value
	}
	return sub
}
