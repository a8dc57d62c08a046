package classify

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"sync"
)

// Field names with built-in qualitative rules.
const (
	FieldAge         = "age"
	FieldRestingBP   = "trestbps"
	FieldCholesterol = "chol"
	FieldMaxHR       = "thalach"
)

// DefaultRules returns the built-in qualitative rules. Age has no invalid
// band: outside 20-80 it is a warning, and only the hard bounds can make it
// invalid.
func DefaultRules() []Rule {
	return []Rule{
		{
			Field:    FieldAge,
			Label:    "Age",
			Unit:     "years",
			Bands:    []Band{ValidBand(20, 80)},
			Fallback: StatusWarning,
		},
		{
			Field: FieldRestingBP,
			Label: "Resting Blood Pressure",
			Unit:  "mm Hg",
			Bands: []Band{
				ValidBand(90, 120),
				AboveTo(StatusWarning, 120, 140),
			},
			Fallback: StatusInvalid,
		},
		{
			Field: FieldCholesterol,
			Label: "Cholesterol",
			Unit:  "mg/dl",
			Bands: []Band{
				ValidBand(125, 200),
				AboveTo(StatusWarning, 200, 240),
			},
			Fallback: StatusInvalid,
		},
		{
			Field: FieldMaxHR,
			Label: "Max Heart Rate",
			Unit:  "bpm",
			Bands: []Band{
				ValidBand(60, 100),
				AboveTo(StatusWarning, 100, 180),
			},
			Fallback: StatusInvalid,
		},
	}
}

// Table stores rules by field name. It is safe for concurrent use.
type Table struct {
	mu    sync.RWMutex
	rules map[string]Rule
}

// NewTable creates a table seeded with the provided rules. Invalid or
// duplicate rules return an error.
func NewTable(rules ...Rule) (*Table, error) {
	t := &Table{rules: make(map[string]Rule, len(rules))}
	for _, rule := range rules {
		if err := t.Register(rule); err != nil {
			return nil, err
		}
	}
	return t, nil
}

// DefaultTable returns a fresh table holding DefaultRules.
func DefaultTable() *Table {
	t, err := NewTable(DefaultRules()...)
	if err != nil {
		panic(err)
	}
	return t
}

// Register adds a rule. Duplicate field names return an error.
func (t *Table) Register(rule Rule) error {
	rule.Field = strings.TrimSpace(rule.Field)
	if err := rule.Validate(); err != nil {
		return err
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if t.rules == nil {
		t.rules = make(map[string]Rule)
	}
	if _, exists := t.rules[rule.Field]; exists {
		return fmt.Errorf("classify: rule %q already registered", rule.Field)
	}
	t.rules[rule.Field] = rule
	return nil
}

// MustRegister panics on registration failure.
func (t *Table) MustRegister(rule Rule) {
	if err := t.Register(rule); err != nil {
		panic(err)
	}
}

// Replace adds or overwrites the rule for its field.
func (t *Table) Replace(rule Rule) error {
	rule.Field = strings.TrimSpace(rule.Field)
	if err := rule.Validate(); err != nil {
		return err
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if t.rules == nil {
		t.rules = make(map[string]Rule)
	}
	t.rules[rule.Field] = rule
	return nil
}

// Rule returns the rule registered for field.
func (t *Table) Rule(field string) (Rule, bool) {
	if t == nil {
		return Rule{}, false
	}
	t.mu.RLock()
	defer t.mu.RUnlock()

	rule, ok := t.rules[field]
	return rule, ok
}

// Names returns the sorted field names with rules.
func (t *Table) Names() []string {
	if t == nil {
		return nil
	}
	t.mu.RLock()
	defer t.mu.RUnlock()

	names := make([]string, 0, len(t.rules))
	for name := range t.rules {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Rules returns the registered rules sorted by field name.
func (t *Table) Rules() []Rule {
	names := t.Names()
	out := make([]Rule, 0, len(names))
	for _, name := range names {
		if rule, ok := t.Rule(name); ok {
			out = append(out, rule)
		}
	}
	return out
}

// Classify returns the status of value for field. A nil value is unset. The
// field's rule, when present, decides the qualitative status; a value outside
// bounds is invalid regardless.
func (t *Table) Classify(field string, value *float64, bounds Bounds) Status {
	if value == nil {
		return StatusUnset
	}
	v := *value

	status := StatusUnset
	if rule, ok := t.Rule(field); ok {
		status = rule.Evaluate(v)
	}
	if !bounds.Contains(v) {
		status = StatusInvalid
	}
	return status
}

// ClassifyInput parses raw and classifies it. Unparsable input is unset.
func (t *Table) ClassifyInput(field, raw string, bounds Bounds) Status {
	value, ok := ParseNumeric(raw)
	if !ok {
		return StatusUnset
	}
	return t.Classify(field, &value, bounds)
}

// MarshalJSON encodes the table as {"rules": [...]} sorted by field.
func (t *Table) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Rules []Rule `json:"rules"`
	}{Rules: t.Rules()})
}

var defaultTable = DefaultTable()

// Classify classifies value against the built-in rules.
func Classify(field string, value *float64, bounds Bounds) Status {
	return defaultTable.Classify(field, value, bounds)
}

// ClassifyInput classifies a raw input value against the built-in rules.
func ClassifyInput(field, raw string, bounds Bounds) Status {
	return defaultTable.ClassifyInput(field, raw, bounds)
}
