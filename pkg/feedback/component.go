// Package feedback keeps the live status of a form's fields for one component
// instance. Handlers are registered on the instance and only ever see events
// dispatched to it.
package feedback

import (
	"sort"
	"strings"
	"sync"

	"github.com/goliatone/go-cardioform/pkg/classify"
	"github.com/goliatone/go-cardioform/pkg/form"
)

// EventKind names the interactions a component reacts to.
type EventKind string

const (
	EventInput  EventKind = "input"
	EventBlur   EventKind = "blur"
	EventSubmit EventKind = "submit"
)

// Default submit button labels.
const (
	DefaultIdleLabel    = "Analyze Heart Health"
	DefaultPendingLabel = "⏳ Analyzing Patient Data..."
)

// Event is a single interaction. Field and Value are ignored for submit.
type Event struct {
	Kind  EventKind
	Field string
	Value string
}

// Change is delivered to handlers after an event has been applied.
type Change struct {
	Kind     EventKind
	Field    string
	Previous classify.Status
	Current  classify.Status
	Submit   SubmitState
}

// Handler reacts to a Change.
type Handler func(Change)

// SubmitState mirrors the submit button.
type SubmitState struct {
	Pending  bool
	Disabled bool
	Label    string
}

// Option configures a Component.
type Option func(*Component)

// WithSubmitLabels overrides the idle and pending submit labels.
func WithSubmitLabels(idle, pending string) Option {
	return func(c *Component) {
		if trimmed := strings.TrimSpace(idle); trimmed != "" {
			c.idleLabel = trimmed
		}
		if trimmed := strings.TrimSpace(pending); trimmed != "" {
			c.pendingLabel = trimmed
		}
	}
}

type registration struct {
	id      int
	handler Handler
}

// Component tracks field statuses for one form instance.
type Component struct {
	catalog *form.Catalog
	table   *classify.Table

	idleLabel    string
	pendingLabel string

	mu       sync.Mutex
	statuses map[string]classify.Status
	submit   SubmitState
	handlers map[EventKind][]registration
	nextID   int
}

// New creates a component bound to a catalog and rule table. A nil table uses
// the built-in rules.
func New(catalog *form.Catalog, table *classify.Table, options ...Option) *Component {
	if table == nil {
		table = classify.DefaultTable()
	}
	c := &Component{
		catalog:      catalog,
		table:        table,
		idleLabel:    DefaultIdleLabel,
		pendingLabel: DefaultPendingLabel,
		statuses:     make(map[string]classify.Status),
		handlers:     make(map[EventKind][]registration),
	}
	for _, opt := range options {
		if opt != nil {
			opt(c)
		}
	}
	c.submit = SubmitState{Label: c.idleLabel}
	return c
}

// On registers handler for kind and returns a function that removes it.
func (c *Component) On(kind EventKind, handler Handler) func() {
	if handler == nil {
		return func() {}
	}

	c.mu.Lock()
	c.nextID++
	id := c.nextID
	c.handlers[kind] = append(c.handlers[kind], registration{id: id, handler: handler})
	c.mu.Unlock()

	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		regs := c.handlers[kind]
		for idx, reg := range regs {
			if reg.id == id {
				c.handlers[kind] = append(regs[:idx:idx], regs[idx+1:]...)
				return
			}
		}
	}
}

// Dispatch applies ev and notifies the handlers registered for its kind. It
// returns the field's new status; submit events return StatusUnset.
func (c *Component) Dispatch(ev Event) classify.Status {
	change := Change{Kind: ev.Kind, Field: strings.TrimSpace(ev.Field)}

	c.mu.Lock()
	switch ev.Kind {
	case EventInput, EventBlur:
		change.Previous = c.statuses[change.Field]
		change.Current = c.classify(change.Field, ev.Value)
		if change.Current == classify.StatusUnset {
			delete(c.statuses, change.Field)
		} else {
			c.statuses[change.Field] = change.Current
		}
	case EventSubmit:
		c.submit = SubmitState{Pending: true, Disabled: true, Label: c.pendingLabel}
	default:
		c.mu.Unlock()
		return classify.StatusUnset
	}
	change.Submit = c.submit
	handlers := make([]Handler, 0, len(c.handlers[ev.Kind]))
	for _, reg := range c.handlers[ev.Kind] {
		handlers = append(handlers, reg.handler)
	}
	c.mu.Unlock()

	for _, handler := range handlers {
		handler(change)
	}
	return change.Current
}

func (c *Component) classify(field, raw string) classify.Status {
	bounds := classify.Unbounded()
	if def, err := c.catalog.Field(field); err == nil {
		if !def.Numeric() {
			return classify.StatusUnset
		}
		bounds = def.Bounds()
	}
	return c.table.ClassifyInput(field, raw, bounds)
}

// Status returns the current status of field.
func (c *Component) Status(field string) classify.Status {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.statuses[field]
}

// Statuses returns the fields that currently carry a status.
func (c *Component) Statuses() map[string]classify.Status {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make(map[string]classify.Status, len(c.statuses))
	for field, status := range c.statuses {
		out[field] = status
	}
	return out
}

// Flagged returns the sorted names of fields whose status is warning or
// invalid.
func (c *Component) Flagged() []string {
	var out []string
	for field, status := range c.Statuses() {
		if status == classify.StatusWarning || status == classify.StatusInvalid {
			out = append(out, field)
		}
	}
	sort.Strings(out)
	return out
}

// SubmitState returns the submit button state.
func (c *Component) SubmitState() SubmitState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.submit
}

// Reset clears statuses and the submit state. Handlers stay registered.
func (c *Component) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.statuses = make(map[string]classify.Status)
	c.submit = SubmitState{Label: c.idleLabel}
}
