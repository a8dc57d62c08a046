package prompt

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/goliatone/go-cardioform/pkg/classify"
	"github.com/goliatone/go-cardioform/pkg/feedback"
	"github.com/goliatone/go-cardioform/pkg/form"
)

const skipOption = "(skip)"

// Session asks for every field of a catalog in order and reports each numeric
// value's status as soon as it is entered.
type Session struct {
	catalog   *form.Catalog
	driver    Driver
	component *feedback.Component
}

// NewSession builds a session. A nil table uses the built-in rules.
func NewSession(catalog *form.Catalog, table *classify.Table, driver Driver) (*Session, error) {
	if catalog == nil {
		return nil, errors.New("prompt: catalog is required")
	}
	if driver == nil {
		return nil, errors.New("prompt: driver is required")
	}
	return &Session{
		catalog:   catalog,
		driver:    driver,
		component: feedback.New(catalog, table),
	}, nil
}

// Component exposes the live field statuses gathered so far.
func (s *Session) Component() *feedback.Component {
	return s.component
}

// Run collects answers keyed by field name. Skipped fields are omitted.
func (s *Session) Run(ctx context.Context) (map[string]string, error) {
	var infoErr error
	off := s.component.On(feedback.EventSubmit, func(change feedback.Change) {
		if err := s.driver.Info(ctx, change.Submit.Label); err != nil && infoErr == nil {
			infoErr = err
		}
	})
	defer off()

	answers := make(map[string]string)
	for _, field := range s.catalog.Fields() {
		var (
			value string
			err   error
		)
		if field.Numeric() {
			value, err = s.askNumber(ctx, field)
		} else {
			value, err = s.askSelect(ctx, field)
		}
		if err != nil {
			return nil, fmt.Errorf("prompt: %s: %w", field.Name, err)
		}
		if value != "" {
			answers[field.Name] = value
		}
	}

	s.component.Dispatch(feedback.Event{Kind: feedback.EventSubmit})
	if infoErr != nil {
		return nil, infoErr
	}
	return answers, nil
}

func (s *Session) askNumber(ctx context.Context, field form.Field) (string, error) {
	message := field.Label
	if field.Unit != "" {
		message = fmt.Sprintf("%s (%s)", field.Label, field.Unit)
	}

	raw, err := s.driver.Input(ctx, InputConfig{
		Message:   message + ":",
		Help:      field.Help,
		Validator: numberValidator(field),
	})
	if err != nil {
		return "", err
	}

	status := s.component.Dispatch(feedback.Event{Kind: feedback.EventBlur, Field: field.Name, Value: raw})
	if status != classify.StatusUnset {
		if err := s.driver.Info(ctx, fmt.Sprintf("  %s: %s", field.Label, status)); err != nil {
			return "", err
		}
	}
	if _, ok := classify.ParseNumeric(raw); !ok {
		return "", nil
	}
	return strings.TrimSpace(raw), nil
}

func (s *Session) askSelect(ctx context.Context, field form.Field) (string, error) {
	options := make([]string, 0, len(field.Options)+1)
	if !field.Required {
		options = append(options, skipOption)
	}
	for _, opt := range field.Options {
		options = append(options, opt.Label)
	}

	idx, err := s.driver.Select(ctx, SelectConfig{
		Message:      field.Label + ":",
		Options:      options,
		DefaultIndex: -1,
		Help:         field.Help,
	})
	if err != nil {
		return "", err
	}
	if !field.Required {
		idx--
	}
	if idx < 0 || idx >= len(field.Options) {
		return "", nil
	}
	return field.Options[idx].Value, nil
}

func numberValidator(field form.Field) func(string) error {
	return func(raw string) error {
		if raw == "" {
			if field.Required {
				return errors.New("a value is required")
			}
			return nil
		}
		if _, ok := classify.ParseNumeric(raw); !ok {
			return errors.New("enter a number")
		}
		return nil
	}
}
