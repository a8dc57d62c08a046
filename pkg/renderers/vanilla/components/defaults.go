package components

import (
	"bytes"
	"fmt"
	"strings"
)

const (
	templatePrefix = "templates/components/"
)

// NewDefaultRegistry constructs a registry pre-populated with the built-in
// components used by the vanilla renderer.
func NewDefaultRegistry() *Registry {
	registry := New()

	registry.MustRegister(NameNumber, Descriptor{
		Renderer: templateComponentRenderer("forms.number", templatePrefix+"number.tmpl"),
	})
	registry.MustRegister(NameSelect, Descriptor{
		Renderer: templateComponentRenderer("forms.select", templatePrefix+"select.tmpl"),
	})

	return registry
}

func templateComponentRenderer(partialKey, templateName string) Renderer {
	return func(buf *bytes.Buffer, field FieldView, data ComponentData) error {
		if data.Template == nil {
			return fmt.Errorf("components: template renderer not configured for %q", templateName)
		}

		resolvedTemplate := templateName
		if data.Partials != nil {
			if candidate := strings.TrimSpace(data.Partials[partialKey]); candidate != "" {
				resolvedTemplate = candidate
			}
		}

		rendered, err := data.Template.RenderTemplate(resolvedTemplate, map[string]any{
			"field": field,
		})
		if err != nil {
			return fmt.Errorf("components: render template %q: %w", resolvedTemplate, err)
		}
		buf.WriteString(rendered)
		return nil
	}
}
