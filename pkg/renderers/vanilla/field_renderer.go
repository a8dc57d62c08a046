package vanilla

import (
	"bytes"
	"fmt"
	"html"
	"slices"
	"strings"

	"github.com/goliatone/go-cardioform/pkg/form"
	"github.com/goliatone/go-cardioform/pkg/render/template"
	"github.com/goliatone/go-cardioform/pkg/renderers/vanilla/components"
)

type componentRenderer struct {
	templates  template.TemplateRenderer
	registry   *components.Registry
	partials   map[string]string
	fieldClass string

	usedComponents map[string]struct{}
}

func newComponentRenderer(templates template.TemplateRenderer, registry *components.Registry, partials map[string]string, fieldClass string) *componentRenderer {
	if registry == nil {
		registry = components.NewDefaultRegistry()
	}
	return &componentRenderer{
		templates:      templates,
		registry:       registry,
		partials:       cloneStringMap(partials),
		fieldClass:     sanitizeClassList(fieldClass),
		usedComponents: make(map[string]struct{}),
	}
}

func (r *componentRenderer) render(view components.FieldView, kind form.Kind, help string) (string, error) {
	componentName := resolveComponentName(kind)

	descriptor, ok := r.registry.Descriptor(componentName)
	if !ok {
		return "", fmt.Errorf("component %q not registered for field %q", componentName, view.Name)
	}

	data := components.ComponentData{
		Template: r.templates,
		Partials: r.partials,
	}

	var control bytes.Buffer
	if err := descriptor.Renderer(&control, view, data); err != nil {
		return "", fmt.Errorf("render component %q for field %q: %w", componentName, view.Name, err)
	}

	r.usedComponents[componentName] = struct{}{}

	return r.buildFieldMarkup(view, componentName, control.String(), help), nil
}

func (r *componentRenderer) stylesheets() []string {
	if len(r.usedComponents) == 0 {
		return nil
	}
	names := make([]string, 0, len(r.usedComponents))
	for name := range r.usedComponents {
		names = append(names, name)
	}
	slices.Sort(names)
	return r.registry.Stylesheets(names)
}

func resolveComponentName(kind form.Kind) string {
	switch kind {
	case form.KindSelect:
		return components.NameSelect
	default:
		return components.NameNumber
	}
}

// buildFieldMarkup wraps the control with its label, help text and the status
// feedback line. help has already been sanitised.
func (r *componentRenderer) buildFieldMarkup(view components.FieldView, componentName, control, help string) string {
	var builder strings.Builder
	builder.Grow(len(control) + 256)

	builder.WriteString(`<div class="`)
	builder.WriteString(string(ClassField))
	if r.fieldClass != "" {
		builder.WriteByte(' ')
		builder.WriteString(html.EscapeString(r.fieldClass))
	}
	builder.WriteString(`" data-component="`)
	builder.WriteString(html.EscapeString(componentName))
	builder.WriteString(`">` + "\n")

	if label := strings.TrimSpace(view.Label); label != "" {
		builder.WriteString(`    <label for="`)
		builder.WriteString(html.EscapeString(view.ControlID))
		builder.WriteString(`">`)
		builder.WriteString(html.EscapeString(label))
		if view.Unit != "" {
			builder.WriteString(` <span class="cf-unit">(`)
			builder.WriteString(html.EscapeString(view.Unit))
			builder.WriteString(`)</span>`)
		}
		if view.Required {
			builder.WriteString(` *`)
		}
		builder.WriteString("</label>\n")
	}

	for _, line := range strings.Split(control, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		builder.WriteString("    ")
		builder.WriteString(line)
		builder.WriteByte('\n')
	}

	if help = strings.TrimSpace(help); help != "" {
		builder.WriteString(`    <small class="cf-help">`)
		builder.WriteString(help)
		builder.WriteString("</small>\n")
	}

	if componentName == components.NameNumber {
		builder.WriteString(`    <small class="cf-feedback" id="`)
		builder.WriteString(html.EscapeString(componentFeedbackID(view.Name)))
		builder.WriteString(`" aria-live="polite">`)
		builder.WriteString(html.EscapeString(feedbackText(view.Status)))
		builder.WriteString("</small>\n")
	}

	builder.WriteString("</div>\n")
	return builder.String()
}

func feedbackText(status string) string {
	switch status {
	case "valid":
		return "Within the normal range"
	case "warning":
		return "Outside the normal range"
	case "invalid":
		return "Out of range"
	default:
		return ""
	}
}
