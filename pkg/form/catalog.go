package form

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/getkin/kin-openapi/openapi3"
)

const (
	extensionUnit   = "x-cardioform-unit"
	extensionStep   = "x-cardioform-step"
	extensionOrder  = "x-cardioform-order"
	extensionLabels = "x-cardioform-labels"
)

// ErrUnknownField is returned when a field name is not part of the catalog.
var ErrUnknownField = errors.New("form: unknown field")

// Catalog is the ordered set of fields making up a form, together with the
// OpenAPI document it was loaded from.
type Catalog struct {
	fields []Field
	index  map[string]int
	doc    *openapi3.T
}

// NewCatalog builds a catalog from explicit fields, keeping their order.
func NewCatalog(fields ...Field) (*Catalog, error) {
	c := &Catalog{index: make(map[string]int, len(fields))}
	for _, field := range fields {
		name := strings.TrimSpace(field.Name)
		if name == "" {
			return nil, errors.New("form: field name is required")
		}
		if _, exists := c.index[name]; exists {
			return nil, fmt.Errorf("form: duplicate field %q", name)
		}
		field.Name = name
		if field.Kind == "" {
			field.Kind = KindNumber
		}
		c.index[name] = len(c.fields)
		c.fields = append(c.fields, field)
	}
	return c, nil
}

// LoadCatalog parses an OpenAPI 3 document and converts the properties of the
// named component schema into fields.
func LoadCatalog(ctx context.Context, data []byte, schemaName string) (*Catalog, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, errors.New("form: document payload is empty")
	}

	loader := openapi3.NewLoader()
	loader.Context = ctx
	doc, err := loader.LoadFromData(data)
	if err != nil {
		return nil, fmt.Errorf("form: load document: %w", err)
	}
	if err := doc.Validate(ctx, openapi3.DisableExamplesValidation()); err != nil {
		return nil, fmt.Errorf("form: validate document: %w", err)
	}

	schema, err := componentSchema(doc, schemaName)
	if err != nil {
		return nil, err
	}

	required := make(map[string]int, len(schema.Required))
	for idx, name := range schema.Required {
		required[name] = idx
	}

	fields := make([]Field, 0, len(schema.Properties))
	for name, ref := range schema.Properties {
		if ref == nil || ref.Value == nil {
			continue
		}
		_, isRequired := required[name]
		field := convertProperty(name, ref.Value, isRequired)
		if field.Order == 0 {
			if idx, ok := required[name]; ok {
				field.Order = idx + 1
			}
		}
		fields = append(fields, field)
	}

	sort.SliceStable(fields, func(i, j int) bool {
		if fields[i].Order != fields[j].Order {
			return fields[i].Order < fields[j].Order
		}
		return fields[i].Name < fields[j].Name
	})

	catalog, err := NewCatalog(fields...)
	if err != nil {
		return nil, err
	}
	catalog.doc = doc
	return catalog, nil
}

var (
	defaultOnce    sync.Once
	defaultCatalog *Catalog
	defaultErr     error
)

// DefaultCatalog returns the intake form catalog built from the embedded
// OpenAPI document. The result is shared and must not be mutated.
func DefaultCatalog() (*Catalog, error) {
	defaultOnce.Do(func() {
		defaultCatalog, defaultErr = LoadCatalog(context.Background(), patientDocument, PatientSchemaName)
	})
	return defaultCatalog, defaultErr
}

// MustDefaultCatalog panics when the embedded document fails to load.
func MustDefaultCatalog() *Catalog {
	catalog, err := DefaultCatalog()
	if err != nil {
		panic(err)
	}
	return catalog
}

// Fields returns a copy of the fields in form order.
func (c *Catalog) Fields() []Field {
	if c == nil {
		return nil
	}
	out := make([]Field, len(c.fields))
	copy(out, c.fields)
	return out
}

// NumericFields returns the free numeric fields in form order.
func (c *Catalog) NumericFields() []Field {
	if c == nil {
		return nil
	}
	out := make([]Field, 0, len(c.fields))
	for _, field := range c.fields {
		if field.Numeric() {
			out = append(out, field)
		}
	}
	return out
}

// Field looks up a field by name.
func (c *Catalog) Field(name string) (Field, error) {
	if c == nil {
		return Field{}, fmt.Errorf("%w: %q", ErrUnknownField, name)
	}
	idx, ok := c.index[strings.TrimSpace(name)]
	if !ok {
		return Field{}, fmt.Errorf("%w: %q", ErrUnknownField, name)
	}
	return c.fields[idx], nil
}

// Version returns the info.version of the source document. Catalogs built
// from explicit fields have no version.
func (c *Catalog) Version() string {
	if c == nil || c.doc == nil || c.doc.Info == nil {
		return ""
	}
	return c.doc.Info.Version
}

// Schema returns a component schema from the source document, if any.
func (c *Catalog) Schema(name string) (*openapi3.Schema, bool) {
	if c == nil || c.doc == nil {
		return nil, false
	}
	schema, err := componentSchema(c.doc, name)
	if err != nil {
		return nil, false
	}
	return schema, true
}

func componentSchema(doc *openapi3.T, name string) (*openapi3.Schema, error) {
	if doc == nil || doc.Components == nil || doc.Components.Schemas == nil {
		return nil, errors.New("form: document has no component schemas")
	}
	ref, ok := doc.Components.Schemas[name]
	if !ok || ref == nil || ref.Value == nil {
		return nil, fmt.Errorf("form: schema %q not found", name)
	}
	return ref.Value, nil
}

func convertProperty(name string, src *openapi3.Schema, required bool) Field {
	field := Field{
		Name:     name,
		Label:    strings.TrimSpace(src.Title),
		Kind:     KindNumber,
		Help:     SanitizeHelp(src.Description),
		Required: required,
	}
	if field.Label == "" {
		field.Label = name
	}
	if src.Min != nil {
		value := *src.Min
		field.Min = &value
	}
	if src.Max != nil {
		value := *src.Max
		field.Max = &value
	}

	if unit, ok := src.Extensions[extensionUnit].(string); ok {
		field.Unit = strings.TrimSpace(unit)
	}
	if step, ok := numberExtension(src.Extensions[extensionStep]); ok {
		field.Step = formatNumber(step)
	}
	if order, ok := numberExtension(src.Extensions[extensionOrder]); ok {
		field.Order = int(order)
	}

	if len(src.Enum) > 0 {
		field.Kind = KindSelect
		labels := stringMapExtension(src.Extensions[extensionLabels])
		for _, raw := range src.Enum {
			value := enumValue(raw)
			label := labels[value]
			if label == "" {
				label = value
			}
			field.Options = append(field.Options, Option{Value: value, Label: label})
		}
	}
	return field
}

func enumValue(raw any) string {
	switch v := raw.(type) {
	case float64:
		return formatNumber(v)
	case int:
		return formatNumber(float64(v))
	case int64:
		return formatNumber(float64(v))
	case string:
		return v
	default:
		return fmt.Sprint(v)
	}
}

func numberExtension(raw any) (float64, bool) {
	switch v := raw.(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	default:
		return 0, false
	}
}

func stringMapExtension(raw any) map[string]string {
	mapped, ok := raw.(map[string]any)
	if !ok || len(mapped) == 0 {
		return nil
	}
	out := make(map[string]string, len(mapped))
	for key, value := range mapped {
		if text, ok := value.(string); ok {
			out[strings.TrimSpace(key)] = strings.TrimSpace(text)
		}
	}
	return out
}
