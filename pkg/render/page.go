package render

import (
	"github.com/goliatone/go-cardioform/pkg/classify"
	"github.com/goliatone/go-cardioform/pkg/form"
	"github.com/goliatone/go-cardioform/pkg/risk"
)

// Page is everything a renderer needs to draw the intake form and, after a
// review, its result.
type Page struct {
	Title  string
	Action string
	Fields []form.Field
	// Results holds the classification of numeric fields keyed by name.
	Results map[string]form.FieldResult
	// Reviewed is set once a submission has been evaluated.
	Reviewed        bool
	Factors         []risk.Factor
	Recommendations []string
	// Rules is the active rule table, embedded so the browser script
	// classifies with the same bands as the server.
	Rules *classify.Table
}

// NewPage builds a page for the catalog's fields.
func NewPage(catalog *form.Catalog, rules *classify.Table) Page {
	return Page{
		Title:  "Heart Disease Risk Assessment",
		Action: "/review",
		Fields: catalog.Fields(),
		Rules:  rules,
	}
}

// WithResults returns a copy of p carrying results indexed by field.
func (p Page) WithResults(results []form.FieldResult) Page {
	indexed := make(map[string]form.FieldResult, len(results))
	for _, result := range results {
		indexed[result.Field] = result
	}
	p.Results = indexed
	return p
}
