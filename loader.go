package cardioform

import (
	"context"

	"github.com/goliatone/go-cardioform/pkg/classify"
	"github.com/goliatone/go-cardioform/pkg/form"
)

// LoadCatalog builds a field catalog from an OpenAPI document's component
// schema.
func LoadCatalog(ctx context.Context, data []byte, schemaName string) (*form.Catalog, error) {
	return form.LoadCatalog(ctx, data, schemaName)
}

// LoadRules overlays a rules file, or a directory of them, on the built-in
// rules.
func LoadRules(path string) (*classify.Table, error) {
	return classify.LoadFile(path)
}
