package render

import (
	"context"
)

// Renderer converts a Page into a byte representation (HTML, text, etc.).
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, page Page, options RenderOptions) ([]byte, error)
}
