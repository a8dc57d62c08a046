// Package cardioform is the entry point for embedding the heart-disease intake
// form: it re-exports the classifier and wraps the page orchestrator.
package cardioform

import (
	"context"
	"net/url"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-cardioform/pkg/orchestrator"
	"github.com/goliatone/go-cardioform/pkg/render"
)

// RenderOptions describes per-request overrides that renderers can use to
// prefill values or surface server-side validation errors.
type RenderOptions = render.RenderOptions

// Request aliases orchestrator.Request.
type Request = orchestrator.Request

// NewOrchestrator exposes the orchestrator constructor from the top-level
// module.
func NewOrchestrator(options ...orchestrator.Option) *orchestrator.Orchestrator {
	return orchestrator.New(options...)
}

// GenerateHTML renders the intake form with the named renderer. When values
// are given they prefill the form.
func GenerateHTML(ctx context.Context, values url.Values, rendererName string, options ...orchestrator.Option) ([]byte, error) {
	gen := orchestrator.New(options...)
	return gen.Generate(ctx, orchestrator.Request{
		Values:   values,
		Renderer: rendererName,
	})
}

// ReviewHTML evaluates values as a submission and renders the reviewed page.
// The returned output reports whether the submission was rejected.
func ReviewHTML(ctx context.Context, values url.Values, rendererName string, options ...orchestrator.Option) (orchestrator.Output, error) {
	gen := orchestrator.New(options...)
	return gen.GeneratePage(ctx, orchestrator.Request{
		Values:   values,
		Renderer: rendererName,
		Review:   true,
	})
}

// WithThemeSelector passes a go-theme selector through to the orchestrator so
// the status palette is resolved ahead of rendering.
func WithThemeSelector(selector theme.ThemeSelector, name, variant string) orchestrator.Option {
	return orchestrator.WithThemeSelector(selector, name, variant)
}

// WithDefaultTheme selects a variant of the built-in palette.
func WithDefaultTheme(variant string) orchestrator.Option {
	selector, err := render.NewManifestSelector(render.DefaultThemeManifest())
	if err != nil {
		return nil
	}
	return orchestrator.WithThemeSelector(selector, render.DefaultThemeName, variant)
}
