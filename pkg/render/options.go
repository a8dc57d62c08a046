package render

import (
	theme "github.com/goliatone/go-theme"
)

// RenderOptions describe per-request data that renderers can use to customise
// their output.
type RenderOptions struct {
	// Values pre-populates controls keyed by field name.
	Values map[string]string
	// Errors are form-level messages shown above the fields.
	Errors []string
	// HiddenFields are emitted as hidden inputs, sorted by name.
	HiddenFields map[string]string
	// Theme carries resolved theme tokens and CSS variables. Nil falls back
	// to the built-in palette.
	Theme *theme.RendererConfig
}
