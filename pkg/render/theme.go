package render

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	theme "github.com/goliatone/go-theme"
)

// Token keys for status colours.
const (
	TokenStatusValid   = "status.valid"
	TokenStatusWarning = "status.warning"
	TokenStatusInvalid = "status.invalid"
	TokenAccent        = "accent"
)

// DefaultThemeName is the built-in theme.
const DefaultThemeName = "cardioform"

// DefaultThemeManifest returns the built-in palette with a "contrast" variant.
func DefaultThemeManifest() *theme.Manifest {
	return &theme.Manifest{
		Name:    DefaultThemeName,
		Version: "1.0.0",
		Tokens: map[string]string{
			TokenStatusValid:   "#27ae60",
			TokenStatusWarning: "#f39c12",
			TokenStatusInvalid: "#e74c3c",
			TokenAccent:        "#27ae60",
		},
		Variants: map[string]theme.Variant{
			"contrast": {
				Tokens: map[string]string{
					TokenStatusValid:   "#1b7a43",
					TokenStatusWarning: "#b36b00",
					TokenStatusInvalid: "#b0281a",
				},
			},
		},
	}
}

// ManifestSelector resolves themes from a fixed set of manifests.
type ManifestSelector struct {
	mu        sync.RWMutex
	manifests map[string]*theme.Manifest
	fallback  string
}

var _ theme.ThemeSelector = (*ManifestSelector)(nil)

// NewManifestSelector registers manifests; the first is the fallback theme.
func NewManifestSelector(manifests ...*theme.Manifest) (*ManifestSelector, error) {
	s := &ManifestSelector{manifests: make(map[string]*theme.Manifest, len(manifests))}
	for _, manifest := range manifests {
		if manifest == nil || strings.TrimSpace(manifest.Name) == "" {
			return nil, errors.New("render: theme manifest name is required")
		}
		if _, exists := s.manifests[manifest.Name]; exists {
			return nil, fmt.Errorf("render: theme %q already registered", manifest.Name)
		}
		s.manifests[manifest.Name] = manifest
		if s.fallback == "" {
			s.fallback = manifest.Name
		}
	}
	return s, nil
}

// Select returns the named theme, or the fallback when name is empty. Unknown
// variants are an error.
func (s *ManifestSelector) Select(name, variant string, _ ...theme.QueryOption) (*theme.Selection, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	name = strings.TrimSpace(name)
	if name == "" {
		name = s.fallback
	}
	manifest, ok := s.manifests[name]
	if !ok {
		return nil, fmt.Errorf("render: theme %q not found", name)
	}
	variant = strings.TrimSpace(variant)
	if variant != "" {
		if _, ok := manifest.Variants[variant]; !ok {
			return nil, fmt.Errorf("render: theme %q has no variant %q", name, variant)
		}
	}
	return &theme.Selection{Theme: name, Variant: variant, Manifest: manifest}, nil
}

// ResolveTheme selects a theme and flattens its tokens into a renderer config
// with CSS variables ("status.valid" becomes "--status-valid").
func ResolveTheme(selector theme.ThemeSelector, name, variant string) (*theme.RendererConfig, error) {
	if selector == nil {
		return nil, errors.New("render: theme selector is required")
	}
	selection, err := selector.Select(name, variant)
	if err != nil {
		return nil, err
	}
	if selection == nil || selection.Manifest == nil {
		return nil, fmt.Errorf("render: theme %q resolved without a manifest", name)
	}

	tokens := make(map[string]string, len(selection.Manifest.Tokens))
	for key, value := range selection.Manifest.Tokens {
		tokens[key] = value
	}
	if v, ok := selection.Manifest.Variants[selection.Variant]; ok {
		for key, value := range v.Tokens {
			tokens[key] = value
		}
	}

	return &theme.RendererConfig{
		Theme:   selection.Theme,
		Variant: selection.Variant,
		Tokens:  tokens,
		CSSVars: cssVars(tokens),
	}, nil
}

// CSSVarsStyle renders CSS variables as a deterministic declaration list.
func CSSVarsStyle(vars map[string]string) string {
	if len(vars) == 0 {
		return ""
	}
	keys := make([]string, 0, len(vars))
	for key := range vars {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, key := range keys {
		b.WriteString(key)
		b.WriteString(": ")
		b.WriteString(vars[key])
		b.WriteString("; ")
	}
	return strings.TrimSpace(b.String())
}

func cssVars(tokens map[string]string) map[string]string {
	if len(tokens) == 0 {
		return nil
	}
	out := make(map[string]string, len(tokens))
	for key, value := range tokens {
		name := strings.NewReplacer(".", "-", "_", "-", " ", "-").Replace(strings.TrimSpace(key))
		if name == "" {
			continue
		}
		out["--"+name] = value
	}
	return out
}

// DefaultRendererConfig is the built-in theme's base variant, resolved without
// a selector.
func DefaultRendererConfig() *theme.RendererConfig {
	manifest := DefaultThemeManifest()
	return &theme.RendererConfig{
		Theme:   manifest.Name,
		Tokens:  manifest.Tokens,
		CSSVars: cssVars(manifest.Tokens),
	}
}
