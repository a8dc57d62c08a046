package vanilla

import (
	"context"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/goliatone/go-cardioform/pkg/classify"
	"github.com/goliatone/go-cardioform/pkg/feedback"
	"github.com/goliatone/go-cardioform/pkg/form"
	"github.com/goliatone/go-cardioform/pkg/render"
	rendertemplate "github.com/goliatone/go-cardioform/pkg/render/template"
	"github.com/goliatone/go-cardioform/pkg/render/template/pongo"
	"github.com/goliatone/go-cardioform/pkg/renderers/vanilla/components"
)

// DefaultAssetPrefix is where the page expects the embedded assets.
const DefaultAssetPrefix = "/assets/"

type Option func(*config)

type config struct {
	templateFS       fs.FS
	templateRenderer rendertemplate.TemplateRenderer
	registry         *components.Registry
	assetPrefix      string
	fieldClass       string
}

// WithTemplatesFS supplies an alternate template bundle via fs.FS.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templateFS = files
	}
}

// WithTemplatesDir loads templates from a directory on disk.
func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		if path == "" {
			return
		}
		cfg.templateFS = os.DirFS(path)
	}
}

// WithTemplateRenderer injects a custom template renderer implementation.
func WithTemplateRenderer(renderer rendertemplate.TemplateRenderer) Option {
	return func(cfg *config) {
		if renderer != nil {
			cfg.templateRenderer = renderer
		}
	}
}

// WithComponentRegistry replaces the default component registry.
func WithComponentRegistry(registry *components.Registry) Option {
	return func(cfg *config) {
		if registry != nil {
			cfg.registry = registry
		}
	}
}

// WithAssetPrefix sets the URL prefix of the stylesheet and script.
func WithAssetPrefix(prefix string) Option {
	return func(cfg *config) {
		prefix = strings.TrimSpace(prefix)
		if prefix == "" {
			return
		}
		if !strings.HasSuffix(prefix, "/") {
			prefix += "/"
		}
		cfg.assetPrefix = prefix
	}
}

// WithFieldClass adds classes to every field wrapper. Reserved cf- classes are
// dropped.
func WithFieldClass(class string) Option {
	return func(cfg *config) {
		cfg.fieldClass = class
	}
}

type Renderer struct {
	templates   rendertemplate.TemplateRenderer
	registry    *components.Registry
	assetPrefix string
	fieldClass  string
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs the vanilla renderer applying any provided options.
func New(options ...Option) (*Renderer, error) {
	cfg := config{
		templateFS:  TemplatesFS(),
		assetPrefix: DefaultAssetPrefix,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	if cfg.templateFS == nil {
		cfg.templateFS = TemplatesFS()
	}
	if cfg.registry == nil {
		cfg.registry = components.NewDefaultRegistry()
	}

	renderer := cfg.templateRenderer
	if renderer == nil {
		engine, err := pongo.New(
			pongo.WithFS(cfg.templateFS),
			pongo.WithExtension(".tmpl"),
		)
		if err != nil {
			return nil, fmt.Errorf("vanilla renderer: configure template renderer: %w", err)
		}
		renderer = engine
	}

	return &Renderer{
		templates:   renderer,
		registry:    cfg.registry,
		assetPrefix: cfg.assetPrefix,
		fieldClass:  cfg.fieldClass,
	}, nil
}

func (r *Renderer) Name() string {
	return "vanilla"
}

func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

func (r *Renderer) Render(ctx context.Context, page render.Page, options render.RenderOptions) ([]byte, error) {
	if r.templates == nil {
		return nil, fmt.Errorf("vanilla renderer: template renderer is nil")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	fields := newComponentRenderer(r.templates, r.registry, partialsFrom(options), r.fieldClass)
	markup := make([]string, 0, len(page.Fields))
	for _, field := range page.Fields {
		html, err := fields.render(r.fieldView(field, page, options), field.Kind, field.Help)
		if err != nil {
			return nil, fmt.Errorf("vanilla renderer: %w", err)
		}
		markup = append(markup, html)
	}

	rules := page.Rules
	if rules == nil {
		rules = classify.DefaultTable()
	}
	rulesJSON, err := json.Marshal(rules)
	if err != nil {
		return nil, fmt.Errorf("vanilla renderer: encode rules: %w", err)
	}

	stylesheets := append([]string{r.assetPrefix + StylesheetName}, fields.stylesheets()...)

	view := map[string]any{
		"title":         page.Title,
		"action":        page.Action,
		"fields":        markup,
		"errors":        render.MergeFormErrors(options.Errors),
		"hidden":        render.SortedHiddenFields(options.HiddenFields),
		"reviewed":      page.Reviewed,
		"results":       r.resultViews(page),
		"factors":       page.Factors,
		"advice":        page.Recommendations,
		"rules_json":    string(rulesJSON),
		"stylesheets":   stylesheets,
		"script":        r.assetPrefix + RuntimeScriptName,
		"style":         themeStyle(options),
		"idle_label":    feedback.DefaultIdleLabel,
		"pending_label": feedback.DefaultPendingLabel,
		"classes": map[string]string{
			"form":     DefaultFormClass,
			"header":   DefaultHeaderClass,
			"fieldset": DefaultFieldsetClass,
			"actions":  DefaultActionsClass,
			"errors":   DefaultErrorsClass,
			"result":   DefaultResultClass,
			"grid":     DefaultGridClass,
		},
	}

	result, err := r.templates.RenderTemplate("templates/page.tmpl", view)
	if err != nil {
		return nil, fmt.Errorf("vanilla renderer: render template: %w", err)
	}
	return []byte(result), nil
}

func (r *Renderer) fieldView(field form.Field, page render.Page, options render.RenderOptions) components.FieldView {
	value := strings.TrimSpace(options.Values[field.Name])
	view := components.FieldView{
		Name:      field.Name,
		ControlID: componentControlID(field.Name),
		Label:     field.Label,
		Value:     value,
		Min:       field.MinAttr(),
		Max:       field.MaxAttr(),
		Step:      field.Step,
		Unit:      field.Unit,
		Required:  field.Required,
	}
	if result, ok := page.Results[field.Name]; ok {
		if view.Value == "" {
			view.Value = result.Raw
		}
		view.Status = string(result.Status)
		view.Class = result.Class
	}
	for _, opt := range field.Options {
		view.Options = append(view.Options, components.Option{
			Value:    opt.Value,
			Label:    opt.Label,
			Selected: opt.Value == view.Value,
		})
	}
	return view
}

type resultView struct {
	Label  string `json:"label"`
	Value  string `json:"value"`
	Unit   string `json:"unit"`
	Status string `json:"status"`
	Class  string `json:"class"`
}

func (r *Renderer) resultViews(page render.Page) []resultView {
	if !page.Reviewed {
		return nil
	}
	var out []resultView
	for _, field := range page.Fields {
		result, ok := page.Results[field.Name]
		if !ok || result.Value == nil {
			continue
		}
		out = append(out, resultView{
			Label:  field.Label,
			Value:  result.Raw,
			Unit:   field.Unit,
			Status: result.Status.String(),
			Class:  result.Class,
		})
	}
	return out
}

func partialsFrom(options render.RenderOptions) map[string]string {
	if options.Theme == nil {
		return nil
	}
	return options.Theme.Partials
}

func themeStyle(options render.RenderOptions) string {
	if options.Theme != nil && len(options.Theme.CSSVars) > 0 {
		return render.CSSVarsStyle(options.Theme.CSSVars)
	}
	return render.CSSVarsStyle(render.DefaultRendererConfig().CSSVars)
}
