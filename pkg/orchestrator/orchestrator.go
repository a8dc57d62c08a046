package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-cardioform/pkg/classify"
	"github.com/goliatone/go-cardioform/pkg/form"
	"github.com/goliatone/go-cardioform/pkg/render"
	"github.com/goliatone/go-cardioform/pkg/renderers/vanilla"
	"github.com/goliatone/go-cardioform/pkg/risk"
)

const defaultRendererName = "vanilla"

// Option customises the orchestrator configuration.
type Option func(*Orchestrator)

// WithCatalog replaces the embedded patient catalog.
func WithCatalog(catalog *form.Catalog) Option {
	return func(o *Orchestrator) {
		o.catalog = catalog
	}
}

// WithRules replaces the built-in rule table.
func WithRules(rules *classify.Table) Option {
	return func(o *Orchestrator) {
		o.rules = rules
	}
}

// WithRegistry injects a renderer registry.
func WithRegistry(registry *render.Registry) Option {
	return func(o *Orchestrator) {
		o.registry = registry
	}
}

// WithDefaultRenderer overrides the renderer used when a request omits an
// explicit Renderer field.
func WithDefaultRenderer(name string) Option {
	return func(o *Orchestrator) {
		o.defaultRenderer = name
	}
}

// WithThemeSelector resolves name/variant through selector ahead of every
// render. Requests carrying their own theme config keep it.
func WithThemeSelector(selector theme.ThemeSelector, name, variant string) Option {
	return func(o *Orchestrator) {
		o.selector = selector
		o.themeName = name
		o.themeVariant = variant
	}
}

// WithPageTransformer registers a Transformer that can mutate pages before
// rendering.
func WithPageTransformer(t Transformer) Option {
	return func(o *Orchestrator) {
		o.transformer = t
	}
}

// WithRendererOptions forwards options to the default vanilla renderer. It has
// no effect when a registry is injected.
func WithRendererOptions(options ...vanilla.Option) Option {
	return func(o *Orchestrator) {
		o.vanillaOptions = append(o.vanillaOptions, options...)
	}
}

// Orchestrator renders the intake page, empty or reviewed. Missing
// dependencies are initialised with the built-in implementations.
type Orchestrator struct {
	catalog         *form.Catalog
	rules           *classify.Table
	registry        *render.Registry
	defaultRenderer string
	selector        theme.ThemeSelector
	themeName       string
	themeVariant    string
	transformer     Transformer
	vanillaOptions  []vanilla.Option
	theme           *theme.RendererConfig
	initialiseErr   error
}

// New constructs an Orchestrator applying any provided options.
func New(options ...Option) *Orchestrator {
	o := &Orchestrator{
		defaultRenderer: defaultRendererName,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(o)
	}
	o.applyDefaults()
	return o
}

// Request describes one page render.
type Request struct {
	// Renderer names the renderer to use. Empty falls back to the default.
	Renderer string

	// Values are submitted or prefilled raw values keyed by field name.
	Values url.Values

	// Review evaluates Values as a submission: fields are classified and,
	// when every value is usable, the risk factors are listed.
	Review bool

	// RenderOptions carries per-request extras such as hidden fields.
	RenderOptions render.RenderOptions
}

// Output is a rendered page.
type Output struct {
	Body        []byte
	ContentType string
	// Submission and Results are set for review requests.
	Submission *form.Submission
	Results    []form.FieldResult
}

// Rejected reports whether a reviewed submission had problems.
func (o Output) Rejected() bool {
	return o.Submission != nil && !o.Submission.Valid()
}

// Err returns the error captured while applying defaults, if any.
func (o *Orchestrator) Err() error {
	return o.initialiseErr
}

// Catalog returns the active catalog.
func (o *Orchestrator) Catalog() *form.Catalog {
	return o.catalog
}

// Rules returns the active rule table.
func (o *Orchestrator) Rules() *classify.Table {
	return o.rules
}

// Registry returns the renderer registry.
func (o *Orchestrator) Registry() *render.Registry {
	return o.registry
}

// Theme returns the resolved theme, nil when no selector is configured.
func (o *Orchestrator) Theme() *theme.RendererConfig {
	return o.theme
}

// Generate renders the page and returns the bytes.
func (o *Orchestrator) Generate(ctx context.Context, req Request) ([]byte, error) {
	out, err := o.GeneratePage(ctx, req)
	if err != nil {
		return nil, err
	}
	return out.Body, nil
}

// GeneratePage renders the page and reports the reviewed submission.
func (o *Orchestrator) GeneratePage(ctx context.Context, req Request) (Output, error) {
	if ctx == nil {
		return Output{}, errors.New("orchestrator: context is required")
	}
	if err := ctx.Err(); err != nil {
		return Output{}, err
	}
	if err := o.initialiseErr; err != nil {
		return Output{}, err
	}

	page := render.NewPage(o.catalog, o.rules)
	options := req.RenderOptions
	options.Values = mergeValues(options.Values, req.Values)

	var out Output
	if req.Review {
		sub := form.ParseSubmission(o.catalog, req.Values)
		out.Submission = &sub
		out.Results = o.catalog.Evaluate(o.rules, sub.Raw)
		page = page.WithResults(out.Results)
		if sub.Valid() {
			page.Reviewed = true
			page.Factors = risk.Factors(sub.Numbers)
			page.Recommendations = risk.Recommendations(sub.Numbers)
		} else {
			options.Errors = render.MergeFormErrors(options.Errors, sub.Messages(o.catalog)...)
		}
	}
	if options.Theme == nil {
		options.Theme = o.theme
	}

	if err := o.applyTransformer(ctx, &page); err != nil {
		return Output{}, err
	}

	renderer, err := o.rendererFor(req.Renderer)
	if err != nil {
		return Output{}, err
	}

	body, err := renderer.Render(ctx, page, options)
	if err != nil {
		return Output{}, fmt.Errorf("orchestrator: render output: %w", err)
	}
	out.Body = body
	out.ContentType = renderer.ContentType()
	return out, nil
}

func (o *Orchestrator) rendererFor(name string) (render.Renderer, error) {
	if o.registry == nil {
		return nil, errors.New("orchestrator: renderer registry is nil")
	}

	target := name
	if target == "" {
		target = o.defaultRenderer
	}

	if target != "" {
		renderer, err := o.registry.Get(target)
		if err == nil {
			return renderer, nil
		}
		if name != "" {
			return nil, fmt.Errorf("orchestrator: renderer %q: %w", name, err)
		}
	}

	renderer, err := o.registry.Get("")
	if err != nil {
		return nil, errors.New("orchestrator: no renderers registered")
	}
	return renderer, nil
}

func (o *Orchestrator) applyTransformer(ctx context.Context, page *render.Page) error {
	if o.transformer == nil {
		return nil
	}
	if err := o.transformer.Transform(ctx, page); err != nil {
		return fmt.Errorf("orchestrator: transform page: %w", err)
	}
	return nil
}

func (o *Orchestrator) applyDefaults() {
	if o.catalog == nil {
		catalog, err := form.DefaultCatalog()
		if err != nil {
			o.initialiseErr = fmt.Errorf("orchestrator: default catalog: %w", err)
			return
		}
		o.catalog = catalog
	}
	if o.rules == nil {
		o.rules = classify.DefaultTable()
	}
	if o.registry == nil {
		renderer, err := vanilla.New(o.vanillaOptions...)
		if err != nil {
			o.initialiseErr = fmt.Errorf("orchestrator: default renderer: %w", err)
			return
		}
		registry, err := render.NewRegistry(renderer)
		if err != nil {
			o.initialiseErr = fmt.Errorf("orchestrator: renderer registry: %w", err)
			return
		}
		o.registry = registry
	}
	if o.defaultRenderer == "" {
		o.defaultRenderer = defaultRendererName
	}
	if o.selector != nil {
		cfg, err := render.ResolveTheme(o.selector, o.themeName, o.themeVariant)
		if err != nil {
			o.initialiseErr = fmt.Errorf("orchestrator: resolve theme: %w", err)
			return
		}
		o.theme = cfg
	}
}

// mergeValues prefills from base and overlays the first value of each
// submitted field.
func mergeValues(base map[string]string, values url.Values) map[string]string {
	if len(base) == 0 && len(values) == 0 {
		return nil
	}
	out := make(map[string]string, len(base)+len(values))
	for key, value := range base {
		out[key] = value
	}
	for key := range values {
		out[key] = values.Get(key)
	}
	return out
}
