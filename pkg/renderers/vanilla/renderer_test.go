package vanilla_test

import (
	"context"
	"io/fs"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/goliatone/go-cardioform/pkg/classify"
	"github.com/goliatone/go-cardioform/pkg/form"
	"github.com/goliatone/go-cardioform/pkg/render"
	"github.com/goliatone/go-cardioform/pkg/renderers/vanilla"
	"github.com/goliatone/go-cardioform/pkg/risk"
)

func newPage(t *testing.T) (render.Page, *form.Catalog) {
	t.Helper()
	catalog, err := form.DefaultCatalog()
	if err != nil {
		t.Fatalf("catalog: %v", err)
	}
	return render.NewPage(catalog, classify.DefaultTable()), catalog
}

func renderPage(t *testing.T, page render.Page, options render.RenderOptions, opts ...vanilla.Option) string {
	t.Helper()
	renderer, err := vanilla.New(opts...)
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	out, err := renderer.Render(context.Background(), page, options)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	return string(out)
}

func assertContains(t *testing.T, html string, fragments ...string) {
	t.Helper()
	for _, fragment := range fragments {
		if !strings.Contains(html, fragment) {
			t.Fatalf("expected output to contain %q\n%s", fragment, html)
		}
	}
}

func TestRenderer_Metadata(t *testing.T) {
	renderer, err := vanilla.New()
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	if renderer.Name() != "vanilla" {
		t.Fatalf("unexpected name %q", renderer.Name())
	}
	if renderer.ContentType() != "text/html; charset=utf-8" {
		t.Fatalf("unexpected content type %q", renderer.ContentType())
	}
}

func TestRenderer_EmptyForm(t *testing.T) {
	page, _ := newPage(t)
	html := renderPage(t, page, render.RenderOptions{})

	assertContains(t, html,
		"<title>Heart Disease Risk Assessment</title>",
		`action="/review"`,
		`id="cf-age"`,
		`min="1"`,
		`max="120"`,
		`data-cf-field="chol"`,
		`step="0.1"`,
		`<select id="cf-sex" name="sex"`,
		`data-cf-rules="{&quot;rules&quot;:`,
		`href="/assets/cardioform.css"`,
		`src="/assets/cardioform.js"`,
		"--status-valid: #27ae60;",
		"Analyze Heart Health",
		"⏳ Analyzing Patient Data...",
	)
	if strings.Contains(html, `class="cf-result"`) {
		t.Fatalf("did not expect a result section before review")
	}
	if strings.Contains(html, `cf-input valid`) {
		t.Fatalf("did not expect a status class on an empty form")
	}
}

func TestRenderer_ReviewedPage(t *testing.T) {
	page, catalog := newPage(t)
	values := map[string]string{
		"age":      "63",
		"trestbps": "145",
		"chol":     "233",
		"thalach":  "150",
		"sex":      "1",
		"cp":       "3",
	}

	page = page.WithResults(catalog.Evaluate(classify.DefaultTable(), values))
	page.Reviewed = true
	page.Factors = risk.Factors(map[string]float64{"age": 63, "trestbps": 145, "chol": 233, "cp": 3})
	page.Recommendations = risk.Recommendations(map[string]float64{"age": 63, "trestbps": 145, "chol": 233, "thalach": 150})

	html := renderPage(t, page, render.RenderOptions{
		Values:       values,
		Errors:       []string{"Oldpeak must be a number"},
		HiddenFields: map[string]string{"_csrf": "tok"},
	})

	assertContains(t, html,
		`value="63"`,
		`class="cf-input valid"`,
		`class="cf-input invalid" data-cf-field="trestbps"`,
		`class="cf-input warning" data-cf-field="chol"`,
		`data-cf-status="warning"`,
		`<option value="1" selected>`,
		"Oldpeak must be a number",
		`id="cf-result"`,
		"Key Risk Factors",
		"cf-impact-high",
		"<h3>Recommendations</h3>",
		`<li class="cf-recommendation">Schedule annual cardiac health screenings</li>`,
		"Print Report",
		"Within the normal range",
		`<input type="hidden" name="_csrf" value="tok">`,
	)
}

func TestRenderer_ThemeOverridesVars(t *testing.T) {
	selector, err := render.NewManifestSelector(render.DefaultThemeManifest())
	if err != nil {
		t.Fatalf("selector: %v", err)
	}
	cfg, err := render.ResolveTheme(selector, "", "contrast")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}

	page, _ := newPage(t)
	html := renderPage(t, page, render.RenderOptions{Theme: cfg}, vanilla.WithAssetPrefix("/static"))
	assertContains(t, html, "--status-valid: #1b7a43;", `href="/static/cardioform.css"`)
}

func TestRenderer_CustomTemplates(t *testing.T) {
	files := fstest.MapFS{
		"templates/page.tmpl":              {Data: []byte("{{ title }}|{% for html in fields %}{{ html|safe }}{% endfor %}")},
		"templates/components/number.tmpl": {Data: []byte("<n {{ field.name }}>")},
		"templates/components/select.tmpl": {Data: []byte("<s {{ field.name }}>")},
	}
	page := render.Page{
		Title:  "Custom",
		Fields: []form.Field{{Name: "age", Label: "Age", Kind: form.KindNumber}},
	}
	html := renderPage(t, page, render.RenderOptions{}, vanilla.WithTemplatesFS(files))
	assertContains(t, html, "Custom|", "<n age>", `data-component="number"`)
}

func TestRenderer_HonoursCancelledContext(t *testing.T) {
	renderer, err := vanilla.New()
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	page, _ := newPage(t)
	if _, err := renderer.Render(ctx, page, render.RenderOptions{}); err == nil {
		t.Fatalf("expected context error")
	}
}

func TestAssetsFS(t *testing.T) {
	css, err := fs.ReadFile(vanilla.AssetsFS(), vanilla.StylesheetName)
	if err != nil {
		t.Fatalf("read stylesheet: %v", err)
	}
	for _, colour := range []string{"#27ae60", "#f39c12", "#e74c3c"} {
		if !strings.Contains(string(css), colour) {
			t.Fatalf("expected stylesheet to contain %s", colour)
		}
	}

	js, err := fs.ReadFile(vanilla.AssetsFS(), vanilla.RuntimeScriptName)
	if err != nil {
		t.Fatalf("read script: %v", err)
	}
	if !strings.Contains(string(js), "data-cf-rules") {
		t.Fatalf("expected runtime script to read the embedded rules")
	}
}
