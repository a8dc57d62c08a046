package orchestrator_test

import (
	"context"
	"errors"
	"net/url"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/goliatone/go-cardioform/pkg/classify"
	"github.com/goliatone/go-cardioform/pkg/form"
	"github.com/goliatone/go-cardioform/pkg/orchestrator"
	"github.com/goliatone/go-cardioform/pkg/render"
	"github.com/goliatone/go-cardioform/pkg/risk"
)

func submission() url.Values {
	return url.Values{
		"age": {"63"}, "sex": {"1"}, "cp": {"3"}, "trestbps": {"145"},
		"chol": {"233"}, "fbs": {"1"}, "restecg": {"0"}, "thalach": {"150"},
		"exang": {"0"}, "oldpeak": {"2.3"}, "slope": {"0"}, "ca": {"0"}, "thal": {"1"},
	}
}

func TestGenerate_EmptyForm(t *testing.T) {
	gen := orchestrator.New()
	if err := gen.Err(); err != nil {
		t.Fatalf("defaults: %v", err)
	}

	out, err := gen.Generate(context.Background(), orchestrator.Request{})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	html := string(out)
	if !strings.Contains(html, `id="cf-thalach"`) {
		t.Fatalf("expected thalach input in output")
	}
	if strings.Contains(html, `id="cf-result"`) {
		t.Fatalf("did not expect result section")
	}
}

func TestGeneratePage_Review(t *testing.T) {
	gen := orchestrator.New()

	out, err := gen.GeneratePage(context.Background(), orchestrator.Request{
		Values: submission(),
		Review: true,
	})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if out.Rejected() {
		t.Fatalf("unexpected problems: %v", out.Submission.Problems)
	}
	if out.ContentType != "text/html; charset=utf-8" {
		t.Fatalf("unexpected content type %q", out.ContentType)
	}
	html := string(out.Body)
	for _, fragment := range []string{`id="cf-result"`, "Chest Pain (Asymptomatic)", `class="cf-input warning" data-cf-field="chol"`, risk.RecommendScreening} {
		if !strings.Contains(html, fragment) {
			t.Fatalf("expected %q in output", fragment)
		}
	}
}

func TestGeneratePage_ReviewWithProblems(t *testing.T) {
	values := submission()
	values.Set("chol", "high")

	out, err := orchestrator.New().GeneratePage(context.Background(), orchestrator.Request{Values: values, Review: true})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if !out.Rejected() {
		t.Fatalf("expected rejected submission")
	}
	html := string(out.Body)
	if !strings.Contains(html, "Cholesterol must be a number") {
		t.Fatalf("expected form error in output")
	}
	if !strings.Contains(html, `value="high"`) {
		t.Fatalf("expected submitted value to be kept")
	}
	if strings.Contains(html, "cf-recommendation") {
		t.Fatalf("did not expect recommendations for a rejected submission")
	}
}

func TestGenerate_ThemeSelector(t *testing.T) {
	selector, err := render.NewManifestSelector(render.DefaultThemeManifest())
	if err != nil {
		t.Fatalf("selector: %v", err)
	}
	gen := orchestrator.New(orchestrator.WithThemeSelector(selector, "", "contrast"))
	if gen.Theme() == nil || gen.Theme().Variant != "contrast" {
		t.Fatalf("expected contrast theme, got %#v", gen.Theme())
	}

	out, err := gen.Generate(context.Background(), orchestrator.Request{})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if !strings.Contains(string(out), "--status-invalid: #b0281a;") {
		t.Fatalf("expected contrast palette in output")
	}

	broken := orchestrator.New(orchestrator.WithThemeSelector(selector, "missing", ""))
	if broken.Err() == nil {
		t.Fatalf("expected theme resolution error")
	}
	if _, err := broken.Generate(context.Background(), orchestrator.Request{}); err == nil {
		t.Fatalf("expected generate to surface initialise error")
	}
}

func TestGenerate_UnknownRenderer(t *testing.T) {
	_, err := orchestrator.New().Generate(context.Background(), orchestrator.Request{Renderer: "preact"})
	if err == nil {
		t.Fatalf("expected unknown renderer error")
	}
}

func TestGenerate_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := orchestrator.New().Generate(ctx, orchestrator.Request{})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestGenerate_CustomCatalogAndRules(t *testing.T) {
	catalog, err := form.NewCatalog(form.Field{Name: "glucose", Label: "Glucose", Kind: form.KindNumber, Max: classify.Float(400)})
	if err != nil {
		t.Fatalf("catalog: %v", err)
	}
	rules, err := classify.NewTable(classify.Rule{
		Field:    "glucose",
		Bands:    []classify.Band{classify.ValidBand(70, 99)},
		Fallback: classify.StatusWarning,
	})
	if err != nil {
		t.Fatalf("rules: %v", err)
	}

	gen := orchestrator.New(orchestrator.WithCatalog(catalog), orchestrator.WithRules(rules))
	out, err := gen.GeneratePage(context.Background(), orchestrator.Request{
		Values: url.Values{"glucose": {"120"}},
		Review: true,
	})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if !strings.Contains(string(out.Body), `class="cf-input warning" data-cf-field="glucose"`) {
		t.Fatalf("expected glucose warning class")
	}
}

func TestJSONPresetTransformer(t *testing.T) {
	files := fstest.MapFS{
		"preset.json": {Data: []byte(`{
			"title": "Cardiac Intake",
			"fields": {"trestbps": {"label": "Blood Pressure", "help": "Seated <script>x</script><em>after rest</em>"}}
		}`)},
	}
	transformer, err := orchestrator.NewJSONPresetTransformerFromFS(files, "preset.json")
	if err != nil {
		t.Fatalf("load preset: %v", err)
	}

	out, err := orchestrator.New(orchestrator.WithPageTransformer(transformer)).Generate(context.Background(), orchestrator.Request{})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	html := string(out)
	for _, fragment := range []string{"<title>Cardiac Intake</title>", ">Blood Pressure", "<em>after rest</em>"} {
		if !strings.Contains(html, fragment) {
			t.Fatalf("expected %q in output", fragment)
		}
	}
	if strings.Contains(html, "<script>x</script>") {
		t.Fatalf("expected help text to be sanitised")
	}
}

func TestJSONPresetTransformer_UnknownField(t *testing.T) {
	transformer, err := orchestrator.NewJSONPresetTransformer([]byte(`{"fields":{"weight":{"label":"Weight"}}}`))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	page := render.NewPage(form.MustDefaultCatalog(), nil)
	if err := transformer.Transform(context.Background(), &page); err == nil {
		t.Fatalf("expected unknown field error")
	}

	if _, err := orchestrator.NewJSONPresetTransformer([]byte("  ")); err == nil {
		t.Fatalf("expected empty document error")
	}
}

func TestTransformerFunc(t *testing.T) {
	gen := orchestrator.New(orchestrator.WithPageTransformer(orchestrator.TransformerFunc(func(_ context.Context, page *render.Page) error {
		page.Title = "Triage"
		return nil
	})))
	out, err := gen.Generate(context.Background(), orchestrator.Request{})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if !strings.Contains(string(out), "<title>Triage</title>") {
		t.Fatalf("expected transformed title")
	}
}
