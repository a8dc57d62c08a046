package pongo_test

import (
	"bytes"
	"fmt"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/goliatone/go-cardioform/pkg/render/template/pongo"
)

func newEngine(t *testing.T, opts ...pongo.Option) *pongo.Engine {
	t.Helper()

	files := fstest.MapFS{
		"hello.tmpl":      {Data: []byte("Hello {{ name }}!")},
		"use-global.tmpl": {Data: []byte("env={{ settings.env }}")},
		"use-filter.tmpl": {Data: []byte("{{ name|shout_cardio }}")},
		"status.tmpl":     {Data: []byte("{% for f in fields %}{{ f.Name }}={{ f.Status }};{% endfor %}")},
	}

	engine, err := pongo.New(append([]pongo.Option{pongo.WithFS(files)}, opts...)...)
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	return engine
}

func TestEngine_RenderTemplateWritesOutput(t *testing.T) {
	engine := newEngine(t)

	var buf bytes.Buffer
	got, err := engine.RenderTemplate("hello", map[string]any{"name": "Ada"}, &buf)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if got != "Hello Ada!" {
		t.Fatalf("unexpected result %q", got)
	}
	if buf.String() != got {
		t.Fatalf("writer mismatch: %q", buf.String())
	}
}

func TestEngine_RenderTemplateStruct(t *testing.T) {
	engine := newEngine(t)

	type field struct {
		Name   string
		Status string
	}
	data := struct {
		Fields []field `json:"fields"`
	}{Fields: []field{{"age", "valid"}, {"chol", "warning"}}}

	got, err := engine.RenderTemplate("status.tmpl", data)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if got != "age=valid;chol=warning;" {
		t.Fatalf("unexpected result %q", got)
	}
}

func TestEngine_GlobalContext(t *testing.T) {
	engine := newEngine(t, pongo.WithGlobalData(map[string]any{
		"settings": map[string]any{"env": "dev"},
	}))

	got, err := engine.RenderTemplate("use-global", nil)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if got != "env=dev" {
		t.Fatalf("unexpected result %q", got)
	}

	if err := engine.GlobalContext(map[string]any{
		"settings": map[string]any{"env": "staging"},
	}); err != nil {
		t.Fatalf("global context: %v", err)
	}
	got, err = engine.RenderTemplate("use-global", nil)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if got != "env=staging" {
		t.Fatalf("unexpected result %q", got)
	}
}

func TestEngine_RegisterFilter(t *testing.T) {
	engine := newEngine(t)
	err := engine.RegisterFilter("shout_cardio", func(input any, _ any) (any, error) {
		if input == nil {
			return "", nil
		}
		return fmt.Sprintf("%s!", strings.ToUpper(fmt.Sprint(input))), nil
	})
	if err != nil {
		t.Fatalf("register filter: %v", err)
	}

	got, err := engine.RenderTemplate("use-filter", map[string]any{"name": "Ada"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if got != "ADA!" {
		t.Fatalf("unexpected result %q", got)
	}

	if err := engine.RegisterFilter("shout_cardio", func(any, any) (any, error) { return nil, nil }); err == nil {
		t.Fatalf("expected duplicate filter error")
	}
}

func TestEngine_RenderStringTrim(t *testing.T) {
	engine := newEngine(t)

	got, err := engine.RenderString("[{{ value|trim }}]", map[string]any{"value": "  mg/dl "})
	if err != nil {
		t.Fatalf("render string: %v", err)
	}
	if got != "[mg/dl]" {
		t.Fatalf("unexpected result %q", got)
	}
}

func TestNew_RequiresSource(t *testing.T) {
	if _, err := pongo.New(); err == nil {
		t.Fatalf("expected error without base dir or fs")
	}
}

func TestEngine_MissingTemplate(t *testing.T) {
	engine := newEngine(t)
	if _, err := engine.RenderTemplate("missing", nil); err == nil {
		t.Fatalf("expected missing template error")
	}
}
