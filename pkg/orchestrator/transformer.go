package orchestrator

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/goliatone/go-cardioform/pkg/form"
	"github.com/goliatone/go-cardioform/pkg/render"
)

// Transformer mutates a page before it is rendered. Implementations can relabel
// fields, reword help text or change the page title.
type Transformer interface {
	Transform(ctx context.Context, page *render.Page) error
}

// TransformerFunc adapts plain functions to the Transformer interface.
type TransformerFunc func(ctx context.Context, page *render.Page) error

// Transform executes the wrapped function when non-nil.
func (fn TransformerFunc) Transform(ctx context.Context, page *render.Page) error {
	if fn == nil {
		return nil
	}
	return fn(ctx, page)
}

// JSONPresetTransformer applies declarative overrides loaded from a JSON file:
//
//	{
//	  "title": "Cardiac Intake",
//	  "fields": {
//	    "trestbps": {"label": "Blood Pressure", "help": "Seated, after rest."}
//	  }
//	}
type JSONPresetTransformer struct {
	document jsonTransformDocument
}

type jsonTransformDocument struct {
	Title  string                    `json:"title"`
	Action string                    `json:"action"`
	Fields map[string]jsonFieldPatch `json:"fields"`
}

type jsonFieldPatch struct {
	Label string `json:"label"`
	Help  string `json:"help"`
	Unit  string `json:"unit"`
}

// NewJSONPresetTransformer constructs a transformer from raw JSON bytes.
func NewJSONPresetTransformer(data []byte) (*JSONPresetTransformer, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, errors.New("json preset transformer: document is empty")
	}
	var document jsonTransformDocument
	if err := json.Unmarshal(data, &document); err != nil {
		return nil, fmt.Errorf("json preset transformer: parse document: %w", err)
	}
	return &JSONPresetTransformer{document: document}, nil
}

// NewJSONPresetTransformerFromFS loads a JSON transformer document from the
// provided filesystem path.
func NewJSONPresetTransformerFromFS(fsys fs.FS, path string) (*JSONPresetTransformer, error) {
	if fsys == nil {
		return nil, errors.New("json preset transformer: filesystem is nil")
	}
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("json preset transformer: path is required")
	}
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("json preset transformer: read %s: %w", path, err)
	}
	return NewJSONPresetTransformer(data)
}

// Transform applies the patches onto page. Patching an unknown field is an
// error. Help text is sanitised like catalog descriptions.
func (t *JSONPresetTransformer) Transform(ctx context.Context, page *render.Page) error {
	if page == nil {
		return errors.New("json preset transformer: page is nil")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	if title := strings.TrimSpace(t.document.Title); title != "" {
		page.Title = title
	}
	if action := strings.TrimSpace(t.document.Action); action != "" {
		page.Action = action
	}

	if len(t.document.Fields) == 0 {
		return nil
	}
	fields := make([]form.Field, len(page.Fields))
	copy(fields, page.Fields)

	for name, patch := range t.document.Fields {
		idx := indexOfField(fields, name)
		if idx < 0 {
			return fmt.Errorf("json preset transformer: field %q not found", name)
		}
		applyFieldPatch(&fields[idx], patch)
	}
	page.Fields = fields
	return nil
}

func applyFieldPatch(field *form.Field, patch jsonFieldPatch) {
	if label := strings.TrimSpace(patch.Label); label != "" {
		field.Label = label
	}
	if help := form.SanitizeHelp(patch.Help); help != "" {
		field.Help = help
	}
	if unit := strings.TrimSpace(patch.Unit); unit != "" {
		field.Unit = unit
	}
}

func indexOfField(fields []form.Field, name string) int {
	name = strings.TrimSpace(name)
	for idx := range fields {
		if fields[idx].Name == name {
			return idx
		}
	}
	return -1
}
