package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
	"go.uber.org/zap"

	"github.com/goliatone/go-cardioform/pkg/form"
)

const maxBodyBytes = 64 << 10

// classifyRequest is the decoded ClassifyRequest body. Value is either the raw
// input string or a number.
type classifyRequest struct {
	Field string   `json:"field"`
	Value any      `json:"value"`
	Min   *float64 `json:"min,omitempty"`
	Max   *float64 `json:"max,omitempty"`
}

type classifyResponse struct {
	Field  string   `json:"field"`
	Raw    string   `json:"raw,omitempty"`
	Value  *float64 `json:"value,omitempty"`
	Status string   `json:"status"`
	Class  string   `json:"class,omitempty"`
}

func responseFrom(result form.FieldResult) classifyResponse {
	return classifyResponse{
		Field:  result.Field,
		Raw:    result.Raw,
		Value:  result.Value,
		Status: result.Status.String(),
		Class:  result.Class,
	}
}

// handleClassify classifies a single value. Each explicit bound replaces the
// catalog's bound on that end; unknown fields are otherwise unbounded.
func (s *Server) handleClassify(w http.ResponseWriter, r *http.Request) {
	var body any
	if err := decodeJSON(r, &body); err != nil {
		s.logger.Warn("classify: invalid body", zap.Error(err))
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if s.classifySchema != nil {
		if err := s.classifySchema.VisitJSON(body); err != nil {
			s.logger.Warn("classify: schema violation", zap.Error(err))
			writeError(w, http.StatusBadRequest, "request does not match ClassifyRequest: "+schemaMessage(err))
			return
		}
	}

	req, err := toClassifyRequest(body)
	if err != nil {
		s.logger.Warn("classify: invalid body", zap.Error(err))
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	raw, err := rawValue(req.Value)
	if err != nil {
		s.logger.Warn("classify: invalid value", zap.Error(err))
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	field := form.Field{Name: strings.TrimSpace(req.Field)}
	if known, err := s.catalog.Field(field.Name); err == nil {
		field = known
	}
	if req.Min != nil {
		field.Min = req.Min
	}
	if req.Max != nil {
		field.Max = req.Max
	}

	result := form.EvaluateField(s.rules, field, raw)
	s.observeClassification(result.Field, result.Status)
	writeJSON(w, http.StatusOK, responseFrom(result))
}

// handleEvaluate classifies every numeric catalog field from a JSON object of
// raw values.
func (s *Server) handleEvaluate(w http.ResponseWriter, r *http.Request) {
	var body map[string]any
	if err := decodeJSON(r, &body); err != nil {
		s.logger.Warn("evaluate: invalid body", zap.Error(err))
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	values := make(map[string]string, len(body))
	for name, value := range body {
		raw, err := rawValue(value)
		if err != nil {
			s.logger.Warn("evaluate: invalid value", zap.String("field", name), zap.Error(err))
			writeError(w, http.StatusBadRequest, fmt.Sprintf("field %q: %s", name, err))
			return
		}
		values[name] = raw
	}

	results := s.catalog.Evaluate(s.rules, values)
	out := make([]classifyResponse, 0, len(results))
	for _, result := range results {
		s.observeClassification(result.Field, result.Status)
		out = append(out, responseFrom(result))
	}
	writeJSON(w, http.StatusOK, map[string]any{"fields": out})
}

func (s *Server) handleRules(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.rules)
}

func decodeJSON(r *http.Request, dst any) error {
	decoder := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	if err := decoder.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return errors.New("request body is empty")
		}
		return fmt.Errorf("invalid JSON body: %w", err)
	}
	return nil
}

func toClassifyRequest(body any) (classifyRequest, error) {
	var req classifyRequest
	data, err := json.Marshal(body)
	if err != nil {
		return req, err
	}
	if err := json.Unmarshal(data, &req); err != nil {
		return req, fmt.Errorf("invalid classify request: %w", err)
	}
	if strings.TrimSpace(req.Field) == "" {
		return req, errors.New("field is required")
	}
	return req, nil
}

// rawValue normalises a JSON value into the raw string the classifier parses.
func rawValue(value any) (string, error) {
	switch v := value.(type) {
	case nil:
		return "", nil
	case string:
		return v, nil
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), nil
	case json.Number:
		return v.String(), nil
	default:
		return "", fmt.Errorf("value must be a string or a number, got %T", value)
	}
}

func schemaMessage(err error) string {
	var schemaErr *openapi3.SchemaError
	if errors.As(err, &schemaErr) && schemaErr.Reason != "" {
		if pointer := schemaErr.JSONPointer(); len(pointer) > 0 {
			return strings.Join(pointer, ".") + ": " + schemaErr.Reason
		}
		return schemaErr.Reason
	}
	return err.Error()
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
