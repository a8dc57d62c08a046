package classify_test

import (
	"testing"

	"github.com/goliatone/go-cardioform/pkg/classify"
)

func TestClassify_KnownFields(t *testing.T) {
	cases := []struct {
		name   string
		field  string
		value  float64
		bounds classify.Bounds
		want   classify.Status
	}{
		{"age in band", "age", 50, classify.Between(0, 120), classify.StatusValid},
		{"age below band", "age", 10, classify.Between(0, 120), classify.StatusWarning},
		{"age above band", "age", 95, classify.Between(0, 120), classify.StatusWarning},
		{"age band edge", "age", 80, classify.Between(0, 120), classify.StatusValid},
		{"bp warning", "trestbps", 130, classify.Between(0, 300), classify.StatusWarning},
		{"bp invalid", "trestbps", 150, classify.Between(0, 300), classify.StatusInvalid},
		{"bp low invalid", "trestbps", 80, classify.Between(0, 300), classify.StatusInvalid},
		{"bp band edge", "trestbps", 120, classify.Between(0, 300), classify.StatusValid},
		{"bp warning edge", "trestbps", 140, classify.Between(0, 300), classify.StatusWarning},
		{"chol valid", "chol", 190, classify.Between(0, 300), classify.StatusValid},
		{"chol warning", "chol", 220, classify.Between(0, 600), classify.StatusWarning},
		{"chol invalid", "chol", 260, classify.Between(0, 600), classify.StatusInvalid},
		{"hr valid", "thalach", 72, classify.Between(0, 250), classify.StatusValid},
		{"hr warning", "thalach", 150, classify.Between(0, 250), classify.StatusWarning},
		{"hr invalid", "thalach", 190, classify.Between(0, 250), classify.StatusInvalid},
		{"fractional between bands", "chol", 200.5, classify.Between(0, 600), classify.StatusWarning},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := classify.Classify(tc.field, classify.Float(tc.value), tc.bounds)
			if got != tc.want {
				t.Fatalf("Classify(%q, %v) = %s, want %s", tc.field, tc.value, got, tc.want)
			}
		})
	}
}

func TestClassify_HardBoundsOverride(t *testing.T) {
	cases := []struct {
		field  string
		value  float64
		bounds classify.Bounds
	}{
		{"age", 50, classify.Between(60, 120)},
		{"age", 10, classify.Between(18, 120)},
		{"age", 130, classify.Between(1, 120)},
		{"trestbps", 100, classify.Between(110, 200)},
		{"chol", 190, classify.Between(0, 150)},
		{"thalach", 130, classify.Between(140, 220)},
		{"oldpeak", 12, classify.Between(0, 10)},
		{"custom", -1, classify.Bounds{Min: classify.Float(0)}},
	}

	for _, tc := range cases {
		got := classify.Classify(tc.field, classify.Float(tc.value), tc.bounds)
		if got != classify.StatusInvalid {
			t.Fatalf("Classify(%q, %v) = %s, want invalid", tc.field, tc.value, got)
		}
	}
}

func TestClassify_EmptyValueIsUnset(t *testing.T) {
	for _, field := range []string{"age", "trestbps", "chol", "thalach", "oldpeak", ""} {
		if got := classify.Classify(field, nil, classify.Between(0, 10)); got != classify.StatusUnset {
			t.Fatalf("Classify(%q, nil) = %s, want unset", field, got)
		}
		if got := classify.ClassifyInput(field, "   ", classify.Between(0, 10)); got != classify.StatusUnset {
			t.Fatalf("ClassifyInput(%q, blank) = %s, want unset", field, got)
		}
	}
}

func TestClassify_UnrecognisedFieldOnlyChecksBounds(t *testing.T) {
	if got := classify.Classify("oldpeak", classify.Float(2.5), classify.Between(0, 10)); got != classify.StatusUnset {
		t.Fatalf("in-bounds unrecognised field = %s, want unset", got)
	}
	if got := classify.Classify("oldpeak", classify.Float(2.5), classify.Unbounded()); got != classify.StatusUnset {
		t.Fatalf("unbounded unrecognised field = %s, want unset", got)
	}
}

func TestClassify_OpenBoundsNeverOverride(t *testing.T) {
	got := classify.Classify("age", classify.Float(50), classify.Unbounded())
	if got != classify.StatusValid {
		t.Fatalf("got %s, want valid", got)
	}
}

func TestClassifyInput_MalformedIsUnset(t *testing.T) {
	for _, raw := range []string{"abc", "12abc", "NaN", "Inf", "-Inf", "1e999"} {
		if got := classify.ClassifyInput("chol", raw, classify.Between(0, 600)); got != classify.StatusUnset {
			t.Fatalf("ClassifyInput(%q) = %s, want unset", raw, got)
		}
	}
	if got := classify.ClassifyInput("chol", " 250 ", classify.Between(0, 600)); got != classify.StatusInvalid {
		t.Fatalf("ClassifyInput padded = %s, want invalid", got)
	}
}

func TestParseNumeric(t *testing.T) {
	cases := []struct {
		raw    string
		want   float64
		wantOK bool
	}{
		{"42", 42, true},
		{" 3.5 ", 3.5, true},
		{"-1", -1, true},
		{"", 0, false},
		{"abc", 0, false},
		{"NaN", 0, false},
		{"+Inf", 0, false},
		{".5", 0.5, true},
		{"1e3", 1000, true},
		{"0x1p4", 0, false},
		{"1_0", 0, false},
		{"1e400", 0, false},
		{"12abc", 0, false},
	}
	for _, tc := range cases {
		got, ok := classify.ParseNumeric(tc.raw)
		if ok != tc.wantOK || got != tc.want {
			t.Fatalf("ParseNumeric(%q) = (%v, %v), want (%v, %v)", tc.raw, got, ok, tc.want, tc.wantOK)
		}
	}
}

func TestParseBounds(t *testing.T) {
	bounds := classify.ParseBounds("1", "")
	if bounds.Min == nil || *bounds.Min != 1 {
		t.Fatalf("expected min 1, got %+v", bounds.Min)
	}
	if bounds.Max != nil {
		t.Fatalf("expected open max, got %v", *bounds.Max)
	}
	if !classify.ParseBounds("x", "y").IsZero() {
		t.Fatalf("expected malformed attributes to be ignored")
	}
}

func TestStatus_ClassAndParse(t *testing.T) {
	if classify.StatusUnset.Class() != "" {
		t.Fatalf("unset should have no class")
	}
	if classify.StatusWarning.Class() != "warning" {
		t.Fatalf("unexpected warning class %q", classify.StatusWarning.Class())
	}
	if classify.StatusUnset.String() != "unset" {
		t.Fatalf("unexpected unset name %q", classify.StatusUnset.String())
	}

	got, err := classify.ParseStatus(" Invalid ")
	if err != nil || got != classify.StatusInvalid {
		t.Fatalf("ParseStatus = (%s, %v)", got, err)
	}
	if _, err := classify.ParseStatus("critical"); err == nil {
		t.Fatalf("expected error for unknown status")
	}
}
