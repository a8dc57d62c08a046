// Package risk lists the submitted values that contribute most to cardiac
// risk. It works from the inputs alone and makes no prediction.
package risk

import (
	"fmt"
	"strconv"
)

// Impact grades how strongly a factor contributes.
type Impact string

const (
	ImpactHigh   Impact = "high"
	ImpactMedium Impact = "medium"
)

// MaxFactors caps the number of factors reported.
const MaxFactors = 5

// Factor is one contributing value.
type Factor struct {
	Name   string `json:"factor"`
	Impact Impact `json:"impact"`
	Value  string `json:"value"`
}

// Asymptomatic is the chest pain type code with the highest weight.
const Asymptomatic = 3

// Factors derives contributing factors from submitted values keyed by field
// name. Missing fields contribute nothing.
func Factors(values map[string]float64) []Factor {
	var out []Factor

	if age, ok := values["age"]; ok && age > 55 {
		out = append(out, Factor{Name: "Age", Impact: ImpactHigh, Value: fmt.Sprintf("%s years", format(age))})
	}
	if chol, ok := values["chol"]; ok {
		switch {
		case chol > 240:
			out = append(out, Factor{Name: "Cholesterol", Impact: ImpactHigh, Value: fmt.Sprintf("%s mg/dl", format(chol))})
		case chol > 200:
			out = append(out, Factor{Name: "Cholesterol", Impact: ImpactMedium, Value: fmt.Sprintf("%s mg/dl", format(chol))})
		}
	}
	if bp, ok := values["trestbps"]; ok {
		switch {
		case bp > 140:
			out = append(out, Factor{Name: "Blood Pressure", Impact: ImpactHigh, Value: fmt.Sprintf("%s mm Hg", format(bp))})
		case bp > 120:
			out = append(out, Factor{Name: "Blood Pressure", Impact: ImpactMedium, Value: fmt.Sprintf("%s mm Hg", format(bp))})
		}
	}
	if cp, ok := values["cp"]; ok && cp == Asymptomatic {
		out = append(out, Factor{Name: "Chest Pain (Asymptomatic)", Impact: ImpactHigh, Value: "Present"})
	}

	if len(out) > MaxFactors {
		out = out[:MaxFactors]
	}
	return out
}

func format(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
