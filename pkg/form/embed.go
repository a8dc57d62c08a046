package form

import (
	_ "embed"
)

//go:embed openapi/patient.yaml
var patientDocument []byte

// PatientSchemaName is the component schema describing the intake form.
const PatientSchemaName = "PatientInput"

// OpenAPIDocument returns a copy of the embedded OpenAPI document that
// describes the intake form and the classification API.
func OpenAPIDocument() []byte {
	out := make([]byte, len(patientDocument))
	copy(out, patientDocument)
	return out
}
