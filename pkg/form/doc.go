// Package form describes the intake form: the ordered fields, their markup
// bounds, units and options. Catalogs are built from an OpenAPI component
// schema (minimum/maximum become the hard bounds the classifier enforces) and
// can evaluate or parse submitted values against a classify.Table.
package form
