// Package orchestrator wires catalog, rule table, submission review, theme
// resolution and renderer into a single entry point for rendering the intake
// page.
package orchestrator
