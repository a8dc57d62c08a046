// Package template defines the template engine seam renderers depend on.
// Adapters live in sub-packages.
package template
