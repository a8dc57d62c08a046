package components

// Canonical component names used by the vanilla renderer and default registry.
const (
	NameNumber = "number"
	NameSelect = "select"
)
