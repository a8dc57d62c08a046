package vanilla

// ChromeClass is a typed identifier for semantic chrome CSS classes.
type ChromeClass string

const (
	ClassForm     ChromeClass = "cf-form"
	ClassHeader   ChromeClass = "cf-header"
	ClassFieldset ChromeClass = "cf-fieldset"
	ClassField    ChromeClass = "cf-field"
	ClassActions  ChromeClass = "cf-actions"
	ClassErrors   ChromeClass = "cf-errors"
	ClassResult   ChromeClass = "cf-result"
	ClassGrid     ChromeClass = "cf-grid"
)

// Default*Class values are applied when no override is configured.
const (
	DefaultFormClass     = string(ClassForm)
	DefaultHeaderClass   = string(ClassHeader)
	DefaultFieldsetClass = string(ClassFieldset)
	DefaultActionsClass  = string(ClassActions)
	DefaultErrorsClass   = string(ClassErrors)
	DefaultResultClass   = string(ClassResult)
	DefaultGridClass     = string(ClassGrid)
)
