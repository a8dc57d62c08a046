// Package classify maps a named numeric form field and its current value to a
// presentational Status. Recognised fields carry a Rule made of ordered,
// non-overlapping Bands; every field is additionally checked against the hard
// Bounds taken from its markup, and a value outside those bounds is always
// StatusInvalid. Empty or unparsable input yields StatusUnset. Nothing in this
// package returns an error for a value: classification degrades silently.
package classify
