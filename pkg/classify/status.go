package classify

import (
	"fmt"
	"strings"
)

// Status is the qualitative classification of a field value.
type Status string

const (
	StatusUnset   Status = ""
	StatusValid   Status = "valid"
	StatusWarning Status = "warning"
	StatusInvalid Status = "invalid"
)

// Statuses lists the statuses that carry a visual class, in severity order.
func Statuses() []Status {
	return []Status{StatusValid, StatusWarning, StatusInvalid}
}

// Class returns the CSS class applied to the field. Unset maps to no class.
func (s Status) Class() string {
	return string(s)
}

// String returns the status name, using "unset" for the empty status.
func (s Status) String() string {
	if s == StatusUnset {
		return "unset"
	}
	return string(s)
}

// Known reports whether s is one of the defined statuses.
func (s Status) Known() bool {
	switch s {
	case StatusUnset, StatusValid, StatusWarning, StatusInvalid:
		return true
	default:
		return false
	}
}

// ParseStatus converts a status name into a Status. Both "" and "unset" map to
// StatusUnset.
func ParseStatus(raw string) (Status, error) {
	name := strings.ToLower(strings.TrimSpace(raw))
	if name == "unset" {
		return StatusUnset, nil
	}
	status := Status(name)
	if !status.Known() {
		return StatusUnset, fmt.Errorf("classify: unknown status %q", raw)
	}
	return status, nil
}
