package vanilla

import "strings"

func componentControlID(name string) string {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return ""
	}
	return "cf-" + trimmed
}

func componentFeedbackID(name string) string {
	controlID := componentControlID(name)
	if controlID == "" {
		return ""
	}
	return controlID + "-feedback"
}

// sanitizeClassList drops reserved cf- classes so callers cannot collide with
// the status and chrome classes the runtime script toggles.
func sanitizeClassList(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return ""
	}
	tokens := strings.Fields(value)
	keep := make([]string, 0, len(tokens))
	for _, token := range tokens {
		if strings.HasPrefix(token, "cf-") {
			continue
		}
		keep = append(keep, token)
	}
	return strings.Join(keep, " ")
}

func cloneStringMap(src map[string]string) map[string]string {
	if len(src) == 0 {
		return nil
	}
	out := make(map[string]string, len(src))
	for key, value := range src {
		out[key] = value
	}
	return out
}
