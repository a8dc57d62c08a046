package form

import (
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	helpPolicyOnce sync.Once
	helpPolicy     *bluemonday.Policy
)

// SanitizeHelp strips help text down to inline formatting markup.
func SanitizeHelp(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	return strings.TrimSpace(helpSanitizer().Sanitize(trimmed))
}

func helpSanitizer() *bluemonday.Policy {
	helpPolicyOnce.Do(func() {
		policy := bluemonday.StrictPolicy()
		policy.AllowElements("abbr", "em", "strong", "b", "i", "br", "sub", "sup", "code")
		policy.AllowAttrs("title").OnElements("abbr")
		helpPolicy = policy
	})
	return helpPolicy
}
