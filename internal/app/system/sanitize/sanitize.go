// Package sanitize cleans user-supplied text before it is persisted or
// relayed. Contact submissions arrive from an unauthenticated form and are
// later rendered in the admin panel and forwarded to Telegram, so any HTML
// in them is stripped outright.
package sanitize

import (
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	strict     *bluemonday.Policy
	strictOnce sync.Once
)

func strictPolicy() *bluemonday.Policy {
	strictOnce.Do(func() {
		strict = bluemonday.StrictPolicy()
	})
	return strict
}

// Strip removes all HTML elements and attributes from s and trims
// surrounding whitespace. Plain text passes through unchanged.
func Strip(s string) string {
	if s == "" {
		return ""
	}
	return strings.TrimSpace(strictPolicy().Sanitize(s))
}
