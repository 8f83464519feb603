package websocket

import (
	"net/http"
	"strings"

	"github.com/samber/lo"
)

// NewCheckOrigin accepts requests without an Origin header (non-browser
// clients), origins listed in allowed, or anything when allowed holds "*".
func NewCheckOrigin(allowed []string) func(r *http.Request) bool {
	normalized := lo.Map(allowed, func(o string, _ int) string {
		return strings.TrimRight(strings.ToLower(strings.TrimSpace(o)), "/")
	})
	wildcard := lo.Contains(normalized, "*")

	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" || wildcard {
			return true
		}
		return lo.Contains(normalized, strings.TrimRight(strings.ToLower(origin), "/"))
	}
}
