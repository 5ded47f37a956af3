package pathutil

import (
	"regexp"
	"strings"
)

// pathPatterns defines the list of patterns for dynamic routes.
// Patterns are evaluated in order from most specific to least specific.
// Pre-compiled at initialization to keep per-request cost negligible.
var pathPatterns = []struct {
	pattern  *regexp.Regexp
	template string
}{
	// Article routes
	{regexp.MustCompile(`^/articles/\d+/view$`), "/articles/:id/view"},
	{regexp.MustCompile(`^/articles/\d+/comments$`), "/articles/:id/comments"},
	{regexp.MustCompile(`^/articles/\d+$`), "/articles/:id"},
	{regexp.MustCompile(`^/articles/slug/[^/]+$`), "/articles/slug/:slug"},

	// Category routes
	{regexp.MustCompile(`^/categories/\d+$`), "/categories/:id"},
	{regexp.MustCompile(`^/categories/[^/]+/articles$`), "/categories/:slug/articles"},

	// Editor workspace
	{regexp.MustCompile(`^/editor/articles/\d+/submit$`), "/editor/articles/:id/submit"},
	{regexp.MustCompile(`^/editor/articles/\d+/revise$`), "/editor/articles/:id/revise"},
	{regexp.MustCompile(`^/editor/articles/\d+$`), "/editor/articles/:id"},

	// Admin moderation
	{regexp.MustCompile(`^/admin/articles/\d+/approve$`), "/admin/articles/:id/approve"},
	{regexp.MustCompile(`^/admin/articles/\d+/reject$`), "/admin/articles/:id/reject"},
	{regexp.MustCompile(`^/admin/articles/\d+/hide$`), "/admin/articles/:id/hide"},
	{regexp.MustCompile(`^/admin/articles/\d+/unhide$`), "/admin/articles/:id/unhide"},
	{regexp.MustCompile(`^/admin/articles/\d+/rejections$`), "/admin/articles/:id/rejections"},
	{regexp.MustCompile(`^/admin/articles/\d+$`), "/admin/articles/:id"},
	{regexp.MustCompile(`^/admin/users/\d+/lock$`), "/admin/users/:id/lock"},
	{regexp.MustCompile(`^/admin/users/\d+/unlock$`), "/admin/users/:id/unlock"},
	{regexp.MustCompile(`^/admin/categories/\d+/parent$`), "/admin/categories/:id/parent"},
}

// NormalizePath normalizes dynamic URL paths to prevent metrics label
// cardinality explosion. Paths carrying IDs or slugs collapse to template
// form (/articles/123 becomes /articles/:id); static paths are unchanged.
// Query parameters and trailing slashes are stripped before matching.
func NormalizePath(path string) string {
	if idx := strings.IndexByte(path, '?'); idx != -1 {
		path = path[:idx]
	}
	if len(path) > 1 {
		path = strings.TrimSuffix(path, "/")
	}

	for _, p := range pathPatterns {
		if p.pattern.MatchString(path) {
			return p.template
		}
	}
	return path
}
