// internal/notifier/render/render.go

// Package render substitutes named placeholders into template strings.
package render

import "strings"

// Render replaces every occurrence of {name} with vars["name"]. Matching is
// case-sensitive and global. Placeholders with no matching key are left
// verbatim so a missing optional variable degrades gracefully instead of
// failing the whole notification. Values must not contain brace syntax;
// no escaping is performed.
func Render(template string, vars map[string]string) string {
	if len(vars) == 0 || !strings.Contains(template, "{") {
		return template
	}
	result := template
	for k, v := range vars {
		result = strings.ReplaceAll(result, "{"+k+"}", v)
	}
	return result
}
