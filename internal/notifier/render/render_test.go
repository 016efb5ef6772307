// internal/notifier/render/render_test.go
package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRender(t *testing.T) {
	tests := []struct {
		name     string
		template string
		vars     map[string]string
		expected string
	}{
		{
			name:     "single placeholder",
			template: "Welcome, {guardianName}!",
			vars:     map[string]string{"guardianName": "Ahmed"},
			expected: "Welcome, Ahmed!",
		},
		{
			name:     "multiple placeholders",
			template: "{studentName} is enrolled for {academicYear}",
			vars:     map[string]string{"studentName": "Layla", "academicYear": "2026-2027"},
			expected: "Layla is enrolled for 2026-2027",
		},
		{
			name:     "repeated placeholder substituted everywhere",
			template: "{name}, yes you, {name}",
			vars:     map[string]string{"name": "Sara"},
			expected: "Sara, yes you, Sara",
		},
		{
			name:     "unknown placeholder left verbatim",
			template: "Hello {guardianName}, deadline is {deadline}",
			vars:     map[string]string{"guardianName": "Ahmed"},
			expected: "Hello Ahmed, deadline is {deadline}",
		},
		{
			name:     "empty value still substitutes",
			template: "Hi {guardianName}.",
			vars:     map[string]string{"guardianName": ""},
			expected: "Hi .",
		},
		{
			name:     "no placeholders",
			template: "Plain text message",
			vars:     map[string]string{"guardianName": "Ahmed"},
			expected: "Plain text message",
		},
		{
			name:     "nil vars",
			template: "Hello {guardianName}",
			vars:     nil,
			expected: "Hello {guardianName}",
		},
		{
			name:     "empty template",
			template: "",
			vars:     map[string]string{"guardianName": "Ahmed"},
			expected: "",
		},
		{
			name:     "arabic text",
			template: "مرحباً {guardianName}",
			vars:     map[string]string{"guardianName": "أحمد"},
			expected: "مرحباً أحمد",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Render(tt.template, tt.vars))
		})
	}
}
