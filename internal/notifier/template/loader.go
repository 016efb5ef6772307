// internal/notifier/template/loader.go
package template

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"admissions-notifier/internal/common/errors"
	"admissions-notifier/internal/models"
)

// overrideSchema constrains the override document: known stages, known
// channels, locale-keyed text maps. Overrides patch the built-in bundles
// field by field; they cannot invent stages.
const overrideSchema = `{
	"type": "object",
	"required": ["bundles"],
	"properties": {
		"version": {"type": "string"},
		"bundles": {
			"type": "array",
			"items": {
				"type": "object",
				"required": ["stage"],
				"properties": {
					"stage": {"type": "string"},
					"title": {"type": "object", "additionalProperties": {"type": "string"}},
					"body": {"type": "object", "additionalProperties": {"type": "string"}},
					"emailSubject": {"type": "object", "additionalProperties": {"type": "string"}},
					"smsText": {"type": "object", "additionalProperties": {"type": "string"}},
					"channels": {
						"type": "array",
						"minItems": 1,
						"items": {"type": "string", "enum": ["in_app", "email", "sms"]}
					},
					"priority": {"type": "string", "enum": ["low", "medium", "high"]}
				}
			}
		}
	}
}`

type overrideFile struct {
	Version string            `json:"version"`
	Bundles []*bundleOverride `json:"bundles"`
}

type bundleOverride struct {
	Stage        models.Stage      `json:"stage"`
	Title        map[string]string `json:"title,omitempty"`
	Body         map[string]string `json:"body,omitempty"`
	EmailSubject map[string]string `json:"emailSubject,omitempty"`
	SMSText      map[string]string `json:"smsText,omitempty"`
	Channels     []models.Channel  `json:"channels,omitempty"`
	Priority     models.Priority   `json:"priority,omitempty"`
}

// LoadOverrides applies a JSON override file on top of the registry's
// built-in bundles. The document is schema-validated first; any violation
// fails with TEMPLATE_VALIDATION_FAILED so a bad deploy is caught at
// startup rather than at fan-out time.
func (r *Registry) LoadOverrides(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read template overrides: %w", err)
	}

	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(overrideSchema),
		gojsonschema.NewBytesLoader(data),
	)
	if err != nil {
		return errors.NewTemplateValidationFailedError(err.Error())
	}
	if !result.Valid() {
		msgs := make([]string, len(result.Errors()))
		for i, desc := range result.Errors() {
			msgs[i] = desc.String()
		}
		return errors.NewTemplateValidationFailedError(strings.Join(msgs, "; "))
	}

	var file overrideFile
	if err := json.Unmarshal(data, &file); err != nil {
		return errors.NewTemplateValidationFailedError(err.Error())
	}

	for _, ov := range file.Bundles {
		base, ok := r.bundles[ov.Stage]
		if !ok {
			return errors.NewUnknownStageError(string(ov.Stage))
		}
		applyOverride(base, ov)
	}

	return r.Validate()
}

func applyOverride(base *Bundle, ov *bundleOverride) {
	mergeText(base.Title, ov.Title)
	mergeText(base.Body, ov.Body)
	mergeText(base.EmailSubject, ov.EmailSubject)
	mergeText(base.SMSText, ov.SMSText)
	if len(ov.Channels) > 0 {
		base.Channels = ov.Channels
	}
	if ov.Priority != "" {
		base.Priority = ov.Priority
	}
}

func mergeText(dst, src map[string]string) {
	for locale, text := range src {
		dst[locale] = text
	}
}
