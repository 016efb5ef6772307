// internal/notifier/template/registry.go

// Package template maps admissions lifecycle stages to their bilingual,
// multi-channel content bundles.
package template

import (
	"fmt"

	"admissions-notifier/internal/common/errors"
	"admissions-notifier/internal/models"
)

// Bundle is the content and delivery metadata for one stage. All text maps
// are keyed by locale.
type Bundle struct {
	Stage        models.Stage      `json:"stage"`
	Title        map[string]string `json:"title"`
	Body         map[string]string `json:"body"`
	EmailSubject map[string]string `json:"emailSubject"`
	SMSText      map[string]string `json:"smsText"`
	Channels     []models.Channel  `json:"channels"`
	Priority     models.Priority   `json:"priority"`
}

// TitleFor returns the locale's title, falling back to English.
func (b *Bundle) TitleFor(locale string) string { return pick(b.Title, locale) }

// BodyFor returns the locale's body, falling back to English.
func (b *Bundle) BodyFor(locale string) string { return pick(b.Body, locale) }

// EmailSubjectFor returns the locale's email subject, falling back to English.
func (b *Bundle) EmailSubjectFor(locale string) string { return pick(b.EmailSubject, locale) }

// SMSTextFor returns the locale's SMS text, falling back to English.
func (b *Bundle) SMSTextFor(locale string) string { return pick(b.SMSText, locale) }

func pick(m map[string]string, locale string) string {
	if s, ok := m[locale]; ok {
		return s
	}
	return m[models.LocaleEnglish]
}

// Registry resolves a stage to its bundle. It is immutable after
// construction; Resolve has no side effects.
type Registry struct {
	bundles map[models.Stage]*Bundle
}

// NewRegistry builds a registry with the built-in bundle for every stage.
func NewRegistry() *Registry {
	return &Registry{bundles: defaultBundles()}
}

// Resolve returns the bundle for stage. An unregistered stage yields an
// UNKNOWN_STAGE error: stages are a closed set, so this is a programming
// error to be fixed in the registry, not retried.
func (r *Registry) Resolve(stage models.Stage) (*Bundle, error) {
	b, ok := r.bundles[stage]
	if !ok {
		return nil, errors.NewUnknownStageError(string(stage))
	}
	return b, nil
}

// Validate checks the registry invariants: every enumerated stage has exactly
// one bundle, every bundle has a non-empty channel set, and every channel
// belongs to the channel enumeration.
func (r *Registry) Validate() error {
	for _, stage := range models.AllStages {
		b, ok := r.bundles[stage]
		if !ok {
			return fmt.Errorf("stage %s has no bundle", stage)
		}
		if len(b.Channels) == 0 {
			return fmt.Errorf("stage %s has an empty channel set", stage)
		}
		for _, ch := range b.Channels {
			if !models.ValidChannel(ch) {
				return fmt.Errorf("stage %s references unknown channel %q", stage, ch)
			}
		}
	}
	return nil
}
