// internal/notifier/factory/factory.go

// Package factory builds immutable notification records from a lifecycle
// stage, a guardian and the event's context.
package factory

import (
	"time"

	"github.com/google/uuid"

	"admissions-notifier/internal/models"
	"admissions-notifier/internal/notifier/render"
	"admissions-notifier/internal/notifier/template"
)

// Config carries the organization constants available to every template.
type Config struct {
	OrganizationName  string
	OrganizationPhone string
	DefaultLocale     string
}

type Factory struct {
	registry *template.Registry
	config   *Config
}

func New(registry *template.Registry, config *Config) *Factory {
	if config.DefaultLocale == "" {
		config.DefaultLocale = models.LocaleEnglish
	}
	return &Factory{registry: registry, config: config}
}

// Create resolves the stage's bundle, merges the variable set and renders a
// notification for one guardian. Pure construction: nothing is dispatched or
// persisted, and every channel starts pending. The guardian's contact fields
// are captured here and never looked up again. An unknown stage propagates
// the registry's UNKNOWN_STAGE error unchanged.
func (f *Factory) Create(stage models.Stage, guardian models.Guardian, admission *models.Admission, contextVars map[string]string, locale string) (*models.Notification, error) {
	bundle, err := f.registry.Resolve(stage)
	if err != nil {
		return nil, err
	}

	locale = f.normalizeLocale(locale)
	vars := f.mergeVars(guardian, admission, contextVars)

	channels := make([]models.Channel, len(bundle.Channels))
	copy(channels, bundle.Channels)

	status := make(map[models.Channel]models.Status, len(channels))
	for _, ch := range channels {
		status[ch] = models.StatusPending
	}

	return &models.Notification{
		ID:             uuid.New().String(),
		RecipientID:    guardian.ID,
		RecipientName:  guardian.Name,
		RecipientEmail: guardian.Email,
		RecipientPhone: guardian.Phone,
		SubjectName:    admission.StudentName,
		ApplicationID:  admission.ApplicationID,
		LeadID:         admission.LeadID,
		Stage:          stage,
		Priority:       bundle.Priority,
		Channels:       channels,
		Status:         status,
		Title:          render.Render(bundle.TitleFor(locale), vars),
		Message:        render.Render(bundle.BodyFor(locale), vars),
		EmailSubject:   render.Render(bundle.EmailSubjectFor(locale), vars),
		SMSText:        render.Render(bundle.SMSTextFor(locale), vars),
		Data:           vars,
		CreatedAt:      time.Now().UTC(),
		Locale:         locale,
	}, nil
}

// mergeVars builds the substitution set: base variables first, then the
// caller's context on top (caller wins on key collision).
func (f *Factory) mergeVars(guardian models.Guardian, admission *models.Admission, contextVars map[string]string) map[string]string {
	vars := map[string]string{
		"guardianName":      guardian.Name,
		"studentName":       admission.StudentName,
		"organizationName":  f.config.OrganizationName,
		"organizationPhone": f.config.OrganizationPhone,
	}
	if admission.ApplicationID != "" {
		vars["applicationId"] = admission.ApplicationID
	}
	if admission.LeadID != "" {
		vars["leadId"] = admission.LeadID
	}
	for k, v := range contextVars {
		vars[k] = v
	}
	return vars
}

func (f *Factory) normalizeLocale(locale string) string {
	switch locale {
	case models.LocaleEnglish, models.LocaleArabic:
		return locale
	}
	return f.config.DefaultLocale
}
