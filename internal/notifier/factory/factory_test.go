// internal/notifier/factory/factory_test.go
package factory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "admissions-notifier/internal/common/errors"
	"admissions-notifier/internal/models"
	"admissions-notifier/internal/notifier/template"
)

func newTestFactory() *Factory {
	return New(template.NewRegistry(), &Config{
		OrganizationName:  "Al Noor International School",
		OrganizationPhone: "+973 1700 0000",
		DefaultLocale:     models.LocaleEnglish,
	})
}

func testGuardian() models.Guardian {
	return models.Guardian{
		ID:                      "guardian-001",
		Name:                    "Ahmed",
		Email:                   "ahmed@example.com",
		Phone:                   "+97333000001",
		CanReceiveNotifications: true,
		Locale:                  models.LocaleEnglish,
	}
}

func testAdmission() *models.Admission {
	return &models.Admission{
		ApplicationID: "app-001",
		LeadID:        "lead-001",
		StudentName:   "Layla",
		Guardians:     []models.Guardian{testGuardian()},
	}
}

func TestFactory_Create_AcceptanceNotification(t *testing.T) {
	f := newTestFactory()

	n, err := f.Create(models.StageDecisionAccepted, testGuardian(), testAdmission(), map[string]string{
		"grade":              "Grade 6",
		"academicYear":       "2026-2027",
		"enrollmentDeadline": "March 15, 2026",
	}, models.LocaleEnglish)

	require.NoError(t, err)
	require.NotNil(t, n)

	assert.NotEmpty(t, n.ID)
	assert.Equal(t, "guardian-001", n.RecipientID)
	assert.Equal(t, "Ahmed", n.RecipientName)
	assert.Equal(t, "ahmed@example.com", n.RecipientEmail)
	assert.Equal(t, "Layla", n.SubjectName)
	assert.Equal(t, models.StageDecisionAccepted, n.Stage)
	assert.Equal(t, models.PriorityHigh, n.Priority)
	assert.False(t, n.CreatedAt.IsZero())

	assert.Contains(t, n.Title, "Congratulations")
	assert.Contains(t, n.Title, "Layla")
	assert.Contains(t, n.Message, "Ahmed")
	assert.Contains(t, n.Message, "Layla")
	assert.Contains(t, n.Message, "Grade 6")
	assert.Contains(t, n.Message, "2026-2027")
	assert.Contains(t, n.Message, "March 15, 2026")
	assert.Contains(t, n.Message, "+973 1700 0000")
	assert.NotContains(t, n.Message, "{", "no unresolved placeholders")

	assert.ElementsMatch(t, []models.Channel{models.ChannelInApp, models.ChannelEmail, models.ChannelSMS}, n.Channels)
	for _, ch := range n.Channels {
		assert.Equal(t, models.StatusPending, n.Status[ch], "channel %s must start pending", ch)
	}
	assert.Nil(t, n.ReadAt)
	assert.Empty(t, n.SentAt)
}

func TestFactory_Create_UnknownStage(t *testing.T) {
	f := newTestFactory()

	n, err := f.Create(models.Stage("tuition_reminder"), testGuardian(), testAdmission(), nil, models.LocaleEnglish)

	assert.Nil(t, n)
	require.Error(t, err)
	assert.True(t, apperrors.IsUnknownStage(err))
}

func TestFactory_Create_LocaleHandling(t *testing.T) {
	f := newTestFactory()

	t.Run("arabic guardian gets arabic content", func(t *testing.T) {
		n, err := f.Create(models.StageLeadCreated, testGuardian(), testAdmission(), nil, models.LocaleArabic)
		require.NoError(t, err)
		assert.Equal(t, models.LocaleArabic, n.Locale)
		assert.Contains(t, n.Message, "Layla")
	})

	t.Run("unknown locale falls back to default", func(t *testing.T) {
		n, err := f.Create(models.StageLeadCreated, testGuardian(), testAdmission(), nil, "fr")
		require.NoError(t, err)
		assert.Equal(t, models.LocaleEnglish, n.Locale)
	})

	t.Run("empty locale falls back to default", func(t *testing.T) {
		n, err := f.Create(models.StageLeadCreated, testGuardian(), testAdmission(), nil, "")
		require.NoError(t, err)
		assert.Equal(t, models.LocaleEnglish, n.Locale)
	})
}

func TestFactory_Create_ContextOverridesBaseVars(t *testing.T) {
	f := newTestFactory()

	n, err := f.Create(models.StageLeadCreated, testGuardian(), testAdmission(), map[string]string{
		"studentName": "Override Name",
	}, models.LocaleEnglish)

	require.NoError(t, err)
	assert.Contains(t, n.Message, "Override Name")
	assert.NotContains(t, n.Message, "Layla")
	assert.Equal(t, "Layla", n.SubjectName, "subject field stays the admission's value")
}

func TestFactory_Create_ChannelSliceIsolated(t *testing.T) {
	f := newTestFactory()

	a, err := f.Create(models.StageDecisionAccepted, testGuardian(), testAdmission(), nil, models.LocaleEnglish)
	require.NoError(t, err)

	a.Channels[0] = models.Channel("mutated")

	b, err := f.Create(models.StageDecisionAccepted, testGuardian(), testAdmission(), nil, models.LocaleEnglish)
	require.NoError(t, err)
	assert.NotEqual(t, models.Channel("mutated"), b.Channels[0], "bundle channel set must not be shared")
}

func TestFactory_Create_UniqueIDs(t *testing.T) {
	f := newTestFactory()

	a, err := f.Create(models.StageLeadCreated, testGuardian(), testAdmission(), nil, models.LocaleEnglish)
	require.NoError(t, err)
	b, err := f.Create(models.StageLeadCreated, testGuardian(), testAdmission(), nil, models.LocaleEnglish)
	require.NoError(t, err)

	assert.NotEqual(t, a.ID, b.ID)
}
