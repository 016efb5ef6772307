// internal/notifier/fanout/fanout_test.go
package fanout

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "admissions-notifier/internal/common/errors"
	"admissions-notifier/internal/common/logger"
	"admissions-notifier/internal/models"
	"admissions-notifier/internal/notifier/channel"
	"admissions-notifier/internal/notifier/factory"
	"admissions-notifier/internal/notifier/store"
	"admissions-notifier/internal/notifier/template"
)

// ==========================
// Test Doubles
// ==========================

// stubDispatcher reports a fixed outcome for its channel.
type stubDispatcher struct {
	channel models.Channel
	fail    bool
	reason  string
}

func (d *stubDispatcher) Channel() models.Channel { return d.channel }

func (d *stubDispatcher) Send(_ context.Context, _ *models.Notification) models.DeliveryOutcome {
	if d.fail {
		return models.DeliveryOutcome{Channel: d.channel, Success: false, Reason: d.reason}
	}
	return models.DeliveryOutcome{Channel: d.channel, Success: true}
}

// failingStore rejects every append.
type failingStore struct {
	store.Store
}

func (s *failingStore) Append(context.Context, *models.Notification) error {
	return errors.New("connection refused")
}

// ==========================
// Test Helper Functions
// ==========================

func allSucceedSet() channel.Set {
	return channel.NewSet(
		&stubDispatcher{channel: models.ChannelInApp},
		&stubDispatcher{channel: models.ChannelEmail},
		&stubDispatcher{channel: models.ChannelSMS},
	)
}

func newTestDispatcher(t *testing.T, channels channel.Set, st store.Store) *Dispatcher {
	t.Helper()
	f := factory.New(template.NewRegistry(), &factory.Config{
		OrganizationName:  "Al Noor International School",
		OrganizationPhone: "+973 1700 0000",
		DefaultLocale:     models.LocaleEnglish,
	})
	return New(f, channels, st, logger.NewTestLogger(t), nil)
}

func testAdmission() *models.Admission {
	return &models.Admission{
		ApplicationID: "app-001",
		LeadID:        "lead-001",
		StudentName:   "Layla",
		Guardians: []models.Guardian{
			{
				ID: "guardian-father", Name: "Ahmed",
				Email: "ahmed@example.com", Phone: "+97333000001",
				CanReceiveNotifications: true, Locale: models.LocaleEnglish,
			},
			{
				ID: "guardian-mother", Name: "Fatima",
				Email: "fatima@example.com", Phone: "+97333000002",
				CanReceiveNotifications: true, Locale: models.LocaleArabic,
			},
			{
				ID: "guardian-optout", Name: "Khalid",
				Email: "khalid@example.com",
				CanReceiveNotifications: false, Locale: models.LocaleEnglish,
			},
		},
	}
}

// ==========================
// Fan-Out Tests
// ==========================

func TestNotifyGuardians_EligibilityFiltering(t *testing.T) {
	st := store.NewMemoryStore()
	d := newTestDispatcher(t, allSucceedSet(), st)

	result, err := d.NotifyGuardians(context.Background(), testAdmission(), models.StageApplicationSubmitted, nil)

	require.NoError(t, err)
	assert.Equal(t, 2, result.Eligible, "opted-out guardian is excluded")
	assert.Equal(t, 2, result.Created)
	assert.Equal(t, 2, result.Appended)
	assert.Equal(t, 0, result.FailedChannels)

	for _, id := range []string{"guardian-father", "guardian-mother"} {
		list, err := st.ListByRecipient(context.Background(), id)
		require.NoError(t, err)
		assert.Len(t, list, 1, "one notification per eligible guardian")
	}
	list, err := st.ListByRecipient(context.Background(), "guardian-optout")
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestNotifyGuardians_PerGuardianLocale(t *testing.T) {
	st := store.NewMemoryStore()
	d := newTestDispatcher(t, allSucceedSet(), st)

	_, err := d.NotifyGuardians(context.Background(), testAdmission(), models.StageApplicationSubmitted, nil)
	require.NoError(t, err)

	father, err := st.ListByRecipient(context.Background(), "guardian-father")
	require.NoError(t, err)
	assert.Equal(t, models.LocaleEnglish, father[0].Locale)
	assert.Contains(t, father[0].Message, "Dear Ahmed")

	mother, err := st.ListByRecipient(context.Background(), "guardian-mother")
	require.NoError(t, err)
	assert.Equal(t, models.LocaleArabic, mother[0].Locale)
	assert.Contains(t, mother[0].Message, "Fatima")
}

func TestNotifyGuardians_ChannelFailureIsolated(t *testing.T) {
	st := store.NewMemoryStore()
	channels := channel.NewSet(
		&stubDispatcher{channel: models.ChannelInApp},
		&stubDispatcher{channel: models.ChannelEmail, fail: true, reason: "smtp unreachable"},
		&stubDispatcher{channel: models.ChannelSMS},
	)
	d := newTestDispatcher(t, channels, st)

	result, err := d.NotifyGuardians(context.Background(), testAdmission(), models.StageApplicationSubmitted, nil)

	require.NoError(t, err, "channel failures never fail the fan-out")
	assert.Equal(t, 2, result.Appended)
	assert.Equal(t, 2, result.FailedChannels, "email failed for both guardians")

	list, err := st.ListByRecipient(context.Background(), "guardian-father")
	require.NoError(t, err)
	require.Len(t, list, 1)
	n := list[0]
	assert.Equal(t, models.StatusSent, n.Status[models.ChannelInApp])
	assert.Equal(t, models.StatusFailed, n.Status[models.ChannelEmail])

	statusKeys := make([]models.Channel, 0, len(n.Status))
	for ch := range n.Status {
		statusKeys = append(statusKeys, ch)
	}
	assert.ElementsMatch(t, n.Channels, statusKeys, "status map keys mirror the channel set")

	count, err := st.UnreadCount(context.Background(), "guardian-father")
	require.NoError(t, err)
	assert.Equal(t, 1, count, "failed email does not affect the unread badge")
}

func TestNotifyGuardians_UnknownStageAborts(t *testing.T) {
	st := store.NewMemoryStore()
	d := newTestDispatcher(t, allSucceedSet(), st)

	result, err := d.NotifyGuardians(context.Background(), testAdmission(), models.Stage("tuition_reminder"), nil)

	require.Error(t, err)
	assert.True(t, apperrors.IsUnknownStage(err))
	assert.Nil(t, result)

	for _, id := range []string{"guardian-father", "guardian-mother"} {
		list, listErr := st.ListByRecipient(context.Background(), id)
		require.NoError(t, listErr)
		assert.Empty(t, list, "nothing is dispatched or persisted on unknown stage")
	}
}

func TestNotifyGuardians_NoEligibleGuardians(t *testing.T) {
	st := store.NewMemoryStore()
	d := newTestDispatcher(t, allSucceedSet(), st)

	admission := testAdmission()
	for i := range admission.Guardians {
		admission.Guardians[i].CanReceiveNotifications = false
	}

	result, err := d.NotifyGuardians(context.Background(), admission, models.StageApplicationSubmitted, nil)

	require.NoError(t, err)
	assert.Equal(t, 0, result.Eligible)
	assert.Equal(t, 0, result.Created)
	assert.Equal(t, 0, result.Appended)
}

func TestNotifyGuardians_AppendFailuresJoined(t *testing.T) {
	st := &failingStore{Store: store.NewMemoryStore()}
	d := newTestDispatcher(t, allSucceedSet(), st)

	result, err := d.NotifyGuardians(context.Background(), testAdmission(), models.StageApplicationSubmitted, nil)

	require.Error(t, err)
	require.NotNil(t, result, "partial result is returned alongside the error")
	assert.Equal(t, 2, result.Created)
	assert.Equal(t, 0, result.Appended)
}

func TestNotifyGuardians_MissingDispatcherMarksFailed(t *testing.T) {
	st := store.NewMemoryStore()
	channels := channel.NewSet(&stubDispatcher{channel: models.ChannelInApp})
	d := newTestDispatcher(t, channels, st)

	result, err := d.NotifyGuardians(context.Background(), testAdmission(), models.StageApplicationSubmitted, nil)

	require.NoError(t, err)
	assert.Equal(t, 2, result.FailedChannels)

	list, err := st.ListByRecipient(context.Background(), "guardian-father")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, models.StatusFailed, list[0].Status[models.ChannelEmail])
	assert.Equal(t, models.StatusSent, list[0].Status[models.ChannelInApp])
}

func TestNotifyGuardians_ConcurrentFanOuts(t *testing.T) {
	// Overlapping fan-outs share nothing but the store; appends from one
	// must never corrupt or drop appends from another.
	st := store.NewMemoryStore()
	d := newTestDispatcher(t, allSucceedSet(), st)

	stages := []models.Stage{
		models.StageLeadCreated,
		models.StageApplicationSubmitted,
		models.StageDocumentsPending,
		models.StageDocumentsComplete,
		models.StageTestScheduled,
		models.StageUnderReview,
	}

	var wg sync.WaitGroup
	for _, stage := range stages {
		wg.Add(1)
		go func(stage models.Stage) {
			defer wg.Done()
			result, err := d.NotifyGuardians(context.Background(), testAdmission(), stage, nil)
			assert.NoError(t, err)
			assert.Equal(t, 2, result.Appended)
			assert.Equal(t, 0, result.FailedChannels)
		}(stage)
	}
	wg.Wait()

	for _, id := range []string{"guardian-father", "guardian-mother"} {
		list, err := st.ListByRecipient(context.Background(), id)
		require.NoError(t, err)
		require.Len(t, list, len(stages), "every fan-out appended exactly once")

		seen := make(map[models.Stage]bool, len(list))
		for _, n := range list {
			seen[n.Stage] = true
			require.Len(t, n.Status, len(n.Channels))
			for _, ch := range n.Channels {
				assert.Equal(t, models.StatusSent, n.Status[ch])
			}
		}
		assert.Len(t, seen, len(stages))

		count, err := st.UnreadCount(context.Background(), id)
		require.NoError(t, err)
		assert.Equal(t, len(stages), count)
	}
}

func TestNotifyGuardians_ContextVarsRendered(t *testing.T) {
	st := store.NewMemoryStore()
	d := newTestDispatcher(t, allSucceedSet(), st)

	result, err := d.NotifyGuardians(context.Background(), testAdmission(), models.StageDecisionAccepted, map[string]string{
		"grade":              "Grade 6",
		"academicYear":       "2026-2027",
		"enrollmentDeadline": "March 15, 2026",
	})

	require.NoError(t, err)
	require.Len(t, result.Notifications, 2)

	list, err := st.ListByRecipient(context.Background(), "guardian-father")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Contains(t, list[0].Title, "Congratulations")
	assert.Contains(t, list[0].Message, "Grade 6")
	assert.Contains(t, list[0].Message, "March 15, 2026")
	assert.Equal(t, models.PriorityHigh, list[0].Priority)
}
