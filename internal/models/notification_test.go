// internal/models/notification_test.go
package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pendingNotification() *Notification {
	return &Notification{
		ID:          "n1",
		RecipientID: "g1",
		Channels:    []Channel{ChannelInApp, ChannelEmail},
		Status: map[Channel]Status{
			ChannelInApp: StatusPending,
			ChannelEmail: StatusPending,
		},
	}
}

func TestNotification_ApplyOutcome(t *testing.T) {
	now := time.Now().UTC()

	t.Run("success stamps sent", func(t *testing.T) {
		n := pendingNotification()
		n.ApplyOutcome(DeliveryOutcome{Channel: ChannelEmail, Success: true, At: now})

		assert.Equal(t, StatusSent, n.Status[ChannelEmail])
		assert.Equal(t, now, n.SentAt[ChannelEmail])
		assert.Equal(t, StatusPending, n.Status[ChannelInApp], "sibling channel untouched")
	})

	t.Run("failure is terminal", func(t *testing.T) {
		n := pendingNotification()
		n.ApplyOutcome(DeliveryOutcome{Channel: ChannelEmail, Success: false, Reason: "smtp unreachable"})
		n.ApplyOutcome(DeliveryOutcome{Channel: ChannelEmail, Success: true, At: now})

		assert.Equal(t, StatusFailed, n.Status[ChannelEmail], "failed never flips back")
		assert.Empty(t, n.SentAt)
	})

	t.Run("second outcome ignored", func(t *testing.T) {
		n := pendingNotification()
		n.ApplyOutcome(DeliveryOutcome{Channel: ChannelInApp, Success: true, At: now})
		later := now.Add(time.Hour)
		n.ApplyOutcome(DeliveryOutcome{Channel: ChannelInApp, Success: true, At: later})

		assert.Equal(t, now, n.SentAt[ChannelInApp])
	})
}

func TestNotification_MarkRead(t *testing.T) {
	now := time.Now().UTC()

	t.Run("sent in_app becomes read", func(t *testing.T) {
		n := pendingNotification()
		n.ApplyOutcome(DeliveryOutcome{Channel: ChannelInApp, Success: true, At: now})

		require.True(t, n.Unread())
		assert.True(t, n.MarkRead(now))
		assert.Equal(t, StatusRead, n.Status[ChannelInApp])
		require.NotNil(t, n.ReadAt)
		assert.False(t, n.Unread())
	})

	t.Run("repeat is a no-op", func(t *testing.T) {
		n := pendingNotification()
		n.ApplyOutcome(DeliveryOutcome{Channel: ChannelInApp, Success: true, At: now})
		require.True(t, n.MarkRead(now))

		later := now.Add(time.Hour)
		assert.False(t, n.MarkRead(later))
		assert.Equal(t, now, *n.ReadAt, "first read timestamp kept")
	})

	t.Run("pending or failed in_app never reads", func(t *testing.T) {
		n := pendingNotification()
		assert.False(t, n.MarkRead(now))

		n.ApplyOutcome(DeliveryOutcome{Channel: ChannelInApp, Success: false})
		assert.False(t, n.MarkRead(now))
		assert.Nil(t, n.ReadAt)
	})

	t.Run("no in_app channel", func(t *testing.T) {
		n := &Notification{
			Channels: []Channel{ChannelEmail},
			Status:   map[Channel]Status{ChannelEmail: StatusSent},
		}
		assert.False(t, n.MarkRead(now))
		assert.False(t, n.Unread())
	})
}

func TestNotification_Clone(t *testing.T) {
	now := time.Now().UTC()
	n := pendingNotification()
	n.Data = map[string]string{"grade": "Grade 6"}
	n.ApplyOutcome(DeliveryOutcome{Channel: ChannelInApp, Success: true, At: now})

	c := n.Clone()
	c.Status[ChannelInApp] = StatusRead
	c.Channels[0] = Channel("mutated")
	c.Data["grade"] = "Grade 7"
	c.SentAt[ChannelInApp] = now.Add(time.Hour)

	assert.Equal(t, StatusSent, n.Status[ChannelInApp])
	assert.Equal(t, ChannelInApp, n.Channels[0])
	assert.Equal(t, "Grade 6", n.Data["grade"])
	assert.Equal(t, now, n.SentAt[ChannelInApp])
}

func TestAdmission_EligibleGuardians(t *testing.T) {
	a := &Admission{
		StudentName: "Layla",
		Guardians: []Guardian{
			{ID: "g1", CanReceiveNotifications: true},
			{ID: "g2", CanReceiveNotifications: false},
			{ID: "g3", CanReceiveNotifications: true},
		},
	}

	eligible := a.EligibleGuardians()
	require.Len(t, eligible, 2)
	assert.Equal(t, "g1", eligible[0].ID)
	assert.Equal(t, "g3", eligible[1].ID)

	assert.Empty(t, (&Admission{}).EligibleGuardians())
}
