// internal/notifier/store/store.go

// Package store persists notifications per recipient and tracks in-app
// read state.
package store

import (
	"context"

	"admissions-notifier/internal/models"
)

// Store is the persistence contract of the notification engine. Appends are
// atomic with respect to concurrent fan-outs and perform no deduplication:
// idempotence, when needed, is the caller's responsibility keyed by
// notification id. Notifications are never deleted here; retention is an
// external concern.
type Store interface {
	// Append durably records the notification. A failed append means the
	// notification is lost; callers needing stronger guarantees retry
	// around Append themselves.
	Append(ctx context.Context, n *models.Notification) error

	// Get returns one notification by id.
	Get(ctx context.Context, notificationID string) (*models.Notification, error)

	// ListByRecipient returns the recipient's notifications ordered by
	// creation time ascending.
	ListByRecipient(ctx context.Context, recipientID string) ([]*models.Notification, error)

	// MarkRead stamps the read time and flips in_app from sent to read.
	// On an already-read, failed or still-pending notification it is an
	// idempotent no-op.
	MarkRead(ctx context.Context, notificationID string) error

	// MarkAllRead applies MarkRead to every unread notification of the
	// recipient.
	MarkAllRead(ctx context.Context, recipientID string) error

	// UnreadCount counts the recipient's notifications whose in_app
	// channel is sent but not yet read. Pending or failed in-app
	// deliveries never reached the recipient and are not counted.
	UnreadCount(ctx context.Context, recipientID string) (int, error)
}
