// internal/notifier/store/postgres.go
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"admissions-notifier/internal/common/errors"
	"admissions-notifier/internal/models"
)

// PostgresStore is the durable Store implementation. Per-channel maps
// (channels, status, sent-at, data bag) are stored as jsonb; the read
// transition is enforced with a conditional UPDATE so concurrent callers
// cannot regress a terminal state.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

const createTableStmt = `
CREATE TABLE IF NOT EXISTS notifications (
	id              TEXT PRIMARY KEY,
	recipient_id    TEXT NOT NULL,
	recipient_name  TEXT NOT NULL,
	recipient_email TEXT,
	recipient_phone TEXT,
	subject_name    TEXT NOT NULL,
	application_id  TEXT,
	lead_id         TEXT,
	stage           TEXT NOT NULL,
	priority        TEXT NOT NULL,
	channels        JSONB NOT NULL,
	status          JSONB NOT NULL,
	title           TEXT NOT NULL,
	message         TEXT NOT NULL,
	email_subject   TEXT,
	sms_text        TEXT,
	data            JSONB,
	created_at      TIMESTAMPTZ NOT NULL,
	sent_at         JSONB,
	read_at         TIMESTAMPTZ,
	locale          TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_notifications_recipient
	ON notifications (recipient_id, created_at);`

// EnsureSchema creates the notifications table when it does not exist yet.
func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, createTableStmt); err != nil {
		return errors.NewDatabaseConnectionFailedError(err)
	}
	return nil
}

const appendStmt = `
INSERT INTO notifications (
	id, recipient_id, recipient_name, recipient_email, recipient_phone,
	subject_name, application_id, lead_id, stage, priority,
	channels, status, title, message, email_subject, sms_text,
	data, created_at, sent_at, read_at, locale
) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20,$21)`

func (s *PostgresStore) Append(ctx context.Context, n *models.Notification) error {
	channels, err := json.Marshal(n.Channels)
	if err != nil {
		return errors.NewStoreAppendFailedError(n.ID, err)
	}
	status, err := json.Marshal(n.Status)
	if err != nil {
		return errors.NewStoreAppendFailedError(n.ID, err)
	}
	data, err := json.Marshal(n.Data)
	if err != nil {
		return errors.NewStoreAppendFailedError(n.ID, err)
	}
	sentAt, err := json.Marshal(n.SentAt)
	if err != nil {
		return errors.NewStoreAppendFailedError(n.ID, err)
	}

	var readAt sql.NullTime
	if n.ReadAt != nil {
		readAt = sql.NullTime{Time: *n.ReadAt, Valid: true}
	}

	_, err = s.db.ExecContext(ctx, appendStmt,
		n.ID, n.RecipientID, n.RecipientName, nullStr(n.RecipientEmail), nullStr(n.RecipientPhone),
		n.SubjectName, nullStr(n.ApplicationID), nullStr(n.LeadID), string(n.Stage), string(n.Priority),
		channels, status, n.Title, n.Message, nullStr(n.EmailSubject), nullStr(n.SMSText),
		data, n.CreatedAt, sentAt, readAt, n.Locale,
	)
	if err != nil {
		return errors.NewStoreAppendFailedError(n.ID, err)
	}
	return nil
}

const selectCols = `
	id, recipient_id, recipient_name, recipient_email, recipient_phone,
	subject_name, application_id, lead_id, stage, priority,
	channels, status, title, message, email_subject, sms_text,
	data, created_at, sent_at, read_at, locale`

func (s *PostgresStore) Get(ctx context.Context, notificationID string) (*models.Notification, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT`+selectCols+` FROM notifications WHERE id = $1`, notificationID)

	n, err := scanNotification(row)
	if err == sql.ErrNoRows {
		return nil, errors.NewNotificationNotFoundError(notificationID)
	}
	if err != nil {
		return nil, errors.NewStoreQueryFailedError("get", err)
	}
	return n, nil
}

func (s *PostgresStore) ListByRecipient(ctx context.Context, recipientID string) ([]*models.Notification, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT`+selectCols+` FROM notifications WHERE recipient_id = $1 ORDER BY created_at ASC`,
		recipientID)
	if err != nil {
		return nil, errors.NewStoreQueryFailedError("listByRecipient", err)
	}
	defer rows.Close()

	var out []*models.Notification
	for rows.Next() {
		n, err := scanNotification(rows)
		if err != nil {
			return nil, errors.NewStoreQueryFailedError("listByRecipient", err)
		}
		out = append(out, n)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewStoreQueryFailedError("listByRecipient", err)
	}
	return out, nil
}

// MarkRead flips in_app from sent to read. The WHERE clause makes the
// transition conditional, so repeats and not-yet-sent notifications fall
// through to the existence check and become no-ops.
func (s *PostgresStore) MarkRead(ctx context.Context, notificationID string) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE notifications
		 SET status = jsonb_set(status, '{in_app}', '"read"'), read_at = $2
		 WHERE id = $1 AND status->>'in_app' = 'sent'`,
		notificationID, time.Now().UTC())
	if err != nil {
		return errors.NewStoreQueryFailedError("markRead", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return errors.NewStoreQueryFailedError("markRead", err)
	}
	if affected > 0 {
		return nil
	}

	var exists bool
	err = s.db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM notifications WHERE id = $1)`, notificationID).Scan(&exists)
	if err != nil {
		return errors.NewStoreQueryFailedError("markRead", err)
	}
	if !exists {
		return errors.NewNotificationNotFoundError(notificationID)
	}
	return nil
}

func (s *PostgresStore) MarkAllRead(ctx context.Context, recipientID string) error {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id FROM notifications WHERE recipient_id = $1 AND status->>'in_app' = 'sent'`,
		recipientID)
	if err != nil {
		return errors.NewStoreQueryFailedError("markAllRead", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return errors.NewStoreQueryFailedError("markAllRead", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return errors.NewStoreQueryFailedError("markAllRead", err)
	}

	for _, id := range ids {
		if err := s.MarkRead(ctx, id); err != nil {
			return err
		}
	}
	return nil
}

func (s *PostgresStore) UnreadCount(ctx context.Context, recipientID string) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM notifications WHERE recipient_id = $1 AND status->>'in_app' = 'sent'`,
		recipientID).Scan(&count)
	if err != nil {
		return 0, errors.NewStoreQueryFailedError("unreadCount", err)
	}
	return count, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanNotification(row rowScanner) (*models.Notification, error) {
	var (
		n                              models.Notification
		email, phone, appID, leadID    sql.NullString
		emailSubject, smsText          sql.NullString
		channels, status, data, sentAt []byte
		readAt                         sql.NullTime
		stage, priority                string
	)

	err := row.Scan(
		&n.ID, &n.RecipientID, &n.RecipientName, &email, &phone,
		&n.SubjectName, &appID, &leadID, &stage, &priority,
		&channels, &status, &n.Title, &n.Message, &emailSubject, &smsText,
		&data, &n.CreatedAt, &sentAt, &readAt, &n.Locale,
	)
	if err != nil {
		return nil, err
	}

	n.RecipientEmail = email.String
	n.RecipientPhone = phone.String
	n.ApplicationID = appID.String
	n.LeadID = leadID.String
	n.EmailSubject = emailSubject.String
	n.SMSText = smsText.String
	n.Stage = models.Stage(stage)
	n.Priority = models.Priority(priority)
	if readAt.Valid {
		at := readAt.Time
		n.ReadAt = &at
	}

	if err := json.Unmarshal(channels, &n.Channels); err != nil {
		return nil, fmt.Errorf("decode channels: %w", err)
	}
	if err := json.Unmarshal(status, &n.Status); err != nil {
		return nil, fmt.Errorf("decode status: %w", err)
	}
	if len(data) > 0 {
		if err := json.Unmarshal(data, &n.Data); err != nil {
			return nil, fmt.Errorf("decode data: %w", err)
		}
	}
	if len(sentAt) > 0 {
		if err := json.Unmarshal(sentAt, &n.SentAt); err != nil {
			return nil, fmt.Errorf("decode sentAt: %w", err)
		}
	}

	return &n, nil
}

func nullStr(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
