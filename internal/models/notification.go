// internal/models/notification.go
package models

import "time"

// Stage is a lifecycle milestone in the admissions pipeline. The set is
// closed: every stage has exactly one template bundle registered for it.
type Stage string

const (
	StageLeadCreated          Stage = "lead_created"
	StageApplicationSubmitted Stage = "application_submitted"
	StageDocumentsPending     Stage = "documents_pending"
	StageDocumentsComplete    Stage = "documents_complete"
	StageTestScheduled        Stage = "test_scheduled"
	StageTestCompleted        Stage = "test_completed"
	StageInterviewScheduled   Stage = "interview_scheduled"
	StageInterviewCompleted   Stage = "interview_completed"
	StageUnderReview          Stage = "under_review"
	StageDecisionAccepted     Stage = "decision_accepted"
	StageDecisionWaitlisted   Stage = "decision_waitlisted"
	StageDecisionRejected     Stage = "decision_rejected"
	StageEnrollmentComplete   Stage = "enrollment_complete"
)

// AllStages lists every registered stage, in pipeline order.
var AllStages = []Stage{
	StageLeadCreated,
	StageApplicationSubmitted,
	StageDocumentsPending,
	StageDocumentsComplete,
	StageTestScheduled,
	StageTestCompleted,
	StageInterviewScheduled,
	StageInterviewCompleted,
	StageUnderReview,
	StageDecisionAccepted,
	StageDecisionWaitlisted,
	StageDecisionRejected,
	StageEnrollmentComplete,
}

// Channel is a delivery medium.
type Channel string

const (
	ChannelInApp Channel = "in_app"
	ChannelEmail Channel = "email"
	ChannelSMS   Channel = "sms"
)

// ValidChannel reports whether c belongs to the channel enumeration.
func ValidChannel(c Channel) bool {
	switch c {
	case ChannelInApp, ChannelEmail, ChannelSMS:
		return true
	}
	return false
}

// Status is the per-channel delivery state.
// Transitions: pending -> sent -> (read, in_app only), or pending -> failed.
// read and failed are terminal.
type Status string

const (
	StatusPending Status = "pending"
	StatusSent    Status = "sent"
	StatusFailed  Status = "failed"
	StatusRead    Status = "read"
)

// Priority controls operator-facing ordering; it never changes delivery.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Locales supported by the template bundles.
const (
	LocaleEnglish = "en"
	LocaleArabic  = "ar"
)

// Notification is one unit of delivery: a single guardian, a single lifecycle
// event, fanned across the stage's channels. Recipient contact fields are
// denormalized at creation time and never re-looked-up. The record is
// immutable after creation except for status transitions and the read
// timestamp.
type Notification struct {
	ID             string                 `json:"id"`
	RecipientID    string                 `json:"recipientId"`
	RecipientName  string                 `json:"recipientName"`
	RecipientEmail string                 `json:"recipientEmail,omitempty"`
	RecipientPhone string                 `json:"recipientPhone,omitempty"`
	SubjectName    string                 `json:"subjectName"`
	ApplicationID  string                 `json:"applicationId,omitempty"`
	LeadID         string                 `json:"leadId,omitempty"`
	Stage          Stage                  `json:"stage"`
	Priority       Priority               `json:"priority"`
	Channels       []Channel              `json:"channels"`
	Status         map[Channel]Status     `json:"status"`
	Title          string                 `json:"title"`
	Message        string                 `json:"message"`
	EmailSubject   string                 `json:"emailSubject,omitempty"`
	SMSText        string                 `json:"smsText,omitempty"`
	Data           map[string]string      `json:"data,omitempty"`
	CreatedAt      time.Time              `json:"createdAt"`
	SentAt         map[Channel]time.Time  `json:"sentAt,omitempty"`
	ReadAt         *time.Time             `json:"readAt,omitempty"`
	Locale         string                 `json:"locale"`
}

// HasChannel reports whether ch belongs to the notification's resolved set.
func (n *Notification) HasChannel(ch Channel) bool {
	for _, c := range n.Channels {
		if c == ch {
			return true
		}
	}
	return false
}

// ApplyOutcome records a terminal delivery state for one channel. Only a
// pending channel may transition; a second outcome for the same channel is
// ignored so sent/failed stay terminal.
func (n *Notification) ApplyOutcome(o DeliveryOutcome) {
	if n.Status[o.Channel] != StatusPending {
		return
	}
	if o.Success {
		n.Status[o.Channel] = StatusSent
		if n.SentAt == nil {
			n.SentAt = make(map[Channel]time.Time)
		}
		n.SentAt[o.Channel] = o.At
	} else {
		n.Status[o.Channel] = StatusFailed
	}
}

// MarkRead flips in_app from sent to read and stamps the read time. It
// returns false (and changes nothing) when the in_app channel is absent,
// still pending, failed, or already read.
func (n *Notification) MarkRead(at time.Time) bool {
	if n.Status[ChannelInApp] != StatusSent {
		return false
	}
	n.Status[ChannelInApp] = StatusRead
	n.ReadAt = &at
	return true
}

// Unread reports whether the notification counts toward the recipient's
// badge: delivered in-app but not yet read.
func (n *Notification) Unread() bool {
	return n.Status[ChannelInApp] == StatusSent
}

// Clone deep-copies the notification so stored records stay isolated from
// caller mutation.
func (n *Notification) Clone() *Notification {
	c := *n
	c.Channels = append([]Channel(nil), n.Channels...)
	c.Status = make(map[Channel]Status, len(n.Status))
	for k, v := range n.Status {
		c.Status[k] = v
	}
	if n.SentAt != nil {
		c.SentAt = make(map[Channel]time.Time, len(n.SentAt))
		for k, v := range n.SentAt {
			c.SentAt[k] = v
		}
	}
	if n.Data != nil {
		c.Data = make(map[string]string, len(n.Data))
		for k, v := range n.Data {
			c.Data[k] = v
		}
	}
	if n.ReadAt != nil {
		at := *n.ReadAt
		c.ReadAt = &at
	}
	return &c
}

// DeliveryOutcome is the report of one channel dispatcher attempt.
type DeliveryOutcome struct {
	Channel Channel   `json:"channel"`
	Success bool      `json:"success"`
	Reason  string    `json:"reason,omitempty"`
	At      time.Time `json:"at"`
}

// FanOutResult aggregates one lifecycle event's broadcast.
type FanOutResult struct {
	Stage          Stage           `json:"stage"`
	Eligible       int             `json:"eligible"`
	Created        int             `json:"created"`
	Appended       int             `json:"appended"`
	FailedChannels int             `json:"failedChannels"`
	Notifications  []*Notification `json:"notifications,omitempty"`
}
