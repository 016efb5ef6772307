// internal/notifier/fanout/fanout.go

// Package fanout broadcasts one lifecycle event to every eligible guardian
// of an application or lead.
package fanout

import (
	"context"
	stderrors "errors"
	"fmt"
	"sync"
	"time"

	apperrors "admissions-notifier/internal/common/errors"
	"admissions-notifier/internal/common/logger"
	"admissions-notifier/internal/common/metrics"
	"admissions-notifier/internal/common/observability"
	"admissions-notifier/internal/models"
	"admissions-notifier/internal/notifier/channel"
	"admissions-notifier/internal/notifier/factory"
	"admissions-notifier/internal/notifier/store"
)

// Dispatcher fans a domain event out across guardians and channels. It is
// safe for concurrent use; the store is the only resource shared between
// overlapping fan-outs.
type Dispatcher struct {
	factory  *factory.Factory
	channels channel.Set
	store    store.Store
	logger   logger.Logger
	obs      *observability.Observability
}

func New(f *factory.Factory, channels channel.Set, st store.Store, log logger.Logger, obs *observability.Observability) *Dispatcher {
	return &Dispatcher{
		factory:  f,
		channels: channels,
		store:    st,
		logger:   log.WithFields(map[string]interface{}{"component": "fanout"}),
		obs:      obs,
	}
}

// NotifyGuardians builds one notification per eligible guardian and
// dispatches every channel of every notification concurrently. Guardians
// are independent: a slow or failing channel for one never blocks another.
//
// All notifications are built before anything is dispatched, so a
// misconfigured stage aborts the whole fan-out instead of notifying some
// guardians and silently skipping the rest. After that point channel
// failures are recorded in status and logged, never returned; only store
// append errors surface to the caller, joined, after every guardian has
// been attempted.
func (d *Dispatcher) NotifyGuardians(ctx context.Context, admission *models.Admission, stage models.Stage, contextVars map[string]string) (*models.FanOutResult, error) {
	start := time.Now()
	result := &models.FanOutResult{Stage: stage}

	eligible := admission.EligibleGuardians()
	result.Eligible = len(eligible)
	if len(eligible) == 0 {
		// Many leads legitimately have zero notifiable guardians.
		d.logger.Info("no eligible guardians, fan-out is a no-op", map[string]interface{}{
			"stage":         stage,
			"applicationId": admission.ApplicationID,
			"leadId":        admission.LeadID,
		})
		d.record(ctx, stage, start, "empty")
		return result, nil
	}

	notifications := make([]*models.Notification, 0, len(eligible))
	for _, guardian := range eligible {
		n, err := d.factory.Create(stage, guardian, admission, contextVars, guardian.Locale)
		if err != nil {
			d.record(ctx, stage, start, "error")
			return nil, err
		}
		metrics.NotificationsCreated.WithLabelValues(string(stage)).Inc()
		notifications = append(notifications, n)
	}
	result.Created = len(notifications)
	result.Notifications = notifications

	var (
		wg         sync.WaitGroup
		mu         sync.Mutex
		appendErrs []error
	)
	for _, n := range notifications {
		wg.Add(1)
		go func(n *models.Notification) {
			defer wg.Done()

			failed := d.dispatch(ctx, n)

			appendErr := d.store.Append(ctx, n)
			if appendErr != nil {
				d.logger.Error("notification append failed", map[string]interface{}{
					"notificationId": n.ID,
					"recipientId":    n.RecipientID,
					"stage":          stage,
					"error":          appendErr,
				})
			}

			mu.Lock()
			result.FailedChannels += failed
			if appendErr == nil {
				result.Appended++
			} else {
				appendErrs = append(appendErrs, fmt.Errorf("notification %s: %w", n.ID, appendErr))
			}
			mu.Unlock()
		}(n)
	}
	wg.Wait()

	d.logger.Info("fan-out complete", map[string]interface{}{
		"stage":          stage,
		"eligible":       result.Eligible,
		"created":        result.Created,
		"appended":       result.Appended,
		"failedChannels": result.FailedChannels,
	})
	d.record(ctx, stage, start, "ok")

	if len(appendErrs) > 0 {
		return result, stderrors.Join(appendErrs...)
	}
	return result, nil
}

// dispatch runs every channel of one notification concurrently, joins, and
// applies the outcomes. Goroutines only report outcomes over the results
// channel; all status-map writes happen here after the join, so no two
// writers ever touch the map at once. Returns the number of failed channels.
func (d *Dispatcher) dispatch(ctx context.Context, n *models.Notification) int {
	results := make(chan models.DeliveryOutcome, len(n.Channels))

	for _, ch := range n.Channels {
		go func(ch models.Channel) {
			dispatcher, ok := d.channels[ch]
			if !ok {
				results <- models.DeliveryOutcome{Channel: ch, Success: false, Reason: "no dispatcher registered"}
				return
			}
			results <- dispatcher.Send(ctx, n)
		}(ch)
	}

	failed := 0
	for range n.Channels {
		outcome := <-results
		n.ApplyOutcome(outcome)

		status := "sent"
		if !outcome.Success {
			status = "failed"
			failed++
			sendErr := apperrors.NewChannelSendFailedError(string(outcome.Channel), stderrors.New(outcome.Reason))
			d.logger.Warn("channel delivery failed", map[string]interface{}{
				"notificationId": n.ID,
				"recipientId":    n.RecipientID,
				"channel":        outcome.Channel,
				"retryable":      apperrors.IsRetryableErrorCode(sendErr.Code),
				"error":          sendErr,
			})
		}
		metrics.ChannelSends.WithLabelValues(string(outcome.Channel), status).Inc()
	}
	return failed
}

func (d *Dispatcher) record(ctx context.Context, stage models.Stage, start time.Time, status string) {
	metrics.FanOutDuration.WithLabelValues(string(stage)).Observe(time.Since(start).Seconds())
	if d.obs != nil {
		d.obs.RecordFanOut(ctx, string(stage), status)
		d.obs.RecordFanOutDuration(ctx, time.Since(start), string(stage))
	}
}
