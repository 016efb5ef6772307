// internal/notifier/channel/channel.go

// Package channel holds one delivery dispatcher per channel behind a common
// interface. Dispatchers are independent: one failing never affects its
// siblings, and the fan-out records each outcome against its own status
// entry only.
package channel

import (
	"context"
	"time"

	"admissions-notifier/internal/models"
)

// Dispatcher attempts delivery of a notification over exactly one channel
// and reports the outcome. Implementations never mutate the notification.
type Dispatcher interface {
	Channel() models.Channel
	Send(ctx context.Context, n *models.Notification) models.DeliveryOutcome
}

// Set selects a dispatcher by channel, replacing conditional branching on
// channel names with a lookup table.
type Set map[models.Channel]Dispatcher

// NewSet builds a lookup table from the given dispatchers.
func NewSet(dispatchers ...Dispatcher) Set {
	s := make(Set, len(dispatchers))
	for _, d := range dispatchers {
		s[d.Channel()] = d
	}
	return s
}

func success(ch models.Channel) models.DeliveryOutcome {
	return models.DeliveryOutcome{Channel: ch, Success: true, At: time.Now().UTC()}
}

func failure(ch models.Channel, reason string) models.DeliveryOutcome {
	return models.DeliveryOutcome{Channel: ch, Success: false, Reason: reason}
}
