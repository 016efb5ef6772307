// internal/notifier/channel/inapp.go
package channel

import (
	"context"

	"admissions-notifier/internal/models"
)

// InAppDispatcher marks the in-app channel delivered. The durable write is
// the store append the fan-out performs after the join point, so this
// dispatch is a deterministic local success.
type InAppDispatcher struct{}

func NewInAppDispatcher() *InAppDispatcher {
	return &InAppDispatcher{}
}

func (d *InAppDispatcher) Channel() models.Channel {
	return models.ChannelInApp
}

func (d *InAppDispatcher) Send(_ context.Context, _ *models.Notification) models.DeliveryOutcome {
	return success(models.ChannelInApp)
}
