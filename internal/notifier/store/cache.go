// internal/notifier/store/cache.go
package store

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"admissions-notifier/internal/common/logger"
	"admissions-notifier/internal/common/metrics"
	"admissions-notifier/internal/models"
)

// CachedStore decorates a Store with a Redis cache for unread badge counts,
// the hottest query the UI issues. Writes go straight through and drop the
// recipient's cached count; a stale or unavailable cache degrades to the
// inner store, never to an error.
type CachedStore struct {
	inner  Store
	client *redis.Client
	ttl    time.Duration
	logger logger.Logger
}

func NewCachedStore(inner Store, client *redis.Client, ttl time.Duration, log logger.Logger) *CachedStore {
	return &CachedStore{
		inner:  inner,
		client: client,
		ttl:    ttl,
		logger: log.WithFields(map[string]interface{}{"component": "unread-cache"}),
	}
}

func unreadKey(recipientID string) string {
	return fmt.Sprintf("notifier:unread:%s", recipientID)
}

func (s *CachedStore) Append(ctx context.Context, n *models.Notification) error {
	if err := s.inner.Append(ctx, n); err != nil {
		return err
	}
	s.invalidate(ctx, n.RecipientID)
	return nil
}

func (s *CachedStore) Get(ctx context.Context, notificationID string) (*models.Notification, error) {
	return s.inner.Get(ctx, notificationID)
}

func (s *CachedStore) ListByRecipient(ctx context.Context, recipientID string) ([]*models.Notification, error) {
	return s.inner.ListByRecipient(ctx, recipientID)
}

func (s *CachedStore) MarkRead(ctx context.Context, notificationID string) error {
	n, err := s.inner.Get(ctx, notificationID)
	if err != nil {
		return err
	}
	if err := s.inner.MarkRead(ctx, notificationID); err != nil {
		return err
	}
	s.invalidate(ctx, n.RecipientID)
	return nil
}

func (s *CachedStore) MarkAllRead(ctx context.Context, recipientID string) error {
	if err := s.inner.MarkAllRead(ctx, recipientID); err != nil {
		return err
	}
	s.invalidate(ctx, recipientID)
	return nil
}

func (s *CachedStore) UnreadCount(ctx context.Context, recipientID string) (int, error) {
	val, err := s.client.Get(ctx, unreadKey(recipientID)).Result()
	if err == nil {
		if count, convErr := strconv.Atoi(val); convErr == nil {
			metrics.UnreadCacheHits.WithLabelValues("hit").Inc()
			return count, nil
		}
	} else if err != redis.Nil {
		s.logger.Warn("unread cache read failed", map[string]interface{}{
			"recipientId": recipientID,
			"error":       err,
		})
	}
	metrics.UnreadCacheHits.WithLabelValues("miss").Inc()

	count, err := s.inner.UnreadCount(ctx, recipientID)
	if err != nil {
		return 0, err
	}

	if err := s.client.Set(ctx, unreadKey(recipientID), count, s.ttl).Err(); err != nil {
		s.logger.Warn("unread cache write failed", map[string]interface{}{
			"recipientId": recipientID,
			"error":       err,
		})
	}
	return count, nil
}

func (s *CachedStore) invalidate(ctx context.Context, recipientID string) {
	if err := s.client.Del(ctx, unreadKey(recipientID)).Err(); err != nil {
		s.logger.Warn("unread cache invalidation failed", map[string]interface{}{
			"recipientId": recipientID,
			"error":       err,
		})
	}
}
