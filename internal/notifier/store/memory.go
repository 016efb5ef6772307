// internal/notifier/store/memory.go
package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"admissions-notifier/internal/common/errors"
	"admissions-notifier/internal/models"
)

// MemoryStore is the in-process Store used by tests and single-node dev
// runs. Records are cloned on the way in and out so callers never share
// mutable state with the store.
type MemoryStore struct {
	mu          sync.RWMutex
	byID        map[string]*models.Notification
	byRecipient map[string][]*models.Notification
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		byID:        make(map[string]*models.Notification),
		byRecipient: make(map[string][]*models.Notification),
	}
}

func (s *MemoryStore) Append(_ context.Context, n *models.Notification) error {
	c := n.Clone()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.byID[c.ID] = c
	s.byRecipient[c.RecipientID] = append(s.byRecipient[c.RecipientID], c)
	return nil
}

func (s *MemoryStore) Get(_ context.Context, notificationID string) (*models.Notification, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n, ok := s.byID[notificationID]
	if !ok {
		return nil, errors.NewNotificationNotFoundError(notificationID)
	}
	return n.Clone(), nil
}

func (s *MemoryStore) ListByRecipient(_ context.Context, recipientID string) ([]*models.Notification, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	list := s.byRecipient[recipientID]
	out := make([]*models.Notification, len(list))
	for i, n := range list {
		out[i] = n.Clone()
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (s *MemoryStore) MarkRead(_ context.Context, notificationID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	n, ok := s.byID[notificationID]
	if !ok {
		return errors.NewNotificationNotFoundError(notificationID)
	}
	n.MarkRead(time.Now().UTC())
	return nil
}

func (s *MemoryStore) MarkAllRead(ctx context.Context, recipientID string) error {
	s.mu.RLock()
	ids := make([]string, 0)
	for _, n := range s.byRecipient[recipientID] {
		if n.Unread() {
			ids = append(ids, n.ID)
		}
	}
	s.mu.RUnlock()

	for _, id := range ids {
		if err := s.MarkRead(ctx, id); err != nil {
			return err
		}
	}
	return nil
}

func (s *MemoryStore) UnreadCount(_ context.Context, recipientID string) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	count := 0
	for _, n := range s.byRecipient[recipientID] {
		if n.Unread() {
			count++
		}
	}
	return count, nil
}
