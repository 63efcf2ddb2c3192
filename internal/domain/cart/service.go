// internal/domain/cart/service.go
package cart

import (
	"context"
	"fmt"
	"hash/fnv"
	"sync"

	"github.com/sirupsen/logrus"
)

const lockStripes = 64

// Service hands out per-session cart stores and serializes concurrent
// requests against the same session.
type Service struct {
	storage   Storage
	namespace string
	logger    logrus.FieldLogger
	locks     [lockStripes]sync.Mutex
}

// NewService creates a new cart service
func NewService(storage Storage, namespace string, logger logrus.FieldLogger) *Service {
	return &Service{
		storage:   storage,
		namespace: namespace,
		logger:    logger.WithField("component", "cart"),
	}
}

// Key returns the storage key for a session
func (s *Service) Key(sessionID string) string {
	return fmt.Sprintf("%s:%s", s.namespace, sessionID)
}

// Update opens the session's cart, runs fn against it and returns the
// resulting snapshot. fn runs while the session lock is held.
func (s *Service) Update(sessionID string, fn func(st *Store)) Snapshot {
	mu := s.lockFor(sessionID)
	mu.Lock()
	defer mu.Unlock()

	st := NewStore(s.Key(sessionID), s.storage, s.logger)
	fn(st)
	return st.Snapshot()
}

// Snapshot returns the session's cart without modifying it
func (s *Service) Snapshot(sessionID string) Snapshot {
	return s.Update(sessionID, func(*Store) {})
}

// AddItem adds candidate to the session's cart
func (s *Service) AddItem(sessionID string, candidate LineItem) (AddResult, Snapshot) {
	var result AddResult
	snap := s.Update(sessionID, func(st *Store) {
		result = st.AddItem(candidate)
	})

	if !result.OK() {
		s.logger.WithFields(logrus.Fields{
			"session_id":   sessionID,
			"product_id":   candidate.ProductID,
			"line_item_id": result.LineItemID,
			"status":       result.Status,
		}).Info(result.Warning)
	}
	return result, snap
}

// RemoveItem removes a line item from the session's cart
func (s *Service) RemoveItem(sessionID, lineItemID string) Snapshot {
	return s.Update(sessionID, func(st *Store) {
		st.RemoveItem(lineItemID)
	})
}

// SetQuantityDelta adjusts a line item's quantity by delta
func (s *Service) SetQuantityDelta(sessionID, lineItemID string, delta int) Snapshot {
	return s.Update(sessionID, func(st *Store) {
		st.SetQuantityDelta(lineItemID, delta)
	})
}

// Clear empties the session's cart
func (s *Service) Clear(sessionID string) Snapshot {
	return s.Update(sessionID, func(st *Store) {
		st.Clear()
	})
}

// Discard destroys the stored cart, used after a successful checkout
func (s *Service) Discard(ctx context.Context, sessionID string) error {
	mu := s.lockFor(sessionID)
	mu.Lock()
	defer mu.Unlock()

	if err := s.storage.Delete(ctx, s.Key(sessionID)); err != nil {
		return fmt.Errorf("failed to discard cart: %w", err)
	}
	return nil
}

func (s *Service) lockFor(sessionID string) *sync.Mutex {
	h := fnv.New32a()
	_, _ = h.Write([]byte(sessionID))
	return &s.locks[h.Sum32()%lockStripes]
}
