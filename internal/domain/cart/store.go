// internal/domain/cart/store.go
package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

const storageTimeout = 3 * time.Second

// Store owns the canonical list of line items for one cart. All mutations go
// through its methods and each one ends with a best-effort save.
// A Store is not safe for concurrent use; Service serializes access per session.
type Store struct {
	key     string
	storage Storage
	logger  logrus.FieldLogger
	now     func() time.Time
	items   []LineItem
}

// NewStore opens the cart stored under key. Missing or unreadable payloads
// produce an empty cart; the error is logged, never returned.
func NewStore(key string, storage Storage, logger logrus.FieldLogger) *Store {
	s := &Store{
		key:     key,
		storage: storage,
		logger:  logger.WithField("cart_key", key),
		now:     func() time.Time { return time.Now().UTC() },
		items:   []LineItem{},
	}
	s.load()
	return s
}

// Items returns a copy of the current line items
func (s *Store) Items() []LineItem {
	out := make([]LineItem, len(s.items))
	copy(out, s.items)
	return out
}

// Find returns the line item with the given id
func (s *Store) Find(lineItemID string) (LineItem, bool) {
	if i := s.indexOf(lineItemID); i >= 0 {
		return s.items[i], true
	}
	return LineItem{}, false
}

// TotalItemCount is the sum of quantities over all items
func (s *Store) TotalItemCount() int {
	total := 0
	for _, item := range s.items {
		total += quantityOrDefault(item.Quantity)
	}
	return total
}

// TotalPrice is the sum of line totals
func (s *Store) TotalPrice() decimal.Decimal {
	total := decimal.Zero
	for _, item := range s.items {
		total = total.Add(LineTotal(item))
	}
	return total
}

// Snapshot returns the items together with derived totals
func (s *Store) Snapshot() Snapshot {
	return NewSnapshot(s.items)
}

// AddItem merges candidate into an existing line with the same id or appends
// it. A stock ceiling on the candidate is checked against the combined
// quantity; exceeding it rejects the add and leaves the cart untouched.
func (s *Store) AddItem(candidate LineItem) AddResult {
	if candidate.ProductID == "" {
		return AddResult{Status: AddStatusInvalid, Warning: "item is missing a product id"}
	}

	switch candidate.Kind {
	case "", KindStandard:
		candidate.Kind = KindStandard
		candidate.DateRange = nil
	case KindRental:
		candidate.Variant = ""
	default:
		return AddResult{Status: AddStatusInvalid, Warning: fmt.Sprintf("unknown item kind %q", candidate.Kind)}
	}

	adding := quantityOrDefault(candidate.Quantity)
	id := candidate.ComputeID()

	idx := s.indexOf(id)
	current := 0
	if idx >= 0 {
		current = s.items[idx].Quantity
	}
	total := current + adding

	if candidate.StockCeiling != nil && total > *candidate.StockCeiling {
		return AddResult{
			Status:     AddStatusRejected,
			LineItemID: id,
			Quantity:   current,
			Warning:    fmt.Sprintf("Sorry, we only have %d of these available", *candidate.StockCeiling),
		}
	}

	if idx >= 0 {
		s.items[idx].Quantity = total
		s.save()
		return AddResult{Status: AddStatusMerged, LineItemID: id, Quantity: total}
	}

	candidate.LineItemID = id
	candidate.Quantity = adding
	candidate.AddedAt = s.now()
	s.items = append(s.items, candidate)
	s.save()

	return AddResult{Status: AddStatusAppended, LineItemID: id, Quantity: adding}
}

// RemoveItem deletes the matching line item. Unknown ids are ignored.
func (s *Store) RemoveItem(lineItemID string) {
	idx := s.indexOf(lineItemID)
	if idx < 0 {
		return
	}
	s.items = append(s.items[:idx], s.items[idx+1:]...)
	s.save()
}

// SetQuantityDelta adds delta to the item's quantity and removes the item
// when the result drops to zero or below.
func (s *Store) SetQuantityDelta(lineItemID string, delta int) {
	idx := s.indexOf(lineItemID)
	if idx < 0 {
		return
	}

	next := quantityOrDefault(s.items[idx].Quantity) + delta
	if next <= 0 {
		s.items = append(s.items[:idx], s.items[idx+1:]...)
	} else {
		s.items[idx].Quantity = next
	}
	s.save()
}

// Clear empties the cart
func (s *Store) Clear() {
	s.items = []LineItem{}
	s.save()
}

func (s *Store) indexOf(lineItemID string) int {
	for i := range s.items {
		if s.items[i].LineItemID == lineItemID {
			return i
		}
	}
	return -1
}

func (s *Store) save() {
	payload, err := json.Marshal(s.items)
	if err != nil {
		s.logger.WithError(err).Error("Failed to serialize cart")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), storageTimeout)
	defer cancel()

	if err := s.storage.Save(ctx, s.key, payload); err != nil {
		s.logger.WithError(err).Warn("Failed to persist cart, keeping in-memory state")
	}
}

func (s *Store) load() {
	ctx, cancel := context.WithTimeout(context.Background(), storageTimeout)
	defer cancel()

	payload, err := s.storage.Load(ctx, s.key)
	if errors.Is(err, ErrNoCart) {
		return
	}
	if err != nil {
		s.logger.WithError(err).Warn("Failed to load cart, starting empty")
		return
	}

	var stored []LineItem
	if err := json.Unmarshal(payload, &stored); err != nil {
		s.logger.WithError(err).Warn("Stored cart is corrupt, starting empty")
		return
	}

	s.items = normalize(stored)
}

// normalize repairs records written by older clients: it drops entries
// without a product, defaults quantities, recomputes ids and folds duplicates.
func normalize(stored []LineItem) []LineItem {
	items := make([]LineItem, 0, len(stored))
	index := make(map[string]int, len(stored))

	for _, item := range stored {
		if item.ProductID == "" {
			continue
		}
		if item.Kind == "" {
			item.Kind = KindStandard
		}
		if item.Kind != KindStandard && item.Kind != KindRental {
			continue
		}
		item.Quantity = quantityOrDefault(item.Quantity)
		item.LineItemID = item.ComputeID()

		if i, ok := index[item.LineItemID]; ok {
			items[i].Quantity += item.Quantity
			continue
		}
		index[item.LineItemID] = len(items)
		items = append(items, item)
	}
	return items
}
