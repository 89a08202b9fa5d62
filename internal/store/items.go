package store

import (
	"errors"
	"log/slog"
	"os"
	"sync"

	"github.com/karibuclean/instock/internal/models"
)

// ItemInput carries the user-entered fields for an add request.
type ItemInput struct {
	Name         string
	Category     string
	Quantity     float64
	Unit         string
	UnitCost     float64
	MinThreshold float64
}

// AddResult reports which branch AddOrMerge took, for user-facing
// confirmation.
type AddResult struct {
	Item   models.InventoryItem
	Merged bool
}

// ItemStore holds the inventory collection. All mutation goes through
// AddOrMerge and Update; every mutation is followed by a wholesale save of
// the JSON document.
type ItemStore struct {
	mu    sync.Mutex
	path  string
	clock Clock
	items []models.InventoryItem
}

// OpenItemStore loads the item document at path. A missing or unparseable
// document falls back to the seed dataset; a parse failure is logged, never
// escalated.
func OpenItemStore(path string, clock Clock) *ItemStore {
	if clock == nil {
		clock = SystemClock
	}
	s := &ItemStore{path: path, clock: clock}

	var items []models.InventoryItem
	err := readDocument(path, &items)
	switch {
	case err == nil:
		s.items = normalizeItems(items)
	case errors.Is(err, os.ErrNotExist):
		s.items = models.SeedItems()
	default:
		slog.Warn("item snapshot unreadable, falling back to seed data", "path", path, "error", err)
		s.items = models.SeedItems()
	}
	return s
}

// normalizeItems coerces defensively on load: a missing unitCost decodes as
// 0 already, but older snapshots may carry negative costs or a nil slice.
func normalizeItems(items []models.InventoryItem) []models.InventoryItem {
	if items == nil {
		items = []models.InventoryItem{}
	}
	for i := range items {
		if items[i].UnitCost < 0 {
			items[i].UnitCost = 0
		}
	}
	return items
}

// List returns a copy of the current collection.
func (s *ItemStore) List() []models.InventoryItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.InventoryItem, len(s.items))
	copy(out, s.items)
	return out
}

// Get looks up an item by id.
func (s *ItemStore) Get(id string) (models.InventoryItem, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, item := range s.items {
		if item.ID == id {
			return item, true
		}
	}
	return models.InventoryItem{}, false
}

// AddOrMerge records a stock delivery. A case-insensitive name match merges
// into the existing record: quantity is summed and LastUpdated refreshed,
// while the existing category, unit, cost and threshold stay authoritative
// and the candidate's are discarded. A miss creates a new record with a
// fresh id and today's date.
func (s *ItemStore) AddOrMerge(in ItemInput) (AddResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	today := models.FormatDate(s.clock.Now())

	for i := range s.items {
		if s.items[i].SameName(in.Name) {
			s.items[i].Quantity += in.Quantity
			s.items[i].LastUpdated = today
			res := AddResult{Item: s.items[i], Merged: true}
			if err := s.save(); err != nil {
				return res, err
			}
			return res, nil
		}
	}

	item := models.InventoryItem{
		ID:           models.NewID(),
		Name:         in.Name,
		Category:     in.Category,
		Quantity:     in.Quantity,
		Unit:         in.Unit,
		UnitCost:     in.UnitCost,
		MinThreshold: in.MinThreshold,
		LastUpdated:  today,
	}
	s.items = append(s.items, item)
	res := AddResult{Item: item, Merged: false}
	if err := s.save(); err != nil {
		return res, err
	}
	return res, nil
}

// ItemUpdate is a partial field set for Update. Nil fields are left alone.
type ItemUpdate struct {
	Quantity     *float64
	UnitCost     *float64
	MinThreshold *float64
}

// Update shallow-merges the given fields into the matching record. An
// unknown id is a no-op, not an error. LastUpdated is deliberately not
// touched here; only the merge path refreshes it. No clamping happens at
// this layer — quantity-decrement entry points clamp at 0 before calling.
func (s *ItemStore) Update(id string, upd ItemUpdate) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.items {
		if s.items[i].ID != id {
			continue
		}
		if upd.Quantity != nil {
			s.items[i].Quantity = *upd.Quantity
		}
		if upd.UnitCost != nil {
			s.items[i].UnitCost = *upd.UnitCost
		}
		if upd.MinThreshold != nil {
			s.items[i].MinThreshold = *upd.MinThreshold
		}
		return s.save()
	}
	return nil
}

// save must be called with the mutex held.
func (s *ItemStore) save() error {
	return writeDocument(s.path, s.items)
}
