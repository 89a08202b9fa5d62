// Package service wires the stores to their callers: inventory bookkeeping,
// job planning and the two external AI calls.
package service

import (
	"fmt"
	"strings"

	"github.com/karibuclean/instock/internal/metrics"
	"github.com/karibuclean/instock/internal/models"
	"github.com/karibuclean/instock/internal/store"
)

// InventoryService owns the item workflow around the ItemStore. Policy that
// the store deliberately leaves to its callers lives here, like clamping
// quantity decrements at zero.
type InventoryService struct {
	items   *store.ItemStore
	collect *metrics.Collector
}

// NewInventoryService creates an inventory service.
func NewInventoryService(items *store.ItemStore, collect *metrics.Collector) *InventoryService {
	return &InventoryService{items: items, collect: collect}
}

// Add records a delivery, merging by name when the item already exists.
func (s *InventoryService) Add(in store.ItemInput) (store.AddResult, error) {
	res, err := s.items.AddOrMerge(in)
	s.record(metrics.OpItemMutation, err)
	if err != nil {
		return res, fmt.Errorf("add item: %w", err)
	}
	return res, nil
}

// Get looks up an item by id.
func (s *InventoryService) Get(id string) (models.InventoryItem, bool) {
	return s.items.Get(id)
}

// AdjustQuantity applies a signed delta to an item's quantity, clamped at 0.
// Unknown ids are a no-op, matching the store contract.
func (s *InventoryService) AdjustQuantity(id string, delta float64) error {
	item, ok := s.items.Get(id)
	if !ok {
		return nil
	}
	qty := item.Quantity + delta
	if qty < 0 {
		qty = 0
	}
	err := s.items.Update(id, store.ItemUpdate{Quantity: &qty})
	s.record(metrics.OpItemMutation, err)
	if err != nil {
		return fmt.Errorf("adjust quantity: %w", err)
	}
	return nil
}

// SetUnitCost overwrites an item's unit cost.
func (s *InventoryService) SetUnitCost(id string, cost float64) error {
	err := s.items.Update(id, store.ItemUpdate{UnitCost: &cost})
	s.record(metrics.OpItemMutation, err)
	if err != nil {
		return fmt.Errorf("set unit cost: %w", err)
	}
	return nil
}

// SearchOptions filters a listing.
type SearchOptions struct {
	Query    string
	Category string
	LowOnly  bool
}

// Search returns items matching the options. The query matches name or
// category, case-insensitively.
func (s *InventoryService) Search(opts SearchOptions) []models.InventoryItem {
	var out []models.InventoryItem
	q := strings.ToLower(opts.Query)
	for _, item := range s.items.List() {
		if opts.LowOnly && !item.LowStock() {
			continue
		}
		if opts.Category != "" && item.Category != opts.Category {
			continue
		}
		if q != "" &&
			!strings.Contains(strings.ToLower(item.Name), q) &&
			!strings.Contains(strings.ToLower(item.Category), q) {
			continue
		}
		out = append(out, item)
	}
	return out
}

// Report summarizes the stock position for the dashboard.
type Report struct {
	ItemCount     int                    `json:"itemCount"`
	TotalValue    float64                `json:"totalValue"`
	LowStockCount int                    `json:"lowStockCount"`
	LowStockItems []models.InventoryItem `json:"lowStockItems"`
}

// Report computes total valuation and the low-stock listing.
func (s *InventoryService) Report() Report {
	items := s.items.List()
	rep := Report{ItemCount: len(items)}
	for _, item := range items {
		rep.TotalValue += item.Value()
		if item.LowStock() {
			rep.LowStockCount++
			rep.LowStockItems = append(rep.LowStockItems, item)
		}
	}
	return rep
}

func (s *InventoryService) record(op string, err error) {
	if s.collect != nil {
		s.collect.Record(op, 0, err != nil)
	}
}
