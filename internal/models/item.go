// Package models defines data structures for the InStock inventory tracker.
package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Categories is the fixed set of inventory categories. The classifier prompt
// asks the external model for one of these, but values outside the set are
// surfaced to the operator rather than rejected.
var Categories = []string{
	"Chemicals",
	"Paper Products",
	"Tools",
	"PPE",
	"Soaps",
	"Kitchen",
	"General",
}

// DateLayout is the calendar-date form used for LastUpdated, job dates and
// forecast run-out dates.
const DateLayout = "2006-01-02"

// InventoryItem is one stock line. Name is the dedup key, compared
// case-insensitively: at most one item per name exists at any time.
type InventoryItem struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Category     string  `json:"category"`
	Quantity     float64 `json:"quantity"`
	Unit         string  `json:"unit"`
	UnitCost     float64 `json:"unitCost"`
	MinThreshold float64 `json:"minThreshold"`
	LastUpdated  string  `json:"lastUpdated"`
}

// LowStock reports whether the item is at or below its minimum threshold.
func (i InventoryItem) LowStock() bool {
	return i.Quantity <= i.MinThreshold
}

// Value returns the item's total stock valuation.
func (i InventoryItem) Value() float64 {
	return i.Quantity * i.UnitCost
}

// SameName compares the item's name with another case-insensitively.
func (i InventoryItem) SameName(name string) bool {
	return strings.EqualFold(i.Name, name)
}

// NewID generates an opaque unique record identifier.
func NewID() string {
	return uuid.NewString()
}

// FormatDate renders a timestamp as a calendar date string.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}
