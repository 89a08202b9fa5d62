package models

import "time"

// SeedItems returns the fallback inventory used when no valid persisted
// snapshot exists. Returned fresh on every call so callers may mutate it.
func SeedItems() []InventoryItem {
	return []InventoryItem{
		{ID: "1", Name: "Industrial Bleach/Jik", Category: "Chemicals", Quantity: 4, Unit: "20L Jerrycan", UnitCost: 3500, MinThreshold: 2, LastUpdated: "2023-10-01"},
		{ID: "2", Name: "Microfiber Cloths", Category: "Tools", Quantity: 45, Unit: "Pcs", UnitCost: 150, MinThreshold: 50, LastUpdated: "2023-10-02"},
		{ID: "3", Name: "Heavy Duty Floor Polish", Category: "Chemicals", Quantity: 2, Unit: "20L Jerrycan", UnitCost: 4800, MinThreshold: 1, LastUpdated: "2023-10-03"},
		{ID: "4", Name: "Hand Tissues", Category: "Paper Products", Quantity: 120, Unit: "Rolls", UnitCost: 45, MinThreshold: 30, LastUpdated: "2023-10-05"},
		{ID: "5", Name: "Glass Cleaner", Category: "Chemicals", Quantity: 8, Unit: "5L Bottle", UnitCost: 850, MinThreshold: 5, LastUpdated: "2023-10-01"},
	}
}

// SeedJobs returns the fallback job schedule, dated relative to now so the
// sample bookings always sit in the next couple of days.
func SeedJobs(now time.Time) []Job {
	return []Job{
		{
			ID:                   "j1",
			ClientName:           "Tech Corp Office",
			Date:                 FormatDate(now.AddDate(0, 0, 1)),
			Type:                 "Office",
			EstimatedSupplyUsage: map[string]float64{},
		},
		{
			ID:                   "j2",
			ClientName:           "Restaurant Deep Clean",
			Date:                 FormatDate(now.AddDate(0, 0, 2)),
			Type:                 "Deep Clean",
			EstimatedSupplyUsage: map[string]float64{},
		},
	}
}
