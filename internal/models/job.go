package models

import "time"

// JobTypes is the fixed set of job categories a client booking may use.
var JobTypes = []string{
	"Deep Clean",
	"Standard Clean",
	"Move-out",
	"Office",
}

// Job is one scheduled client booking. EstimatedSupplyUsage maps item IDs to
// expected consumption quantities; it is populated externally and never
// computed here.
type Job struct {
	ID                   string             `json:"id"`
	ClientName           string             `json:"clientName"`
	Date                 string             `json:"date"`
	Type                 string             `json:"type"`
	EstimatedSupplyUsage map[string]float64 `json:"estimatedSupplyUsage"`
}

// ValidJobType reports whether t is one of the enumerated job categories.
func ValidJobType(t string) bool {
	for _, jt := range JobTypes {
		if jt == t {
			return true
		}
	}
	return false
}

// ValidDate reports whether s parses as a calendar date.
func ValidDate(s string) bool {
	_, err := time.Parse(DateLayout, s)
	return err == nil
}
