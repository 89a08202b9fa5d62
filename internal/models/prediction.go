package models

// Prediction statuses returned by the external forecaster. The taxonomy is
// part of the external contract and must be preserved verbatim.
const (
	StatusSafe     = "Safe"
	StatusLow      = "Low"
	StatusCritical = "Critical"
)

// Prediction is an externally computed days-until-stockout estimate for one
// item. Predictions are transient: each forecast run replaces the previous
// list wholesale and nothing is persisted.
type Prediction struct {
	ItemID         string  `json:"itemId"`
	ItemName       string  `json:"itemName"`
	DaysRemaining  float64 `json:"daysRemaining"`
	RunOutDate     string  `json:"runOutDate"`
	Status         string  `json:"status"`
	Recommendation string  `json:"recommendation"`
}

// ValidStatus reports whether s is one of the three forecast statuses.
func ValidStatus(s string) bool {
	return s == StatusSafe || s == StatusLow || s == StatusCritical
}

// Identification is the external classifier's single candidate guess for a
// photographed product. Confidence is advisory free text; the operator
// always confirms the quantity before anything is committed to the store.
type Identification struct {
	Name             string  `json:"name"`
	Category         string  `json:"category"`
	QuantityEstimate float64 `json:"quantityEstimate"`
	Confidence       string  `json:"confidence"`
}
