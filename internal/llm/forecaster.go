package llm

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/karibuclean/instock/internal/models"
)

// Forecaster estimates days-until-stockout per item from a snapshot of both
// stores. Implementations hold no state between calls; each call fully
// replaces prior results on the caller's side.
type Forecaster interface {
	Forecast(ctx context.Context, items []models.InventoryItem, jobs []models.Job) ([]models.Prediction, error)
}

// The predictor watches for both stockouts and suspicious shrinkage.
const forecastSystemPrompt = `You are an AI inventory manager for a commercial cleaning business in Kenya.
Your goal is to prevent 'pilferage' (theft) and ensure supplies don't run out.
Respond with a JSON array only, no prose. Every entry must have the fields
itemId, itemName, daysRemaining, runOutDate (ISO date YYYY-MM-DD),
status (one of "Safe", "Low", "Critical") and recommendation.`

// itemSnapshot is the reduced item view sent to the predictor.
type itemSnapshot struct {
	ID   string  `json:"id"`
	Name string  `json:"name"`
	Qty  float64 `json:"qty"`
	Unit string  `json:"unit"`
	Min  float64 `json:"min"`
}

// jobSnapshot is the reduced job view sent to the predictor.
type jobSnapshot struct {
	Type string `json:"type"`
	Date string `json:"date"`
}

// LLMForecaster asks the configured model for per-item predictions.
type LLMForecaster struct {
	model *Model
}

var _ Forecaster = (*LLMForecaster)(nil)

// NewForecaster creates a Forecaster on top of a Model.
func NewForecaster(model *Model) *LLMForecaster {
	return &LLMForecaster{model: model}
}

// Forecast sends the snapshots and parses the prediction array. An empty
// inventory short-circuits to an empty result without calling the service.
// Any failure returns a nil slice and an error; there is no retry and no
// fallback heuristic.
func (f *LLMForecaster) Forecast(ctx context.Context, items []models.InventoryItem, jobs []models.Job) ([]models.Prediction, error) {
	if len(items) == 0 {
		return []models.Prediction{}, nil
	}

	itemViews := make([]itemSnapshot, 0, len(items))
	for _, it := range items {
		itemViews = append(itemViews, itemSnapshot{
			ID:   it.ID,
			Name: it.Name,
			Qty:  it.Quantity,
			Unit: it.Unit,
			Min:  it.MinThreshold,
		})
	}
	jobViews := make([]jobSnapshot, 0, len(jobs))
	for _, j := range jobs {
		jobViews = append(jobViews, jobSnapshot{Type: j.Type, Date: j.Date})
	}

	itemJSON, err := json.Marshal(itemViews)
	if err != nil {
		return nil, fmt.Errorf("marshal item snapshot: %w", err)
	}
	jobJSON, err := json.Marshal(jobViews)
	if err != nil {
		return nil, fmt.Errorf("marshal job snapshot: %w", err)
	}

	userPrompt := fmt.Sprintf(`Current Stock:
%s

Upcoming Jobs Schedule (Next 7 days):
%s

Task:
Analyze usage.
1. Calculate when items will run out.
2. If an item has VERY low stock but few upcoming jobs, mark it as "Critical" and mention "Suspicious usage detected" or "Potential waste" in the recommendation.

Return a JSON array of predictions.`, itemJSON, jobJSON)

	reply, err := f.model.GenerateWithSystem(ctx, forecastSystemPrompt, userPrompt)
	if err != nil {
		return nil, fmt.Errorf("forecast call: %w", err)
	}

	var predictions []models.Prediction
	if err := json.Unmarshal([]byte(extractJSON(reply)), &predictions); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadResponse, err)
	}

	for _, p := range predictions {
		if !models.ValidStatus(p.Status) {
			return nil, fmt.Errorf("%w: status %q outside taxonomy", ErrBadResponse, p.Status)
		}
	}

	return predictions, nil
}
