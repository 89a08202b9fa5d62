package llm

import (
	"context"

	"github.com/karibuclean/instock/internal/models"
)

// Unavailable is a Forecaster and Classifier that fails every call with a
// fixed error. The server uses it when no provider could be configured, so
// both AI endpoints report the misconfiguration instead of an empty result.
type Unavailable struct {
	Err error
}

var (
	_ Forecaster = Unavailable{}
	_ Classifier = Unavailable{}
)

func (u Unavailable) Forecast(ctx context.Context, items []models.InventoryItem, jobs []models.Job) ([]models.Prediction, error) {
	return nil, u.Err
}

func (u Unavailable) Identify(ctx context.Context, imageJPEG []byte) (models.Identification, error) {
	return models.Identification{}, u.Err
}
