package service

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/karibuclean/instock/internal/imaging"
	"github.com/karibuclean/instock/internal/llm"
	"github.com/karibuclean/instock/internal/metrics"
	"github.com/karibuclean/instock/internal/models"
	"github.com/karibuclean/instock/internal/store"
)

// InsightService orchestrates the two external AI calls. The prediction
// list is transient view state: each forecast run replaces it wholesale and
// nothing is ever persisted.
type InsightService struct {
	items      *store.ItemStore
	jobs       *store.JobStore
	forecaster llm.Forecaster
	classifier llm.Classifier
	collect    *metrics.Collector

	mu          sync.Mutex
	predictions []models.Prediction
}

// NewInsightService creates an insight service.
func NewInsightService(items *store.ItemStore, jobs *store.JobStore, forecaster llm.Forecaster, classifier llm.Classifier, collect *metrics.Collector) *InsightService {
	return &InsightService{
		items:      items,
		jobs:       jobs,
		forecaster: forecaster,
		classifier: classifier,
		collect:    collect,
	}
}

// Forecast snapshots both stores and asks the external predictor. On any
// failure the result is an empty list and the cached predictions are
// cleared; the error is logged and returned but never retried, and neither
// store is touched.
func (s *InsightService) Forecast(ctx context.Context) ([]models.Prediction, error) {
	start := time.Now()
	preds, err := s.forecaster.Forecast(ctx, s.items.List(), s.jobs.List())
	s.record(metrics.OpForecast, start, err)

	if err != nil {
		slog.Error("forecast failed", "error", err)
		s.setPredictions(nil)
		return []models.Prediction{}, fmt.Errorf("forecast: %w", err)
	}

	s.setPredictions(preds)
	return preds, nil
}

// Predictions returns the result of the most recent forecast run.
func (s *InsightService) Predictions() []models.Prediction {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Prediction, len(s.predictions))
	copy(out, s.predictions)
	return out
}

// Identify bounds the captured photo and asks the external classifier for a
// single candidate. Nothing is committed here; the caller confirms the
// quantity and then goes through InventoryService.Add.
func (s *InsightService) Identify(ctx context.Context, image []byte) (models.Identification, error) {
	prepared, err := imaging.PrepareJPEG(image, imaging.MaxDimension)
	if err != nil {
		return models.Identification{}, fmt.Errorf("prepare image: %w", err)
	}

	start := time.Now()
	ident, err := s.classifier.Identify(ctx, prepared)
	s.record(metrics.OpIdentify, start, err)

	if err != nil {
		slog.Error("identification failed", "error", err)
		return models.Identification{}, fmt.Errorf("identify: %w", err)
	}
	return ident, nil
}

func (s *InsightService) setPredictions(preds []models.Prediction) {
	s.mu.Lock()
	s.predictions = preds
	s.mu.Unlock()
}

func (s *InsightService) record(op string, start time.Time, err error) {
	if s.collect != nil {
		s.collect.Record(op, time.Since(start), err != nil)
	}
}
