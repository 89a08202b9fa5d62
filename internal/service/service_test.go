package service

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/jpeg"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/karibuclean/instock/internal/metrics"
	"github.com/karibuclean/instock/internal/models"
	"github.com/karibuclean/instock/internal/store"
)

type fixedClock struct{ t time.Time }

func (c fixedClock) Now() time.Time { return c.t }

var testClock = fixedClock{t: time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)}

func newStores(t *testing.T) (*store.ItemStore, *store.JobStore) {
	t.Helper()
	dir := t.TempDir()
	itemsPath := filepath.Join(dir, store.ItemsFile)
	jobsPath := filepath.Join(dir, store.JobsFile)
	require.NoError(t, os.WriteFile(itemsPath, []byte("[]"), 0644))
	require.NoError(t, os.WriteFile(jobsPath, []byte("[]"), 0644))
	return store.OpenItemStore(itemsPath, testClock), store.OpenJobStore(jobsPath, testClock)
}

type stubForecaster struct {
	preds []models.Prediction
	err   error
}

func (s stubForecaster) Forecast(ctx context.Context, items []models.InventoryItem, jobs []models.Job) ([]models.Prediction, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.preds, nil
}

type stubClassifier struct {
	ident models.Identification
	err   error
	got   []byte
}

func (s *stubClassifier) Identify(ctx context.Context, imageJPEG []byte) (models.Identification, error) {
	s.got = imageJPEG
	if s.err != nil {
		return models.Identification{}, s.err
	}
	return s.ident, nil
}

func smallJPEG(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 32, 32)), nil))
	return buf.Bytes()
}

func TestAdjustQuantityClampsAtZero(t *testing.T) {
	items, _ := newStores(t)
	inv := NewInventoryService(items, nil)

	res, err := inv.Add(store.ItemInput{Name: "Gloves", Category: "PPE", Quantity: 3, Unit: "Pairs"})
	require.NoError(t, err)

	require.NoError(t, inv.AdjustQuantity(res.Item.ID, -10))

	got, ok := items.Get(res.Item.ID)
	require.True(t, ok)
	assert.Equal(t, 0.0, got.Quantity, "decrement past zero must clamp")
}

func TestAdjustQuantityUnknownIDIsNoOp(t *testing.T) {
	items, _ := newStores(t)
	inv := NewInventoryService(items, nil)
	require.NoError(t, inv.AdjustQuantity("ghost", -1))
	assert.Empty(t, inv.Search(SearchOptions{}))
}

func TestSearchFilters(t *testing.T) {
	items, _ := newStores(t)
	inv := NewInventoryService(items, nil)

	for _, in := range []store.ItemInput{
		{Name: "Industrial Bleach", Category: "Chemicals", Quantity: 4, MinThreshold: 2},
		{Name: "Microfiber Cloths", Category: "Tools", Quantity: 10, MinThreshold: 50},
		{Name: "Glass Cleaner", Category: "Chemicals", Quantity: 8, MinThreshold: 5},
	} {
		_, err := inv.Add(in)
		require.NoError(t, err)
	}

	assert.Len(t, inv.Search(SearchOptions{Query: "clean"}), 1)
	assert.Len(t, inv.Search(SearchOptions{Query: "chem"}), 2, "query matches category too")
	assert.Len(t, inv.Search(SearchOptions{Category: "Chemicals"}), 2)
	assert.Len(t, inv.Search(SearchOptions{LowOnly: true}), 1)
	assert.Len(t, inv.Search(SearchOptions{}), 3)
}

func TestReportValuation(t *testing.T) {
	items, _ := newStores(t)
	inv := NewInventoryService(items, nil)

	_, err := inv.Add(store.ItemInput{Name: "Bleach", Category: "Chemicals", Quantity: 4, UnitCost: 3500, MinThreshold: 2})
	require.NoError(t, err)
	_, err = inv.Add(store.ItemInput{Name: "Cloths", Category: "Tools", Quantity: 10, UnitCost: 150, MinThreshold: 50})
	require.NoError(t, err)

	rep := inv.Report()
	assert.Equal(t, 2, rep.ItemCount)
	assert.Equal(t, 4*3500.0+10*150.0, rep.TotalValue)
	assert.Equal(t, 1, rep.LowStockCount)
	require.Len(t, rep.LowStockItems, 1)
	assert.Equal(t, "Cloths", rep.LowStockItems[0].Name)
}

func TestForecastFailureLeavesStoresUntouched(t *testing.T) {
	items, jobs := newStores(t)
	_, err := items.AddOrMerge(store.ItemInput{Name: "Bleach", Category: "Chemicals", Quantity: 4})
	require.NoError(t, err)

	before := items.List()
	beforeJobs := jobs.List()

	ins := NewInsightService(items, jobs, stubForecaster{err: errors.New("dial tcp: connection refused")}, nil, metrics.NewCollector())
	preds, err := ins.Forecast(context.Background())

	require.Error(t, err)
	assert.Empty(t, preds, "failed forecast returns an empty list")
	assert.Equal(t, before, items.List())
	assert.Equal(t, beforeJobs, jobs.List())
	assert.Empty(t, ins.Predictions())
}

func TestForecastReplacesPriorResults(t *testing.T) {
	items, jobs := newStores(t)
	_, err := items.AddOrMerge(store.ItemInput{Name: "Bleach", Category: "Chemicals", Quantity: 4})
	require.NoError(t, err)

	first := []models.Prediction{{ItemID: "i1", ItemName: "Bleach", Status: models.StatusLow}}
	ins := NewInsightService(items, jobs, stubForecaster{preds: first}, nil, nil)

	preds, err := ins.Forecast(context.Background())
	require.NoError(t, err)
	assert.Equal(t, first, preds)
	assert.Equal(t, first, ins.Predictions())

	// A later failing run wipes the previous results rather than merging.
	ins.forecaster = stubForecaster{err: errors.New("boom")}
	_, err = ins.Forecast(context.Background())
	require.Error(t, err)
	assert.Empty(t, ins.Predictions())
}

func TestIdentifyPipeline(t *testing.T) {
	items, jobs := newStores(t)
	cls := &stubClassifier{ident: models.Identification{Name: "OMO Detergent", Category: "Chemicals", QuantityEstimate: 1, Confidence: "High"}}
	ins := NewInsightService(items, jobs, nil, cls, nil)

	ident, err := ins.Identify(context.Background(), smallJPEG(t))
	require.NoError(t, err)
	assert.Equal(t, "OMO Detergent", ident.Name)
	assert.NotEmpty(t, cls.got, "classifier must receive the prepared image")
	assert.Empty(t, items.List(), "identify must not commit anything")
}

func TestIdentifyRejectsUnreadableImage(t *testing.T) {
	items, jobs := newStores(t)
	cls := &stubClassifier{}
	ins := NewInsightService(items, jobs, nil, cls, nil)

	_, err := ins.Identify(context.Background(), []byte("not an image"))
	require.Error(t, err)
	assert.Nil(t, cls.got, "classifier must not be called for an unreadable image")
}
