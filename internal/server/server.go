// Package server exposes the InStock operations over HTTP for a front-end.
package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/karibuclean/instock/internal/llm"
	"github.com/karibuclean/instock/internal/metrics"
	"github.com/karibuclean/instock/internal/models"
	"github.com/karibuclean/instock/internal/service"
	"github.com/karibuclean/instock/internal/store"
)

// maxImageUpload bounds the multipart body for /v1/identify.
const maxImageUpload = 20 << 20

// Server holds the HTTP API dependencies.
type Server struct {
	Inventory *service.InventoryService
	Planner   *service.PlannerService
	Insights  *service.InsightService
	Metrics   *metrics.Collector
	Logger    *slog.Logger
}

// Router builds the chi handler.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(RequestLogger(s.Logger))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Route("/v1", func(r chi.Router) {
		r.Get("/items", s.handleListItems)
		r.Post("/items", s.handleAddItem)
		r.Patch("/items/{id}", s.handleUpdateItem)

		r.Get("/jobs", s.handleListJobs)
		r.Post("/jobs", s.handleScheduleJob)

		r.Post("/forecast", s.handleForecast)
		r.Get("/predictions", s.handlePredictions)
		r.Post("/identify", s.handleIdentify)

		r.Get("/report", s.handleReport)
		r.Get("/stats", s.handleStats)
	})

	return r
}

func (s *Server) handleListItems(w http.ResponseWriter, r *http.Request) {
	opts := service.SearchOptions{
		Query:    r.URL.Query().Get("search"),
		Category: r.URL.Query().Get("category"),
	}
	if low := r.URL.Query().Get("low"); low != "" {
		opts.LowOnly, _ = strconv.ParseBool(low)
	}
	items := s.Inventory.Search(opts)
	if items == nil {
		// Never encode null for an empty listing.
		items = []models.InventoryItem{}
	}
	writeJSON(w, http.StatusOK, items)
}

type addItemRequest struct {
	Name         string  `json:"name"`
	Category     string  `json:"category"`
	Quantity     float64 `json:"quantity"`
	Unit         string  `json:"unit"`
	UnitCost     float64 `json:"unitCost"`
	MinThreshold float64 `json:"minThreshold"`
}

func (s *Server) handleAddItem(w http.ResponseWriter, r *http.Request) {
	var req addItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErr(w, http.StatusBadRequest, fmt.Errorf("decode body: %w", err))
		return
	}
	if req.Name == "" {
		writeErr(w, http.StatusBadRequest, errors.New("name is required"))
		return
	}
	if req.Quantity < 0 || req.UnitCost < 0 || req.MinThreshold < 0 {
		writeErr(w, http.StatusBadRequest, errors.New("quantity, unitCost and minThreshold must be non-negative"))
		return
	}

	res, err := s.Inventory.Add(store.ItemInput{
		Name:         req.Name,
		Category:     req.Category,
		Quantity:     req.Quantity,
		Unit:         req.Unit,
		UnitCost:     req.UnitCost,
		MinThreshold: req.MinThreshold,
	})
	if err != nil {
		writeErr(w, http.StatusInternalServerError, err)
		return
	}

	status := http.StatusCreated
	if res.Merged {
		status = http.StatusOK
	}
	writeJSON(w, status, map[string]any{
		"item":   res.Item,
		"merged": res.Merged,
	})
}

type updateItemRequest struct {
	Quantity *float64 `json:"quantity,omitempty"`
	UnitCost *float64 `json:"unitCost,omitempty"`
}

func (s *Server) handleUpdateItem(w http.ResponseWriter, r *http.Request) {
	var req updateItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErr(w, http.StatusBadRequest, fmt.Errorf("decode body: %w", err))
		return
	}
	if (req.Quantity != nil && *req.Quantity < 0) || (req.UnitCost != nil && *req.UnitCost < 0) {
		writeErr(w, http.StatusBadRequest, errors.New("quantity and unitCost must be non-negative"))
		return
	}

	id := chi.URLParam(r, "id")
	if req.Quantity != nil {
		item, ok := s.Inventory.Get(id)
		if ok {
			if err := s.Inventory.AdjustQuantity(id, *req.Quantity-item.Quantity); err != nil {
				writeErr(w, http.StatusInternalServerError, err)
				return
			}
		}
	}
	if req.UnitCost != nil {
		if err := s.Inventory.SetUnitCost(id, *req.UnitCost); err != nil {
			writeErr(w, http.StatusInternalServerError, err)
			return
		}
	}

	// Unknown ids are a no-op by contract, not an error.
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleListJobs(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.Planner.List())
}

type scheduleJobRequest struct {
	ClientName string `json:"clientName"`
	Date       string `json:"date"`
	Type       string `json:"type"`
}

func (s *Server) handleScheduleJob(w http.ResponseWriter, r *http.Request) {
	var req scheduleJobRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErr(w, http.StatusBadRequest, fmt.Errorf("decode body: %w", err))
		return
	}

	job, err := s.Planner.Schedule(store.JobInput{
		ClientName: req.ClientName,
		Date:       req.Date,
		Type:       req.Type,
	})
	if err != nil {
		if errors.Is(err, store.ErrInvalidJob) {
			writeErr(w, http.StatusBadRequest, err)
			return
		}
		writeErr(w, http.StatusInternalServerError, err)
		return
	}

	writeJSON(w, http.StatusCreated, job)
}

func (s *Server) handleForecast(w http.ResponseWriter, r *http.Request) {
	preds, err := s.Insights.Forecast(r.Context())
	if err != nil {
		writeErr(w, externalCallStatus(err), err)
		return
	}
	writeJSON(w, http.StatusOK, preds)
}

func (s *Server) handlePredictions(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.Insights.Predictions())
}

func (s *Server) handleIdentify(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxImageUpload); err != nil {
		writeErr(w, http.StatusBadRequest, fmt.Errorf("parse multipart: %w", err))
		return
	}
	file, _, err := r.FormFile("image")
	if err != nil {
		writeErr(w, http.StatusBadRequest, fmt.Errorf("missing 'image' file: %w", err))
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		writeErr(w, http.StatusBadRequest, fmt.Errorf("read image: %w", err))
		return
	}

	ident, err := s.Insights.Identify(r.Context(), data)
	if err != nil {
		writeErr(w, externalCallStatus(err), err)
		return
	}
	writeJSON(w, http.StatusOK, ident)
}

func (s *Server) handleReport(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.Inventory.Report())
}

func (s *Server) handleStats(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.Metrics.Snapshot())
}

// externalCallStatus maps the distinguishable failure modes of the two AI
// calls onto HTTP statuses: a missing credential is a server-side
// configuration problem, everything else is an upstream failure.
func externalCallStatus(err error) int {
	switch {
	case errors.Is(err, llm.ErrNoCredentials):
		return http.StatusServiceUnavailable
	case errors.Is(err, llm.ErrBadResponse):
		return http.StatusBadGateway
	default:
		return http.StatusBadGateway
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeErr(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
