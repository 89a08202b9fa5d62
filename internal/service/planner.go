package service

import (
	"fmt"

	"github.com/karibuclean/instock/internal/metrics"
	"github.com/karibuclean/instock/internal/models"
	"github.com/karibuclean/instock/internal/store"
)

// PlannerService owns the job schedule.
type PlannerService struct {
	jobs    *store.JobStore
	collect *metrics.Collector
}

// NewPlannerService creates a planner service.
func NewPlannerService(jobs *store.JobStore, collect *metrics.Collector) *PlannerService {
	return &PlannerService{jobs: jobs, collect: collect}
}

// Schedule validates and inserts a booking. Invalid input surfaces
// store.ErrInvalidJob; the schedule is unchanged in that case.
func (s *PlannerService) Schedule(in store.JobInput) (models.Job, error) {
	job, err := s.jobs.Schedule(in)
	if s.collect != nil {
		s.collect.Record(metrics.OpJobMutation, 0, err != nil)
	}
	if err != nil {
		return job, fmt.Errorf("schedule job: %w", err)
	}
	return job, nil
}

// List returns the schedule, sorted ascending by date.
func (s *PlannerService) List() []models.Job {
	return s.jobs.List()
}
