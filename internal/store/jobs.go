package store

import (
	"errors"
	"log/slog"
	"os"
	"sort"
	"sync"

	"github.com/karibuclean/instock/internal/models"
)

// JobInput carries the user-entered fields for a schedule request.
type JobInput struct {
	ClientName string
	Date       string
	Type       string
}

// JobStore holds the job schedule, kept sorted ascending by date after
// every insertion.
type JobStore struct {
	mu    sync.Mutex
	path  string
	clock Clock
	jobs  []models.Job
}

// OpenJobStore loads the job document at path, falling back to the seed
// schedule when the document is missing or unreadable.
func OpenJobStore(path string, clock Clock) *JobStore {
	if clock == nil {
		clock = SystemClock
	}
	s := &JobStore{path: path, clock: clock}

	var jobs []models.Job
	err := readDocument(path, &jobs)
	switch {
	case err == nil:
		s.jobs = normalizeJobs(jobs)
	case errors.Is(err, os.ErrNotExist):
		s.jobs = models.SeedJobs(clock.Now())
	default:
		slog.Warn("job snapshot unreadable, falling back to seed data", "path", path, "error", err)
		s.jobs = models.SeedJobs(clock.Now())
	}
	return s
}

func normalizeJobs(jobs []models.Job) []models.Job {
	if jobs == nil {
		jobs = []models.Job{}
	}
	for i := range jobs {
		if jobs[i].EstimatedSupplyUsage == nil {
			jobs[i].EstimatedSupplyUsage = map[string]float64{}
		}
	}
	return jobs
}

// List returns a copy of the schedule.
func (s *JobStore) List() []models.Job {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Job, len(s.jobs))
	copy(out, s.jobs)
	return out
}

// Schedule validates and inserts a booking. A missing client name, an
// unparseable date or an unknown job type returns ErrInvalidJob with the
// schedule unchanged. On success the job gets a fresh id and an empty usage
// map, and the whole collection is re-sorted ascending by date. The sort is
// stable, so same-date jobs keep their insertion order.
func (s *JobStore) Schedule(in JobInput) (models.Job, error) {
	if in.ClientName == "" || !models.ValidDate(in.Date) || !models.ValidJobType(in.Type) {
		return models.Job{}, ErrInvalidJob
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	job := models.Job{
		ID:                   models.NewID(),
		ClientName:           in.ClientName,
		Date:                 in.Date,
		Type:                 in.Type,
		EstimatedSupplyUsage: map[string]float64{},
	}
	s.jobs = append(s.jobs, job)

	// ISO dates order lexicographically.
	sort.SliceStable(s.jobs, func(i, j int) bool {
		return s.jobs[i].Date < s.jobs[j].Date
	})

	if err := s.save(); err != nil {
		return job, err
	}
	return job, nil
}

func (s *JobStore) save() error {
	return writeDocument(s.path, s.jobs)
}
