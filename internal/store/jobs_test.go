package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func emptyJobStore(t *testing.T) *JobStore {
	t.Helper()
	path := filepath.Join(t.TempDir(), JobsFile)
	require.NoError(t, os.WriteFile(path, []byte("[]"), 0644))
	return OpenJobStore(path, testClock)
}

func TestScheduleKeepsDatesAscending(t *testing.T) {
	s := emptyJobStore(t)

	dates := []string{"2024-04-10", "2024-04-02", "2024-04-07", "2024-04-01"}
	for _, d := range dates {
		_, err := s.Schedule(JobInput{ClientName: "Client " + d, Date: d, Type: "Office"})
		require.NoError(t, err)

		jobs := s.List()
		for i := 1; i < len(jobs); i++ {
			assert.LessOrEqual(t, jobs[i-1].Date, jobs[i].Date, "schedule out of order after inserting %s", d)
		}
	}
}

func TestScheduleStableForEqualDates(t *testing.T) {
	s := emptyJobStore(t)

	for _, client := range []string{"First", "Second", "Third"} {
		_, err := s.Schedule(JobInput{ClientName: client, Date: "2024-04-05", Type: "Deep Clean"})
		require.NoError(t, err)
	}

	jobs := s.List()
	require.Len(t, jobs, 3)
	assert.Equal(t, "First", jobs[0].ClientName)
	assert.Equal(t, "Second", jobs[1].ClientName)
	assert.Equal(t, "Third", jobs[2].ClientName)
}

func TestScheduleRejectsInvalidInput(t *testing.T) {
	tests := []struct {
		name string
		in   JobInput
	}{
		{"empty client name", JobInput{Date: "2024-04-05", Type: "Office"}},
		{"missing date", JobInput{ClientName: "Acme", Type: "Office"}},
		{"garbage date", JobInput{ClientName: "Acme", Date: "next tuesday", Type: "Office"}},
		{"unknown type", JobInput{ClientName: "Acme", Date: "2024-04-05", Type: "Gardening"}},
		{"missing type", JobInput{ClientName: "Acme", Date: "2024-04-05"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := emptyJobStore(t)
			_, err := s.Schedule(tt.in)
			assert.ErrorIs(t, err, ErrInvalidJob)
			assert.Empty(t, s.List(), "rejected schedule must leave the store unchanged")
		})
	}
}

func TestScheduleAssignsIDAndEmptyUsage(t *testing.T) {
	s := emptyJobStore(t)

	job, err := s.Schedule(JobInput{ClientName: "Acme", Date: "2024-04-05", Type: "Move-out"})
	require.NoError(t, err)
	assert.NotEmpty(t, job.ID)
	assert.NotNil(t, job.EstimatedSupplyUsage)
	assert.Empty(t, job.EstimatedSupplyUsage)
}

func TestJobRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), JobsFile)
	require.NoError(t, os.WriteFile(path, []byte("[]"), 0644))

	s := OpenJobStore(path, testClock)
	_, err := s.Schedule(JobInput{ClientName: "Acme", Date: "2024-04-05", Type: "Office"})
	require.NoError(t, err)

	reloaded := OpenJobStore(path, testClock)
	assert.Equal(t, s.List(), reloaded.List())
}

func TestCorruptJobDocumentFallsBackToSeed(t *testing.T) {
	path := filepath.Join(t.TempDir(), JobsFile)
	require.NoError(t, os.WriteFile(path, []byte("not even close"), 0644))

	s := OpenJobStore(path, testClock)
	jobs := s.List()
	require.Len(t, jobs, 2)
	assert.Equal(t, "Tech Corp Office", jobs[0].ClientName)
}

func TestLegacyJobWithNilUsageMapNormalized(t *testing.T) {
	path := filepath.Join(t.TempDir(), JobsFile)
	doc := `[{"id":"j9","clientName":"Acme","date":"2024-04-05","type":"Office"}]`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0644))

	s := OpenJobStore(path, testClock)
	jobs := s.List()
	require.Len(t, jobs, 1)
	assert.NotNil(t, jobs[0].EstimatedSupplyUsage)
}
