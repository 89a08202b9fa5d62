// Package store provides the two file-backed repositories behind InStock:
// inventory items and scheduled jobs. Each store owns one JSON document,
// loaded once at open and overwritten wholesale after every mutation.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Default document names inside the data directory. The keys mirror the
// namespacing of the persisted snapshots ("instock_ai_data_v1" /
// "instock_ai_jobs_v1").
const (
	ItemsFile = "instock_ai_data_v1.json"
	JobsFile  = "instock_ai_jobs_v1.json"
)

// ErrInvalidJob is returned by Schedule when a required field is missing or
// malformed. The store is left unchanged.
var ErrInvalidJob = errors.New("job requires a client name, a valid date and a known job type")

// Clock supplies "today" to the stores so tests can fix the date.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// SystemClock is the wall-clock Clock used outside of tests.
var SystemClock Clock = systemClock{}

// readDocument loads and unmarshals a JSON document into v.
// Returns os.ErrNotExist when the file is absent.
func readDocument(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("parse %s: %w", filepath.Base(path), err)
	}
	return nil
}

// writeDocument marshals v and replaces the document atomically via a
// temp-file rename, so a crash mid-write never leaves a torn snapshot.
func writeDocument(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal %s: %w", filepath.Base(path), err)
	}

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".instock-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write %s: %w", filepath.Base(path), err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("replace %s: %w", filepath.Base(path), err)
	}
	return nil
}
