package domain

import (
	"errors"
	"sort"
	"time"
)

// BatchReport summarizes one batch identification run for export.
type BatchReport struct {
	RunID       string        `json:"run_id"`
	GeneratedAt time.Time     `json:"generated_at"`
	Duration    time.Duration `json:"duration"`

	Total       int `json:"total"`
	Directories int `json:"directories"`
	Identified  int `json:"identified"`
	Failed      int `json:"failed"`

	// ByDescription counts identified entries per description, most common
	// first (ties alphabetical, so the order is deterministic).
	ByDescription []DescriptionCount `json:"by_description"`

	// Errors lists every failed entry with its failure kind.
	Errors []ReportError `json:"errors"`
}

// DescriptionCount is one row of the per-description breakdown.
type DescriptionCount struct {
	Description string `json:"description"`
	Count       int    `json:"count"`
}

// ReportError is one failed entry in the report's error table.
type ReportError struct {
	Path    string    `json:"path"`
	Kind    ErrorKind `json:"kind"`
	Message string    `json:"message"`
}

// NewBatchReport aggregates outcomes into a report. The outcome slice is read
// only; the report owns all of its data.
func NewBatchReport(runID string, generatedAt time.Time, duration time.Duration, outcomes []Outcome) *BatchReport {
	r := &BatchReport{
		RunID:       runID,
		GeneratedAt: generatedAt,
		Duration:    duration,
		Total:       len(outcomes),
	}

	counts := make(map[string]int)
	for _, o := range outcomes {
		if o.Failed() {
			r.Failed++
			re := ReportError{Path: o.Path, Message: o.Err.Error()}
			var fe *FileError
			if errors.As(o.Err, &fe) {
				re.Kind = fe.Kind
			}
			r.Errors = append(r.Errors, re)
			continue
		}
		if o.Info.IsDir {
			r.Directories++
			continue
		}
		r.Identified++
		counts[o.Info.Description]++
	}

	r.ByDescription = make([]DescriptionCount, 0, len(counts))
	for desc, n := range counts {
		r.ByDescription = append(r.ByDescription, DescriptionCount{Description: desc, Count: n})
	}
	sort.Slice(r.ByDescription, func(i, j int) bool {
		if r.ByDescription[i].Count != r.ByDescription[j].Count {
			return r.ByDescription[i].Count > r.ByDescription[j].Count
		}
		return r.ByDescription[i].Description < r.ByDescription[j].Description
	})

	return r
}
