package worker

import (
	"context"
	"fmt"
	"sort"

	"github.com/pipe-works/pipeworks-axis-descriptor-lab/internal/model"
)

// RowClassifier labels one clause row with its indicators.
type RowClassifier interface {
	Classify(row model.ClauseRow) []string
}

// RowJob classifies a single clause row. Index records the row's position
// so results can be reordered after the pool returns them.
type RowJob struct {
	Index      int
	Row        model.ClauseRow
	Classifier RowClassifier
}

// Execute runs the classifier for one row. A panic in a heuristic is
// contained here: the row comes back with no indicators and an error,
// and every other row still gets classified.
func (j *RowJob) Execute(ctx context.Context) Result {
	result := &RowResult{
		Index: j.Index,
		Row:   model.LabeledRow{Removed: j.Row.Removed, Added: j.Row.Added, Indicators: []string{}},
	}

	if err := ctx.Err(); err != nil {
		result.Error = err
		return result
	}

	defer func() {
		if r := recover(); r != nil {
			result.Error = fmt.Errorf("classify row %d: %v", j.Index, r)
		}
	}()

	result.Row.Indicators = j.Classifier.Classify(j.Row)
	return result
}

// RowResult is one classified row plus its original position.
type RowResult struct {
	Index int
	Row   model.LabeledRow
	Error error
}

// Err reports the row's classification error, if any.
func (r *RowResult) Err() error {
	return r.Error
}

// ClassifyRows labels every row concurrently and returns the labeled rows
// in their original order. Rows whose classification failed keep empty
// indicator lists; the first such error is returned alongside the full
// result set.
func ClassifyRows(classifier RowClassifier, rows []model.ClauseRow, concurrency int) ([]model.LabeledRow, error) {
	if len(rows) == 0 {
		return []model.LabeledRow{}, nil
	}

	pool := NewPool(concurrency)
	pool.Start()

	// Submit from a separate goroutine so the collector can drain results
	// while rows are still being queued; submitting everything first would
	// deadlock once the row count exceeds the channel buffers.
	go func() {
		for i, row := range rows {
			pool.Submit(&RowJob{Index: i, Row: row, Classifier: classifier})
		}
		pool.Close()
	}()

	results := pool.Collect()

	rowResults := make([]*RowResult, 0, len(results))
	for _, r := range results {
		rowResults = append(rowResults, r.(*RowResult))
	}
	sort.Slice(rowResults, func(a, b int) bool {
		return rowResults[a].Index < rowResults[b].Index
	})

	labeled := make([]model.LabeledRow, len(rowResults))
	var firstErr error
	for i, r := range rowResults {
		labeled[i] = r.Row
		if r.Error != nil && firstErr == nil {
			firstErr = r.Error
		}
	}

	return labeled, firstErr
}
