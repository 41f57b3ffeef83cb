package worker

import (
	"fmt"
	"reflect"
	"strings"
	"testing"

	"github.com/pipe-works/pipeworks-axis-descriptor-lab/internal/model"
)

// echoClassifier labels each row with its own removed text, so order is
// observable in the output.
type echoClassifier struct{}

func (echoClassifier) Classify(row model.ClauseRow) []string {
	return []string{"saw:" + row.Removed}
}

// panicClassifier panics on rows whose removed text contains "boom".
type panicClassifier struct{}

func (panicClassifier) Classify(row model.ClauseRow) []string {
	if strings.Contains(row.Removed, "boom") {
		panic("heuristic blew up")
	}
	return []string{"ok"}
}

func TestClassifyRows_PreservesOrder(t *testing.T) {
	rows := make([]model.ClauseRow, 20)
	for i := range rows {
		rows[i] = model.ClauseRow{Removed: fmt.Sprintf("row-%02d", i), Added: "x"}
	}

	labeled, err := ClassifyRows(echoClassifier{}, rows, 8)
	if err != nil {
		t.Fatalf("ClassifyRows: %v", err)
	}
	if len(labeled) != len(rows) {
		t.Fatalf("expected %d rows, got %d", len(rows), len(labeled))
	}
	for i, lr := range labeled {
		want := []string{fmt.Sprintf("saw:row-%02d", i)}
		if !reflect.DeepEqual(lr.Indicators, want) {
			t.Errorf("row %d out of order: got %v, want %v", i, lr.Indicators, want)
		}
	}
}

func TestClassifyRows_Empty(t *testing.T) {
	labeled, err := ClassifyRows(echoClassifier{}, nil, 4)
	if err != nil {
		t.Fatalf("ClassifyRows: %v", err)
	}
	if labeled == nil || len(labeled) != 0 {
		t.Errorf("expected empty non-nil slice, got %v", labeled)
	}
}

func TestClassifyRows_PanicIsolatedPerRow(t *testing.T) {
	rows := []model.ClauseRow{
		{Removed: "fine one", Added: "a"},
		{Removed: "boom here", Added: "b"},
		{Removed: "fine two", Added: "c"},
	}

	labeled, err := ClassifyRows(panicClassifier{}, rows, 2)
	if err == nil {
		t.Fatal("expected an error from the panicking row")
	}
	if len(labeled) != 3 {
		t.Fatalf("expected all 3 rows back, got %d", len(labeled))
	}

	if !reflect.DeepEqual(labeled[0].Indicators, []string{"ok"}) {
		t.Errorf("row 0 should classify normally, got %v", labeled[0].Indicators)
	}
	if len(labeled[1].Indicators) != 0 {
		t.Errorf("failed row should carry no indicators, got %v", labeled[1].Indicators)
	}
	if !reflect.DeepEqual(labeled[2].Indicators, []string{"ok"}) {
		t.Errorf("row 2 should classify normally, got %v", labeled[2].Indicators)
	}

	// Sides survive even when classification fails.
	if labeled[1].Removed != "boom here" || labeled[1].Added != "b" {
		t.Errorf("failed row lost its text: %+v", labeled[1])
	}
}

// Row count far beyond the channel buffers: the submitter and collector
// must overlap or this blocks forever.
func TestClassifyRows_ManyRows(t *testing.T) {
	rows := make([]model.ClauseRow, 500)
	for i := range rows {
		rows[i] = model.ClauseRow{Removed: fmt.Sprintf("row-%03d", i), Added: "x"}
	}

	labeled, err := ClassifyRows(echoClassifier{}, rows, 2)
	if err != nil {
		t.Fatalf("ClassifyRows: %v", err)
	}
	if len(labeled) != len(rows) {
		t.Fatalf("expected %d rows, got %d", len(rows), len(labeled))
	}
	for i, lr := range labeled {
		if want := "saw:" + rows[i].Removed; len(lr.Indicators) != 1 || lr.Indicators[0] != want {
			t.Fatalf("row %d out of order: got %v, want %q", i, lr.Indicators, want)
		}
	}
}

func TestClassifyRows_SingleWorker(t *testing.T) {
	rows := []model.ClauseRow{
		{Removed: "a", Added: "x"},
		{Removed: "b", Added: "y"},
	}
	labeled, err := ClassifyRows(echoClassifier{}, rows, 1)
	if err != nil {
		t.Fatalf("ClassifyRows: %v", err)
	}
	if len(labeled) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(labeled))
	}
}
