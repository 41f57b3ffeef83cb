package pipeline

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pipe-works/pipeworks-axis-descriptor-lab/internal/model"
)

// Renderer writes analysis reports as JSON or Markdown.
type Renderer struct {
	includeFooter bool
}

// NewRenderer creates a renderer. includeFooter controls the provenance
// block at the end of Markdown output.
func NewRenderer(includeFooter bool) *Renderer {
	return &Renderer{includeFooter: includeFooter}
}

// WriteJSON writes the report as indented JSON.
func (r *Renderer) WriteJSON(w io.Writer, report *model.AnalysisReport) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(report)
}

// RenderJSONFile writes the report as JSON to a file.
func (r *Renderer) RenderJSONFile(report *model.AnalysisReport, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()
	return r.WriteJSON(f, report)
}

// WriteMarkdown writes the report as a human-readable Markdown document:
// the transformation map table, the content delta, and optionally the
// provenance footer.
func (r *Renderer) WriteMarkdown(w io.Writer, report *model.AnalysisReport) error {
	var b strings.Builder

	b.WriteString("# Structural Shift Report\n\n")
	fmt.Fprintf(&b, "Generated: %s\n\n", report.GeneratedAt.Format("2006-01-02 15:04:05 UTC"))

	b.WriteString("## Transformation Map\n\n")
	if len(report.LabeledRows) == 0 {
		b.WriteString("No structural changes detected.\n\n")
	} else {
		b.WriteString("| Removed | Added | Indicators |\n")
		b.WriteString("|---------|-------|------------|\n")
		for _, row := range report.LabeledRows {
			fmt.Fprintf(&b, "| %s | %s | %s |\n",
				mdCell(row.Removed), mdCell(row.Added), strings.Join(row.Indicators, ", "))
		}
		b.WriteString("\n")
	}

	b.WriteString("## Content Delta\n\n")
	fmt.Fprintf(&b, "- Removed: %s\n", deltaList(report.Delta.Removed))
	fmt.Fprintf(&b, "- Added: %s\n\n", deltaList(report.Delta.Added))

	if r.includeFooter {
		b.WriteString("## Provenance\n\n")
		fmt.Fprintf(&b, "- Baseline: `%s`\n", report.Provenance.BaselineHash)
		fmt.Fprintf(&b, "- Current: `%s`\n", report.Provenance.CurrentHash)
		fmt.Fprintf(&b, "- Config: `%s`\n", report.Provenance.ConfigHash)
		fmt.Fprintf(&b, "- Chain ID: `%s`\n", report.Provenance.ChainID)
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// RenderMarkdownFile writes the report as Markdown to a file.
func (r *Renderer) RenderMarkdownFile(report *model.AnalysisReport, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()
	return r.WriteMarkdown(f, report)
}

// WriteSummary prints a one-glance summary: row count, indicator counts,
// delta sizes.
func (r *Renderer) WriteSummary(w io.Writer, report *model.AnalysisReport) {
	counts := map[string]int{}
	for _, row := range report.LabeledRows {
		for _, ind := range row.Indicators {
			counts[ind]++
		}
	}

	fmt.Fprintf(w, "Rows: %d  Removed lemmas: %d  Added lemmas: %d\n",
		len(report.LabeledRows), len(report.Delta.Removed), len(report.Delta.Added))
	for _, name := range indicatorOrder(report) {
		fmt.Fprintf(w, "  %-18s %d\n", name, counts[name])
	}
}

// indicatorOrder returns the indicators that fired, in first-seen order.
func indicatorOrder(report *model.AnalysisReport) []string {
	seen := map[string]struct{}{}
	var order []string
	for _, row := range report.LabeledRows {
		for _, ind := range row.Indicators {
			if _, dup := seen[ind]; !dup {
				seen[ind] = struct{}{}
				order = append(order, ind)
			}
		}
	}
	return order
}

func mdCell(s string) string {
	if s == "" {
		return "—"
	}
	s = strings.ReplaceAll(s, "|", "\\|")
	s = strings.ReplaceAll(s, "\n", " ")
	return "`" + s + "`"
}

func deltaList(words []string) string {
	if len(words) == 0 {
		return "(none)"
	}
	return strings.Join(words, ", ")
}
