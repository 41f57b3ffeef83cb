package diff

import (
	"reflect"
	"strings"
	"testing"

	"github.com/pipe-works/pipeworks-axis-descriptor-lab/internal/model"
)

func TestGroupRows_SingleReplacement(t *testing.T) {
	script := Align(Tokenize("a b c"), Tokenize("a x c"))
	rows := GroupRows(script, false)

	want := []model.ClauseRow{{Removed: "b", Added: "x"}}
	if !reflect.DeepEqual(rows, want) {
		t.Errorf("expected %v, got %v", want, rows)
	}
}

func TestGroupRows_AllEqual(t *testing.T) {
	script := Align(Tokenize("same text here"), Tokenize("same text here"))

	if rows := GroupRows(script, false); len(rows) != 0 {
		t.Errorf("replacements-only: expected no rows, got %v", rows)
	}
	if rows := GroupRows(script, true); len(rows) != 0 {
		t.Errorf("all-changes: expected no rows, got %v", rows)
	}
}

func TestGroupRows_InsertOnlyScript(t *testing.T) {
	script := Align(nil, Tokenize("brand new text"))

	if rows := GroupRows(script, false); len(rows) != 0 {
		t.Errorf("replacements-only: expected no rows, got %v", rows)
	}

	rows := GroupRows(script, true)
	want := []model.ClauseRow{{Removed: "", Added: "brand new text"}}
	if !reflect.DeepEqual(rows, want) {
		t.Errorf("all-changes: expected %v, got %v", want, rows)
	}
}

func TestGroupRows_DeleteOnlyScript(t *testing.T) {
	script := Align(Tokenize("soon to be gone"), nil)

	if rows := GroupRows(script, false); len(rows) != 0 {
		t.Errorf("replacements-only: expected no rows, got %v", rows)
	}

	rows := GroupRows(script, true)
	want := []model.ClauseRow{{Removed: "soon to be gone", Added: ""}}
	if !reflect.DeepEqual(rows, want) {
		t.Errorf("all-changes: expected %v, got %v", want, rows)
	}
}

func TestGroupRows_TrailingChangeRegion(t *testing.T) {
	script := Align(Tokenize("stable start old ending"), Tokenize("stable start new finale"))
	rows := GroupRows(script, false)

	want := []model.ClauseRow{{Removed: "old ending", Added: "new finale"}}
	if !reflect.DeepEqual(rows, want) {
		t.Errorf("expected %v, got %v", want, rows)
	}
}

func TestGroupRows_RowsNeverSpanEqualTokens(t *testing.T) {
	script := []model.EditOp{
		{Op: model.OpDelete, Token: "one"},
		{Op: model.OpInsert, Token: "uno"},
		{Op: model.OpEqual, Token: "and"},
		{Op: model.OpDelete, Token: "two"},
		{Op: model.OpInsert, Token: "dos"},
	}
	rows := GroupRows(script, false)

	want := []model.ClauseRow{
		{Removed: "one", Added: "uno"},
		{Removed: "two", Added: "dos"},
	}
	if !reflect.DeepEqual(rows, want) {
		t.Errorf("expected %v, got %v", want, rows)
	}
}

// The removed sides of all rows, joined in order, must reproduce the
// delete-tagged tokens of the script in order; same for added sides and
// insert-tagged tokens.
func TestGroupRows_CoverageInvariant(t *testing.T) {
	cases := []struct{ a, b string }{
		{"the old man was weary tonight", "the old man looked exhausted"},
		{"alpha beta gamma", "gamma beta alpha"},
		{"a b c d", "a b c d e f"},
		{"lead middle tail", "lead other tail"},
	}
	for _, tc := range cases {
		script := Align(Tokenize(tc.a), Tokenize(tc.b))
		rows := GroupRows(script, true)

		var removed, added []string
		for _, row := range rows {
			if row.Removed != "" {
				removed = append(removed, strings.Fields(row.Removed)...)
			}
			if row.Added != "" {
				added = append(added, strings.Fields(row.Added)...)
			}
		}

		var wantRemoved, wantAdded []string
		for _, op := range script {
			switch op.Op {
			case model.OpDelete:
				wantRemoved = append(wantRemoved, op.Token)
			case model.OpInsert:
				wantAdded = append(wantAdded, op.Token)
			}
		}

		if !reflect.DeepEqual(removed, wantRemoved) {
			t.Errorf("diff(%q,%q): removed coverage got %v, want %v", tc.a, tc.b, removed, wantRemoved)
		}
		if !reflect.DeepEqual(added, wantAdded) {
			t.Errorf("diff(%q,%q): added coverage got %v, want %v", tc.a, tc.b, added, wantAdded)
		}
	}
}
