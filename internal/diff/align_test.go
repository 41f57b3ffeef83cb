package diff

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/pipe-works/pipeworks-axis-descriptor-lab/internal/model"
)

func TestAlign_Identity(t *testing.T) {
	tokens := Tokenize("the quick brown fox jumps over the lazy dog")
	script := Align(tokens, tokens)

	if len(script) != len(tokens) {
		t.Fatalf("expected %d ops, got %d", len(tokens), len(script))
	}
	for i, op := range script {
		if op.Op != model.OpEqual {
			t.Errorf("op %d: expected equal, got %q", i, op.Op)
		}
		if op.Token != tokens[i] {
			t.Errorf("op %d: expected token %q, got %q", i, tokens[i], op.Token)
		}
	}
}

func TestAlign_EmptyInputs(t *testing.T) {
	if script := Align(nil, nil); len(script) != 0 {
		t.Errorf("expected empty script for empty inputs, got %d ops", len(script))
	}

	script := Align(nil, []string{"a", "b"})
	if len(script) != 2 {
		t.Fatalf("expected 2 ops, got %d", len(script))
	}
	for _, op := range script {
		if op.Op != model.OpInsert {
			t.Errorf("expected insert, got %q", op.Op)
		}
	}

	script = Align([]string{"a", "b"}, nil)
	for _, op := range script {
		if op.Op != model.OpDelete {
			t.Errorf("expected delete, got %q", op.Op)
		}
	}
}

func TestAlign_SingleSubstitution(t *testing.T) {
	script := Align([]string{"a", "b", "c"}, []string{"a", "x", "c"})

	want := []model.EditOp{
		{Op: model.OpEqual, Token: "a"},
		{Op: model.OpDelete, Token: "b"},
		{Op: model.OpInsert, Token: "x"},
		{Op: model.OpEqual, Token: "c"},
	}
	if !reflect.DeepEqual(script, want) {
		t.Fatalf("expected %v, got %v", want, script)
	}
	if got := strings.Join(Reconstruct(script, model.OpDelete), " "); got != "a b c" {
		t.Errorf("baseline reconstruction: got %q", got)
	}
	if got := strings.Join(Reconstruct(script, model.OpInsert), " "); got != "a x c" {
		t.Errorf("current reconstruction: got %q", got)
	}
}

func TestAlign_Reconstruction(t *testing.T) {
	cases := []struct{ a, b string }{
		{"the old man was weary", "the old man looked exhausted"},
		{"a silent threat", "an unspoken intensity"},
		{"", "entirely new text here"},
		{"entirely removed text here", ""},
		{"one two three four five", "five four three two one"},
		{"x x x x", "x x"},
	}
	for _, tc := range cases {
		a := Tokenize(tc.a)
		b := Tokenize(tc.b)
		script := Align(a, b)

		// Join before comparing: an all-insert or all-delete script
		// reconstructs one side as empty, and the empty side must compare
		// equal whether it came back nil or zero-length.
		if got := strings.Join(Reconstruct(script, model.OpDelete), " "); got != strings.Join(a, " ") {
			t.Errorf("diff(%q,%q): baseline side got %q, want %q", tc.a, tc.b, got, strings.Join(a, " "))
		}
		if got := strings.Join(Reconstruct(script, model.OpInsert), " "); got != strings.Join(b, " ") {
			t.Errorf("diff(%q,%q): current side got %q, want %q", tc.a, tc.b, got, strings.Join(b, " "))
		}
		if len(script) > len(a)+len(b) {
			t.Errorf("diff(%q,%q): script length %d exceeds m+n", tc.a, tc.b, len(script))
		}
	}
}

func TestAlign_EqualCountMatchesLCS(t *testing.T) {
	a := Tokenize("a b c d e")
	b := Tokenize("a c e f")
	script := Align(a, b)

	equals := 0
	for _, op := range script {
		if op.Op == model.OpEqual {
			equals++
		}
	}
	if equals != 3 { // LCS is "a c e"
		t.Errorf("expected 3 equal ops, got %d", equals)
	}
}

func TestAlign_InsertPreferredOnTie(t *testing.T) {
	// With a=[x] b=[y] both paths have LCS 0; the walk must emit the
	// insert first (it decrements j while dp values tie).
	script := Align([]string{"x"}, []string{"y"})
	if len(script) != 2 {
		t.Fatalf("expected 2 ops, got %d", len(script))
	}
	if script[0].Op != model.OpDelete || script[1].Op != model.OpInsert {
		// The walk appends Insert first and is then reversed, so the
		// left-to-right script reads delete-then-insert.
		t.Errorf("tie-break order changed: got %v", script)
	}
}

func TestAlign_Deterministic(t *testing.T) {
	a := Tokenize("alpha beta gamma delta alpha beta")
	b := Tokenize("beta alpha delta gamma beta alpha")
	first := Align(a, b)
	for i := 0; i < 5; i++ {
		if got := Align(a, b); !reflect.DeepEqual(got, first) {
			t.Fatalf("run %d produced a different script", i)
		}
	}
}

func TestAlignContext_SizeLimit(t *testing.T) {
	a := make([]string, 100)
	b := make([]string, 10)
	for i := range a {
		a[i] = "w"
	}
	_, err := AlignContext(context.Background(), a, b, 50)
	if !errors.Is(err, ErrInputTooLarge) {
		t.Fatalf("expected ErrInputTooLarge, got %v", err)
	}

	if _, err := AlignContext(context.Background(), a, b, 100); err != nil {
		t.Fatalf("expected success at the limit, got %v", err)
	}
}

func TestAlignContext_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	a := Tokenize("a b c d e f g h")
	if _, err := AlignContext(ctx, a, a, 0); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
