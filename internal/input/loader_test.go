package input

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadPassage_TextAndMarkdown(t *testing.T) {
	dir := t.TempDir()

	txt := writeFile(t, dir, "a.txt", "  The keeper stands.  \n")
	got, err := LoadPassage(txt)
	if err != nil {
		t.Fatalf("LoadPassage txt: %v", err)
	}
	if got != "The keeper stands." {
		t.Errorf("txt passage = %q", got)
	}

	md := writeFile(t, dir, "b.md", "# Heading\n\nThe keeper waits.\n")
	got, err = LoadPassage(md)
	if err != nil {
		t.Fatalf("LoadPassage md: %v", err)
	}
	if !strings.Contains(got, "The keeper waits.") {
		t.Errorf("md passage = %q", got)
	}
}

func TestLoadPassage_HTML(t *testing.T) {
	dir := t.TempDir()
	page := `<html><head><style>body{color:red}</style>
<script>var x = 1;</script></head>
<body><p>The keeper  stands.</p><noscript>enable js</noscript></body></html>`
	path := writeFile(t, dir, "c.html", page)

	got, err := LoadPassage(path)
	if err != nil {
		t.Fatalf("LoadPassage html: %v", err)
	}
	if got != "The keeper  stands." && got != "The keeper stands." {
		t.Errorf("html passage = %q", got)
	}
	if strings.Contains(got, "var x") || strings.Contains(got, "enable js") || strings.Contains(got, "color:red") {
		t.Errorf("invisible content leaked: %q", got)
	}
}

func TestLoadPassage_UnsupportedAndMissing(t *testing.T) {
	dir := t.TempDir()
	bad := writeFile(t, dir, "d.pdf", "binary")

	if _, err := LoadPassage(bad); err == nil {
		t.Error("expected error for unsupported extension")
	}
	if _, err := LoadPassage(filepath.Join(dir, "missing.txt")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestLoadPair(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "base.txt", "old text")
	b := writeFile(t, dir, "cur.txt", "new text")

	baseline, current, err := LoadPair(a, b)
	if err != nil {
		t.Fatalf("LoadPair: %v", err)
	}
	if baseline != "old text" || current != "new text" {
		t.Errorf("got (%q, %q)", baseline, current)
	}

	if _, _, err := LoadPair(a, filepath.Join(dir, "nope.txt")); err == nil {
		t.Error("expected error for missing current passage")
	}
}

func TestVisibleText_InvalidHTMLStillParses(t *testing.T) {
	// html.Parse is forgiving; fragments come back as text.
	got, err := VisibleText("<p>unclosed")
	if err != nil {
		t.Fatalf("VisibleText: %v", err)
	}
	if got != "unclosed" {
		t.Errorf("got %q", got)
	}
}

func TestPrompts(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "system_prompt_v01.txt", "  You are a descriptive layer.\n")
	writeFile(t, dir, "alt_prompt.txt", "Describe plainly.")
	writeFile(t, dir, "notes.md", "not a prompt")

	got, err := LoadPrompt(dir, "system_prompt_v01")
	if err != nil {
		t.Fatalf("LoadPrompt: %v", err)
	}
	if got != "You are a descriptive layer." {
		t.Errorf("prompt = %q", got)
	}

	if _, err := LoadPrompt(dir, "missing"); err == nil {
		t.Error("expected error for missing prompt")
	}

	names := ListPrompts(dir)
	if !reflect.DeepEqual(names, []string{"alt_prompt", "system_prompt_v01"}) {
		t.Errorf("ListPrompts = %v", names)
	}

	if names := ListPrompts(filepath.Join(dir, "nope")); len(names) != 0 {
		t.Errorf("missing dir should list nothing, got %v", names)
	}
}
