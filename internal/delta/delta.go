package delta

import (
	"strings"

	"github.com/pipe-works/pipeworks-axis-descriptor-lab/internal/analyze"
	"github.com/pipe-works/pipeworks-axis-descriptor-lab/internal/model"
)

// ContentLemmas runs the signal-isolation pipeline on one text: tokenize,
// lowercase, keep alpha-bearing tokens, lemmatize, drop stopwords. The
// returned slice is in first-occurrence order with duplicates collapsed;
// the set mirrors it for O(1) membership tests.
func ContentLemmas(tk analyze.Toolkit, text string) ([]string, map[string]struct{}) {
	seen := make(map[string]struct{})
	var ordered []string

	if strings.TrimSpace(text) == "" {
		return ordered, seen
	}

	for _, tok := range analyze.LowerAlphaTokens(tk.TagPOS(text)) {
		lemma := tk.Lemmatize(tok)
		if lemma == "" || tk.IsStopword(lemma) {
			continue
		}
		if _, dup := seen[lemma]; dup {
			continue
		}
		seen[lemma] = struct{}{}
		ordered = append(ordered, lemma)
	}
	return ordered, seen
}

// Compute returns the content-word delta between two texts: lemmas unique
// to the baseline (removed) and lemmas unique to the current text (added),
// each in first-occurrence order of its source. A lemma present in both
// texts appears in neither list; identical texts yield two empty lists.
func Compute(tk analyze.Toolkit, baseline, current string) model.ContentDelta {
	baseOrdered, baseSet := ContentLemmas(tk, baseline)
	curOrdered, curSet := ContentLemmas(tk, current)

	d := model.ContentDelta{Removed: []string{}, Added: []string{}}
	for _, lemma := range baseOrdered {
		if _, ok := curSet[lemma]; !ok {
			d.Removed = append(d.Removed, lemma)
		}
	}
	for _, lemma := range curOrdered {
		if _, ok := baseSet[lemma]; !ok {
			d.Added = append(d.Added, lemma)
		}
	}
	return d
}
