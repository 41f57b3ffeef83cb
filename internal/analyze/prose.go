package analyze

import (
	"fmt"
	"strings"
	"sync"

	"github.com/aaaton/golem/v4"
	"github.com/aaaton/golem/v4/dicts/en"
	"github.com/jdkato/prose/v2"
)

// ProseToolkit implements Toolkit on top of the prose tokenizer/tagger and
// the golem dictionary lemmatizer. Both are loaded once and are safe for
// concurrent use; the toolkit holds no per-request state.
type ProseToolkit struct {
	lemmatizer *golem.Lemmatizer
}

var (
	sharedToolkit *ProseToolkit
	sharedErr     error
	toolkitOnce   sync.Once
)

// NewProseToolkit builds the production toolkit. The golem English
// dictionary is the only load that can fail.
func NewProseToolkit() (*ProseToolkit, error) {
	lem, err := golem.New(en.New())
	if err != nil {
		return nil, fmt.Errorf("load lemmatizer dictionary: %w", err)
	}
	return &ProseToolkit{lemmatizer: lem}, nil
}

// SharedToolkit returns a process-wide toolkit, loading it on first use.
func SharedToolkit() (*ProseToolkit, error) {
	toolkitOnce.Do(func() {
		sharedToolkit, sharedErr = NewProseToolkit()
	})
	return sharedToolkit, sharedErr
}

// SplitSentences segments text into sentences.
func (t *ProseToolkit) SplitSentences(text string) []string {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	doc, err := prose.NewDocument(text,
		prose.WithTagging(false),
		prose.WithExtraction(false))
	if err != nil {
		// Degrade to a single-sentence view rather than failing the row.
		return []string{text}
	}
	sents := doc.Sentences()
	out := make([]string, 0, len(sents))
	for _, s := range sents {
		if trimmed := strings.TrimSpace(s.Text); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// TagPOS tokenizes and POS-tags text with the Penn Treebank tag set.
func (t *ProseToolkit) TagPOS(text string) []TaggedWord {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	doc, err := prose.NewDocument(text,
		prose.WithSegmentation(false),
		prose.WithExtraction(false))
	if err != nil {
		return nil
	}
	toks := doc.Tokens()
	out := make([]TaggedWord, 0, len(toks))
	for _, tok := range toks {
		out = append(out, TaggedWord{Text: tok.Text, Tag: tok.Tag})
	}
	return out
}

// Lemmatize reduces a lowercase word to its dictionary base form.
func (t *ProseToolkit) Lemmatize(word string) string {
	if word == "" {
		return word
	}
	return strings.ToLower(t.lemmatizer.Lemma(word))
}

// IsStopword reports membership in the fixed English stopword list.
func (t *ProseToolkit) IsStopword(word string) bool {
	_, ok := englishStopwords[strings.ToLower(word)]
	return ok
}
