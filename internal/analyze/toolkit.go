package analyze

// TaggedWord is a word token with its Penn Treebank part-of-speech tag.
type TaggedWord struct {
	Text string
	Tag  string
}

// Toolkit is the narrow NLP surface the engine depends on. Production code
// uses the prose/golem-backed implementation; tests inject synthetic ones.
type Toolkit interface {
	// SplitSentences segments text into sentences.
	SplitSentences(text string) []string

	// TagPOS tokenizes text and tags each word token. Punctuation-only
	// tokens are included with their punctuation tags.
	TagPOS(text string) []TaggedWord

	// Lemmatize reduces a lowercase word to its base form. Unknown words
	// are returned unchanged.
	Lemmatize(word string) string

	// IsStopword reports whether the lowercase word is an English
	// function word.
	IsStopword(word string) bool
}
