package indicator

import (
	"embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

//go:embed data/*.json
var defaultLexiconFS embed.FS

const (
	embodimentFile  = "embodiment_v0_1.json"
	abstractionFile = "abstraction_v0_1.json"
	intensityFile   = "intensity_v0_1.json"
)

// scaleRank locates a word on one intensity scale: the scale's name and the
// word's zero-based band position. A word may sit on several disjoint
// scales.
type scaleRank struct {
	Scale string
	Rank  int
}

// Lexicons is the read-only vocabulary store behind the lexicon-based
// indicators. It is built once at startup and shared by value reference
// across all requests; nothing mutates it after construction.
type Lexicons struct {
	abstractWords map[string]struct{} // embodiment table, "abstract" side
	physicalWords map[string]struct{} // embodiment table, "physical" side
	abstractTerms map[string]struct{} // abstraction table, "abstract" side
	concreteTerms map[string]struct{} // abstraction table, "concrete" side
	intensity     map[string][]scaleRank
	allKnown      map[string]struct{} // union of the four polarity sets
}

type embodimentDoc struct {
	Abstract []string `json:"abstract"`
	Physical []string `json:"physical"`
}

type abstractionDoc struct {
	ConcreteTerms []string `json:"concrete_terms"`
	AbstractTerms []string `json:"abstract_terms"`
}

type intensityDoc struct {
	Scales map[string][]string `json:"scales"`
}

// LoadLexicons builds the store from the three lexicon JSON documents. When
// dir is empty the embedded defaults are used; otherwise the documents are
// read from dir. Any missing file, malformed JSON, or empty table is a
// construction error — lexicon problems are configuration errors, not
// per-request conditions.
func LoadLexicons(dir string) (*Lexicons, error) {
	read := func(name string) ([]byte, error) {
		if dir == "" {
			return defaultLexiconFS.ReadFile("data/" + name)
		}
		return os.ReadFile(filepath.Join(dir, name))
	}

	var emb embodimentDoc
	if err := loadDoc(read, embodimentFile, &emb); err != nil {
		return nil, err
	}
	if len(emb.Abstract) == 0 || len(emb.Physical) == 0 {
		return nil, fmt.Errorf("lexicon %s: abstract and physical lists must be non-empty", embodimentFile)
	}

	var abs abstractionDoc
	if err := loadDoc(read, abstractionFile, &abs); err != nil {
		return nil, err
	}
	if len(abs.ConcreteTerms) == 0 || len(abs.AbstractTerms) == 0 {
		return nil, fmt.Errorf("lexicon %s: concrete_terms and abstract_terms must be non-empty", abstractionFile)
	}

	var intens intensityDoc
	if err := loadDoc(read, intensityFile, &intens); err != nil {
		return nil, err
	}
	if len(intens.Scales) == 0 {
		return nil, fmt.Errorf("lexicon %s: at least one scale is required", intensityFile)
	}

	lex := &Lexicons{
		abstractWords: lowerSet(emb.Abstract),
		physicalWords: lowerSet(emb.Physical),
		abstractTerms: lowerSet(abs.AbstractTerms),
		concreteTerms: lowerSet(abs.ConcreteTerms),
		intensity:     make(map[string][]scaleRank),
		allKnown:      make(map[string]struct{}),
	}

	for name, words := range intens.Scales {
		if len(words) < 2 {
			return nil, fmt.Errorf("lexicon %s: scale %q needs at least two bands", intensityFile, name)
		}
		for rank, w := range words {
			key := strings.ToLower(w)
			lex.intensity[key] = append(lex.intensity[key], scaleRank{Scale: name, Rank: rank})
		}
	}

	for _, set := range []map[string]struct{}{lex.abstractWords, lex.physicalWords, lex.abstractTerms, lex.concreteTerms} {
		for w := range set {
			lex.allKnown[w] = struct{}{}
		}
	}

	return lex, nil
}

func loadDoc(read func(string) ([]byte, error), name string, v interface{}) error {
	data, err := read(name)
	if err != nil {
		return fmt.Errorf("read lexicon %s: %w", name, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("parse lexicon %s: %w", name, err)
	}
	return nil
}

func lowerSet(words []string) map[string]struct{} {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[strings.ToLower(w)] = struct{}{}
	}
	return set
}

// NewLexicons builds a store directly from word lists, bypassing JSON.
// Classification is a pure function of (row, lexicons, config), so tests
// supply synthetic vocabularies here.
func NewLexicons(abstract, physical, abstractTerms, concreteTerms []string, scales map[string][]string) *Lexicons {
	lex := &Lexicons{
		abstractWords: lowerSet(abstract),
		physicalWords: lowerSet(physical),
		abstractTerms: lowerSet(abstractTerms),
		concreteTerms: lowerSet(concreteTerms),
		intensity:     make(map[string][]scaleRank),
		allKnown:      make(map[string]struct{}),
	}
	for name, words := range scales {
		for rank, w := range words {
			key := strings.ToLower(w)
			lex.intensity[key] = append(lex.intensity[key], scaleRank{Scale: name, Rank: rank})
		}
	}
	for _, set := range []map[string]struct{}{lex.abstractWords, lex.physicalWords, lex.abstractTerms, lex.concreteTerms} {
		for w := range set {
			lex.allKnown[w] = struct{}{}
		}
	}
	return lex
}

// Known reports whether the word appears in any polarity table.
func (l *Lexicons) Known(word string) bool {
	_, ok := l.allKnown[strings.ToLower(word)]
	return ok
}
