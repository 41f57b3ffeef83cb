package indicator

import (
	"strings"

	"github.com/pipe-works/pipeworks-axis-descriptor-lab/internal/analyze"
	"github.com/pipe-works/pipeworks-axis-descriptor-lab/internal/model"
)

// Penn Treebank tags counted as verbs or adjectives for modality density.
var verbAdjTags = map[string]struct{}{
	"VB": {}, "VBD": {}, "VBG": {}, "VBN": {}, "VBP": {}, "VBZ": {},
	"JJ": {}, "JJR": {}, "JJS": {},
}

// Classifier labels clause rows with structural-shift indicators. It is a
// pure function of (row, lexicons, config): no hidden state, safe to run
// concurrently across rows.
type Classifier struct {
	lexicons *Lexicons
	toolkit  analyze.Toolkit
	config   Config
}

// NewClassifier wires the classifier to an injected, read-only lexicon
// store and NLP toolkit.
func NewClassifier(lex *Lexicons, tk analyze.Toolkit, cfg Config) *Classifier {
	return &Classifier{lexicons: lex, toolkit: tk, config: cfg}
}

// Classify evaluates every heuristic independently against one replacement
// row and returns the indicators that fire, in canonical order. Rows with
// an empty side yield no indicators; classification applies to replacements
// only. The classifier never panics — absent lexicon matches simply mean
// the heuristic stays silent.
func (c *Classifier) Classify(row model.ClauseRow) []string {
	removed := strings.TrimSpace(row.Removed)
	added := strings.TrimSpace(row.Added)
	if removed == "" || added == "" {
		return []string{}
	}

	removedTagged := c.toolkit.TagPOS(removed)
	addedTagged := c.toolkit.TagPOS(added)
	removedTokens := analyze.LowerAlphaTokens(removedTagged)
	addedTokens := analyze.LowerAlphaTokens(addedTagged)

	removedSet := toSet(removedTokens)
	addedSet := toSet(addedTokens)

	indicators := []string{}
	add := func(name string, fired bool) {
		if fired && c.config.isEnabled(name) {
			indicators = append(indicators, name)
		}
	}

	add(Compression, c.checkCompression(removedTokens, addedTokens))
	add(Expansion, c.checkExpansion(removedTokens, addedTokens))

	embodimentFired := c.checkEmbodiment(removedSet, addedSet)
	add(Embodiment, embodimentFired)

	abstractionFired := c.checkAbstraction(removedSet, addedSet)
	add(AbstractionUp, abstractionFired)

	intensityTag := c.checkIntensity(uniqueOrdered(removedTokens), uniqueOrdered(addedTokens))
	add(IntensityUp, intensityTag == IntensityUp)
	add(IntensityDown, intensityTag == IntensityDown)

	add(Consolidation, c.checkConsolidation(removed, added))
	add(Fragmentation, c.checkFragmentation(removed, added))
	add(ModalityShift, c.checkModality(removedTagged, addedTagged))

	// Fallbacks. Tone reframing marks a lexical substitution no structural
	// heuristic claimed; lexical pivot catches rare-word movement when even
	// tone reframing stayed silent (same token sets, rare content words on
	// both sides). Neither fires alongside a structural indicator.
	add(ToneReframing, len(indicators) == 0 && !sameSet(removedSet, addedSet))
	add(LexicalPivot, len(indicators) == 0 && c.checkLexicalPivot(removedTokens, addedTokens))

	return indicators
}

// checkCompression: many tokens condensed into fewer.
func (c *Classifier) checkCompression(removed, added []string) bool {
	if len(added) == 0 || len(removed) < c.config.MinTokens {
		return false
	}
	return float64(len(removed)) >= c.config.CompressionRatio*float64(len(added))
}

// checkExpansion: a short phrase rewritten into a longer clause.
func (c *Classifier) checkExpansion(removed, added []string) bool {
	if len(removed) == 0 || len(added) < c.config.MinTokens {
		return false
	}
	return float64(len(added)) >= c.config.ExpansionRatio*float64(len(removed))
}

// checkEmbodiment: an abstract word leaves, a physical word arrives.
func (c *Classifier) checkEmbodiment(removedSet, addedSet map[string]struct{}) bool {
	return intersects(removedSet, c.lexicons.abstractWords) &&
		intersects(addedSet, c.lexicons.physicalWords)
}

// checkAbstraction: a concrete term leaves, an abstract term arrives.
func (c *Classifier) checkAbstraction(removedSet, addedSet map[string]struct{}) bool {
	return intersects(removedSet, c.lexicons.concreteTerms) &&
		intersects(addedSet, c.lexicons.abstractTerms)
}

// checkIntensity: a removed token and an added token sit on the same
// intensity scale at different ranks. Tokens are scanned in text order so
// the first scale match always wins deterministically.
func (c *Classifier) checkIntensity(removed, added []string) string {
	for _, wordR := range removed {
		ranksR, ok := c.lexicons.intensity[wordR]
		if !ok {
			continue
		}
		for _, sr := range ranksR {
			for _, wordA := range added {
				for _, sa := range c.lexicons.intensity[wordA] {
					if sa.Scale != sr.Scale || sa.Rank == sr.Rank {
						continue
					}
					if sa.Rank > sr.Rank {
						return IntensityUp
					}
					return IntensityDown
				}
			}
		}
	}
	return ""
}

// uniqueOrdered collapses duplicates while preserving first-occurrence
// order.
func uniqueOrdered(tokens []string) []string {
	seen := make(map[string]struct{}, len(tokens))
	out := make([]string, 0, len(tokens))
	for _, t := range tokens {
		if _, dup := seen[t]; dup {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}

// checkConsolidation: sentences merged — the removed side has more
// sentences than the added side.
func (c *Classifier) checkConsolidation(removed, added string) bool {
	return len(c.toolkit.SplitSentences(removed)) > len(c.toolkit.SplitSentences(added))
}

// checkFragmentation: a clause split apart — the added side has more
// sentences than the removed side.
func (c *Classifier) checkFragmentation(removed, added string) bool {
	return len(c.toolkit.SplitSentences(removed)) < len(c.toolkit.SplitSentences(added))
}

// checkModality: the verb+adjective share of the tokens moved by more than
// the configured density threshold.
func (c *Classifier) checkModality(removedTagged, addedTagged []analyze.TaggedWord) bool {
	densityR, okR := verbAdjDensity(removedTagged)
	densityA, okA := verbAdjDensity(addedTagged)
	if !okR || !okA {
		return false
	}
	diff := densityA - densityR
	if diff < 0 {
		diff = -diff
	}
	return diff > c.config.ModalityDensity
}

// checkLexicalPivot: both sides carry a content word outside every lexicon
// and the stopword list.
func (c *Classifier) checkLexicalPivot(removed, added []string) bool {
	return c.hasRareWord(removed) && c.hasRareWord(added)
}

func (c *Classifier) hasRareWord(tokens []string) bool {
	for _, w := range tokens {
		if c.toolkit.IsStopword(w) || c.lexicons.Known(w) {
			continue
		}
		if _, scaled := c.lexicons.intensity[w]; scaled {
			continue
		}
		return true
	}
	return false
}

func verbAdjDensity(tagged []analyze.TaggedWord) (float64, bool) {
	total := 0
	hits := 0
	for _, tw := range tagged {
		if !analyze.HasAlpha(tw.Text) {
			continue
		}
		total++
		if _, ok := verbAdjTags[tw.Tag]; ok {
			hits++
		}
	}
	if total == 0 {
		return 0, false
	}
	return float64(hits) / float64(total), true
}

func toSet(tokens []string) map[string]struct{} {
	set := make(map[string]struct{}, len(tokens))
	for _, t := range tokens {
		set[t] = struct{}{}
	}
	return set
}

func sameSet(a, b map[string]struct{}) bool {
	if len(a) != len(b) {
		return false
	}
	for k := range a {
		if _, ok := b[k]; !ok {
			return false
		}
	}
	return true
}

func intersects(a, b map[string]struct{}) bool {
	if len(a) > len(b) {
		a, b = b, a
	}
	for k := range a {
		if _, ok := b[k]; ok {
			return true
		}
	}
	return false
}
