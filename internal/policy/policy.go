// Package policy owns the authoritative score-to-label mapping for axis
// descriptor payloads. It is a simple piecewise table, not a policy engine:
// its job is to show how label changes propagate into generated text.
package policy

import (
	"fmt"
	"sort"

	"github.com/pipe-works/pipeworks-axis-descriptor-lab/internal/model"
)

// Band maps scores below UpperBound (exclusive) to Label.
type Band struct {
	UpperBound float64
	Label      string
}

// catchAll is the sentinel upper bound of the final band in every axis.
// Scores run 0.0 to 1.0 inclusive, so a strict less-than against 1.01
// catches everything up to and including 1.0.
const catchAll = 1.01

// Table maps each known axis name to its ordered band list. Bands are
// checked in order and the first whose upper bound exceeds the score wins.
var Table = map[string][]Band{
	"age": {
		{0.25, "young"},
		{0.5, "middle-aged"},
		{0.75, "old"},
		{catchAll, "ancient"},
	},
	"demeanor": {
		{0.2, "cordial"},
		{0.4, "guarded"},
		{0.6, "resentful"},
		{0.8, "hostile"},
		{catchAll, "menacing"},
	},
	"dependency": {
		{0.33, "dispensable"},
		{0.66, "necessary"},
		{catchAll, "indispensable"},
	},
	"facial_signal": {
		{0.3, "open"},
		{0.6, "asymmetrical"},
		{catchAll, "closed"},
	},
	"health": {
		{0.25, "vigorous"},
		{0.5, "weary"},
		{0.75, "ailing"},
		{catchAll, "failing"},
	},
	"legitimacy": {
		{0.25, "unchallenged"},
		{0.5, "tolerated"},
		{0.65, "questioned"},
		{0.8, "contested"},
		{catchAll, "illegitimate"},
	},
	"moral_load": {
		{0.3, "clear"},
		{0.6, "conflicted"},
		{catchAll, "burdened"},
	},
	"physique": {
		{0.3, "gaunt"},
		{0.45, "lean"},
		{0.55, "stocky"},
		{0.7, "hunched"},
		{catchAll, "imposing"},
	},
	"risk_exposure": {
		{0.33, "sheltered"},
		{0.66, "hazardous"},
		{catchAll, "perilous"},
	},
	"visibility": {
		{0.33, "obscure"},
		{0.66, "routine"},
		{catchAll, "prominent"},
	},
	"wealth": {
		{0.25, "destitute"},
		{0.45, "threadbare"},
		{0.55, "well-kept"},
		{0.75, "comfortable"},
		{catchAll, "affluent"},
	},
}

// Axes returns the known axis names, sorted.
func Axes() []string {
	names := make([]string, 0, len(Table))
	for name := range Table {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Label returns the label for one axis score. Unknown axes report ok=false.
func Label(axis string, score float64) (string, bool) {
	bands, known := Table[axis]
	if !known {
		return "", false
	}
	for _, band := range bands {
		if score < band.UpperBound {
			return band.Label, true
		}
	}
	// Unreachable for valid scores; the catch-all band covers [0,1].
	return bands[len(bands)-1].Label, true
}

// Apply recomputes every known axis label from its score and returns a new
// payload. Unknown axes pass through untouched, scores are never modified,
// and the non-axis fields are preserved verbatim.
func Apply(payload model.AxisPayload) model.AxisPayload {
	updated := model.AxisPayload{
		Axes:       make(map[string]model.AxisValue, len(payload.Axes)),
		PolicyHash: payload.PolicyHash,
		Seed:       payload.Seed,
		WorldID:    payload.WorldID,
	}

	for name, val := range payload.Axes {
		if label, known := Label(name, val.Score); known {
			val.Label = label
		}
		updated.Axes[name] = val
	}

	return updated
}

// Validate checks the structural invariants of the policy table: at least
// one band per axis, strictly ascending bounds, and a final catch-all.
func Validate() error {
	for axis, bands := range Table {
		if len(bands) == 0 {
			return fmt.Errorf("axis %q has no bands", axis)
		}
		prev := 0.0
		for i, band := range bands {
			if band.UpperBound <= prev {
				return fmt.Errorf("axis %q: band %d bound %v not ascending", axis, i, band.UpperBound)
			}
			if band.Label == "" {
				return fmt.Errorf("axis %q: band %d has an empty label", axis, i)
			}
			prev = band.UpperBound
		}
		if bands[len(bands)-1].UpperBound != catchAll {
			return fmt.Errorf("axis %q: final band must be the %v catch-all", axis, catchAll)
		}
	}
	return nil
}
