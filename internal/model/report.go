package model

import "time"

// Op is a word-level edit operation tag.
type Op string

const (
	OpEqual  Op = "="
	OpInsert Op = "+"
	OpDelete Op = "-"
)

// EditOp is one step of a word-level edit script. Filtering the script by
// tag reconstructs either input sequence.
type EditOp struct {
	Op    Op     `json:"op"`
	Token string `json:"token"`
}

// ClauseRow is one contiguous region of change between two stable (equal)
// boundaries. Either side may be empty for pure insertions or deletions.
type ClauseRow struct {
	Removed string `json:"removed"`
	Added   string `json:"added"`
}

// LabeledRow is a ClauseRow with its micro-indicator tags.
type LabeledRow struct {
	Removed    string   `json:"removed"`
	Added      string   `json:"added"`
	Indicators []string `json:"indicators"`
}

// ContentDelta is the symmetric difference of content-word lemmas.
// Each list is in first-occurrence order of its source text.
type ContentDelta struct {
	Removed []string `json:"removed"`
	Added   []string `json:"added"`
}

// Provenance carries the hash chain tying a report back to its inputs.
type Provenance struct {
	BaselineHash string `json:"baseline_hash"`
	CurrentHash  string `json:"current_hash"`
	ConfigHash   string `json:"config_hash"`
	ChainID      string `json:"chain_id"`
}

// AnalysisReport is the complete output of one structural shift analysis.
type AnalysisReport struct {
	GeneratedAt time.Time    `json:"generated_at"`
	WordDiff    []EditOp     `json:"word_diff"`
	Rows        []ClauseRow  `json:"rows"`
	LabeledRows []LabeledRow `json:"labeled_rows"`
	Delta       ContentDelta `json:"delta"`
	Provenance  Provenance   `json:"provenance"`
	IncludeAll  bool         `json:"include_all"`
}

// GenerateRequest asks the generation backend for one passage.
type GenerateRequest struct {
	Prompt       string  `json:"prompt"`
	SystemPrompt string  `json:"system_prompt,omitempty"`
	Model        string  `json:"model,omitempty"`
	Temperature  float64 `json:"temperature,omitempty"`
	MaxTokens    int     `json:"max_tokens,omitempty"`
	Seed         int     `json:"seed,omitempty"`
}

// GenerateResponse returns the generated passage plus its provenance hashes.
type GenerateResponse struct {
	RunID            string `json:"run_id"`
	Text             string `json:"text"`
	Model            string `json:"model"`
	TokensUsed       int    `json:"tokens_used,omitempty"`
	InputHash        string `json:"input_hash,omitempty"`
	SystemPromptHash string `json:"system_prompt_hash,omitempty"`
	OutputHash       string `json:"output_hash,omitempty"`
	ChainID          string `json:"chain_id,omitempty"`
}

// AxisValue is one labeled, scored axis of a descriptor payload.
type AxisValue struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

// AxisPayload is the descriptor payload consumed by the relabel policy.
type AxisPayload struct {
	Axes       map[string]AxisValue `json:"axes"`
	PolicyHash string               `json:"policy_hash,omitempty"`
	Seed       int                  `json:"seed,omitempty"`
	WorldID    string               `json:"world_id,omitempty"`
}
