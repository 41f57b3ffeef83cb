// Package hashing centralizes the digest functions behind the provenance
// chain. Every route that records provenance goes through these helpers so a
// change to a normalization rule propagates everywhere at once.
package hashing

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/pipe-works/pipeworks-axis-descriptor-lab/internal/model"
)

var multiSpace = regexp.MustCompile(" {2,}")

// NormalizePrompt prepares a system prompt for hashing. Each line is
// stripped of leading and trailing whitespace, then blank lines at the
// edges of the whole text are dropped. Internal blank lines and letter
// case are preserved: paragraph breaks and emphasis carry meaning in
// prompts.
func NormalizePrompt(text string) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(line)
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}

// NormalizeOutput prepares generated text for hashing. Outer whitespace is
// trimmed and runs of two or more ASCII spaces collapse to one. Newlines,
// tabs, punctuation, and case pass through untouched so only spacing noise
// is removed.
func NormalizeOutput(text string) string {
	return multiSpace.ReplaceAllString(strings.TrimSpace(text), " ")
}

// PromptHash returns the lowercase hex SHA-256 of the normalized prompt.
func PromptHash(text string) string {
	return digest(NormalizePrompt(text))
}

// OutputHash returns the lowercase hex SHA-256 of the normalized output.
func OutputHash(text string) string {
	return digest(NormalizeOutput(text))
}

// TextHash returns the lowercase hex SHA-256 of the text as given, with no
// normalization. Used for analysis inputs, where the caller owns the exact
// bytes being compared.
func TextHash(text string) string {
	return digest(text)
}

// PayloadHash returns a stable digest of an axis descriptor payload. The
// payload is serialized as canonical JSON (map keys sorted), so two payloads
// with the same content always hash the same regardless of construction
// order.
func PayloadHash(payload model.AxisPayload) (string, error) {
	canonical, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("marshal payload: %w", err)
	}
	return digest(string(canonical)), nil
}

// ConfigHash fingerprints any JSON-serializable configuration value.
func ConfigHash(v interface{}) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("marshal config: %w", err)
	}
	return digest(string(data)), nil
}

// ChainID fingerprints the complete set of variables behind one generation:
// the payload hash, the prompt hash, the model, and the sampling parameters.
// Two runs sharing a chain ID used identical inputs end to end. Fields are
// joined with a colon, a non-hex character, so adjacent fields can never
// blur into each other.
func ChainID(inputHash, promptHash, modelName string, temperature float64, maxTokens, seed int) string {
	parts := []string{
		inputHash,
		promptHash,
		modelName,
		strconv.FormatFloat(temperature, 'g', -1, 64),
		strconv.Itoa(maxTokens),
		strconv.Itoa(seed),
	}
	return digest(strings.Join(parts, ":"))
}

// AnalysisChainID fingerprints one analysis run from its two input hashes
// and the configuration hash, using the same delimiter scheme as ChainID.
func AnalysisChainID(baselineHash, currentHash, configHash string) string {
	return digest(baselineHash + ":" + currentHash + ":" + configHash)
}

func digest(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])
}
