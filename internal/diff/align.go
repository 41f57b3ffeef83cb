package diff

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/pipe-works/pipeworks-axis-descriptor-lab/internal/model"
)

// ErrInputTooLarge is returned when an input side exceeds the token guard
// protecting the O(m*n) table.
var ErrInputTooLarge = errors.New("input exceeds alignment size limit")

// Tokenize splits text into whitespace-delimited word tokens. Attached
// punctuation is preserved; the diff operates on exactly what the reader
// sees.
func Tokenize(text string) []string {
	return strings.Fields(text)
}

// Align computes a word-level edit script between token sequences a and b
// using a longest-common-subsequence table. The script is deterministic:
// when an insert path and a delete path have equal LCS length the insert is
// taken, so of two equal-length alternative scripts the insert-first one is
// always produced.
func Align(a, b []string) []model.EditOp {
	script, _ := AlignContext(context.Background(), a, b, 0)
	return script
}

// AlignContext is Align with a cancellation point per table row and an
// optional per-side token limit (0 means unlimited). Oversized inputs
// return ErrInputTooLarge before any table is allocated.
func AlignContext(ctx context.Context, a, b []string, maxTokens int) ([]model.EditOp, error) {
	m, n := len(a), len(b)
	if maxTokens > 0 && (m > maxTokens || n > maxTokens) {
		return nil, fmt.Errorf("%w: %d x %d tokens (limit %d per side)", ErrInputTooLarge, m, n, maxTokens)
	}

	// dp[i][j] = LCS length of a[0..i) and b[0..j).
	dp := make([][]int, m+1)
	for i := range dp {
		dp[i] = make([]int, n+1)
	}
	for i := 1; i <= m; i++ {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}
		for j := 1; j <= n; j++ {
			if a[i-1] == b[j-1] {
				dp[i][j] = dp[i-1][j-1] + 1
			} else if dp[i-1][j] >= dp[i][j-1] {
				dp[i][j] = dp[i-1][j]
			} else {
				dp[i][j] = dp[i][j-1]
			}
		}
	}

	// Walk back from dp[m][n]; the script comes out reversed.
	script := make([]model.EditOp, 0, m+n)
	i, j := m, n
	for i > 0 || j > 0 {
		switch {
		case i > 0 && j > 0 && a[i-1] == b[j-1]:
			script = append(script, model.EditOp{Op: model.OpEqual, Token: a[i-1]})
			i--
			j--
		case j > 0 && (i == 0 || dp[i][j-1] >= dp[i-1][j]):
			script = append(script, model.EditOp{Op: model.OpInsert, Token: b[j-1]})
			j--
		default:
			script = append(script, model.EditOp{Op: model.OpDelete, Token: a[i-1]})
			i--
		}
	}

	for l, r := 0, len(script)-1; l < r; l, r = l+1, r-1 {
		script[l], script[r] = script[r], script[l]
	}
	return script, nil
}

// Reconstruct rebuilds one input sequence from a script: side OpDelete
// yields the baseline tokens, side OpInsert the current tokens.
func Reconstruct(script []model.EditOp, side model.Op) []string {
	var out []string
	for _, op := range script {
		if op.Op == model.OpEqual || op.Op == side {
			out = append(out, op.Token)
		}
	}
	return out
}
