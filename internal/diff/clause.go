package diff

import (
	"strings"

	"github.com/pipe-works/pipeworks-axis-descriptor-lab/internal/model"
)

// GroupRows folds an edit script into clause-level rows of contiguous
// change. Deletes accumulate on the removed side, inserts on the added
// side; every Equal token flushes the buffers as one row. A trailing change
// region is flushed after the script ends.
//
// In replacements-only mode (includeAll=false) a row is kept only when both
// sides are non-empty. In all-changes mode every non-empty flush is kept
// and the caller renders the empty side as an explicit absence marker.
func GroupRows(script []model.EditOp, includeAll bool) []model.ClauseRow {
	var rows []model.ClauseRow
	var removedBuf, addedBuf []string

	flush := func() {
		if len(removedBuf) == 0 && len(addedBuf) == 0 {
			return
		}
		row := model.ClauseRow{
			Removed: strings.Join(removedBuf, " "),
			Added:   strings.Join(addedBuf, " "),
		}
		removedBuf = removedBuf[:0]
		addedBuf = addedBuf[:0]
		if !includeAll && (row.Removed == "" || row.Added == "") {
			return
		}
		rows = append(rows, row)
	}

	for _, op := range script {
		switch op.Op {
		case model.OpDelete:
			removedBuf = append(removedBuf, op.Token)
		case model.OpInsert:
			addedBuf = append(addedBuf, op.Token)
		case model.OpEqual:
			flush()
		}
	}
	flush()

	return rows
}
