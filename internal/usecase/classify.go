package usecase

import (
	"github.com/rvc-001/planning-sub000/internal/domain/entity"
)

// ClassifyStage buckets a record for one stage transition. A record is
// pending when the start marker is set and the completion marker is not,
// history when both are set, irrelevant otherwise. Marker cells may hold
// strings, numbers, booleans or date tokens; everything is compared as a
// trimmed string.
func ClassifyStage(record entity.Record, startCol, endCol string) entity.StageState {
	start := record.Text(startCol)
	end := record.Text(endCol)

	switch {
	case start != "" && end == "":
		return entity.StagePending
	case start != "" && end != "":
		return entity.StageHistory
	default:
		return entity.StageIrrelevant
	}
}

// SplitByStage classifies every record for one stage pair and returns the
// pending and history sets in input order.
func SplitByStage(records []entity.Record, startCol, endCol string) (pending, history []entity.Record) {
	for _, rec := range records {
		switch ClassifyStage(rec, startCol, endCol) {
		case entity.StagePending:
			pending = append(pending, rec)
		case entity.StageHistory:
			history = append(history, rec)
		}
	}
	return pending, history
}
