package usecase

import (
	"github.com/rvc-001/planning-sub000/internal/domain/entity"
)

// LookupByKey returns the first candidate whose trimmed value in keyCol
// string-equals key (case-sensitive), or nil when nothing matches. Sheet
// sizes are small enough that the linear scan is fine; duplicate keys
// resolve to the first row, matching how the sheet is actually used.
func LookupByKey(candidates []entity.Record, keyCol, key string) *entity.Record {
	key = entity.CoerceString(key)
	if key == "" {
		return nil
	}
	for i := range candidates {
		if candidates[i].Text(keyCol) == key {
			return &candidates[i]
		}
	}
	return nil
}

// IndexByKey builds a first-match-wins index over a record set, for pages
// that join the same secondary tab against many primary rows.
func IndexByKey(records []entity.Record, keyCol string) map[string]*entity.Record {
	index := make(map[string]*entity.Record, len(records))
	for i := range records {
		key := records[i].Text(keyCol)
		if key == "" {
			continue
		}
		if _, exists := index[key]; !exists {
			index[key] = &records[i]
		}
	}
	return index
}
