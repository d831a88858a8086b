package usecase

import (
	"fmt"
	"strings"

	"github.com/rvc-001/planning-sub000/internal/domain/entity"
)

// NormalizeRows converts a tabular read into keyed records. Rows whose
// cells are all empty are dropped. Each kept record gets the 1-based row
// number of the underlying tab so targeted writes land on the right row.
// When the read endpoint already consumed the header rows
// (result.HeaderRows > 0) every returned row is data and only the offset
// shifts; when it did not, the first returned row is taken as the header
// and skipped here. Column ids come from the declared columns when
// present, with a positional col0..colN fallback; ragged rows leave the
// missing cells nil.
func NormalizeRows(result entity.TabularResult) []entity.Record {
	ids := columnIDs(result.Columns, maxRowWidth(result.Rows))

	rows := result.Rows
	offset := result.HeaderRows + 1
	if result.HeaderRows == 0 {
		rows = rows[min(1, len(rows)):]
		offset = 2
	}

	records := make([]entity.Record, 0, len(rows))
	for pos, row := range rows {
		if rowIsEmpty(row) {
			continue
		}
		cells := make(map[string]*entity.Cell, len(ids))
		for i, id := range ids {
			if i < len(row) {
				cells[id] = row[i]
			} else {
				cells[id] = nil
			}
		}
		records = append(records, entity.Record{
			RowIndex: pos + offset,
			Cells:    cells,
		})
	}
	return records
}

func columnIDs(cols []entity.Column, width int) []string {
	n := len(cols)
	if width > n {
		n = width
	}
	ids := make([]string, n)
	for i := range ids {
		if i < len(cols) && strings.TrimSpace(cols[i].ID) != "" {
			ids[i] = cols[i].ID
		} else {
			ids[i] = fmt.Sprintf("col%d", i)
		}
	}
	return ids
}

func maxRowWidth(rows [][]*entity.Cell) int {
	width := 0
	for _, row := range rows {
		if len(row) > width {
			width = len(row)
		}
	}
	return width
}

func rowIsEmpty(row []*entity.Cell) bool {
	for _, cell := range row {
		if cell == nil {
			continue
		}
		if entity.CoerceString(cell.Value) != "" {
			return false
		}
	}
	return true
}
