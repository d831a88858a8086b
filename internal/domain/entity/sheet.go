package entity

import (
	"fmt"
	"strconv"
	"strings"
)

// Column is one declared column of a sheet tab.
type Column struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Type  string `json:"type"`
}

// Cell is a single spreadsheet cell. Value is nil for an empty cell;
// otherwise it is a string, float64 or bool as decoded from the read
// endpoint. Formatted carries the display string when the endpoint
// provides one.
type Cell struct {
	Value     any    `json:"value"`
	Formatted string `json:"formatted,omitempty"`
}

// TabularResult is one read of a sheet tab: ordered columns plus rows of
// nullable cells. It is produced fresh on every read and never cached.
// HeaderRows is how many header rows the read endpoint already consumed:
// when positive, Rows holds data rows only and Rows[0] sits in sheet row
// HeaderRows+1; when zero, the tab's first returned row is the header.
type TabularResult struct {
	Columns    []Column
	Rows       [][]*Cell
	HeaderRows int
}

// Record is one non-empty row keyed by column id, plus the 1-based row
// number in the underlying tab. RowIndex is only valid for targeted writes
// against the tab the record came from; it must not be reused across tabs.
type Record struct {
	RowIndex int
	Cells    map[string]*Cell
}

// Get returns the cell value for a column id, nil when the cell is absent
// or empty.
func (r Record) Get(colID string) any {
	cell, ok := r.Cells[colID]
	if !ok || cell == nil {
		return nil
	}
	return cell.Value
}

// Text returns the cell value coerced to a trimmed string. Numbers keep
// their shortest decimal form, booleans become "true"/"false" and empty
// cells become "".
func (r Record) Text(colID string) string {
	return CoerceString(r.Get(colID))
}

// Formatted returns the endpoint-supplied display string for a cell when
// present, else the coerced raw value.
func (r Record) Formatted(colID string) string {
	cell, ok := r.Cells[colID]
	if !ok || cell == nil {
		return ""
	}
	if strings.TrimSpace(cell.Formatted) != "" {
		return cell.Formatted
	}
	return CoerceString(cell.Value)
}

// CoerceString converts any cell value to its string form. Marker columns
// may hold strings, numbers, booleans or date tokens depending on how the
// sheet was edited, so every comparison in the pipeline goes through this.
func CoerceString(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(val)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case int:
		return strconv.Itoa(val)
	case bool:
		return strconv.FormatBool(val)
	default:
		return strings.TrimSpace(fmt.Sprintf("%v", val))
	}
}
