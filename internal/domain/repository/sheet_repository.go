package repository

import (
	"context"

	"github.com/rvc-001/planning-sub000/internal/domain/entity"
)

// SheetReader fetches one tab of the shared spreadsheet as a tabular
// result. Implementations own the transport; callers own interpretation.
type SheetReader interface {
	ReadTab(ctx context.Context, sheetName string) (entity.TabularResult, error)
}

// CommandWriter submits write commands to the remote script endpoint.
// Every call is a single fire-and-forget POST: no retry, no idempotency
// key, and a reported failure carries the server message verbatim.
type CommandWriter interface {
	// Insert appends a row built from an ordered value array.
	Insert(ctx context.Context, sheetName string, rowData []string) error

	// Update overwrites the row at rowIndex with a full value array.
	Update(ctx context.Context, sheetName string, rowIndex int, rowData []string) error

	// UpdateByJobCard locates the row by job-card number server-side and
	// applies a sparse column-index to value map.
	UpdateByJobCard(ctx context.Context, sheetName, jobCardNo string, columns map[int]string) error

	// UpdateColumns applies a sparse column map to the row at rowIndex.
	UpdateColumns(ctx context.Context, sheetName string, rowIndex int, columns map[int]string) error

	AddUser(ctx context.Context, user entity.User, password string) error
	UpdateUser(ctx context.Context, user entity.User, password string) error
	DeleteUser(ctx context.Context, userID string) error
}
