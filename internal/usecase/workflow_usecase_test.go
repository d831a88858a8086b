package usecase

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/rvc-001/planning-sub000/internal/domain/constants"
	"github.com/rvc-001/planning-sub000/internal/domain/entity"
)

type stubReader struct {
	tabs map[string]entity.TabularResult
	errs map[string]error
}

func (s *stubReader) ReadTab(_ context.Context, sheetName string) (entity.TabularResult, error) {
	if err := s.errs[sheetName]; err != nil {
		return entity.TabularResult{}, err
	}
	result, ok := s.tabs[sheetName]
	if !ok {
		return entity.TabularResult{}, fmt.Errorf("no such tab %q", sheetName)
	}
	return result, nil
}

type writeCall struct {
	action    string
	sheetName string
	rowIndex  int
	jobCardNo string
	rowData   []string
	columns   map[int]string
}

type recordingWriter struct {
	calls []writeCall
	fail  map[string]error // action -> error
}

func (w *recordingWriter) Insert(_ context.Context, sheetName string, rowData []string) error {
	w.calls = append(w.calls, writeCall{action: "insert", sheetName: sheetName, rowData: rowData})
	return w.fail["insert"]
}

func (w *recordingWriter) Update(_ context.Context, sheetName string, rowIndex int, rowData []string) error {
	w.calls = append(w.calls, writeCall{action: "update", sheetName: sheetName, rowIndex: rowIndex, rowData: rowData})
	return w.fail["update"]
}

func (w *recordingWriter) UpdateByJobCard(_ context.Context, sheetName, jobCardNo string, columns map[int]string) error {
	w.calls = append(w.calls, writeCall{action: "updateByJobCard", sheetName: sheetName, jobCardNo: jobCardNo, columns: columns})
	return w.fail["updateByJobCard"]
}

func (w *recordingWriter) UpdateColumns(_ context.Context, sheetName string, rowIndex int, columns map[int]string) error {
	w.calls = append(w.calls, writeCall{action: "updateColumns", sheetName: sheetName, rowIndex: rowIndex, columns: columns})
	return w.fail["updateColumns"]
}

func (w *recordingWriter) AddUser(_ context.Context, user entity.User, _ string) error {
	w.calls = append(w.calls, writeCall{action: "addUser", jobCardNo: user.ID})
	return w.fail["addUser"]
}

func (w *recordingWriter) UpdateUser(_ context.Context, user entity.User, _ string) error {
	w.calls = append(w.calls, writeCall{action: "updateUser", jobCardNo: user.ID})
	return w.fail["updateUser"]
}

func (w *recordingWriter) DeleteUser(_ context.Context, userID string) error {
	w.calls = append(w.calls, writeCall{action: "deleteUser", jobCardNo: userID})
	return w.fail["deleteUser"]
}

func letterCols(n int) []string {
	cols := make([]string, n)
	for i := range cols {
		cols[i] = constants.ColumnID(i)
	}
	return cols
}

func rowOf(n int, values map[int]any) []any {
	row := make([]any, n)
	for i, v := range values {
		row[i] = v
	}
	return row
}

// fixtureTabs builds a minimal spreadsheet where JC-001 has finished
// production and awaits lab test 1.
func fixtureTabs() map[string]entity.TabularResult {
	header := func(n int) []any {
		row := make([]any, n)
		for i := range row {
			row[i] = "h"
		}
		return row
	}

	jobCards := tabular(letterCols(constants.JCColCount),
		header(constants.JCColCount),
		rowOf(constants.JCColCount, map[int]any{
			constants.JCColNo:               "JC-001",
			constants.JCColDONo:             "DO-1",
			constants.JCColProduct:          "Widget",
			constants.JCColOrderedQty:       float64(100),
			constants.JCColIssuedAt:         "Date(2024,0,10)",
			constants.JCColProductionDoneAt: "Date(2024,0,12,14,0,0)",
			constants.JCColProducedQty:      float64(98),
		}),
	)

	orders := tabular(letterCols(constants.OrderColCount),
		header(constants.OrderColCount),
		rowOf(constants.OrderColCount, map[int]any{
			constants.OrderColDONo:             "DO-1",
			constants.OrderColDate:             "Date(2024,0,8)",
			constants.OrderColCustomer:         "Acme",
			constants.OrderColProduct:          "Widget",
			constants.OrderColQty:              float64(100),
			constants.OrderColExpectedDelivery: "Date(2024,1,20)",
		}),
	)

	apWidth := constants.APColOperator + 1
	actuals := tabular(letterCols(apWidth),
		header(apWidth),
		rowOf(apWidth, map[int]any{
			constants.APColJCNo:              "JC-001",
			constants.APColFirstMaterial:     "Resin",
			constants.APColFirstMaterial + 1: float64(40),
			constants.APColFirstMaterial + 2: "Pigment",
			constants.APColFirstMaterial + 3: float64(2),
		}),
	)

	return map[string]entity.TabularResult{
		constants.TabJobCards:         jobCards,
		constants.TabOrders:           orders,
		constants.TabActualProduction: actuals,
	}
}

func lab1Spec(t *testing.T) StageSpec {
	t.Helper()
	spec, ok := StageSpecFor("lab-testing1")
	if !ok {
		t.Fatal("lab-testing1 spec not found")
	}
	return spec
}

func TestLoadStagePage_PendingWithJoins(t *testing.T) {
	reader := &stubReader{tabs: fixtureTabs()}
	uc := NewWorkflowUseCase(reader, &recordingWriter{}, nil)

	page, err := uc.LoadStagePage(context.Background(), lab1Spec(t))
	if err != nil {
		t.Fatalf("LoadStagePage() error: %v", err)
	}
	if len(page.Pending) != 1 || len(page.History) != 0 {
		t.Fatalf("got %d pending, %d history, want 1 and 0", len(page.Pending), len(page.History))
	}

	item := page.Pending[0]
	if item.JobCardNo != "JC-001" {
		t.Fatalf("JobCardNo = %q, want JC-001", item.JobCardNo)
	}
	if item.ExpectedDelivery != "20/02/2024" {
		t.Fatalf("ExpectedDelivery = %q, want 20/02/2024 (joined from orders)", item.ExpectedDelivery)
	}
	if item.Customer != "Acme" {
		t.Fatalf("Customer = %q, want Acme", item.Customer)
	}
	if len(item.Materials) != 2 || item.Materials[0].Name != "Resin" || item.Materials[1].Name != "Pigment" {
		t.Fatalf("Materials = %+v, want Resin then Pigment", item.Materials)
	}
	if item.StartedAt != "12/01/2024" {
		t.Fatalf("StartedAt = %q, want 12/01/2024", item.StartedAt)
	}
}

func TestCompleteStage_ThenReloadMovesToHistory(t *testing.T) {
	tabs := fixtureTabs()
	reader := &stubReader{tabs: tabs}
	writer := &recordingWriter{}
	uc := NewWorkflowUseCase(reader, writer, nil)
	spec := lab1Spec(t)

	err := uc.CompleteStage(context.Background(), spec, StageSubmit{
		JobCardNo: "JC-001",
		Status:    "Passed",
		CheckedBy: "lab-a",
	})
	if err != nil {
		t.Fatalf("CompleteStage() error: %v", err)
	}

	if len(writer.calls) != 1 {
		t.Fatalf("writer got %d calls, want 1", len(writer.calls))
	}
	call := writer.calls[0]
	if call.action != "updateByJobCard" || call.sheetName != constants.TabJobCards || call.jobCardNo != "JC-001" {
		t.Fatalf("write call = %+v, want updateByJobCard on JobCards for JC-001", call)
	}
	if call.columns[constants.JCColLab1DoneAt] == "" {
		t.Fatal("completion column not set in write")
	}
	if call.columns[constants.JCColLab1Result] != "Passed" {
		t.Fatalf("result column = %q, want Passed", call.columns[constants.JCColLab1Result])
	}

	// Apply the write to the fixture the way the remote endpoint would,
	// then reload: classification flips only through the fresh read.
	jc := tabs[constants.TabJobCards]
	for col, val := range call.columns {
		jc.Rows[1][col] = &entity.Cell{Value: val}
	}

	page, err := uc.LoadStagePage(context.Background(), spec)
	if err != nil {
		t.Fatalf("LoadStagePage() after write error: %v", err)
	}
	if len(page.Pending) != 0 || len(page.History) != 1 {
		t.Fatalf("after reload got %d pending, %d history, want 0 and 1", len(page.Pending), len(page.History))
	}
	if page.History[0].Status != "Passed" || page.History[0].CheckedBy != "lab-a" {
		t.Fatalf("history item = %+v, want submitted values visible", page.History[0])
	}
}

func TestCompleteStage_ValidationBlocksWrite(t *testing.T) {
	writer := &recordingWriter{}
	uc := NewWorkflowUseCase(&stubReader{tabs: fixtureTabs()}, writer, nil)

	err := uc.CompleteStage(context.Background(), lab1Spec(t), StageSubmit{JobCardNo: "JC-001"})
	var vErr *ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("CompleteStage() error = %v, want ValidationError", err)
	}
	if _, ok := vErr.Fields["status"]; !ok {
		t.Fatalf("validation fields = %v, want status", vErr.Fields)
	}
	if len(writer.calls) != 0 {
		t.Fatalf("writer got %d calls, want none on validation failure", len(writer.calls))
	}
}

func TestLoadStagePage_ReadFailureFailsWholePage(t *testing.T) {
	reader := &stubReader{
		tabs: fixtureTabs(),
		errs: map[string]error{constants.TabActualProduction: errors.New("boom")},
	}
	uc := NewWorkflowUseCase(reader, &recordingWriter{}, nil)

	if _, err := uc.LoadStagePage(context.Background(), lab1Spec(t)); err == nil {
		t.Fatal("LoadStagePage() succeeded, want error when a joined tab fails")
	}
}

func TestLoadStagePage_TallySwallowsMaterialsFailure(t *testing.T) {
	tabs := fixtureTabs()
	// Put JC-001 into the tally stage.
	jc := tabs[constants.TabJobCards]
	jc.Rows[1][constants.JCColKittingDoneAt] = &entity.Cell{Value: "Date(2024,0,20)"}

	reader := &stubReader{
		tabs: tabs,
		errs: map[string]error{constants.TabActualProduction: errors.New("boom")},
	}
	uc := NewWorkflowUseCase(reader, &recordingWriter{}, nil)

	spec, ok := StageSpecFor("tally")
	if !ok {
		t.Fatal("tally spec not found")
	}
	page, err := uc.LoadStagePage(context.Background(), spec)
	if err != nil {
		t.Fatalf("LoadStagePage() error: %v, want materials failure swallowed", err)
	}
	if len(page.Pending) != 1 {
		t.Fatalf("got %d pending, want 1", len(page.Pending))
	}
	if len(page.Pending[0].Materials) != 0 {
		t.Fatalf("materials = %+v, want empty on swallowed failure", page.Pending[0].Materials)
	}
}

func TestCompleteKitting_WriteOrderAndShortCircuit(t *testing.T) {
	writer := &recordingWriter{}
	uc := NewWorkflowUseCase(&stubReader{tabs: fixtureTabs()}, writer, nil)

	sub := KittingSubmit{
		JobCardNo:       "JC-001",
		DeliveryOrderNo: "DO-1",
		Product:         "Widget",
		Quantity:        "98",
		TotalCost:       "420.00",
		Status:          "Kitted",
	}
	if err := uc.CompleteKitting(context.Background(), sub); err != nil {
		t.Fatalf("CompleteKitting() error: %v", err)
	}
	if len(writer.calls) != 2 {
		t.Fatalf("writer got %d calls, want costing insert then job-card update", len(writer.calls))
	}
	if writer.calls[0].action != "insert" || writer.calls[0].sheetName != constants.TabCosting {
		t.Fatalf("first call = %+v, want insert into Costing", writer.calls[0])
	}
	if writer.calls[1].action != "updateByJobCard" {
		t.Fatalf("second call = %+v, want updateByJobCard", writer.calls[1])
	}

	// When the costing insert fails the job-card update is not attempted.
	writer2 := &recordingWriter{fail: map[string]error{"insert": errors.New("no space")}}
	uc2 := NewWorkflowUseCase(&stubReader{tabs: fixtureTabs()}, writer2, nil)
	if err := uc2.CompleteKitting(context.Background(), sub); err == nil {
		t.Fatal("CompleteKitting() succeeded, want insert failure surfaced")
	}
	if len(writer2.calls) != 1 {
		t.Fatalf("writer got %d calls, want only the failed insert", len(writer2.calls))
	}
}

func TestCompleteKitting_SecondFailureSurfacedNotRolledBack(t *testing.T) {
	writer := &recordingWriter{fail: map[string]error{"updateByJobCard": errors.New("row not found")}}
	uc := NewWorkflowUseCase(&stubReader{tabs: fixtureTabs()}, writer, nil)

	err := uc.CompleteKitting(context.Background(), KittingSubmit{
		JobCardNo: "JC-001",
		TotalCost: "420.00",
		Status:    "Kitted",
	})
	if err == nil {
		t.Fatal("CompleteKitting() succeeded, want second-write failure surfaced")
	}
	// Both writes were attempted; the costing row stays behind.
	if len(writer.calls) != 2 {
		t.Fatalf("writer got %d calls, want 2", len(writer.calls))
	}
}
