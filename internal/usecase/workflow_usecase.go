package usecase

import (
	"context"
	"fmt"
	"log"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/rvc-001/planning-sub000/internal/domain/constants"
	"github.com/rvc-001/planning-sub000/internal/domain/entity"
	"github.com/rvc-001/planning-sub000/internal/domain/repository"
)

// WorkflowUseCase runs the shared row pipeline for every stage page:
// read tabs, normalize, classify against the page's marker pair, join the
// orders and actual-production tabs, format for display. It owns no state;
// each load recomputes the page from fresh reads.
type WorkflowUseCase struct {
	reader   repository.SheetReader
	writer   repository.CommandWriter
	notifier repository.Notifier

	materialPairs []MaterialColumnPair
}

func NewWorkflowUseCase(reader repository.SheetReader, writer repository.CommandWriter, notifier repository.Notifier) *WorkflowUseCase {
	return &WorkflowUseCase{
		reader:        reader,
		writer:        writer,
		notifier:      notifier,
		materialPairs: DefaultMaterialPairs(),
	}
}

// LoadStagePage assembles the pending and history lists for one stage.
// All tabs the page needs are fetched concurrently and awaited jointly;
// any single failure fails the load, except an optional materials tab
// whose failure degrades to empty material lists.
func (uc *WorkflowUseCase) LoadStagePage(ctx context.Context, spec StageSpec) (entity.StagePage, error) {
	var jobCards, orders, actuals []entity.Record

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		result, err := uc.reader.ReadTab(gctx, constants.TabJobCards)
		if err != nil {
			return err
		}
		jobCards = NormalizeRows(result)
		return nil
	})
	g.Go(func() error {
		result, err := uc.reader.ReadTab(gctx, constants.TabOrders)
		if err != nil {
			return err
		}
		orders = NormalizeRows(result)
		return nil
	})
	if spec.WithMaterials {
		g.Go(func() error {
			result, err := uc.reader.ReadTab(gctx, constants.TabActualProduction)
			if err != nil {
				if spec.MaterialsOptional {
					log.Printf("%s: actual-production read failed, continuing without materials: %v", spec.PageID, err)
					return nil
				}
				return err
			}
			actuals = NormalizeRows(result)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return entity.StagePage{}, err
	}

	pendingRecs, historyRecs := SplitByStage(jobCards, jcID(spec.StartCol), jcID(spec.EndCol))
	orderIdx := IndexByKey(orders, orderID(constants.OrderColDONo))
	actualIdx := IndexByKey(actuals, constants.ColumnID(constants.APColJCNo))

	page := entity.StagePage{
		Pending: make([]entity.WorkflowItem, 0, len(pendingRecs)),
		History: make([]entity.WorkflowItem, 0, len(historyRecs)),
	}
	for _, rec := range pendingRecs {
		page.Pending = append(page.Pending, uc.buildItem(rec, spec, orderIdx, actualIdx))
	}
	for _, rec := range historyRecs {
		page.History = append(page.History, uc.buildItem(rec, spec, orderIdx, actualIdx))
	}
	return page, nil
}

// buildItem joins one job-card record with its order row and materials and
// formats the marker dates for display.
func (uc *WorkflowUseCase) buildItem(rec entity.Record, spec StageSpec, orderIdx, actualIdx map[string]*entity.Record) entity.WorkflowItem {
	item := entity.WorkflowItem{
		RowIndex:        rec.RowIndex,
		JobCardNo:       rec.Text(jcID(constants.JCColNo)),
		DeliveryOrderNo: rec.Text(jcID(constants.JCColDONo)),
		Product:         rec.Text(jcID(constants.JCColProduct)),
		OrderedQty:      rec.Text(jcID(constants.JCColOrderedQty)),
		ProducedQty:     rec.Text(jcID(constants.JCColProducedQty)),
		MachineHours:    NormalizeMachineHours(rec.Get(jcID(constants.JCColMachineHours))),
		StartedAt:       DisplayDate(rec.Get(jcID(spec.StartCol)), false),
		CompletedAt:     DisplayDate(rec.Get(jcID(spec.EndCol)), true),
		Remarks:         rec.Text(jcID(constants.JCColRemarks)),
	}
	if spec.StatusCol >= 0 {
		item.Status = rec.Text(jcID(spec.StatusCol))
	}
	if spec.ByCol >= 0 {
		item.CheckedBy = rec.Text(jcID(spec.ByCol))
	}

	if order := orderIdx[item.DeliveryOrderNo]; order != nil {
		item.Customer = order.Text(orderID(constants.OrderColCustomer))
		item.ExpectedDelivery = DisplayDate(order.Get(orderID(constants.OrderColExpectedDelivery)), false)
	}
	if spec.WithMaterials {
		if actual := actualIdx[item.JobCardNo]; actual != nil {
			item.Materials = DenormalizeMaterials(*actual, uc.materialPairs)
		}
	}
	return item
}

// StageSubmit carries one stage completion form.
type StageSubmit struct {
	JobCardNo     string `json:"jobCardNo"`
	Status        string `json:"status"`
	CheckedBy     string `json:"checkedBy"`
	ProducedQty   string `json:"producedQty"`
	MachineHours  string `json:"machineHours"`
	DispatchedQty string `json:"dispatchedQty"`
	Remarks       string `json:"remarks"`
}

// CompleteStage validates a submit and marks the stage done through a
// single updateByJobCard write. Validation failure means no network call
// at all. The written completion timestamp is what flips the row from
// pending to history on the next read; nothing transitions locally.
func (uc *WorkflowUseCase) CompleteStage(ctx context.Context, spec StageSpec, sub StageSubmit) error {
	required := map[string]string{"jobCardNo": sub.JobCardNo}
	if spec.StatusCol >= 0 {
		required["status"] = sub.Status
	}
	if spec.PageID == "production" {
		required["producedQty"] = sub.ProducedQty
	}
	if err := requireFields(required); err != nil {
		return err
	}

	columns := map[int]string{
		spec.EndCol: FormatDateTime(time.Now()),
	}
	if spec.StatusCol >= 0 {
		columns[spec.StatusCol] = sub.Status
	}
	if spec.ByCol >= 0 && sub.CheckedBy != "" {
		columns[spec.ByCol] = sub.CheckedBy
	}
	switch spec.PageID {
	case "production":
		columns[constants.JCColProducedQty] = sub.ProducedQty
		if sub.MachineHours != "" {
			columns[constants.JCColMachineHours] = NormalizeMachineHours(sub.MachineHours)
		}
	case "tally":
		if sub.DispatchedQty != "" {
			columns[constants.JCColDispatchedQty] = sub.DispatchedQty
		}
	}
	if sub.Remarks != "" {
		columns[constants.JCColRemarks] = sub.Remarks
	}

	if err := uc.writer.UpdateByJobCard(ctx, constants.TabJobCards, sub.JobCardNo, columns); err != nil {
		return err
	}

	uc.notifyDone(ctx, spec, sub.JobCardNo, sub.Status)
	return nil
}

// KittingSubmit carries the full-kitting form: the costing figures plus
// the job-card identifiers the costing row needs.
type KittingSubmit struct {
	JobCardNo       string `json:"jobCardNo"`
	DeliveryOrderNo string `json:"deliveryOrderNo"`
	Product         string `json:"product"`
	Quantity        string `json:"quantity"`
	MaterialCost    string `json:"materialCost"`
	LaborCost       string `json:"laborCost"`
	OverheadCost    string `json:"overheadCost"`
	TotalCost       string `json:"totalCost"`
	Status          string `json:"status"`
}

// CompleteKitting is the one two-write submit: first the costing record is
// appended, then the job card is marked kitted. The second write is not
// attempted when the first fails. When the second fails after the first
// succeeded the costing row stays behind; that inconsistency window is a
// property of the remote endpoint and is surfaced, not repaired.
func (uc *WorkflowUseCase) CompleteKitting(ctx context.Context, sub KittingSubmit) error {
	if err := requireFields(map[string]string{
		"jobCardNo": sub.JobCardNo,
		"status":    sub.Status,
		"totalCost": sub.TotalCost,
	}); err != nil {
		return err
	}

	spec, _ := StageSpecFor("full-kitting")

	costingRow := make([]string, constants.CostColCount)
	costingRow[constants.CostColJCNo] = sub.JobCardNo
	costingRow[constants.CostColDONo] = sub.DeliveryOrderNo
	costingRow[constants.CostColProduct] = sub.Product
	costingRow[constants.CostColQty] = sub.Quantity
	costingRow[constants.CostColMaterialCost] = sub.MaterialCost
	costingRow[constants.CostColLaborCost] = sub.LaborCost
	costingRow[constants.CostColOverheadCost] = sub.OverheadCost
	costingRow[constants.CostColTotalCost] = sub.TotalCost
	costingRow[constants.CostColCreatedAt] = FormatDateTime(time.Now())

	if err := uc.writer.Insert(ctx, constants.TabCosting, costingRow); err != nil {
		return fmt.Errorf("costing record: %w", err)
	}

	columns := map[int]string{
		spec.EndCol:                  FormatDateTime(time.Now()),
		constants.JCColKittingStatus: sub.Status,
	}
	if err := uc.writer.UpdateByJobCard(ctx, constants.TabJobCards, sub.JobCardNo, columns); err != nil {
		return fmt.Errorf("costing saved but job card not marked kitted: %w", err)
	}

	uc.notifyDone(ctx, spec, sub.JobCardNo, sub.Status)
	return nil
}

func (uc *WorkflowUseCase) notifyDone(ctx context.Context, spec StageSpec, jobCardNo, status string) {
	if uc.notifier == nil {
		return
	}
	summary := spec.Label + " completed"
	if status != "" {
		summary += ": " + status
	}
	if err := uc.notifier.NotifyStageDone(ctx, spec.PageID, jobCardNo, summary); err != nil {
		log.Printf("notify %s %s: %v", spec.PageID, jobCardNo, err)
	}
}
