package usecase

import (
	"context"
	"time"

	"github.com/rvc-001/planning-sub000/internal/domain/constants"
	"github.com/rvc-001/planning-sub000/internal/domain/entity"
	"github.com/rvc-001/planning-sub000/internal/domain/repository"
)

// OrderUseCase covers the orders page and the job-cards page, both of
// which work off the Orders tab rather than a JobCards stage pair.
type OrderUseCase struct {
	reader repository.SheetReader
	writer repository.CommandWriter
}

func NewOrderUseCase(reader repository.SheetReader, writer repository.CommandWriter) *OrderUseCase {
	return &OrderUseCase{reader: reader, writer: writer}
}

// LoadOrders returns every order row, dates formatted for display.
func (uc *OrderUseCase) LoadOrders(ctx context.Context) ([]entity.Order, error) {
	result, err := uc.reader.ReadTab(ctx, constants.TabOrders)
	if err != nil {
		return nil, err
	}
	records := NormalizeRows(result)

	orders := make([]entity.Order, 0, len(records))
	for _, rec := range records {
		orders = append(orders, buildOrder(rec))
	}
	return orders, nil
}

// JobCardsPage splits orders into those still waiting for a job card and
// those that already have one. The order date is the start marker here and
// the job-card issue date the completion marker.
type JobCardsPage struct {
	Pending []entity.Order `json:"pending"`
	History []entity.Order `json:"history"`
}

func (uc *OrderUseCase) LoadJobCardsPage(ctx context.Context) (JobCardsPage, error) {
	result, err := uc.reader.ReadTab(ctx, constants.TabOrders)
	if err != nil {
		return JobCardsPage{}, err
	}
	records := NormalizeRows(result)

	pendingRecs, historyRecs := SplitByStage(records,
		orderID(constants.OrderColDate), orderID(constants.OrderColJobCardIssuedAt))

	page := JobCardsPage{
		Pending: make([]entity.Order, 0, len(pendingRecs)),
		History: make([]entity.Order, 0, len(historyRecs)),
	}
	for _, rec := range pendingRecs {
		page.Pending = append(page.Pending, buildOrder(rec))
	}
	for _, rec := range historyRecs {
		page.History = append(page.History, buildOrder(rec))
	}
	return page, nil
}

// OrderSubmit carries the new-order form.
type OrderSubmit struct {
	DeliveryOrderNo  string `json:"deliveryOrderNo"`
	Customer         string `json:"customer"`
	Product          string `json:"product"`
	Quantity         string `json:"quantity"`
	Unit             string `json:"unit"`
	ExpectedDelivery string `json:"expectedDelivery"`
	Remarks          string `json:"remarks"`
}

// CreateOrder appends a new order row. A duplicate click duplicates the
// insert; the write endpoint has no idempotency key.
func (uc *OrderUseCase) CreateOrder(ctx context.Context, sub OrderSubmit) error {
	if err := requireFields(map[string]string{
		"deliveryOrderNo": sub.DeliveryOrderNo,
		"customer":        sub.Customer,
		"product":         sub.Product,
		"quantity":        sub.Quantity,
	}); err != nil {
		return err
	}

	row := make([]string, constants.OrderColCount)
	row[constants.OrderColDONo] = sub.DeliveryOrderNo
	row[constants.OrderColDate] = FormatDate(time.Now())
	row[constants.OrderColCustomer] = sub.Customer
	row[constants.OrderColProduct] = sub.Product
	row[constants.OrderColQty] = sub.Quantity
	row[constants.OrderColUnit] = sub.Unit
	row[constants.OrderColExpectedDelivery] = sub.ExpectedDelivery
	row[constants.OrderColStatus] = "Open"
	row[constants.OrderColRemarks] = sub.Remarks

	return uc.writer.Insert(ctx, constants.TabOrders, row)
}

// OrderEditSubmit carries the edit-order form. Edits replace the whole
// row through the update action, so the form sends every column; fields
// left blank blank the cell.
type OrderEditSubmit struct {
	RowIndex         int    `json:"rowIndex"`
	DeliveryOrderNo  string `json:"deliveryOrderNo"`
	OrderDate        string `json:"orderDate"`
	Customer         string `json:"customer"`
	Product          string `json:"product"`
	Quantity         string `json:"quantity"`
	Unit             string `json:"unit"`
	ExpectedDelivery string `json:"expectedDelivery"`
	JobCardIssuedAt  string `json:"jobCardIssuedAt"`
	Status           string `json:"status"`
	Remarks          string `json:"remarks"`
}

// UpdateOrder rewrites one order row in place. RowIndex comes from a
// prior read and addresses the sheet row directly.
func (uc *OrderUseCase) UpdateOrder(ctx context.Context, sub OrderEditSubmit) error {
	if err := requireFields(map[string]string{
		"deliveryOrderNo": sub.DeliveryOrderNo,
		"customer":        sub.Customer,
		"product":         sub.Product,
		"quantity":        sub.Quantity,
	}); err != nil {
		return err
	}
	if sub.RowIndex <= 1 {
		return newFieldError("rowIndex", "must address a data row")
	}

	row := make([]string, constants.OrderColCount)
	row[constants.OrderColDONo] = sub.DeliveryOrderNo
	row[constants.OrderColDate] = sub.OrderDate
	row[constants.OrderColCustomer] = sub.Customer
	row[constants.OrderColProduct] = sub.Product
	row[constants.OrderColQty] = sub.Quantity
	row[constants.OrderColUnit] = sub.Unit
	row[constants.OrderColExpectedDelivery] = sub.ExpectedDelivery
	row[constants.OrderColJobCardIssuedAt] = sub.JobCardIssuedAt
	row[constants.OrderColStatus] = sub.Status
	row[constants.OrderColRemarks] = sub.Remarks

	return uc.writer.Update(ctx, constants.TabOrders, sub.RowIndex, row)
}

// JobCardSubmit carries the issue-job-card form.
type JobCardSubmit struct {
	JobCardNo       string `json:"jobCardNo"`
	DeliveryOrderNo string `json:"deliveryOrderNo"`
	OrderRowIndex   int    `json:"orderRowIndex"`
	Product         string `json:"product"`
	OrderedQty      string `json:"orderedQty"`
}

// IssueJobCard appends the job-card row, then marks the order as issued.
// The order update is skipped when the insert fails; a failed second write
// leaves the job card behind without the order marker, which the next
// reload shows as-is.
func (uc *OrderUseCase) IssueJobCard(ctx context.Context, sub JobCardSubmit) error {
	if err := requireFields(map[string]string{
		"jobCardNo":       sub.JobCardNo,
		"deliveryOrderNo": sub.DeliveryOrderNo,
		"orderedQty":      sub.OrderedQty,
	}); err != nil {
		return err
	}
	if sub.OrderRowIndex <= 0 {
		return newFieldError("orderRowIndex", "required")
	}

	now := time.Now()
	row := make([]string, constants.JCColCount)
	row[constants.JCColNo] = sub.JobCardNo
	row[constants.JCColDONo] = sub.DeliveryOrderNo
	row[constants.JCColProduct] = sub.Product
	row[constants.JCColOrderedQty] = sub.OrderedQty
	row[constants.JCColIssuedAt] = FormatDateTime(now)

	if err := uc.writer.Insert(ctx, constants.TabJobCards, row); err != nil {
		return err
	}
	return uc.writer.UpdateColumns(ctx, constants.TabOrders, sub.OrderRowIndex, map[int]string{
		constants.OrderColJobCardIssuedAt: FormatDateTime(now),
		constants.OrderColStatus:          "Job Card Issued",
	})
}

func buildOrder(rec entity.Record) entity.Order {
	return entity.Order{
		RowIndex:         rec.RowIndex,
		DeliveryOrderNo:  rec.Text(orderID(constants.OrderColDONo)),
		OrderDate:        DisplayDate(rec.Get(orderID(constants.OrderColDate)), false),
		Customer:         rec.Text(orderID(constants.OrderColCustomer)),
		Product:          rec.Text(orderID(constants.OrderColProduct)),
		Quantity:         rec.Text(orderID(constants.OrderColQty)),
		Unit:             rec.Text(orderID(constants.OrderColUnit)),
		ExpectedDelivery: DisplayDate(rec.Get(orderID(constants.OrderColExpectedDelivery)), false),
		JobCardIssuedAt:  DisplayDate(rec.Get(orderID(constants.OrderColJobCardIssuedAt)), true),
		Status:           rec.Text(orderID(constants.OrderColStatus)),
		Remarks:          rec.Text(orderID(constants.OrderColRemarks)),
	}
}
