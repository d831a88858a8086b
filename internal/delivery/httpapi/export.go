package httpapi

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"

	"github.com/rvc-001/planning-sub000/internal/domain/entity"
	"github.com/rvc-001/planning-sub000/internal/usecase"
)

func (s *Server) handleExportOrders(c *gin.Context) {
	orders, err := s.orders.LoadOrders(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	payload, err := buildOrdersXLSX(orders)
	if err != nil {
		writeError(c, err)
		return
	}
	sendXLSX(c, "orders", payload)
}

func (s *Server) handleExportStage(spec usecase.StageSpec) gin.HandlerFunc {
	return func(c *gin.Context) {
		page, err := s.workflow.LoadStagePage(c.Request.Context(), spec)
		if err != nil {
			writeError(c, err)
			return
		}
		payload, err := buildStageXLSX(spec, page)
		if err != nil {
			writeError(c, err)
			return
		}
		sendXLSX(c, spec.PageID, payload)
	}
}

func sendXLSX(c *gin.Context, name string, payload []byte) {
	filename := fmt.Sprintf("%s_%s.xlsx", name, time.Now().Format("20060102_150405"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", payload)
}

func buildOrdersXLSX(orders []entity.Order) ([]byte, error) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)

	headers := []string{"DO No", "Order Date", "Customer", "Product", "Quantity", "Unit", "Expected Delivery", "Job Card Issued", "Status", "Remarks"}
	if err := writeRow(f, sheet, 1, headers); err != nil {
		return nil, err
	}
	for i, ord := range orders {
		row := []string{
			ord.DeliveryOrderNo, ord.OrderDate, ord.Customer, ord.Product,
			ord.Quantity, ord.Unit, ord.ExpectedDelivery, ord.JobCardIssuedAt,
			ord.Status, ord.Remarks,
		}
		if err := writeRow(f, sheet, i+2, row); err != nil {
			return nil, err
		}
	}

	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// buildStageXLSX writes the pending list first, a blank row, then the
// history list, the way the stage pages lay their two tables out.
func buildStageXLSX(spec usecase.StageSpec, page entity.StagePage) ([]byte, error) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)

	headers := []string{"Job Card", "DO No", "Product", "Customer", "Ordered Qty", "Produced Qty", "Started", "Completed", "Status", "Checked By", "Materials"}

	rowNum := 1
	writeSection := func(title string, items []entity.WorkflowItem) error {
		if err := writeRow(f, sheet, rowNum, []string{title}); err != nil {
			return err
		}
		rowNum++
		if err := writeRow(f, sheet, rowNum, headers); err != nil {
			return err
		}
		rowNum++
		for _, item := range items {
			row := []string{
				item.JobCardNo, item.DeliveryOrderNo, item.Product, item.Customer,
				item.OrderedQty, item.ProducedQty, item.StartedAt, item.CompletedAt,
				item.Status, item.CheckedBy, formatMaterials(item.Materials),
			}
			if err := writeRow(f, sheet, rowNum, row); err != nil {
				return err
			}
			rowNum++
		}
		rowNum++
		return nil
	}

	if err := writeSection(spec.Label+" - Pending", page.Pending); err != nil {
		return nil, err
	}
	if err := writeSection(spec.Label+" - History", page.History); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeRow(f *excelize.File, sheet string, rowNum int, values []string) error {
	for col, value := range values {
		if value == "" {
			continue
		}
		cell, err := excelize.CoordinatesToCellName(col+1, rowNum)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, value); err != nil {
			return err
		}
	}
	return nil
}

func formatMaterials(materials []entity.RawMaterial) string {
	out := ""
	for i, m := range materials {
		if i > 0 {
			out += ", "
		}
		out += fmt.Sprintf("%s x%v", m.Name, m.Quantity)
	}
	return out
}
