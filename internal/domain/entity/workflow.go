package entity

// StageState classifies a job-card row for one workflow stage.
type StageState int

const (
	// StageIrrelevant: the stage has not started for this row.
	StageIrrelevant StageState = iota
	// StagePending: started but not completed.
	StagePending
	// StageHistory: both markers set.
	StageHistory
)

func (s StageState) String() string {
	switch s {
	case StagePending:
		return "pending"
	case StageHistory:
		return "history"
	default:
		return "irrelevant"
	}
}

// RawMaterial is one (name, quantity) pair reconstructed from the
// alternating material columns of the actual-production tab.
type RawMaterial struct {
	Name     string `json:"name"`
	Quantity any    `json:"quantity"`
}

// WorkflowItem is the assembled per-page view of one job card: the primary
// row joined with whatever the page needs from the other tabs, dates
// already formatted for display. Items are recomputed in full on every
// load; the spreadsheet is the only durable store.
type WorkflowItem struct {
	RowIndex         int           `json:"rowIndex"`
	JobCardNo        string        `json:"jobCardNo"`
	DeliveryOrderNo  string        `json:"deliveryOrderNo"`
	Product          string        `json:"product"`
	Customer         string        `json:"customer,omitempty"`
	OrderedQty       string        `json:"orderedQty,omitempty"`
	ProducedQty      string        `json:"producedQty,omitempty"`
	MachineHours     string        `json:"machineHours,omitempty"`
	ExpectedDelivery string        `json:"expectedDelivery,omitempty"`
	StartedAt        string        `json:"startedAt,omitempty"`
	CompletedAt      string        `json:"completedAt,omitempty"`
	Status           string        `json:"status,omitempty"`
	CheckedBy        string        `json:"checkedBy,omitempty"`
	Remarks          string        `json:"remarks,omitempty"`
	Materials        []RawMaterial `json:"materials,omitempty"`
}

// StagePage holds the classified lists one workflow page renders.
type StagePage struct {
	Pending []WorkflowItem `json:"pending"`
	History []WorkflowItem `json:"history"`
}

// Order is one row of the orders tab.
type Order struct {
	RowIndex         int    `json:"rowIndex"`
	DeliveryOrderNo  string `json:"deliveryOrderNo"`
	OrderDate        string `json:"orderDate"`
	Customer         string `json:"customer"`
	Product          string `json:"product"`
	Quantity         string `json:"quantity"`
	Unit             string `json:"unit"`
	ExpectedDelivery string `json:"expectedDelivery"`
	JobCardIssuedAt  string `json:"jobCardIssuedAt,omitempty"`
	Status           string `json:"status,omitempty"`
	Remarks          string `json:"remarks,omitempty"`
}

// StageCount is one dashboard bucket: how many job cards sit pending in a
// stage right now.
type StageCount struct {
	Page    string `json:"page"`
	Label   string `json:"label"`
	Pending int    `json:"pending"`
	Done    int    `json:"done"`
}
