package constants

// Tab names of the shared planning spreadsheet.
const (
	TabOrders           = "Orders"
	TabJobCards         = "JobCards"
	TabActualProduction = "ActualProduction"
	TabCosting          = "Costing"
	TabLogin            = "Login"
)

// Orders tab column indices (zero-based).
const (
	OrderColDONo = iota
	OrderColDate
	OrderColCustomer
	OrderColProduct
	OrderColQty
	OrderColUnit
	OrderColExpectedDelivery
	OrderColJobCardIssuedAt
	OrderColStatus
	OrderColRemarks
	OrderColCount
)

// JobCards tab column indices. The write endpoint addresses columns by
// these raw offsets, so the order here is the wire contract.
const (
	JCColNo = iota
	JCColDONo
	JCColProduct
	JCColOrderedQty
	JCColIssuedAt
	JCColProductionDoneAt
	JCColProducedQty
	JCColMachineHours
	JCColLab1DoneAt
	JCColLab1Result
	JCColLab1By
	JCColLab2DoneAt
	JCColLab2Result
	JCColLab2By
	JCColChemDoneAt
	JCColChemResult
	JCColChemBy
	JCColCheckDoneAt
	JCColCheckStatus
	JCColCheckBy
	JCColKittingDoneAt
	JCColKittingStatus
	JCColTallyDoneAt
	JCColTallyStatus
	JCColDispatchedQty
	JCColRemarks
	JCColCount
)

// ActualProduction tab layout: job-card number, date, then
// MaterialPairCount alternating (name, quantity) column pairs.
const (
	APColJCNo = iota
	APColDate
	APColFirstMaterial
)

const (
	// MaterialPairCount is the fixed number of (name, qty) pairs the
	// actual-production tab reserves per row.
	MaterialPairCount = 20

	APColTotalQty = APColFirstMaterial + 2*MaterialPairCount
	APColOperator = APColTotalQty + 1
)

// Costing tab column indices.
const (
	CostColJCNo = iota
	CostColDONo
	CostColProduct
	CostColQty
	CostColMaterialCost
	CostColLaborCost
	CostColOverheadCost
	CostColTotalCost
	CostColCreatedAt
	CostColCount
)

// Login tab column indices.
const (
	LoginColID = iota
	LoginColUsername
	LoginColPassword
	LoginColRole
	LoginColPermissions
	LoginColCount
)

// Session constants.
const (
	// SessionTimeoutHours is how long an issued login token stays valid.
	SessionTimeoutHours = 24
)

// AI model constants (dashboard insight).
const (
	GeminiModelName = "gemini-2.5-flash"
	AITemperature   = 0.3
	AITopK          = 20
	AITopP          = 0.9
)

// ColumnID converts a zero-based column index to the spreadsheet column
// letter the read endpoint uses as column id ("A", "B", ..., "AA", ...).
func ColumnID(index int) string {
	if index < 0 {
		return ""
	}
	id := ""
	for index >= 0 {
		id = string(rune('A'+index%26)) + id
		index = index/26 - 1
	}
	return id
}
