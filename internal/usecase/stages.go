package usecase

import (
	"github.com/rvc-001/planning-sub000/internal/domain/constants"
)

// StageSpec parameterizes the shared row pipeline for one workflow page.
// Start and end name the two marker columns on the job-cards tab; a row is
// pending for the page when start is set and end is not.
type StageSpec struct {
	PageID string
	Label  string

	// Marker column indices on the JobCards tab.
	StartCol int
	EndCol   int

	// Per-stage result columns shown in the history list, -1 when the
	// stage has none.
	StatusCol int
	ByCol     int

	// WithMaterials joins the actual-production tab by job-card number.
	WithMaterials bool

	// MaterialsOptional swallows a failed actual-production read and
	// renders the page with empty material lists instead of failing the
	// whole load.
	MaterialsOptional bool
}

// jcID maps a JobCards column index to its gviz column id.
func jcID(index int) string {
	return constants.ColumnID(index)
}

// orderID maps an Orders column index to its gviz column id.
func orderID(index int) string {
	return constants.ColumnID(index)
}

// stageSpecs lists every stage page in workflow order. Each page sees only
// its own transition; the chain as a whole is implied by one page's end
// marker being the next page's start marker.
var stageSpecs = []StageSpec{
	{
		PageID:    "production",
		Label:     "Production",
		StartCol:  constants.JCColIssuedAt,
		EndCol:    constants.JCColProductionDoneAt,
		StatusCol: -1,
		ByCol:     -1,
	},
	{
		PageID:        "lab-testing1",
		Label:         "Lab Testing 1",
		StartCol:      constants.JCColProductionDoneAt,
		EndCol:        constants.JCColLab1DoneAt,
		StatusCol:     constants.JCColLab1Result,
		ByCol:         constants.JCColLab1By,
		WithMaterials: true,
	},
	{
		PageID:        "lab-testing2",
		Label:         "Lab Testing 2",
		StartCol:      constants.JCColLab1DoneAt,
		EndCol:        constants.JCColLab2DoneAt,
		StatusCol:     constants.JCColLab2Result,
		ByCol:         constants.JCColLab2By,
		WithMaterials: true,
	},
	{
		PageID:    "chemical-test",
		Label:     "Chemical Test",
		StartCol:  constants.JCColLab2DoneAt,
		EndCol:    constants.JCColChemDoneAt,
		StatusCol: constants.JCColChemResult,
		ByCol:     constants.JCColChemBy,
	},
	{
		PageID:    "check",
		Label:     "Check",
		StartCol:  constants.JCColChemDoneAt,
		EndCol:    constants.JCColCheckDoneAt,
		StatusCol: constants.JCColCheckStatus,
		ByCol:     constants.JCColCheckBy,
	},
	{
		PageID:    "full-kitting",
		Label:     "Full Kitting",
		StartCol:  constants.JCColCheckDoneAt,
		EndCol:    constants.JCColKittingDoneAt,
		StatusCol: constants.JCColKittingStatus,
		ByCol:     -1,
	},
	{
		PageID:            "tally",
		Label:             "Tally",
		StartCol:          constants.JCColKittingDoneAt,
		EndCol:            constants.JCColTallyDoneAt,
		StatusCol:         constants.JCColTallyStatus,
		ByCol:             -1,
		WithMaterials:     true,
		MaterialsOptional: true,
	},
}

// StageSpecs returns the stage table in workflow order.
func StageSpecs() []StageSpec {
	specs := make([]StageSpec, len(stageSpecs))
	copy(specs, stageSpecs)
	return specs
}

// StageSpecFor looks a stage page up by its route id.
func StageSpecFor(pageID string) (StageSpec, bool) {
	for _, spec := range stageSpecs {
		if spec.PageID == pageID {
			return spec, true
		}
	}
	return StageSpec{}, false
}
