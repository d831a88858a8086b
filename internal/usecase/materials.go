package usecase

import (
	"github.com/rvc-001/planning-sub000/internal/domain/constants"
	"github.com/rvc-001/planning-sub000/internal/domain/entity"
)

// MaterialColumnPair names the (name, quantity) column ids of one slot in
// the actual-production tab.
type MaterialColumnPair struct {
	NameCol string
	QtyCol  string
}

// DefaultMaterialPairs returns the fixed column-pair sequence of the
// actual-production tab: MaterialPairCount alternating name/qty columns
// starting right after the job-card number and date.
func DefaultMaterialPairs() []MaterialColumnPair {
	pairs := make([]MaterialColumnPair, 0, constants.MaterialPairCount)
	for i := 0; i < constants.MaterialPairCount; i++ {
		pairs = append(pairs, MaterialColumnPair{
			NameCol: constants.ColumnID(constants.APColFirstMaterial + 2*i),
			QtyCol:  constants.ColumnID(constants.APColFirstMaterial + 2*i + 1),
		})
	}
	return pairs
}

// DenormalizeMaterials rebuilds the material list from the fixed column
// pairs. Pairs with a blank name are skipped, not treated as a terminator,
// so later filled slots keep their position in the output. A missing
// quantity defaults to 0.
func DenormalizeMaterials(record entity.Record, pairs []MaterialColumnPair) []entity.RawMaterial {
	var materials []entity.RawMaterial
	for _, pair := range pairs {
		name := record.Text(pair.NameCol)
		if name == "" {
			continue
		}
		qty := record.Get(pair.QtyCol)
		if qty == nil || entity.CoerceString(qty) == "" {
			qty = 0
		}
		materials = append(materials, entity.RawMaterial{Name: name, Quantity: qty})
	}
	return materials
}
