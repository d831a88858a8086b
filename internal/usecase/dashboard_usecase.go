package usecase

import (
	"context"
	"log"

	"golang.org/x/sync/errgroup"

	"github.com/rvc-001/planning-sub000/internal/domain/constants"
	"github.com/rvc-001/planning-sub000/internal/domain/entity"
	"github.com/rvc-001/planning-sub000/internal/domain/repository"
)

// DashboardUseCase aggregates pending counts across every stage pair from
// a single pair of tab reads.
type DashboardUseCase struct {
	reader  repository.SheetReader
	insight repository.InsightRepository
}

func NewDashboardUseCase(reader repository.SheetReader, insight repository.InsightRepository) *DashboardUseCase {
	return &DashboardUseCase{reader: reader, insight: insight}
}

// Dashboard is the landing-page payload.
type Dashboard struct {
	TotalOrders int                 `json:"totalOrders"`
	OpenOrders  int                 `json:"openOrders"`
	Stages      []entity.StageCount `json:"stages"`
	Insight     string              `json:"insight,omitempty"`
}

// Load computes the per-stage buckets. The insight line is best effort:
// when the AI backend is unconfigured or failing the dashboard still
// renders, just without it.
func (uc *DashboardUseCase) Load(ctx context.Context) (Dashboard, error) {
	var jobCards, orders []entity.Record

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
	if err := g.Wait(); err != nil {
		return Dashboard{}, err
	}

	dash := Dashboard{TotalOrders: len(orders)}
	for _, rec := range orders {
		if ClassifyStage(rec, orderID(constants.OrderColDate), orderID(constants.OrderColJobCardIssuedAt)) == entity.StagePending {
			dash.OpenOrders++
		}
	}

	counts := make(map[string]int, len(stageSpecs))
	for _, spec := range stageSpecs {
		pending, history := SplitByStage(jobCards, jcID(spec.StartCol), jcID(spec.EndCol))
		dash.Stages = append(dash.Stages, entity.StageCount{
			Page:    spec.PageID,
			Label:   spec.Label,
			Pending: len(pending),
			Done:    len(history),
		})
		counts[spec.Label] = len(pending)
	}

	if uc.insight != nil {
		text, err := uc.insight.SummarizeCounts(ctx, counts)
		if err != nil {
			log.Printf("dashboard insight: %v", err)
		} else {
			dash.Insight = text
		}
	}
	return dash, nil
}
