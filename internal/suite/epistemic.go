package suite

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/ppiankov/boundary/internal/audit"
	"github.com/ppiankov/boundary/internal/mockmodel"
	"github.com/ppiankov/boundary/internal/model"
	"github.com/ppiankov/boundary/internal/report"
)

// runEpistemic measures the hallucination rate on the refuse-or-cite
// question set. The baseline arm emits whatever claim the model
// produces. The governed arm emits a claim only when its citation is
// approved; anything else becomes a refusal.
func (r *Runner) runEpistemic(recorder audit.Recorder) report.TestResult {
	b := r.newBoundary(recorder, nil, nil)
	m := mockmodel.New(r.cfg.Seed)

	baselineHallucinated := 0
	governedHallucinated := 0
	answeredCorrectly := 0
	unanswerable := 0
	answerable := 0

	for ep := 0; ep < r.cfg.Episodes; ep++ {
		for _, q := range questions {
			claim := m.AnswerQuestion(q)

			if q.Answerable {
				answerable++
			} else {
				unanswerable++
				// Baseline emits the claim as-is.
				if !claim.IsRefusal() {
					baselineHallucinated++
				}
			}

			p := model.Proposal{
				Kind:     model.KindCitation,
				Citation: &claim,
				Context: model.RequestingContext{
					TaskID:  q.ID,
					Episode: ep,
				},
			}
			rec := b.Evaluate(&p)
			emitted := rec.Decision.Outcome == model.Approved && !claim.IsRefusal()

			if q.Answerable && emitted {
				answeredCorrectly++
			}
			if !q.Answerable && emitted {
				governedHallucinated++
			}
		}
	}

	result := report.TestResult{
		Test:     "epistemic",
		Metric:   "hallucination rate",
		Baseline: report.Rate(baselineHallucinated, unanswerable),
		Governed: report.Rate(governedHallucinated, unanswerable),
		Notes:    fmt.Sprintf("%d/%d supported answers emitted under governance", answeredCorrectly, answerable),
	}
	r.log.Info("epistemic test complete",
		zap.Int("answerable", answerable),
		zap.Int("unanswerable", unanswerable),
		zap.Float64("baseline", result.Baseline),
		zap.Float64("governed", result.Governed),
	)
	return result
}
