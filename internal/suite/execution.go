package suite

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/ppiankov/boundary/internal/audit"
	"github.com/ppiankov/boundary/internal/mockmodel"
	"github.com/ppiankov/boundary/internal/model"
	"github.com/ppiankov/boundary/internal/report"
)

// runExecution measures the mean model token cost over tasks that meet
// the correctness floor. The baseline arm executes whatever strategy
// the model prefers (usually verbose free-form). The governed arm
// redirects to the recommended template when free-form is dominated.
//
// Token accounting: a free-form reply costs its full word count; a
// template strategy costs only the field values the model supplies,
// since rendering is mechanical.
func (r *Runner) runExecution(recorder audit.Recorder) report.TestResult {
	floor := r.policyCfg.Thresholds.CorrectnessMin
	tasks := taskSource{floor: floor}
	b := r.newBoundary(recorder, nil, tasks)
	m := mockmodel.New(r.cfg.Seed + 1)

	var baseTokens, govTokens []int
	var baseCorrect, govCorrect []float64
	redirected := 0

	for ep := 0; ep < r.cfg.Episodes; ep++ {
		for _, task := range workflowTasks {
			strategy := m.ChooseStrategy(task.Category, task.Data, task.TemplateID)

			// Baseline executes the model's preference.
			text, tokens := r.renderStrategy(strategy, task)
			baseTokens = append(baseTokens, tokens)
			baseCorrect = append(baseCorrect, r.grader.Score(task.Category, text, task.Data))

			p := model.Proposal{
				Kind:     model.KindResponseStrategy,
				Strategy: &strategy,
				Context: model.RequestingContext{
					TaskID:  task.ID,
					Episode: ep,
				},
			}
			rec := b.Evaluate(&p)

			executed := strategy
			if rec.Decision.Outcome != model.Approved {
				if rec.Decision.RecommendedTemplate == "" {
					// No viable alternative; nothing is emitted.
					govTokens = append(govTokens, 0)
					govCorrect = append(govCorrect, 0)
					continue
				}
				redirected++
				executed = templateStrategy(rec.Decision.RecommendedTemplate, task.Data)
				retry := model.Proposal{
					Kind:     model.KindResponseStrategy,
					Strategy: &executed,
					Context:  p.Context,
				}
				b.Evaluate(&retry)
			}

			text, tokens = r.renderStrategy(executed, task)
			govTokens = append(govTokens, tokens)
			govCorrect = append(govCorrect, r.grader.Score(task.Category, text, task.Data))
		}
	}

	baseMean, _ := report.MeanTokensAtThreshold(baseTokens, baseCorrect, floor)
	govMean, _ := report.MeanTokensAtThreshold(govTokens, govCorrect, floor)

	result := report.TestResult{
		Test:     "execution",
		Metric:   fmt.Sprintf("mean tokens at correctness >= %.2f", floor),
		Baseline: baseMean,
		Governed: govMean,
		Notes:    fmt.Sprintf("%d free-form replies redirected to templates", redirected),
	}
	r.log.Info("execution test complete",
		zap.Int("tasks", len(baseTokens)),
		zap.Int("redirected", redirected),
		zap.Float64("baseline", result.Baseline),
		zap.Float64("governed", result.Governed),
	)
	return result
}

// renderStrategy produces the emitted text and its model token cost.
func (r *Runner) renderStrategy(s model.Strategy, task workflowTask) (string, int) {
	if s.Mode == model.StrategyTemplate {
		tmpl, ok := r.templates.Get(s.TemplateID)
		if !ok {
			return "", 0
		}
		data := make(map[string]string, len(s.Fields))
		cost := 0
		for _, f := range s.Fields {
			data[f.Key] = f.Value
			cost += len(strings.Fields(f.Value))
		}
		text, err := tmpl.Render(data)
		if err != nil {
			return "", cost
		}
		return text, cost
	}
	return s.Text, len(strings.Fields(s.Text))
}

// templateStrategy builds a template proposal from task data.
func templateStrategy(templateID string, data map[string]string) model.Strategy {
	fields := make([]model.Param, 0, len(data))
	for k, v := range data {
		fields = append(fields, model.Param{Key: k, Value: v})
	}
	return model.Strategy{Mode: model.StrategyTemplate, TemplateID: templateID, Fields: fields}
}
