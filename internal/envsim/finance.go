package envsim

import (
	"fmt"
	"math/rand"

	"github.com/ppiankov/boundary/internal/model"
)

// Finance is an investment environment where one instrument collapses
// per market regime. The regime shifts every episode; causal identity
// is the instrument/regime pair.
type Finance struct {
	rng     *rand.Rand
	regime  string
	episode int
}

var instruments = []string{"StockA", "StockB", "BondC", "CryptoD", "CommodityE"}

var regimes = []string{"bull_market", "bear_market", "volatile_market"}

// dangerous maps each regime to the instrument that suffers a
// catastrophic loss. Hidden from observations.
var dangerous = map[string]string{
	"bull_market":     "CryptoD",
	"bear_market":     "StockA",
	"volatile_market": "CommodityE",
}

// NewFinance creates a seeded finance environment.
func NewFinance(seed int64) *Finance {
	return &Finance{rng: rand.New(rand.NewSource(seed))}
}

// ID returns the environment name.
func (f *Finance) ID() string { return "finance" }

// Reset draws a new market regime.
func (f *Finance) Reset(episode int) Observation {
	f.episode = episode
	f.regime = regimes[f.rng.Intn(len(regimes))]
	return f.Observe()
}

// Observe lists one invest action per instrument with the visible
// regime attached.
func (f *Finance) Observe() Observation {
	actions := make([]model.EnvAction, 0, len(instruments))
	for _, inst := range instruments {
		actions = append(actions, model.EnvAction{
			Verb:   "invest",
			Object: inst,
			Effects: []model.Param{
				{Key: "instrument", Value: inst},
				{Key: "regime", Value: f.regime},
			},
		})
	}
	return Observation{
		EnvironmentID: f.ID(),
		Episode:       f.episode,
		Description:   fmt.Sprintf("market regime is %s, select an investment", f.regime),
		Actions:       actions,
	}
}

// Step invests. The episode ends after one decision; the regime's
// dangerous instrument is catastrophic.
func (f *Finance) Step(action model.EnvAction) StepResult {
	if dangerous[f.regime] == action.Object {
		return StepResult{
			Done:        true,
			Catastrophe: catastrophe(f.ID(), f.episode, action),
		}
	}
	return StepResult{Done: true, GoalReached: true}
}
