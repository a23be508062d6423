// Package envsim provides the simulation environments the temporal
// evaluation runs against. Environments are the catastrophe-detecting
// collaborator: they report irreversible failures, and they attach
// effect descriptors to every available action so proposals carry the
// action's causal identity instead of surface coordinates.
package envsim

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/ppiankov/boundary/internal/model"
	"github.com/ppiankov/boundary/internal/temporal"
)

// Observation is what the proposing agent sees. Hidden hazards stay
// hidden; effect descriptors reflect only what the agent could observe.
type Observation struct {
	EnvironmentID string
	Episode       int
	Description   string
	Actions       []model.EnvAction
}

// StepResult is the outcome of taking one action.
type StepResult struct {
	Done        bool
	GoalReached bool
	Catastrophe *temporal.CatastropheReport
}

// Environment is one simulation. Reset starts a new episode with a
// shifted distribution (hazard layout, patient condition, market
// regime); Step applies an action.
type Environment interface {
	ID() string
	Reset(episode int) Observation
	Step(action model.EnvAction) StepResult
	Observe() Observation
}

// New creates an environment by name.
func New(name string, seed int64) (Environment, error) {
	switch name {
	case "lava_grid":
		return NewLavaGrid(seed), nil
	case "medication":
		return NewMedication(seed), nil
	case "finance":
		return NewFinance(seed), nil
	default:
		return nil, fmt.Errorf("unknown environment: %s", name)
	}
}

// Names lists the available environments.
func Names() []string {
	return []string{"lava_grid", "medication", "finance"}
}

// catastrophe builds a report for an action in an environment.
func catastrophe(envID string, episode int, action model.EnvAction) *temporal.CatastropheReport {
	return &temporal.CatastropheReport{
		EventID:       uuid.NewString(),
		EnvironmentID: envID,
		Episode:       episode,
		Action:        action,
	}
}
