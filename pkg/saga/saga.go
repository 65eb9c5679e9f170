package saga

import (
	"context"
)

// Step represents a single step in a saga with an execute and compensate
// function. Compensate is best-effort: its failures are collected, never
// propagated as the saga result.
type Step struct {
	Name       string
	Execute    func(ctx context.Context) error
	Compensate func(ctx context.Context)
}

// CompensationReport summarizes the rollback sweep after a failed step.
type CompensationReport struct {
	// Compensated counts the compensation handlers that ran.
	Compensated int
	// Steps lists the names of the compensated steps, in execution order of
	// the sweep (reverse of the original step order).
	Steps []string
}

// Saga orchestrates a series of steps with automatic compensation on failure.
type Saga struct {
	name  string
	steps []Step
}

// New creates a new saga with the given name.
func New(name string) *Saga {
	return &Saga{name: name}
}

// AddStep adds a step to the saga.
func (s *Saga) AddStep(step Step) *Saga {
	s.steps = append(s.steps, step)
	return s
}

// Execute runs all saga steps sequentially. If a step fails, every previously
// completed step is compensated in reverse order and the report says which.
// The step's error is returned as-is so callers can surface and classify it;
// failedStep identifies the step. failedStep is -1 on success.
func (s *Saga) Execute(ctx context.Context) (failedStep int, report CompensationReport, err error) {
	completed := make([]int, 0, len(s.steps))

	for i, step := range s.steps {
		if err := step.Execute(ctx); err != nil {
			report := s.compensate(ctx, completed)
			return i, report, err
		}
		completed = append(completed, i)
	}

	return -1, CompensationReport{}, nil
}

func (s *Saga) compensate(ctx context.Context, completedIndexes []int) CompensationReport {
	var report CompensationReport
	for i := len(completedIndexes) - 1; i >= 0; i-- {
		step := s.steps[completedIndexes[i]]
		if step.Compensate == nil {
			continue
		}
		step.Compensate(ctx)
		report.Compensated++
		report.Steps = append(report.Steps, step.Name)
	}
	return report
}
