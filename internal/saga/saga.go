// Package saga runs ordered multi-step write sequences with best-effort
// backward recovery. The create-invoice path is not a database transaction;
// each step is a separate round trip, so recovery is compensation, not
// rollback.
package saga

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// Step is one unit of a sequence. Compensate, when set, undoes Run's effect
// if a later step fails. OnFailure, when set, makes a Run failure non-fatal:
// the error is reported to the hook and the sequence continues.
type Step struct {
	Name       string
	Run        func(ctx context.Context) error
	Compensate func(ctx context.Context) error
	OnFailure  func(err error)
}

// Run executes steps in order. On a fatal step failure, compensations of
// previously completed steps run in reverse order. Compensation failures are
// logged and swallowed so they never mask the primary error.
func Run(ctx context.Context, log *zap.Logger, steps []Step) error {
	completed := make([]Step, 0, len(steps))

	for _, step := range steps {
		if step.Run == nil {
			continue
		}
		err := step.Run(ctx)
		if err == nil {
			completed = append(completed, step)
			continue
		}

		if step.OnFailure != nil {
			step.OnFailure(err)
			if log != nil {
				log.Warn("saga step failed, continuing",
					zap.String("step", step.Name),
					zap.Error(err),
				)
			}
			continue
		}

		compensate(ctx, log, completed)
		return fmt.Errorf("step %s: %w", step.Name, err)
	}

	return nil
}

func compensate(ctx context.Context, log *zap.Logger, completed []Step) {
	for i := len(completed) - 1; i >= 0; i-- {
		step := completed[i]
		if step.Compensate == nil {
			continue
		}
		if err := step.Compensate(ctx); err != nil && log != nil {
			log.Error("saga compensation failed",
				zap.String("step", step.Name),
				zap.Error(err),
			)
		}
	}
}
