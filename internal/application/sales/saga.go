package sales

import (
	"context"

	"go.uber.org/zap"
)

// sagaStep is one unit of a multi-step operation whose effects may need to
// be undone. Compensate may be nil for steps with nothing to undo.
type sagaStep struct {
	name       string
	run        func(ctx context.Context) error
	compensate func(ctx context.Context) error
}

// runSaga executes the steps in order. When a step fails, the compensations
// of the already completed steps run in reverse order and the step's error
// is returned. Compensation failures are logged but do not mask the
// original error.
func runSaga(ctx context.Context, logger *zap.Logger, steps []sagaStep) error {
	for i, step := range steps {
		if err := step.run(ctx); err != nil {
			for j := i - 1; j >= 0; j-- {
				if steps[j].compensate == nil {
					continue
				}
				if cerr := steps[j].compensate(ctx); cerr != nil {
					logger.Error("saga compensation failed",
						zap.String("step", steps[j].name),
						zap.Error(cerr),
					)
				}
			}
			return err
		}
	}
	return nil
}
