package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
)

// Runner executes phases strictly in declaration order, failing fast.
// Later phases assume the resources of earlier phases exist, so running
// past a failure is never safe.
type Runner struct {
	Log logrus.FieldLogger
}

// Run executes the phases left to right. The first failing phase aborts
// the run and is named in the returned error. Skipped phases log a
// warning and do not affect the result.
func (r *Runner) Run(ctx context.Context, phases []Phase) error {
	for _, phase := range phases {
		log := r.Log.WithField("phase", phase.Name)
		log.Info("phase starting")

		start := time.Now()
		err := phase.Run(ctx)
		elapsed := time.Since(start).Round(time.Millisecond)

		switch {
		case errors.Is(err, ErrSkip):
			log.Warn(err.Error())
		case err != nil:
			log.WithField("duration", elapsed.String()).Error("phase failed")
			return fmt.Errorf("phase %s failed: %w", phase.Name, err)
		default:
			log.WithField("duration", elapsed.String()).Info("phase complete")
		}
	}
	return nil
}
