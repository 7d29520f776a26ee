package telemetry

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Reporter is the process-wide telemetry handle. The backend is resolved
// exactly once at construction; a changed endpoint needs a new Reporter,
// never a silent hot-reload. Submissions run fire-and-forget on a bounded
// worker group and their results are logged, not returned.
type Reporter struct {
	submitter Submitter
	logger    *zap.Logger
	group     *errgroup.Group
}

func NewReporter(cfg Config, logger *zap.Logger) *Reporter {
	return newReporter(Resolve(cfg, logger), logger, cfg.Workers)
}

func newReporter(submitter Submitter, logger *zap.Logger, workers int) *Reporter {
	if workers <= 0 {
		workers = DefaultWorkers
	}
	group := &errgroup.Group{}
	group.SetLimit(workers)
	return &Reporter{submitter: submitter, logger: logger, group: group}
}

// Enabled reports whether resolution produced a backend.
func (r *Reporter) Enabled() bool {
	return r.submitter != nil
}

// Report dispatches one submission onto the worker group and returns. When
// all workers are busy the call blocks until one frees up rather than
// spawning unbounded goroutines. The submission result is intentionally
// discarded after logging — a failed event never interrupts the sync that
// produced it.
func (r *Reporter) Report(ctx context.Context, e Event) {
	if r.submitter == nil {
		return
	}
	r.group.Go(func() error {
		if !r.submitter.Submit(ctx, e) {
			r.logger.Warn("sync event submission failed",
				zap.String("syncType", e.SyncType))
		}
		return nil
	})
}

// Close waits for in-flight submissions to finish.
func (r *Reporter) Close() {
	_ = r.group.Wait()
}
