package syncd

import (
	"context"
	"time"

	"github.com/opencompute/go-sairedis/pkg/syncd/vendor"
)

// RunDiagShell starts the detached vendor-diag thread the --diag CLI flag
// enables (spec section 6): it periodically issues one vendor-specific
// switch attribute query, logging a failure and counting a success in the
// dispatcher's DiagRuns metric, on its own goroutine
// independent of request dispatch. Modeled on
// internal/watchdog.targetRunner.run's ticker-select shape.
func RunDiagShell(ctx context.Context, sdk vendor.SDK, interval time.Duration, d *Dispatcher) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	diagOnce(ctx, sdk, d)

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			diagOnce(ctx, sdk, d)
		}
	}
}

func diagOnce(ctx context.Context, sdk vendor.SDK, d *Dispatcher) {
	if err := sdk.Diag(ctx); err != nil {
		if d.logger != nil {
			d.logger.Warn("vendor diag query failed", "error", err)
		}
		return
	}
	if d.metrics != nil {
		d.metrics.DiagRuns.Inc()
	}
}
