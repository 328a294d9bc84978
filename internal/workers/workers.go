package workers

import (
	"context"
	"sync"
	"time"

	"github.com/MKhiriev/go-fin-tracker/internal/config"
	"github.com/MKhiriev/go-fin-tracker/internal/logger"
	"github.com/MKhiriev/go-fin-tracker/internal/service"
)

type Workers struct {
	workers []Worker
}

// NewWorkers creates the background workers enabled by cfg. A worker whose
// interval is not positive is skipped, and the health prober is only
// created when prober is not nil.
func NewWorkers(services *service.Services, prober HealthProber, cfg config.Workers, logger *logger.Logger) *Workers {
	w := &Workers{}

	if cfg.TokenSweepInterval > 0 {
		w.workers = append(w.workers, newTokenSweeper(services.TokenService, cfg.TokenSweepInterval, logger))
	}
	if prober != nil && cfg.HealthProbeInterval > 0 {
		w.workers = append(w.workers, newHealthProbe(prober, cfg.HealthProbeInterval, logger))
	}

	logger.Info().Int("count", len(w.workers)).Msg("workers created")
	return w
}

// Run starts every worker in its own goroutine and waits until all of them
// have returned.
func (w *Workers) Run(ctx context.Context) {
	var wg sync.WaitGroup
	for _, worker := range w.workers {
		wg.Go(func() { worker.Run(ctx) })
	}
	wg.Wait()
}

// runEvery calls fn once right away and then on every tick. fn is never
// called once ctx is done.
func runEvery(ctx context.Context, interval time.Duration, fn func(ctx context.Context)) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for ctx.Err() == nil {
		fn(ctx)

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}
