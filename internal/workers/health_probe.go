package workers

import (
	"context"
	"time"

	"github.com/MKhiriev/go-fin-tracker/internal/logger"
)

type healthProbe struct {
	prober   HealthProber
	interval time.Duration
	logger   *logger.Logger

	// serving remembers the last result so that only changes are logged.
	serving *bool
}

func newHealthProbe(prober HealthProber, interval time.Duration, logger *logger.Logger) *healthProbe {
	return &healthProbe{prober: prober, interval: interval, logger: logger}
}

func (p *healthProbe) Run(ctx context.Context) {
	runEvery(ctx, p.interval, p.probe)
}

func (p *healthProbe) probe(ctx context.Context) {
	serving := p.prober.ProbeHealth(ctx)
	if p.serving != nil && *p.serving == serving {
		return
	}
	p.serving = &serving

	if serving {
		p.logger.Info().Msg("health probe: serving")
	} else {
		p.logger.Warn().Str("func", "healthProbe.probe").Msg("health probe: not serving")
	}
}
