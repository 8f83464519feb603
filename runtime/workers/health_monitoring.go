package workers

import (
	"context"
	"log/slog"
	"os"
	"qa-board/observability"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/shirou/gopsutil/process"
)

// HealthMonitoringWorker samples CPU and memory usage of the server process.
type HealthMonitoringWorker struct {
	log            *slog.Logger
	clock          clockwork.Clock
	metrics        *observability.Metrics
	metricInterval time.Duration
	pid            int32
}

func NewHealthMonitoringWorker(log *slog.Logger, clock clockwork.Clock,
	metrics *observability.Metrics, metricInterval time.Duration) *HealthMonitoringWorker {
	return &HealthMonitoringWorker{
		log:            log,
		clock:          clock,
		metrics:        metrics,
		metricInterval: metricInterval,
		pid:            int32(os.Getpid()),
	}
}

// Run returns an error when the process cannot be inspected so the
// supervisor retries later.
func (w *HealthMonitoringWorker) Run(ctx context.Context) error {
	p, err := process.NewProcess(w.pid)
	if err != nil {
		return err
	}

	ticker := w.clock.NewTicker(w.metricInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			w.log.Debug("Context done, stopping health sampling")
			return nil
		case <-ticker.Chan():
			w.sample(p)
		}
	}
}

func (w *HealthMonitoringWorker) sample(p *process.Process) {
	cpu, err := p.CPUPercent()
	if err != nil {
		w.log.Debug("Error while finding process cpu usage", "err", err)
	} else {
		w.metrics.ProcessCPUPercent.Set(cpu)
	}

	ram, err := p.MemoryPercent()
	if err != nil {
		w.log.Debug("Error while finding process ram usage", "err", err)
		return
	}
	w.metrics.ProcessMemoryPercent.Set(float64(ram))
}
