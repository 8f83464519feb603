package workers

import (
	"context"
	"log/slog"
	"qa-board/observability"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/mama165/sdk-go/logs"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestHealthMonitoringWorker_Samples_Own_Process(t *testing.T) {
	req := require.New(t)
	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	metrics := observability.NewMetrics(prometheus.NewRegistry())
	clock := clockwork.NewFakeClock()

	worker := NewHealthMonitoringWorker(log, clock, metrics, time.Second)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- worker.Run(ctx) }()

	// When the sampling interval elapses
	req.NoError(clock.BlockUntilContext(t.Context(), 1))
	clock.Advance(time.Second)

	// Then the memory usage of the test binary is reported
	req.Eventually(func() bool {
		return testutil.ToFloat64(metrics.ProcessMemoryPercent) > 0
	}, 2*time.Second, 10*time.Millisecond)

	cancel()
	req.NoError(<-done)
}
