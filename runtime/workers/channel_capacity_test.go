package workers

import (
	"context"
	"log/slog"
	"qa-board/domain"
	"qa-board/observability"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/mama165/sdk-go/logs"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestChannelCapacityWorker_Sample(t *testing.T) {
	req := require.New(t)
	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	metrics := observability.NewMetrics(prometheus.NewRegistry())
	events := make(chan domain.Event, 4)
	events <- domain.NewQuestion{}
	events <- domain.NewQuestion{}
	events <- domain.NewQuestion{}

	// Given the event queue and something that is not a channel
	worker := NewChannelCapacityWorker(log, clockwork.NewFakeClock(), metrics, []NamedChannel{
		{Name: "events", Channel: events},
		{Name: "bogus", Channel: 42},
	}, time.Second, 50)

	// When a sample is taken
	worker.Sample()

	// Then the queue gauges reflect the channel, and the bogus entry is skipped
	req.Equal(float64(3), testutil.ToFloat64(metrics.QueueLength.WithLabelValues("events")))
	req.Equal(float64(4), testutil.ToFloat64(metrics.QueueCapacity.WithLabelValues("events")))
	req.Equal(1, testutil.CollectAndCount(metrics.QueueLength))
}

func TestChannelCapacityWorker_Run_Samples_On_Tick(t *testing.T) {
	req := require.New(t)
	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	metrics := observability.NewMetrics(prometheus.NewRegistry())
	clock := clockwork.NewFakeClock()
	events := make(chan domain.Event, 2)
	events <- domain.NewAnswer{}

	worker := NewChannelCapacityWorker(log, clock, metrics,
		[]NamedChannel{{Name: "events", Channel: events}}, time.Second, 10)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- worker.Run(ctx) }()

	// When the interval elapses
	req.NoError(clock.BlockUntilContext(t.Context(), 1))
	clock.Advance(time.Second)

	// Then the gauge is populated
	req.Eventually(func() bool {
		return testutil.ToFloat64(metrics.QueueLength.WithLabelValues("events")) == 1
	}, time.Second, 5*time.Millisecond)

	// And cancelling stops the worker cleanly
	cancel()
	req.NoError(<-done)
}
