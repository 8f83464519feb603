package workers

import (
	"context"
	"log/slog"
	"qa-board/observability"
	"reflect"
	"time"

	"github.com/jonboulle/clockwork"
)

type NamedChannel struct {
	Name    string
	Channel any
}

// ChannelCapacityWorker periodically samples the length and capacity of
// internal queues. Reading len and cap never blocks the producers.
type ChannelCapacityWorker struct {
	log                  *slog.Logger
	clock                clockwork.Clock
	metrics              *observability.Metrics
	channels             []NamedChannel
	metricInterval       time.Duration
	lowCapacityThreshold int
}

// NewChannelCapacityWorker warns when the free room of a queue drops under
// lowCapacityThreshold percent.
func NewChannelCapacityWorker(log *slog.Logger, clock clockwork.Clock,
	metrics *observability.Metrics, channels []NamedChannel,
	metricInterval time.Duration, lowCapacityThreshold int) *ChannelCapacityWorker {
	return &ChannelCapacityWorker{
		log:                  log,
		clock:                clock,
		metrics:              metrics,
		channels:             channels,
		metricInterval:       metricInterval,
		lowCapacityThreshold: lowCapacityThreshold,
	}
}

func (w *ChannelCapacityWorker) Run(ctx context.Context) error {
	ticker := w.clock.NewTicker(w.metricInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			w.log.Debug("Context done, stopping queue sampling")
			return nil
		case <-ticker.Chan():
			w.Sample()
		}
	}
}

func (w *ChannelCapacityWorker) Sample() {
	for _, nc := range w.channels {
		v := reflect.ValueOf(nc.Channel)
		if v.Kind() != reflect.Chan {
			w.log.Error("Provided object is not a channel", "name", nc.Name)
			continue
		}
		capacity, length := v.Cap(), v.Len()
		w.metrics.QueueCapacity.WithLabelValues(nc.Name).Set(float64(capacity))
		w.metrics.QueueLength.WithLabelValues(nc.Name).Set(float64(length))

		if capacity == 0 {
			continue
		}
		free := (capacity - length) * 100 / capacity
		if free < w.lowCapacityThreshold {
			w.log.Warn("Queue close to saturation", "name", nc.Name, "length", length, "capacity", capacity)
		}
	}
}
