package observability

import "github.com/prometheus/client_golang/prometheus"

const namespace = "qaboard"

// Metrics holds the Prometheus collectors of the broadcast core.
type Metrics struct {
	ActiveChannels        prometheus.Gauge
	FramesDelivered       prometheus.Counter
	ChannelsDropped       prometheus.Counter
	EventsAnnounced       *prometheus.CounterVec
	SerializationFailures prometheus.Counter
	EventsDropped         prometheus.Counter

	QueueLength          *prometheus.GaugeVec
	QueueCapacity        *prometheus.GaugeVec
	ProcessCPUPercent    prometheus.Gauge
	ProcessMemoryPercent prometheus.Gauge
}

// NewMetrics creates and registers the collectors on the given registry.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		ActiveChannels: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "websocket",
			Name:      "active_channels",
			Help:      "Number of registered push channels.",
		}),
		FramesDelivered: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "websocket",
			Name:      "frames_delivered_total",
			Help:      "Frames accepted by a channel outbound queue.",
		}),
		ChannelsDropped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "websocket",
			Name:      "channels_dropped_total",
			Help:      "Channels removed after a failed delivery.",
		}),
		EventsAnnounced: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "events",
			Name:      "announced_total",
			Help:      "Events fanned out, by type.",
		}, []string{"type"}),
		SerializationFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "events",
			Name:      "serialization_failures_total",
			Help:      "Events rejected because their payload could not be encoded.",
		}),
		EventsDropped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "events",
			Name:      "sink_queue_dropped_total",
			Help:      "Events not handed to in-process sinks because the queue was full.",
		}),
		QueueLength: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "runtime",
			Name:      "queue_length",
			Help:      "Items waiting in an internal queue.",
		}, []string{"queue"}),
		QueueCapacity: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "runtime",
			Name:      "queue_capacity",
			Help:      "Buffer size of an internal queue.",
		}, []string{"queue"}),
		ProcessCPUPercent: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "process",
			Name:      "cpu_percent",
			Help:      "CPU usage of the server process, in percent of one core.",
		}),
		ProcessMemoryPercent: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "process",
			Name:      "memory_percent",
			Help:      "Resident memory of the server process, in percent of host memory.",
		}),
	}

	reg.MustRegister(
		m.ActiveChannels,
		m.FramesDelivered,
		m.ChannelsDropped,
		m.EventsAnnounced,
		m.SerializationFailures,
		m.EventsDropped,
		m.QueueLength,
		m.QueueCapacity,
		m.ProcessCPUPercent,
		m.ProcessMemoryPercent,
	)
	return m
}
