package observability

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestNewMetrics_RegistersCollectors(t *testing.T) {
	req := require.New(t)
	reg := prometheus.NewRegistry()

	m := NewMetrics(reg)
	m.ActiveChannels.Set(3)
	m.EventsAnnounced.WithLabelValues("NEW_QUESTION").Inc()

	req.Equal(float64(3), testutil.ToFloat64(m.ActiveChannels))
	req.Equal(float64(1), testutil.ToFloat64(m.EventsAnnounced.WithLabelValues("NEW_QUESTION")))

	families, err := reg.Gather()
	req.NoError(err)
	names := make([]string, 0, len(families))
	for _, f := range families {
		names = append(names, f.GetName())
	}
	req.Contains(names, "qaboard_websocket_active_channels")
	req.Contains(names, "qaboard_events_announced_total")
}

func TestNewMetrics_DoubleRegistrationPanics(t *testing.T) {
	req := require.New(t)
	reg := prometheus.NewRegistry()
	NewMetrics(reg)
	req.Panics(func() { NewMetrics(reg) })
}
