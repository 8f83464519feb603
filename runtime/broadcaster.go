package runtime

import (
	"context"
	"log/slog"
	"qa-board/contract"
	"qa-board/domain"
	"qa-board/errors"
	"qa-board/observability"

	"github.com/goccy/go-json"
)

// Broadcaster turns domain events into wire frames and fans them out.
//
// Delivery to clients is best effort: a committed mutation is never rolled
// back because its notification failed. After the fan-out the typed event is
// offered to in-process sinks through a bounded queue and dropped if full.
type Broadcaster struct {
	log      *slog.Logger
	registry contract.IRegistry
	metrics  *observability.Metrics
	events   chan<- domain.Event
}

func NewBroadcaster(log *slog.Logger, registry contract.IRegistry,
	metrics *observability.Metrics, events chan<- domain.Event) *Broadcaster {
	return &Broadcaster{log: log, registry: registry, metrics: metrics, events: events}
}

// Announce serializes the event envelope and pushes it to every open channel.
// It fails only with a *errors.SerializationError, in which case nothing is sent.
func (b *Broadcaster) Announce(ctx context.Context, evt domain.Event) error {
	frame, err := Encode(evt)
	if err != nil {
		b.metrics.SerializationFailures.Inc()
		return err
	}

	b.registry.Broadcast(frame)
	b.metrics.EventsAnnounced.WithLabelValues(string(evt.Type())).Inc()

	if b.events == nil {
		return nil
	}
	select {
	case b.events <- evt:
	default:
		b.metrics.EventsDropped.Inc()
		b.log.DebugContext(ctx, "Sink queue full, event not forwarded", "type", evt.Type())
	}
	return nil
}

// Encode renders the JSON text frame for an event.
func Encode(evt domain.Event) ([]byte, error) {
	frame, err := json.Marshal(domain.NewEnvelope(evt))
	if err != nil {
		return nil, &errors.SerializationError{EventType: string(evt.Type()), Err: err}
	}
	return frame, nil
}
