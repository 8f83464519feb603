package workers

import (
	"context"
	"log/slog"
	"qa-board/contract"
	"qa-board/domain"
	"time"
)

// EventFanout hands every announced event to the in-process sinks.
//
// It is best effort: a sink error or timeout is logged and the next sink
// still runs. Events are processed one at a time so each sink sees them in
// announcement order.
type EventFanout struct {
	log         *slog.Logger
	events      <-chan domain.Event
	sinks       []contract.EventSink
	sinkTimeout time.Duration
}

func NewEventFanout(log *slog.Logger, events <-chan domain.Event, sinkTimeout time.Duration) *EventFanout {
	return &EventFanout{log: log, events: events, sinkTimeout: sinkTimeout}
}

func (w *EventFanout) Add(sinks ...contract.EventSink) *EventFanout {
	w.sinks = append(w.sinks, sinks...)
	return w
}

func (w *EventFanout) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			w.log.Debug("Context done, stopping event fanout")
			return nil
		case evt, ok := <-w.events:
			if !ok {
				w.log.Debug("Event channel closed")
				return nil
			}
			w.Fanout(ctx, evt)
		}
	}
}

// Fanout gives each sink its own deadline.
func (w *EventFanout) Fanout(ctx context.Context, evt domain.Event) {
	for _, sink := range w.sinks {
		sinkCtx, cancel := context.WithTimeout(ctx, w.sinkTimeout)
		if err := sink.Consume(sinkCtx, evt); err != nil {
			w.log.Warn("Sink failed to consume event", "type", evt.Type(), "error", err)
		}
		cancel()
	}
}
