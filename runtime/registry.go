package runtime

import (
	"log/slog"
	"qa-board/contract"
	"qa-board/observability"
	"sync"

	"github.com/google/uuid"
	"github.com/samber/lo"
)

// Registry tracks the push channels currently open.
// Channels are keyed by identity so a second registration of the same
// channel is ignored and it never receives a broadcast twice.
type Registry struct {
	mu       sync.RWMutex
	channels map[uuid.UUID]contract.Channel
	log      *slog.Logger
	metrics  *observability.Metrics
}

func NewRegistry(log *slog.Logger, metrics *observability.Metrics) *Registry {
	return &Registry{
		channels: make(map[uuid.UUID]contract.Channel),
		log:      log,
		metrics:  metrics,
	}
}

// Register adds an accepted channel. It returns false if a channel with the
// same identity is already tracked.
func (r *Registry) Register(ch contract.Channel) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.channels[ch.ID()]; exists {
		return false
	}
	r.channels[ch.ID()] = ch
	r.metrics.ActiveChannels.Set(float64(len(r.channels)))
	return true
}

// Unregister removes the channel if present. Both the read loop and a failed
// send may race to remove the same channel, so absence is not an error.
func (r *Registry) Unregister(ch contract.Channel) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.channels[ch.ID()]; !exists {
		return false
	}
	delete(r.channels, ch.ID())
	r.metrics.ActiveChannels.Set(float64(len(r.channels)))
	return true
}

// Broadcast hands the frame to every channel registered when the call starts.
// A channel that refuses the frame is unregistered and closed; the others
// still get their copy.
func (r *Registry) Broadcast(frame []byte) {
	for _, ch := range r.snapshot() {
		if err := ch.Send(frame); err != nil {
			r.metrics.ChannelsDropped.Inc()
			r.log.Debug("Dropping channel after failed delivery", "channel_id", ch.ID(), "error", err)
			if r.Unregister(ch) {
				_ = ch.Close()
			}
			continue
		}
		r.metrics.FramesDelivered.Inc()
	}
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.channels)
}

// CloseAll empties the registry and closes every channel it held.
func (r *Registry) CloseAll() {
	r.mu.Lock()
	channels := lo.Values(r.channels)
	r.channels = make(map[uuid.UUID]contract.Channel)
	r.metrics.ActiveChannels.Set(0)
	r.mu.Unlock()

	for _, ch := range channels {
		_ = ch.Close()
	}
	r.log.Info("Closed all channels", "count", len(channels))
}

func (r *Registry) snapshot() []contract.Channel {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return lo.Values(r.channels)
}
