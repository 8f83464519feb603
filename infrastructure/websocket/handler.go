package websocket

import (
	"log/slog"
	"net/http"
	"qa-board/contract"

	"github.com/gorilla/websocket"
	"github.com/jonboulle/clockwork"
)

// Handler upgrades question-board subscribers and keeps them registered for
// as long as the connection lives. Access is public: every broadcast payload
// is also readable through GET /questions.
type Handler struct {
	upgrader websocket.Upgrader
	registry contract.IRegistry
	clock    clockwork.Clock
	log      *slog.Logger
	opts     Options
}

func NewHandler(registry contract.IRegistry, clock clockwork.Clock, log *slog.Logger, opts Options, allowedOrigins []string) *Handler {
	return &Handler{
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     NewCheckOrigin(allowedOrigins),
		},
		registry: registry,
		clock:    clock,
		log:      log,
		opts:     opts,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// the upgrader already answered the client
		h.log.Debug("WebSocket upgrade refused", "error", err, "origin", r.Header.Get("Origin"))
		return
	}

	ch := NewChannel(conn, h.clock, h.log, h.opts)
	ch.Open(func(closed *Channel) { h.registry.Unregister(closed) })
	if !h.registry.Register(ch) {
		_ = ch.Close()
		return
	}
	// The peer may have gone between Open and Register: onClose already ran.
	if ch.State() == StateClosed {
		h.registry.Unregister(ch)
		return
	}
	h.log.Debug("Channel registered", "channel_id", ch.ID(), "channels", h.registry.Len())

	ch.Serve()
}
