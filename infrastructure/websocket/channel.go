package websocket

import (
	"log/slog"
	"qa-board/errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/jonboulle/clockwork"
)

type State int32

const (
	StateConnecting State = iota
	StateOpen
	StateClosed
)

func (s State) String() string {
	switch s {
	case StateConnecting:
		return "connecting"
	case StateOpen:
		return "open"
	case StateClosed:
		return "closed"
	}
	return "unknown"
}

type Options struct {
	BufferSize   int
	WriteTimeout time.Duration
	PingInterval time.Duration
	PongTimeout  time.Duration
	ReadLimit    int64
}

// Channel is one upgraded WebSocket connection.
//
// Frames are queued on a bounded FIFO drained by a single writer goroutine,
// so Send never blocks. The read loop only watches for disconnects.
type Channel struct {
	id        uuid.UUID
	conn      *websocket.Conn
	clock     clockwork.Clock
	log       *slog.Logger
	opts      Options
	send      chan []byte
	done      chan struct{}
	state     atomic.Int32
	closeOnce sync.Once
	onClose   func(ch *Channel)
	wg        sync.WaitGroup
}

func NewChannel(conn *websocket.Conn, clock clockwork.Clock, log *slog.Logger, opts Options) *Channel {
	id := uuid.New()
	return &Channel{
		id:    id,
		conn:  conn,
		clock: clock,
		log:   log.With("channel_id", id),
		opts:  opts,
		send:  make(chan []byte, opts.BufferSize),
		done:  make(chan struct{}),
	}
}

func (c *Channel) ID() uuid.UUID { return c.id }

func (c *Channel) State() State { return State(c.state.Load()) }

// Open moves the channel out of Connecting. onClose runs exactly once, when
// the channel reaches Closed.
func (c *Channel) Open(onClose func(ch *Channel)) {
	c.onClose = onClose
	c.state.CompareAndSwap(int32(StateConnecting), int32(StateOpen))
}

func (c *Channel) Send(frame []byte) error {
	if c.State() != StateOpen {
		return errors.ErrChannelClosed
	}
	select {
	case <-c.done:
		return errors.ErrChannelClosed
	default:
	}
	select {
	case c.send <- frame:
		return nil
	default:
		return errors.ErrChannelSaturated
	}
}

// Close is idempotent and safe from any goroutine, the writer included.
func (c *Channel) Close() error {
	var err error
	c.closeOnce.Do(func() {
		c.state.Store(int32(StateClosed))
		close(c.done)

		deadline := c.clock.Now().Add(c.opts.WriteTimeout)
		msg := websocket.FormatCloseMessage(websocket.CloseGoingAway, "")
		_ = c.conn.WriteControl(websocket.CloseMessage, msg, deadline)
		err = c.conn.Close()

		if c.onClose != nil {
			c.onClose(c)
		}
		c.log.Debug("Channel closed")
	})
	return err
}

// Serve starts the writer and blocks in the read loop until the connection
// ends. The channel is closed on return.
func (c *Channel) Serve() {
	c.wg.Add(1)
	go c.writeLoop()

	c.readLoop()
	_ = c.Close()
	c.wg.Wait()
}

func (c *Channel) readLoop() {
	if c.opts.ReadLimit > 0 {
		c.conn.SetReadLimit(c.opts.ReadLimit)
	}
	c.extendReadDeadline()
	c.conn.SetPongHandler(func(string) error {
		c.extendReadDeadline()
		return nil
	})

	for {
		// Inbound frames carry no meaning, they only prove liveness.
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.log.Debug("Read failed", "error", err)
			}
			return
		}
		c.extendReadDeadline()
	}
}

func (c *Channel) writeLoop() {
	defer c.wg.Done()
	ticker := c.clock.NewTicker(c.opts.PingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-c.done:
			return
		case frame := <-c.send:
			_ = c.conn.SetWriteDeadline(c.clock.Now().Add(c.opts.WriteTimeout))
			if err := c.conn.WriteMessage(websocket.TextMessage, frame); err != nil {
				c.log.Debug("Write failed", "error", err)
				_ = c.Close()
				return
			}
		case <-ticker.Chan():
			deadline := c.clock.Now().Add(c.opts.WriteTimeout)
			if err := c.conn.WriteControl(websocket.PingMessage, nil, deadline); err != nil {
				c.log.Debug("Ping failed", "error", err)
				_ = c.Close()
				return
			}
		}
	}
}

func (c *Channel) extendReadDeadline() {
	_ = c.conn.SetReadDeadline(c.clock.Now().Add(c.opts.PongTimeout))
}
