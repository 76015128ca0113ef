// Package relay keeps a WebSocket connection to a local companion tool and
// answers its annotation requests.
package relay

import (
	"context"
	"encoding/json"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/cockroachdb/errors"
	"github.com/gorilla/websocket"

	"github.com/MalithGihan/annotation-extractor/internal/extract"
	"github.com/MalithGihan/annotation-extractor/pkg/types"
)

const (
	DefaultURL               = "ws://localhost:3690"
	DefaultPingInterval      = 30 * time.Second
	DefaultReconnectInterval = 5 * time.Second

	writeWait = 10 * time.Second
)

// Message types exchanged with the companion tool.
const (
	TypePing          = "ping"
	TypePong          = "pong"
	TypeGetAnnotation = "getAnnotation"
	TypeAnnotation    = "annotation"
	TypeError         = "error"
)

var ErrNotConnected = errors.New("relay is not connected")

type Message struct {
	Type  string          `json:"type"`
	Data  json.RawMessage `json:"data,omitempty"`
	Error string          `json:"error,omitempty"`
}

// Extractor produces the tree for a getAnnotation request.
type Extractor interface {
	Run(ctx context.Context, req extract.Request) (types.AnnotationNode, error)
}

type Options struct {
	URL               string
	PingInterval      time.Duration
	ReconnectInterval time.Duration
	Logger            *log.Logger
}

type Client struct {
	opts      Options
	ex        Extractor
	dialer    *websocket.Dialer
	connected atomic.Bool

	mu   sync.Mutex // guards conn and serializes writes
	conn *websocket.Conn
}

func New(opts Options, ex Extractor) *Client {
	if opts.URL == "" {
		opts.URL = DefaultURL
	}
	if opts.PingInterval <= 0 {
		opts.PingInterval = DefaultPingInterval
	}
	if opts.ReconnectInterval <= 0 {
		opts.ReconnectInterval = DefaultReconnectInterval
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	return &Client{opts: opts, ex: ex, dialer: websocket.DefaultDialer}
}

// Connected reports whether the relay currently holds an open connection.
func (c *Client) Connected() bool { return c.connected.Load() }

// Run dials the companion tool and serves it until ctx is done, redialing
// every ReconnectInterval after a failed dial or a dropped connection.
func (c *Client) Run(ctx context.Context) error {
	for {
		if err := c.session(ctx); err != nil && ctx.Err() == nil {
			c.opts.Logger.Warn("relay connection lost", "url", c.opts.URL, "error", err)
		}
		select {
		case <-ctx.Done():
			return nil
		case <-time.After(c.opts.ReconnectInterval):
		}
	}
}

func (c *Client) session(ctx context.Context) error {
	conn, _, err := c.dialer.DialContext(ctx, c.opts.URL, nil)
	if err != nil {
		return errors.Wrap(err, "dial")
	}
	c.mu.Lock()
	c.conn = conn
	c.mu.Unlock()
	c.connected.Store(true)
	c.opts.Logger.Info("relay connected", "url", c.opts.URL)

	sessCtx, cancel := context.WithCancel(ctx)
	defer func() {
		cancel()
		c.connected.Store(false)
		c.mu.Lock()
		c.conn = nil
		c.mu.Unlock()
		conn.Close()
		c.opts.Logger.Info("relay disconnected", "url", c.opts.URL)
	}()

	go func() {
		// unblock ReadMessage on shutdown
		<-sessCtx.Done()
		conn.Close()
	}()
	go c.keepAlive(sessCtx)

	for {
		_, payload, err := conn.ReadMessage()
		if err != nil {
			return errors.Wrap(err, "read")
		}
		var msg Message
		if err := json.Unmarshal(payload, &msg); err != nil {
			// a bad frame only costs that frame
			c.opts.Logger.Warn("relay message dropped", "error", err)
			continue
		}
		switch msg.Type {
		case TypeGetAnnotation:
			go c.handleGetAnnotation(sessCtx, msg)
		case TypePong:
			c.opts.Logger.Debug("relay pong")
		default:
			c.opts.Logger.Debug("relay message ignored", "type", msg.Type)
		}
	}
}

func (c *Client) keepAlive(ctx context.Context) {
	t := time.NewTicker(c.opts.PingInterval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			if err := c.Send(Message{Type: TypePing}); err != nil {
				c.opts.Logger.Warn("relay ping failed", "error", err)
				continue
			}
			c.opts.Logger.Debug("relay ping sent")
		}
	}
}

func (c *Client) handleGetAnnotation(ctx context.Context, msg Message) {
	var req extract.Request
	if len(msg.Data) > 0 {
		if err := json.Unmarshal(msg.Data, &req); err != nil {
			c.sendError(errors.Wrap(err, "decode getAnnotation data"))
			return
		}
	}
	c.opts.Logger.Info("annotation requested", "design", req.DesignID, "screen", req.ScreenID, "selector", req.Selector)

	tree, err := c.ex.Run(ctx, req)
	if err != nil {
		c.sendError(err)
		return
	}
	b, err := json.Marshal(tree)
	if err != nil {
		c.sendError(err)
		return
	}
	if err := c.Send(Message{Type: TypeAnnotation, Data: b}); err != nil {
		c.opts.Logger.Error("annotation not delivered", "error", err)
	}
}

func (c *Client) sendError(cause error) {
	c.opts.Logger.Error("annotation request failed", "error", cause)
	if err := c.Send(Message{Type: TypeError, Error: cause.Error()}); err != nil {
		c.opts.Logger.Error("error not delivered", "error", err)
	}
}

// Send writes one message. It fails with ErrNotConnected while the relay
// is between connections; nothing is queued.
func (c *Client) Send(msg Message) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.conn == nil {
		return ErrNotConnected
	}
	_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return c.conn.WriteJSON(msg)
}
