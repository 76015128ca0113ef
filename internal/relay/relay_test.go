package relay

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MalithGihan/annotation-extractor/internal/extract"
	"github.com/MalithGihan/annotation-extractor/pkg/types"
)

type fakeExtractor struct{}

func (fakeExtractor) Run(_ context.Context, req extract.Request) (types.AnnotationNode, error) {
	if req.ObjectID != "1" {
		return types.AnnotationNode{}, extract.ErrNotFound
	}
	return types.AnnotationNode{Name: "root", ObjectID: "1", ParentID: "0"}, nil
}

var upgrader = websocket.Upgrader{CheckOrigin: func(*http.Request) bool { return true }}

// companion fakes the tool on the other side of the relay. Every accepted
// connection is handed to serve.
func companion(t *testing.T, serve func(ws *websocket.Conn)) (string, *atomic.Int32) {
	t.Helper()
	var conns atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ws, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer ws.Close()
		conns.Add(1)
		serve(ws)
	}))
	t.Cleanup(srv.Close)
	return "ws" + strings.TrimPrefix(srv.URL, "http"), &conns
}

func quietLogger() *log.Logger { return log.New(io.Discard) }

func startClient(t *testing.T, opts Options) *Client {
	t.Helper()
	opts.Logger = quietLogger()
	c := New(opts, fakeExtractor{})
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = c.Run(ctx)
	}()
	t.Cleanup(func() {
		cancel()
		select {
		case <-done:
		case <-time.After(5 * time.Second):
			t.Error("relay did not stop")
		}
	})
	return c
}

func readUntil(ws *websocket.Conn, typ string) (Message, error) {
	_ = ws.SetReadDeadline(time.Now().Add(5 * time.Second))
	for {
		var m Message
		if err := ws.ReadJSON(&m); err != nil {
			return Message{}, err
		}
		if m.Type == typ {
			return m, nil
		}
	}
}

func TestClient_GetAnnotation(t *testing.T) {
	results := make(chan Message, 2)
	url, _ := companion(t, func(ws *websocket.Conn) {
		for _, objectID := range []string{"1", "2"} {
			req, _ := json.Marshal(map[string]string{"designId": "7", "screenId": "s1", "objectId": objectID})
			if !assert.NoError(t, ws.WriteJSON(Message{Type: TypeGetAnnotation, Data: req})) {
				return
			}
			want := TypeAnnotation
			if objectID != "1" {
				want = TypeError
			}
			m, err := readUntil(ws, want)
			if !assert.NoError(t, err) {
				return
			}
			results <- m
		}
	})
	startClient(t, Options{URL: url, PingInterval: time.Hour, ReconnectInterval: time.Hour})

	got := receive(t, results)
	var tree types.AnnotationNode
	require.NoError(t, json.Unmarshal(got.Data, &tree))
	assert.Equal(t, "root", tree.Name)

	failed := receive(t, results)
	assert.Contains(t, failed.Error, "layer not found")
}

func TestClient_MalformedFrameKeepsSession(t *testing.T) {
	results := make(chan Message, 1)
	url, conns := companion(t, func(ws *websocket.Conn) {
		if !assert.NoError(t, ws.WriteMessage(websocket.TextMessage, []byte(`{"type":`))) {
			return
		}
		req, _ := json.Marshal(map[string]string{"designId": "7", "screenId": "s1", "objectId": "1"})
		if !assert.NoError(t, ws.WriteJSON(Message{Type: TypeGetAnnotation, Data: req})) {
			return
		}
		m, err := readUntil(ws, TypeAnnotation)
		if !assert.NoError(t, err) {
			return
		}
		results <- m
	})
	startClient(t, Options{URL: url, PingInterval: time.Hour, ReconnectInterval: time.Hour})

	got := receive(t, results)
	assert.Equal(t, TypeAnnotation, got.Type)
	assert.Equal(t, int32(1), conns.Load())
}

func receive(t *testing.T, ch <-chan Message) Message {
	t.Helper()
	select {
	case m := <-ch:
		return m
	case <-time.After(5 * time.Second):
		t.Fatal("no reply from relay")
		return Message{}
	}
}

func TestClient_Ping(t *testing.T) {
	pinged := make(chan struct{})
	url, _ := companion(t, func(ws *websocket.Conn) {
		if _, err := readUntil(ws, TypePing); err != nil {
			return
		}
		close(pinged)
		_ = ws.WriteJSON(Message{Type: TypePong})
		// hold the connection until the client goes away
		var m Message
		for ws.ReadJSON(&m) == nil {
		}
	})
	c := startClient(t, Options{URL: url, PingInterval: 20 * time.Millisecond, ReconnectInterval: time.Hour})

	select {
	case <-pinged:
	case <-time.After(5 * time.Second):
		t.Fatal("no ping received")
	}
	assert.True(t, c.Connected())
}

func TestClient_Reconnect(t *testing.T) {
	url, conns := companion(t, func(ws *websocket.Conn) {
		// drop every connection straight away
	})
	startClient(t, Options{URL: url, PingInterval: time.Hour, ReconnectInterval: 10 * time.Millisecond})

	assert.Eventually(t, func() bool { return conns.Load() >= 3 }, 5*time.Second, 10*time.Millisecond)
}

func TestClient_SendWhileDisconnected(t *testing.T) {
	c := New(Options{URL: "ws://127.0.0.1:1", Logger: quietLogger()}, fakeExtractor{})
	assert.False(t, c.Connected())
	assert.ErrorIs(t, c.Send(Message{Type: TypePing}), ErrNotConnected)
}
