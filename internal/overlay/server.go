// Package overlay serves live hand snapshots to external displays (a
// browser source in a stream overlay, a second screen) over websockets.
// Every committed transition publishes the full HandRecord as JSON; a
// freshly connected client immediately receives the latest snapshot.
package overlay

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"
	"golang.org/x/sync/errgroup"

	"github.com/quietfold/railbird/internal/record"
)

const (
	writeWait  = 5 * time.Second
	sendBuffer = 8
)

// Server broadcasts snapshots to any number of websocket clients. Slow
// clients are disconnected rather than allowed to stall the publisher.
type Server struct {
	logger   *log.Logger
	addr     string
	upgrader websocket.Upgrader

	mu      sync.Mutex
	clients map[*client]struct{}
	latest  []byte
}

type client struct {
	conn *websocket.Conn
	send chan []byte
	once sync.Once
}

func (c *client) close() {
	c.once.Do(func() {
		close(c.send)
	})
}

// NewServer creates a broadcaster listening on addr once Run is called.
func NewServer(addr string, logger *log.Logger) *Server {
	return &Server{
		logger: logger.WithPrefix("overlay"),
		addr:   addr,
		upgrader: websocket.Upgrader{
			// The overlay is a local, single-user surface.
			CheckOrigin: func(*http.Request) bool { return true },
		},
		clients: map[*client]struct{}{},
	}
}

// Publish fans the snapshot out to all connected clients.
func (s *Server) Publish(rec record.HandRecord) {
	data, err := json.Marshal(rec)
	if err != nil {
		s.logger.Error("marshal snapshot", "error", err)
		return
	}

	s.mu.Lock()
	s.latest = data
	var dropped []*client
	for c := range s.clients {
		select {
		case c.send <- data:
		default:
			dropped = append(dropped, c)
			delete(s.clients, c)
		}
	}
	s.mu.Unlock()

	for _, c := range dropped {
		s.logger.Warn("dropping slow overlay client")
		c.close()
	}
}

// Handler returns the websocket endpoint, exposed separately so tests can
// mount it on their own listener.
func (s *Server) Handler() http.Handler {
	return http.HandlerFunc(s.serveWS)
}

func (s *Server) serveWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade failed", "error", err)
		return
	}

	c := &client{conn: conn, send: make(chan []byte, sendBuffer)}

	s.mu.Lock()
	s.clients[c] = struct{}{}
	if s.latest != nil {
		c.send <- s.latest
	}
	s.mu.Unlock()

	s.logger.Debug("overlay client connected", "remote", conn.RemoteAddr())
	go s.writePump(c)
	go s.readPump(c)
}

func (s *Server) writePump(c *client) {
	defer c.conn.Close()
	for data := range c.send {
		c.conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
			s.remove(c)
			return
		}
	}
}

// readPump discards inbound frames; the overlay protocol is one-way. Its
// real job is detecting the close handshake.
func (s *Server) readPump(c *client) {
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			s.remove(c)
			return
		}
	}
}

func (s *Server) remove(c *client) {
	s.mu.Lock()
	_, present := s.clients[c]
	delete(s.clients, c)
	s.mu.Unlock()
	if present {
		c.close()
	}
}

// Run serves the endpoint until ctx is cancelled, then shuts the listener
// down and disconnects all clients.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{Addr: s.addr, Handler: s.Handler()}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s.logger.Info("overlay listening", "addr", s.addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), writeWait)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)

		s.mu.Lock()
		clients := make([]*client, 0, len(s.clients))
		for c := range s.clients {
			clients = append(clients, c)
		}
		s.clients = map[*client]struct{}{}
		s.mu.Unlock()
		for _, c := range clients {
			c.close()
		}
		return nil
	})
	return g.Wait()
}
