// Package feed serves a live data feed for a running globe. REST routes and a websocket command
// stream forward data updates to the scene controller.
package feed

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/Carmen-Shannon/oxy-globe/engine"
	"github.com/Carmen-Shannon/oxy-globe/engine/operate"
	"github.com/coder/websocket"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

const maxBodySize = 4 << 20

// Sink receives data updates. engine.Engine satisfies it.
type Sink interface {
	SetData(ctx context.Context, dataType string, data []byte) error
	AddData(ctx context.Context, dataType string, data []byte) error
	Remove(dataType string, ids ...string) int
}

// Server routes feed requests to a Sink.
type Server struct {
	sink   Sink
	logger *slog.Logger
	router *mux.Router

	originPatterns []string
	commandTimeout time.Duration

	mu      sync.Mutex
	clients map[string]*Client
}

// NewServer creates a feed server.
//
// Parameters:
//   - sink: the receiver of data updates, usually the scene controller
//   - options: functional options for logging, origins and timeouts
//
// Returns:
//   - *Server: the server; mount Handler() on an http.Server
func NewServer(sink Sink, options ...ServerBuilderOption) *Server {
	s := &Server{
		sink:           sink,
		logger:         slog.Default(),
		commandTimeout: 30 * time.Second,
		clients:        make(map[string]*Client),
	}
	for _, opt := range options {
		opt(s)
	}
	s.logger = s.logger.With("component", "feed")

	r := mux.NewRouter()
	r.Use(s.recovery)
	r.Use(s.logRequests)

	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods("GET")

	r.HandleFunc("/data/{type}", s.setData).Methods("PUT")
	r.HandleFunc("/data/{type}", s.addData).Methods("POST")
	r.HandleFunc("/data/{type}", s.remove).Methods("DELETE")
	r.HandleFunc("/ws", s.serveWebSocket)

	s.router = r
	return s
}

// Handler returns the HTTP handler serving every route.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Clients returns the number of connected websocket clients.
func (s *Server) Clients() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.clients)
}

// Broadcast sends msg to every connected websocket client.
func (s *Server) Broadcast(msg *Message) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range s.clients {
		c.Send(msg)
	}
}

func (s *Server) setData(w http.ResponseWriter, r *http.Request) {
	s.update(w, r, TypeSetData)
}

func (s *Server) addData(w http.ResponseWriter, r *http.Request) {
	s.update(w, r, TypeAddData)
}

func (s *Server) update(w http.ResponseWriter, r *http.Request, command string) {
	dataType := mux.Vars(r)["type"]

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodySize))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, response{Type: TypeError, DataType: dataType, Error: "invalid request body"})
		return
	}

	reply := s.apply(r.Context(), &Message{Type: command, DataType: dataType, Payload: body})
	writeJSON(w, statusFor(reply), response{Type: reply.Type, DataType: dataType, Error: reply.Error})
}

// remove handles DELETE /data/{type}?id=a&id=b. Without ids every entity of the type is removed.
func (s *Server) remove(w http.ResponseWriter, r *http.Request) {
	dataType := mux.Vars(r)["type"]
	ids := r.URL.Query()["id"]

	reply := s.apply(r.Context(), &Message{Type: TypeRemove, DataType: dataType, IDs: ids})
	writeJSON(w, statusFor(reply), response{Type: reply.Type, DataType: dataType, Count: reply.Count})
}

func (s *Server) serveWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: s.originPatterns,
	})
	if err != nil {
		s.logger.Error("websocket accept", "error", err)
		return
	}

	client := newClient(s, conn, uuid.New().String())
	s.register(client)

	ctx := r.Context()
	go client.WritePump(ctx)
	client.ReadPump(ctx)
}

func (s *Server) register(c *Client) {
	s.mu.Lock()
	s.clients[c.ID] = c
	s.mu.Unlock()

	c.Send(&Message{Type: TypeWelcome, ClientID: c.ID})
	s.logger.Info("client joined", "client", c.ID)
}

func (s *Server) unregister(c *Client) {
	s.mu.Lock()
	if _, ok := s.clients[c.ID]; !ok {
		s.mu.Unlock()
		return
	}
	delete(s.clients, c.ID)
	close(c.send)
	s.mu.Unlock()

	s.logger.Info("client left", "client", c.ID)
}

// handleMessage applies a websocket command and returns the reply for its sender.
func (s *Server) handleMessage(ctx context.Context, msg *Message) *Message {
	switch msg.Type {
	case TypeSetData, TypeAddData, TypeRemove:
		reply := s.apply(ctx, msg)
		reply.Seq = msg.Seq
		return reply
	default:
		s.logger.Warn("unknown message type", "type", msg.Type, "client", msg.ClientID)
		return &Message{Type: TypeError, Seq: msg.Seq, Error: "unknown message type " + msg.Type}
	}
}

// apply forwards one command to the sink and broadcasts the change on success.
func (s *Server) apply(ctx context.Context, msg *Message) *Message {
	if msg.DataType == "" {
		return &Message{Type: TypeError, Error: "missing data type"}
	}

	ctx, cancel := context.WithTimeout(ctx, s.commandTimeout)
	defer cancel()

	reply := &Message{Type: TypeAck, DataType: msg.DataType}
	var err error
	switch msg.Type {
	case TypeSetData:
		err = s.sink.SetData(ctx, msg.DataType, msg.Payload)
	case TypeAddData:
		err = s.sink.AddData(ctx, msg.DataType, msg.Payload)
	case TypeRemove:
		ids := msg.IDs
		if len(ids) == 0 {
			ids = []string{operate.RemoveAllIDs}
		}
		reply.Count = s.sink.Remove(msg.DataType, ids...)
	}
	if err != nil {
		s.logger.Warn("command failed", "command", msg.Type, "type", msg.DataType, "error", err)
		reply.Type = TypeError
		reply.Error = err.Error()
		reply.status = errorCode(err)
		return reply
	}

	s.Broadcast(&Message{Type: TypeUpdated, DataType: msg.DataType, ClientID: msg.ClientID})
	return reply
}

// errorCode maps a sink error to an HTTP status.
func errorCode(err error) int {
	switch {
	case errors.Is(err, operate.ErrUnknownType):
		return http.StatusNotFound
	case errors.Is(err, operate.ErrBadPayload):
		return http.StatusBadRequest
	case errors.Is(err, engine.ErrDestroyed):
		return http.StatusServiceUnavailable
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return http.StatusGatewayTimeout
	default:
		return http.StatusUnprocessableEntity
	}
}

func statusFor(reply *Message) int {
	if reply.Type != TypeError {
		return http.StatusOK
	}
	if reply.status != 0 {
		return reply.status
	}
	return http.StatusBadRequest
}

func (s *Server) recovery(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				s.logger.Error("handler panic", "panic", rec, "path", r.URL.Path)
				writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
			}
		}()
		next.ServeHTTP(w, r)
	})
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.logger.Debug("request", "method", r.Method, "path", r.URL.Path, "duration", time.Since(start))
	})
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
