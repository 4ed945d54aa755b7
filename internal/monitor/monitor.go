// Package monitor exposes a soundstage Manager's Events() stream to
// websocket clients as JSON, one text message per event, for an external dashboard
// or debugging tool to observe metronome and sequence activity live.
package monitor

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"soundstage"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// wireEvent is the JSON shape an Event is encoded as; exactly one of the
// typed fields is populated depending on which concrete Event it wraps.
type wireEvent struct {
	Type      string  `json:"type"`
	Metronome uint64  `json:"metronome,omitempty"`
	Interval  float64 `json:"interval,omitempty"`
	Sequence  uint64  `json:"sequence,omitempty"`
	Name      string  `json:"name,omitempty"`
}

func encodeEvent(ev soundstage.Event) (wireEvent, bool) {
	switch e := ev.(type) {
	case soundstage.MetronomeIntervalEvent:
		return wireEvent{Type: "metronome_interval", Metronome: uint64(e.Metronome), Interval: e.Interval}, true
	case soundstage.SequenceEvent:
		return wireEvent{Type: "sequence_event", Sequence: uint64(e.Sequence), Name: e.Name}, true
	default:
		return wireEvent{}, false
	}
}

// Hub fans a Manager's event stream out to any number of connected
// websocket clients. Register it at an http.ServeMux path with Handler.
type Hub struct {
	logger *slog.Logger

	mu      sync.RWMutex
	clients map[*websocket.Conn]chan wireEvent
}

// NewHub starts relaying mgr.Events() to every registered client and
// returns the Hub. logger may be nil, in which case slog.Default() is
// used.
func NewHub(mgr *soundstage.Manager, logger *slog.Logger) *Hub {
	if logger == nil {
		logger = slog.Default()
	}
	h := &Hub{logger: logger, clients: make(map[*websocket.Conn]chan wireEvent)}
	go h.relay(mgr.Events())
	return h
}

func (h *Hub) relay(events <-chan soundstage.Event) {
	for ev := range events {
		wire, ok := encodeEvent(ev)
		if !ok {
			continue
		}
		h.broadcast(wire)
	}
}

func (h *Hub) broadcast(wire wireEvent) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for conn, ch := range h.clients {
		select {
		case ch <- wire:
		default:
			h.logger.Warn("monitor client too slow, dropping event", "remote", conn.RemoteAddr())
		}
	}
}

// Handler upgrades incoming requests to websocket connections and streams
// events to each one until it disconnects.
func (h *Hub) Handler(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Error("monitor upgrade failed", "error", err)
		return
	}

	ch := make(chan wireEvent, 64)
	h.mu.Lock()
	h.clients[conn] = ch
	h.mu.Unlock()

	h.logger.Info("monitor client connected", "remote", conn.RemoteAddr())

	defer func() {
		h.mu.Lock()
		delete(h.clients, conn)
		h.mu.Unlock()
		conn.Close()
		h.logger.Info("monitor client disconnected", "remote", conn.RemoteAddr())
	}()

	go h.readPump(conn)

	for wire := range ch {
		data, err := json.Marshal(wire)
		if err != nil {
			continue
		}
		conn.SetWriteDeadline(time.Now().Add(5 * time.Second))
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			return
		}
	}
}

// readPump discards incoming messages (the protocol is server-to-client
// only) but must keep reading so pong/close control frames are observed.
// It returns on the first read error; no read deadline is set.
func (h *Hub) readPump(conn *websocket.Conn) {
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}
