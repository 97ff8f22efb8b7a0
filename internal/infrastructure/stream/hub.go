package stream

import (
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"
	"github.com/tdex-network/tdex-pool/internal/core/ports"
)

const (
	// TopicQueryParam is the query param of the upgrade request selecting the
	// topic to listen to. All topics are streamed if missing.
	TopicQueryParam = "event"

	DefaultMaxPendingMessages = 256
	DefaultWriteWait          = 10 * time.Second
	DefaultPongWait           = 60 * time.Second

	maxReadMessageSize = 512
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(*http.Request) bool {
		return true
	},
}

// Hub keeps track of the connected websocket listeners and broadcasts them
// the messages published for the topic they listen to. A listener that falls
// behind by more than maxPendingMessages loses the exceeding ones.
type Hub struct {
	lock  sync.RWMutex
	conns map[*connection]struct{}

	maxPendingMessages int
	writeWait          time.Duration
	pongWait           time.Duration
	pingPeriod         time.Duration
}

// NewHub returns a new Hub. Zero values are replaced by the defaults.
func NewHub(
	maxPendingMessages int, writeWait, pongWait time.Duration,
) *Hub {
	if maxPendingMessages <= 0 {
		maxPendingMessages = DefaultMaxPendingMessages
	}
	if writeWait <= 0 {
		writeWait = DefaultWriteWait
	}
	if pongWait <= 0 {
		pongWait = DefaultPongWait
	}
	return &Hub{
		conns:              make(map[*connection]struct{}),
		maxPendingMessages: maxPendingMessages,
		writeWait:          writeWait,
		pongWait:           pongWait,
		pingPeriod:         (pongWait * 9) / 10,
	}
}

// ServeHTTP upgrades the request to a websocket connection and registers it
// as listener of the topic selected by the TopicQueryParam.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	topic := r.URL.Query().Get(TopicQueryParam)

	wsConn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.WithError(err).Debug("failed to upgrade connection")
		return
	}

	conn := &connection{
		hub:   h,
		conn:  wsConn,
		topic: topic,
		send:  make(chan []byte, h.maxPendingMessages),
	}
	h.add(conn)

	go conn.writePump()
	go conn.readPump()
}

// Broadcast sends the message to every listener of the given topic.
func (h *Hub) Broadcast(topic string, message []byte) {
	h.lock.RLock()
	defer h.lock.RUnlock()

	for conn := range h.conns {
		if !conn.listensTo(topic) {
			continue
		}
		select {
		case conn.send <- message:
		default:
			log.Debugf(
				"dropping %s message for listener %s: too many pending messages",
				topic, conn.conn.RemoteAddr(),
			)
		}
	}
}

// Count returns the number of connected listeners.
func (h *Hub) Count() int {
	h.lock.RLock()
	defer h.lock.RUnlock()
	return len(h.conns)
}

// Close disconnects all listeners.
func (h *Hub) Close() {
	h.lock.Lock()
	defer h.lock.Unlock()

	for conn := range h.conns {
		delete(h.conns, conn)
		close(conn.send)
	}
}

func (h *Hub) add(conn *connection) {
	h.lock.Lock()
	defer h.lock.Unlock()

	h.conns[conn] = struct{}{}
	log.Debugf("listener %s connected", conn.conn.RemoteAddr())
}

func (h *Hub) remove(conn *connection) {
	h.lock.Lock()
	defer h.lock.Unlock()

	if _, ok := h.conns[conn]; !ok {
		return
	}
	delete(h.conns, conn)
	close(conn.send)
	log.Debugf("listener %s disconnected", conn.conn.RemoteAddr())
}

var _ ports.EventStream = (*Hub)(nil)
