package stream

import (
	"time"

	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"
	"github.com/tdex-network/tdex-pool/internal/core/ports"
)

type connection struct {
	hub   *Hub
	conn  *websocket.Conn
	topic string
	// closed by the hub only.
	send chan []byte
}

func (c *connection) listensTo(topic string) bool {
	return c.topic == "" || c.topic == ports.AnyTopic || c.topic == topic
}

// readPump only serves to process the control messages and to detect that
// the listener went away. Any other incoming message is discarded.
func (c *connection) readPump() {
	defer func() {
		c.hub.remove(c)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxReadMessageSize)
	if err := c.conn.SetReadDeadline(time.Now().Add(c.hub.pongWait)); err != nil {
		return
	}
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(c.hub.pongWait))
	})

	for {
		if _, _, err := c.conn.NextReader(); err != nil {
			if websocket.IsUnexpectedCloseError(
				err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure,
			) {
				log.WithError(err).Debug("unexpected close of listener connection")
			}
			return
		}
	}
}

func (c *connection) writePump() {
	ticker := time.NewTicker(c.hub.pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			if err := c.conn.SetWriteDeadline(
				time.Now().Add(c.hub.writeWait),
			); err != nil {
				return
			}
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, nil)
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				log.WithError(err).Debug("failed to write to listener connection")
				return
			}
		case <-ticker.C:
			if err := c.conn.SetWriteDeadline(
				time.Now().Add(c.hub.writeWait),
			); err != nil {
				return
			}
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
