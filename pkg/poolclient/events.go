package poolclient

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/gorilla/websocket"
)

// Event is a message of the event stream. Payload is the JSON document
// delivered to the webhooks for the same event.
type Event struct {
	Payload []byte
	Err     error
}

// Events connects to the event stream of the daemon and returns the channel
// where the events of the given type are delivered. An empty event type
// selects them all. The channel is closed when the context is canceled or
// the connection drops, in which case the last Event carries the error.
func (c *Client) Events(ctx context.Context, event string) (<-chan Event, error) {
	u, err := url.Parse(c.baseURI + EventsEndpoint)
	if err != nil {
		return nil, err
	}
	u.Scheme = strings.Replace(u.Scheme, "http", "ws", 1)
	if event != "" {
		u.RawQuery = url.Values{"event": []string{event}}.Encode()
	}

	conn, _, err := websocket.DefaultDialer.DialContext(ctx, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to event stream: %w", err)
	}

	chEvents := make(chan Event)
	go func() {
		<-ctx.Done()
		conn.WriteMessage(
			websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
		)
		conn.Close()
	}()
	go func() {
		defer close(chEvents)
		for {
			_, message, err := conn.ReadMessage()
			if err != nil {
				if ctx.Err() == nil && !websocket.IsCloseError(
					err, websocket.CloseNormalClosure,
				) {
					select {
					case chEvents <- Event{Err: err}:
					case <-ctx.Done():
					}
				}
				return
			}
			select {
			case chEvents <- Event{Payload: message}:
			case <-ctx.Done():
				return
			}
		}
	}()
	return chEvents, nil
}
