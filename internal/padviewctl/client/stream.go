package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/gorilla/websocket"

	"github.com/padview/padview/api/types/v1alpha1"
)

// Watch subscribes to the daemon's status stream and delivers messages on the
// returned channel until ctx is canceled or the connection drops. The channel
// is closed on exit.
func (c *Client) Watch(ctx context.Context) (<-chan v1alpha1.StreamMessage, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}
	u.Scheme = strings.Replace(u.Scheme, "http", "ws", 1)
	u.Path = "/api/v1alpha1/status/stream"

	conn, resp, err := websocket.DefaultDialer.DialContext(ctx, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("connecting to status stream: %w", err)
	}
	if resp != nil {
		resp.Body.Close()
	}

	ch := make(chan v1alpha1.StreamMessage)
	go func() {
		defer close(ch)
		defer conn.Close()

		// Close the connection when the context ends to unblock ReadMessage.
		done := make(chan struct{})
		defer close(done)
		go func() {
			select {
			case <-ctx.Done():
				conn.Close()
			case <-done:
			}
		}()

		for {
			_, data, err := conn.ReadMessage()
			if err != nil {
				return
			}
			var msg v1alpha1.StreamMessage
			if err := json.Unmarshal(data, &msg); err != nil {
				continue
			}
			select {
			case ch <- msg:
			case <-ctx.Done():
				return
			}
		}
	}()
	return ch, nil
}
