package panel

import (
	"context"
	"fmt"

	"github.com/gorilla/websocket"
)

// Client is a console client, used by the watch command and by tests.
type Client struct {
	conn *websocket.Conn
}

// Dial connects to a console endpoint, e.g. ws://host:port/ws.
func Dial(ctx context.Context, url string) (*Client, error) {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, url, nil)
	if err != nil {
		return nil, fmt.Errorf("console dial %s: %w", url, err)
	}
	return &Client{conn: conn}, nil
}

// Next blocks until the next console message arrives.
func (c *Client) Next() (*Message, error) {
	var msg Message
	if err := c.conn.ReadJSON(&msg); err != nil {
		return nil, err
	}
	return &msg, nil
}

// Press injects a button press into the machine.
func (c *Client) Press(button string) error {
	msg, err := NewMessage(MessageTypePress, PressData{Button: button})
	if err != nil {
		return err
	}
	return c.conn.WriteJSON(msg)
}

// RequestStatus asks for a fresh full-state snapshot.
func (c *Client) RequestStatus() error {
	msg, err := NewMessage(MessageTypeStatus, struct{}{})
	if err != nil {
		return err
	}
	return c.conn.WriteJSON(msg)
}

func (c *Client) Close() error {
	return c.conn.Close()
}
