package network

import (
	"fmt"
	"net"
	"time"
)

// Client is a framed JSON connection to the daemon's command socket.
type Client struct {
	conn net.Conn
}

func Dial(host string, port int) (*Client, error) {
	conn, err := net.DialTimeout("tcp", fmt.Sprintf("%s:%d", host, port), 5*time.Second)
	if err != nil {
		return nil, fmt.Errorf("dial daemon: %w", err)
	}
	return &Client{conn: conn}, nil
}

// Call sends one request frame and waits for the reply frame.
func (c *Client) Call(req any, resp any) error {
	if err := WriteJSON(c.conn, req); err != nil {
		return err
	}
	return ReadJSON(c.conn, resp)
}

func (c *Client) Close() error {
	if c == nil || c.conn == nil {
		return nil
	}
	return c.conn.Close()
}
