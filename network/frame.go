// Package network implements the length-prefixed JSON framing shared
// by the daemon's command socket and the browser-extension native
// messaging channel: a 4-byte little-endian length followed by a JSON
// payload, capped at 1 MiB per message.
package network

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io"
)

// MaxMessageSize mirrors Chrome's native messaging limit.
const MaxMessageSize = 1024 * 1024

// ReadFrame reads one length-prefixed payload. io.EOF passes through
// untouched so callers can tell a clean close from a broken frame.
func ReadFrame(r io.Reader) ([]byte, error) {
	var lenBytes [4]byte
	if _, err := io.ReadFull(r, lenBytes[:]); err != nil {
		return nil, err
	}
	length := binary.LittleEndian.Uint32(lenBytes[:])
	if length > MaxMessageSize {
		return nil, fmt.Errorf("message too large: %d bytes (max %d)", length, MaxMessageSize)
	}
	buf := make([]byte, length)
	if _, err := io.ReadFull(r, buf); err != nil {
		return nil, fmt.Errorf("read frame body: %w", err)
	}
	return buf, nil
}

// WriteFrame writes one length-prefixed payload.
func WriteFrame(w io.Writer, payload []byte) error {
	if len(payload) > MaxMessageSize {
		return fmt.Errorf("message too large: %d bytes (max %d)", len(payload), MaxMessageSize)
	}
	var lenBytes [4]byte
	binary.LittleEndian.PutUint32(lenBytes[:], uint32(len(payload)))
	if _, err := w.Write(lenBytes[:]); err != nil {
		return err
	}
	_, err := w.Write(payload)
	return err
}

// ReadJSON decodes one frame into v.
func ReadJSON(r io.Reader, v any) error {
	payload, err := ReadFrame(r)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(payload, v); err != nil {
		return fmt.Errorf("decode frame: %w", err)
	}
	return nil
}

// WriteJSON encodes v as one frame.
func WriteJSON(w io.Writer, v any) error {
	payload, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return WriteFrame(w, payload)
}
