// Package rpc implements the framed request/response wire protocol spoken
// between the monitoring server and a protocol-plugin daemon.
//
// Each exchange is one encoded request message answered by exactly one
// encoded response message, in strict order, over any bidirectional byte
// stream (usually a unix socket). Messages are length-prefixed; the encoding
// of the payload is pluggable, JSON being the default.
package rpc

import (
	"encoding/binary"
	"fmt"
	"io"

	json "github.com/goccy/go-json"
)

// MaxFrameSize bounds a single message. Query results can be large, but a
// frame beyond this is a protocol error, not data.
const MaxFrameSize = 64 << 20

// Encoding serializes messages onto frames. It must support tagged unions,
// maps, sequences, strings and numerics.
type Encoding interface {
	Name() string
	Marshal(v any) ([]byte, error)
	Unmarshal(data []byte, v any) error
}

// JSONEncoding is the default message encoding.
type JSONEncoding struct{}

func (JSONEncoding) Name() string { return "json" }

func (JSONEncoding) Marshal(v any) ([]byte, error) {
	return json.Marshal(v)
}

func (JSONEncoding) Unmarshal(data []byte, v any) error {
	return json.Unmarshal(data, v)
}

// Conn frames messages over a byte stream: a 4-byte big-endian payload
// length followed by the payload.
type Conn struct {
	rw io.ReadWriter
}

func NewConn(rw io.ReadWriter) *Conn {
	return &Conn{rw: rw}
}

// ReadMessage reads one framed payload. io.EOF is returned unchanged when
// the peer closed the stream between messages.
func (c *Conn) ReadMessage() ([]byte, error) {
	var header [4]byte
	if _, err := io.ReadFull(c.rw, header[:]); err != nil {
		if err == io.EOF {
			return nil, io.EOF
		}
		return nil, fmt.Errorf("read frame header: %w", err)
	}
	size := binary.BigEndian.Uint32(header[:])
	if size > MaxFrameSize {
		return nil, fmt.Errorf("frame of %d bytes exceeds limit", size)
	}
	payload := make([]byte, size)
	if _, err := io.ReadFull(c.rw, payload); err != nil {
		return nil, fmt.Errorf("read frame payload: %w", err)
	}
	return payload, nil
}

// WriteMessage writes one framed payload.
func (c *Conn) WriteMessage(payload []byte) error {
	if len(payload) > MaxFrameSize {
		return fmt.Errorf("frame of %d bytes exceeds limit", len(payload))
	}
	var header [4]byte
	binary.BigEndian.PutUint32(header[:], uint32(len(payload)))
	if _, err := c.rw.Write(header[:]); err != nil {
		return fmt.Errorf("write frame header: %w", err)
	}
	if _, err := c.rw.Write(payload); err != nil {
		return fmt.Errorf("write frame payload: %w", err)
	}
	return nil
}
