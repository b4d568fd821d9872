package messaging

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/bytedance/sonic"
)

const (
	// MaxMessageSize is the default maximum message size (1MB)
	MaxMessageSize = 1024 * 1024
)

// Status is the outcome carried by a Response
type Status string

const (
	StatusOK    Status = "OK"
	StatusError Status = "ERROR"
)

// Message represents a request from the extension.
// Arguments holds the raw getFile arguments: names or lists of names.
type Message struct {
	Action     string `json:"action"`
	CallbackID string `json:"callbackId,omitempty"`
	Arguments  []any  `json:"arguments,omitempty"`
}

// Response is the single terminal message for a callback ID
type Response struct {
	CallbackID string `json:"callbackId,omitempty"`
	Status     Status `json:"status"`
	Payload    string `json:"payload,omitempty"`
}

// OK builds a success response
func OK(callbackID, payload string) Response {
	return Response{CallbackID: callbackID, Status: StatusOK, Payload: payload}
}

// Error builds an error response whose payload is the error text
func Error(callbackID string, err error) Response {
	return Response{CallbackID: callbackID, Status: StatusError, Payload: err.Error()}
}

// ReadMessage reads a length-prefixed JSON message from the given reader.
// Chrome's native messaging protocol uses a 32-bit little-endian length prefix.
func ReadMessage(r io.Reader) (*Message, error) {
	return ReadMessageLimit(r, MaxMessageSize)
}

// ReadMessageLimit is ReadMessage with a caller-chosen size limit
func ReadMessageLimit(r io.Reader, maxSize uint32) (*Message, error) {
	var length uint32
	if err := binary.Read(r, binary.LittleEndian, &length); err != nil {
		if err == io.EOF {
			return nil, err
		}
		return nil, fmt.Errorf("failed to read message length: %w", err)
	}

	if length == 0 {
		return nil, fmt.Errorf("invalid message length: 0")
	}
	if length > maxSize {
		return nil, fmt.Errorf("message too large: %d bytes (max %d)", length, maxSize)
	}

	buf := make([]byte, length)
	if _, err := io.ReadFull(r, buf); err != nil {
		return nil, fmt.Errorf("failed to read message body: %w", err)
	}

	var msg Message
	if err := sonic.Unmarshal(buf, &msg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal message: %w", err)
	}

	return &msg, nil
}

// WriteMessage writes a length-prefixed JSON response to the given writer.
// Header and body go out in a single Write.
func WriteMessage(w io.Writer, resp Response) error {
	data, err := sonic.Marshal(resp)
	if err != nil {
		return fmt.Errorf("failed to marshal response: %w", err)
	}

	frame := make([]byte, 4+len(data))
	binary.LittleEndian.PutUint32(frame[:4], uint32(len(data)))
	copy(frame[4:], data)

	if _, err := w.Write(frame); err != nil {
		return fmt.Errorf("failed to write message: %w", err)
	}

	return nil
}
