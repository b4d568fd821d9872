package messaging

import (
	"io"
	"sync"
)

// Channel is the callback channel back to the extension. Responses are
// produced by the dispatch loop and by the picker's UI loop, so writes are
// serialized to keep frames from interleaving.
type Channel struct {
	mu sync.Mutex
	w  io.Writer
}

// NewChannel wraps w, usually os.Stdout
func NewChannel(w io.Writer) *Channel {
	return &Channel{w: w}
}

// Send writes one framed response
func (c *Channel) Send(resp Response) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return WriteMessage(c.w, resp)
}
