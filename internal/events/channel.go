// Package events carries messages between strategies and the rest of the bot.
package events

import (
	"sync"
	"time"

	"github.com/vadiminshakov/atd/internal/domain"
)

// Message is a notification published on the Channel.
type Message struct {
	Timestamp time.Time   `json:"ts"`
	Pair      domain.Pair `json:"pair"`
	Source    string      `json:"source"`
	Text      string      `json:"text"`
}

// Channel fans out messages to all subscribers via buffered channels.
// It is safe for concurrent use.
type Channel struct {
	mu     sync.RWMutex
	subs   map[chan Message]struct{}
	buffer int
}

// NewChannel creates a channel with the given per-subscriber buffer.
func NewChannel(buffer int) *Channel {
	if buffer < 1 {
		buffer = 64
	}
	return &Channel{
		subs:   make(map[chan Message]struct{}),
		buffer: buffer,
	}
}

// Publish sends the message to all subscribers, dropping it for slow readers.
func (c *Channel) Publish(m Message) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for ch := range c.subs {
		select {
		case ch <- m:
		default:
			// drop slow consumer
		}
	}
}

// Subscribe returns a channel that receives messages until Unsubscribe is called.
func (c *Channel) Subscribe() chan Message {
	ch := make(chan Message, c.buffer)
	c.mu.Lock()
	c.subs[ch] = struct{}{}
	c.mu.Unlock()
	return ch
}

// Unsubscribe removes the channel and closes it.
func (c *Channel) Unsubscribe(ch chan Message) {
	c.mu.Lock()
	if _, ok := c.subs[ch]; ok {
		delete(c.subs, ch)
		close(ch)
	}
	c.mu.Unlock()
}

// Subscribers returns the number of active subscribers.
func (c *Channel) Subscribers() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.subs)
}
