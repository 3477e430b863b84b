package game

import (
	"context"
	"sync"
)

// Mailbox is an unbounded FIFO queue with many senders and one receiver.
// Send never blocks; intents are received in the order they were sent.
type Mailbox struct {
	mu    sync.Mutex
	queue []Intent
	ready chan struct{}
}

// NewMailbox creates an empty mailbox.
func NewMailbox() *Mailbox {
	return &Mailbox{ready: make(chan struct{}, 1)}
}

// Send enqueues in.
func (m *Mailbox) Send(in Intent) {
	m.mu.Lock()
	m.queue = append(m.queue, in)
	m.mu.Unlock()

	select {
	case m.ready <- struct{}{}:
	default:
	}
}

// Receive blocks until an intent is available or ctx is done.
// The second result is false only when ctx ended first.
func (m *Mailbox) Receive(ctx context.Context) (Intent, bool) {
	for {
		m.mu.Lock()
		if len(m.queue) > 0 {
			in := m.queue[0]
			m.queue[0] = Intent{}
			m.queue = m.queue[1:]
			m.mu.Unlock()
			return in, true
		}
		m.mu.Unlock()

		select {
		case <-m.ready:
		case <-ctx.Done():
			return Intent{}, false
		}
	}
}

// Len returns the number of queued intents.
func (m *Mailbox) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.queue)
}
