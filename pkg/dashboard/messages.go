package dashboard

import (
	"sync"
	"time"
)

type MessageType string

const (
	MessageSuccess MessageType = "success"
	MessageError   MessageType = "error"
	MessageInfo    MessageType = "info"
)

// Message is a transient user-facing notification.
type Message struct {
	Type MessageType
	Text string
}

// dismissAfter is how long a message stays visible before auto-dismissing.
const dismissAfter = 3200 * time.Millisecond

// MessageCenter holds at most one transient message. Every publish resets the
// single-shot dismiss timer; a newer message supersedes the pending one.
type MessageCenter struct {
	mu      sync.Mutex
	current *Message
	timer   *time.Timer
	ttl     time.Duration
}

func NewMessageCenter() *MessageCenter {
	return &MessageCenter{ttl: dismissAfter}
}

// NewMessageCenterWithTTL exists for tests that cannot wait out the real delay.
func NewMessageCenterWithTTL(ttl time.Duration) *MessageCenter {
	return &MessageCenter{ttl: ttl}
}

// Publish replaces the current message and restarts the dismiss timer.
func (m *MessageCenter) Publish(msgType MessageType, text string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.timer != nil {
		m.timer.Stop()
	}
	msg := &Message{Type: msgType, Text: text}
	m.current = msg
	m.timer = time.AfterFunc(m.ttl, func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		// Only dismiss if no newer message replaced this one.
		if m.current == msg {
			m.current = nil
		}
	})
}

// Current returns the visible message, nil once dismissed.
func (m *MessageCenter) Current() *Message {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.current
}

// Close cancels the pending dismiss timer.
func (m *MessageCenter) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.timer != nil {
		m.timer.Stop()
		m.timer = nil
	}
	m.current = nil
}
