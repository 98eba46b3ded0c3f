package testutil

import (
	"context"
	"sync"

	"sick-fits/mail"
)

// Mailbox records sent messages. Err, when set, is returned from Send after
// the message is recorded.
type Mailbox struct {
	mu   sync.Mutex
	sent []mail.Message
	Err  error
}

func (m *Mailbox) Send(_ context.Context, msg mail.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, msg)
	return m.Err
}

func (m *Mailbox) Sent() []mail.Message {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]mail.Message(nil), m.sent...)
}
