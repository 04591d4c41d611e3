package notify_test

import (
	"context"
	"slices"
	"sync"

	"github.com/dmitrymomot/changenotify/core/email"
)

// recordingSender captures every submission. fail decides the outcome per
// recipient; a nil fail accepts everything.
type recordingSender struct {
	mu   sync.Mutex
	sent []email.SendEmailParams
	fail func(email.SendEmailParams) error
}

func (s *recordingSender) SendEmail(_ context.Context, p email.SendEmailParams) error {
	s.mu.Lock()
	s.sent = append(s.sent, p)
	s.mu.Unlock()
	if s.fail != nil {
		return s.fail(p)
	}
	return nil
}

func (s *recordingSender) recipients() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, 0, len(s.sent))
	for _, p := range s.sent {
		out = append(out, p.SendTo)
	}
	slices.Sort(out)
	return out
}

func (s *recordingSender) byRecipient(to string) (email.SendEmailParams, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.sent {
		if p.SendTo == to {
			return p, true
		}
	}
	return email.SendEmailParams{}, false
}
