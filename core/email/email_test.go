package email_test

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/changenotify/core/email"
)

func validParams() email.SendEmailParams {
	return email.SendEmailParams{
		From:     "Rolling Translations <bot@example.com>",
		SendTo:   "jane@x.com",
		Subject:  "We received your translation request",
		BodyText: "Hi Jane",
		Tag:      "client_confirmation",
	}
}

func TestSendEmailParams_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*email.SendEmailParams)
		wantErr bool
	}{
		{name: "valid", mutate: func(*email.SendEmailParams) {}},
		{name: "missing recipient", mutate: func(p *email.SendEmailParams) { p.SendTo = "" }, wantErr: true},
		{name: "missing subject", mutate: func(p *email.SendEmailParams) { p.Subject = " " }, wantErr: true},
		{name: "missing body", mutate: func(p *email.SendEmailParams) { p.BodyText = "" }, wantErr: true},
		{name: "bad recipient", mutate: func(p *email.SendEmailParams) { p.SendTo = "not an address" }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			p := validParams()
			tt.mutate(&p)
			err := p.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, email.ErrInvalidParams)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestDevSender_WritesFiles(t *testing.T) {
	t.Parallel()

	dir := filepath.Join(t.TempDir(), "out")
	sender := email.NewDevSender(dir)

	require.NoError(t, sender.SendEmail(context.Background(), validParams()))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	var txt, meta string
	for _, e := range entries {
		switch {
		case strings.HasSuffix(e.Name(), ".txt"):
			txt = filepath.Join(dir, e.Name())
		case strings.HasSuffix(e.Name(), ".json"):
			meta = filepath.Join(dir, e.Name())
		}
	}
	require.NotEmpty(t, txt)
	require.NotEmpty(t, meta)

	body, err := os.ReadFile(txt)
	require.NoError(t, err)
	assert.Equal(t, "Hi Jane", string(body))

	raw, err := os.ReadFile(meta)
	require.NoError(t, err)
	var m map[string]string
	require.NoError(t, json.Unmarshal(raw, &m))
	assert.Equal(t, "jane@x.com", m["send_to"])
	assert.Equal(t, "client_confirmation", m["tag"])
}

func TestDevSender_InvalidParams(t *testing.T) {
	t.Parallel()

	sender := email.NewDevSender(t.TempDir())
	p := validParams()
	p.SendTo = ""
	assert.ErrorIs(t, sender.SendEmail(context.Background(), p), email.ErrInvalidParams)
}

func TestDevSender_CancelledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	sender := email.NewDevSender(t.TempDir())
	assert.ErrorIs(t, sender.SendEmail(ctx, validParams()), email.ErrFailedToSendEmail)
}
