package notify_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/changenotify/notify"
)

func fullPayload() notify.Payload {
	return notify.Payload{
		ProjectID:    "P-42",
		ClientName:   "Ana Ruiz",
		ClientEmail:  "ana@example.com",
		LanguagePair: "en → es, fr",
		FileList:     "a.pdf, b.docx",
		Rush:         true,
		Notes:        "Due Friday",
		NewStatus:    "in_progress",
	}
}

func TestRenderer_InternalNew(t *testing.T) {
	t.Parallel()

	r := notify.MustNewRenderer(notify.RendererConfig{}, notify.Credentials{
		SenderUser:     "ops@example.com",
		AdminRecipient: "admin@example.com",
	})

	m, err := r.Render(notify.RoleInternalNew, fullPayload())
	require.NoError(t, err)

	assert.Equal(t, notify.RoleInternalNew, m.Role)
	assert.Equal(t, "admin@example.com", m.To)
	assert.Equal(t, "Rolling Translations <ops@example.com>", m.From)
	assert.Equal(t, "[New Request] P-42 (RUSH)", m.Subject)
	assert.Contains(t, m.Body, "Project ID: P-42")
	assert.Contains(t, m.Body, "Client: Ana Ruiz <ana@example.com>")
	assert.Contains(t, m.Body, "Source → Target: en → es, fr")
	assert.Contains(t, m.Body, "Rush: YES")
	assert.Contains(t, m.Body, "Files: a.pdf, b.docx")
	assert.Contains(t, m.Body, "Notes: Due Friday")
}

func TestRenderer_Subjects(t *testing.T) {
	t.Parallel()

	r := notify.MustNewRenderer(notify.RendererConfig{}, notify.Credentials{})
	p := fullPayload()
	p.Rush = false

	tests := []struct {
		role    notify.Role
		subject string
	}{
		{notify.RoleInternalNew, "[New Request] P-42"},
		{notify.RoleClientConfirmation, "We received your translation request"},
		{notify.RoleClientStatusChange, "Your project status has changed"},
	}

	for _, tt := range tests {
		t.Run(string(tt.role), func(t *testing.T) {
			t.Parallel()
			m, err := r.Render(tt.role, p)
			require.NoError(t, err)
			assert.Equal(t, tt.subject, m.Subject)
		})
	}
}

func TestRenderer_ClientMessages(t *testing.T) {
	t.Parallel()

	r := notify.MustNewRenderer(notify.RendererConfig{Brand: "Acme"}, notify.Credentials{})

	m, err := r.Render(notify.RoleClientConfirmation, fullPayload())
	require.NoError(t, err)
	assert.Equal(t, "ana@example.com", m.To)
	assert.Contains(t, m.Body, "Hi Ana Ruiz,")
	assert.Contains(t, m.Body, "Languages: en → es, fr")
	assert.Contains(t, m.Body, "File(s): a.pdf, b.docx")
	assert.Contains(t, m.Body, "Rush: YES")
	assert.Contains(t, m.Body, "Acme")

	m, err = r.Render(notify.RoleClientStatusChange, fullPayload())
	require.NoError(t, err)
	assert.Equal(t, "ana@example.com", m.To)
	assert.Contains(t, m.Body, "Hello Ana Ruiz,")
	assert.Contains(t, m.Body, "New status: in_progress")
}

func TestRenderer_Fallbacks(t *testing.T) {
	t.Parallel()

	r := notify.MustNewRenderer(notify.RendererConfig{}, notify.Credentials{})
	p := notify.Normalize("", notify.Snapshot{"email": "c@example.com"})

	assert.Equal(t, "Rolling Translations <no-reply@rolling-translations.com>", r.From())

	m, err := r.Render(notify.RoleInternalNew, p)
	require.NoError(t, err)
	assert.Equal(t, "info@rolling-translations.com", m.To)
	assert.Equal(t, "[New Request] —", m.Subject)
	assert.Contains(t, m.Body, "Source → Target: — → —")
	assert.Contains(t, m.Body, "Files: —")
	assert.Contains(t, m.Body, "Notes: —")
	assert.Contains(t, m.Body, "Rush: NO")

	m, err = r.Render(notify.RoleClientConfirmation, p)
	require.NoError(t, err)
	assert.Contains(t, m.Body, "Hi there,")
}

func TestRenderer_RushLocale(t *testing.T) {
	t.Parallel()

	tests := []struct {
		locale  string
		yes, no string
	}{
		{"", "YES", "NO"},
		{"en-US", "YES", "NO"},
		{"es", "SÍ", "NO"},
		{"es-MX", "SÍ", "NO"},
		{"fr-CA", "OUI", "NON"},
		{"de", "YES", "NO"},
	}

	for _, tt := range tests {
		t.Run(tt.locale, func(t *testing.T) {
			t.Parallel()
			r := notify.MustNewRenderer(notify.RendererConfig{Locale: tt.locale}, notify.Credentials{})
			assert.Equal(t, tt.yes, r.YesNo(true))
			assert.Equal(t, tt.no, r.YesNo(false))
		})
	}
}

func TestRenderer_Errors(t *testing.T) {
	t.Parallel()

	r := notify.MustNewRenderer(notify.RendererConfig{}, notify.Credentials{})

	_, err := r.Render(notify.Role("bogus"), fullPayload())
	assert.ErrorIs(t, err, notify.ErrUnknownRole)

	p := fullPayload()
	p.ClientEmail = notify.Placeholder
	_, err = r.Render(notify.RoleClientStatusChange, p)
	assert.ErrorIs(t, err, notify.ErrNoRecipient)
}

func TestRenderer_ShapeIsStable(t *testing.T) {
	t.Parallel()

	r := notify.MustNewRenderer(notify.RendererConfig{}, notify.Credentials{})
	sparse := notify.Normalize("id-1", notify.Snapshot{"email": "c@example.com"})

	for _, role := range []notify.Role{notify.RoleInternalNew, notify.RoleClientConfirmation, notify.RoleClientStatusChange} {
		full, err := r.Render(role, fullPayload())
		require.NoError(t, err)
		empty, err := r.Render(role, sparse)
		require.NoError(t, err)
		assert.Equal(t, countLines(full.Body), countLines(empty.Body), string(role))
	}
}

func countLines(s string) int {
	n := 1
	for _, c := range s {
		if c == '\n' {
			n++
		}
	}
	return n
}
