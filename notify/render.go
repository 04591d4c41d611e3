package notify

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"

	"golang.org/x/text/language"
)

// Message is one rendered email, ready for the mail transport.
type Message struct {
	Role    Role   `json:"role"`
	From    string `json:"from"`
	To      string `json:"to"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// RendererConfig holds the fixed identity used in rendered mail.
type RendererConfig struct {
	Brand         string `env:"MAIL_BRAND" envDefault:"Rolling Translations"`
	DefaultFrom   string `env:"MAIL_DEFAULT_FROM" envDefault:"no-reply@rolling-translations.com"`
	InternalInbox string `env:"MAIL_INTERNAL_INBOX" envDefault:"info@rolling-translations.com"`
	Locale        string `env:"MAIL_LOCALE" envDefault:"en"`
}

// Renderer turns payloads into role-specific messages. It is immutable after
// construction and safe for concurrent use.
type Renderer struct {
	cfg      RendererConfig
	creds    Credentials
	yes, no  string
	bodies   map[Role]*template.Template
	subjects map[Role]func(Payload) string
}

var rushTokens = []struct {
	tag     language.Tag
	yes, no string
}{
	{language.English, "YES", "NO"},
	{language.Spanish, "SÍ", "NO"},
	{language.French, "OUI", "NON"},
}

var rushMatcher = func() language.Matcher {
	tags := make([]language.Tag, len(rushTokens))
	for i, t := range rushTokens {
		tags[i] = t.tag
	}
	return language.NewMatcher(tags)
}()

const internalNewBody = `New translation request received.

Project ID: {{.ProjectID}}
Client: {{.ClientName}} <{{.ClientEmail}}>
Source → Target: {{.LanguagePair}}
Rush: {{rush .Rush}}
Files: {{.FileList}}
Notes: {{.Notes}}

Open Admin to review and assign.`

const clientConfirmationBody = `Hi {{greet .ClientName}},

We successfully received your project.

Project ID: {{.ProjectID}}
Languages: {{.LanguagePair}}
Rush: {{rush .Rush}}
File(s): {{.FileList}}

You'll receive an email each time the project status changes.
For more details, you can visit your dashboard.

Best regards,
{{brand}}`

const clientStatusChangeBody = `Hello {{greet .ClientName}},

The status of your project has changed.

Project ID: {{.ProjectID}}
Languages: {{.LanguagePair}}
File(s): {{.FileList}}
New status: {{.NewStatus}}

For more information, please visit your dashboard.

Best regards,
{{brand}}`

// NewRenderer parses the message templates. Empty config fields take the
// defaults from the env tags.
func NewRenderer(cfg RendererConfig, creds Credentials) (*Renderer, error) {
	if cfg.Brand == "" {
		cfg.Brand = "Rolling Translations"
	}
	if cfg.DefaultFrom == "" {
		cfg.DefaultFrom = "no-reply@rolling-translations.com"
	}
	if cfg.InternalInbox == "" {
		cfg.InternalInbox = "info@rolling-translations.com"
	}

	_, idx, _ := rushMatcher.Match(language.Make(cfg.Locale))
	r := &Renderer{
		cfg:   cfg,
		creds: creds,
		yes:   rushTokens[idx].yes,
		no:    rushTokens[idx].no,
	}

	funcs := template.FuncMap{
		"rush":  r.YesNo,
		"brand": func() string { return cfg.Brand },
		"greet": func(name string) string {
			if name == "" || name == Placeholder {
				return "there"
			}
			return name
		},
	}

	r.bodies = make(map[Role]*template.Template, 3)
	for role, src := range map[Role]string{
		RoleInternalNew:        internalNewBody,
		RoleClientConfirmation: clientConfirmationBody,
		RoleClientStatusChange: clientStatusChangeBody,
	} {
		t, err := template.New(string(role)).Funcs(funcs).Option("missingkey=error").Parse(src)
		if err != nil {
			return nil, fmt.Errorf("parse %s template: %w", role, err)
		}
		r.bodies[role] = t
	}

	r.subjects = map[Role]func(Payload) string{
		RoleInternalNew: func(p Payload) string {
			s := "[New Request] " + p.ProjectID
			if p.Rush {
				s += " (RUSH)"
			}
			return s
		},
		RoleClientConfirmation: func(Payload) string { return "We received your translation request" },
		RoleClientStatusChange: func(Payload) string { return "Your project status has changed" },
	}
	return r, nil
}

// MustNewRenderer is NewRenderer that panics.
func MustNewRenderer(cfg RendererConfig, creds Credentials) *Renderer {
	r, err := NewRenderer(cfg, creds)
	if err != nil {
		panic(err)
	}
	return r
}

// YesNo renders the rush flag in the configured locale.
func (r *Renderer) YesNo(v bool) string {
	if v {
		return r.yes
	}
	return r.no
}

// From is the sender identity, or the default address when the sender
// credential is unresolved.
func (r *Renderer) From() string {
	addr := r.creds.SenderUser
	if addr == "" {
		addr = r.cfg.DefaultFrom
	}
	return fmt.Sprintf("%s <%s>", r.cfg.Brand, addr)
}

func (r *Renderer) recipient(role Role, p Payload) string {
	if role == RoleInternalNew {
		if r.creds.AdminRecipient != "" {
			return r.creds.AdminRecipient
		}
		return r.cfg.InternalInbox
	}
	if p.HasClientEmail() {
		return p.ClientEmail
	}
	return ""
}

// Render produces the message for role. Every payload field is printed, so
// messages of one role always have the same shape.
func (r *Renderer) Render(role Role, p Payload) (Message, error) {
	tmpl, ok := r.bodies[role]
	if !ok {
		return Message{}, fmt.Errorf("%w: %q", ErrUnknownRole, role)
	}

	to := r.recipient(role, p)
	if to == "" {
		return Message{}, fmt.Errorf("%w: %s", ErrNoRecipient, role)
	}

	var body bytes.Buffer
	if err := tmpl.Execute(&body, p); err != nil {
		return Message{}, fmt.Errorf("render %s: %w", role, err)
	}

	return Message{
		Role:    role,
		From:    r.From(),
		To:      to,
		Subject: r.subjects[role](p),
		Body:    strings.TrimSpace(body.String()),
	}, nil
}
