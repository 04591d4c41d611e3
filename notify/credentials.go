package notify

import (
	"log/slog"
	"os"
	"slices"
	"strings"

	"dario.cat/mergo"
	"github.com/caarlos0/env/v11"

	"github.com/dmitrymomot/changenotify/core/config"
	"github.com/dmitrymomot/changenotify/core/logger"
)

// Credentials identify the mail sender and the internal recipient of record.
// An unresolved value is an empty string; the mail transport fails at send
// time instead.
type Credentials struct {
	SenderUser     string
	SenderPass     string
	AdminRecipient string
}

// Missing lists the names of unresolved fields.
func (c Credentials) Missing() []string {
	var out []string
	if c.SenderUser == "" {
		out = append(out, "sender_user")
	}
	if c.SenderPass == "" {
		out = append(out, "sender_pass")
	}
	if c.AdminRecipient == "" {
		out = append(out, "admin_recipient")
	}
	return out
}

func (c Credentials) trimmed() Credentials {
	return Credentials{
		SenderUser:     strings.TrimSpace(c.SenderUser),
		SenderPass:     strings.TrimSpace(c.SenderPass),
		AdminRecipient: strings.TrimSpace(c.AdminRecipient),
	}
}

// CredentialSource is one layer of the fallback chain.
type CredentialSource struct {
	Name string
	Load func() (Credentials, error)
}

// ExplicitSource wraps values passed at runtime, e.g. command-line flags.
func ExplicitSource(c Credentials) CredentialSource {
	return CredentialSource{Name: "explicit", Load: func() (Credentials, error) { return c, nil }}
}

type envCredentials struct {
	User  string `env:"EMAIL_USER"`
	Pass  string `env:"EMAIL_PASS"`
	Admin string `env:"ADMIN_EMAIL"`
}

// EnvSource reads EMAIL_USER, EMAIL_PASS and ADMIN_EMAIL. A nil environ map
// means the process environment.
func EnvSource(environ map[string]string) CredentialSource {
	return CredentialSource{Name: "env", Load: func() (Credentials, error) {
		if environ == nil {
			environ = env.ToMap(os.Environ())
		}
		var ec envCredentials
		if err := config.Parse(&ec, environ); err != nil {
			return Credentials{}, err
		}
		return Credentials{SenderUser: ec.User, SenderPass: ec.Pass, AdminRecipient: ec.Admin}, nil
	}}
}

// RuntimeConfig is the YAML runtime configuration file. The email namespace is
// current; gmail is the legacy layout still found on older deployments.
type RuntimeConfig struct {
	Email struct {
		User  string `yaml:"user"`
		Pass  string `yaml:"pass"`
		Admin string `yaml:"admin"`
	} `yaml:"email"`
	Gmail struct {
		Email    string `yaml:"email"`
		Password string `yaml:"password"`
		Admin    string `yaml:"admin"`
	} `yaml:"gmail"`
}

// PrimarySource reads the email.* namespace.
func PrimarySource(rc RuntimeConfig) CredentialSource {
	return CredentialSource{Name: "config.email", Load: func() (Credentials, error) {
		return Credentials{SenderUser: rc.Email.User, SenderPass: rc.Email.Pass, AdminRecipient: rc.Email.Admin}, nil
	}}
}

// LegacySource reads the gmail.* namespace.
func LegacySource(rc RuntimeConfig) CredentialSource {
	return CredentialSource{Name: "config.gmail", Load: func() (Credentials, error) {
		return Credentials{SenderUser: rc.Gmail.Email, SenderPass: rc.Gmail.Password, AdminRecipient: rc.Gmail.Admin}, nil
	}}
}

// ResolveCredentials walks sources in priority order; for every field the
// first non-empty value wins. It never fails: a source that errors is logged
// and skipped, and unresolved fields stay empty with a single warning.
// Call it once at startup and inject the result.
func ResolveCredentials(log *slog.Logger, sources ...CredentialSource) Credentials {
	if log == nil {
		log = logger.Discard()
	}

	var (
		resolved Credentials
		origin   = map[string]string{}
	)
	for _, src := range sources {
		c, err := src.Load()
		if err != nil {
			log.Warn("credential source failed", slog.String("source", src.Name), logger.Error(err))
			continue
		}

		before := resolved.Missing()
		if err := mergo.Merge(&resolved, c.trimmed()); err != nil {
			log.Warn("credential source ignored", slog.String("source", src.Name), logger.Error(err))
			continue
		}
		for _, field := range before {
			if !slices.Contains(resolved.Missing(), field) {
				origin[field] = src.Name
			}
		}
	}

	if missing := resolved.Missing(); len(missing) > 0 {
		log.Warn("mail credentials incomplete, sends will fail until restart with credentials",
			slog.Any("missing", missing),
			slog.String("hint", "set EMAIL_USER / EMAIL_PASS / ADMIN_EMAIL or email.user / email.pass / email.admin"))
	} else {
		log.Info("mail credentials loaded",
			slog.String("sender", resolved.SenderUser),
			slog.Any("origin", origin))
	}
	return resolved
}
