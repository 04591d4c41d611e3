package cli

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"dario.cat/mergo"
	"github.com/caarlos0/env/v11"
	"github.com/spf13/cobra"

	"github.com/dmitrymomot/changenotify/core/config"
	"github.com/dmitrymomot/changenotify/core/email"
	"github.com/dmitrymomot/changenotify/core/logger"
	"github.com/dmitrymomot/changenotify/integration/email/postmark"
	"github.com/dmitrymomot/changenotify/integration/email/smtp"
	"github.com/dmitrymomot/changenotify/notify"
)

type appConfig struct {
	AppName               string        `env:"APP_NAME" envDefault:"notifier"`
	LogLevel              string        `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat             string        `env:"LOG_FORMAT" envDefault:"json"`
	MailTransport         string        `env:"MAIL_TRANSPORT" envDefault:"smtp"` // smtp, postmark or dev
	DevMailDir            string        `env:"DEV_MAIL_DIR" envDefault:"./tmp/mail"`
	Checkpoint            string        `env:"FEED_CHECKPOINT" envDefault:"redis"` // redis or none
	EventBuffer           int           `env:"EVENT_BUFFER" envDefault:"64"`
	MaxConcurrentHandlers int           `env:"MAX_CONCURRENT_HANDLERS" envDefault:"16"`
	ShutdownTimeout       time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"30s"`
}

func loadApp(flags *globalFlags) (appConfig, *slog.Logger, error) {
	var cfg appConfig
	if err := config.Load(&cfg); err != nil {
		return cfg, nil, err
	}
	if flags.logLevel != "" {
		cfg.LogLevel = flags.logLevel
	}
	if flags.logFormat != "" {
		cfg.LogFormat = flags.logFormat
	}

	log := logger.New(
		logger.WithLevel(cfg.LogLevel),
		logger.WithFormat(cfg.LogFormat),
		logger.WithAttr(slog.String("app", cfg.AppName)),
	)
	return cfg, log, nil
}

// credentialSources lists the credential chain in priority order. The runtime
// file is optional unless --config was given explicitly.
func credentialSources(cmd *cobra.Command, flags *globalFlags) ([]notify.CredentialSource, error) {
	var rc notify.RuntimeConfig
	if err := config.LoadFile(flags.configFile, &rc, !cmd.Flags().Changed("config")); err != nil {
		return nil, err
	}

	return []notify.CredentialSource{
		notify.ExplicitSource(notify.Credentials{
			SenderUser:     flags.emailUser,
			SenderPass:     flags.emailPass,
			AdminRecipient: flags.adminEmail,
		}),
		notify.EnvSource(env.ToMap(os.Environ())),
		notify.PrimarySource(rc),
		notify.LegacySource(rc),
	}, nil
}

func resolveCredentials(cmd *cobra.Command, flags *globalFlags, log *slog.Logger) (notify.Credentials, error) {
	sources, err := credentialSources(cmd, flags)
	if err != nil {
		return notify.Credentials{}, err
	}
	return notify.ResolveCredentials(log, sources...), nil
}

func newRenderer(creds notify.Credentials) (*notify.Renderer, error) {
	var cfg notify.RendererConfig
	if err := config.Load(&cfg); err != nil {
		return nil, err
	}
	return notify.NewRenderer(cfg, creds)
}

// newSender builds the mail transport. Resolved credentials take precedence
// over the transport's own SMTP_* settings.
func newSender(cfg appConfig, creds notify.Credentials) (email.EmailSender, error) {
	switch cfg.MailTransport {
	case "smtp":
		var sc smtp.Config
		if err := config.Load(&sc); err != nil {
			return nil, err
		}
		resolved := smtp.Config{Username: creds.SenderUser, Password: creds.SenderPass}
		if err := mergo.Merge(&sc, resolved, mergo.WithOverride); err != nil {
			return nil, fmt.Errorf("merge smtp credentials: %w", err)
		}
		return smtp.New(sc)
	case "postmark":
		var pc postmark.Config
		if err := config.Load(&pc); err != nil {
			return nil, err
		}
		return postmark.New(pc)
	case "dev":
		return email.NewDevSender(cfg.DevMailDir), nil
	default:
		return nil, fmt.Errorf("%w: unknown MAIL_TRANSPORT %q", email.ErrInvalidConfig, cfg.MailTransport)
	}
}
