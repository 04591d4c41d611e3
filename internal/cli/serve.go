package cli

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/dmitrymomot/changenotify/accounts"
	"github.com/dmitrymomot/changenotify/core/config"
	"github.com/dmitrymomot/changenotify/core/event"
	"github.com/dmitrymomot/changenotify/core/health"
	"github.com/dmitrymomot/changenotify/core/logger"
	"github.com/dmitrymomot/changenotify/core/server"
	"github.com/dmitrymomot/changenotify/integration/database/mongo"
	"github.com/dmitrymomot/changenotify/integration/database/redis"
	"github.com/dmitrymomot/changenotify/notify"
)

func newServeCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Watch the change feed and send notifications",
		Long: `Serve connects to MongoDB, watches the project request collection and
emails the configured recipients for every qualifying change.

It also exposes:
  GET  /health/live
  GET  /health/ready
  POST /v1/accounts/grant-admin`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return serve(ctx, cmd, flags)
		},
	}
}

func serve(ctx context.Context, cmd *cobra.Command, flags *globalFlags) error {
	app, log, err := loadApp(flags)
	if err != nil {
		return err
	}

	creds, err := resolveCredentials(cmd, flags, log)
	if err != nil {
		return err
	}
	renderer, err := newRenderer(creds)
	if err != nil {
		return err
	}
	sender, err := newSender(app, creds)
	if err != nil {
		return err
	}

	var (
		mongoCfg  mongo.Config
		feedCfg   mongo.FeedConfig
		serverCfg server.Config
		accCfg    accounts.Config
	)
	for _, load := range []func() error{
		func() error { return config.Load(&mongoCfg) },
		func() error { return config.Load(&feedCfg) },
		func() error { return config.Load(&serverCfg) },
		func() error { return config.Load(&accCfg) },
	} {
		if err := load(); err != nil {
			return err
		}
	}

	client, err := mongo.New(ctx, mongoCfg)
	if err != nil {
		return err
	}
	defer func() { _ = client.Disconnect(context.WithoutCancel(ctx)) }()
	db := client.Database(mongoCfg.Database)

	checks := []func(context.Context) error{mongo.Healthcheck(client)}

	var tokens mongo.ResumeTokenStore = mongo.NopTokenStore{}
	if app.Checkpoint == "redis" {
		var redisCfg redis.Config
		if err := config.Load(&redisCfg); err != nil {
			return err
		}
		rdb, err := redis.Connect(ctx, redisCfg)
		if err != nil {
			return err
		}
		defer func() { _ = rdb.Close() }()
		tokens = redis.NewTokenStore(rdb, redisCfg.TokenTTL)
		checks = append(checks, redis.Healthcheck(rdb))
	}

	transport := event.NewChannelTransport(app.EventBuffer)
	defer func() { _ = transport.Close() }()

	svc := notify.NewService(renderer, notify.NewDispatcher(sender, log), log)
	processor := event.NewProcessor(
		event.WithEventSource(transport),
		event.WithHandler(event.NewHandlerFunc[notify.ChangeEvent](svc.Handle)),
		event.WithMaxConcurrentHandlers(app.MaxConcurrentHandlers),
		event.WithShutdownTimeout(app.ShutdownTimeout),
		event.WithProcessorLogger(log.With(logger.Component("processor"))),
	)
	checks = append(checks, processor.Healthcheck)

	feed := mongo.NewFeed(db, event.NewPublisher(transport), feedCfg,
		mongo.WithTokenStore(tokens),
		mongo.WithFeedLogger(log.With(logger.Component("feed"))),
	)

	auth, err := accounts.ParseAdminTokens(accCfg.AdminTokens)
	if err != nil {
		return err
	}
	admins := accounts.NewService(accounts.NewMongoRoleStore(db, accCfg.Collection), log)

	srv, err := server.NewFromConfig(serverCfg, server.WithLogger(log.With(logger.Component("http"))))
	if err != nil {
		return err
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(processor.Run(ctx))
	g.Go(feed.Run(ctx))
	g.Go(srv.Run(ctx, routes(log, checks, accounts.GrantAdminHandler(admins, auth, log))))

	log.InfoContext(ctx, "notifier started",
		slog.String("transport", app.MailTransport),
		slog.String("collection", feedCfg.Collection),
		slog.String("checkpoint", app.Checkpoint))

	if err := g.Wait(); err != nil {
		return fmt.Errorf("notifier stopped: %w", err)
	}
	log.Info("notifier stopped")
	return nil
}

func routes(log *slog.Logger, checks []func(context.Context) error, grantAdmin http.Handler) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /health/live", health.Liveness)
	mux.Handle("GET /health/ready", health.Readiness(log, checks...))
	mux.Handle("POST /v1/accounts/grant-admin", grantAdmin)
	return mux
}
