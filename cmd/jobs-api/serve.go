package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/nats-io/nats.go"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"jobs-api/config"
	"jobs-api/jobs"
	"jobs-api/jobs/application"
	"jobs-api/jobs/challenge"
	"jobs-api/jobs/domain"
	"jobs-api/jobs/infra"
	"jobs-api/logging"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server (default)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context(), *configPath)
		},
	}
}

func runServe(parent context.Context, configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if err := logging.Setup(cfg.LogLevel, cfg.LogFormat, nil); err != nil {
		return err
	}
	logger := logging.GetLogger("serve")

	ctx, cancel := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	a, err := newApp(ctx, cfg)
	if err != nil {
		return err
	}
	defer a.close()

	logger.Info().
		Str("addr", cfg.ListenAddr()).
		Str("env", cfg.AppEnv).
		Str("notifier", cfg.Notifier).
		Int("notify_concurrency", cfg.NotifyConcurrency).
		Float64("notify_rps", cfg.NotifyRPS).
		Int("notify_burst", cfg.NotifyBurst).
		Dur("notify_timeout", cfg.NotifyTimeout).
		Bool("stats_enabled", cfg.StatsEnabled).
		Bool("metrics_enabled", cfg.MetricsEnabled).
		Msg("jobs-api listening")

	return a.run(ctx)
}

// app junta as peças montadas a partir da Config.
type app struct {
	cfg        *config.Config
	echo       *echo.Echo
	dispatcher *application.Dispatcher
	pacers     *infra.PacerStore
	session    *infra.MemoryStatsStore
	log        zerolog.Logger
	closers    []func()
}

func newApp(ctx context.Context, cfg *config.Config) (*app, error) {
	a := &app{
		cfg:     cfg,
		session: infra.NewMemoryStatsStore(),
		log:     logging.GetLogger("app"),
	}

	notifier, err := a.buildNotifier()
	if err != nil {
		a.close()
		return nil, err
	}

	var (
		stats   = infra.MultiStats{a.session}
		checks  []application.HealthCheck
		metrics http.Handler
	)

	if cfg.MetricsEnabled {
		reg := prometheus.NewRegistry()
		reg.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
		prom, err := infra.NewPromStatsStore(reg)
		if err != nil {
			a.close()
			return nil, fmt.Errorf("register metrics: %w", err)
		}
		stats = append(stats, prom)
		metrics = promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg})
	}

	if cfg.StatsEnabled {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.StatsRedisAddr,
			Password: cfg.StatsRedisPassword,
			DB:       cfg.StatsRedisDB,
		})
		a.closers = append(a.closers, func() { _ = rdb.Close() })

		redisStats := infra.NewRedisStatsStore(rdb,
			infra.WithStatsPrefix(cfg.StatsPrefix),
			infra.WithStatsTTL(cfg.StatsTTL),
			infra.WithStatsBucket(cfg.StatsBucket),
		)

		pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
		err := redisStats.Ping(pingCtx)
		cancel()
		if err != nil {
			a.close()
			return nil, fmt.Errorf("redis stats ping: %w", err)
		}

		stats = append(stats, redisStats)
		checks = append(checks, application.HealthCheck{Name: "redis", Critical: true, Check: redisStats.Ping})
	}

	a.pacers = infra.NewPacerStore(cfg.NotifyRPS, cfg.NotifyBurst)

	dispatchLog := logging.GetLogger("dispatcher")
	a.dispatcher = application.NewDispatcher(notifier,
		application.WithSlots(infra.NewChanPool(cfg.NotifyConcurrency), 0),
		application.WithPacing(a.pacers),
		application.WithDispatchStats(stats),
		application.WithSendTimeout(cfg.NotifyTimeout),
		application.WithDispatchLogger(&dispatchLog),
	)

	applyLog := logging.GetLogger("apply")
	svc := application.ApplyService{
		Registry:   application.NewRegistry(challenge.Defaults(time.Now)...),
		Dispatcher: a.dispatcher,
		Stats:      stats,
		Log:        &applyLog,
	}

	httpLog := logging.GetLogger("http")
	a.echo = jobs.NewServer(jobs.ServerOptions{
		Service:   svc,
		Health:    application.NewHealthService(checks...),
		Metrics:   metrics,
		BodyLimit: cfg.BodyLimit,
		Logger:    &httpLog,
	})
	return a, nil
}

func (a *app) buildNotifier() (domain.Notifier, error) {
	switch a.cfg.Notifier {
	case config.NotifierSlack:
		opts := []infra.SlackOption{infra.WithSlackLocation(a.cfg.Location())}
		if a.cfg.SlackAPIURL != "" {
			// o client do slack concatena o método direto na URL
			opts = append(opts, infra.WithSlackAPIURL(strings.TrimSuffix(a.cfg.SlackAPIURL, "/")+"/"))
		}
		return infra.NewSlackNotifier(a.cfg.SlackBotToken, a.cfg.SlackChannelID, opts...), nil

	case config.NotifierNATS:
		nc, err := nats.Connect(a.cfg.NATSURL,
			nats.Name("jobs-api"),
			nats.MaxReconnects(-1),
			nats.ReconnectWait(2*time.Second),
		)
		if err != nil {
			return nil, fmt.Errorf("connect to NATS: %w", err)
		}
		a.closers = append(a.closers, func() { _ = nc.Drain() })
		return infra.NewNATSNotifier(nc, a.cfg.NATSSubject), nil

	case config.NotifierLog:
		return infra.NewLogNotifier(logging.GetLogger("notifier")), nil
	}
	return nil, fmt.Errorf("unknown notifier %q", a.cfg.Notifier)
}

// run serve até ctx encerrar e então drena HTTP e notificações em voo.
func (a *app) run(ctx context.Context) error {
	a.pacers.StartJanitor(ctx)

	srv := &http.Server{
		Addr:              a.cfg.ListenAddr(),
		Handler:           a.echo,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       90 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	start := time.Now()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		a.log.Warn().Err(err).Msg("http shutdown")
	}
	if err := a.dispatcher.Close(shutdownCtx); err != nil {
		a.log.Warn().Err(err).Msg("pending notifications dropped")
	}
	logging.LogDuration(a.log, start, "shutdown")
	a.log.Info().Interface("totals", a.session.Total()).Msg("session stats")
	return nil
}

func (a *app) close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
	a.closers = nil
}
