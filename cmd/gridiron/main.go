package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bytedance/sonic"
	"github.com/cockroachdb/errors"
	"github.com/joho/godotenv"
	"github.com/jonboulle/clockwork"
	"github.com/omarshaarawi/gridiron/internal/api/backend"
	"github.com/omarshaarawi/gridiron/internal/bot"
	"github.com/omarshaarawi/gridiron/internal/config"
	"github.com/omarshaarawi/gridiron/internal/fallback"
	"github.com/omarshaarawi/gridiron/internal/platform/logging"
	"github.com/omarshaarawi/gridiron/internal/registry"
	"github.com/omarshaarawi/gridiron/internal/repository/memory"
	"github.com/omarshaarawi/gridiron/internal/resolver"
	"github.com/omarshaarawi/gridiron/internal/scheduler"
	"github.com/omarshaarawi/gridiron/internal/season"
	"github.com/omarshaarawi/gridiron/internal/service"
)

func main() {
	if err := run(); err != nil {
		logging.Default().Error("Error running application", "error", err)
		os.Exit(1)
	}
}

func run() error {
	if err := godotenv.Load(); err != nil {
		logging.Default().Warn("No .env file loaded", "error", err)
	}

	cfg, err := config.New()
	if err != nil {
		return err
	}

	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return errors.Wrap(err, "invalid LOG_LEVEL")
	}
	logger := logging.NewJSON(level)
	logging.SetDefault(logger)
	defer func() { _ = logger.Sync() }()

	location, err := cfg.Scheduler.Location()
	if err != nil {
		return err
	}

	dataset, err := fallback.Load()
	if err != nil {
		return err
	}

	client := backend.NewClient(cfg.Backend, logger)
	reg := registry.New(registry.Live{
		Scoreboard: cfg.Backend.LiveScoreboard,
		Rankings:   cfg.Backend.LiveRankings,
	})
	res := resolver.New(reg, client, dataset, logger, resolver.WithLocation(location))
	clock := clockwork.NewRealClock()

	footballService := service.NewFootballService(
		res,
		reg,
		season.NewResolver(clock),
		client,
		memory.NewRepository(),
		location,
		logger,
	)

	telegramBot, err := bot.NewTelegramBot(cfg.TelegramBot.Token, cfg.TelegramBot.ChatID, footballService, logger)
	if err != nil {
		return err
	}

	sched, err := scheduler.NewScheduler(cfg.Scheduler, footballService, telegramBot.SendMessage, clock, logger)
	if err != nil {
		return err
	}

	if err := sched.Start(); err != nil {
		return err
	}
	defer func() {
		err := sched.Stop()
		if err != nil {
			logger.Error("Error stopping scheduler", "error", err)
		}
	}()

	logger.Info("Starting gridiron",
		"backend", client.BaseURL(),
		"live_scoreboard", cfg.Backend.LiveScoreboard,
		"live_rankings", cfg.Backend.LiveRankings,
		"categories", len(reg.Categories()),
	)

	mux := http.NewServeMux()
	mux.HandleFunc("/", healthCheckHandler(client))
	srv := &http.Server{Addr: cfg.HealthAddr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Error starting HTTP server", "error", err)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := telegramBot.Start(ctx); err != nil {
			logger.Error("Error running telegram bot", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down gracefully...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// healthCheckHandler reports the process as up and includes the backend's
// own health when it answers.
func healthCheckHandler(client *backend.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body := map[string]any{"status": "ok"}
		if h, err := client.Health(r.Context()); err == nil {
			body["backend"] = h
		} else {
			body["backend"] = map[string]string{"status": "unavailable"}
		}

		out, err := sonic.Marshal(body)
		if err != nil {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(out)
	}
}
