// Package main contains the entrypoint for the A1 Zero Telegram bot.
package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	tgbot "github.com/go-telegram/bot"

	"github.com/edgard/a1zero/internal/ai"
	"github.com/edgard/a1zero/internal/bot"
	"github.com/edgard/a1zero/internal/bot/handlers"
	"github.com/edgard/a1zero/internal/bot/tasks"
	"github.com/edgard/a1zero/internal/config"
	"github.com/edgard/a1zero/internal/database"
	"github.com/edgard/a1zero/internal/dispatch"
	"github.com/edgard/a1zero/internal/logger"
	"github.com/edgard/a1zero/internal/session"
	"github.com/edgard/a1zero/internal/telegram"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	exitCode := run(ctx)
	stop()
	os.Exit(exitCode)
}

// run wires every component (config, logger, usage db, model registry, AI
// client, dispatcher, Telegram bot, scheduler), blocks until shutdown and
// returns the process exit code.
func run(ctx context.Context) int {
	configPath := flag.String("config", "./config.yaml", "Path to configuration file")
	flag.Parse()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		slog.Error("Failed to load configuration", "path", *configPath, "error", err)
		return 1
	}

	log := logger.NewLogger(cfg.Logger.Level, cfg.Logger.JSON)
	log.Info("Logger initialized", "level", cfg.Logger.Level, "json", cfg.Logger.JSON)

	// Usage recording is optional. Both interfaces stay nil when it is off.
	var (
		usage     dispatch.UsageStore
		taskStore tasks.Store
	)
	if cfg.Database.Path != "" {
		db, err := database.NewDB(cfg.Database.Path, log)
		if err != nil {
			log.Error("Failed to connect to database", "path", cfg.Database.Path, "error", err)
			return 1
		}
		defer database.CloseDB(db, log)

		store := database.NewStore(db, log)
		usage, taskStore = store, store
	} else {
		log.Info("Database path is empty, usage recording disabled")
	}

	registry, err := ai.NewRegistry(cfg.Models)
	if err != nil {
		log.Error("Failed to build model registry", "error", err)
		return 1
	}

	aiClient, err := ai.NewClient(ctx, cfg, registry, log, ai.Options{})
	if err != nil {
		log.Error("Failed to initialize AI client", "error", err)
		return 1
	}

	sessions := session.NewMemoryStore(registry.Default().Name)

	// The dispatcher needs the transport, which needs the bot, whose default
	// handler needs the dispatcher. The handler reaches it through hDeps.
	hDeps := handlers.HandlerDeps{
		Logger: log,
		Config: cfg,
	}
	dispatcherRef := &lateDispatcher{}
	hDeps.Dispatcher = dispatcherRef

	botOpts := []tgbot.Option{
		tgbot.WithMiddlewares(logger.Middleware(log)),
		tgbot.WithDefaultHandler(handlers.NewDefaultHandler(hDeps)),
	}
	tg, err := telegram.NewTelegramBot(cfg.Telegram.Token, log, botOpts...)
	if err != nil {
		log.Error("Failed to create Telegram bot", "error", err)
		return 1
	}

	me, err := tg.GetMe(ctx)
	if err != nil {
		log.Error("Failed to get bot info", "error", err)
		return 1
	}
	cfg.Telegram.BotInfo = config.BotInfo{ID: me.ID, Username: me.Username, FirstName: me.FirstName}
	log.Info("Retrieved bot info", "bot_id", me.ID, "bot_username", me.Username)

	dispatcherRef.Dispatcher = dispatch.New(dispatch.Deps{
		Logger:    log,
		Config:    cfg,
		Sessions:  sessions,
		Registry:  registry,
		AI:        aiClient,
		Transport: telegram.NewTransport(tg, log),
		Usage:     usage,
	})

	if err := telegram.RegisterHandlers(tg, log, handlers.RegisterAllHandlers(hDeps)); err != nil {
		log.Error("Failed to register Telegram handlers", "error", err)
		return 1
	}
	if err := telegram.SetCommands(ctx, tg, log, handlers.BotCommands()); err != nil {
		// The command menu is cosmetic.
		log.Warn("Failed to publish bot commands", "error", err)
	}

	sched, err := bot.NewScheduler(log, &cfg.Scheduler, tasks.RegisterAllTasks(tasks.TaskDeps{
		Logger: log,
		Store:  taskStore,
		Config: cfg,
	}))
	if err != nil {
		log.Error("Failed to create scheduler", "error", err)
		return 1
	}
	app := bot.NewBot(log, tg, sched)

	log.Info("Starting bot...", "default_model", registry.Default().Name, "models", registry.Names())
	runErr := app.Run(ctx)
	log.Info("Bot run loop finished. Initiating shutdown...")

	if runErr != nil && !errors.Is(runErr, context.Canceled) {
		log.Error("Bot stopped due to error", "error", runErr)
		// Allow logs to flush before exiting on error
		time.Sleep(time.Second)
		return 1
	}

	log.Info("Bot stopped gracefully.")
	return 0
}

// lateDispatcher forwards to a dispatcher assigned after the bot is built.
// Updates are only received once the bot starts, after the assignment.
type lateDispatcher struct {
	*dispatch.Dispatcher
}
