// Package main contains the entrypoint for the catalog bot application.
package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	tgbot "github.com/go-telegram/bot"

	"github.com/edgard/cogisbot/internal/bot"
	"github.com/edgard/cogisbot/internal/bot/handlers"
	"github.com/edgard/cogisbot/internal/bot/tasks"
	"github.com/edgard/cogisbot/internal/catalog"
	"github.com/edgard/cogisbot/internal/config"
	"github.com/edgard/cogisbot/internal/conversation"
	"github.com/edgard/cogisbot/internal/database"
	"github.com/edgard/cogisbot/internal/geodata"
	"github.com/edgard/cogisbot/internal/logger"
	"github.com/edgard/cogisbot/internal/search"
	"github.com/edgard/cogisbot/internal/settings"
	"github.com/edgard/cogisbot/internal/telegram"

	_ "modernc.org/sqlite"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	exitCode := run(ctx)
	stop()
	os.Exit(exitCode)
}

// run initializes and starts all application components (config, logger, db,
// settings, catalog, clients, bot, scheduler), handles graceful shutdown,
// and returns an exit code (0 for success, 1 for failure).
func run(ctx context.Context) int {
	configPath := flag.String("config", "./config.yaml", "Path to configuration file")
	flag.Parse()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		slog.Error("Failed to load configuration", "path", *configPath, "error", err)
		return 1
	}

	log := logger.NewLogger(cfg.Logger.Level, cfg.Logger.JSON)
	slog.SetDefault(log)
	log.Info("Logger initialized", "level", cfg.Logger.Level, "json", cfg.Logger.JSON)

	db, err := database.NewDB(cfg.Database.Path)
	if err != nil {
		log.Error("Failed to connect to database", "path", cfg.Database.Path, "error", err)
		return 1
	}
	defer database.CloseDB(db)
	store := database.NewStore(db, log)

	settingsStore, err := settings.Load(log, cfg.Settings.Path)
	if err != nil {
		log.Error("Failed to load settings", "path", cfg.Settings.Path, "error", err)
		return 1
	}

	catalogService := catalog.NewService(log, &http.Client{Timeout: cfg.Lookup.Timeout}, func() string {
		return settingsStore.Get().CatalogURL
	})

	geocoder := geodata.NewGeocoder(log, cfg.Lookup.Timeout)
	cadastre := geodata.NewCadastre(log, cfg.Lookup.Timeout)
	aggregator := search.NewAggregator(log, catalogService, geocoder, cadastre, settingsStore, cfg.Lookup.Timeout)

	hDeps := handlers.HandlerDeps{
		Logger:     log,
		Config:     cfg,
		Store:      store,
		Settings:   settingsStore,
		Catalog:    catalogService,
		Aggregator: aggregator,
		Inline:     search.NewInlineBuilder(catalogService, settingsStore),
		States:     conversation.NewManager(),
	}
	tDeps := tasks.TaskDeps{
		Logger:  log,
		Catalog: catalogService,
	}

	botOpts := []tgbot.Option{
		tgbot.WithMiddlewares(logger.Middleware(log)),
		tgbot.WithDefaultHandler(handlers.NewUpdateHandler(hDeps)),
	}
	tg, err := telegram.NewTelegramBot(cfg.Telegram.Token, log, botOpts...)
	if err != nil {
		log.Error("Failed to create Telegram bot", "error", err)
		return 1
	}

	cfg.Telegram.BotInfo, err = tg.GetMe(ctx)
	if err != nil {
		log.Error("Failed to get bot info", "error", err)
		return 1
	}
	log.Info("Retrieved bot info", "bot_id", cfg.Telegram.BotInfo.ID, "bot_username", cfg.Telegram.BotInfo.Username)

	if err := telegram.RegisterHandlers(tg, log, handlers.RegisterAllCommands(hDeps)); err != nil {
		log.Error("Failed to register Telegram handlers", "error", err)
		return 1
	}
	if err := telegram.SetupCommands(ctx, tg, handlers.CommandTable(hDeps)); err != nil {
		log.Error("Failed to set bot commands", "error", err)
		return 1
	}

	sched := bot.NewScheduler(log, &cfg.Scheduler, tasks.RegisterAllTasks(tDeps))
	app := bot.NewBot(log, cfg, db, store, settingsStore, catalogService, tg, sched)

	log.Info("Starting bot...")
	runErr := app.Run(ctx)
	log.Info("Bot run loop finished. Initiating shutdown...")

	if runErr != nil && !errors.Is(runErr, context.Canceled) {
		log.Error("Bot stopped due to error", "error", runErr)
		time.Sleep(time.Second)
		return 1
	}

	log.Info("Bot stopped gracefully.")
	time.Sleep(time.Second)
	return 0
}
