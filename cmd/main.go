package main

import (
	"context"
	"log"
	"time"

	tele "gopkg.in/telebot.v3"

	"github.com/clavicordio/bodymass-telegram-bot/internal/bot"
	"github.com/clavicordio/bodymass-telegram-bot/internal/config"
	"github.com/clavicordio/bodymass-telegram-bot/internal/logger"
	"github.com/clavicordio/bodymass-telegram-bot/internal/metrics"
	"github.com/clavicordio/bodymass-telegram-bot/internal/storage"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("error loading configuration: %v", err)
	}
	appLogger := logger.New(cfg.LogLevel)

	if err := storage.RunMigrations(cfg.DatabaseURL); err != nil {
		appLogger.Fatalf("unable to migrate database: %v", err)
	}

	storageInstance, err := storage.NewStorage(context.Background(), cfg.DatabaseURL)
	if err != nil {
		appLogger.Fatalf("unable to connect to database: %v", err)
	}
	defer storageInstance.Close()

	botSettings := tele.Settings{
		Token:  cfg.BotToken,
		Poller: &tele.LongPoller{Timeout: 10 * time.Second},
	}
	botAPI, err := tele.NewBot(botSettings)
	if err != nil {
		appLogger.Fatalf("error creating bot instance: %v", err)
	}

	if cfg.MetricsAddr != "" {
		go func() {
			if err := metrics.Serve(cfg.MetricsAddr); err != nil {
				appLogger.WithError(err).Error("metrics listener stopped")
			}
		}()
	}

	bot.RegisterHandlers(botAPI, storageInstance, storageInstance, appLogger, cfg)
	appLogger.Info("bot start")
	botAPI.Start()
}
