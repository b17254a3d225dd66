package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"attendance_notifier/internal/app"
	"attendance_notifier/internal/domain/notification"
	"attendance_notifier/internal/infra/config"
	idb "attendance_notifier/internal/infra/database"
	"attendance_notifier/internal/infra/firebase"
	"attendance_notifier/internal/infra/firestoredb"
	"attendance_notifier/internal/infra/httpapi"
	"attendance_notifier/internal/infra/logger"
	"attendance_notifier/internal/infra/push"
	"attendance_notifier/internal/infra/telegram"

	"github.com/gofiber/fiber/v3"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("FATAL: Could not load application configuration: %v", err)
	}

	logger.Init(cfg)
	mainLogger := logger.For("main")
	mainLogger.Infof("Configuration loaded. Environment: %s, token store: %s, push gateway: %s", cfg.Environment, cfg.TokenStore, cfg.PushGateway)

	ctx := context.Background()
	var closers []func() error

	// One-time Firebase initialization, shared by every invocation.
	var fb *firebase.Clients
	if cfg.UsesFirebase() {
		fb, err = firebase.Bootstrap(ctx, firebase.Config{
			ProjectID:       cfg.FirebaseProjectID,
			CredentialsPath: cfg.FirebaseCredentials,
		}, firebase.Services{
			Firestore: cfg.TokenStore == config.TokenStoreFirestore,
			Messaging: cfg.PushGateway == config.GatewayFCM,
		})
		if err != nil {
			mainLogger.Fatalf("Could not initialize Firebase: %v", err)
		}
		closers = append(closers, fb.Close)
		mainLogger.Info("Firebase initialized.")
	}

	var tokenStore notification.TokenStore
	switch cfg.TokenStore {
	case config.TokenStorePostgres:
		db, err := idb.NewPostgresConnection(ctx, cfg.DatabaseURL)
		if err != nil {
			mainLogger.Fatalf("Could not connect to database: %v", err)
		}
		closers = append(closers, db.Close)
		tokenStore = idb.NewPostgresTokenRepository(db, cfg.RecipientTokenKey())
	default:
		tokenStore, err = firestoredb.NewTokenRepository(fb.Firestore, cfg.RecipientTokenPath)
		if err != nil {
			mainLogger.Fatalf("Could not create token repository: %v", err)
		}
	}
	mainLogger.Infof("Token store initialized (%s).", cfg.TokenStore)

	var sender notification.Sender
	switch cfg.PushGateway {
	case config.GatewayTelegram:
		bot, err := telegram.NewOfflineBot(cfg.TelegramToken)
		if err != nil {
			mainLogger.Fatalf("Could not create Telegram bot: %v", err)
		}
		sender = telegram.NewTelebotAdapter(bot)
	case config.GatewayLog:
		sender = push.NewLogSender(logger.For("log_sender"))
	default:
		sender = push.NewFCMSender(fb.Messaging)
	}
	mainLogger.Infof("Push gateway initialized (%s).", cfg.PushGateway)

	notifier := app.NewAttendanceNotifier(tokenStore, sender, logger.For("attendance_notifier"))

	server := fiber.New(fiber.Config{AppName: "attendance-notifier"})
	httpapi.NewTriggerHandler(notifier, logger.For("trigger")).Register(server)

	go func() {
		mainLogger.Infof("Listening on port %s", cfg.Port)
		if err := server.Listen(fmt.Sprintf("0.0.0.0:%s", cfg.Port), fiber.ListenConfig{DisableStartupMessage: true}); err != nil {
			mainLogger.Fatalf("Error starting server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	mainLogger.Info("Shutting down...")
	if err := server.ShutdownWithTimeout(shutdownTimeout); err != nil {
		mainLogger.WithError(err).Warn("Server did not shut down cleanly")
	}
	for _, closeFn := range closers {
		if err := closeFn(); err != nil {
			mainLogger.WithError(err).Warn("Error releasing resource")
		}
	}
	mainLogger.Info("Shut down gracefully.")
}
