package main

import (
	"log"

	"github.com/joho/godotenv"

	"shopify-cost-editor/internal/adapters/shopify"
	"shopify-cost-editor/internal/adapters/store"
	"shopify-cost-editor/internal/app/usecases"
	"shopify-cost-editor/internal/auth"
	"shopify-cost-editor/internal/config"
	"shopify-cost-editor/internal/handlers"
	"shopify-cost-editor/internal/infra/db"
	"shopify-cost-editor/internal/logging"
	"shopify-cost-editor/internal/server"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger := logging.NewLogger(logging.NewNotifier(cfg.TelegramBot))

	gormDB, err := db.New(cfg.Mysql)
	if err != nil {
		log.Fatalf("failed to connect to mysql: %v", err)
	}
	if err := db.Migrate(gormDB); err != nil {
		log.Fatalf("failed to run migrations: %v", err)
	}

	shops := store.NewShopStore(gormDB)
	states := store.NewOAuthStateStore(gormDB)
	audits := store.NewAuditStore(gormDB, shops)

	client := shopify.NewClient(cfg.Shopify, nil, shops, logger)

	updates := usecases.NewUpdateChanges(client, client, client, audits, logger)

	oauth := auth.NewOAuthService(cfg.Shopify, shops, states, logger)
	sessions := auth.NewSessionManager(cfg.Session.Secret, cfg.Session.TTL)

	e := server.New(sessions, server.Handlers{
		Auth:     handlers.NewAuthHandler(oauth, sessions, logger),
		Products: handlers.NewProductsHandler(client),
		Changes:  handlers.NewChangesHandler(updates, logger),
		Audit:    handlers.NewAuditHandler(audits),
		Webhooks: handlers.NewWebhooksHandler(cfg.Shopify.ApiSecret, shops, logger),
	})

	logger.Log("starting server on port " + cfg.Server.Port)
	if err := e.Start(":" + cfg.Server.Port); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}
