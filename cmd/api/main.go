package main

import (
	"log"
	"time"

	"escrow/internal/auth"
	"escrow/internal/config"
	"escrow/internal/domain/model"
	"escrow/internal/handler"
	"escrow/internal/infra/db"
	infraRepo "escrow/internal/infra/repository"
	"escrow/internal/notifier"
	"escrow/internal/server"
	"escrow/internal/usecase"

	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("no .env file loaded: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	gormDB, err := db.Connect()
	if err != nil {
		log.Fatalf("unable to connect to database: %v", err)
	}
	if err := gormDB.AutoMigrate(
		&model.Account{},
		&model.Order{},
		&model.LedgerEntry{},
	); err != nil {
		log.Fatal(err)
	}

	orderRepo := infraRepo.NewOrderGormRepository(gormDB)
	txManager := infraRepo.NewTxManagerGorm(gormDB)

	tolerance := time.Duration(cfg.ToleranceSeconds) * time.Second
	nonces := auth.NewNonceStore(tolerance)
	nonces.Start()
	defer nonces.Stop()

	verifier := auth.NewVerifier(cfg.APIKey, cfg.HMACSecret, tolerance, nonces)

	var sellerNotifier usecase.Notifier
	if cfg.SellerWebhookURL != "" {
		sellerNotifier = notifier.NewWebhookNotifier(cfg.SellerWebhookURL)
	} else {
		log.Print("SELLER_WEBHOOK_URL not set, seller notifications disabled")
	}

	uc := usecase.NewSettlementUsecase(txManager, orderRepo, sellerNotifier)

	e := server.New(cfg)
	server.RegisterRoutes(e, verifier, server.Handlers{
		Payments:      handler.NewPaymentHandler(uc),
		Delivery:      handler.NewDeliveryHandler(uc),
		Seller:        handler.NewSellerHandler(uc),
		Notifications: handler.NewNotificationHandler(sellerNotifier),
		Health:        handler.NewHealthHandler(),
	})

	log.Printf("escrow api starting on :%s", cfg.Port)
	if err := server.Start(e, cfg.Port); err != nil {
		log.Fatal(err)
	}
}
