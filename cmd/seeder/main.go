package main

import (
	"context"
	"flag"
	"log"

	"escrow/internal/domain/model"
	"escrow/internal/infra/db"
	infraRepo "escrow/internal/infra/repository"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

// Accounts are owned outside the settlement core; this seeder is the tool
// that creates them with an opening balance.
func main() {
	id := flag.String("id", "", "account id to create")
	balance := flag.String("balance", "0", "opening balance")
	flag.Parse()

	if *id == "" {
		log.Fatal("-id is required")
	}

	amount, err := decimal.NewFromString(*balance)
	if err != nil {
		log.Fatalf("invalid balance %q: %v", *balance, err)
	}
	if amount.IsNegative() {
		log.Fatal("balance must not be negative")
	}

	if err := godotenv.Load(); err != nil {
		log.Printf("no .env file loaded: %v", err)
	}

	gormDB, err := db.Connect()
	if err != nil {
		log.Fatalf("unable to connect to database: %v", err)
	}
	if err := gormDB.AutoMigrate(&model.Account{}); err != nil {
		log.Fatal(err)
	}

	accounts := infraRepo.NewAccountGormRepository(gormDB)
	if err := accounts.Create(context.Background(), model.Account{
		ID:      *id,
		Balance: amount,
	}); err != nil {
		log.Fatalf("create account %s: %v", *id, err)
	}

	log.Printf("account %s created with balance %s", *id, amount)
}
