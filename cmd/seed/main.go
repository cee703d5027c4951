package main

import (
	"bytes"
	"context"
	"errors"
	"flag"
	"log"
	"os"
	"time"

	_ "github.com/joho/godotenv/autoload"

	"upgradedash/internal/config"
	"upgradedash/internal/database"
	"upgradedash/internal/database/migration"
	"upgradedash/internal/ingest"
	"upgradedash/internal/repository/postgres"
	"upgradedash/internal/service"
)

// Seeds the database from a local CSV file: replaces all project records and
// ensures a demo admin account exists. Intended for local development only.
func main() {
	csvPath := flag.String("csv", "data/sample_avance.csv", "path to the sample CSV file")
	flag.Parse()

	cfg := config.Load()
	ctx := context.Background()
	loc := time.Local

	data, err := os.ReadFile(*csvPath)
	if err != nil {
		log.Fatalf("failed to read sample CSV: %v", err)
	}

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := migration.EnsureMigrated(ctx, db, loc, cfg.Database.Host); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	userRepo := postgres.NewUserPostgres(db)
	authSvc := service.NewAuthService(userRepo)
	if _, err := authSvc.CreateUser(ctx, "demo", "DemoPass123", "DemoPass123", "admin"); err != nil {
		if !errors.Is(err, service.ErrUserExists) {
			log.Fatalf("failed to create demo user: %v", err)
		}
	} else {
		log.Println("demo user created (username: demo / password: DemoPass123)")
	}

	recordRepo := postgres.NewRecordPostgres(db)
	if err := recordRepo.DeleteAll(ctx); err != nil {
		log.Fatalf("failed to clear project records: %v", err)
	}

	records, err := ingest.ParseCSV(bytes.NewReader(data))
	if err != nil {
		log.Fatalf("failed to parse sample CSV: %v", err)
	}

	res, err := recordRepo.UpsertBatch(ctx, records)
	if err != nil {
		log.Fatalf("failed to insert records: %v", err)
	}
	log.Printf("records inserted: %d", res.Total)
}
