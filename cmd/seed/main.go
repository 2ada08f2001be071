package main

import (
	"flag"

	"plateguard-backend/internal/model"
	"plateguard-backend/internal/seed"
	"plateguard-backend/pkg/config"
	"plateguard-backend/pkg/database"
	applog "plateguard-backend/pkg/logger"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

// Seeds the database: default categories plus an admin account, or the
// full demo dataset with -demo.
func main() {
	demo := flag.Bool("demo", false, "also create demo accounts, sample stock and waste history")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Warn().Msg(".env file not found, relying on environment")
	}
	cfg := config.Load()
	applog.New(cfg.App.Env, cfg.App.LogLevel)

	db := database.ConnectDB(cfg.DB)
	db.AutoMigrate(&model.User{}, &model.Category{}, &model.InventoryItem{}, &model.WasteRecord{})

	if *demo {
		if _, err := seed.Demo(db); err != nil {
			log.Fatal().Err(err).Msg("demo seeding failed")
		}
		return
	}
	if err := seed.Baseline(db); err != nil {
		log.Fatal().Err(err).Msg("baseline seeding failed")
	}
}
