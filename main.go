package main

import (
	"github.com/joho/godotenv"

	"github.com/dacapperclub/pickboard/config"
	"github.com/dacapperclub/pickboard/models"
	"github.com/dacapperclub/pickboard/routes"
	"github.com/dacapperclub/pickboard/store"
	"github.com/dacapperclub/pickboard/utils"
)

func main() {
	// Same boot convention as the forwarder bot: .env next to the binary wins
	// over nothing, real environment wins over .env.
	_ = godotenv.Load()

	cfg := config.Load()

	// Initialize logger early
	if err := utils.InitLogger(cfg); err != nil {
		panic(err)
	}

	if cfg.IngestToken == "" {
		utils.Sugar.Error("INGEST_TOKEN is not configured; submissions will be rejected")
	}
	if len(cfg.ModTokens) == 0 {
		utils.Sugar.Warn("no moderator tokens configured; /admin endpoints are unreachable")
	}

	db := config.InitDatabase(&models.Pick{}, &models.HiddenPick{})
	r := routes.SetupRouter(cfg, store.NewGormStore(db))

	utils.Sugar.Infof("Starting server on port %s (graceful)", cfg.AppPort)
	if err := utils.GraceServer(":"+cfg.AppPort, r); err != nil {
		utils.Sugar.Fatalf("server stopped with error: %v", err)
	}
}
