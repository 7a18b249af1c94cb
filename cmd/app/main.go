package main

import (
	"sitterhub/config"
	"sitterhub/di"
	"sitterhub/helper"
	"sitterhub/shared/logger"

	"github.com/rs/zerolog/log"
)

// @title Sitterhub Booking API
// @version 1.0
// @description Booking requests, sitter acceptance and cost freezing for the pet sitting marketplace.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	logger.InitLogger()

	cfg := config.Get()
	logger.Configure(cfg)

	if cfg.DB.Postgres.AutoMigrate {
		if err := helper.Up(cfg); err != nil {
			log.Fatal().Err(err).Msg("Failed to run database migrations")
		}
	}

	http := di.InitializeService()
	http.Serve()
}
