package main

import (
	"agenda/config"
	"agenda/di"
	"agenda/helper"
	"agenda/shared/logger"

	"github.com/rs/zerolog/log"
)

// @title Agenda API
// @version 1.0
// @description Appointment booking for service businesses.
// @BasePath /
func main() {
	cfg := config.Get()

	logger.InitLogger()

	logger.SetLogLevel(cfg)

	if err := helper.AutoMigrate(cfg); err != nil {
		log.Fatal().Err(err).Msg("Failed to migrate database")
	}

	http := di.InitializeService()
	http.Serve()
}
