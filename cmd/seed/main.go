package main

import (
	"agenda/config"
	"agenda/di"
	"agenda/internal/seed"
	"agenda/shared/logger"
	"agenda/shared/timezone"
	"context"

	"github.com/rs/zerolog/log"
)

func main() {
	cfg := config.Get()

	logger.InitLogger()

	logger.SetLogLevel(cfg)

	if cfg.Store.Driver != config.StoreDriverPostgres {
		log.Warn().Msg("Seeding a non-persistent store, the data disappears when this command exits")
	}

	ctx := context.Background()
	services := di.InitializeServices()

	if err := services.Directory.Subscribe(ctx); err != nil {
		log.Fatal().Err(err).Msg("Failed to subscribe to businesses")
	}
	defer services.Directory.Unsubscribe()

	if err := services.Ledger.Subscribe(ctx); err != nil {
		log.Fatal().Err(err).Msg("Failed to subscribe to appointments")
	}
	defer services.Ledger.Unsubscribe()

	res, err := seed.Run(ctx, services.Directory, services.Ledger, timezone.Now())
	if err != nil {
		log.Error().Err(err).Msg("Seeding stopped")

		return
	}

	log.Info().
		Int("businesses", len(res.BusinessIDs)).
		Int("appointments", len(res.AppointmentIDs)).
		Msg("Sample data loaded")
}
