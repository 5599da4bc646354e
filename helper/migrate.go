package helper

//nolint:revive
import (
	"agenda/config"
	"agenda/infras/postgres"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/rs/zerolog/log"
)

const migrationsSource = "file://migrations/postgres"

const (
	ActionUp     = "up"
	ActionDown   = "down"
	ActionStepUp = "step-up"
	ActionDrop   = "drop"
)

var actions = map[string]struct {
	run  func(mig *migrate.Migrate) error
	done string
}{
	ActionUp:     {run: (*migrate.Migrate).Up, done: "Database migrations completed successfully"},
	ActionDown:   {run: func(mig *migrate.Migrate) error { return mig.Steps(-1) }, done: "Last database migration rolled back"},
	ActionStepUp: {run: func(mig *migrate.Migrate) error { return mig.Steps(1) }, done: "Next database migration applied"},
	ActionDrop:   {run: (*migrate.Migrate).Down, done: "All database migrations rolled back"},
}

func databaseURL(cfg *config.Config) string {
	return postgres.WriteEndpoint(*cfg).DSN("x-migrations-table", cfg.DB.Postgres.MigrationTable)
}

// Runner applies one migration action against the write database of the
// documents store.
func Runner(cfg *config.Config, action string) error {
	act, ok := actions[action]
	if !ok {
		return fmt.Errorf("unknown migration action %q", action)
	}

	mig, err := migrate.New(migrationsSource, databaseURL(cfg))
	if err != nil {
		return fmt.Errorf("error creating migrate instance: %w", err)
	}

	defer mig.Close()

	if err := act.run(mig); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("error running %s migration: %w", action, err)
	}

	log.Info().Str("action", action).Msg(act.done)

	return nil
}

// AutoMigrate brings the documents schema up to date when the postgres
// driver is selected and DB_POSTGRES_AUTO_MIGRATE is set.
func AutoMigrate(cfg *config.Config) error {
	if cfg.Store.Driver != config.StoreDriverPostgres || !cfg.DB.Postgres.AutoMigrate {
		return nil
	}

	return Runner(cfg, ActionUp)
}
