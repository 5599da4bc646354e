package timezone

import (
	"agenda/config"
	"time"

	"github.com/rs/zerolog/log"
)

const (
	dayLayout   = "2006-01-02"
	clockLayout = "15:04"
)

var (
	appLocation *time.Location
)

func init() {
	cfg := config.Get()

	if cfg.App.Timezone == "" {
		log.Warn().Msg("No timezone configured, using UTC as default")
		cfg.App.Timezone = "UTC"
	}

	loc, err := time.LoadLocation(cfg.App.Timezone)
	if err != nil {
		log.Error().
			Err(err).
			Str("timezone", cfg.App.Timezone).
			Msg("Failed to load timezone, falling back to UTC. Please use standard timezone names like 'Europe/Madrid', 'UTC', 'America/Bogota'")
		appLocation = time.UTC

		return
	}

	appLocation = loc
	log.Info().
		Str("timezone", cfg.App.Timezone).
		Str("location", loc.String()).
		Msg("Application timezone initialized")
}

// Now returns the current time in the application timezone
func Now() time.Time {
	return time.Now().In(GetLocation())
}

// Today returns the current calendar day in the application timezone.
func Today() string {
	return Now().Format(dayLayout)
}

// ToAppTime converts a time to the application timezone
func ToAppTime(t time.Time) time.Time {
	return t.In(GetLocation())
}

// Normalize converts a stored timestamp to the application timezone. Missing
// timestamps (pending server writes) read as the current time.
func Normalize(t time.Time) time.Time {
	if t.IsZero() {
		return Now()
	}

	return ToAppTime(t)
}

// Clock rewrites a time of day as zero-padded HH:MM so clock strings sort
// lexically. Values that do not parse are returned unchanged.
func Clock(value string) string {
	t, err := time.Parse(clockLayout, value)
	if err != nil {
		return value
	}

	return t.Format(clockLayout)
}

// GetLocation returns the current application timezone location
func GetLocation() *time.Location {
	if appLocation == nil {
		log.Warn().Msg("Timezone not initialized, returning UTC")

		return time.UTC
	}

	return appLocation
}

// Parse parses a time string in the application timezone
func Parse(layout, value string) (time.Time, error) {
	return time.ParseInLocation(layout, value, GetLocation())
}

// Format formats a time in the application timezone
func Format(t time.Time, layout string) string {
	return ToAppTime(t).Format(layout)
}
