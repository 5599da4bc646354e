// Package timezone pins wall-clock calculations to the configured application zone.
//
// Usage:
//
//	now := timezone.Now()                  // current time in app timezone
//	today := timezone.Today()              // "2006-01-02" calendar day in app timezone
//	created := timezone.Normalize(stamp)   // app-zone timestamp, Now() when stamp is zero
//	t, err := timezone.Parse("2006-01-02", "2024-01-01")
//
// The zone comes from APP_TIMEZONE (IANA names such as "UTC", "Europe/Madrid",
// "America/Bogota") and is loaded when the package is imported.
package timezone
